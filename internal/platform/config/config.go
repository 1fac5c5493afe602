package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures process-level configuration so main stays lean. Empty
// DatabaseURL or RedisAddr select the in-memory fallbacks, which keeps local
// development possible without infrastructure.
type Config struct {
	Addr            string        `env:"STAFFDIR_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"STAFFDIR_LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"STAFFDIR_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	RedisAddr       string        `env:"REDIS_ADDR"`

	Kafka Kafka `envPrefix:"KAFKA_"`
}

// Kafka holds message channel settings.
type Kafka struct {
	Brokers []string `env:"BROKERS" envSeparator:","`
	Group   string   `env:"GROUP" envDefault:"staffdir"`
	// Disabled turns off event publishing and consumption entirely.
	// Registries still work; events are dropped at the publisher.
	Disabled bool `env:"DISABLED"`

	ProduceTimeout time.Duration `env:"PRODUCE_TIMEOUT" envDefault:"5s"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Disabled = true
	}
	return cfg, nil
}
