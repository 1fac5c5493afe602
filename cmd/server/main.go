// Command server runs the staff directory: REST API, relational storage, and
// the domain event pipeline. Dependencies degrade gracefully: without a
// database the registries run on in-memory stores, without brokers no events
// flow, without redis consumer dedupe falls back to process-local memory.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	dirhandler "staffdir/internal/directory/handler"
	"staffdir/internal/directory/events"
	"staffdir/internal/directory/metrics"
	"staffdir/internal/directory/service"
	branchstore "staffdir/internal/directory/store/branch"
	employeestore "staffdir/internal/directory/store/employee"
	evconsumer "staffdir/internal/events/consumer"
	"staffdir/internal/events/dedupe"
	evpublisher "staffdir/internal/events/publisher"
	httpapi "staffdir/internal/http"
	"staffdir/internal/platform/config"
	"staffdir/internal/platform/httpserver"
	"staffdir/internal/platform/kafka"
	"staffdir/internal/platform/kafka/consumer"
	"staffdir/internal/platform/kafka/producer"
	"staffdir/internal/platform/logger"
	"staffdir/internal/platform/postgres"
	platformredis "staffdir/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Stores: postgres when configured, in-memory otherwise.
	var (
		branches  service.BranchStore
		employees service.EmployeeStore
		db        *sql.DB
	)
	if cfg.DatabaseURL != "" {
		db, err = postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		branches = branchstore.NewPostgres(db)
		employees = employeestore.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		branches = branchstore.NewInMemory()
		employees = employeestore.NewInMemory()
		log.Warn("no DATABASE_URL set, using in-memory stores")
	}

	redisClient, err := platformredis.New(ctx, cfg.RedisAddr)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	group, ctx := errgroup.WithContext(ctx)

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
	}

	if !cfg.Kafka.Disabled {
		if err := kafka.EnsureTopics(ctx, cfg.Kafka.Brokers, events.Topics()...); err != nil {
			return fmt.Errorf("ensure topics: %w", err)
		}

		prod, err := producer.New(cfg.Kafka.Brokers)
		if err != nil {
			return fmt.Errorf("create producer: %w", err)
		}
		defer prod.Close()

		pub := evpublisher.New(prod,
			evpublisher.WithLogger(log),
			evpublisher.WithMetrics(evpublisher.NewMetrics()),
			evpublisher.WithProduceTimeout(cfg.Kafka.ProduceTimeout),
		)
		group.Go(func() error {
			if err := pub.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
		opts = append(opts, service.WithPublisher(pub))

		var dedupeStore dedupe.Store
		if redisClient != nil {
			dedupeStore = dedupe.NewRedisStore(redisClient.Client, 24*time.Hour)
		} else {
			dedupeStore = dedupe.NewMemory(24 * time.Hour)
			log.Warn("no REDIS_ADDR set, consumer dedupe is process-local")
		}

		router := evconsumer.NewRouter(log)
		router.Register(events.TopicBranchEvents, evconsumer.NewBranchHandler(dedupeStore, log))
		router.Register(events.TopicEmployeeEvents, evconsumer.NewEmployeeHandler(dedupeStore, log))
		router.Register(events.TopicNotificationEvents, evconsumer.NewNotificationHandler(dedupeStore, log))

		cons, err := consumer.New(cfg.Kafka.Brokers, cfg.Kafka.Group, events.Topics(), router, log)
		if err != nil {
			return fmt.Errorf("create consumer: %w", err)
		}
		group.Go(func() error {
			defer cons.Close()
			if err := cons.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	} else {
		log.Warn("kafka disabled, domain events will not be published")
	}

	svc := service.New(branches, employees, opts...)
	h := dirhandler.New(svc, log)

	checkers := make(map[string]httpapi.HealthChecker)
	if db != nil {
		checkers["database"] = httpapi.HealthFunc(db.PingContext)
	}
	if redisClient != nil {
		checkers["redis"] = redisClient
	}

	srv := httpserver.New(cfg.Addr, httpapi.NewRouter(h, checkers),
		httpserver.WithShutdownTimeout(cfg.ShutdownTimeout))

	group.Go(func() error {
		log.Info("starting staffdir", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		return srv.Drain()
	})

	if err := group.Wait(); err != nil {
		return err
	}
	log.Info("shutdown complete")
	return nil
}
