// Package publisher turns completed directory mutations into domain events
// on the message channel. Publishing is decoupled from the caller through a
// buffered queue drained by a worker: the registry's transaction has already
// committed by the time an event is enqueued, so channel failures are logged
// and counted but never surface to the caller. The store stays authoritative;
// the event stream is best effort.
package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"staffdir/internal/directory/events"
)

// Producer is the message channel contract the publisher drives.
type Producer interface {
	Produce(ctx context.Context, topic string, key, value []byte) error
}

type envelope struct {
	topic string
	key   string
	value []byte
}

// Publisher assigns event identity and queues envelopes for the worker.
type Publisher struct {
	producer Producer
	logger   *slog.Logger
	metrics  *Metrics
	inbox    chan envelope

	timeout  time.Duration
	attempts int
	backoff  time.Duration
}

type Option func(p *Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) { p.metrics = m }
}

// WithBufferSize bounds the queue between registries and the worker.
func WithBufferSize(n int) Option {
	return func(p *Publisher) { p.inbox = make(chan envelope, n) }
}

// WithProduceTimeout bounds each send attempt.
func WithProduceTimeout(d time.Duration) Option {
	return func(p *Publisher) { p.timeout = d }
}

// New constructs a Publisher. Run must be started for events to flow.
func New(producer Producer, opts ...Option) *Publisher {
	p := &Publisher{
		producer: producer,
		logger:   slog.Default(),
		inbox:    make(chan envelope, 256),
		timeout:  5 * time.Second,
		attempts: 3,
		backoff:  250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PublishBranchEvent queues a branch event, assigning id and timestamp when
// absent. The event id doubles as the partition key so retries and
// redeliveries of one occurrence stay on one partition.
func (p *Publisher) PublishBranchEvent(_ context.Context, ev events.BranchEvent) {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	p.enqueue(events.TopicBranchEvents, ev.EventID, ev)
}

// PublishEmployeeEvent queues an employee event.
func (p *Publisher) PublishEmployeeEvent(_ context.Context, ev events.EmployeeEvent) {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	p.enqueue(events.TopicEmployeeEvents, ev.EventID, ev)
}

// PublishNotification queues a free-form notification.
func (p *Publisher) PublishNotification(_ context.Context, message, userID string) {
	n := events.Notification{
		EventID:   uuid.NewString(),
		Message:   message,
		UserID:    userID,
		Timestamp: time.Now(),
	}
	p.enqueue(events.TopicNotificationEvents, n.EventID, n)
}

// enqueue marshals and hands off without blocking. A full queue drops the
// event; the registries must never stall on the channel.
func (p *Publisher) enqueue(topic, key string, payload any) {
	value, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal event", "topic", topic, "event_id", key, "error", err)
		p.metrics.RecordFailure(topic)
		return
	}
	select {
	case p.inbox <- envelope{topic: topic, key: key, value: value}:
	default:
		p.logger.Error("event queue full, dropping event", "topic", topic, "event_id", key)
		p.metrics.RecordDrop(topic)
	}
}

// Run drains the queue until ctx is canceled, sending each envelope with a
// bounded per-attempt timeout and retry.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env := <-p.inbox:
			p.send(ctx, env)
		}
	}
}

func (p *Publisher) send(ctx context.Context, env envelope) {
	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		sendCtx, cancel := context.WithTimeout(ctx, p.timeout)
		err := p.producer.Produce(sendCtx, env.topic, []byte(env.key), env.value)
		cancel()
		if err == nil {
			p.logger.Debug("event published", "topic", env.topic, "event_id", env.key)
			p.metrics.RecordPublish(env.topic)
			return
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		time.Sleep(p.backoff * time.Duration(attempt))
	}
	p.logger.Error("failed to publish event",
		"topic", env.topic,
		"event_id", env.key,
		"error", lastErr,
	)
	p.metrics.RecordFailure(env.topic)
}
