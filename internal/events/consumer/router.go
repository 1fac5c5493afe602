// Package consumer contains the handlers behind the consumer group. Each
// topic gets a handler; the Router fans incoming records out by topic.
// Handler errors are logged and the record is still committed: a payload that
// fails once will fail on every redelivery, so parking the partition on it
// buys nothing.
package consumer

import (
	"context"
	"log/slog"

	platform "staffdir/internal/platform/kafka/consumer"
)

// Router dispatches records to the handler registered for their topic.
type Router struct {
	handlers map[string]platform.Handler
	logger   *slog.Logger
}

func NewRouter(logger *slog.Logger) *Router {
	return &Router{
		handlers: make(map[string]platform.Handler),
		logger:   logger,
	}
}

func (r *Router) Register(topic string, h platform.Handler) {
	r.handlers[topic] = h
}

func (r *Router) Handle(ctx context.Context, msg *platform.Message) error {
	h, ok := r.handlers[msg.Topic]
	if !ok {
		r.logger.Warn("no handler for topic", "topic", msg.Topic)
		return nil
	}
	return h.Handle(ctx, msg)
}
