package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"staffdir/internal/directory/events"
	"staffdir/internal/events/dedupe"
	platform "staffdir/internal/platform/kafka/consumer"
)

// NotificationHandler delivers notifications. Delivery here is a structured
// log line; a mail or chat integration would slot in behind the same handler.
type NotificationHandler struct {
	dedupe dedupe.Store
	logger *slog.Logger
}

func NewNotificationHandler(store dedupe.Store, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{dedupe: store, logger: logger}
}

func (h *NotificationHandler) Handle(ctx context.Context, msg *platform.Message) error {
	var n events.Notification
	if err := json.Unmarshal(msg.Value, &n); err != nil {
		h.logger.Error("malformed notification, skipping",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}

	first, err := h.dedupe.FirstSeen(ctx, n.EventID)
	if err != nil {
		h.logger.Error("dedupe check failed, processing anyway", "event_id", n.EventID, "error", err)
	} else if !first {
		h.logger.Debug("duplicate notification skipped", "event_id", n.EventID)
		return nil
	}

	h.logger.Info("notification",
		"event_id", n.EventID,
		"message", n.Message,
		"user_id", n.UserID,
	)
	return nil
}
