package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"staffdir/internal/directory/events"
	"staffdir/internal/events/dedupe"
	platform "staffdir/internal/platform/kafka/consumer"
)

// BranchHandler reacts to branch lifecycle events.
type BranchHandler struct {
	dedupe dedupe.Store
	logger *slog.Logger
}

func NewBranchHandler(store dedupe.Store, logger *slog.Logger) *BranchHandler {
	return &BranchHandler{dedupe: store, logger: logger}
}

func (h *BranchHandler) Handle(ctx context.Context, msg *platform.Message) error {
	var ev events.BranchEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		h.logger.Error("malformed branch event, skipping",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}

	first, err := h.dedupe.FirstSeen(ctx, ev.EventID)
	if err != nil {
		h.logger.Error("dedupe check failed, processing anyway", "event_id", ev.EventID, "error", err)
	} else if !first {
		h.logger.Debug("duplicate branch event skipped", "event_id", ev.EventID)
		return nil
	}

	switch ev.EventType {
	case events.KindCreate:
		h.logger.Info("branch created",
			"event_id", ev.EventID,
			"branch_code", ev.BranchCode,
			"branch_name", ev.BranchName,
			"user_id", ev.UserID,
		)
	case events.KindUpdate:
		h.logger.Info("branch updated",
			"event_id", ev.EventID,
			"branch_code", ev.BranchCode,
			"branch_name", ev.BranchName,
		)
	case events.KindDelete:
		h.logger.Info("branch deleted",
			"event_id", ev.EventID,
			"branch_code", ev.BranchCode,
		)
	default:
		h.logger.Warn("unknown branch event type", "event_id", ev.EventID, "event_type", ev.EventType)
	}
	return nil
}
