package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"staffdir/internal/directory/events"
	"staffdir/internal/events/dedupe"
	platform "staffdir/internal/platform/kafka/consumer"
)

// EmployeeHandler reacts to employee lifecycle events.
type EmployeeHandler struct {
	dedupe dedupe.Store
	logger *slog.Logger
}

func NewEmployeeHandler(store dedupe.Store, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{dedupe: store, logger: logger}
}

func (h *EmployeeHandler) Handle(ctx context.Context, msg *platform.Message) error {
	var ev events.EmployeeEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		h.logger.Error("malformed employee event, skipping",
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
		h.logger.Debug("duplicate employee event skipped", "event_id", ev.EventID)
		return nil
	}

	switch ev.EventType {
	case events.KindCreate:
		h.logger.Info("employee created",
			"event_id", ev.EventID,
			"employee_code", ev.EmployeeCode,
			"branch_code", ev.BranchCode,
			"user_id", ev.UserID,
		)
	case events.KindUpdate:
		h.logger.Info("employee updated",
			"event_id", ev.EventID,
			"employee_code", ev.EmployeeCode,
			"branch_code", ev.BranchCode,
		)
	case events.KindDelete:
		h.logger.Info("employee deleted",
			"event_id", ev.EventID,
			"employee_code", ev.EmployeeCode,
		)
	default:
		h.logger.Warn("unknown employee event type", "event_id", ev.EventID, "event_type", ev.EventType)
	}
	return nil
}
