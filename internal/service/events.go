package service

import (
	"context"
	"log/slog"

	"cinegraph/internal/models"
	"cinegraph/internal/observability"
	"cinegraph/internal/repository"
)

// eventLogger appends activity events for the friend feed. Appends are
// best-effort: a failure is logged and counted but never propagated, so an
// event problem cannot roll back the business fact it describes.
type eventLogger struct {
	events repository.EventRepository
}

func newEventLogger(events repository.EventRepository) *eventLogger {
	return &eventLogger{events: events}
}

func (l *eventLogger) record(ctx context.Context, actorID uint, eventType models.EventType, op models.EventOperation, entityID uint) {
	if l == nil || l.events == nil {
		return
	}
	event := &models.Event{
		ActorID:   actorID,
		Type:      eventType,
		Operation: op,
		EntityID:  entityID,
	}
	if err := l.events.Append(ctx, event); err != nil {
		observability.EventAppendFailures.WithLabelValues(string(eventType)).Inc()
		observability.GlobalLogger.ErrorContext(ctx, "failed to append activity event",
			slog.String("event_type", string(eventType)),
			slog.String("operation", string(op)),
			slog.Uint64("actor_id", uint64(actorID)),
			slog.Uint64("entity_id", uint64(entityID)),
			slog.String("error", err.Error()),
		)
	}
}
