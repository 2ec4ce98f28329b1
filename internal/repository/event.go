package repository

import (
	"context"

	"cinegraph/internal/models"

	"gorm.io/gorm"
)

// EventRepository defines the interface for activity-event data operations.
// Events are append-only; there is no update or delete.
type EventRepository interface {
	Append(ctx context.Context, event *models.Event) error
	// ListByActors returns events whose actor is in actorIDs, newest first.
	// Equal timestamps are broken by insertion order (id descending) so the
	// feed is stable.
	ListByActors(ctx context.Context, actorIDs []uint) ([]models.Event, error)
}

// eventRepository implements EventRepository
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Append(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) ListByActors(ctx context.Context, actorIDs []uint) ([]models.Event, error) {
	if len(actorIDs) == 0 {
		return []models.Event{}, nil
	}
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("actor_id IN ?", actorIDs).
		Order("created_at DESC, id DESC").
		Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}
