package models

import "time"

// EventType identifies the kind of fact an activity event records.
type EventType string

const (
	// EventTypeLike is a film like/unlike.
	EventTypeLike EventType = "LIKE"
	// EventTypeFriend is a friendship addition/removal.
	EventTypeFriend EventType = "FRIEND"
	// EventTypeReview is a review or review-vote action.
	EventTypeReview EventType = "REVIEW"
)

// EventOperation identifies whether the fact was added or removed.
type EventOperation string

const (
	// EventOperationAdd records an addition.
	EventOperationAdd EventOperation = "ADD"
	// EventOperationRemove records a removal.
	EventOperationRemove EventOperation = "REMOVE"
)

// Event is an immutable, append-only activity record. Events are never
// updated or deleted in normal operation; the feed reads them newest first.
type Event struct {
	ID        uint           `gorm:"primaryKey" json:"event_id"`
	ActorID   uint           `gorm:"not null;index" json:"user_id"`
	Type      EventType      `gorm:"type:varchar(16);not null" json:"event_type"`
	Operation EventOperation `gorm:"type:varchar(16);not null" json:"operation"`
	EntityID  uint           `gorm:"not null" json:"entity_id"`
	CreatedAt time.Time      `gorm:"index" json:"timestamp"`
}
