package models

import "time"

// Recommendation is one film recommended to one user by the batch job.
// The full set for a user is replaced on every batch run, never merged.
type Recommendation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_recommendation" json:"user_id"`
	FilmID    uint      `gorm:"not null;uniqueIndex:idx_user_recommendation" json:"film_id"`
	CreatedAt time.Time `json:"created_at"`
}
