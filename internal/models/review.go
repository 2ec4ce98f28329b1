package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a user's review of a film. Usefulness is not stored on the row;
// it is derived from the vote table at read time so it can never go stale.
type Review struct {
	ID        uint           `gorm:"primaryKey" json:"review_id"`
	FilmID    uint           `gorm:"not null;index" json:"film_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Content   string         `gorm:"size:250;not null" json:"content"`
	Positive  bool           `json:"is_positive"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Usefulness is computed from votes and populated by the review service.
	Usefulness int `gorm:"-" json:"useful"`
}

// ReviewVote is a helpfulness vote on a review. At most one row exists per
// (user, review); a later vote by the same user supersedes the earlier one.
type ReviewVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_review_voter" json:"review_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_voter" json:"user_id"`
	Helpful   bool      `json:"helpful"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
