package models

import "time"

// Like represents a user's like on a film.
// The combination of UserID and FilmID must be unique: a user either likes a
// film or not, there are no duplicate or weighted likes.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_film" json:"user_id"`
	FilmID    uint      `gorm:"not null;uniqueIndex:idx_user_film" json:"film_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
	Film Film `gorm:"foreignKey:FilmID" json:"-"`
}
