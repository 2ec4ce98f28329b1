package models

import (
	"time"

	"gorm.io/gorm"
)

// Film represents a film in the catalog. Genres are an unordered unique set,
// mapped through the film_genres join table.
type Film struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"size:200" json:"description"`
	Duration    int            `json:"duration"`
	ReleaseDate time.Time      `json:"release_date"`
	MpaID       *uint          `json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Mpa    *MpaRating `gorm:"foreignKey:MpaID" json:"mpa,omitempty"`
	Genres []Genre    `gorm:"many2many:film_genres" json:"genres"`
}

// Genre is a catalog genre tag (Comedy, Drama, ...).
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// MpaRating is an MPA age rating (G, PG, PG-13, R, NC-17).
type MpaRating struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// TableName specifies the table name for GORM
func (MpaRating) TableName() string {
	return "mpa_ratings"
}
