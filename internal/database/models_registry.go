package database

import "cinegraph/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Film{},
		&models.Genre{},
		&models.MpaRating{},
		&models.Like{},
		&models.Friendship{},
		&models.Review{},
		&models.ReviewVote{},
		&models.Event{},
		&models.Recommendation{},
	}
}
