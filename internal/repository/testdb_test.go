package repository

import (
	"testing"

	"cinegraph/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
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
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, login string) *models.User {
	t.Helper()
	user := &models.User{Email: login + "@e.com", Login: login, Name: login}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", login, err)
	}
	return user
}

func createFilm(t *testing.T, db *gorm.DB, name string) *models.Film {
	t.Helper()
	film := &models.Film{Name: name, Duration: 100}
	if err := db.Create(film).Error; err != nil {
		t.Fatalf("Failed to create film %s: %v", name, err)
	}
	return film
}
