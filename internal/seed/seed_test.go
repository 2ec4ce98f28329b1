package seed

import (
	"testing"

	"cinegraph/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Film{}, &models.Genre{}, &models.MpaRating{},
		&models.Like{}, &models.Friendship{}, &models.Review{},
		&models.ReviewVote{}, &models.Event{}, &models.Recommendation{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestBuiltInCatalogsParse(t *testing.T) {
	genres, ratings, err := BuiltInCatalogs()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(genres) != 6 {
		t.Fatalf("expected 6 genres, got %d", len(genres))
	}
	if len(ratings) != 5 {
		t.Fatalf("expected 5 mpa ratings, got %d", len(ratings))
	}
	if genres[0].ID != 1 || genres[0].Name != "Comedy" {
		t.Fatalf("unexpected first genre: %+v", genres[0])
	}
	if ratings[4].Name != "NC-17" {
		t.Fatalf("unexpected last rating: %+v", ratings[4])
	}
}

func TestCatalogsIdempotent(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 2; i++ {
		if err := Catalogs(db); err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
	}

	var genreCount, ratingCount int64
	db.Model(&models.Genre{}).Count(&genreCount)
	db.Model(&models.MpaRating{}).Count(&ratingCount)
	if genreCount != 6 {
		t.Fatalf("expected 6 genres after reseeding, got %d", genreCount)
	}
	if ratingCount != 5 {
		t.Fatalf("expected 5 ratings after reseeding, got %d", ratingCount)
	}
}

func TestCreateFriendshipWritesBothEdges(t *testing.T) {
	db := newTestDB(t)
	f := NewFactory(db)

	u1, err := f.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	u2, err := f.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := f.CreateFriendship(u1, u2); err != nil {
		t.Fatalf("create friendship: %v", err)
	}
	// Re-adding the same friendship must not error or duplicate.
	if err := f.CreateFriendship(u1, u2); err != nil {
		t.Fatalf("repeat friendship: %v", err)
	}

	var count int64
	db.Model(&models.Friendship{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 directed edges, got %d", count)
	}
}

func TestCreateLikeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	if err := Catalogs(db); err != nil {
		t.Fatalf("catalogs: %v", err)
	}
	f := NewFactory(db)

	user, err := f.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	film, err := f.CreateFilm()
	if err != nil {
		t.Fatalf("create film: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := f.CreateLike(user, film); err != nil {
			t.Fatalf("like %d: %v", i, err)
		}
	}

	var count int64
	db.Model(&models.Like{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single like row, got %d", count)
	}
}

func TestSeedPopulatesEverything(t *testing.T) {
	db := newTestDB(t)

	if err := Seed(db, Options{NumUsers: 8, NumFilms: 12, ShouldClean: false}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	var users, films int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Film{}).Count(&films)
	if users != 8 {
		t.Fatalf("expected 8 users, got %d", users)
	}
	if films != 12 {
		t.Fatalf("expected 12 films, got %d", films)
	}
}
