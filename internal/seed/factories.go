// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"cinegraph/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, rand: rand.New(rand.NewSource(seed))}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	login := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))
	user := &models.User{
		Email:    gofakeit.Email(),
		Login:    login,
		Name:     gofakeit.Name(),
		Birthday: gofakeit.DateRange(time.Now().AddDate(-70, 0, 0), time.Now().AddDate(-14, 0, 0)),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateFilm constructs and persists a sample `models.Film` with a random
// MPA rating and one or two genres from the built-in catalog.
func (f *Factory) CreateFilm(overrides ...func(*models.Film)) (*models.Film, error) {
	mpaID := uint(f.rand.Intn(5) + 1)
	film := &models.Film{
		Name:        gofakeit.MovieName(),
		Description: gofakeit.Sentence(8),
		Duration:    f.rand.Intn(150) + 60,
		ReleaseDate: gofakeit.DateRange(
			time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Now(),
		),
		MpaID: &mpaID,
	}

	genreCount := f.rand.Intn(2) + 1
	picked := map[uint]bool{}
	for len(picked) < genreCount {
		picked[uint(f.rand.Intn(6)+1)] = true
	}
	for id := range picked {
		film.Genres = append(film.Genres, models.Genre{ID: id})
	}

	for _, override := range overrides {
		override(film)
	}

	// Genre rows already exist; only the join table needs writing.
	if err := f.db.Omit("Genres.*").Create(film).Error; err != nil {
		return nil, err
	}
	return film, nil
}

// CreateLike persists a like from `user` on `film`. Repeats are no-ops.
func (f *Factory) CreateLike(user *models.User, film *models.Film) error {
	like := &models.Like{
		UserID: user.ID,
		FilmID: film.ID,
	}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error
}

// CreateFriendship persists both directed edges of a friendship so each
// side sees the other in their friend list.
func (f *Factory) CreateFriendship(user, friend *models.User) error {
	edges := []models.Friendship{
		{UserID: user.ID, FriendID: friend.ID},
		{UserID: friend.ID, FriendID: user.ID},
	}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edges).Error
}

// CreateReview constructs and persists a sample `models.Review` by the
// given user on the given film.
func (f *Factory) CreateReview(user *models.User, film *models.Film, overrides ...func(*models.Review)) (*models.Review, error) {
	review := &models.Review{
		FilmID:   film.ID,
		UserID:   user.ID,
		Content:  gofakeit.Sentence(12),
		Positive: f.rand.Float32() < 0.7,
	}

	for _, override := range overrides {
		override(review)
	}

	if len(review.Content) > 250 {
		review.Content = review.Content[:250]
	}

	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// CreateReviewVote persists a usefulness vote from `voter` on `review`.
func (f *Factory) CreateReviewVote(voter *models.User, review *models.Review, helpful bool) error {
	vote := &models.ReviewVote{
		ReviewID: review.ID,
		UserID:   voter.ID,
		Helpful:  helpful,
	}
	return f.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "review_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"helpful", "updated_at"}),
	}).Create(vote).Error
}
