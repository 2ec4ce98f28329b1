package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinegraph/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilmRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFilmRepository(db)
	ctx := context.Background()

	drama := models.Genre{ID: 2, Name: "Drama"}
	thriller := models.Genre{ID: 4, Name: "Thriller"}
	pg := models.MpaRating{ID: 2, Name: "PG"}
	require.NoError(t, db.Create(&drama).Error)
	require.NoError(t, db.Create(&thriller).Error)
	require.NoError(t, db.Create(&pg).Error)

	t.Run("Create and GetByID preloads relations", func(t *testing.T) {
		mpaID := pg.ID
		film := &models.Film{
			Name:        "Solaris",
			Description: "A psychologist visits a remote station.",
			Duration:    167,
			ReleaseDate: time.Date(1972, 3, 20, 0, 0, 0, 0, time.UTC),
			MpaID:       &mpaID,
			Genres:      []models.Genre{drama},
		}
		require.NoError(t, repo.Create(ctx, film))
		require.NotZero(t, film.ID)

		fetched, err := repo.GetByID(ctx, film.ID)
		require.NoError(t, err)
		assert.Equal(t, "Solaris", fetched.Name)
		require.NotNil(t, fetched.Mpa)
		assert.Equal(t, "PG", fetched.Mpa.Name)
		require.Len(t, fetched.Genres, 1)
		assert.Equal(t, "Drama", fetched.Genres[0].Name)
	})

	t.Run("GetByID unknown is not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("Update replaces the genre set", func(t *testing.T) {
		film := &models.Film{Name: "Stalker", Duration: 162, Genres: []models.Genre{drama}}
		require.NoError(t, repo.Create(ctx, film))

		film.Name = "Stalker (1979)"
		film.Genres = []models.Genre{thriller}
		require.NoError(t, repo.Update(ctx, film))

		fetched, err := repo.GetByID(ctx, film.ID)
		require.NoError(t, err)
		assert.Equal(t, "Stalker (1979)", fetched.Name)
		require.Len(t, fetched.Genres, 1)
		assert.Equal(t, "Thriller", fetched.Genres[0].Name)
	})

	t.Run("Update unknown is not found", func(t *testing.T) {
		err := repo.Update(ctx, &models.Film{ID: 9999, Name: "Ghost"})
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestFilmRepository_PopularRanking(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFilmRepository(db)
	likeRepo := NewLikeRepository(db)
	ctx := context.Background()

	comedy := models.Genre{ID: 1, Name: "Comedy"}
	drama := models.Genre{ID: 2, Name: "Drama"}
	require.NoError(t, db.Create(&comedy).Error)
	require.NoError(t, db.Create(&drama).Error)

	f1 := &models.Film{Name: "A", Duration: 90,
		ReleaseDate: time.Date(2001, 6, 1, 0, 0, 0, 0, time.UTC),
		Genres:      []models.Genre{comedy}}
	f2 := &models.Film{Name: "B", Duration: 90,
		ReleaseDate: time.Date(2001, 11, 1, 0, 0, 0, 0, time.UTC),
		Genres:      []models.Genre{drama}}
	f3 := &models.Film{Name: "C", Duration: 90,
		ReleaseDate: time.Date(2002, 2, 1, 0, 0, 0, 0, time.UTC),
		Genres:      []models.Genre{comedy, drama}}
	for _, f := range []*models.Film{f1, f2, f3} {
		require.NoError(t, repo.Create(ctx, f))
	}

	u1 := createUser(t, db, "alice")
	u2 := createUser(t, db, "bob")
	u3 := createUser(t, db, "carol")

	// f2 gets three likes, f1 one, f3 none.
	for _, u := range []*models.User{u1, u2, u3} {
		_, err := likeRepo.Save(ctx, u.ID, f2.ID)
		require.NoError(t, err)
	}
	_, err := likeRepo.Save(ctx, u1.ID, f1.ID)
	require.NoError(t, err)

	t.Run("orders by like count with ID tiebreak", func(t *testing.T) {
		films, err := repo.GetPopular(ctx, 10, PopularFilter{})
		require.NoError(t, err)
		require.Len(t, films, 3)
		assert.Equal(t, f2.ID, films[0].ID)
		assert.Equal(t, f1.ID, films[1].ID)
		// Zero likes still ranks, after everything with likes.
		assert.Equal(t, f3.ID, films[2].ID)
	})

	t.Run("respects the limit", func(t *testing.T) {
		films, err := repo.GetPopular(ctx, 1, PopularFilter{})
		require.NoError(t, err)
		require.Len(t, films, 1)
		assert.Equal(t, f2.ID, films[0].ID)
	})

	t.Run("filters by genre", func(t *testing.T) {
		films, err := repo.GetPopular(ctx, 10, PopularFilter{GenreID: comedy.ID})
		require.NoError(t, err)
		require.Len(t, films, 2)
		assert.Equal(t, f1.ID, films[0].ID)
		assert.Equal(t, f3.ID, films[1].ID)
	})

	t.Run("filters by release year", func(t *testing.T) {
		films, err := repo.GetPopular(ctx, 10, PopularFilter{Year: 2001})
		require.NoError(t, err)
		require.Len(t, films, 2)
		assert.Equal(t, f2.ID, films[0].ID)
		assert.Equal(t, f1.ID, films[1].ID)
	})

	t.Run("filters by genre and year together", func(t *testing.T) {
		films, err := repo.GetPopular(ctx, 10, PopularFilter{GenreID: drama.ID, Year: 2002})
		require.NoError(t, err)
		require.Len(t, films, 1)
		assert.Equal(t, f3.ID, films[0].ID)
	})
}

func TestFilmRepository_GetCommonFilms(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFilmRepository(db)
	likeRepo := NewLikeRepository(db)
	ctx := context.Background()

	f1 := createFilm(t, db, "A")
	f2 := createFilm(t, db, "B")
	f3 := createFilm(t, db, "C")

	u1 := createUser(t, db, "alice")
	u2 := createUser(t, db, "bob")
	u3 := createUser(t, db, "carol")

	// alice likes A, B; bob likes B, C; carol likes B.
	for _, pair := range []struct{ u, f uint }{
		{u1.ID, f1.ID}, {u1.ID, f2.ID},
		{u2.ID, f2.ID}, {u2.ID, f3.ID},
		{u3.ID, f2.ID},
	} {
		_, err := likeRepo.Save(ctx, pair.u, pair.f)
		require.NoError(t, err)
	}

	films, err := repo.GetCommonFilms(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, f2.ID, films[0].ID)

	// No overlap yields an empty slice, not an error.
	films, err = repo.GetCommonFilms(ctx, u3.ID, 9999)
	require.NoError(t, err)
	assert.Empty(t, films)
}
