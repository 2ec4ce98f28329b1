package repository

import (
	"context"
	"errors"
	"time"

	"cinegraph/internal/models"

	"gorm.io/gorm"
)

// PopularFilter narrows the popularity ranking to a genre and/or release year.
// Zero values mean "no filter"; when both are set they are conjunctive.
type PopularFilter struct {
	GenreID uint
	Year    int
}

// FilmRepository defines the interface for film data operations
type FilmRepository interface {
	Create(ctx context.Context, film *models.Film) error
	GetByID(ctx context.Context, id uint) (*models.Film, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Film, error)
	Update(ctx context.Context, film *models.Film) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.Film, error)
	GetPopular(ctx context.Context, limit int, filter PopularFilter) ([]models.Film, error)
	GetCommonFilms(ctx context.Context, userID, friendID uint) ([]models.Film, error)
}

// filmRepository implements FilmRepository
type filmRepository struct {
	db *gorm.DB
}

// NewFilmRepository creates a new film repository
func NewFilmRepository(db *gorm.DB) FilmRepository {
	return &filmRepository{db: db}
}

func (r *filmRepository) Create(ctx context.Context, film *models.Film) error {
	if err := r.db.WithContext(ctx).Create(film).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *filmRepository) GetByID(ctx context.Context, id uint) (*models.Film, error) {
	var film models.Film
	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Preload("Mpa").
		First(&film, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Film", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &film, nil
}

func (r *filmRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Film, error) {
	if len(ids) == 0 {
		return []models.Film{}, nil
	}
	var films []models.Film
	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Preload("Mpa").
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&films).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return films, nil
}

func (r *filmRepository) Update(ctx context.Context, film *models.Film) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Film{}).
			Where("id = ?", film.ID).
			Updates(map[string]any{
				"name":         film.Name,
				"description":  film.Description,
				"duration":     film.Duration,
				"release_date": film.ReleaseDate,
				"mpa_id":       film.MpaID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// Replace the genre set wholesale; it is unordered and unique.
		return tx.Model(film).Association("Genres").Replace(film.Genres)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Film", film.ID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *filmRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Film{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Film", id)
	}
	return nil
}

func (r *filmRepository) List(ctx context.Context, limit, offset int) ([]models.Film, error) {
	var films []models.Film
	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Preload("Mpa").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&films).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return films, nil
}

// GetPopular ranks films by like count descending. Films with no likes sort
// last; equal counts are broken by film ID ascending so the ranking is
// reproducible for a fixed data set.
func (r *filmRepository) GetPopular(ctx context.Context, limit int, filter PopularFilter) ([]models.Film, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Film{}).
		Joins("LEFT JOIN likes ON likes.film_id = films.id").
		Group("films.id").
		Order("COUNT(likes.id) DESC, films.id ASC").
		Limit(limit)

	if filter.GenreID != 0 {
		q = q.Joins("JOIN film_genres ON film_genres.film_id = films.id AND film_genres.genre_id = ?", filter.GenreID)
	}
	if filter.Year != 0 {
		// Range filter instead of a YEAR() extraction keeps the query
		// portable between postgres and the sqlite test driver.
		start := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(1, 0, 0)
		q = q.Where("films.release_date >= ? AND films.release_date < ?", start, end)
	}

	var films []models.Film
	if err := q.Preload("Genres").Preload("Mpa").Find(&films).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return films, nil
}

// GetCommonFilms returns the films liked by both users, most liked first.
func (r *filmRepository) GetCommonFilms(ctx context.Context, userID, friendID uint) ([]models.Film, error) {
	var films []models.Film
	if err := r.db.WithContext(ctx).
		Model(&models.Film{}).
		Joins("JOIN likes ul ON ul.film_id = films.id AND ul.user_id = ?", userID).
		Joins("JOIN likes fl ON fl.film_id = films.id AND fl.user_id = ?", friendID).
		Joins("LEFT JOIN likes ON likes.film_id = films.id").
		Group("films.id").
		Order("COUNT(likes.id) DESC, films.id ASC").
		Preload("Genres").
		Preload("Mpa").
		Find(&films).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return films, nil
}
