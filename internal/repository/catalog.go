package repository

import (
	"context"
	"errors"

	"cinegraph/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository serves the small static catalogs (genres, MPA ratings).
type CatalogRepository interface {
	ListGenres(ctx context.Context) ([]models.Genre, error)
	GetGenre(ctx context.Context, id uint) (*models.Genre, error)
	ListMpaRatings(ctx context.Context) ([]models.MpaRating, error)
	GetMpaRating(ctx context.Context, id uint) (*models.MpaRating, error)
}

// catalogRepository implements CatalogRepository
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListGenres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&genres).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return genres, nil
}

func (r *catalogRepository) GetGenre(ctx context.Context, id uint) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Genre", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &genre, nil
}

func (r *catalogRepository) ListMpaRatings(ctx context.Context) ([]models.MpaRating, error) {
	var ratings []models.MpaRating
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}

func (r *catalogRepository) GetMpaRating(ctx context.Context, id uint) (*models.MpaRating, error) {
	var rating models.MpaRating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("MPA rating", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}
