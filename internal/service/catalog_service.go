package service

import (
	"context"

	"cinegraph/internal/models"
	"cinegraph/internal/repository"
)

// CatalogService serves the static reference catalogs.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService returns a new CatalogService.
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

func (s *CatalogService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return s.catalogRepo.ListGenres(ctx)
}

func (s *CatalogService) GetGenre(ctx context.Context, id uint) (*models.Genre, error) {
	return s.catalogRepo.GetGenre(ctx, id)
}

func (s *CatalogService) ListMpaRatings(ctx context.Context) ([]models.MpaRating, error) {
	return s.catalogRepo.ListMpaRatings(ctx)
}

func (s *CatalogService) GetMpaRating(ctx context.Context, id uint) (*models.MpaRating, error) {
	return s.catalogRepo.GetMpaRating(ctx, id)
}
