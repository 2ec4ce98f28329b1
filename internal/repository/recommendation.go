package repository

import (
	"context"

	"cinegraph/internal/models"

	"gorm.io/gorm"
)

// RecommendationRepository defines the interface for stored recommendation
// sets. ReplaceForUser fully overwrites a user's set; the batch job never
// merges into a previous run's output.
type RecommendationRepository interface {
	ReplaceForUser(ctx context.Context, userID uint, filmIDs []uint) error
	GetFilmIDsForUser(ctx context.Context, userID uint) ([]uint, error)
}

// recommendationRepository implements RecommendationRepository
type recommendationRepository struct {
	db *gorm.DB
}

// NewRecommendationRepository creates a new recommendation repository
func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) ReplaceForUser(ctx context.Context, userID uint, filmIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&models.Recommendation{}).Error; err != nil {
			return err
		}
		if len(filmIDs) == 0 {
			return nil
		}
		recs := make([]models.Recommendation, 0, len(filmIDs))
		for _, filmID := range filmIDs {
			recs = append(recs, models.Recommendation{UserID: userID, FilmID: filmID})
		}
		return tx.Create(&recs).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recommendationRepository) GetFilmIDsForUser(ctx context.Context, userID uint) ([]uint, error) {
	var filmIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Recommendation{}).
		Where("user_id = ?", userID).
		Order("film_id ASC").
		Pluck("film_id", &filmIDs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return filmIDs, nil
}
