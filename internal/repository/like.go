package repository

import (
	"context"

	"cinegraph/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for film-like data operations.
// Likes have set semantics: Save is idempotent and Delete of a missing like
// is a no-op.
type LikeRepository interface {
	Save(ctx context.Context, userID, filmID uint) (created bool, err error)
	Delete(ctx context.Context, userID, filmID uint) (removed bool, err error)
	// GetUsersLikesMap snapshots the entire like graph as userID -> set of
	// filmIDs. The recommendation batch operates on this snapshot only.
	GetUsersLikesMap(ctx context.Context) (map[uint]map[uint]struct{}, error)
}

// likeRepository implements LikeRepository
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Save(ctx context.Context, userID, filmID uint) (bool, error) {
	like := models.Like{UserID: userID, FilmID: filmID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "film_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return false, nil
		}
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, filmID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND film_id = ?", userID, filmID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *likeRepository) GetUsersLikesMap(ctx context.Context) (map[uint]map[uint]struct{}, error) {
	var likes []models.Like
	if err := r.db.WithContext(ctx).
		Select("user_id", "film_id").
		Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	m := make(map[uint]map[uint]struct{})
	for _, l := range likes {
		set, ok := m[l.UserID]
		if !ok {
			set = make(map[uint]struct{})
			m[l.UserID] = set
		}
		set[l.FilmID] = struct{}{}
	}
	return m, nil
}
