package repository

import (
	"context"
	"errors"

	"cinegraph/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository defines the interface for review and review-vote data
// operations. Usefulness is never stored on the review row; callers derive
// it from the vote aggregates returned here.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
	ListByFilm(ctx context.Context, filmID uint) ([]models.Review, error)
	SaveVote(ctx context.Context, reviewID, userID uint, helpful bool) (changed bool, err error)
	DeleteVote(ctx context.Context, reviewID, userID uint) (removed bool, err error)
	// UsefulnessByReviewIDs returns net helpful-minus-unhelpful counts for
	// the given reviews, keyed by review ID. Reviews with no votes are absent.
	UsefulnessByReviewIDs(ctx context.Context, reviewIDs []uint) (map[uint]int, error)
}

// reviewRepository implements ReviewRepository
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	result := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]any{
			"content":  review.Content,
			"positive": review.Positive,
		})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Review", review.ID)
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Review", id)
	}
	return nil
}

func (r *reviewRepository) ListByFilm(ctx context.Context, filmID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("film_id = ?", filmID).
		Order("id ASC").
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

// SaveVote upserts the user's vote on a review and reports whether the vote
// set actually changed. A repeated identical vote returns changed=false. The
// unique index on (review_id, user_id) plus the ON CONFLICT update guarantees
// at most one row per voter under concurrent duplicate writes; the latest
// vote wins.
func (r *reviewRepository) SaveVote(ctx context.Context, reviewID, userID uint, helpful bool) (bool, error) {
	var existing models.ReviewVote
	err := r.db.WithContext(ctx).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		First(&existing).Error
	switch {
	case err == nil:
		if existing.Helpful == helpful {
			return false, nil
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, models.NewInternalError(err)
	}

	vote := models.ReviewVote{ReviewID: reviewID, UserID: userID, Helpful: helpful}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "review_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"helpful", "updated_at"}),
		}).
		Create(&vote).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return true, nil
}

func (r *reviewRepository) DeleteVote(ctx context.Context, reviewID, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		Delete(&models.ReviewVote{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *reviewRepository) UsefulnessByReviewIDs(ctx context.Context, reviewIDs []uint) (map[uint]int, error) {
	if len(reviewIDs) == 0 {
		return map[uint]int{}, nil
	}

	type row struct {
		ReviewID uint
		Useful   int
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.ReviewVote{}).
		Select("review_id, SUM(CASE WHEN helpful THEN 1 ELSE -1 END) AS useful").
		Where("review_id IN ?", reviewIDs).
		Group("review_id").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	m := make(map[uint]int, len(rows))
	for _, r := range rows {
		m[r.ReviewID] = r.Useful
	}
	return m, nil
}
