package service

import (
	"context"
	"sort"

	"cinegraph/internal/models"
	"cinegraph/internal/repository"
)

const maxReviewContentLen = 250

// ReviewService provides review and review-vote business logic. A review's
// usefulness (net helpful minus unhelpful votes) is always recomputed from
// the current vote set at read time, never served from a stored value.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	filmRepo   repository.FilmRepository
	userRepo   repository.UserRepository
	events     *eventLogger
}

// NewReviewService returns a new ReviewService.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	filmRepo repository.FilmRepository,
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		filmRepo:   filmRepo,
		userRepo:   userRepo,
		events:     newEventLogger(eventRepo),
	}
}

// CreateReview validates and stores a new review.
func (s *ReviewService) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.Content == "" {
		return nil, models.NewValidationError("Review content is required")
	}
	if len(review.Content) > maxReviewContentLen {
		return nil, models.NewValidationError("Review content must be at most 250 characters")
	}
	if _, err := s.filmRepo.GetByID(ctx, review.FilmID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, review.UserID); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.events.record(ctx, review.UserID, models.EventTypeReview, models.EventOperationAdd, review.ID)
	return s.GetReview(ctx, review.ID)
}

// UpdateReview updates the content and polarity of an existing review.
func (s *ReviewService) UpdateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.Content == "" {
		return nil, models.NewValidationError("Review content is required")
	}
	if len(review.Content) > maxReviewContentLen {
		return nil, models.NewValidationError("Review content must be at most 250 characters")
	}
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return s.GetReview(ctx, review.ID)
}

// DeleteReview removes a review.
func (s *ReviewService) DeleteReview(ctx context.Context, id uint) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.record(ctx, review.UserID, models.EventTypeReview, models.EventOperationRemove, id)
	return nil
}

// GetReview returns a review with its usefulness computed from current votes.
func (s *ReviewService) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	useful, err := s.reviewRepo.UsefulnessByReviewIDs(ctx, []uint{id})
	if err != nil {
		return nil, err
	}
	review.Usefulness = useful[id]
	return review, nil
}

// Usefulness returns the review's net helpful-minus-unhelpful vote count.
func (s *ReviewService) Usefulness(ctx context.Context, reviewID uint) (int, error) {
	review, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return 0, err
	}
	return review.Usefulness, nil
}

// GetReviewsByFilm returns at most count reviews for the film, most useful
// first. Ties are broken by review ID ascending so the ordering is stable.
func (s *ReviewService) GetReviewsByFilm(ctx context.Context, filmID uint, count int) ([]models.Review, error) {
	if count <= 0 {
		return nil, models.NewValidationError("Review count must be positive")
	}
	if _, err := s.filmRepo.GetByID(ctx, filmID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByFilm(ctx, filmID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.ID)
	}
	useful, err := s.reviewRepo.UsefulnessByReviewIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		reviews[i].Usefulness = useful[reviews[i].ID]
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		if reviews[i].Usefulness != reviews[j].Usefulness {
			return reviews[i].Usefulness > reviews[j].Usefulness
		}
		return reviews[i].ID < reviews[j].ID
	})

	if len(reviews) > count {
		reviews = reviews[:count]
	}
	return reviews, nil
}

// AddVote records the user's helpfulness vote on a review. A repeated vote
// by the same user is idempotent and appends no feed event; a switched vote
// flips the user's single contribution rather than adding a second one.
func (s *ReviewService) AddVote(ctx context.Context, reviewID, userID uint, helpful bool) error {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	changed, err := s.reviewRepo.SaveVote(ctx, reviewID, userID, helpful)
	if err != nil {
		return err
	}
	if changed {
		s.events.record(ctx, userID, models.EventTypeReview, models.EventOperationAdd, reviewID)
	}
	return nil
}

// RemoveVote withdraws the user's vote on a review. Removing a vote that
// does not exist is a no-op.
func (s *ReviewService) RemoveVote(ctx context.Context, reviewID, userID uint) error {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	removed, err := s.reviewRepo.DeleteVote(ctx, reviewID, userID)
	if err != nil {
		return err
	}
	if removed {
		s.events.record(ctx, userID, models.EventTypeReview, models.EventOperationRemove, reviewID)
	}
	return nil
}
