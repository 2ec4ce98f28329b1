package server

import (
	"cinegraph/internal/models"

	"github.com/gofiber/fiber/v2"
)

type reviewRequest struct {
	ID       uint   `json:"review_id"`
	FilmID   uint   `json:"film_id"`
	UserID   uint   `json:"user_id"`
	Content  string `json:"content"`
	Positive bool   `json:"is_positive"`
}

// CreateReview handles POST /api/reviews
// @Summary Create review
// @Description Add a review for a film. Content is capped at 250 characters.
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body reviewRequest true "Review"
// @Success 201 {object} models.Review
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews [post]
func (s *Server) CreateReview(c *fiber.Ctx) error {
	ctx := c.Context()

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(ctx, &models.Review{
		FilmID:   req.FilmID,
		UserID:   req.UserID,
		Content:  req.Content,
		Positive: req.Positive,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// UpdateReview handles PUT /api/reviews
// @Summary Update review
// @Description Update the content and verdict of an existing review. Authorship and film binding never change.
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body reviewRequest true "Review"
// @Success 200 {object} models.Review
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews [put]
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	ctx := c.Context()

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Review ID is required"))
	}

	review, err := s.reviewService.UpdateReview(ctx, &models.Review{
		ID:       req.ID,
		Content:  req.Content,
		Positive: req.Positive,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(review)
}

// GetReview handles GET /api/reviews/:id
// @Summary Get review
// @Description Fetch one review with its usefulness computed from current votes.
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} models.Review
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id} [get]
func (s *Server) GetReview(c *fiber.Ctx) error {
	ctx := c.Context()
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, err := s.reviewService.GetReview(ctx, reviewID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(review)
}

// DeleteReview handles DELETE /api/reviews/:id
// @Summary Delete review
// @Tags reviews
// @Param id path int true "Review ID"
// @Success 204 "No Content"
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id} [delete]
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	ctx := c.Context()
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reviewService.DeleteReview(ctx, reviewID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetReviewsByFilm handles GET /api/reviews?filmId=&count=
// @Summary List reviews for film
// @Description At most count reviews for the film, most useful first.
// @Tags reviews
// @Produce json
// @Param filmId query int true "Film ID"
// @Param count query int false "Maximum reviews to return" default(10)
// @Success 200 {array} models.Review
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews [get]
func (s *Server) GetReviewsByFilm(c *fiber.Ctx) error {
	ctx := c.Context()
	filmID, err := s.parseQueryID(c, "filmId")
	if err != nil {
		return nil
	}
	count := c.QueryInt("count", 10)

	reviews, err := s.reviewService.GetReviewsByFilm(ctx, filmID, count)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reviews)
}

// AddReviewLike handles PUT /api/reviews/:id/like/:userId
// @Summary Mark review helpful
// @Description Record a helpful vote. A voter holds at most one vote per review; a repeated vote is a no-op.
// @Tags reviews
// @Param id path int true "Review ID"
// @Param userId path int true "User ID"
// @Success 200 "OK"
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id}/like/{userId} [put]
func (s *Server) AddReviewLike(c *fiber.Ctx) error {
	return s.addReviewVote(c, true)
}

// AddReviewDislike handles PUT /api/reviews/:id/dislike/:userId
// @Summary Mark review unhelpful
// @Description Record an unhelpful vote, replacing any helpful vote the user held.
// @Tags reviews
// @Param id path int true "Review ID"
// @Param userId path int true "User ID"
// @Success 200 "OK"
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id}/dislike/{userId} [put]
func (s *Server) AddReviewDislike(c *fiber.Ctx) error {
	return s.addReviewVote(c, false)
}

func (s *Server) addReviewVote(c *fiber.Ctx, helpful bool) error {
	ctx := c.Context()
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.reviewService.AddVote(ctx, reviewID, userID, helpful); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// RemoveReviewVote handles DELETE /api/reviews/:id/like/:userId and
// DELETE /api/reviews/:id/dislike/:userId. A voter holds at most one vote
// per review, so both routes remove the same row.
// @Summary Withdraw review vote
// @Description Remove the user's vote on the review. Removing a missing vote is a no-op.
// @Tags reviews
// @Param id path int true "Review ID"
// @Param userId path int true "User ID"
// @Success 200 "OK"
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id}/like/{userId} [delete]
func (s *Server) RemoveReviewVote(c *fiber.Ctx) error {
	ctx := c.Context()
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.reviewService.RemoveVote(ctx, reviewID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
