package server

import (
	"cinegraph/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ComputeRecommendations handles POST /api/recommendations/compute.
// It runs the batch recommendation pass synchronously and reports run stats.
// @Summary Recompute recommendations
// @Description Run the collaborative-filter batch pass for every user with likes. Per-user failures are reported, not fatal.
// @Tags recommendations
// @Produce json
// @Param max query int false "Per-user candidate cap (defaults to server config)"
// @Success 200 {object} map[string]interface{}
// @Success 207 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Router /recommendations/compute [post]
func (s *Server) ComputeRecommendations(c *fiber.Ctx) error {
	ctx := c.Context()

	maxPerUser := c.QueryInt("max", s.config.RecommendMaxPerUser)

	stats, err := s.recService.ComputeAll(ctx, maxPerUser)
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	if stats.UsersFailed > 0 {
		// Partial failure: some users kept their previous recommendation set.
		return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
			"users_processed": stats.UsersProcessed,
			"users_failed":    stats.UsersFailed,
			"duration_ms":     stats.Duration.Milliseconds(),
			"error": models.ErrorResponse{
				Error: "Some users could not be processed",
				Code:  "PARTIAL_FAILURE",
			},
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"users_processed": stats.UsersProcessed,
		"users_failed":    stats.UsersFailed,
		"duration_ms":     stats.Duration.Milliseconds(),
	})
}
