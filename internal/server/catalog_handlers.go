package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetGenres handles GET /api/genres
// @Summary List genres
// @Tags catalogs
// @Produce json
// @Success 200 {array} models.Genre
// @Router /genres [get]
func (s *Server) GetGenres(c *fiber.Ctx) error {
	genres, err := s.catalogService.ListGenres(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(genres)
}

// GetGenre handles GET /api/genres/:id
// @Summary Get genre
// @Tags catalogs
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} models.Genre
// @Failure 404 {object} models.ErrorResponse
// @Router /genres/{id} [get]
func (s *Server) GetGenre(c *fiber.Ctx) error {
	genreID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	genre, err := s.catalogService.GetGenre(c.Context(), genreID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(genre)
}

// GetMpaRatings handles GET /api/mpa
// @Summary List MPA ratings
// @Tags catalogs
// @Produce json
// @Success 200 {array} models.MpaRating
// @Router /mpa [get]
func (s *Server) GetMpaRatings(c *fiber.Ctx) error {
	ratings, err := s.catalogService.ListMpaRatings(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(ratings)
}

// GetMpaRating handles GET /api/mpa/:id
// @Summary Get MPA rating
// @Tags catalogs
// @Produce json
// @Param id path int true "MPA rating ID"
// @Success 200 {object} models.MpaRating
// @Failure 404 {object} models.ErrorResponse
// @Router /mpa/{id} [get]
func (s *Server) GetMpaRating(c *fiber.Ctx) error {
	ratingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	rating, err := s.catalogService.GetMpaRating(c.Context(), ratingID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(rating)
}
