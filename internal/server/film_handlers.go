package server

import (
	"time"

	"cinegraph/internal/models"
	"cinegraph/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type filmRequest struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Duration    int            `json:"duration"`
	ReleaseDate time.Time      `json:"release_date"`
	Mpa         *idRef         `json:"mpa,omitempty"`
	Genres      []models.Genre `json:"genres"`
}

type idRef struct {
	ID uint `json:"id"`
}

func (r *filmRequest) toModel() *models.Film {
	film := &models.Film{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Duration:    r.Duration,
		ReleaseDate: r.ReleaseDate,
		Genres:      r.Genres,
	}
	if r.Mpa != nil {
		mpaID := r.Mpa.ID
		film.MpaID = &mpaID
	}
	return film
}

// CreateFilm handles POST /api/films
// @Summary Create film
// @Description Add a new film to the catalog.
// @Tags films
// @Accept json
// @Produce json
// @Param request body filmRequest true "Film"
// @Success 201 {object} models.Film
// @Failure 400 {object} models.ErrorResponse
// @Router /films [post]
func (s *Server) CreateFilm(c *fiber.Ctx) error {
	ctx := c.Context()

	var req filmRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	film, err := s.filmService.CreateFilm(ctx, req.toModel())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(film)
}

// UpdateFilm handles PUT /api/films
// @Summary Update film
// @Description Update an existing film by the ID carried in the body.
// @Tags films
// @Accept json
// @Produce json
// @Param request body filmRequest true "Film"
// @Success 200 {object} models.Film
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /films [put]
func (s *Server) UpdateFilm(c *fiber.Ctx) error {
	ctx := c.Context()

	var req filmRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Film ID is required"))
	}

	film, err := s.filmService.UpdateFilm(ctx, req.toModel())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(film)
}

// GetFilms handles GET /api/films
// @Summary List films
// @Description List films with pagination.
// @Tags films
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Film
// @Router /films [get]
func (s *Server) GetFilms(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	films, err := s.filmService.ListFilms(ctx, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(films)
}

// GetFilm handles GET /api/films/:id
// @Summary Get film
// @Description Fetch one film with its MPA rating and genres.
// @Tags films
// @Produce json
// @Param id path int true "Film ID"
// @Success 200 {object} models.Film
// @Failure 404 {object} models.ErrorResponse
// @Router /films/{id} [get]
func (s *Server) GetFilm(c *fiber.Ctx) error {
	ctx := c.Context()
	filmID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	film, err := s.filmService.GetFilm(ctx, filmID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(film)
}

// DeleteFilm handles DELETE /api/films/:id
// @Summary Delete film
// @Tags films
// @Param id path int true "Film ID"
// @Success 204 "No Content"
// @Failure 404 {object} models.ErrorResponse
// @Router /films/{id} [delete]
func (s *Server) DeleteFilm(c *fiber.Ctx) error {
	ctx := c.Context()
	filmID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.filmService.DeleteFilm(ctx, filmID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddLike handles PUT /api/films/:id/like/:userId
// @Summary Like film
// @Description Record the user's like. Repeating a like is a no-op.
// @Tags films
// @Param id path int true "Film ID"
// @Param userId path int true "User ID"
// @Success 200 "OK"
// @Failure 404 {object} models.ErrorResponse
// @Router /films/{id}/like/{userId} [put]
func (s *Server) AddLike(c *fiber.Ctx) error {
	ctx := c.Context()
	filmID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.filmService.AddLike(ctx, filmID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// RemoveLike handles DELETE /api/films/:id/like/:userId
// @Summary Unlike film
// @Description Withdraw the user's like. Removing a missing like is a no-op.
// @Tags films
// @Param id path int true "Film ID"
// @Param userId path int true "User ID"
// @Success 200 "OK"
// @Failure 404 {object} models.ErrorResponse
// @Router /films/{id}/like/{userId} [delete]
func (s *Server) RemoveLike(c *fiber.Ctx) error {
	ctx := c.Context()
	filmID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.filmService.RemoveLike(ctx, filmID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// GetPopularFilms handles GET /api/films/popular?count=&genreId=&year=
// @Summary Popular films
// @Description Rank films by like count, optionally filtered by genre and release year.
// @Tags films
// @Produce json
// @Param count query int false "Maximum films to return" default(10)
// @Param genreId query int false "Genre filter"
// @Param year query int false "Release year filter"
// @Success 200 {array} models.Film
// @Failure 400 {object} models.ErrorResponse
// @Router /films/popular [get]
func (s *Server) GetPopularFilms(c *fiber.Ctx) error {
	ctx := c.Context()

	count := c.QueryInt("count", 10)
	filter := repository.PopularFilter{
		GenreID: uint(c.QueryInt("genreId", 0)),
		Year:    c.QueryInt("year", 0),
	}

	films, err := s.filmService.GetPopular(ctx, count, filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(films)
}

// GetCommonFilms handles GET /api/films/common?userId=&friendId=
// @Summary Common films
// @Description Films liked by both users, most popular first.
// @Tags films
// @Produce json
// @Param userId query int true "User ID"
// @Param friendId query int true "Other user ID"
// @Success 200 {array} models.Film
// @Failure 404 {object} models.ErrorResponse
// @Router /films/common [get]
func (s *Server) GetCommonFilms(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseQueryID(c, "userId")
	if err != nil {
		return nil
	}
	friendID, err := s.parseQueryID(c, "friendId")
	if err != nil {
		return nil
	}

	films, err := s.filmService.GetCommonFilms(ctx, userID, friendID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(films)
}
