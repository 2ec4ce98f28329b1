package server

import (
	"time"

	"cinegraph/internal/models"

	"github.com/gofiber/fiber/v2"
)

type userRequest struct {
	ID       uint      `json:"id"`
	Email    string    `json:"email"`
	Login    string    `json:"login"`
	Name     string    `json:"name"`
	Birthday time.Time `json:"birthday"`
}

func (r *userRequest) toModel() *models.User {
	return &models.User{
		ID:       r.ID,
		Email:    r.Email,
		Login:    r.Login,
		Name:     r.Name,
		Birthday: r.Birthday,
	}
}

// CreateUser handles POST /api/users
// @Summary Create user
// @Description Register a new user. An empty display name falls back to the login.
// @Tags users
// @Accept json
// @Produce json
// @Param request body userRequest true "User"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	ctx := c.Context()

	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CreateUser(ctx, req.toModel())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser handles PUT /api/users
// @Summary Update user
// @Description Update an existing user by the ID carried in the body.
// @Tags users
// @Accept json
// @Produce json
// @Param request body userRequest true "User"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users [put]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	ctx := c.Context()

	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("User ID is required"))
	}

	user, err := s.userService.UpdateUser(ctx, req.toModel())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUsers handles GET /api/users
// @Summary List users
// @Description List users with pagination.
// @Tags users
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	users, err := s.userService.ListUsers(ctx, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /api/users/:id
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id
// @Summary Delete user
// @Tags users
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(ctx, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddFriend handles PUT /api/users/:id/friends/:friendId
// @Summary Add friend
// @Description Make the two users friends of each other. The friendship is symmetric.
// @Tags users
// @Param id path int true "User ID"
// @Param friendId path int true "Friend's user ID"
// @Success 200 "OK"
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friends/{friendId} [put]
func (s *Server) AddFriend(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	friendID, err := s.parseID(c, "friendId")
	if err != nil {
		return nil
	}

	if err := s.friendService.AddFriend(ctx, userID, friendID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// RemoveFriend handles DELETE /api/users/:id/friends/:friendId
// @Summary Remove friend
// @Description Dissolve the friendship from both sides. Removing a missing friendship is a no-op.
// @Tags users
// @Param id path int true "User ID"
// @Param friendId path int true "Friend's user ID"
// @Success 200 "OK"
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friends/{friendId} [delete]
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	friendID, err := s.parseID(c, "friendId")
	if err != nil {
		return nil
	}

	if err := s.friendService.RemoveFriend(ctx, userID, friendID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// GetFriends handles GET /api/users/:id/friends
// @Summary List friends
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friends [get]
func (s *Server) GetFriends(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	friends, err := s.friendService.GetFriends(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(friends)
}

// GetCommonFriends handles GET /api/users/:id/friends/common/:otherId
// @Summary Common friends
// @Description The intersection of the two users' friend sets.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param otherId path int true "Other user ID"
// @Success 200 {array} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friends/common/{otherId} [get]
func (s *Server) GetCommonFriends(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	otherID, err := s.parseID(c, "otherId")
	if err != nil {
		return nil
	}

	friends, err := s.friendService.GetCommonFriends(ctx, userID, otherID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(friends)
}

// GetFeed handles GET /api/users/:id/feed
// @Summary Activity feed
// @Description Recent like, friendship and review events of the user's friends, newest first.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.Event
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/feed [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	feed, err := s.feedService.GetFeed(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// GetRecommendations handles GET /api/users/:id/recommendations
// @Summary Recommended films
// @Description The user's stored recommendation set from the latest batch pass.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.Film
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/recommendations [get]
func (s *Server) GetRecommendations(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	films, err := s.recService.GetForUser(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(films)
}
