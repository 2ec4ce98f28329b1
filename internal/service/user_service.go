package service

import (
	"context"

	"cinegraph/internal/models"
	"cinegraph/internal/repository"
	"cinegraph/internal/validation"
)

// UserService provides user account business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser validates and stores a new user. An empty display name falls
// back to the login.
func (s *UserService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validation.ValidateUser(user); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, user.ID)
}

// UpdateUser validates and updates an existing user.
func (s *UserService) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validation.ValidateUser(user); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, user.ID)
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// DeleteUser removes a user account.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}

// ListUsers returns a page of users ordered by ID.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}
