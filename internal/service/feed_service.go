package service

import (
	"context"

	"cinegraph/internal/models"
	"cinegraph/internal/repository"
)

// FeedService assembles a user's activity feed from the events of the user's
// friends.
type FeedService struct {
	eventRepo  repository.EventRepository
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(
	eventRepo repository.EventRepository,
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
) *FeedService {
	return &FeedService{
		eventRepo:  eventRepo,
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// GetFeed returns the events generated by the user's friends, newest first.
// The user's own events are not part of their feed. A user without friends
// gets an empty feed.
func (s *FeedService) GetFeed(ctx context.Context, userID uint) ([]models.Event, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	friendIDs, err := s.friendRepo.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(friendIDs) == 0 {
		return []models.Event{}, nil
	}
	return s.eventRepo.ListByActors(ctx, friendIDs)
}
