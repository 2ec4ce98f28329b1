package service

import (
	"context"

	"cinegraph/internal/models"
	"cinegraph/internal/repository"
)

// FriendService provides mutual-friendship business logic. Friendships are
// symmetric: every public operation applies or removes both edge directions
// as one unit.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	events     *eventLogger
}

// NewFriendService returns a new FriendService.
func NewFriendService(
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		events:     newEventLogger(eventRepo),
	}
}

// AddFriend makes the two users friends of each other.
func (s *FriendService) AddFriend(ctx context.Context, userID, friendID uint) error {
	if userID == friendID {
		return models.NewValidationError("Cannot add yourself as a friend")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, friendID); err != nil {
		return err
	}

	added, err := s.friendRepo.AddEdges(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if added {
		s.events.record(ctx, userID, models.EventTypeFriend, models.EventOperationAdd, friendID)
	}
	return nil
}

// RemoveFriend dissolves the friendship between the two users. Removing a
// friendship that does not exist is a no-op.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, friendID); err != nil {
		return err
	}

	removed, err := s.friendRepo.RemoveEdges(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if removed {
		s.events.record(ctx, userID, models.EventTypeFriend, models.EventOperationRemove, friendID)
	}
	return nil
}

// GetFriends returns the user's friends.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	friendIDs, err := s.friendRepo.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByIDs(ctx, friendIDs)
}

// GetCommonFriends returns the intersection of the two users' friend sets.
func (s *FriendService) GetCommonFriends(ctx context.Context, userID, otherID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}

	userFriends, err := s.friendRepo.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	otherFriends, err := s.friendRepo.GetFriendIDs(ctx, otherID)
	if err != nil {
		return nil, err
	}

	otherSet := make(map[uint]struct{}, len(otherFriends))
	for _, id := range otherFriends {
		otherSet[id] = struct{}{}
	}

	var common []uint
	for _, id := range userFriends {
		if _, ok := otherSet[id]; ok {
			common = append(common, id)
		}
	}
	return s.userRepo.GetByIDs(ctx, common)
}
