package repository

import (
	"context"

	"cinegraph/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRepository defines the interface for friendship data operations.
// The store keeps one row per edge direction; AddEdges and RemoveEdges apply
// both directions inside a single transaction so a reader can never observe
// half a friendship. Both report whether any edge actually changed, so
// callers can skip feed events for no-op writes.
type FriendRepository interface {
	AddEdges(ctx context.Context, userID, friendID uint) (added bool, err error)
	RemoveEdges(ctx context.Context, userID, friendID uint) (removed bool, err error)
	GetFriendIDs(ctx context.Context, userID uint) ([]uint, error)
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) AddEdges(ctx context.Context, userID, friendID uint) (bool, error) {
	var inserted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		edges := []models.Friendship{
			{UserID: userID, FriendID: friendID},
			{UserID: friendID, FriendID: userID},
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "friend_id"}},
			DoNothing: true,
		}).Create(&edges)
		inserted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, models.NewInconsistentStateError("Failed to apply friendship symmetrically", err)
	}
	return inserted > 0, nil
}

func (r *friendRepository) RemoveEdges(ctx context.Context, userID, friendID uint) (bool, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
				userID, friendID, friendID, userID).
			Delete(&models.Friendship{})
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return false, models.NewInconsistentStateError("Failed to remove friendship symmetrically", err)
	}
	return deleted > 0, nil
}

func (r *friendRepository) GetFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var friendIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("user_id = ?", userID).
		Order("friend_id ASC").
		Pluck("friend_id", &friendIDs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return friendIDs, nil
}
