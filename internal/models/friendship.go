package models

import "time"

// Friendship is a single directed edge of a mutual friendship.
// The storage model is one row per direction; the friend service always
// writes and removes both directions inside one transaction, so readers
// never observe a half-applied friendship.
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_friendship_edge" json:"user_id"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_friendship_edge" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User   User `gorm:"foreignKey:UserID" json:"-"`
	Friend User `gorm:"foreignKey:FriendID" json:"-"`
}
