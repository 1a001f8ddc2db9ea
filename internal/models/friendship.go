package models

import "time"

// Friendship is one direction of a confirmed friendship. Every friendship
// is stored as two symmetric rows (A→B and B→A) so membership can be
// queried from either side without an OR over both columns.
//
// Rows are only ever created as the side effect of accepting a
// FriendRequest, never directly by a client.
type Friendship struct {
	ID        uint `gorm:"primarykey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_friendship_pair"`
	FriendID  uint `gorm:"not null;uniqueIndex:idx_friendship_pair"`
	CreatedAt time.Time

	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Friend User `gorm:"foreignKey:FriendID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
