package models

import "time"

// FriendRequest records a pending request from one user to another.
// At most one unaccepted request may exist per ordered (from, to) pair.
//
// A request is short-lived: accepting it creates the two Friendship rows
// and deletes the record in the same transaction, and rejecting it deletes
// the record outright. The ledger never retains resolved requests.
type FriendRequest struct {
	ID         uint `gorm:"primarykey"`
	FromUserID uint `gorm:"not null;index"`
	ToUserID   uint `gorm:"not null;index"`
	Accepted   bool `gorm:"not null;default:false"`
	CreatedAt  time.Time

	FromUser User `gorm:"foreignKey:FromUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ToUser   User `gorm:"foreignKey:ToUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
