// Package throttle rate-limits friend request creation per sender.
//
// The window is computed from the persisted request rows rather than from
// in-process counters, so the limit survives restarts and holds across
// multiple service instances.
package throttle

import (
	"time"

	"socialnet/backend/internal/models"

	"gorm.io/gorm"
)

// Limiter caps how many friend requests a sender may create inside a
// trailing time window.
type Limiter struct {
	Limit  int
	Window time.Duration
}

// New returns a Limiter allowing limit creations per window.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{Limit: limit, Window: window}
}

// Allow reports whether the sender may create another friend request.
// It counts the sender's request rows created inside the trailing window;
// requests resolved (accepted or rejected) before the check leave the
// ledger and no longer count.
func (l *Limiter) Allow(db *gorm.DB, senderID uint) (bool, error) {
	cutoff := time.Now().Add(-l.Window)

	var recent int64
	err := db.Model(&models.FriendRequest{}).
		Where("from_user_id = ? AND created_at >= ?", senderID, cutoff).
		Count(&recent).Error
	if err != nil {
		return false, err
	}

	return recent < int64(l.Limit), nil
}
