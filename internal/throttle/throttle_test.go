package throttle

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"socialnet/backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.FriendRequest{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedRequest(t *testing.T, db *gorm.DB, from, to uint, createdAt time.Time) {
	t.Helper()

	request := models.FriendRequest{FromUserID: from, ToUserID: to}
	if err := db.Create(&request).Error; err != nil {
		t.Fatalf("failed to seed request: %v", err)
	}
	if err := db.Model(&models.FriendRequest{}).Where("id = ?", request.ID).Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("failed to backdate request: %v", err)
	}
}

func TestLimiterAllow(t *testing.T) {
	db := openTestDB(t)
	limiter := New(3, time.Minute)
	now := time.Now()

	tests := []struct {
		name   string
		seed   func()
		sender uint
		want   bool
	}{
		{
			name:   "no prior requests",
			seed:   func() {},
			sender: 1,
			want:   true,
		},
		{
			name: "below the limit",
			seed: func() {
				seedRequest(t, db, 2, 10, now)
				seedRequest(t, db, 2, 11, now)
			},
			sender: 2,
			want:   true,
		},
		{
			name: "at the limit",
			seed: func() {
				seedRequest(t, db, 3, 10, now)
				seedRequest(t, db, 3, 11, now)
				seedRequest(t, db, 3, 12, now)
			},
			sender: 3,
			want:   false,
		},
		{
			name: "old requests age out",
			seed: func() {
				old := now.Add(-2 * time.Minute)
				seedRequest(t, db, 4, 10, old)
				seedRequest(t, db, 4, 11, old)
				seedRequest(t, db, 4, 12, old)
			},
			sender: 4,
			want:   true,
		},
		{
			name: "other senders do not count",
			seed: func() {
				seedRequest(t, db, 6, 10, now)
				seedRequest(t, db, 6, 11, now)
				seedRequest(t, db, 6, 12, now)
			},
			sender: 5,
			want:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.seed()
			got, err := limiter.Allow(db, tt.sender)
			if err != nil {
				t.Fatalf("Allow() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Allow() = %v, want %v", got, tt.want)
			}
		})
	}
}
