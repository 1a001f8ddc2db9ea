package handler

import (
	"fmt"
	"net/http"
	"testing"

	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"
)

// befriend inserts both symmetric friendship rows directly.
func befriend(t *testing.T, a, b models.User) {
	t.Helper()

	friendships := []models.Friendship{
		{UserID: a.ID, FriendID: b.ID},
		{UserID: b.ID, FriendID: a.ID},
	}
	if err := database.DB.Create(&friendships).Error; err != nil {
		t.Fatalf("failed to create friendship: %v", err)
	}
}

func TestListFriends(t *testing.T) {
	router := setupTest(t)
	alice := createUser(t, "alice@example.com", "password123")
	bob := createUser(t, "bob@example.com", "password123")
	carol := createUser(t, "carol@example.com", "password123")
	befriend(t, alice, bob)
	befriend(t, alice, carol)

	w := doRequest(router, http.MethodGet, "/api/v1/friends", tokenFor(t, alice.ID), nil)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if body["count"] != float64(2) {
		t.Fatalf("count = %v, want 2 (body: %s)", body["count"], w.Body.String())
	}

	results := body["results"].([]interface{})
	seen := make(map[string]int)
	for _, r := range results {
		seen[r.(map[string]interface{})["email"].(string)]++
	}
	if seen["bob@example.com"] != 1 || seen["carol@example.com"] != 1 {
		t.Errorf("friends = %v, want bob and carol exactly once each", seen)
	}

	// Bob only sees alice
	w = doRequest(router, http.MethodGet, "/api/v1/friends", tokenFor(t, bob.ID), nil)
	assertStatus(t, w, http.StatusOK)
	if body := decodeBody(t, w); body["count"] != float64(1) {
		t.Errorf("bob's count = %v, want 1", body["count"])
	}
}

func TestListFriendsEmpty(t *testing.T) {
	router := setupTest(t)
	alice := createUser(t, "alice@example.com", "password123")

	w := doRequest(router, http.MethodGet, "/api/v1/friends", tokenFor(t, alice.ID), nil)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if body["count"] != float64(0) {
		t.Errorf("count = %v, want 0", body["count"])
	}
	if body["results"] == nil {
		t.Error("results must be an empty list, not null")
	}
}

func TestRemoveFriend(t *testing.T) {
	router := setupTest(t)
	alice := createUser(t, "alice@example.com", "password123")
	bob := createUser(t, "bob@example.com", "password123")
	befriend(t, alice, bob)

	w := doRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/friends/%d", bob.ID), tokenFor(t, alice.ID), nil)
	assertStatus(t, w, http.StatusOK)

	// Both symmetric rows are gone
	var count int64
	database.DB.Model(&models.Friendship{}).Count(&count)
	if count != 0 {
		t.Errorf("friendship rows = %d, want 0", count)
	}
}

func TestRemoveFriendNotFriends(t *testing.T) {
	router := setupTest(t)
	alice := createUser(t, "alice@example.com", "password123")
	bob := createUser(t, "bob@example.com", "password123")

	w := doRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/friends/%d", bob.ID), tokenFor(t, alice.ID), nil)
	assertStatus(t, w, http.StatusNotFound)
	assertErrorCode(t, w, CodeNotFound)
}

func TestFriendRoutesRequireAuth(t *testing.T) {
	router := setupTest(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/friends"},
		{http.MethodGet, "/api/v1/friend-requests/pending"},
		{http.MethodPost, "/api/v1/friend-requests"},
	}
	for _, p := range paths {
		w := doRequest(router, p.method, p.path, "", nil)
		assertStatus(t, w, http.StatusUnauthorized)
	}
}
