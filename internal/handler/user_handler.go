package handler

import (
	"net/http"
	"strings"

	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ProfileResponse defines the structure for the authenticated user's own profile.
type ProfileResponse struct {
	ID              uint   `json:"id" example:"1"`
	Email           string `json:"email" example:"test@example.com"`
	Username        string `json:"username,omitempty" example:"testuser"`
	FriendsCount    int64  `json:"friends_count"`
	PendingRequests int64  `json:"pending_requests"`
}

// SearchUsers godoc
// @Summary      Search for users
// @Description  Searches for users by a case-insensitive keyword over email and username, with pagination.
// @Tags         users
// @Produce      json
// @Param        q         query     string  true   "Search keyword"
// @Param        page      query     int     false  "Page number" default(1)
// @Param        page_size query     int     false  "Items per page" default(10)
// @Success      200   {object}  Page[UserResponse]
// @Failure      400   {object}  ErrorResponse
// @Router       /users [get]
func SearchUsers(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		respondError(c, http.StatusBadRequest, CodeValidation, "Search keyword 'q' is required")
		return
	}

	// LOWER/LIKE instead of ILIKE keeps the query portable across drivers.
	pattern := "%" + strings.ToLower(keyword) + "%"
	query := database.DB.Model(&models.User{}).
		Where("LOWER(email) LIKE ? OR LOWER(username) LIKE ?", pattern, pattern).
		Order("id")

	page, err := Paginate[models.User](c, query)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "Failed to retrieve users")
		return
	}

	results := make([]UserResponse, 0, len(page.Results))
	for _, user := range page.Results {
		results = append(results, buildUserResponse(user))
	}

	c.JSON(http.StatusOK, NewPage(page, results))
}

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the profile for the currently authenticated user, with friend and pending-request counts.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, viewerID.(uint)).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "User not found")
		return
	}

	var friendsCount, pendingCount int64
	database.DB.Model(&models.Friendship{}).Where("user_id = ?", user.ID).Count(&friendsCount)
	database.DB.Model(&models.FriendRequest{}).Where("to_user_id = ? AND accepted = ?", user.ID, false).Count(&pendingCount)

	c.JSON(http.StatusOK, ProfileResponse{
		ID:              user.ID,
		Email:           user.Email,
		Username:        user.Username,
		FriendsCount:    friendsCount,
		PendingRequests: pendingCount,
	})
}
