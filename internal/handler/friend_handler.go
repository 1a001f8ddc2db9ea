package handler

import (
	"net/http"
	"strconv"
	"time"

	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// FriendResponse defines one entry of the friends list.
type FriendResponse struct {
	ID       uint      `json:"id" example:"1"`
	Email    string    `json:"email" example:"friend@example.com"`
	Username string    `json:"username,omitempty" example:"frienduser"`
	Since    time.Time `json:"since"`
}

// ListFriends godoc
// @Summary      List friends
// @Description  Lists the authenticated user's confirmed friends, with pagination.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page number" default(1)
// @Param        page_size query     int  false  "Items per page" default(10)
// @Success      200  {object}  Page[FriendResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friends [get]
func ListFriends(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	query := database.DB.Model(&models.Friendship{}).
		Where("user_id = ?", viewerID).
		Preload("Friend").
		Order("id")

	page, err := Paginate[models.Friendship](c, query)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "Failed to fetch friends")
		return
	}

	// The same counterpart must never appear twice
	seen := make(map[uint]bool, len(page.Results))
	results := make([]FriendResponse, 0, len(page.Results))
	for _, f := range page.Results {
		if f.Friend.ID == 0 || seen[f.Friend.ID] {
			continue
		}
		seen[f.Friend.ID] = true
		results = append(results, FriendResponse{
			ID:       f.Friend.ID,
			Email:    f.Friend.Email,
			Username: f.Friend.Username,
			Since:    f.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, NewPage(page, results))
}

// RemoveFriend godoc
// @Summary      Remove a friend
// @Description  Removes an existing friendship with the given user. Deletes both symmetric rows.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friend user ID"
// @Success      200  {object}  map[string]string "{"message": "Friend removed"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Not friends with this user"
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/{id} [delete]
func RemoveFriend(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	friendID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "Invalid friend user ID")
		return
	}

	result := database.DB.
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			viewerID, friendID, friendID, viewerID).
		Delete(&models.Friendship{})
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "Failed to remove friend")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, CodeNotFound, "You are not friends with this user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}
