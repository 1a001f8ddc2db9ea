package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"socialnet/backend/internal/config"
	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"
	"socialnet/backend/internal/throttle"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SendFriendRequestInput defines the structure for creating a friend request.
// The target user is addressed by email.
type SendFriendRequestInput struct {
	ToUser string `json:"to_user" binding:"required,email" example:"friend@example.com"`
}

// PendingRequestResponse defines one entry of the pending-requests list,
// projected to the sender's identity.
type PendingRequestResponse struct {
	ID            uint      `json:"id" example:"1"`
	FromUserEmail string    `json:"from_user_email" example:"sender@example.com"`
	CreatedAt     time.Time `json:"created_at"`
}

var errAlreadyAccepted = errors.New("friend request already accepted")

func requestLimiter() *throttle.Limiter {
	return throttle.New(config.AppConfig.ThrottleLimit, time.Duration(config.AppConfig.ThrottleWindow)*time.Second)
}

// SendFriendRequest godoc
// @Summary      Send friend request
// @Description  Creates a pending friend request addressed to another user by email.
// @Tags         friend-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendFriendRequestInput true "Target user"
// @Success      201  {object}  map[string]interface{} "{"id": 1, "message": "Friend request sent successfully"}"
// @Failure      400  {object}  ErrorResponse "Malformed input or self-request"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Duplicate pending request"
// @Failure      429  {object}  ErrorResponse "Send limit reached"
// @Failure      500  {object}  ErrorResponse
// @Router       /friend-requests [post]
func SendFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input SendFriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}

	allowed, err := requestLimiter().Allow(database.DB, viewerID.(uint))
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "Failed to check request limit")
		return
	}
	if !allowed {
		respondError(c, http.StatusTooManyRequests, CodeRateLimited, "You cannot send more than 3 friend requests within a minute")
		return
	}

	var toUser models.User
	if err := database.DB.Where("email = ?", input.ToUser).First(&toUser).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "User with email "+input.ToUser+" does not exist")
		return
	}

	if toUser.ID == viewerID.(uint) {
		respondError(c, http.StatusBadRequest, CodeValidation, "You cannot send a friend request to yourself")
		return
	}

	// Check for an outstanding request for this ordered pair
	var existing models.FriendRequest
	err = database.DB.Where("from_user_id = ? AND to_user_id = ? AND accepted = ?", viewerID, toUser.ID, false).First(&existing).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusConflict, CodeConflict, "You have already sent a friend request to this user")
		return
	}

	request := models.FriendRequest{
		FromUserID: viewerID.(uint),
		ToUserID:   toUser.ID,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "Failed to create friend request")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": request.ID, "message": "Friend request sent successfully"})
}

// AcceptFriendRequest godoc
// @Summary      Accept friend request
// @Description  Accepts a pending friend request addressed to the authenticated user. Creates the symmetric friendship and consumes the request.
// @Tags         friend-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friend request ID"
// @Success      200  {object}  map[string]string "{"message": "Friend request accepted successfully"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Request not addressed to the acting user"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      409  {object}  ErrorResponse "Already accepted"
// @Failure      500  {object}  ErrorResponse
// @Router       /friend-requests/{id}/accept [post]
func AcceptFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "Invalid friend request ID")
		return
	}

	request, ok := loadOwnRequest(c, uint(requestID), viewerID.(uint))
	if !ok {
		return
	}

	// Mark accepted, create both friendship rows and consume the request as
	// one atomic step. The accepted flag is re-checked inside the transaction
	// so concurrent accepts cannot create the friendship twice.
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var fresh models.FriendRequest
		if err := tx.First(&fresh, request.ID).Error; err != nil {
			return err
		}
		if fresh.Accepted {
			return errAlreadyAccepted
		}

		if err := tx.Model(&models.FriendRequest{}).Where("id = ?", fresh.ID).Update("accepted", true).Error; err != nil {
			return err
		}

		friendships := []models.Friendship{
			{UserID: fresh.FromUserID, FriendID: fresh.ToUserID},
			{UserID: fresh.ToUserID, FriendID: fresh.FromUserID},
		}
		if err := tx.Create(&friendships).Error; err != nil {
			return err
		}

		return tx.Delete(&models.FriendRequest{}, fresh.ID).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondError(c, http.StatusNotFound, CodeNotFound, "Friend request not found")
		case errors.Is(err, errAlreadyAccepted):
			respondError(c, http.StatusConflict, CodeConflict, "This friend request has already been accepted")
		default:
			respondError(c, http.StatusInternalServerError, CodeInternal, "Failed to accept friend request")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted successfully"})
}

// RejectFriendRequest godoc
// @Summary      Reject friend request
// @Description  Rejects a pending friend request addressed to the authenticated user and removes it from the ledger.
// @Tags         friend-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friend request ID"
// @Success      200  {object}  map[string]string "{"message": "Friend request rejected successfully"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Request not addressed to the acting user"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      409  {object}  ErrorResponse "Already accepted"
// @Failure      500  {object}  ErrorResponse
// @Router       /friend-requests/{id}/reject [post]
func RejectFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "Invalid friend request ID")
		return
	}

	request, ok := loadOwnRequest(c, uint(requestID), viewerID.(uint))
	if !ok {
		return
	}

	result := database.DB.Where("accepted = ?", false).Delete(&models.FriendRequest{}, request.ID)
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "Failed to reject friend request")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, CodeNotFound, "Friend request not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request rejected successfully"})
}

// ListPendingRequests godoc
// @Summary      List pending friend requests
// @Description  Lists the unaccepted friend requests addressed to the authenticated user.
// @Tags         friend-requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PendingRequestResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friend-requests/pending [get]
func ListPendingRequests(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var requests []models.FriendRequest
	err := database.DB.
		Where("to_user_id = ? AND accepted = ?", viewerID, false).
		Preload("FromUser").
		Find(&requests).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "Failed to fetch pending requests")
		return
	}

	responses := make([]PendingRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, PendingRequestResponse{
			ID:            r.ID,
			FromUserEmail: r.FromUser.Email,
			CreatedAt:     r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// loadOwnRequest fetches a friend request and runs the checks shared by
// accept and reject: the request must exist, must be addressed to the acting
// user, and must not be accepted already. On failure the error response has
// been written and ok is false.
func loadOwnRequest(c *gin.Context, requestID, viewerID uint) (request models.FriendRequest, ok bool) {
	if err := database.DB.First(&request, requestID).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "Friend request not found")
		return request, false
	}

	if request.ToUserID != viewerID {
		respondError(c, http.StatusForbidden, CodeForbidden, "You are not authorized to perform this action")
		return request, false
	}

	if request.Accepted {
		respondError(c, http.StatusConflict, CodeConflict, "This friend request has already been accepted")
		return request, false
	}

	return request, true
}
