// File: /controllers/friendship_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ryde-api/models"
	"ryde-api/repositories"
	"ryde-api/services"
	"ryde-api/utils"
)

type FriendshipController struct {
	friendshipService *services.FriendshipService
	friendships       *repositories.FriendshipRepository
}

func NewFriendshipController(db *gorm.DB, emailService *services.EmailService) *FriendshipController {
	friendshipRepo := repositories.NewFriendshipRepository(db)
	userRepo := repositories.NewUserRepository(db)

	return &FriendshipController{
		friendshipService: services.NewFriendshipService(
			friendshipRepo, userRepo, services.NewProximityService(), emailService),
		friendships: friendshipRepo,
	}
}

// CreateFriendship handles POST /friendships
func (fc *FriendshipController) CreateFriendship(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.CreateFriendshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	friendship, err := fc.friendshipService.CreateFriendship(userID, req.ToUserID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendCreated(c, "Friend request sent successfully", friendship.ToResponse())
}

// GetMyFriendships handles GET /friendships
func (fc *FriendshipController) GetMyFriendships(c *gin.Context) {
	userID := c.GetString("user_id")

	friendships, err := fc.friendships.ListInvolving(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"friendships": toResponses(friendships),
		"count":       len(friendships),
	})
}

// GetPendingRequests handles GET /friendships/pending
// Requests the user has received and not yet answered.
func (fc *FriendshipController) GetPendingRequests(c *gin.Context) {
	userID := c.GetString("user_id")

	requests, err := fc.friendships.ListPendingReceived(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"pending_requests": toResponses(requests),
		"count":            len(requests),
	})
}

// GetSentRequests handles GET /friendships/sent
func (fc *FriendshipController) GetSentRequests(c *gin.Context) {
	userID := c.GetString("user_id")

	requests, err := fc.friendships.ListPendingSent(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"sent_requests": toResponses(requests),
		"count":         len(requests),
	})
}

// GetFriends handles GET /friendships/friends
// Returns accepted friends plus the directional follower/following views.
func (fc *FriendshipController) GetFriends(c *gin.Context) {
	userID := c.GetString("user_id")

	overview, err := fc.friendshipService.FriendsOverview(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(200, overview)
}

// GetFriendshipStatus handles GET /friendships/status?user_id=
func (fc *FriendshipController) GetFriendshipStatus(c *gin.Context) {
	userID := c.GetString("user_id")

	targetUserID := c.Query("user_id")
	if targetUserID == "" {
		utils.SendValidationError(c, "user_id parameter is required")
		return
	}

	status, err := fc.friendshipService.StatusBetween(userID, targetUserID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(200, status)
}

// UpdateStatus handles PUT /friendships/:id/status — the direct status-set
// path, the only way to resend after a decline.
func (fc *FriendshipController) UpdateStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	friendshipID := c.Param("id")

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	friendship, err := fc.friendshipService.SetStatus(friendshipID, userID, req.Status)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Friendship status updated successfully", friendship.ToResponse())
}

// PerformAction handles POST /friendships/:id/actions — accept, decline,
// block or unblock.
func (fc *FriendshipController) PerformAction(c *gin.Context) {
	userID := c.GetString("user_id")
	friendshipID := c.Param("id")

	var req models.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	friendship, err := fc.friendshipService.PerformAction(friendshipID, userID, req.Action)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Friendship "+string(req.Action)+"ed successfully", friendship.ToResponse())
}

// GetNearbyFriends handles GET /friendships/nearby?radius=
// Friends-only scope of the proximity search.
func (fc *FriendshipController) GetNearbyFriends(c *gin.Context) {
	userID := c.GetString("user_id")

	radius, ok := parseRadius(c)
	if !ok {
		return
	}

	resp, err := fc.friendshipService.NearbyFriends(userID, radius)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(200, resp)
}

// SearchFriends handles GET /friendships/search?q=
func (fc *FriendshipController) SearchFriends(c *gin.Context) {
	userID := c.GetString("user_id")

	query := c.Query("q")
	if query == "" {
		utils.SendValidationError(c, "Search query parameter \"q\" is required")
		return
	}

	matches, err := fc.friendshipService.SearchFriends(userID, query)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	results := make([]models.UserListItem, 0, len(matches))
	for i := range matches {
		results = append(results, matches[i].ToListItem())
	}

	c.JSON(200, gin.H{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}

func toResponses(friendships []models.Friendship) []models.FriendshipResponse {
	responses := make([]models.FriendshipResponse, 0, len(friendships))
	for i := range friendships {
		responses = append(responses, friendships[i].ToResponse())
	}
	return responses
}
