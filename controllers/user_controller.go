// File: /controllers/user_controller.go
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ryde-api/apperrors"
	"ryde-api/models"
	"ryde-api/repositories"
	"ryde-api/services"
	"ryde-api/utils"
)

type UserController struct {
	users     *repositories.UserRepository
	proximity *services.ProximityService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		users:     repositories.NewUserRepository(db),
		proximity: services.NewProximityService(),
	}
}

// GetProfile handles GET /users/me
func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := uc.users.FindByID(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	user.Password = ""
	c.JSON(200, user)
}

// UpdateProfile handles PUT /users/me. Coordinates must come as a full pair
// within range; a partial or out-of-range pair never reaches the store.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	user, err := uc.users.FindByID(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	if req.Latitude != nil || req.Longitude != nil {
		if !utils.ValidateCoordinatePair(req.Latitude, req.Longitude) {
			utils.SendAppError(c, apperrors.ErrInvalidCoordinates)
			return
		}
		user.Latitude = req.Latitude
		user.Longitude = req.Longitude
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Dob != nil {
		user.Dob = req.Dob
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Description != nil {
		user.Description = *req.Description
	}

	if err := uc.users.Save(user); err != nil {
		utils.SendAppError(c, err)
		return
	}

	user.Password = ""
	utils.SendSuccess(c, "Profile updated successfully", user)
}

// SearchUsers handles GET /users/search?q=
func (uc *UserController) SearchUsers(c *gin.Context) {
	userID := c.GetString("user_id")

	query := c.Query("q")
	if query == "" {
		utils.SendValidationError(c, "Search query parameter \"q\" is required")
		return
	}

	users, err := uc.users.SearchActive(query, userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	results := make([]models.UserListItem, 0, len(users))
	for i := range users {
		results = append(results, users[i].ToListItem())
	}

	c.JSON(200, gin.H{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}

// GetNearbyUsers handles GET /users/nearby?radius=
// Searches the whole directory: active users with a location, excluding self.
func (uc *UserController) GetNearbyUsers(c *gin.Context) {
	userID := c.GetString("user_id")

	radius, ok := parseRadius(c)
	if !ok {
		return
	}

	user, err := uc.users.FindByID(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	candidates, err := uc.users.ActiveWithLocation(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	resp, err := uc.proximity.Nearby(user, candidates, radius)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(200, resp)
}

// parseRadius reads the optional radius query parameter. Zero means "use the
// default"; a malformed or negative value is a validation error.
func parseRadius(c *gin.Context) (float64, bool) {
	raw := c.Query("radius")
	if raw == "" {
		return services.DefaultRadiusKm, true
	}

	radius, err := strconv.ParseFloat(raw, 64)
	if err != nil || radius <= 0 {
		utils.SendValidationError(c, "radius must be a positive number")
		return 0, false
	}
	return radius, true
}
