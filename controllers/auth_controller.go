// File: /controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ryde-api/apperrors"
	"ryde-api/models"
	"ryde-api/repositories"
	"ryde-api/utils"
)

type AuthController struct {
	users     *repositories.UserRepository
	jwtSecret string
}

func NewAuthController(db *gorm.DB, jwtSecret string) *AuthController {
	return &AuthController{
		users:     repositories.NewUserRepository(db),
		jwtSecret: jwtSecret,
	}
}

type RegisterRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=6"`
	Dob         *string  `json:"dob"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.ValidateCoordinatePair(req.Latitude, req.Longitude) {
		utils.SendAppError(c, apperrors.ErrInvalidCoordinates)
		return
	}

	if _, err := ac.users.FindByEmail(req.Email); err == nil {
		utils.SendAppError(c, apperrors.ErrEmailAlreadyExists)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashedPassword),
		Dob:         req.Dob,
		Address:     req.Address,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		IsActive:    true,
	}

	if err := ac.users.Create(&user); err != nil {
		utils.SendAppError(c, err)
		return
	}

	logrus.WithField("email", user.Email).Info("User registered")

	user.Password = ""
	utils.SendCreated(c, "Registration successful", user)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	user, err := ac.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			utils.SendAppError(c, apperrors.ErrInvalidCredentials)
			return
		}
		utils.SendAppError(c, err)
		return
	}

	if !user.IsActive {
		utils.SendAppError(c, apperrors.ErrInvalidCredentials)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.SendAppError(c, apperrors.ErrInvalidCredentials)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(ac.jwtSecret))
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, AuthResponse{
		Token: tokenString,
		User:  *user,
	})
}
