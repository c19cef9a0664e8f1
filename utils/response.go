// File: /utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ryde-api/apperrors"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{
		Error: err,
		Code:  status,
	})
}

func SendValidationError(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Message: err,
		Code:    http.StatusBadRequest,
	})
}

func SendSuccess(c *gin.Context, message string, data interface{}) {
	response := SuccessResponse{
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(http.StatusOK, response)
}

func SendCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// SendAppError maps the application error taxonomy to HTTP statuses. All of
// these are recoverable client errors; anything unrecognized is a 500.
func SendAppError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case apperrors.CodeInvalidParams,
		apperrors.CodeInvalidCoordinates,
		apperrors.CodeSelfRelationship,
		apperrors.CodeInvalidTransition,
		apperrors.CodeInvalidAction,
		apperrors.CodeLocationUnavailable:
		status = http.StatusBadRequest
	case apperrors.CodeInvalidCredentials:
		status = http.StatusUnauthorized
	case apperrors.CodePermissionDenied:
		status = http.StatusForbidden
	case apperrors.CodeUserNotFound, apperrors.CodeFriendshipNotFound:
		status = http.StatusNotFound
	case apperrors.CodeDuplicateRelationship, apperrors.CodeEmailAlreadyExists:
		status = http.StatusConflict
	}

	c.JSON(status, ErrorResponse{
		Error: appErr.Message,
		Code:  appErr.Code,
	})
}
