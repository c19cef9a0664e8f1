// Package apperrors defines the recoverable error taxonomy for the API.
// Every error carries a stable code so the transport layer can map it to a
// client-facing response without string matching.
package apperrors

import (
	"errors"
	"fmt"
)

// AppError is a coded application error. Err optionally wraps the underlying
// cause for debugging.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on the code so wrapped copies of a sentinel still compare equal.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if errors.As(target, &appErr) {
		return e.Code == appErr.Code
	}
	return false
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap returns a copy of the sentinel carrying the underlying cause.
func (e *AppError) Wrap(err error) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Err: err}
}

// WithMessage returns a copy of the sentinel with a more specific message.
func (e *AppError) WithMessage(format string, args ...interface{}) *AppError {
	return &AppError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// Code returns the error code, or CodeServerError for non-AppError values.
func Code(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeServerError
}

// Message returns the user-visible message, or a generic one for
// non-AppError values.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}

// Error codes. Grouped by concern; values are part of the API contract.
const (
	// Validation 10000-10999
	CodeInvalidParams      = 10001
	CodeInvalidCoordinates = 10002

	// Users 11000-11999
	CodeUserNotFound        = 11001
	CodeEmailAlreadyExists  = 11002
	CodeInvalidCredentials  = 11003
	CodeLocationUnavailable = 11004

	// Friendships 12000-12999
	CodeSelfRelationship      = 12001
	CodeDuplicateRelationship = 12002
	CodeFriendshipNotFound    = 12003
	CodeInvalidTransition     = 12004
	CodeInvalidAction         = 12005
	CodePermissionDenied      = 12006

	// System 50000-50999
	CodeServerError = 50001
	CodeDBError     = 50002
)

// Predefined sentinels.
var (
	ErrInvalidParams      = New(CodeInvalidParams, "Invalid request parameters")
	ErrInvalidCoordinates = New(CodeInvalidCoordinates, "Coordinates out of range or partially specified")

	ErrUserNotFound        = New(CodeUserNotFound, "User not found")
	ErrEmailAlreadyExists  = New(CodeEmailAlreadyExists, "Email already registered")
	ErrInvalidCredentials  = New(CodeInvalidCredentials, "Invalid email or password")
	ErrLocationUnavailable = New(CodeLocationUnavailable, "User location not available")

	ErrSelfRelationship      = New(CodeSelfRelationship, "Users cannot be friends with themselves")
	ErrDuplicateRelationship = New(CodeDuplicateRelationship, "A friendship relationship already exists between these users")
	ErrFriendshipNotFound    = New(CodeFriendshipNotFound, "Friendship not found")
	ErrInvalidTransition     = New(CodeInvalidTransition, "Status transition not allowed")
	ErrInvalidAction         = New(CodeInvalidAction, "Action not allowed for current friendship status")
	ErrPermissionDenied      = New(CodePermissionDenied, "You do not have permission to modify this friendship")

	ErrServerError = New(CodeServerError, "Internal server error")
	ErrDBError     = New(CodeDBError, "Database error")
)
