package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a failure class independent of the transport layer.
type ErrorCode string

// AppError is the application error carried across service boundaries.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predeclared errors
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	// Covers unknown, expired and already-used tokens alike. Callers must not
	// be able to tell those states apart.
	ErrInvalidToken = New(CodeInvalidToken, "Invalid or expired token", http.StatusBadRequest)

	// Users
	ErrUserNotFound         = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists   = New(CodeEmailAlreadyExists, "Email already registered", http.StatusConflict)
	ErrEmailNotVerified     = New(CodeEmailNotVerified, "Email not verified. Check your inbox for the verification link", http.StatusUnauthorized)
	ErrEmailAlreadyVerified = New(CodeEmailAlreadyVerified, "Email already verified", http.StatusConflict)

	// Friendships
	ErrFriendRequestNotFound = New(CodeFriendRequestNotFound, "Friend request not found", http.StatusNotFound)
	ErrFriendshipNotFound    = New(CodeFriendshipNotFound, "Friendship not found", http.StatusNotFound)
	ErrFriendRequestExists   = New(CodeFriendRequestExists, "Friend request already sent", http.StatusConflict)
	ErrAlreadyFriends        = New(CodeAlreadyFriends, "You are already friends", http.StatusConflict)
	ErrCannotFriendSelf      = New(CodeCannotFriendSelf, "Cannot send a friend request to yourself", http.StatusBadRequest)
	ErrNotRequestReceiver    = New(CodeNotRequestReceiver, "Only the receiver may respond to this request", http.StatusForbidden)
	ErrRequestAlreadyHandled = New(CodeRequestAlreadyHandled, "This request has already been handled", http.StatusConflict)
	ErrNotFriendshipMember   = New(CodeNotFriendshipMember, "You are not part of this friendship", http.StatusForbidden)

	// Songs and setlists
	ErrSongNotFound         = New(CodeSongNotFound, "Song not found", http.StatusNotFound)
	ErrSetlistNotFound      = New(CodeSetlistNotFound, "Setlist not found", http.StatusNotFound)
	ErrNotResourceOwner     = New(CodeNotResourceOwner, "Only the owner may modify this resource", http.StatusForbidden)
	ErrShareTargetNotFriend = New(CodeShareTargetNotFriend, "You can only share with your friends", http.StatusForbidden)
	ErrShareNotFound        = New(CodeShareNotFound, "This user does not have access to the resource", http.StatusNotFound)
	ErrInvalidSongOrder     = New(CodeInvalidSongOrder, "Invalid song order", http.StatusForbidden)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// Helpers for errors with details
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}
