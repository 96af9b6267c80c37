package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found, or that the
// caller is not allowed to see it.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotAuthorized indicates that the caller's role or team does not allow the action.
var ErrNotAuthorized = errors.New("not authorized for this action")

// ErrInvalidTransition indicates that the requested edge does not exist in the request
// state machine from the current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrDuplicateSubmission indicates that an equivalent, non-rejected request already exists.
var ErrDuplicateSubmission = errors.New("duplicate submission detected")

// ErrConcurrentModification indicates that the request changed between read and commit.
// Callers should re-read the request and retry.
var ErrConcurrentModification = errors.New("request was modified concurrently, refresh and retry")

// ErrSessionAlreadyActive indicates that a live session already exists for the identity.
var ErrSessionAlreadyActive = errors.New("an active session already exists for this employee")

// AppError carries an HTTP-ish status code alongside a message and the underlying cause.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with a message.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrNotAuthorized)
}

func NewConflictError(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, message, err)
}

// NewGatewayTimeoutError is used when an upstream identity provider cannot be reached.
func NewGatewayTimeoutError(message string) *AppError {
	return NewAppError(http.StatusGatewayTimeout, message, nil)
}
