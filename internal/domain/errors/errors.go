package errors

import (
	"errors"
	"fmt"
)

var (
	// Generic errors
	ErrInternal      = errors.New("internal server error")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrStoreFailure  = errors.New("persistent store unavailable")

	// Entity lookup errors
	ErrUserNotFound     = errors.New("user not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrFeedbackNotFound = errors.New("feedback report not found")

	// Moderation errors
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidRole     = errors.New("invalid role value")
	ErrLastAdmin       = errors.New("cannot demote the last remaining admin")
	ErrAdminExists     = errors.New("an admin already exists")
	ErrNotBootstrapped = errors.New("identity is not in the bootstrap admin list")
)

// Error codes returned to API clients.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodePersistence  = "PERSISTENCE_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError carries a user-facing message, an API error code and the wrapped
// cause.
type AppError struct {
	Err  error
	Msg  string
	Code string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *AppError) Unwrap() error { return e.Err }

// Message returns the user-facing message.
func (e *AppError) Message() string { return e.Msg }

// ErrorCode returns the API error code.
func (e *AppError) ErrorCode() string { return e.Code }

// APIError is satisfied by every typed error in this package. Handlers use
// it to extract the client-facing message and code without naming each
// concrete type.
type APIError interface {
	error
	Message() string
	ErrorCode() string
}

type ValidationError struct{ AppError }
type UnauthorizedError struct{ AppError }
type ForbiddenError struct{ AppError }
type NotFoundError struct{ AppError }
type ConflictError struct{ AppError }
type PersistenceError struct{ AppError }
type InternalError struct{ AppError }

func NewValidationError(msg string, err error) *ValidationError {
	return &ValidationError{AppError{Err: err, Msg: msg, Code: CodeValidation}}
}

func NewUnauthorizedError(msg string) *UnauthorizedError {
	return &UnauthorizedError{AppError{Err: ErrUnauthorized, Msg: msg, Code: CodeUnauthorized}}
}

func NewForbiddenError(msg string) *ForbiddenError {
	return &ForbiddenError{AppError{Err: ErrForbidden, Msg: msg, Code: CodeForbidden}}
}

func NewNotFoundError(msg string, err error) *NotFoundError {
	return &NotFoundError{AppError{Err: err, Msg: msg, Code: CodeNotFound}}
}

func NewConflictError(msg string, err error) *ConflictError {
	return &ConflictError{AppError{Err: err, Msg: msg, Code: CodeConflict}}
}

func NewPersistenceError(msg string, err error) *PersistenceError {
	return &PersistenceError{AppError{Err: err, Msg: msg, Code: CodePersistence}}
}

func NewInternalError(msg string, err error) *InternalError {
	return &InternalError{AppError{Err: err, Msg: msg, Code: CodeInternal}}
}

// IsNotFound reports whether err is any of the entity-absent errors.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrCommentNotFound) ||
		errors.Is(err, ErrFeedbackNotFound)
}

// IsValidation reports whether err is a malformed-input error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrLastAdmin)
}

// IsForbidden reports whether err is an insufficient-role error.
func IsForbidden(err error) bool {
	var fe *ForbiddenError
	return errors.As(err, &fe) || errors.Is(err, ErrForbidden)
}

// IsUnauthorized reports whether err is a missing-identity error.
func IsUnauthorized(err error) bool {
	var ue *UnauthorizedError
	return errors.As(err, &ue) || errors.Is(err, ErrUnauthorized)
}

// IsConflict reports whether err is a state-conflict error.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce) || errors.Is(err, ErrAdminExists)
}
