package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("gone", ErrProjectNotFound)))
	assert.True(t, IsNotFound(ErrUserNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", ErrCommentNotFound)))
	assert.False(t, IsNotFound(errors.New("boom")))

	assert.True(t, IsValidation(NewValidationError("bad", ErrInvalidInput)))
	assert.True(t, IsValidation(NewValidationError("last admin", ErrLastAdmin)))
	assert.False(t, IsValidation(NewNotFoundError("gone", ErrNotFound)))

	assert.True(t, IsForbidden(NewForbiddenError("no")))
	assert.True(t, IsUnauthorized(NewUnauthorizedError("who")))
	assert.True(t, IsConflict(NewConflictError("exists", ErrAdminExists)))

	assert.False(t, IsForbidden(NewUnauthorizedError("who")))
	assert.False(t, IsUnauthorized(NewForbiddenError("no")))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("io timeout")
	err := NewPersistenceError("store down", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store down")
	assert.Contains(t, err.Error(), "io timeout")
}

func TestAPIErrorExtraction(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewValidationError("title is required", ErrInvalidInput))

	var apiErr APIError
	require.True(t, errors.As(wrapped, &apiErr))
	assert.Equal(t, "title is required", apiErr.Message())
	assert.Equal(t, CodeValidation, apiErr.ErrorCode())
}
