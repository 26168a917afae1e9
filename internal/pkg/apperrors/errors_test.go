package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorsWrapSentinels(t *testing.T) {
	assert.ErrorIs(t, ErrUserNotFound, ErrResourceNotFound)
	assert.ErrorIs(t, ErrEmailAlreadyExists, ErrConflict)
	assert.ErrorIs(t, ErrAlreadyApplied, ErrConflict)
	assert.ErrorIs(t, NewValidationError("bad"), ErrValidationFailed)
	assert.ErrorIs(t, NewForbiddenError("no"), ErrPermissionDenied)
	assert.ErrorIs(t, NewUnauthorizedError("who"), ErrUnauthorized)
}

func TestMessage(t *testing.T) {
	wrapped := fmt.Errorf("creating user: %w", ErrEmailAlreadyExists)
	assert.Equal(t, "User with this email already exists", Message(wrapped))
	assert.Equal(t, "plain failure", Message(errors.New("plain failure")))
	assert.Equal(t, "validation failed", Message(&CustomError{Err: ErrValidationFailed}))
}

func TestIsMatchesAnyTarget(t *testing.T) {
	err := fmt.Errorf("x: %w", ErrTokenExpired)
	assert.True(t, Is(err, ErrTokenInvalid, ErrTokenExpired))
	assert.False(t, Is(err, ErrTokenInvalid))
}
