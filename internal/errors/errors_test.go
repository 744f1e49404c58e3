package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==================== AppError Tests ====================

func TestAppError_ErrorUsesMessage(t *testing.T) {
	err := NewAppError(ErrValidation, "sender is required", CodeValidation)
	assert.Equal(t, "sender is required", err.Error())
}

func TestAppError_ErrorFallsBackToWrapped(t *testing.T) {
	err := NewAppError(ErrNotFound, "", CodeNotFound)
	assert.Equal(t, ErrNotFound.Error(), err.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewValidationError("sender", "is required")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewInvalidTransitionError(t *testing.T) {
	err := NewInvalidTransitionError("OUT001", "pending", "delivered")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, CodeInvalidTransition, err.Code)
	assert.Contains(t, err.Error(), "OUT001")
	assert.Contains(t, err.Error(), "pending")
	assert.Contains(t, err.Error(), "delivered")
}

func TestNewInvalidQueryError(t *testing.T) {
	err := NewInvalidQueryError("date_start must not be after date_end")

	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.Equal(t, CodeInvalidQuery, err.Code)
}

// ==================== Helper Tests ====================

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsNotFound(ErrMailItemNotFound))
	assert.True(t, IsNotFound(ErrEmployeeNotFound))
	assert.True(t, IsNotFound(ErrNotificationNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("loading: %w", ErrMailItemNotFound)))
	assert.False(t, IsNotFound(ErrValidation))
}

func TestIsInvalidTransition(t *testing.T) {
	assert.True(t, IsInvalidTransition(NewInvalidTransitionError("IN001", "delivered", "notified")))
	assert.False(t, IsInvalidTransition(ErrNotFound))
}

func TestWrap(t *testing.T) {
	base := errors.New("disk full")
	wrapped := Wrap(base, "failed to save")

	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "failed to save")

	assert.Nil(t, Wrap(nil, "nothing"))
}

// ==================== GetErrorCode Tests ====================

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"app error carries its own code", NewInvalidQueryError("bad"), CodeInvalidQuery},
		{"mail item not found", ErrMailItemNotFound, CodeNotFound},
		{"wrapped not found", fmt.Errorf("ctx: %w", ErrNotFound), CodeNotFound},
		{"validation", ErrValidation, CodeValidation},
		{"invalid transition", ErrInvalidTransition, CodeInvalidTransition},
		{"invalid query", ErrInvalidQuery, CodeInvalidQuery},
		{"duplicate", ErrDuplicateEntry, CodeDuplicateEntry},
		{"unauthorized", ErrUnauthorized, CodeUnauthorized},
		{"forbidden", ErrForbidden, CodeForbidden},
		{"unknown", errors.New("boom"), CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorCode(tt.err))
		})
	}
}
