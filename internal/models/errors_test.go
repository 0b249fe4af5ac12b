package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", NewNotFoundError("Soup", 1), fiber.StatusNotFound},
		{"validation", NewValidationError("Validation failed"), fiber.StatusBadRequest},
		{"forbidden", NewForbiddenError("nope"), fiber.StatusForbidden},
		{"unauthorized", NewUnauthorizedError("nope"), fiber.StatusUnauthorized},
		{"conflict", NewConflictError("exists"), fiber.StatusConflict},
		{"internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"wrapped", fmt.Errorf("ctx: %w", NewNotFoundError("Soup", 2)), fiber.StatusNotFound},
		{"plain", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFor(tt.err))
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error: connection refused", err.Error())
	assert.True(t, IsCode(err, CodeInternal))
	assert.False(t, IsCode(err, CodeNotFound))
}

func TestCommentType_Valid(t *testing.T) {
	assert.True(t, CommentTypeSoup.Valid())
	assert.Equal(t, CommentTypeSoup, Soup{}.CommentType())
	assert.False(t, CommentType("recipe").Valid())
}
