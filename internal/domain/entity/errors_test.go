package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "webhook url",
			field:    "webhook_url",
			message:  "webhook URL is required",
			expected: "validation error on field 'webhook_url': webhook URL is required",
		},
		{
			name:     "empty field name",
			field:    "",
			message:  "test message",
			expected: "validation error on field '': test message",
		},
		{
			name:     "empty message",
			field:    "avatar_url",
			message:  "",
			expected: "validation error on field 'avatar_url': ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ValidationError{Field: tt.field, Message: tt.message}
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestValidationError_As(t *testing.T) {
	wrapped := fmt.Errorf("save settings: %w", &ValidationError{Field: "webhook_url", Message: "bad"})

	var ve *ValidationError
	assert.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "webhook_url", ve.Field)
	assert.False(t, errors.Is(wrapped, ErrInvalidInput))
}

func TestSentinelErrors_Distinct(t *testing.T) {
	all := []error{ErrNotFound, ErrInvalidInput, ErrUnknownEventType, ErrPayloadMismatch}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
	assert.Equal(t, "unknown event type", ErrUnknownEventType.Error())
}
