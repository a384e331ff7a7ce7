package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad input"), KindValidation},
		{"auth", Auth("invalid credentials"), KindAuth},
		{"forbidden", Forbidden("not yours"), KindForbidden},
		{"not found", NotFound("note"), KindNotFound},
		{"conflict", Conflict("duplicate"), KindConflict},
		{"storage", Storage("disk write failed", errors.New("boom")), KindStorage},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("subject")), KindNotFound},
		{"unclassified", errors.New("who knows"), KindStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestValidationFields(t *testing.T) {
	err := ValidationFields([]FieldViolation{
		{Field: "title", Message: "is required"},
		{Field: "color", Message: "must be a hex color"},
	})

	assert.Equal(t, KindValidation, err.Kind)
	assert.Len(t, err.Fields, 2)
	assert.Contains(t, err.Message, "title: is required")
	assert.Contains(t, err.Message, "color: must be a hex color")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage("database write failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsKind(err, KindStorage))
	assert.Contains(t, err.Error(), "connection reset")
}
