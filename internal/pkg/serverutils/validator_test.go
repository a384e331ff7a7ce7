package serverutils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studynotes-be/internal/pkg/apperror"
)

type colorPayload struct {
	Name  string `validate:"required,max=5"`
	Color string `validate:"omitempty,hexcolor6"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name       string
		payload    colorPayload
		wantErr    bool
		wantFields []string
	}{
		{
			name:    "valid payload",
			payload: colorPayload{Name: "math", Color: "#3B82F6"},
			wantErr: false,
		},
		{
			name:    "lowercase hex accepted",
			payload: colorPayload{Name: "math", Color: "#3b82f6"},
			wantErr: false,
		},
		{
			name:    "empty color skipped",
			payload: colorPayload{Name: "math"},
			wantErr: false,
		},
		{
			name:       "missing name",
			payload:    colorPayload{Color: "#3B82F6"},
			wantErr:    true,
			wantFields: []string{"name"},
		},
		{
			name:       "malformed color",
			payload:    colorPayload{Name: "math", Color: "3B82F6"},
			wantErr:    true,
			wantFields: []string{"color"},
		},
		{
			name:       "short hex rejected",
			payload:    colorPayload{Name: "math", Color: "#fff"},
			wantErr:    true,
			wantFields: []string{"color"},
		},
		{
			name:       "both invalid",
			payload:    colorPayload{Name: "toolong", Color: "#GGGGGG"},
			wantErr:    true,
			wantFields: []string{"name", "color"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.payload)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var appErr *apperror.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			require.Len(t, appErr.Fields, len(tt.wantFields))
			got := make([]string, 0, len(appErr.Fields))
			for _, fv := range appErr.Fields {
				got = append(got, fv.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, got)
		})
	}
}
