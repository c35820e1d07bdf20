package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type colourRequest struct {
	Colour string `validate:"required,colour"`
	Shade  string `validate:"omitempty,colour"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New(validator.WithRequiredStructEnabled())
	require.NoError(t, registerEnums(v, map[string]EnumFunc{
		"colour": func(s string) bool { return s == "red" || s == "blue" },
	}))
	return v
}

func TestRegisterEnums(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		req     colourRequest
		wantErr string
	}{
		{"valid", colourRequest{Colour: "red"}, ""},
		{"valid with optional", colourRequest{Colour: "red", Shade: "blue"}, ""},
		{"missing", colourRequest{}, "Colour is required"},
		{"unknown value", colourRequest{Colour: "green"}, "Colour is not a valid colour"},
		{"unknown optional", colourRequest{Colour: "red", Shade: "pink"}, "Shade is not a valid colour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, Describe(err))
		})
	}
}

func TestDescribe_PlainError(t *testing.T) {
	assert.Equal(t, "boom", Describe(errors.New("boom")))
}
