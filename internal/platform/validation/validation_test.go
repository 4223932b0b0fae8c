package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Username string `validate:"required,username"`
}

func TestUsername(t *testing.T) {
	t.Parallel()

	v := validator.New()
	require.NoError(t, Register(v))

	tests := []struct {
		username string
		valid    bool
	}{
		{"chef", true},
		{"chef_anna.92", true},
		{"a-b", true},
		{"ab", false},
		{"has space", false},
		{"emoji🍳", false},
		{"way-too-long-username-for-this-app-x", false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			t.Parallel()

			err := v.Struct(signup{Username: tt.username})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRegisterWithGin(t *testing.T) {
	require.NoError(t, RegisterWithGin())
}
