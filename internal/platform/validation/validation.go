// Package validation registers the custom binding rules used by request DTOs.
package validation

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]{3,32}$`)

// Username accepts 3 to 32 letters, digits, dots, dashes or underscores.
func Username(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

// Register adds the custom rules to v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("username", Username); err != nil {
		return fmt.Errorf("register username rule: %w", err)
	}
	return nil
}

// RegisterWithGin adds the custom rules to gin's default binding validator.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return Register(v)
}
