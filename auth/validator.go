package auth

import (
	"fmt"
	"pair-chat/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateClaims rejects tokens whose payload is signed but unusable, e.g. an empty user id.
func ValidateClaims(c *CustomClaims) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrValidation, err)
	}
	return nil
}
