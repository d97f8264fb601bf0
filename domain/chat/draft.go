package chat

import (
	"fmt"
	"pair-chat/errors"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Draft is what a client asks to send. It carries no id and no timestamp:
// both are assigned once the router accepts it.
type Draft struct {
	From    UserID `validate:"required,max=256"`
	To      UserID `validate:"required,max=256"`
	Payload Payload
	// Ref is an opaque client token echoed back in the acknowledgement.
	Ref string `validate:"max=128"`
}

// Validate rejects drafts that must never reach the store.
func (d Draft) Validate(maxTextLen int) error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %s", errors.ErrValidation, err.Error())
	}
	if d.From == d.To {
		return fmt.Errorf("%w: %w", errors.ErrValidation, errors.ErrSelfMessage)
	}
	if d.Payload.IsEmpty() {
		return fmt.Errorf("%w: %w", errors.ErrValidation, errors.ErrEmptyPayload)
	}
	if maxTextLen > 0 && utf8.RuneCountInString(d.Payload.Text) > maxTextLen {
		return fmt.Errorf("%w: text exceeds %d characters", errors.ErrValidation, maxTextLen)
	}
	return nil
}
