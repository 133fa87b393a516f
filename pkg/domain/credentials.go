package domain

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// minPasswordLen mirrors the registration policy enforced server-side,
// so obviously bad input never leaves the client.
const minPasswordLen = 8

// Credentials is a login or registration form submission.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the credentials shape before any network call.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required, validation.Length(minPasswordLen, 0)),
	)
}
