package session

import "errors"

// ErrSessionExpired marks the silent local transition to the
// unauthenticated state. No server round-trip is involved.
var ErrSessionExpired = errors.New("session expired")

// AuthError is a rejected login. Message carries the server's
// explanation verbatim so the user can correct their input.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// RegistrationError is a rejected registration (weak password,
// duplicate email). Message is the server's explanation verbatim.
type RegistrationError struct {
	Message string
}

func (e *RegistrationError) Error() string { return e.Message }
