// Package validators checks request inputs before handlers act on
// them. Each validator returns a sentinel error whose text is safe to
// echo back to the caller.
package validators

import (
	"errors"
	"net/mail"
)

var (
	ErrEmailEmpty   = errors.New("no email address provided")
	ErrEmailInvalid = errors.New("invalid email address provided")
)

// EmailValidator accepts anything net/mail can parse as an address.
// Deliverability is not checked; the verification flow covers that.
func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	if _, err := mail.ParseAddress(e); err != nil {
		return ErrEmailInvalid
	}

	return nil
}
