package valueobject

import (
	"errors"

	"github.com/wtech/user-platform/pkg/validation"
)

// ErrInvalidPassword is returned when a password fails the strength policy:
// at least 8 characters with one uppercase letter, one lowercase letter and
// one digit.
var ErrInvalidPassword = errors.New("password must be at least 8 characters with uppercase, lowercase and a digit")

// Password holds a raw password transiently, between request validation and
// hashing. It is never persisted and never printed.
type Password struct {
	value string
}

func NewPassword(raw string) (Password, error) {
	if !validation.PasswordOK(raw) {
		return Password{}, ErrInvalidPassword
	}
	return Password{value: raw}, nil
}

// Raw exposes the plaintext for the password encoder only.
func (p Password) Raw() string { return p.value }

// String masks the content so the raw password cannot leak through logging
// or formatting.
func (p Password) String() string { return "Password(***)" }
