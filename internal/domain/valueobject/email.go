package valueobject

import (
	"errors"

	"github.com/wtech/user-platform/pkg/validation"
)

// ErrInvalidEmail is returned when an email address fails format validation.
var ErrInvalidEmail = errors.New("invalid email format")

// Email is an immutable, validated email address. Construction is the only
// validation point; a zero Email is never produced by NewEmail.
type Email struct {
	value string
}

// NewEmail validates raw and wraps it. The input text round-trips
// through String exactly.
func NewEmail(raw string) (Email, error) {
	if !validation.EmailOK(raw) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: raw}, nil
}

func (e Email) String() string { return e.value }

// IsZero reports whether e was never constructed through NewEmail.
func (e Email) IsZero() bool { return e.value == "" }
