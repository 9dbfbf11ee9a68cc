package helpers

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/wtech/user-platform/internal/domain/valueobject"
)

// BcryptEncoder implements the domain PasswordEncoder port with bcrypt.
type BcryptEncoder struct {
	Cost int
}

func NewBcryptEncoder(cost int) *BcryptEncoder {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptEncoder{Cost: cost}
}

// Encode hashes the password for storage. The hash is opaque to callers.
func (e *BcryptEncoder) Encode(password valueobject.Password) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password.Raw()), e.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Matches compares a candidate plaintext against a stored hash.
func (e *BcryptEncoder) Matches(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
