package repository

import "github.com/wtech/user-platform/internal/domain/valueobject"

// PasswordEncoder hashes passwords for storage and verifies candidates
// against stored hashes.
type PasswordEncoder interface {
	Encode(password valueobject.Password) (string, error)
	Matches(raw, hash string) bool
}
