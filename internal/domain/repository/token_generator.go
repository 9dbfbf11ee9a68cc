package repository

import "github.com/wtech/user-platform/internal/domain/entity"

// TokenGenerator mints and verifies opaque signed bearer tokens.
type TokenGenerator interface {
	// GenerateToken produces a signed token for userID with an absolute
	// expiry of now + expiresInHours.
	GenerateToken(userID string, expiresInHours int) (entity.AuthToken, error)
	// ValidateToken returns the embedded user id when the signature checks
	// out and the token has not expired. Malformed, badly signed and
	// expired tokens are indistinguishable: all return ok == false.
	ValidateToken(token string) (userID string, ok bool)
}
