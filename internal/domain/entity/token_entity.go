package entity

import "time"

// AuthToken is an issued bearer token with its absolute expiry. A user may
// hold any number of concurrently valid tokens.
type AuthToken struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

// IsExpired reports whether the token has reached its expiry.
func (t AuthToken) IsExpired() bool {
	return !time.Now().Before(t.ExpiresAt)
}

// IsValid reports whether the token is still usable. A token is valid
// strictly before ExpiresAt and invalid at or after it.
func (t AuthToken) IsValid() bool {
	return !t.IsExpired()
}
