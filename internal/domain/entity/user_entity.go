package entity

import (
	"time"

	"github.com/wtech/user-platform/internal/domain/valueobject"
)

// UserStatus represents the lifecycle status of a user account.
type UserStatus string

const (
	// StatusPending - registered but not yet verified
	StatusPending UserStatus = "PENDING"
	// StatusActive - account may access protected operations
	StatusActive UserStatus = "ACTIVE"
	// StatusSuspended - account suspended, e.g. for policy violations
	StatusSuspended UserStatus = "SUSPENDED"
)

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in PasswordHash.
type User struct {
	ID           string
	Email        valueobject.Email
	PasswordHash string
	Name         string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanAccessProtectedEndpoints reports whether the account is ACTIVE.
// Only ACTIVE users may reach protected operations.
func (u *User) CanAccessProtectedEndpoints() bool {
	return u.Status == StatusActive
}

// UpdateProfile applies a new display name and refreshes UpdatedAt.
func (u *User) UpdateProfile(name string) {
	u.Name = name
	u.UpdatedAt = time.Now()
}

// Activate moves the account to ACTIVE (after external verification).
func (u *User) Activate() {
	u.Status = StatusActive
	u.UpdatedAt = time.Now()
}

// Suspend moves the account to SUSPENDED. There is no transition back;
// reinstatement is an administrative flow outside this module.
func (u *User) Suspend() {
	u.Status = StatusSuspended
	u.UpdatedAt = time.Now()
}
