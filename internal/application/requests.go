package application

import (
	"time"

	"github.com/wtech/user-platform/internal/domain/entity"
)

// Transport-agnostic request and response shapes. The inbound surface
// (whatever it is) maps its own framing onto these values.

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// UserResponse is the public view of a user returned by registration and
// profile updates.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func userResponseFrom(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email.String(),
		Name:      u.Name,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}

// ProfileResponse is the public profile view; it omits timestamps.
type ProfileResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func profileResponseFrom(u *entity.User) *ProfileResponse {
	return &ProfileResponse{
		ID:     u.ID,
		Email:  u.Email.String(),
		Name:   u.Name,
		Status: string(u.Status),
	}
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userId"`
}
