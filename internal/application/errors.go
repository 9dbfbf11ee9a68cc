package application

import "errors"

// Domain failure taxonomy. Together with valueobject.ErrInvalidEmail and
// valueobject.ErrInvalidPassword this is the closed set of failures a use
// case returns; anything else is a wrapped infrastructure error.
var (
	// ErrInvalidCredentials covers both "no such user" and "wrong
	// password". The two must stay indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotActive      = errors.New("user account is not active")
	ErrUnauthorized       = errors.New("unauthorized")
)
