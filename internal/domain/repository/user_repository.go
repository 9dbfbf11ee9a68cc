package repository

import (
	"context"

	"github.com/wtech/user-platform/internal/domain/entity"
	"github.com/wtech/user-platform/internal/domain/valueobject"
)

// UserRepository defines the persistence contract for the User aggregate.
// Lookups return (nil, nil) when nothing matches; absence is not an error.
type UserRepository interface {
	// Save upserts the user and returns the stored aggregate.
	Save(ctx context.Context, u *entity.User) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// FindByEmail resolves a user through the email index (used for login).
	FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
