package repository

import (
	"context"

	"github.com/wtech/user-platform/internal/domain/entity"
)

// TokenRepository persists issued auth tokens, keyed by user and by the
// token value. Lookups return (nil, nil) when nothing matches.
type TokenRepository interface {
	Save(ctx context.Context, token entity.AuthToken) error
	FindByToken(ctx context.Context, token string) (*entity.AuthToken, error)
	FindByUserID(ctx context.Context, userID string) ([]entity.AuthToken, error)
	// Delete revokes a single token. tokenID is the token-derived sort key
	// fragment (first 8 characters of the token string).
	Delete(ctx context.Context, userID, tokenID string) error
}
