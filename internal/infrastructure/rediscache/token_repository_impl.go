package rediscache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wtech/user-platform/internal/domain/entity"
	"github.com/wtech/user-platform/internal/domain/repository"
	"github.com/wtech/user-platform/pkg/helpers"
)

// TokenRepository is a Redis-backed implementation of the token port for
// deployments that want O(1) revocation checks. Tokens are stored under a
// per-user key and a reverse value-keyed entry; both expire with the token
// itself, so no sweep is needed.
type TokenRepository struct {
	rdb *redis.Client
}

func NewTokenRepository(rdb *redis.Client) *TokenRepository {
	return &TokenRepository{rdb: rdb}
}

const tokenIDLen = 8

func tokenID(token string) string {
	if len(token) > tokenIDLen {
		return token[:tokenIDLen]
	}
	return token
}

func userKey(userID, id string) string { return "token:user:" + userID + ":" + id }
func lookupKey(token string) string    { return "token:lookup:" + token }

type tokenRecord struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (r *TokenRepository) Save(ctx context.Context, token entity.AuthToken) error {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return nil // already expired, nothing to store
	}
	rec := tokenRecord{UserID: token.UserID, Token: token.Token, ExpiresAt: token.ExpiresAt}
	if err := helpers.RedisSetJSON(ctx, r.rdb, userKey(token.UserID, tokenID(token.Token)), rec, ttl); err != nil {
		return err
	}
	return helpers.RedisSetJSON(ctx, r.rdb, lookupKey(token.Token), rec, ttl)
}

func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*entity.AuthToken, error) {
	var rec tokenRecord
	found, err := helpers.RedisGetJSON(ctx, r.rdb, lookupKey(token), &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &entity.AuthToken{UserID: rec.UserID, Token: rec.Token, ExpiresAt: rec.ExpiresAt}, nil
}

func (r *TokenRepository) FindByUserID(ctx context.Context, userID string) ([]entity.AuthToken, error) {
	var tokens []entity.AuthToken
	iter := r.rdb.Scan(ctx, 0, userKey(userID, "*"), 100).Iterator()
	for iter.Next(ctx) {
		var rec tokenRecord
		found, err := helpers.RedisGetJSON(ctx, r.rdb, iter.Val(), &rec)
		if err != nil {
			return nil, err
		}
		if found {
			tokens = append(tokens, entity.AuthToken{UserID: rec.UserID, Token: rec.Token, ExpiresAt: rec.ExpiresAt})
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *TokenRepository) Delete(ctx context.Context, userID, id string) error {
	key := userKey(userID, tokenID(id))
	var rec tokenRecord
	found, err := helpers.RedisGetJSON(ctx, r.rdb, key, &rec)
	if err != nil {
		return err
	}
	keys := []string{key}
	if found {
		keys = append(keys, lookupKey(rec.Token))
	}
	return helpers.RedisDel(ctx, r.rdb, keys...)
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
