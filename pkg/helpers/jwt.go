package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wtech/user-platform/internal/domain/entity"
)

// JWTManager mints and verifies HS256 bearer tokens. It implements the
// domain TokenGenerator port.
type JWTManager struct {
	Secret []byte
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{Secret: []byte(secret)}
}

type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for userID expiring in expiresInHours hours.
func (m *JWTManager) GenerateToken(userID string, expiresInHours int) (entity.AuthToken, error) {
	now := time.Now()
	exp := now.Add(time.Duration(expiresInHours) * time.Hour)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	if err != nil {
		return entity.AuthToken{}, err
	}
	return entity.AuthToken{UserID: userID, Token: s, ExpiresAt: exp}, nil
}

// ValidateToken verifies the signature and expiry and returns the embedded
// user id. Malformed, badly signed and expired tokens all yield ok == false;
// callers treat every failure as an authentication failure.
func (m *JWTManager) ValidateToken(token string) (string, bool) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}
	return claims.UserID, true
}
