package application

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wtech/user-platform/internal/domain/entity"
	"github.com/wtech/user-platform/internal/domain/valueobject"
)

// Testify mocks for the domain ports, used by the service tests.

type MockUserRepository struct {
	mock.Mock
}

// Save echoes its argument when configured with a nil user, mirroring the
// upsert contract.
func (m *MockUserRepository) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		if args.Error(1) != nil {
			return nil, args.Error(1)
		}
		return u, nil
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Save(ctx context.Context, token entity.AuthToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) FindByToken(ctx context.Context, token string) (*entity.AuthToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuthToken), args.Error(1)
}

func (m *MockTokenRepository) FindByUserID(ctx context.Context, userID string) ([]entity.AuthToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AuthToken), args.Error(1)
}

func (m *MockTokenRepository) Delete(ctx context.Context, userID, tokenID string) error {
	args := m.Called(ctx, userID, tokenID)
	return args.Error(0)
}

type MockTokenGenerator struct {
	mock.Mock
}

func (m *MockTokenGenerator) GenerateToken(userID string, expiresInHours int) (entity.AuthToken, error) {
	args := m.Called(userID, expiresInHours)
	return args.Get(0).(entity.AuthToken), args.Error(1)
}

func (m *MockTokenGenerator) ValidateToken(token string) (string, bool) {
	args := m.Called(token)
	return args.String(0), args.Bool(1)
}

type MockPasswordEncoder struct {
	mock.Mock
}

func (m *MockPasswordEncoder) Encode(password valueobject.Password) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordEncoder) Matches(raw, hash string) bool {
	args := m.Called(raw, hash)
	return args.Bool(0)
}
