package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wtech/user-platform/internal/domain/entity"
	"github.com/wtech/user-platform/internal/domain/valueobject"
	"github.com/wtech/user-platform/pkg/helpers"
)

const testSecret = "test-secret"

func mustEmail(t *testing.T, raw string) valueobject.Email {
	t.Helper()
	email, err := valueobject.NewEmail(raw)
	require.NoError(t, err)
	return email
}

func newTestService(users *MockUserRepository, tokens *MockTokenRepository) *Service {
	return NewService(users, tokens, helpers.NewJWTManager(testSecret), helpers.NewBcryptEncoder(bcrypt.MinCost), 24, nil)
}

func activeUser(t *testing.T, email, password, name string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	return &entity.User{
		ID:           "USR-existing",
		Email:        mustEmail(t, email),
		PasswordHash: string(hash),
		Name:         name,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		users.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, nil)
		users.On("Save", mock.Anything, mock.Anything).Return(nil, nil)

		resp, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "Abcd1234", Name: "Ann"})

		require.NoError(t, err)
		require.NotEmpty(t, resp.ID)
		require.Equal(t, "a@b.com", resp.Email)
		require.Equal(t, "Ann", resp.Name)
		require.Equal(t, string(entity.StatusActive), resp.Status)
		require.False(t, resp.CreatedAt.IsZero())
		users.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		existing := activeUser(t, "a@b.com", "Abcd1234", "Ann")
		users.On("FindByEmail", mock.Anything, mock.Anything).Return(existing, nil)

		_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "Other1234", Name: "Imposter"})

		require.ErrorIs(t, err, ErrEmailAlreadyExists)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid email", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		_, err := svc.Register(ctx, RegisterRequest{Email: "not-an-email", Password: "Abcd1234", Name: "Ann"})

		require.ErrorIs(t, err, valueobject.ErrInvalidEmail)
		users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("weak password", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "alllowercase1", Name: "Ann"})

		require.ErrorIs(t, err, valueobject.ErrInvalidPassword)
		users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues 24h token", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		user := activeUser(t, "a@b.com", "Abcd1234", "Ann")
		users.On("FindByEmail", mock.Anything, mock.Anything).Return(user, nil)
		tokens.On("Save", mock.Anything, mock.AnythingOfType("entity.AuthToken")).Return(nil)

		resp, err := svc.Login(ctx, LoginRequest{Email: "a@b.com", Password: "Abcd1234"})

		require.NoError(t, err)
		require.Equal(t, user.ID, resp.UserID)
		require.WithinDuration(t, time.Now().Add(24*time.Hour), resp.ExpiresAt, time.Minute)

		uid, ok := helpers.NewJWTManager(testSecret).ValidateToken(resp.Token)
		require.True(t, ok)
		require.Equal(t, user.ID, uid)
		tokens.AssertExpectations(t)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		user := activeUser(t, "a@b.com", "Abcd1234", "Ann")
		users.On("FindByEmail", mock.Anything, mustEmail(t, "a@b.com")).Return(user, nil)
		users.On("FindByEmail", mock.Anything, mustEmail(t, "ghost@b.com")).Return(nil, nil)

		_, errWrongPwd := svc.Login(ctx, LoginRequest{Email: "a@b.com", Password: "WrongPwd1"})
		_, errNoUser := svc.Login(ctx, LoginRequest{Email: "ghost@b.com", Password: "Abcd1234"})

		require.ErrorIs(t, errWrongPwd, ErrInvalidCredentials)
		require.ErrorIs(t, errNoUser, ErrInvalidCredentials)
		require.Equal(t, errWrongPwd, errNoUser)
		tokens.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("suspended user with correct credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		user := activeUser(t, "a@b.com", "Abcd1234", "Ann")
		user.Suspend()
		users.On("FindByEmail", mock.Anything, mock.Anything).Return(user, nil)

		_, err := svc.Login(ctx, LoginRequest{Email: "a@b.com", Password: "Abcd1234"})

		require.ErrorIs(t, err, ErrUserNotActive)
		tokens.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("malformed email", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		_, err := svc.Login(ctx, LoginRequest{Email: "nope", Password: "Abcd1234"})

		require.ErrorIs(t, err, valueobject.ErrInvalidEmail)
		users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		user := activeUser(t, "a@b.com", "Abcd1234", "Ann")
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		// Profile reads are not restricted to the owner.
		resp, err := svc.GetProfile(ctx, user.ID, "USR-someone-else")

		require.NoError(t, err)
		require.Equal(t, user.ID, resp.ID)
		require.Equal(t, "a@b.com", resp.Email)
		require.Equal(t, "Ann", resp.Name)
	})

	t.Run("not found", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		users.On("FindByID", mock.Anything, "USR-missing").Return(nil, nil)

		_, err := svc.GetProfile(ctx, "USR-missing", "USR-missing")

		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthorized before any lookup", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		_, err := svc.UpdateProfile(ctx, UpdateProfileRequest{UserID: "USR-target", Name: "New"}, "USR-other")

		require.ErrorIs(t, err, ErrUnauthorized)
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("success refreshes name and updatedAt", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		user := activeUser(t, "a@b.com", "Abcd1234", "Ann")
		user.UpdatedAt = time.Now().Add(-time.Hour)
		prevUpdated := user.UpdatedAt
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		users.On("Save", mock.Anything, mock.Anything).Return(nil, nil)

		resp, err := svc.UpdateProfile(ctx, UpdateProfileRequest{UserID: user.ID, Name: "Anna"}, user.ID)

		require.NoError(t, err)
		require.Equal(t, "Anna", resp.Name)
		require.True(t, user.UpdatedAt.After(prevUpdated))
		users.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		users.On("FindByID", mock.Anything, "USR-missing").Return(nil, nil)

		_, err := svc.UpdateProfile(ctx, UpdateProfileRequest{UserID: "USR-missing", Name: "New"}, "USR-missing")

		require.ErrorIs(t, err, ErrUserNotFound)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthorized", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		err := svc.Delete(ctx, "USR-target", "USR-other")

		require.ErrorIs(t, err, ErrUnauthorized)
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		users.On("FindByID", mock.Anything, "USR-missing").Return(nil, nil)

		err := svc.Delete(ctx, "USR-missing", "USR-missing")

		require.ErrorIs(t, err, ErrUserNotFound)
		users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("success", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		user := activeUser(t, "a@b.com", "Abcd1234", "Ann")
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		users.On("Delete", mock.Anything, user.ID).Return(nil)

		err := svc.Delete(ctx, user.ID, user.ID)

		require.NoError(t, err)
		users.AssertExpectations(t)
	})
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()

	t.Run("valid stored token", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		issued, err := helpers.NewJWTManager(testSecret).GenerateToken("USR-1", 24)
		require.NoError(t, err)
		tokens.On("FindByToken", mock.Anything, issued.Token).Return(&issued, nil)

		uid, err := svc.ValidateToken(ctx, issued.Token)

		require.NoError(t, err)
		require.Equal(t, "USR-1", uid)
	})

	t.Run("revoked token", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		issued, err := helpers.NewJWTManager(testSecret).GenerateToken("USR-1", 24)
		require.NoError(t, err)
		tokens.On("FindByToken", mock.Anything, issued.Token).Return(nil, nil)

		_, err = svc.ValidateToken(ctx, issued.Token)

		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("garbage token", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		svc := newTestService(users, tokens)

		_, err := svc.ValidateToken(ctx, "not-a-token")

		require.ErrorIs(t, err, ErrInvalidCredentials)
		tokens.AssertNotCalled(t, "FindByToken", mock.Anything, mock.Anything)
	})
}

func TestRevokeToken(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockTokenRepository)
	svc := newTestService(users, tokens)

	tokens.On("Delete", mock.Anything, "USR-1", "abcdefgh").Return(nil)

	err := svc.RevokeToken(ctx, "USR-1", "abcdefgh.rest-of-the-token")

	require.NoError(t, err)
	tokens.AssertExpectations(t)
}
