package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wtech/user-platform/internal/domain/entity"
	repo "github.com/wtech/user-platform/internal/domain/repository"
	"github.com/wtech/user-platform/internal/domain/valueobject"
	"github.com/wtech/user-platform/pkg/helpers"
	"github.com/wtech/user-platform/pkg/mailer"
)

// Service carries the identity use cases: register, login, get/update
// profile, delete, plus token validation and revocation. Port calls within
// one use case run strictly sequentially; there are no retries here.
//
// ES and Rabbit are optional collaborators; when nil the corresponding
// side effects are skipped.
type Service struct {
	Users    repo.UserRepository
	Tokens   repo.TokenRepository
	TokenGen repo.TokenGenerator
	Encoder  repo.PasswordEncoder

	TokenExpiryHours int

	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
	Rabbit       *helpers.RabbitPublisher
}

func NewService(users repo.UserRepository, tokens repo.TokenRepository, gen repo.TokenGenerator, enc repo.PasswordEncoder, tokenExpiryHours int, logger *logrus.Logger) *Service {
	if tokenExpiryHours <= 0 {
		tokenExpiryHours = 24
	}
	return &Service{
		Users:            users,
		Tokens:           tokens,
		TokenGen:         gen,
		Encoder:          enc,
		TokenExpiryHours: tokenExpiryHours,
		Logger:           logger,
	}
}

// Register creates a new ACTIVE user account. Fails with
// valueobject.ErrInvalidEmail / ErrInvalidPassword on bad input and with
// ErrEmailAlreadyExists when the address is taken; the existing record is
// left untouched in that case.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	email, err := valueobject.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}
	password, err := valueobject.NewPassword(req.Password)
	if err != nil {
		return nil, err
	}

	existing, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: lookup by email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := s.Encoder.Encode(password)
	if err != nil {
		return nil, fmt.Errorf("register: encode password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           "USR-" + uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := s.Users.Save(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: save user: %w", err)
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": saved.ID}).Info("user registered")
	}
	_ = s.indexUser(ctx, saved)
	s.publishMail(ctx, mailer.EmailJob{
		To:       saved.Email.String(),
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": saved.Name},
	})

	return userResponseFrom(saved), nil
}

// Login authenticates by email and password and issues a bearer token.
// A missing user and a wrong password produce the same
// ErrInvalidCredentials so callers cannot probe which emails exist.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email, err := valueobject.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: lookup by email: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !s.Encoder.Matches(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.CanAccessProtectedEndpoints() {
		return nil, ErrUserNotActive
	}

	token, err := s.TokenGen.GenerateToken(user.ID, s.TokenExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("login: generate token: %w", err)
	}
	if err := s.Tokens.Save(ctx, token); err != nil {
		return nil, fmt.Errorf("login: save token: %w", err)
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": user.ID}).Info("user authenticated")
	}

	return &AuthResponse{Token: token.Token, ExpiresAt: token.ExpiresAt, UserID: user.ID}, nil
}

// GetProfile returns the public profile for userID. The requesting user id
// is accepted for symmetry with the mutating operations but read access is
// not restricted to the profile owner.
func (s *Service) GetProfile(ctx context.Context, userID, requestingUserID string) (*ProfileResponse, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: lookup by id: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return profileResponseFrom(user), nil
}

// UpdateProfile changes the display name. Only the profile owner may
// update it; the ownership check runs before any lookup.
func (s *Service) UpdateProfile(ctx context.Context, req UpdateProfileRequest, requestingUserID string) (*UserResponse, error) {
	if req.UserID != requestingUserID {
		return nil, ErrUnauthorized
	}

	user, err := s.Users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("update profile: lookup by id: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.UpdateProfile(req.Name)
	saved, err := s.Users.Save(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("update profile: save user: %w", err)
	}

	_ = s.indexUser(ctx, saved)
	return userResponseFrom(saved), nil
}

// Delete removes the account. Only the account owner may delete it.
func (s *Service) Delete(ctx context.Context, userID, requestingUserID string) error {
	if userID != requestingUserID {
		return ErrUnauthorized
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete user: lookup by id: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.Users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": user.ID}).Info("user deleted")
	}
	_ = s.deleteUserDoc(ctx, user.ID)
	s.publishMail(ctx, mailer.EmailJob{
		To:       user.Email.String(),
		Template: mailer.TemplateAccountDeleted,
		Data:     map[string]any{"Name": user.Name},
	})

	return nil
}

// ValidateToken verifies a bearer token's signature and expiry and checks
// it has not been revoked. Every failure mode reads the same to the caller.
func (s *Service) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, ok := s.TokenGen.ValidateToken(token)
	if !ok {
		return "", ErrInvalidCredentials
	}
	stored, err := s.Tokens.FindByToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("validate token: lookup: %w", err)
	}
	if stored == nil || !stored.IsValid() {
		return "", ErrInvalidCredentials
	}
	return userID, nil
}

// RevokeToken deletes a single issued token for a user.
func (s *Service) RevokeToken(ctx context.Context, userID, token string) error {
	tokenID := token
	if len(tokenID) > 8 {
		tokenID = tokenID[:8]
	}
	if err := s.Tokens.Delete(ctx, userID, tokenID); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *Service) publishMail(ctx context.Context, job mailer.EmailJob) {
	if s.Rabbit == nil {
		return
	}
	if err := s.Rabbit.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("template", job.Template).Warn("publish mail job failed")
	}
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email.String(),
		"name":       u.Name,
		"status":     string(u.Status),
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

func (s *Service) deleteUserDoc(ctx context.Context, userID string) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	req := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: userID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return nil
}

// SearchUsers performs a simple multi_match search on email and name.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
