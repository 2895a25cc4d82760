package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sanjaympqwer/TASK-MASTER/internal/common"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/config"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/repositories/repomanager"
)

func newTestUserService() *UserService {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return NewUserService(nil, repomanager.NewMemoryRepositoryManager(), cfg)
}

func TestUserServiceSignup(t *testing.T) {
	ctx := context.Background()
	s := newTestUserService()

	user, err := s.Signup(ctx, "Jane Doe", "jane@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Jane Doe", user.Name)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	stored, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", stored.Email)
}

func TestUserServiceSignupStoresHashNotPassword(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	m := repomanager.NewMemoryRepositoryManager()
	s := NewUserService(nil, m, cfg)

	user, err := s.Signup(ctx, "Jane Doe", "jane@example.com", "password123")
	require.NoError(t, err)

	raw, err := m.Users(nil).GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", raw.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(raw.PasswordHash), []byte("password123")))
}

func TestUserServiceSignupValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestUserService()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"short name", "J", "jane@example.com", "password123"},
		{"invalid email", "Jane Doe", "not-an-email", "password123"},
		{"short password", "Jane Doe", "jane@example.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Signup(ctx, tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestUserServiceSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestUserService()

	_, err := s.Signup(ctx, "Jane Doe", "jane@example.com", "password123")
	require.NoError(t, err)

	_, err = s.Signup(ctx, "Other Jane", "Jane@Example.com", "different456")
	assert.ErrorIs(t, err, common.ErrorEmailTaken)
}

func TestUserServiceLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestUserService()

	created, err := s.Signup(ctx, "Jane Doe", "jane@example.com", "password123")
	require.NoError(t, err)

	user, err := s.Login(ctx, "JANE@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestUserServiceLoginFailures(t *testing.T) {
	ctx := context.Background()
	s := newTestUserService()

	_, err := s.Signup(ctx, "Jane Doe", "jane@example.com", "password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "jane@example.com", "wrongpassword"},
		{"unknown email", "nobody@example.com", "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, common.ErrorInvalidCredentials)
		})
	}
}

func TestUserServiceAccessToken(t *testing.T) {
	s := newTestUserService()

	token, err := s.AccessToken("user1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestUserServiceGetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestUserService()

	_, err := s.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUserServiceUpdateProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestUserService()

	created, err := s.Signup(ctx, "Jane Doe", "jane@example.com", "password123")
	require.NoError(t, err)

	updated, err := s.UpdateProfile(ctx, created.ID, "Jane Smith")
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", updated.Name)

	_, err = s.UpdateProfile(ctx, created.ID, "J")
	assert.ErrorIs(t, err, common.ErrorValidation)
}
