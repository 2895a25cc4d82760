// Package services contains server-side business logic. This file implements
// UserService: signup, login, profile updates, avatar storage, and minting
// access tokens for API clients.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sanjaympqwer/TASK-MASTER/internal/common"
	"github.com/sanjaympqwer/TASK-MASTER/internal/dbx"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/auth"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/config"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/models"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/repositories/repomanager"
)

// passwordHashCost matches the cost the original accounts were created with;
// changing it would only affect new signups but keep comparisons working.
const passwordHashCost = 10

// dummyPasswordHash is compared against when no account matches the login
// email, so both failure paths pay for a bcrypt comparison and neither is
// distinguishable by timing.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserService provides account-related operations:
// - Signup: validate input and create users
// - Login: verify credentials without leaking account existence
// - UpdateProfile / avatar handling
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	config                      *config.Config
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.AuthSecret),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		config:                      cfg,
	}
}

// NormalizeEmail canonicalizes an address for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateSignup(name, email, password string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", common.ErrorValidation)
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", common.ErrorValidation)
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: please enter a valid email address", common.ErrorValidation)
	}
	return nil
}

// Signup validates the form, rejects duplicate emails, hashes the password,
// and creates the account. All validation happens before any store write.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if err := validateSignup(name, email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = inTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetByEmail(ctx, email); err == nil {
			return common.ErrorEmailTaken
		} else if !errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInternal
		}

		user, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			return nil, common.ErrorEmailTaken
		}
		if errors.Is(err, common.ErrorInternal) {
			return nil, common.ErrorInternal
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// Login verifies the credentials and returns the account. A missing account,
// an account without a stored hash, and a wrong password all produce the
// same ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn a comparison so this path costs the same as a mismatch
			_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(password))
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if user.PasswordHash == "" {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(password))
		return nil, common.ErrorInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// AccessToken mints a short-lived bearer token for API clients that do not
// hold the session cookie.
func (s *UserService) AccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

// GetByID returns the account for an authenticated session. A stored avatar
// key comes back as a presigned download URL, ready to render.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	if err := s.presentAvatarURL(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile renames the account. Name is the only profile field a user
// can edit directly; the avatar flows through SetAvatar.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name string) (*models.User, error) {
	if len(strings.TrimSpace(name)) < 2 {
		return nil, fmt.Errorf("%w: name must be at least 2 characters", common.ErrorValidation)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	user.Name = strings.TrimSpace(name)
	user.UpdatedAt = time.Now()

	if err := repo.Update(ctx, user); err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.presentAvatarURL(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetAvatar records the object-storage key of an uploaded avatar. The key is
// stored as soon as the upload URL is issued, ahead of the actual PUT.
func (s *UserService) SetAvatar(ctx context.Context, userID, storageKey string) (*models.User, error) {
	if storageKey == "" {
		return nil, fmt.Errorf("%w: storage key is required", common.ErrorValidation)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	user.AvatarURL = storageKey
	user.UpdatedAt = time.Now()

	if err := repo.Update(ctx, user); err != nil {
		return nil, common.ErrorInternal
	}
	return user, nil
}
