package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"campushub/internal/auth"
	apperrors "campushub/internal/errors"
	"campushub/internal/model"
	"campushub/internal/repository"
)

// Session is the result of a successful login.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *model.User
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*Session, error)
	Logout(ctx context.Context, principal *auth.Principal) error
}

type authService struct {
	userRepo    repository.UserRepository
	hasher      *auth.PasswordHasher
	codec       *auth.TokenCodec
	revocations auth.RevocationList
	tokenTTL    time.Duration
	now         func() time.Time
}

// NewAuthService creates a new authentication service. Tokens are issued
// for tokenTTL.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher *auth.PasswordHasher,
	codec *auth.TokenCodec,
	revocations auth.RevocationList,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		hasher:      hasher,
		codec:       codec,
		revocations: revocations,
		tokenTTL:    tokenTTL,
		now:         time.Now,
	}
}

// Login verifies the password and issues a session token. Unknown users and
// wrong passwords are indistinguishable.
func (s *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.codec.IssueWithExpiry(user.Username, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Session{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// Logout revokes the token the principal authenticated with for the rest
// of its lifetime.
func (s *authService) Logout(ctx context.Context, principal *auth.Principal) error {
	if principal == nil || principal.TokenID == "" {
		return apperrors.ErrUnauthenticated
	}
	if s.revocations == nil {
		return nil
	}
	ttl := principal.ExpiresAt.Sub(s.now())
	if err := s.revocations.Revoke(ctx, principal.TokenID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
