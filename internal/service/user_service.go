package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"campushub/internal/auth"
	apperrors "campushub/internal/errors"
	"campushub/internal/model"
	"campushub/internal/repository"
)

// Registration is the data needed to open an account.
type Registration struct {
	Username string
	Email    string
	Password string
	FullName string
	Bio      string
}

// UserService exposes account operations.
type UserService interface {
	Register(ctx context.Context, reg Registration) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context, page repository.Page) ([]model.User, error)
	UpdateUser(ctx context.Context, actor *model.User, id uint, p model.UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, actor *model.User, id uint) error
}

type userService struct {
	repo   repository.UserRepository
	hasher *auth.PasswordHasher
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, hasher *auth.PasswordHasher) UserService {
	return &userService{repo: repo, hasher: hasher}
}

// Register creates an account with a hashed password. Email and username
// must be unused.
func (s *userService) Register(ctx context.Context, reg Registration) (*model.User, error) {
	if err := s.ensureUnused(ctx, reg); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmptyPassword) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		return nil, err
	}

	user := &model.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
		FullName:     reg.FullName,
		Bio:          reg.Bio,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// a concurrent registration can still win the unique index
		return nil, writeError(err, apperrors.ErrConflict, "create user")
	}
	return user, nil
}

func (s *userService) ensureUnused(ctx context.Context, reg Registration) error {
	if _, err := s.repo.FindByEmail(ctx, reg.Email); err == nil {
		return apperrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check email: %w", err)
	}

	if _, err := s.repo.FindByUsername(ctx, reg.Username); err == nil {
		return apperrors.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check username: %w", err)
	}
	return nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrUserNotFound, "get user")
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, page repository.Page) ([]model.User, error) {
	users, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser changes the actor's own profile. The ownership check runs
// before the lookup, so touching someone else's id is always Forbidden.
func (s *userService) UpdateUser(ctx context.Context, actor *model.User, id uint, p model.UserPatch) (*model.User, error) {
	if err := auth.AuthorizeOwner(actor, id); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrUserNotFound, "get user")
	}

	if err := s.repo.Update(ctx, user, p.Apply(user)); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes an account; admins may remove anyone.
func (s *userService) DeleteUser(ctx context.Context, actor *model.User, id uint) error {
	if err := auth.AuthorizeAccountRemoval(actor, id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return apperrors.ErrUserNotFound
	}
	return nil
}
