package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"agencysite/internal/auth"

	"github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserStore is implemented by Repository and MemoryRepository.
type UserStore interface {
	CreateUser(ctx context.Context, email string, passwordHash string) (*WebUser, error)
	GetUserByEmail(ctx context.Context, email string) (*WebUser, error)
	GetUserByID(ctx context.Context, id string) (*WebUser, error)
	CountRoles(ctx context.Context, userID, role string) (int, error)
	GrantRole(ctx context.Context, userID, role string) error
}

type Service struct {
	repo UserStore
}

func NewService(repo UserStore) *Service {
	return &Service{repo: repo}
}

func (s *Service) RegisterWebUser(ctx context.Context, email, password string) (*WebUser, error) {
	email = strings.TrimSpace(email)
	existingUser, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logrus.Errorf("error checking existing user '%s': %v", email, err)
		return nil, fmt.Errorf("internal error while checking user")
	}
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		logrus.Errorf("error hashing password for '%s': %v", email, err)
		return nil, fmt.Errorf("internal error while hashing password")
	}

	user, err := s.repo.CreateUser(ctx, email, hashedPassword)
	if err != nil {
		logrus.Errorf("error creating user '%s': %v", email, err)
		return nil, fmt.Errorf("internal error while creating user")
	}
	return user, nil
}

func (s *Service) AuthenticateWebUser(ctx context.Context, email, password string) (*WebUser, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		logrus.Errorf("error loading user '%s' for authentication: %v", email, err)
		return nil, fmt.Errorf("internal error during authentication")
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) GetWebUserByID(ctx context.Context, id string) (*WebUser, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		logrus.Errorf("error loading user by ID %s: %v", id, err)
		return nil, fmt.Errorf("internal server error")
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// IsAdmin reports whether exactly one admin role row exists for userID.
func (s *Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	n, err := s.repo.CountRoles(ctx, userID, RoleAdmin)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *Service) GrantAdmin(ctx context.Context, email string) (*WebUser, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err := s.repo.GrantRole(ctx, user.ID, RoleAdmin); err != nil {
		return nil, err
	}
	logrus.Infof("admin role granted to user %s", user.ID)
	return user, nil
}
