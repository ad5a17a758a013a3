// Package service provides the directory's business logic, delegating
// persistence to repositories.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"pocketbank/internal/models"
)

// ErrInvalidArgument is returned when a request fails validation.
var ErrInvalidArgument = errors.New("invalid argument")

// UserRepository defines the persistence operations required by the
// user service.
type UserRepository interface {
	// UsernameExists returns true if a user with the given username exists.
	UsernameExists(ctx context.Context, username string) (bool, error)
	// CreateUser creates a new user record.
	CreateUser(ctx context.Context, u *models.DirectoryUser) error
	// GetByID returns the user with the given id, or (nil, nil) if absent.
	GetByID(ctx context.Context, id string) (*models.DirectoryUser, error)
	// ListUsers returns every user record.
	ListUsers(ctx context.Context) ([]models.DirectoryUser, error)
}

// UserService implements directory user operations by delegating to a
// UserRepository.
type UserService struct {
	repo UserRepository
}

// NewUserService constructs a new UserService using the provided repository.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// CreateUser registers a new directory user, assigning an id and timestamps.
// Returns models.ErrDuplicateUsername if the username is already taken.
func (s *UserService) CreateUser(ctx context.Context, name, username, password string) (*models.DirectoryUser, error) {
	if name == "" || username == "" || password == "" {
		return nil, ErrInvalidArgument
	}

	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrDuplicateUsername
	}

	now := time.Now().UTC()
	u := &models.DirectoryUser{
		ID:        uuid.NewString(),
		Name:      name,
		Username:  username,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID returns the user with the given id.
// Returns models.ErrUserNotFound if no such user exists.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.DirectoryUser, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, models.ErrUserNotFound
	}
	return u, nil
}

// ListUsers returns every user record in the directory.
func (s *UserService) ListUsers(ctx context.Context) ([]models.DirectoryUser, error) {
	return s.repo.ListUsers(ctx)
}
