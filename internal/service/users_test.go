package service

import (
	"context"
	"errors"
	"testing"

	"pocketbank/internal/models"
)

type mockUserRepo struct {
	UsernameExistsFunc func(ctx context.Context, username string) (bool, error)
	CreateUserFunc     func(ctx context.Context, u *models.DirectoryUser) error
	GetByIDFunc        func(ctx context.Context, id string) (*models.DirectoryUser, error)
	ListUsersFunc      func(ctx context.Context) ([]models.DirectoryUser, error)
}

func (m *mockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return m.UsernameExistsFunc(ctx, username)
}
func (m *mockUserRepo) CreateUser(ctx context.Context, u *models.DirectoryUser) error {
	return m.CreateUserFunc(ctx, u)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.DirectoryUser, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockUserRepo) ListUsers(ctx context.Context) ([]models.DirectoryUser, error) {
	return m.ListUsersFunc(ctx)
}

func TestCreateUser_Success(t *testing.T) {
	var created *models.DirectoryUser
	repo := &mockUserRepo{
		UsernameExistsFunc: func(ctx context.Context, username string) (bool, error) {
			if username != "ada" {
				t.Errorf("UsernameExists received username = %q; want %q", username, "ada")
			}
			return false, nil
		},
		CreateUserFunc: func(ctx context.Context, u *models.DirectoryUser) error {
			created = u
			return nil
		},
	}
	svc := NewUserService(repo)

	u, err := svc.CreateUser(context.Background(), "Ada", "ada", "secret1")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if u.ID == "" {
		t.Errorf("expected an assigned id")
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Errorf("expected timestamps to be set")
	}
	if created == nil || created.ID != u.ID {
		t.Errorf("expected the created record to be persisted")
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	repo := &mockUserRepo{
		UsernameExistsFunc: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.CreateUser(context.Background(), "Ada", "ada", "secret1")
	if !errors.Is(err, models.ErrDuplicateUsername) {
		t.Fatalf("CreateUser error = %v; want ErrDuplicateUsername", err)
	}
}

func TestCreateUser_InvalidArgument(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	for _, args := range [][3]string{
		{"", "ada", "secret1"},
		{"Ada", "", "secret1"},
		{"Ada", "ada", ""},
	} {
		_, err := svc.CreateUser(context.Background(), args[0], args[1], args[2])
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("CreateUser(%q, %q, %q) error = %v; want ErrInvalidArgument", args[0], args[1], args[2], err)
		}
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.DirectoryUser, error) {
			return nil, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.GetByID(context.Background(), "nope")
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("GetByID error = %v; want ErrUserNotFound", err)
	}
}

func TestGetByID_Success(t *testing.T) {
	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.DirectoryUser, error) {
			return &models.DirectoryUser{ID: id, Username: "ada"}, nil
		},
	}
	svc := NewUserService(repo)

	u, err := svc.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if u.Username != "ada" {
		t.Errorf("GetByID returned %q; want ada", u.Username)
	}
}
