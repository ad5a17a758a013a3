package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"pocketbank/internal/models"
	"pocketbank/internal/service"
)

// fakeUserService implements UserService for testing.
type fakeUserService struct {
	createReturn *models.DirectoryUser
	createErr    error
	getReturn    *models.DirectoryUser
	getErr       error
	listReturn   []models.DirectoryUser
	listErr      error
}

func (f *fakeUserService) CreateUser(ctx context.Context, name, username, password string) (*models.DirectoryUser, error) {
	return f.createReturn, f.createErr
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*models.DirectoryUser, error) {
	return f.getReturn, f.getErr
}

func (f *fakeUserService) ListUsers(ctx context.Context) ([]models.DirectoryUser, error) {
	return f.listReturn, f.listErr
}

func TestUserHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeUserService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			service:        &fakeUserService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid request",
		},
		{
			name:           "validation failure",
			body:           `{"name":"","username":"ada","password":"pw"}`,
			service:        &fakeUserService{createErr: service.ErrInvalidArgument},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid request",
		},
		{
			name:           "duplicate username",
			body:           `{"name":"Ada","username":"ada","password":"pw"}`,
			service:        &fakeUserService{createErr: models.ErrDuplicateUsername},
			expectedCode:   http.StatusConflict,
			expectedSubstr: "username already exists",
		},
		{
			name:           "service error",
			body:           `{"name":"Ada","username":"ada","password":"pw"}`,
			service:        &fakeUserService{createErr: errors.New("db down")},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "internal error",
		},
		{
			name:           "success",
			body:           `{"name":"Ada","username":"ada","password":"pw"}`,
			service:        &fakeUserService{createReturn: &models.DirectoryUser{ID: "u1", Username: "ada"}},
			expectedCode:   http.StatusCreated,
			expectedSubstr: `"id":"u1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/user", bytes.NewBufferString(tt.body))
			h := &UserHandler{UserService: tt.service}
			h.Create(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			buf := new(bytes.Buffer)
			if _, err := buf.ReadFrom(res.Body); err != nil {
				t.Fatalf("failed to read body: %v", err)
			}
			if !bytes.Contains(buf.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, buf.String())
			}
		})
	}
}

func TestUserHandler_Get(t *testing.T) {
	tests := []struct {
		name         string
		service      *fakeUserService
		expectedCode int
	}{
		{
			name:         "not found",
			service:      &fakeUserService{getErr: models.ErrUserNotFound},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "service error",
			service:      &fakeUserService{getErr: errors.New("db down")},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "found",
			service:      &fakeUserService{getReturn: &models.DirectoryUser{ID: "u1", Username: "ada", Password: "secret1"}},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &UserHandler{UserService: tt.service}
			r := chi.NewRouter()
			r.Get("/user/{id}", h.Get)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/user/u1", nil)
			r.ServeHTTP(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}
			if tt.expectedCode == http.StatusOK {
				var u models.DirectoryUser
				if err := json.NewDecoder(res.Body).Decode(&u); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if u.Password != "secret1" {
					t.Errorf("expected the record to include the password, got %+v", u)
				}
			}
		})
	}
}

func TestUserHandler_List(t *testing.T) {
	h := &UserHandler{UserService: &fakeUserService{
		listReturn: []models.DirectoryUser{{ID: "u1"}, {ID: "u2"}},
	}}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/user", nil))
	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	var users []models.DirectoryUser
	if err := json.NewDecoder(res.Body).Decode(&users); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}

func TestUserHandler_List_Empty(t *testing.T) {
	h := &UserHandler{UserService: &fakeUserService{}}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/user", nil))

	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}
