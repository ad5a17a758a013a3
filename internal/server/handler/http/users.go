// Package http provides HTTP handlers for the mock directory API:
// user registration and lookup plus bank account listing and creation.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pocketbank/internal/models"
	"pocketbank/internal/service"
)

// UserService defines the interface for directory user operations
// required by the HTTP handlers.
type UserService interface {
	// CreateUser registers a new user and returns the stored record.
	CreateUser(ctx context.Context, name, username, password string) (*models.DirectoryUser, error)
	// GetByID returns the user with the given id.
	GetByID(ctx context.Context, id string) (*models.DirectoryUser, error)
	// ListUsers returns every user record.
	ListUsers(ctx context.Context) ([]models.DirectoryUser, error)
}

// UserHandler handles HTTP requests for directory users.
type UserHandler struct {
	// UserService performs the underlying directory operations.
	UserService UserService
}

// CreateUserRequest represents the JSON payload for user creation.
type CreateUserRequest struct {
	// Name is the display name of the new user.
	Name string `json:"name"`
	// Username is the login name to register.
	Username string `json:"username"`
	// Password is the plaintext password for the demo directory.
	Password string `json:"password"`
}

// Create handles user creation requests.
// It expects a JSON body with non-empty name, username, and password fields
// and responds 409 when the username is already taken.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	u, err := h.UserService.CreateUser(r.Context(), req.Name, req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrDuplicateUsername):
		http.Error(w, "username already exists", http.StatusConflict)
		return
	case err != nil:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(u)
}

// List handles requests for the full user collection. Like the mock service
// it reproduces, the response includes stored passwords; credential matching
// is the client's job.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.DirectoryUser{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(users)
}

// Get handles single-user lookups by id, responding 404 when absent.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.UserService.GetByID(r.Context(), id)
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}
