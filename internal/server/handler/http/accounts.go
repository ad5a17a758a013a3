package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"pocketbank/internal/models"
	"pocketbank/internal/service"
)

// AccountService defines the interface for bank account operations
// required by the HTTP handlers.
type AccountService interface {
	// CreateAccount validates and persists a new bank account.
	CreateAccount(ctx context.Context, draft *models.BankAccount) (*models.BankAccount, error)
	// ListAccounts returns every bank account record.
	ListAccounts(ctx context.Context) ([]models.BankAccount, error)
}

// AccountHandler handles HTTP requests for bank accounts.
type AccountHandler struct {
	// AccountService performs the underlying directory operations.
	AccountService AccountService
}

// Create handles bank account creation requests. The server assigns the id;
// an unknown owner yields 404 so clients can distinguish a deleted user from
// a rejected write.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft models.BankAccount
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	a, err := h.AccountService.CreateAccount(r.Context(), &draft)
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(a)
}

// List handles requests for the full bank account collection.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.AccountService.ListAccounts(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if accounts == nil {
		accounts = []models.BankAccount{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(accounts)
}
