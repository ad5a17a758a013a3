package service

import (
	"context"

	"github.com/google/uuid"

	"pocketbank/internal/models"
)

// AccountRepository defines the persistence operations required by the
// account service.
type AccountRepository interface {
	// CreateAccount creates a new bank account record.
	CreateAccount(ctx context.Context, a *models.BankAccount) error
	// ListAccounts returns every bank account record.
	ListAccounts(ctx context.Context) ([]models.BankAccount, error)
}

// AccountService implements directory bank account operations.
type AccountService struct {
	repo  AccountRepository
	users UserRepository
}

// NewAccountService constructs a new AccountService using the provided
// account and user repositories.
func NewAccountService(repo AccountRepository, users UserRepository) *AccountService {
	return &AccountService{repo: repo, users: users}
}

// CreateAccount validates the draft, verifies the owning user exists, assigns
// an id, and persists the record. Returns models.ErrUserNotFound when the
// owner is unknown and ErrInvalidArgument on a malformed draft.
func (s *AccountService) CreateAccount(ctx context.Context, draft *models.BankAccount) (*models.BankAccount, error) {
	if draft.UserID == "" || draft.AccountNumber == "" || draft.BankName == "" {
		return nil, ErrInvalidArgument
	}
	if !draft.AccountType.Valid() || !models.ValidCurrency(draft.Currency) {
		return nil, ErrInvalidArgument
	}

	owner, err := s.users.GetByID(ctx, draft.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, models.ErrUserNotFound
	}

	a := *draft
	a.ID = uuid.NewString()
	if err := s.repo.CreateAccount(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAccounts returns every bank account record in the directory.
func (s *AccountService) ListAccounts(ctx context.Context) ([]models.BankAccount, error) {
	return s.repo.ListAccounts(ctx)
}
