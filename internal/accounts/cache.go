// Package accounts maintains the in-memory list of the current user's bank
// accounts, refreshed from the directory and guarded by the session
// manager's user-existence check.
package accounts

import (
	"context"
	"sync"

	"pocketbank/internal/models"
	"pocketbank/internal/session"
)

// UserValidator is the session manager's shared user-existence check.
// A models.ErrUserNotFound result has already fired the session's
// auto-recovery by the time it is returned here.
type UserValidator interface {
	EnsureUserValid(ctx context.Context, id string) error
}

// AccountDirectory is the subset of the directory used by the cache.
type AccountDirectory interface {
	ListAccounts(ctx context.Context, userID string) ([]models.BankAccount, error)
	AppendAccount(ctx context.Context, userID string, draft models.BankAccount) (*models.BankAccount, error)
}

// Cache holds the current user's bank accounts. The list is only mutated by
// a full replace on Refresh or an append on Append; the directory owns the
// records.
type Cache struct {
	dir       AccountDirectory
	validator UserValidator

	mu       sync.Mutex
	accounts []models.BankAccount
	loading  bool
	err      error
}

// NewCache constructs a Cache over the given directory and validator.
func NewCache(dir AccountDirectory, validator UserValidator) *Cache {
	return &Cache{dir: dir, validator: validator}
}

// Accounts returns a copy of the cached account list.
func (c *Cache) Accounts() []models.BankAccount {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.BankAccount, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Loading reports whether a refresh or append is in flight.
func (c *Cache) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last operation error, or nil.
func (c *Cache) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// ClearError clears the surfaced error.
func (c *Cache) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = nil
}

// Refresh replaces the cached list with the directory's current accounts
// for userID, in directory order. The user must still exist; a deleted user
// fails with models.ErrUserNotFound after the session's forced logout has
// fired.
func (c *Cache) Refresh(ctx context.Context, userID string) error {
	c.begin()

	if err := c.validator.EnsureUserValid(ctx, userID); err != nil {
		return c.fail(err)
	}

	list, err := c.dir.ListAccounts(ctx, userID)
	if err != nil {
		return c.fail(err)
	}

	c.mu.Lock()
	c.accounts = list
	c.loading = false
	c.err = nil
	c.mu.Unlock()
	return nil
}

// Append creates a bank account for userID through the directory and
// appends the server-assigned record to the cached list without refetching.
func (c *Cache) Append(ctx context.Context, userID string, draft models.BankAccount) (*models.BankAccount, error) {
	c.begin()

	if err := c.validator.EnsureUserValid(ctx, userID); err != nil {
		return nil, c.fail(err)
	}

	created, err := c.dir.AppendAccount(ctx, userID, draft)
	if err != nil {
		return nil, c.fail(err)
	}

	c.mu.Lock()
	c.accounts = append(c.accounts, *created)
	c.loading = false
	c.err = nil
	c.mu.Unlock()
	return created, nil
}

func (c *Cache) begin() {
	c.mu.Lock()
	c.loading = true
	c.err = nil
	c.mu.Unlock()
}

func (c *Cache) fail(err error) error {
	c.mu.Lock()
	c.loading = false
	c.err = err
	c.mu.Unlock()
	return err
}

var _ UserValidator = (*session.Manager)(nil)
