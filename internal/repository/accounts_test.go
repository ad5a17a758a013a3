package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"pocketbank/internal/models"
)

func setupAccountMock(t *testing.T) (*PostgresAccountRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresAccountRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCreateAccount(t *testing.T) {
	repo, mock, cleanup := setupAccountMock(t)
	defer cleanup()

	a := &models.BankAccount{
		ID: "a1", UserID: "u1", AccountNumber: "111",
		AccountType: models.Savings, Balance: 100.50, Currency: "USD", BankName: "Demo",
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO bank_accounts`)).
		WithArgs(a.ID, a.UserID, a.AccountNumber, a.AccountType, a.Balance, a.Currency, a.BankName).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.CreateAccount(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreateAccount_Error(t *testing.T) {
	repo, mock, cleanup := setupAccountMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO bank_accounts`)).
		WillReturnError(errors.New("insert failed"))

	err := repo.CreateAccount(context.Background(), &models.BankAccount{ID: "a1"})
	if err == nil {
		t.Errorf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListAccounts(t *testing.T) {
	repo, mock, cleanup := setupAccountMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "user_id", "account_number", "account_type", "balance", "currency", "bank_name"}).
		AddRow("a1", "u1", "111", "savings", 100.50, "USD", "Demo").
		AddRow("a2", "u2", "222", "checking", 20.0, "EUR", "Demo")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, account_number, account_type, balance, currency, bank_name FROM bank_accounts ORDER BY id`)).
		WillReturnRows(rows)

	accounts, err := repo.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].AccountType != models.Savings {
		t.Errorf("expected savings account, got %q", accounts[0].AccountType)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
