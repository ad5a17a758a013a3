package repository

import (
	"context"
	"database/sql"

	"pocketbank/internal/models"
)

// PostgresAccountRepository implements bank account persistence using a
// PostgreSQL database.
type PostgresAccountRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository with
// the given database connection.
func NewPostgresAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{DB: db}
}

// CreateAccount inserts a new bank account record.
func (r *PostgresAccountRepository) CreateAccount(ctx context.Context, a *models.BankAccount) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO bank_accounts (id, user_id, account_number, account_type, balance, currency, bank_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.UserID, a.AccountNumber, a.AccountType, a.Balance, a.Currency, a.BankName,
	)
	return err
}

// ListAccounts returns every bank account record in the directory.
func (r *PostgresAccountRepository) ListAccounts(ctx context.Context) ([]models.BankAccount, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT id, user_id, account_number, account_type, balance, currency, bank_name FROM bank_accounts ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.BankAccount
	for rows.Next() {
		var a models.BankAccount
		if err := rows.Scan(&a.ID, &a.UserID, &a.AccountNumber, &a.AccountType, &a.Balance, &a.Currency, &a.BankName); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
