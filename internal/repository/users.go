// Package repository provides Postgres persistence for the directory service.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"pocketbank/internal/models"
)

// PostgresUserRepository implements user persistence using a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the given
// database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// UsernameExists checks whether a user with the specified username exists.
// It returns true if the user exists, false otherwise.
func (r *PostgresUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		username,
	).Scan(&exists)
	return exists, err
}

// CreateUser inserts a new user record.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, u *models.DirectoryUser) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (id, name, username, password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Name, u.Username, u.Password, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

// GetByID returns the user with the given id, or (nil, nil) if no such
// user exists.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.DirectoryUser, error) {
	var u models.DirectoryUser
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, name, username, password, created_at, updated_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Username, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns every user record in the directory.
func (r *PostgresUserRepository) ListUsers(ctx context.Context) ([]models.DirectoryUser, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT id, name, username, password, created_at, updated_at FROM users ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.DirectoryUser
	for rows.Next() {
		var u models.DirectoryUser
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
