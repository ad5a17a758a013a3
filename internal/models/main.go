// Package models defines the core data structures shared by the session
// core, the account cache, and the directory API.
package models

import (
	"strings"
	"time"
)

// User represents an application user as known to the directory.
type User struct {
	// ID is the directory-assigned identifier for the user.
	ID string `json:"id"`
	// Username is the login name chosen by the user.
	Username string `json:"username"`
	// Name is the display name of the user.
	Name string `json:"name"`
	// Email is optional contact information.
	Email string `json:"email,omitempty"`
}

// DirectoryUser is the directory's storage and wire form of a user record.
// The plaintext password travels with it: the demo API exposes credentials
// so clients can perform their own match, a deliberate property of the
// original mock service this directory reproduces.
type DirectoryUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// User strips the directory-only fields, leaving the record the session
// core owns while authenticated.
func (d *DirectoryUser) User() *User {
	return &User{ID: d.ID, Username: d.Username, Name: d.Name}
}

// Credential holds a username/password pair entered during login or
// registration. It is transient and never stored as a unit; the password
// alone may be persisted to support biometric re-login.
type Credential struct {
	Username string
	Password string
}

// AccountType identifies the kind of bank account.
type AccountType string

const (
	// Savings is an interest-bearing savings account.
	Savings AccountType = "savings"
	// Checking is a transactional checking account.
	Checking AccountType = "checking"
	// Credit is a credit line account.
	Credit AccountType = "credit"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Savings, Checking, Credit:
		return true
	}
	return false
}

// BankAccount represents a single bank account record owned by a user.
type BankAccount struct {
	// ID is the directory-assigned identifier for the account.
	ID string `json:"id"`
	// AccountNumber is the display number of the account.
	AccountNumber string `json:"accountNumber"`
	// AccountType is one of savings, checking, or credit.
	AccountType AccountType `json:"accountType"`
	// Balance is the current balance in the account currency.
	Balance float64 `json:"balance"`
	// Currency is a 3-letter ISO 4217 code, e.g. "USD".
	Currency string `json:"currency"`
	// BankName is the human-readable name of the issuing bank.
	BankName string `json:"bankName"`
	// UserID links the account to its owning user.
	UserID string `json:"userId"`
}

// ValidCurrency reports whether code looks like an ISO 4217 currency code:
// exactly three ASCII upper-case letters.
func ValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	return strings.IndexFunc(code, func(r rune) bool {
		return r < 'A' || r > 'Z'
	}) < 0
}
