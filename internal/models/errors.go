package models

import "errors"

// Domain errors shared between the session core, the account cache, and the
// directory client. Remote and capability failures are always surfaced as one
// of these so callers can match with errors.Is.
var (
	// registration / login
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRegistrationFailed = errors.New("failed to create account")
	ErrLoginFailed        = errors.New("login failed")

	// biometric preconditions and challenge
	ErrBiometricUnsupported = errors.New("biometric authentication is not supported on this device")
	ErrNoBiometricEnrolled  = errors.New("no biometric enrolled on this device")
	ErrBiometricAuthFailed  = errors.New("biometric authentication failed")
	ErrNoSavedSession       = errors.New("no saved user data found")
	ErrBiometricNotEnabled  = errors.New("biometric authentication is not enabled for this account")
	ErrNoSavedPassword      = errors.New("no saved password found")

	// accounts
	ErrUserNotFound        = errors.New("user not found - account may have been deleted or is invalid")
	ErrAddAccountFailed    = errors.New("failed to add bank account")
	ErrFetchAccountsFailed = errors.New("failed to fetch bank accounts")
)
