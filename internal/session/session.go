// Package session owns the authentication state machine: credential and
// biometric login, registration, logout, forced logout, saved-session
// restore, and the user-not-found auto-recovery that backs the banking
// app's security policy.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"pocketbank/internal/biometric"
	"pocketbank/internal/models"
)

// State identifies the session manager's current position in the
// authentication state machine.
type State int

const (
	// StateLoggedOut means no user is authenticated.
	StateLoggedOut State = iota
	// StateAuthenticating means a register/login attempt is in flight.
	StateAuthenticating
	// StateLoggedIn means a user is authenticated.
	StateLoggedIn
	// StateValidatingSession means a saved session is being re-validated
	// against the directory.
	StateValidatingSession
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateAuthenticating:
		return "authenticating"
	case StateLoggedIn:
		return "logged_in"
	case StateValidatingSession:
		return "validating_session"
	}
	return "unknown"
}

// Event is a one-shot navigation intent for the presentation layer.
type Event int

const (
	// NavigateLogin asks the presentation layer to show the login screen.
	NavigateLogin Event = iota
	// NavigateMain asks the presentation layer to show the main screen.
	NavigateMain
)

// Snapshot is the session state exposed to the presentation layer.
// After every settled transition LoggedIn == (User != nil).
type Snapshot struct {
	User             *models.User
	LoggedIn         bool
	BiometricEnabled bool
	Loading          bool
	Err              error
}

// Directory is the remote source of truth for users and bank accounts.
type Directory interface {
	CreateUser(ctx context.Context, name, username, password string) (*models.User, error)
	FindByCredentials(ctx context.Context, username, password string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.DirectoryUser, error)
	ValidateExists(ctx context.Context, id string) (bool, error)
	ListAccounts(ctx context.Context, userID string) ([]models.BankAccount, error)
	AppendAccount(ctx context.Context, userID string, draft models.BankAccount) (*models.BankAccount, error)
}

// Store is the local credential store. Writes are best effort: the
// implementation logs and swallows failures, so none of these return errors.
type Store interface {
	SaveUser(u *models.User)
	GetUser() *models.User
	ClearAll()
	SetBiometricEnabled(enabled bool)
	GetBiometricEnabled() bool
	SavePassword(password string)
	GetPassword() string
	ClearPassword()
	SetLastLogin(t time.Time)
	GetLastLogin() (time.Time, bool)
}

// recoveryState guards the user-not-found auto-recovery. The forced logout
// fires only on the recoveryIdle → recoveryTriggered edge and the guard
// resets only when the error clears.
type recoveryState int

const (
	recoveryIdle recoveryState = iota
	recoveryTriggered
)

// Manager is the session manager. It serializes access to its own state but
// does not serialize overlapping intents: callers are expected to debounce
// while Loading is set, and a second call racing the first simply settles
// last.
type Manager struct {
	dir     Directory
	store   Store
	bio     biometric.Capability
	log     *zap.Logger
	timeout time.Duration

	mu       sync.Mutex
	state    State
	user     *models.User
	err      error
	recovery recoveryState
	events   chan Event
}

// DefaultTimeout bounds each remote call made by the manager.
const DefaultTimeout = 10 * time.Second

// NewManager constructs a session manager over the given collaborators.
// A non-positive timeout falls back to DefaultTimeout.
func NewManager(dir Directory, store Store, bio biometric.Capability, log *zap.Logger, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{
		dir:     dir,
		store:   store,
		bio:     bio,
		log:     log,
		timeout: timeout,
		state:   StateLoggedOut,
		events:  make(chan Event, 8),
	}
}

// Events returns the one-shot navigation intents. Emission never blocks;
// if the presentation layer falls behind, events are dropped and logged.
func (m *Manager) Events() <-chan Event {
	return m.events
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		User:             m.user,
		LoggedIn:         m.state == StateLoggedIn,
		BiometricEnabled: m.store.GetBiometricEnabled(),
		Loading:          m.state == StateAuthenticating || m.state == StateValidatingSession,
		Err:              m.err,
	}
}

// State returns the current machine state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ClearError clears the surfaced error and re-arms the user-not-found
// recovery guard.
func (m *Manager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = nil
	m.recovery = recoveryIdle
}

// Register creates a new directory user and logs them in.
func (m *Manager) Register(ctx context.Context, name, username, password string) error {
	m.beginAuth()

	cctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	u, err := m.dir.CreateUser(cctx, name, username, password)
	if err != nil {
		m.settleLoggedOut(err)
		return err
	}

	m.store.SaveUser(u)
	m.store.SetLastLogin(time.Now())

	m.settleLoggedIn(u)
	return nil
}

// Login authenticates username/password against the directory. On success
// the user record and the plaintext password are persisted so a later
// biometric login can replay the credentials.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.beginAuth()
	return m.login(ctx, username, password)
}

// login runs the shared credential flow for Login and BiometricLogin.
// The caller has already moved the machine to StateAuthenticating.
func (m *Manager) login(ctx context.Context, username, password string) error {
	cctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	u, err := m.dir.FindByCredentials(cctx, username, password)
	if err != nil {
		m.settleLoggedOut(err)
		return err
	}

	m.store.SaveUser(u)
	m.store.SavePassword(password)
	m.store.SetLastLogin(time.Now())

	m.settleLoggedIn(u)
	return nil
}

// BiometricLogin re-authenticates using the saved credentials after a
// biometric challenge. The precondition chain is checked in order, each
// failing with its own error: hardware, enrollment, saved user, enablement
// flag, saved password. A stale or deleted account surfaces as
// models.ErrInvalidCredentials from the replayed login.
func (m *Manager) BiometricLogin(ctx context.Context) error {
	m.beginAuth()

	if !m.bio.HasHardware(ctx) {
		return m.failAuth(models.ErrBiometricUnsupported)
	}
	if !m.bio.IsEnrolled(ctx) {
		return m.failAuth(models.ErrNoBiometricEnrolled)
	}

	saved := m.store.GetUser()
	if saved == nil {
		return m.failAuth(models.ErrNoSavedSession)
	}
	if !m.store.GetBiometricEnabled() {
		return m.failAuth(models.ErrBiometricNotEnabled)
	}
	password := m.store.GetPassword()
	if password == "" {
		return m.failAuth(models.ErrNoSavedPassword)
	}

	ok, err := m.bio.Challenge(ctx, "Authenticate with biometric")
	if err != nil {
		m.log.Warn("biometric challenge error", zap.Error(err))
	}
	if err != nil || !ok {
		return m.failAuth(models.ErrBiometricAuthFailed)
	}

	return m.login(ctx, saved.Username, password)
}

// EnableBiometric verifies the capability, runs a confirmation challenge,
// and persists the enablement flag together with the password the next
// biometric login will replay. The session state is unchanged either way.
func (m *Manager) EnableBiometric(ctx context.Context, password string) error {
	if !m.bio.HasHardware(ctx) {
		return m.reportError(models.ErrBiometricUnsupported)
	}
	if !m.bio.IsEnrolled(ctx) {
		return m.reportError(models.ErrNoBiometricEnrolled)
	}
	// Enabling without a password would leave a flag the next biometric
	// login cannot honor.
	if password == "" {
		return m.reportError(models.ErrNoSavedPassword)
	}

	ok, err := m.bio.Challenge(ctx, "Authenticate to enable biometric login")
	if err != nil {
		m.log.Warn("biometric challenge error", zap.Error(err))
	}
	if err != nil || !ok {
		return m.reportError(models.ErrBiometricAuthFailed)
	}

	m.store.SetBiometricEnabled(true)
	m.store.SavePassword(password)
	return nil
}

// DisableBiometric clears the enablement flag and erases the saved
// password. It has no preconditions and is idempotent.
func (m *Manager) DisableBiometric(ctx context.Context) {
	m.store.SetBiometricEnabled(false)
	m.store.ClearPassword()
}

// Logout terminates the session on user request, wiping the credential
// store entirely. Local storage failures are swallowed at the store
// boundary, so logout always succeeds.
func (m *Manager) Logout(ctx context.Context) {
	m.wipe()
}

// ForcedLogout is the security- or error-triggered variant of Logout:
// identical wipe, plus a navigate-to-login intent for the presentation
// layer.
func (m *Manager) ForcedLogout(ctx context.Context) {
	m.wipe()
	m.emit(NavigateLogin)
}

// RestoreSession attempts to restore a saved session. It only consults the
// directory when both a saved user and the biometric flag are present;
// otherwise it settles LoggedOut immediately with no network call. A saved
// user the directory no longer knows wipes the store. On success the saved
// copy of the user is restored, not the directory's freshened one.
func (m *Manager) RestoreSession(ctx context.Context) error {
	saved := m.store.GetUser()
	if saved == nil || !m.store.GetBiometricEnabled() {
		m.mu.Lock()
		m.state = StateLoggedOut
		m.user = nil
		m.mu.Unlock()
		return nil
	}

	m.mu.Lock()
	m.state = StateValidatingSession
	m.err = nil
	m.recovery = recoveryIdle
	m.mu.Unlock()

	cctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	ok, err := m.dir.ValidateExists(cctx, saved.ID)
	if err != nil {
		m.settleLoggedOut(err)
		return err
	}
	if !ok {
		m.store.ClearAll()
		m.mu.Lock()
		m.state = StateLoggedOut
		m.user = nil
		m.err = models.ErrUserNotFound
		m.recovery = recoveryTriggered
		m.mu.Unlock()
		m.emit(NavigateLogin)
		return models.ErrUserNotFound
	}

	m.mu.Lock()
	m.state = StateLoggedIn
	m.user = saved
	m.err = nil
	m.mu.Unlock()
	m.emit(NavigateMain)
	return nil
}

// HandleBackground applies the always-re-authenticate policy when the app
// leaves the foreground: any live session is terminated so none survives in
// a backgrounded app.
func (m *Manager) HandleBackground(ctx context.Context) {
	if m.State() != StateLoggedIn {
		return
	}
	m.log.Info("app backgrounded, terminating session")
	m.wipe()
}

// HandleForeground closes the race where a session survived backgrounding:
// if the app returns to the foreground still logged in, the session is
// terminated and the presentation layer is sent back to login.
func (m *Manager) HandleForeground(ctx context.Context) {
	if m.State() != StateLoggedIn {
		return
	}
	m.log.Info("app foregrounded with a live session, terminating")
	m.wipe()
	m.emit(NavigateLogin)
}

// EnsureUserValid checks that the user id still resolves in the directory.
// It is the single existence check shared with the account cache. A missing
// user surfaces models.ErrUserNotFound and fires the one-shot auto-recovery;
// transport failures are returned as-is without touching the session.
func (m *Manager) EnsureUserValid(ctx context.Context, id string) error {
	cctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	ok, err := m.dir.ValidateExists(cctx, id)
	if err != nil {
		return err
	}
	if !ok {
		m.reportError(models.ErrUserNotFound)
		return models.ErrUserNotFound
	}
	return nil
}

// beginAuth moves the machine into StateAuthenticating and clears any
// surfaced error, mirroring the pending edge of an auth attempt.
func (m *Manager) beginAuth() {
	m.mu.Lock()
	m.state = StateAuthenticating
	m.err = nil
	m.recovery = recoveryIdle
	m.mu.Unlock()
}

// failAuth settles a failed auth attempt back to LoggedOut.
func (m *Manager) failAuth(err error) error {
	m.settleLoggedOut(err)
	return err
}

// settleLoggedIn completes a successful auth transition.
func (m *Manager) settleLoggedIn(u *models.User) {
	m.mu.Lock()
	m.state = StateLoggedIn
	m.user = u
	m.err = nil
	m.recovery = recoveryIdle
	m.mu.Unlock()
	m.emit(NavigateMain)
}

// settleLoggedOut completes a failed auth or validation transition,
// routing user-not-found errors through the recovery guard.
func (m *Manager) settleLoggedOut(err error) {
	m.mu.Lock()
	m.state = StateLoggedOut
	m.user = nil
	m.mu.Unlock()
	m.reportError(err)
}

// reportError surfaces err on the snapshot. ErrUserNotFound additionally
// fires the one-shot auto-recovery: exactly one forced logout and redirect
// per outstanding error, re-armed only by ClearError.
func (m *Manager) reportError(err error) error {
	m.mu.Lock()
	m.err = err
	fire := errors.Is(err, models.ErrUserNotFound) && m.recovery == recoveryIdle
	if fire {
		m.recovery = recoveryTriggered
	}
	m.mu.Unlock()

	if fire {
		m.log.Info("user not found, clearing session data")
		m.wipe()
		m.emit(NavigateLogin)
	}
	return err
}

// wipe clears the credential store and drops any authenticated user,
// preserving the surfaced error.
func (m *Manager) wipe() {
	m.store.ClearAll()
	m.mu.Lock()
	m.state = StateLoggedOut
	m.user = nil
	m.mu.Unlock()
}

// emit delivers a navigation event without blocking.
func (m *Manager) emit(e Event) {
	select {
	case m.events <- e:
	default:
		m.log.Warn("navigation event dropped", zap.Int("event", int(e)))
	}
}
