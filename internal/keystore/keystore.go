// Package keystore provides the local credential store: the last-known user
// record, an optional saved password for biometric re-login, the biometric
// enablement flag, and the last-login timestamp.
//
// Local persistence is best effort. Write failures are logged and swallowed;
// the directory remains the authoritative source of truth, so the session
// core re-validates whenever it matters. The saved password is plaintext,
// a known weakness of this design carried over deliberately.
package keystore

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"pocketbank/internal/models"
)

// fileData is the on-disk JSON shape of the store.
type fileData struct {
	User             *models.User `json:"user,omitempty"`
	Password         string       `json:"password,omitempty"`
	BiometricEnabled bool         `json:"biometricEnabled,omitempty"`
	LastLogin        int64        `json:"lastLogin,omitempty"` // unix milliseconds
}

// FileStore is a mutex-guarded credential store backed by a single JSON file.
type FileStore struct {
	path string
	log  *zap.Logger

	mu   sync.Mutex
	data fileData
}

// New opens the store at path, loading existing contents if present.
// A missing file starts empty; an unreadable one is logged and discarded.
func New(path string, log *zap.Logger) *FileStore {
	s := &FileStore{path: path, log: log}

	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("failed to read credential store", zap.String("path", path), zap.Error(err))
		}
		return s
	}
	if err := json.Unmarshal(b, &s.data); err != nil {
		log.Warn("discarding corrupt credential store", zap.String("path", path), zap.Error(err))
		s.data = fileData{}
	}
	return s
}

// save writes the current contents to disk. Must be called with mu held.
// Failures are logged, never returned.
func (s *FileStore) save() {
	b, err := json.Marshal(s.data)
	if err != nil {
		s.log.Error("failed to encode credential store", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		s.log.Error("failed to write credential store", zap.String("path", s.path), zap.Error(err))
	}
}

// SaveUser persists the given user record.
func (s *FileStore) SaveUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *u
	s.data.User = &copied
	s.save()
}

// GetUser returns the saved user record, or nil if none is stored.
func (s *FileStore) GetUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.User == nil {
		return nil
	}
	copied := *s.data.User
	return &copied
}

// ClearAll erases the user record, password, biometric flag, and last-login
// timestamp in a single file rewrite.
func (s *FileStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = fileData{}
	s.save()
}

// SetBiometricEnabled persists the biometric enablement flag.
func (s *FileStore) SetBiometricEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.BiometricEnabled = enabled
	s.save()
}

// GetBiometricEnabled returns the biometric enablement flag.
func (s *FileStore) GetBiometricEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.BiometricEnabled
}

// SavePassword persists the password used for biometric re-login.
func (s *FileStore) SavePassword(password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Password = password
	s.save()
}

// GetPassword returns the saved password, or "" if none is stored.
func (s *FileStore) GetPassword() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Password
}

// ClearPassword erases the saved password.
func (s *FileStore) ClearPassword() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Password = ""
	s.save()
}

// SetLastLogin persists the last successful login time.
func (s *FileStore) SetLastLogin(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.LastLogin = t.UnixMilli()
	s.save()
}

// GetLastLogin returns the last successful login time and whether one
// is recorded.
func (s *FileStore) GetLastLogin() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.LastLogin == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(s.data.LastLogin), true
}
