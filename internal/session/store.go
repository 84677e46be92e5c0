// ABOUTME: File-backed store for the current session credential
// ABOUTME: Persists the portal token in the XDG config directory

package session

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

const sessionFile = "session.json"

// Store holds the single current session credential. One credential is
// current at a time; Set replaces any prior value.
type Store struct {
	dir string
}

type sessionData struct {
	Token string `json:"token"`
}

// NewStore creates a store rooted at the given config directory.
// Tests pass a temp directory so they never share persisted state.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) file() string {
	return filepath.Join(s.dir, sessionFile)
}

// Set persists the token, replacing any prior credential.
func (s *Store) Set(token string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(sessionData{Token: token})
	if err != nil {
		return err
	}

	// 0600: the credential authenticates as the user
	return os.WriteFile(s.file(), data, 0600)
}

// Get returns the current credential. A missing or unreadable session file
// is reported as absent, never as an error.
func (s *Store) Get() (string, bool) {
	data, err := os.ReadFile(s.file())
	if err != nil {
		return "", false
	}

	var sd sessionData
	if err := json.Unmarshal(data, &sd); err != nil {
		slog.Debug("session file unreadable, treating as absent", "path", s.file(), "error", err)
		return "", false
	}
	if sd.Token == "" {
		return "", false
	}

	return sd.Token, true
}

// Clear removes the current credential.
func (s *Store) Clear() error {
	err := os.Remove(s.file())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
