package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/onepass/internal/filex"
)

// Session is what the CLI remembers between commands.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionFile persists a Session in a file readable only by its owner.
type SessionFile struct {
	path string
}

func NewSessionFile(path string) *SessionFile {
	return &SessionFile{path: path}
}

func (f *SessionFile) Path() string { return f.path }

func (f *SessionFile) Save(s *Session) error {
	if _, err := filex.EnsureDir(filepath.Dir(f.path)); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return filex.WriteFileAtomic(f.path, data, 0o600)
}

// Load returns ErrNotLoggedIn when no session has been saved.
func (f *SessionFile) Load() (*Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session file %s: %w", f.path, err)
	}
	if s.Token == "" {
		return nil, ErrNotLoggedIn
	}
	return &s, nil
}

// Clear removes the session file; a missing file is not an error.
func (f *SessionFile) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
