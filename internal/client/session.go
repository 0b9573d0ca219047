package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fittrack/api/internal/api"
)

// Session is the token and user snapshot a client acts as. The zero value is
// a logged-out session.
type Session struct {
	Token string    `json:"token"`
	User  *api.User `json:"user,omitempty"`
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

func (s *Session) UserID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.ID
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.User != nil && s.User.Role == "admin"
}

// Clear logs the session out in place.
func (s *Session) Clear() {
	s.Token = ""
	s.User = nil
}

type SessionStore interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// FileSessionStore keeps the session as a JSON file readable only by the
// current user.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

// DefaultSessionPath is ~/.fittrack/session.json.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".fittrack", "session.json"), nil
}

func (f *FileSessionStore) Path() string { return f.path }

// Load returns an empty session when nothing has been saved yet.
func (f *FileSessionStore) Load() (*Session, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", f.path, err)
	}
	return &s, nil
}

func (f *FileSessionStore) Save(s *Session) error {
	if !s.LoggedIn() {
		return f.Clear()
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, f.path)
}

func (f *FileSessionStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
