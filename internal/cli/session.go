package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultHost is used when neither --host nor PEERS_HOST is set.
const DefaultHost = "http://localhost:8080"

// Session is what login leaves behind for later commands.
type Session struct {
	Host        string `yaml:"host"`
	Token       string `yaml:"token"`
	Email       string `yaml:"email"`
	FullName    string `yaml:"full_name"`
	CollegeName string `yaml:"college_name"`
}

// DefaultSessionPath is <user config dir>/findyourpeers/session.yaml.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "findyourpeers", "session.yaml")
}

// LoadSession reads the session file. A missing file yields an empty session.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Session{}, nil
		}
		return nil, fmt.Errorf("error reading session: %w", err)
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error parsing session %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the session with owner-only permissions since it holds a token.
func (s *Session) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("error creating session directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("error writing session: %w", err)
	}
	return nil
}

// ClearSession removes the session file.
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing session: %w", err)
	}
	return nil
}
