// Package session keeps draftctl state between invocations: the login token,
// the ten players being drafted and the pairing last shown.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"team-draft/internal/draftv1"
)

type Session struct {
	Token     string           `json:"token,omitempty"`
	Email     string           `json:"email,omitempty"`
	PlayerIDs []int64          `json:"playerIds,omitempty"`
	Pairing   *draftv1.Pairing `json:"pairing,omitempty"`
}

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns an empty session when nothing has been saved yet.
func (s *Store) Load() (*Session, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("session file %s: %w", s.path, err)
	}
	return &sess, nil
}

// Save writes through a temp file so a crash never leaves half a session.
// The file holds a bearer token and is readable by the owner only.
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
