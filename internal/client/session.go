package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crucial707/qa-forum/internal/models"
)

// Session is what a frontend keeps after register or login. It is stored
// unencrypted.
type Session struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Valid reports whether s carries a token.
func (s Session) Valid() bool {
	return s.Token != ""
}

func sessionFrom(r models.AuthResponse) Session {
	return Session{ID: r.ID, Username: r.Username, Token: r.Token}
}

// FileStore keeps one session as JSON in a file.
type FileStore struct {
	Path string
}

// Load returns the stored session. ok is false when none is stored.
func (s FileStore) Load() (sess Session, ok bool, err error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("read session: %w", err)
	}
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, false, fmt.Errorf("decode session %s: %w", s.Path, err)
	}
	return sess, sess.Valid(), nil
}

// Save writes sess with owner-only permissions.
func (s FileStore) Save(sess Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an empty store is not an error.
func (s FileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
