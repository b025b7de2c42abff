package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/crucial707/qa-forum/internal/client"
)

const sessionFileName = ".forum_session.json"

// ErrNotLoggedIn is returned by protected commands when no session is stored.
var ErrNotLoggedIn = errors.New("not logged in: run `forum login` first")

// Config is read from the environment on every command.
type Config struct {
	// APIURL is the forum API base URL.
	APIURL string `env:"FORUM_API_URL" envDefault:"http://localhost:5000"`
	// SessionFile overrides ~/.forum_session.json.
	SessionFile string        `env:"FORUM_SESSION_FILE"`
	Timeout     time.Duration `env:"FORUM_API_TIMEOUT" envDefault:"15s"`
}

// Load parses the CLI environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("locate home directory: %w", err)
		}
		cfg.SessionFile = filepath.Join(home, sessionFileName)
	}
	return cfg, nil
}

// Client returns an unauthenticated API client.
func (c Config) Client() *client.Client {
	return client.New(c.APIURL, &http.Client{Timeout: c.Timeout})
}

// Store returns the session file store.
func (c Config) Store() client.FileStore {
	return client.FileStore{Path: c.SessionFile}
}

// Authed returns a client carrying the stored session's token.
func (c Config) Authed() (*client.Client, error) {
	s, ok, err := c.Store().Load()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return c.Client().WithToken(s.Token), nil
}

// CheckAuth clears the stored session when err is a 401 so the next command
// asks for a fresh login.
func (c Config) CheckAuth(err error) error {
	if !client.IsUnauthorized(err) {
		return err
	}
	if clearErr := c.Store().Clear(); clearErr != nil {
		return fmt.Errorf("%w (clearing session: %v)", err, clearErr)
	}
	return fmt.Errorf("session expired, log in again: %w", err)
}
