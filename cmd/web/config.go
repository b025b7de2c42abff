package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// webConfig is read from the environment.
type webConfig struct {
	Port   string `env:"WEB_PORT" envDefault:"3000"`
	APIURL string `env:"FORUM_API_URL" envDefault:"http://localhost:5000"`

	// APITimeout bounds each call to the API.
	APITimeout time.Duration `env:"FORUM_API_TIMEOUT" envDefault:"15s"`

	// CookieSecure marks the session cookie Secure; enable behind HTTPS.
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

func loadConfig() (webConfig, error) {
	var cfg webConfig
	if err := env.Parse(&cfg); err != nil {
		return webConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
