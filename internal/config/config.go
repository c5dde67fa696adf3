package config

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/hkdf"
)

const minSecretLen = 32

type Config struct {
	ServerPort string `env:"SERVER_PORT, default=8080"`
	GinMode    string `env:"GIN_MODE, default=release"`

	Session SessionConfig
	Backend BackendConfig
	Log     LogConfig
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET, required"`
	Secure bool          `env:"SESSION_SECURE, default=false"`
	MaxAge time.Duration `env:"SESSION_MAX_AGE, default=168h"`
}

type BackendConfig struct {
	// URL is the API root, e.g. http://localhost:8000/api.
	URL string `env:"BACKEND_URL, required"`
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=0s"`
	// ImageBaseURL prefixes stored media and asset image paths.
	ImageBaseURL string `env:"IMAGE_BASE_URL"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL, default=info"`
	Pretty bool   `env:"LOG_PRETTY, default=false"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(envconfig.OsLookuper())
}

// LoadFrom decodes the configuration from an arbitrary lookuper.
func LoadFrom(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Session.Secret) < minSecretLen {
		return fmt.Errorf("config: SESSION_SECRET must be at least %d characters", minSecretLen)
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("config: BACKEND_URL must be an absolute URL")
	}
	if c.Backend.Timeout < 0 {
		return errors.New("config: BACKEND_TIMEOUT must not be negative")
	}
	return nil
}

// SessionKeys derives the cookie authentication (64 bytes) and AES-256
// encryption (32 bytes) keys from the configured secret.
func (c *Config) SessionKeys() (authKey, encKey []byte, err error) {
	r := hkdf.New(sha256.New, []byte(c.Session.Secret), nil, []byte("tracer-web session v1"))
	authKey = make([]byte, 64)
	encKey = make([]byte, 32)
	if _, err := io.ReadFull(r, authKey); err != nil {
		return nil, nil, fmt.Errorf("config: derive session auth key: %w", err)
	}
	if _, err := io.ReadFull(r, encKey); err != nil {
		return nil, nil, fmt.Errorf("config: derive session encryption key: %w", err)
	}
	return authKey, encKey, nil
}
