// Package config loads the gateway configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
)

// Config represents the gateway configuration.
type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Session  SessionConfig
	Client   ClientConfig
	LogLevel slog.Level
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Session.Validate(); err != nil {
		return err
	}
	return c.Client.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int
	// PublicURL is the externally reachable base URL, used to build the
	// OAuth redirect URI. No trailing slash.
	PublicURL string
}

// Address returns the HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.PublicURL, validation.Required, is.URL),
	)
}

// DatabaseConfig holds the Postgres connection string.
type DatabaseConfig struct {
	URL string
}

// Validate validates the database configuration.
func (c *DatabaseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required),
	)
}

// SessionConfig holds the browser session cookie configuration.
type SessionConfig struct {
	// Secret signs the session cookie. Must be long enough to resist
	// brute force.
	Secret string
}

// Validate validates the session configuration.
func (c *SessionConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Secret, validation.Required, validation.Length(32, 0)),
	)
}

// ClientConfig holds settings for outbound calls to instances.
type ClientConfig struct {
	// UserAgent is sent on every request to an instance.
	UserAgent string
	// DefaultInstance seeds the guest account on first start.
	DefaultInstance string
}

// Validate validates the client configuration.
func (c *ClientConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.UserAgent, validation.Required),
		validation.Field(&c.DefaultInstance, validation.Required, is.URL),
	)
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	// Missing .env is fine; deployment sets the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		HTTP: HTTPConfig{
			Port:      envInt("PORT", 8080),
			PublicURL: strings.TrimRight(envString("PUBLIC_URL", "http://localhost:8080"), "/"),
		},
		Database: DatabaseConfig{
			URL: envString("DATABASE_URL", ""),
		},
		Session: SessionConfig{
			Secret: envString("SESSION_SECRET", ""),
		},
		Client: ClientConfig{
			UserAgent:       envString("USER_AGENT", "alcove"),
			DefaultInstance: envString("DEFAULT_INSTANCE", "https://lemmy.world"),
		},
		LogLevel: envLogLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envLogLevel(key string, fallback slog.Level) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv(key))); err != nil {
		return fallback
	}
	return level
}
