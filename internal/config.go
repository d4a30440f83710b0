package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/notetodo/internal/api"
	"github.com/starford/notetodo/internal/auth"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Auth    AuthConfig        `yaml:"auth"`
	Weights WeightsConfig     `yaml:"weights"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Weights.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port            int           `yaml:"port"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.RequestTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.ShutdownTimeout, validation.Min(time.Duration(0))),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds token signing and login throttling settings.
type AuthConfig struct {
	JWTSecret  string          `yaml:"jwt_secret"`
	TokenTTL   time.Duration   `yaml:"token_ttl"`
	Issuer     string          `yaml:"issuer"`
	BcryptCost int             `yaml:"bcrypt_cost"`
	LoginRate  RateLimitConfig `yaml:"login_rate"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.JWTSecret, validation.Required.Error("jwt_secret is required"), validation.Length(16, 0)),
		validation.Field(&c.TokenTTL, validation.Required, validation.Min(time.Minute)),
		validation.Field(&c.BcryptCost, validation.Min(4), validation.Max(31)),
	); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return c.LoginRate.Validate()
}

// Service returns the credential store settings.
func (c *AuthConfig) Service() auth.Config {
	return auth.Config{
		Secret:     c.JWTSecret,
		TTL:        c.TokenTTL,
		Issuer:     c.Issuer,
		BcryptCost: c.BcryptCost,
	}
}

// RateLimitConfig throttles register and login per client IP.
// Requests set to 0 disables throttling.
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
	Burst    int           `yaml:"burst"`
}

// Validate validates the rate limit configuration.
func (c *RateLimitConfig) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Requests, validation.Min(0)),
		validation.Field(&c.Window, validation.When(c.Requests > 0, validation.Required)),
		validation.Field(&c.Burst, validation.Min(0)),
	)
	if err != nil {
		return fmt.Errorf("auth.login_rate: %w", err)
	}
	return nil
}

// API converts the settings for the api package.
func (c *RateLimitConfig) API() api.RateLimitConfig {
	return api.RateLimitConfig{Requests: c.Requests, Window: c.Window, Burst: c.Burst}
}

// WeightsConfig holds weight log settings.
type WeightsConfig struct {
	// Timezone decides which calendar day a measurement belongs to.
	Timezone string `yaml:"timezone"`
}

// Validate validates the weights configuration.
func (c *WeightsConfig) Validate() error {
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("weights.timezone: %w", err)
	}
	return nil
}

// Location resolves Timezone; empty means UTC.
func (c *WeightsConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port:            8080,
				RequestTimeout:  30 * time.Second,
				ShutdownTimeout: 10 * time.Second,
			},
		},
		SQLite: SQLiteConfig{
			Path: "./notetodo.db",
		},
		Auth: AuthConfig{
			TokenTTL: 30 * 24 * time.Hour,
			Issuer:   "notetodo",
			LoginRate: RateLimitConfig{
				Requests: 5,
				Window:   time.Minute,
				Burst:    5,
			},
		},
		Weights: WeightsConfig{
			Timezone: "UTC",
		},
	}
}
