package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pkgconfig "github.com/starford/notetodo/pkg/config"
)

func validConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Auth.JWTSecret = "0123456789abcdef0123"
	return cfg
}

func TestDefaultConfig_NeedsSecret(t *testing.T) {
	err := NewDefaultConfig().Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "jwt_secret")

	require.NoError(t, validConfig().Validate())
}

func TestAuthConfig_ShortSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"
	require.Error(t, cfg.Validate())
}

func TestAuthConfig_BcryptCostBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.BcryptCost = 40
	require.Error(t, cfg.Validate())

	cfg.Auth.BcryptCost = 0
	require.NoError(t, cfg.Validate())
}

func TestRateLimitConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.LoginRate = RateLimitConfig{Requests: 5}
	err := cfg.Validate()
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "login_rate"))

	cfg.Auth.LoginRate = RateLimitConfig{}
	require.NoError(t, cfg.Validate())
}

func TestWeightsConfig_Timezone(t *testing.T) {
	cfg := validConfig()
	cfg.Weights.Timezone = "Mars/Olympus_Mons"
	require.Error(t, cfg.Validate())

	cfg.Weights.Timezone = ""
	loc, err := cfg.Weights.Location()
	require.NoError(t, err)
	require.Equal(t, time.UTC, loc)
}

func TestHTTPConfig_Port(t *testing.T) {
	cfg := validConfig()
	cfg.App.HTTP.Port = 70000
	require.Error(t, cfg.Validate())
	require.Equal(t, ":8080", NewDefaultConfig().App.HTTP.Address())
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("NOTETODO_TEST_SECRET", "a-very-long-test-secret")
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `app:
  log_level: debug
  http:
    port: 9090
sqlite:
  path: /tmp/notetodo.db
auth:
  jwt_secret: ${NOTETODO_TEST_SECRET}
  token_ttl: 24h
  login_rate:
    requests: 10
    window: 1m
weights:
  timezone: Asia/Shanghai
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		if strings.Contains(err.Error(), "unknown time zone") {
			t.Skip("tzdata unavailable")
		}
		t.Fatal(err)
	}
	require.Equal(t, 9090, cfg.App.HTTP.Port)
	require.Equal(t, "a-very-long-test-secret", cfg.Auth.JWTSecret)
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, 10, cfg.Auth.LoginRate.Requests)
	require.Equal(t, "notetodo", cfg.Auth.Issuer)
	require.Equal(t, slog.LevelDebug, cfg.App.LogLevel)
}
