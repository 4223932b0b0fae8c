package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookwhat/internal/platform/externalapi/spoonacular"
)

// chdirTemp moves the test into an empty directory so no stray .env or
// config.yaml is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.True(t, cfg.DB.RunMigrations)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.Spoonacular.Timeout)
	assert.Equal(t, "https://api.spoonacular.com", cfg.Spoonacular.BaseURL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.SearchTTL)
	assert.False(t, cfg.Scan.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SPOONACULAR_API_KEY", "key-123")
	t.Setenv("SPOONACULAR_TIMEOUT", "3s")
	t.Setenv("AUTH_RATE_PER_MIN", "7")
	t.Setenv("SCAN_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "file:test.db", cfg.DB.URL)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "key-123", cfg.Spoonacular.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Spoonacular.Timeout)
	assert.Equal(t, 7, cfg.RateLimit.AuthPerMinute)
	assert.True(t, cfg.Scan.Enabled)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "cookwhat.yaml")
	content := []byte("http:\n  addr: \":7070\"\nlog:\n  level: debug\ncache:\n  search_ttl: 1m\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, time.Minute, cfg.Cache.SearchTTL)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REDIS_HOST=cache.local\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("REDIS_HOST") })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "cache.local", cfg.Redis.Host)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			Env:         "development",
			Auth:        AuthConfig{SessionTTL: time.Hour},
			Spoonacular: spoonacular.Config{Timeout: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "production without secret", mutate: func(c *Config) { c.Env = "production" }, wantErr: true},
		{name: "production with secret", mutate: func(c *Config) { c.Env = "production"; c.Auth.JWTSecret = "x" }},
		{name: "zero session ttl", mutate: func(c *Config) { c.Auth.SessionTTL = 0 }, wantErr: true},
		{name: "zero upstream timeout", mutate: func(c *Config) { c.Spoonacular.Timeout = 0 }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.DB.Driver = "mysql" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := valid()
			c.DB.Driver = "postgres"
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
