// Package config loads runtime configuration from defaults, an optional
// config file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"cookwhat/internal/platform/db"
	"cookwhat/internal/platform/externalapi/spoonacular"
	"cookwhat/internal/platform/logger"
	"cookwhat/internal/platform/redis"
)

// Config is the root configuration of the server process.
type Config struct {
	Env         string             `mapstructure:"env"`
	HTTP        HTTPConfig         `mapstructure:"http"`
	Log         logger.Config      `mapstructure:"log"`
	DB          db.Config          `mapstructure:"db"`
	Redis       redis.Config       `mapstructure:"redis"`
	Auth        AuthConfig         `mapstructure:"auth"`
	Spoonacular spoonacular.Config `mapstructure:"spoonacular"`
	Cache       CacheConfig        `mapstructure:"cache"`
	RateLimit   RateLimitConfig    `mapstructure:"rate_limit"`
	Scan        ScanConfig         `mapstructure:"scan"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type AuthConfig struct {
	JWTSecret          string        `mapstructure:"jwt_secret"`
	SessionTTL         time.Duration `mapstructure:"session_ttl"`
	MaxSessionsPerUser int           `mapstructure:"max_sessions_per_user"`
}

type CacheConfig struct {
	SearchTTL time.Duration `mapstructure:"search_ttl"`
}

// RateLimitConfig throttles the credential endpoints per client IP.
type RateLimitConfig struct {
	AuthPerMinute int `mapstructure:"auth_per_minute"`
	AuthBurst     int `mapstructure:"auth_burst"`
}

type ScanConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// envBindings maps configuration keys to the environment variables that override them.
var envBindings = map[string]string{
	"env":                        "APP_ENV",
	"http.addr":                  "HTTP_ADDR",
	"http.read_timeout":          "HTTP_READ_TIMEOUT",
	"http.write_timeout":         "HTTP_WRITE_TIMEOUT",
	"http.shutdown_timeout":      "HTTP_SHUTDOWN_TIMEOUT",
	"log.level":                  "LOG_LEVEL",
	"log.format":                 "LOG_FORMAT",
	"log.development":            "LOG_DEVELOPMENT",
	"db.driver":                  "DB_DRIVER",
	"db.url":                     "DATABASE_URL",
	"db.host":                    "DB_HOST",
	"db.port":                    "DB_PORT",
	"db.user":                    "DB_USER",
	"db.password":                "DB_PASSWORD",
	"db.name":                    "DB_NAME",
	"db.sslmode":                 "DB_SSLMODE",
	"db.run_migrations":          "RUN_MIGRATIONS",
	"db.connect_timeout":         "DB_CONNECT_TIMEOUT",
	"redis.host":                 "REDIS_HOST",
	"redis.port":                 "REDIS_PORT",
	"redis.password":             "REDIS_PASSWORD",
	"redis.db":                   "REDIS_DB",
	"auth.jwt_secret":            "JWT_SECRET",
	"auth.session_ttl":           "SESSION_TTL",
	"auth.max_sessions_per_user": "MAX_SESSIONS_PER_USER",
	"spoonacular.api_key":        "SPOONACULAR_API_KEY",
	"spoonacular.base_url":       "SPOONACULAR_BASE_URL",
	"spoonacular.timeout":        "SPOONACULAR_TIMEOUT",
	"cache.search_ttl":           "SEARCH_CACHE_TTL",
	"rate_limit.auth_per_minute": "AUTH_RATE_PER_MIN",
	"rate_limit.auth_burst":      "AUTH_RATE_BURST",
	"scan.enabled":               "SCAN_ENABLED",
	"scan.model":                 "SCAN_MODEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.development", false)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "cookwhat")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.run_migrations", true)
	v.SetDefault("db.connect_timeout", 60*time.Second)

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.session_ttl", 24*time.Hour)
	v.SetDefault("auth.max_sessions_per_user", 5)

	v.SetDefault("spoonacular.api_key", "")
	v.SetDefault("spoonacular.base_url", spoonacular.DefaultBaseURL)
	v.SetDefault("spoonacular.timeout", 10*time.Second)

	v.SetDefault("cache.search_ttl", 10*time.Minute)

	v.SetDefault("rate_limit.auth_per_minute", 20)
	v.SetDefault("rate_limit.auth_burst", 5)

	v.SetDefault("scan.enabled", false)
	v.SetDefault("scan.model", "gemini-2.5-flash")
}

// Load reads configuration. Values from a .env file are exported to the
// environment first; configFile may be empty, in which case ./config.yaml is
// used when present.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether the process runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.Spoonacular.Timeout <= 0 {
		return errors.New("SPOONACULAR_TIMEOUT must be positive")
	}
	switch c.DB.Driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	return nil
}
