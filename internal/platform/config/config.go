// Package config loads the server settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvKeyJWTSecret is the environment variable holding the HMAC signing key.
const EnvKeyJWTSecret = "JWT_SECRET"

// Config holds the server-level settings. Database and Redis settings are
// loaded by their own platform packages.
type Config struct {
	Port               string
	JWTSecret          string
	JWTExpiration      time.Duration
	CORSAllowedOrigins []string
	LogLevel           slog.Level
	UnitOptionsTTL     time.Duration
	RunMigrations      bool
	MigrationsDir      string
	LoginMaxAttempts   int
	LoginLockout       time.Duration
}

// LoadDotEnv loads .env files into the process environment when present.
// Variables that are already set are not overridden.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug(".env file not loaded, using environment variables", "error", err)
	}
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		JWTSecret:          os.Getenv(EnvKeyJWTSecret),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", "db/migrations"),
	}

	var err error
	if cfg.JWTExpiration, err = getDuration("JWT_EXPIRATION", time.Hour); err != nil {
		return nil, err
	}
	if cfg.UnitOptionsTTL, err = getDuration("UNIT_OPTIONS_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.LoginLockout, err = getDuration("LOGIN_LOCKOUT", time.Minute); err != nil {
		return nil, err
	}
	if cfg.LoginMaxAttempts, err = getInt("LOGIN_MAX_ATTEMPTS", 5); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	cfg.RunMigrations, _ = strconv.ParseBool(os.Getenv("RUN_MIGRATIONS"))

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL: %q", s)
	}
	return l, nil
}

// splitList splits a comma separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
