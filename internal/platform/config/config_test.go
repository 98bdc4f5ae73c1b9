package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", EnvKeyJWTSecret, "JWT_EXPIRATION", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
		"UNIT_OPTIONS_CACHE_TTL", "RUN_MIGRATIONS", "MIGRATIONS_DIR", "LOGIN_MAX_ATTEMPTS", "LOGIN_LOCKOUT",
	} {
		t.Setenv(k, "")
	}
}

// TestLoad_Defaults は環境変数が未設定の場合の既定値を検証します。
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.JWTExpiration)
	assert.Nil(t, cfg.CORSAllowedOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 10*time.Minute, cfg.UnitOptionsTTL)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, "db/migrations", cfg.MigrationsDir)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
	assert.Equal(t, time.Minute, cfg.LoginLockout)
}

// TestLoad_FromEnv は環境変数の値が反映されることを検証します。
func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv(EnvKeyJWTSecret, "s3cret")
	t.Setenv("JWT_EXPIRATION", "8h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://simpeg.bengkulu.go.id, http://localhost:5173,,")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UNIT_OPTIONS_CACHE_TTL", "30s")
	t.Setenv("RUN_MIGRATIONS", "true")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("LOGIN_LOCKOUT", "2m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 8*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, []string{"https://simpeg.bengkulu.go.id", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.UnitOptionsTTL)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, 3, cfg.LoginMaxAttempts)
	assert.Equal(t, 2*time.Minute, cfg.LoginLockout)
}

// TestLoad_InvalidValues は不正な値でエラーが返されることを検証します。
func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"JWT_EXPIRATION", "forever"},
		{"JWT_EXPIRATION", "-1h"},
		{"UNIT_OPTIONS_CACHE_TTL", "10"},
		{"LOG_LEVEL", "verbose"},
		{"LOGIN_MAX_ATTEMPTS", "0"},
		{"LOGIN_LOCKOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.ErrorContains(t, err, tt.key)
		})
	}
}

// TestLoadDotEnv は.envファイルの値が未設定の変数にのみ反映されることを検証します。
func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SIMPEG_TEST_FROM_FILE=file\nSIMPEG_TEST_PRESET=file\n"), 0o600))

	t.Setenv("SIMPEG_TEST_PRESET", "env")
	t.Setenv("SIMPEG_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("SIMPEG_TEST_FROM_FILE"))

	LoadDotEnv(path)

	assert.Equal(t, "file", os.Getenv("SIMPEG_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("SIMPEG_TEST_PRESET"))
}

// TestLoadDotEnv_MissingFile は.envファイルがなくてもパニックしないことを検証します。
func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NotPanics(t, func() { LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")) })
}
