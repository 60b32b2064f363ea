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
	for _, k := range []string{
		"ZEABIS_ADDR", "ZEABIS_DB", "ZEABIS_JWT_SECRET", "ZEABIS_TOKEN_TTL", "ZEABIS_LOG_LEVEL",
		"ZEABIS_LOG_USE_CASES", "ZEABIS_OVERDUE_SCHEDULE", "ZEABIS_API_URL", "VITE_API_URL", "ZEABIS_TOKEN_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":3001", cfg.Addr)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "0 2 * * *", cfg.OverdueSchedule)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.True(t, cfg.InsecureSecret())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ZEABIS_ADDR", ":8080")
	t.Setenv("ZEABIS_JWT_SECRET", "s3cret")
	t.Setenv("ZEABIS_TOKEN_TTL", "2h")
	t.Setenv("ZEABIS_LOG_LEVEL", "debug")
	t.Setenv("ZEABIS_LOG_USE_CASES", "true")
	t.Setenv("VITE_API_URL", "http://api.example.com/api/")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.LogUseCases)
	assert.False(t, cfg.InsecureSecret())
	assert.Equal(t, "http://api.example.com/api", cfg.APIURL, "VITE_API_URL is the fallback, trailing slash trimmed")

	t.Setenv("ZEABIS_API_URL", "http://primary/api")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://primary/api", cfg.APIURL)
}

func TestFromEnv_RejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("ZEABIS_TOKEN_TTL", "forever")
	_, err := FromEnv()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("ZEABIS_LOG_LEVEL", "loud")
	_, err = FromEnv()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("ZEABIS_LOG_USE_CASES", "sometimes")
	_, err = FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZEABIS_LOG_USE_CASES")
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is present, even when empty.
	require.NoError(t, os.Unsetenv("ZEABIS_OVERDUE_SCHEDULE"))
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ZEABIS_OVERDUE_SCHEDULE=*/5 * * * *\n"), 0o600))
	t.Setenv("ZEABIS_ADDR", ":9000")

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "*/5 * * * *", cfg.OverdueSchedule)
}
