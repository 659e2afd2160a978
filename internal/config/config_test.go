package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "DB_DRIVER", "DB_HOST", "DB_NAME", "REDIS_HOST", "SESSION_SECRET",
		"MEDIA_ROOT", "LOG_LEVEL", "LOG_OUTPUT", "GIN_MODE", "READ_TIMEOUT", "WRITE_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.False(t, cfg.UseRedisSessions())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "helpdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_driver: postgres
db_host: db.internal
redis_host: cache.internal
media_root: /srv/media
read_timeout: 5s
logging:
  level: debug
  output: file
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_HOST", "override.internal")
	t.Setenv("WRITE_TIMEOUT", "45")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "override.internal", cfg.DBHost)
	assert.Equal(t, "/srv/media", cfg.MediaRoot)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 45*time.Second, cfg.WriteTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "file", cfg.Logging.Output)
	assert.True(t, cfg.UseRedisSessions())
	assert.Equal(t, "cache.internal:6379", cfg.RedisAddr())
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	assert.EqualError(t, err, `unsupported db driver "oracle"`)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "garbage")
	assert.Equal(t, time.Minute, getDuration("SOME_TIMEOUT", time.Minute))

	t.Setenv("SOME_TIMEOUT", "250ms")
	assert.Equal(t, 250*time.Millisecond, getDuration("SOME_TIMEOUT", time.Minute))
}
