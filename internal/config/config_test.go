package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CATALOG_HTTP_ADDR", "CATALOG_LOG_LEVEL", "CATALOG_DATASET_FILE", "CATALOG_DATABASE_URL",
		"CATALOG_SHUTDOWN_TIMEOUT", "CATALOG_METRICS_ENABLED", "CATALOG_METRICS_TOKEN",
		"CATALOG_RATE_LIMIT_SEARCH_PER_MINUTE", configFileEnvName,
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("catalog", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.True(t, c.Metrics.Enabled)
	assert.Empty(t, c.Metrics.Token)
	assert.Zero(t, c.RateLimit.SearchPerMinute)
	assert.Equal(t, "seed", c.DatasetSource())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_HTTP_ADDR", ":9090")
	t.Setenv("CATALOG_LOG_LEVEL", "debug")
	t.Setenv("CATALOG_SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("CATALOG_METRICS_ENABLED", "false")
	t.Setenv("CATALOG_RATE_LIMIT_SEARCH_PER_MINUTE", "30")
	t.Setenv("CATALOG_DATASET_FILE", "products.yaml")

	c, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":9090", c.HTTPAddr)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 2*time.Second, c.ShutdownTimeout)
	assert.False(t, c.Metrics.Enabled)
	assert.Equal(t, 30, c.RateLimit.SearchPerMinute)
	assert.Equal(t, "file", c.DatasetSource())
}

func TestLoadFlagsBeatEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_HTTP_ADDR", ":9090")

	c, err := Load(newFlags(t, "--http-addr", ":7070", "--database-url", "postgres://db/catalog"))
	require.NoError(t, err)

	assert.Equal(t, ":7070", c.HTTPAddr)
	assert.Equal(t, "postgres", c.DatasetSource())
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr: ":6060"
metrics:
  token: s3cret
rate_limit:
  search_per_minute: 5
`), 0o600))

	c, err := Load(newFlags(t, "--config", path))
	require.NoError(t, err)

	assert.Equal(t, ":6060", c.HTTPAddr)
	assert.Equal(t, "s3cret", c.Metrics.Token)
	assert.Equal(t, 5, c.RateLimit.SearchPerMinute)
}

func TestLoadConfigFileUnknownKey(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("htp_addr: \":6060\"\n"), 0o600))
	t.Setenv(configFileEnvName, path)

	_, err := Load(nil)
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("CATALOG_LOG_LEVEL=warn\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CATALOG_LOG_LEVEL") })

	c, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestValidate(t *testing.T) {
	base := Config{HTTPAddr: ":8080", LogLevel: "info", ShutdownTimeout: time.Second}
	require.NoError(t, base.Validate())

	bad := base
	bad.LogLevel = "loud"
	assert.ErrorContains(t, bad.Validate(), "log_level")

	bad.ShutdownTimeout = 0
	err := bad.Validate()
	assert.ErrorContains(t, err, "log_level")
	assert.ErrorContains(t, err, "shutdown_timeout", "all problems are reported together")

	bad = base
	bad.ShutdownTimeout = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.RateLimit.SearchPerMinute = -1
	assert.Error(t, bad.Validate())
}
