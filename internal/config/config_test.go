package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 2, cfg.PDF.PoolSize)
	assert.Equal(t, 30*time.Second, cfg.PDF.Timeout)
	assert.True(t, cfg.PDF.Breaker.Enabled)
	assert.Equal(t, uint32(3), cfg.PDF.Breaker.MinRequests)
	assert.InDelta(t, 0.6, cfg.PDF.Breaker.FailureThreshold, 1e-9)
	assert.False(t, cfg.DOCX.PlaceholderOnError)
	assert.Equal(t, 3, cfg.Batch.Concurrency)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "cvgen:", cfg.Cache.Prefix)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "cvgen.yaml", `
server:
  port: 9090
pdf:
  pool_size: 4
  timeout: 45s
  breaker:
    enabled: false
docx:
  placeholder_on_error: true
batch:
  concurrency: 6
cache:
  redis_addr: localhost:6379
  ttl: 1h
database_url: postgres://localhost/cv
log:
  json: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 4, cfg.PDF.PoolSize)
	assert.Equal(t, 45*time.Second, cfg.PDF.Timeout)
	assert.False(t, cfg.PDF.Breaker.Enabled)
	assert.Equal(t, uint32(1), cfg.PDF.Breaker.MaxRequests, "unset keys keep their defaults")
	assert.True(t, cfg.DOCX.PlaceholderOnError)
	assert.Equal(t, 6, cfg.Batch.Concurrency)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "postgres://localhost/cv", cfg.DatabaseURL)
	assert.True(t, cfg.Log.JSON)
	assert.False(t, cfg.Log.Debug)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "config.json", `{"pdf": {"pool_size": 1}, "batch": {"concurrency": 2}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.PDF.PoolSize)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "cvgen.yaml", "pdf:\n  pool_size: 4\n")
	t.Setenv("CVGEN_PDF_POOL_SIZE", "7")
	t.Setenv("CVGEN_BATCH_CONCURRENCY", "5")
	t.Setenv("CVGEN_PDF_BREAKER_FAILURE_THRESHOLD", "0.25")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.PDF.PoolSize)
	assert.Equal(t, 5, cfg.Batch.Concurrency)
	assert.InDelta(t, 0.25, cfg.PDF.Breaker.FailureThreshold, 1e-9)
}

func TestLoad_DatabaseURLFromPlainEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/plain")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://db/plain", cfg.DatabaseURL)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/cvgen.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, "cvgen.yaml", "pdf: [unclosed\n")

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := writeFile(t, "cvgen.yaml", "pdf:\n  breaker:\n    failure_threshold: 1.5\n")

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"negative pool size", func(c *Config) { c.PDF.PoolSize = -1 }, "pdf.pool_size"},
		{"negative pdf timeout", func(c *Config) { c.PDF.Timeout = -time.Second }, "pdf.timeout"},
		{"threshold above one", func(c *Config) { c.PDF.Breaker.FailureThreshold = 1.01 }, "failure_threshold"},
		{"threshold below zero", func(c *Config) { c.PDF.Breaker.FailureThreshold = -0.1 }, "failure_threshold"},
		{"threshold bounds inclusive", func(c *Config) { c.PDF.Breaker.FailureThreshold = 1 }, ""},
		{"negative breaker interval", func(c *Config) { c.PDF.Breaker.Interval = -time.Second }, "breaker durations"},
		{"negative concurrency", func(c *Config) { c.Batch.Concurrency = -2 }, "batch.concurrency"},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Minute }, "cache.ttl"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"negative server timeout", func(c *Config) { c.Server.ReadTimeout = -1 }, "server timeouts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
