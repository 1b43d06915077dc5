package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: salary-predictor\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, ":8000", cfg.Server.Addr())
	assert.Equal(t, "models", cfg.Artifacts.Path)
	assert.True(t, cfg.Pipeline.Clamp.Enabled)
	assert.Equal(t, 20000.0, cfg.Pipeline.Clamp.Min)
	assert.Equal(t, 150000.0, cfg.Pipeline.Clamp.Max)
	assert.False(t, cfg.Pipeline.StrictCategories)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "salary-predictor", cfg.Metrics.ServiceName)
}

func TestLoadFromFile_Values(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9100
  health_fail_status: true
artifacts:
  path: /srv/models
pipeline:
  clamp:
    enabled: true
    min: 25000
    max: 140000
  strict_categories: true
cache:
  enabled: true
  ttl: 60000
database:
  redis:
    address: redis:6379
logging:
  level: debug
  format: console
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.True(t, cfg.Server.HealthFailStatus)
	assert.Equal(t, "/srv/models", cfg.Artifacts.Path)
	assert.Equal(t, 25000.0, cfg.Pipeline.Clamp.Min)
	assert.Equal(t, 140000.0, cfg.Pipeline.Clamp.Max)
	assert.True(t, cfg.Pipeline.StrictCategories)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Minute, GetDuration(cfg.Cache.TTL))
	assert.Equal(t, "redis:6379", cfg.Database.Redis.Address)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("ARTIFACTS_PATH", "/opt/artifacts")
	t.Setenv("PIPELINE_CLAMP_MAX", "200000")
	t.Setenv("REDIS_PASSWORD", "s3cret")

	path := writeConfig(t, "app:\n  name: salary-predictor\n")
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/artifacts", cfg.Artifacts.Path)
	assert.Equal(t, 200000.0, cfg.Pipeline.Clamp.Max)
	assert.Equal(t, "s3cret", cfg.Database.Redis.Password)
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("SALARY_MODELS", "/data/models")

	path := writeConfig(t, "artifacts:\n  path: ${SALARY_MODELS}\n")
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/models", cfg.Artifacts.Path)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "inverted clamp",
			body: "pipeline:\n  clamp:\n    min: 150000\n    max: 20000\n",
			want: "pipeline.clamp.min",
		},
		{
			name: "cache without ttl",
			body: "cache:\n  enabled: true\n  ttl: -1\n",
			want: "cache.ttl",
		},
		{
			name: "bad log format",
			body: "logging:\n  format: xml\n",
			want: "logging.format",
		},
		{
			name: "bad port",
			body: "server:\n  port: 70000\n",
			want: "server.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFile_DisabledClampSkipsRangeCheck(t *testing.T) {
	path := writeConfig(t, "pipeline:\n  clamp:\n    enabled: false\n    min: 10\n    max: 1\n")
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.Pipeline.Clamp.Enabled)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
