package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configYAML = `
port: 6000
cache_location: /tmp/glmapvizcache/
location_details:
  - location_name: local
    location_type: localFile
    path: ./data
  - location_name: minio
    location_type: minio
    minio_bucket: geodata
    location: 127.0.0.1:9000
    minio_access_key: minio
    minio_secret_key: miniostorage
    minio_secure: true
`

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("glmapviz", pflag.ContinueOnError)
	SetupFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 5055, cfg.Port)
	assert.True(t, cfg.UseCache)
	assert.Equal(t, 60, cfg.CachePollingInterval)
	assert.Equal(t, int64(100000000), cfg.CacheMaxBytes)
	assert.Empty(t, cfg.LocationDetails)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glmapviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0644))

	cfg, err := Load(newFlags(t, "--config", path, "--debug"))
	require.NoError(t, err)
	assert.Equal(t, 6000, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/glmapvizcache/", cfg.CacheLocation)
	require.Len(t, cfg.LocationDetails, 2)

	loc, err := cfg.FindLocation("minio")
	require.NoError(t, err)
	assert.Equal(t, "geodata", loc.MinioBucket)
	assert.Equal(t, "miniostorage", loc.MinioSecretKey)
	assert.True(t, loc.MinioSecure)

	_, err = cfg.FindLocation("nowhere")
	assert.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glmapviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0644))
	t.Setenv("GLMAPVIZ_PORT", "7000")
	t.Setenv("GLMAPVIZ_CACHE_MAX_BYTES", "42")

	cfg, err := Load(newFlags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, int64(42), cfg.CacheMaxBytes)

	cfg, err = Load(newFlags(t, "--config", path, "--port", "8000"))
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "glmapviz.log")
	logger, err := NewLogger(&Config{Debug: true, LogFile: logFile})
	require.NoError(t, err)
	logger.Debug("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"level":"DEBUG"`)
}
