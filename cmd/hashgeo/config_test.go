package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/hashgeo"
	"github.com/hupe1980/hashgeo/blobstore"
	"github.com/hupe1980/hashgeo/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hashgeo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv(configEnv, "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	c, err := cfg.Compression()
	require.NoError(t, err)
	assert.Equal(t, snapshot.CompressionZSTD, c)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
log:
  format: json
  level: debug
store:
  backend: s3
  s3:
    bucket: detector-geometry
    prefix: snapshots/
    region: eu-central-1
snapshot:
  compression: lz4
distances:
  precompute: true
  workers: 4
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "s3", cfg.Store.Backend)
	assert.Equal(t, "detector-geometry", cfg.Store.S3.Bucket)
	assert.Equal(t, "snapshots/", cfg.Store.S3.Prefix)
	assert.Equal(t, "./hashgeo-data", cfg.Store.Local.Root, "unset fields keep defaults")
	assert.True(t, cfg.Distances.Precompute)
	assert.Equal(t, 4, cfg.Distances.Workers)
	assert.Len(t, cfg.Options(hashgeo.NoopLogger()), 2)
}

func TestLoadConfigFromEnv(t *testing.T) {
	path := writeConfig(t, "store:\n  backend: memory\n")
	t.Setenv(configEnv, path)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Backend)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "log: [unterminated"))
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"LogFormat", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"LogLevel", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"Compression", func(c *Config) { c.Snapshot.Compression = "brotli" }, "snapshot.compression"},
		{"Workers", func(c *Config) { c.Distances.Workers = -1 }, "distances.workers"},
		{"Backend", func(c *Config) { c.Store.Backend = "ftp" }, "store.backend"},
		{"LocalRoot", func(c *Config) { c.Store.Local.Root = "" }, "store.local.root"},
		{"S3Bucket", func(c *Config) { c.Store.Backend = "s3" }, "store.s3.bucket"},
		{"MinIOEndpoint", func(c *Config) { c.Store.Backend = "minio"; c.Store.MinIO.Bucket = "b" }, "store.minio.endpoint"},
		{"MinIOBucket", func(c *Config) { c.Store.Backend = "minio"; c.Store.MinIO.Endpoint = "localhost:9000" }, "store.minio.bucket"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestConfigLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "info"

	var buf bytes.Buffer
	logger, err := cfg.Logger(&buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")

	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	cfg.Store.Backend = "memory"
	store, err := cfg.OpenStore(ctx)
	require.NoError(t, err)
	assert.IsType(t, &blobstore.MemoryStore{}, store)

	cfg.Store.Backend = "local"
	cfg.Store.Local.Root = t.TempDir()
	store, err = cfg.OpenStore(ctx)
	require.NoError(t, err)
	local, ok := store.(*blobstore.LocalStore)
	require.True(t, ok)
	assert.Equal(t, cfg.Store.Local.Root, local.Root())

	cfg.Store.Backend = "ftp"
	_, err = cfg.OpenStore(ctx)
	assert.Error(t, err)
}
