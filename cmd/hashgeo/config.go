package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/hashgeo"
	"github.com/hupe1980/hashgeo/blobstore"
	"github.com/hupe1980/hashgeo/blobstore/minio"
	"github.com/hupe1980/hashgeo/blobstore/s3"
	"github.com/hupe1980/hashgeo/snapshot"
)

// configEnv names the environment variable consulted when --config is not given.
const configEnv = "HASHGEO_CONFIG"

// Config is the hashgeo CLI configuration.
type Config struct {
	// Log configures diagnostic output on stderr.
	Log LogConfig `yaml:"log"`

	// Store selects where snapshots are saved and loaded.
	Store StoreConfig `yaml:"store"`

	// Snapshot configures the snapshot encoding.
	Snapshot SnapshotConfig `yaml:"snapshot"`

	// Distances configures the distance service.
	Distances DistanceConfig `yaml:"distances"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Format is "text" or "json". Default: text
	Format string `yaml:"format"`

	// Level is a slog level name (debug, info, warn, error). Default: warn
	Level string `yaml:"level"`
}

// StoreConfig configures the blob store backend.
type StoreConfig struct {
	// Backend is one of memory, local, s3, minio. Default: local
	Backend string `yaml:"backend"`

	Local LocalConfig `yaml:"local"`
	S3    S3Config    `yaml:"s3"`
	MinIO MinIOConfig `yaml:"minio"`
}

// LocalConfig configures the local filesystem backend.
type LocalConfig struct {
	// Root is the directory snapshots live in. Default: ./hashgeo-data
	Root string `yaml:"root"`
}

// S3Config configures the S3 backend. Credentials come from the default AWS chain.
type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// MinIOConfig configures the MinIO backend.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
	Secure    bool   `yaml:"secure"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
}

// SnapshotConfig configures snapshot encoding.
type SnapshotConfig struct {
	// Compression is none, lz4 or zstd. Default: zstd
	Compression string `yaml:"compression"`
}

// DistanceConfig configures the distance service.
type DistanceConfig struct {
	// Precompute fills the pairwise distance matrix at load time.
	Precompute bool `yaml:"precompute"`

	// Workers bounds the precompute fan-out. 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Format: "text",
			Level:  "warn",
		},
		Store: StoreConfig{
			Backend: "local",
			Local:   LocalConfig{Root: "./hashgeo-data"},
		},
		Snapshot: SnapshotConfig{
			Compression: "zstd",
		},
	}
}

// LoadConfig loads the configuration file at path, falling back to
// $HASHGEO_CONFIG and then to Default when both are empty.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(configEnv)
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if _, err := c.level(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := snapshot.ParseCompression(c.Snapshot.Compression); err != nil {
		errs = append(errs, fmt.Errorf("snapshot.compression: %w", err))
	}
	if c.Distances.Workers < 0 {
		errs = append(errs, fmt.Errorf("distances.workers must not be negative, got %d", c.Distances.Workers))
	}

	switch c.Store.Backend {
	case "memory":
	case "local":
		if c.Store.Local.Root == "" {
			errs = append(errs, errors.New("store.local.root is required"))
		}
	case "s3":
		if c.Store.S3.Bucket == "" {
			errs = append(errs, errors.New("store.s3.bucket is required"))
		}
	case "minio":
		if c.Store.MinIO.Endpoint == "" {
			errs = append(errs, errors.New("store.minio.endpoint is required"))
		}
		if c.Store.MinIO.Bucket == "" {
			errs = append(errs, errors.New("store.minio.bucket is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.backend must be memory, local, s3 or minio, got %q", c.Store.Backend))
	}

	return errors.Join(errs...)
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.ToUpper(c.Log.Level)))
	return level, err
}

// Logger builds the configured logger writing to w.
func (c *Config) Logger(w io.Writer) (*hashgeo.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return hashgeo.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return hashgeo.NewLogger(slog.NewTextHandler(w, opts)), nil
}

// Compression returns the configured snapshot compression.
func (c *Config) Compression() (snapshot.Compression, error) {
	return snapshot.ParseCompression(c.Snapshot.Compression)
}

// Options returns the hashgeo options implied by the configuration.
func (c *Config) Options(logger *hashgeo.Logger) []hashgeo.Option {
	opts := []hashgeo.Option{hashgeo.WithLogger(logger)}
	if c.Distances.Precompute {
		opts = append(opts, hashgeo.WithPrecomputedDistances(c.Distances.Workers))
	}
	return opts
}

// OpenStore connects to the configured blob store.
func (c *Config) OpenStore(ctx context.Context) (blobstore.BlobStore, error) {
	switch c.Store.Backend {
	case "memory":
		return blobstore.NewMemoryStore(), nil
	case "local":
		return blobstore.NewLocalStore(c.Store.Local.Root), nil
	case "s3":
		opts := []s3.Option{s3.WithPrefix(c.Store.S3.Prefix)}
		if c.Store.S3.Region != "" {
			opts = append(opts, s3.WithRegion(c.Store.S3.Region))
		}
		if c.Store.S3.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(c.Store.S3.Endpoint))
		}
		store, err := s3.New(ctx, c.Store.S3.Bucket, opts...)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "minio":
		m := c.Store.MinIO
		client, err := minio.NewClient(minio.Config{
			Endpoint:  m.Endpoint,
			AccessKey: m.AccessKey,
			SecretKey: m.SecretKey,
			Secure:    m.Secure,
			Region:    m.Region,
		})
		if err != nil {
			return nil, err
		}
		store := minio.NewStore(client, m.Bucket, m.Prefix)
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
}
