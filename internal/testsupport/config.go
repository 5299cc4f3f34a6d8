// Package testsupport provides shared helpers for building test configs and
// image fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"shardpack/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// Data and output directories are created; the manifest is enabled.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "images")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Build.MinFreeMiB = 0

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Normalize(); err != nil {
		t.Fatalf("normalize test config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	mkdirAll(t, cfg.Paths.DataDir)
	return &cfg
}

// WithBuild mutates the build section.
func WithBuild(shards, threads int, validationSize float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Build.NumShards = shards
		cfg.Build.NumThreads = threads
		cfg.Build.ValidationSize = validationSize
	}
}

// WithManifestDisabled turns the manifest store off.
func WithManifestDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Manifest.Enabled = false
	}
}
