// Package testsupport provides helpers shared by package tests: temp-dir
// backed configurations and on-disk media tree builders.
package testsupport

import (
	"path/filepath"
	"testing"

	"pintidy/internal/config"
)

// ConfigOption customizes the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per
// test: a library root with one content folder per configured type, plus
// database, backup, and log directories underneath it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDir = base
	cfg.Paths.DatabaseDir = filepath.Join(base, "Databases")
	cfg.Paths.BackupDir = filepath.Join(base, "backup")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	for i := range cfg.ContentTypes {
		cfg.ContentTypes[i].Folder = filepath.Join(base, cfg.ContentTypes[i].Folder)
	}
	cfg.Fix.TrainerWheels = false

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithTrainerWheels switches the fix pass to dry-run mode.
func WithTrainerWheels() ConfigOption {
	return func(c *config.Config) { c.Fix.TrainerWheels = true }
}

// WithFixHitTypes overrides the hit types the fix pass may act on.
func WithFixHitTypes(names ...string) ConfigOption {
	return func(c *config.Config) { c.Fix.HitTypes = names }
}

// WithContentTypes replaces the configured content types.
func WithContentTypes(types ...config.ContentType) ConfigOption {
	return func(c *config.Config) { c.ContentTypes = types }
}
