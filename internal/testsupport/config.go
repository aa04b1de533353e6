package testsupport

import (
	"path/filepath"
	"testing"

	"ecoacustica/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Pipeline.TickIntervalMillis = 1
	cfg.Pipeline.StepPercent = 25
	cfg.Geolocation.Enabled = false

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithPipelineTiming overrides the pipeline tick interval and step size.
func WithPipelineTiming(tickMillis int, stepPercent float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Pipeline.TickIntervalMillis = tickMillis
		cfg.Pipeline.StepPercent = stepPercent
	}
}

// WithGeolocation enables the geolocation enrichment on the test config.
func WithGeolocation() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Geolocation.Enabled = true
	}
}
