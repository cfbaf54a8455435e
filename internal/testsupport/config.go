package testsupport

import (
	"path/filepath"
	"testing"

	"rpt/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ReportsDir = filepath.Join(base, "reports")
	cfgVal.Paths.ContentDir = filepath.Join(base, "content")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Budget.Input = filepath.Join(base, "budget.csv")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithFormat sets the report output format.
func WithFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Report.Format = config.NormalizeFormat(format)
	}
}

// WithoutHistory disables the SQLite report history.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// WithContent writes content override files (name -> body) into the content directory.
func WithContent(files map[string]string) ConfigOption {
	return func(b *configBuilder) {
		for name, body := range files {
			WriteText(b.t, filepath.Join(b.cfg.Paths.ContentDir, name), body)
		}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.ReportsDir)
}
