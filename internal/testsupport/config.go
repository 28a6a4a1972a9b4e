package testsupport

import (
	"path/filepath"
	"testing"

	"phonocover/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The dictionary path points at a written copy of FixtureCMU.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = ""
	cfgVal.Paths.Dictionary = WriteFile(t, filepath.Join(base, "cmudict.dict"), FixtureCMU)
	cfgVal.Paths.PicksFile = filepath.Join(base, "data", "picks.json")
	cfgVal.Paths.RunsDB = filepath.Join(base, "data", "runs.db")

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

// WithSelection overrides the selection limits.
func WithSelection(maxSentences, minCoverage int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Selection.MaxSentences = maxSentences
		b.cfg.Selection.MinCoverage = minCoverage
	}
}

// WithDictionary replaces the dictionary file contents.
func WithDictionary(content string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.Dictionary = WriteFile(b.t, filepath.Join(b.baseDir, "custom.dict"), content)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
