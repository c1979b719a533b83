package testsupport

import (
	"path/filepath"
	"testing"

	"exifstrip/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose work directory and log file live in a
// unique temp directory per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WorkDir = filepath.Join(base, "images")
	cfgVal.Logging.File = filepath.Join(base, "logs", "exifstrip.log")
	cfgVal.Logging.Level = "debug"

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

// WithExiftool sets an explicit binary on the test config.
func WithExiftool(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Exiftool.Path = path
	}
}

// WithBackupMode overrides the backup mode.
func WithBackupMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Backup.Mode = mode
	}
}

// WithStubbedExiftool writes a stub exiftool into the test's bin directory and
// points the config at it.
func WithStubbedExiftool(body string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Exiftool.Path = StubExiftool(b.t, filepath.Join(b.baseDir, "bin"), "exiftool", body)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WorkDir)
}
