package preflight

import (
	"context"
	"path/filepath"
	"strings"

	"exifstrip/internal/config"
	"exifstrip/internal/exiftool"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Optional marks checks whose failure a run recovers from on its own,
	// such as a log directory the logger creates when it starts.
	Optional bool
}

// RunAll executes all applicable preflight checks for the given config.
// exeDir is the program directory used for colocated tool lookup and as the
// default work directory.
func RunAll(ctx context.Context, cfg *config.Config, exeDir string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Work directory", cfg.ResolveWorkDir(exeDir)))

	results = append(results, CheckExiftool(ctx, exiftool.LocateOptions{
		Configured: cfg.Exiftool.Path,
		ExeDir:     exeDir,
		Timeouts:   exiftool.Timeouts{Version: cfg.VersionTimeout()},
	}))

	// Log directory (when a log file is configured)
	if file := strings.TrimSpace(cfg.Logging.File); file != "" {
		res := CheckDirectoryAccess("Log directory", filepath.Dir(file))
		res.Optional = true
		results = append(results, res)
	}

	return results
}
