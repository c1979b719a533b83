package exiftool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"exifstrip/internal/faults"
	"exifstrip/internal/logging"
)

// LocateOptions describes where to look for ExifTool and how to bound the
// resulting client's invocations.
type LocateOptions struct {
	// Configured is an explicit binary path or name tried before anything else.
	Configured string
	// ExeDir is the directory holding exifstrip; colocated binaries live here.
	ExeDir string
	// GOOS selects the candidate naming scheme. Empty means runtime.GOOS.
	GOOS     string
	Timeouts Timeouts
	Logger   *slog.Logger
}

// Candidates returns the ordered, de-duplicated list of executables Locate
// will probe.
func Candidates(opts LocateOptions) []string {
	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	var list []string
	if configured := strings.TrimSpace(opts.Configured); configured != "" {
		list = append(list, configured)
	}
	if goos == "windows" {
		if opts.ExeDir != "" {
			list = append(list,
				filepath.Join(opts.ExeDir, "exiftool.exe"),
				filepath.Join(opts.ExeDir, "exiftool(-k).exe"),
			)
		}
		list = append(list, "exiftool.exe")
	} else {
		if opts.ExeDir != "" {
			list = append(list, filepath.Join(opts.ExeDir, "exiftool"))
		}
		list = append(list, "exiftool")
	}

	seen := make(map[string]struct{}, len(list))
	out := list[:0]
	for _, candidate := range list {
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
	return out
}

// Locate probes each candidate with -ver and returns a client for the first
// one that exits successfully. It returns an error marked faults.ErrNotFound
// when no candidate answers.
func Locate(ctx context.Context, opts LocateOptions) (*Client, error) {
	logger := logging.NewComponentLogger(opts.Logger, "locator")
	candidates := Candidates(opts)

	for _, candidate := range candidates {
		client := NewClient(candidate, opts.Timeouts, opts.Logger)
		version, err := client.ProbeVersion(ctx, opts.Timeouts.Version)
		if err == nil {
			logger.Info("exiftool located",
				logging.String("binary", candidate),
				logging.String("version", version),
			)
			return client, nil
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		logger.Debug("exiftool candidate rejected",
			logging.String("binary", candidate),
			logging.Error(err),
		)
	}

	return nil, faults.Wrap(faults.ErrNotFound, "locate", "exiftool",
		fmt.Sprintf("tried %s", strings.Join(candidates, ", ")), nil)
}
