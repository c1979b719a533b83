// Package strip removes metadata from one inspected file at a time, taking
// care of backups and of files whose extension disagrees with their content.
package strip

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"exifstrip/internal/fileutil"
	"exifstrip/internal/inspect"
	"exifstrip/internal/logging"
	"exifstrip/internal/runctx"
	"exifstrip/internal/verify"
)

// Tool performs the in-place strip.
type Tool interface {
	StripKeepingOrientation(ctx context.Context, path string) error
}

// Options controls a Stripper.
type Options struct {
	Backup bool
	// Suffix is inserted between stem and extension of backup names.
	Suffix string
	// TempDir receives working copies of mismatched files. Empty means
	// os.TempDir().
	TempDir string
	// Verifier, when set, checks results for lost orientation and leftover tags.
	Verifier *verify.Verifier
}

// Outcome describes what happened to one file.
type Outcome struct {
	Path         string
	OriginalSize int64
	NewSize      int64
	BackupPath   string
	UsedTemp     bool
	Warnings     []string
	Err          error
}

// OK reports whether the strip succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Delta is the size change in bytes, new minus original. Negative means the
// file got smaller.
func (o Outcome) Delta() int64 { return o.NewSize - o.OriginalSize }

// Stripper strips files through a Tool.
type Stripper struct {
	tool   Tool
	opts   Options
	logger *slog.Logger
}

// New returns a Stripper.
func New(tool Tool, opts Options, logger *slog.Logger) *Stripper {
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	return &Stripper{tool: tool, opts: opts, logger: logging.NewComponentLogger(logger, "stripper")}
}

// Strip processes file, which must be a valid inspection result. Failures are
// reported through Outcome.Err and never stop the caller's batch.
func (s *Stripper) Strip(ctx context.Context, file inspect.Result) Outcome {
	out := Outcome{Path: file.Path}
	ctx = runctx.WithStage(runctx.WithFile(ctx, file.Name), "strip")
	logger := logging.WithContext(ctx, s.logger)

	size, err := fileutil.Size(file.Path)
	if err != nil {
		out.Err = fmt.Errorf("stat: %w", err)
		return out
	}
	out.OriginalSize = size

	if s.opts.Backup {
		backup, err := fileutil.BackupPath(file.Path, s.opts.Suffix)
		if err == nil {
			err = fileutil.CopyFileVerified(file.Path, backup)
		}
		if err != nil {
			out.Err = fmt.Errorf("backup: %w", err)
			return out
		}
		out.BackupPath = backup
		logger.Info("backup created", logging.String("backup", backup))
	}

	work := file.Path
	if file.Mismatch {
		temp := fileutil.TempPath(s.opts.TempDir, file.Path, file.Format.CanonicalExt())
		defer removeTemp(logger, temp)
		if err := fileutil.CopyFile(file.Path, temp); err != nil {
			out.Err = fmt.Errorf("prepare temp copy: %w", err)
			return out
		}
		work = temp
		out.UsedTemp = true
		logger.Debug("routing through temp copy", logging.String("temp", temp), logging.String("format", file.Format.String()))
	}

	snapshot := s.opts.Verifier.Capture(ctx, work, file.Format)

	if err := s.tool.StripKeepingOrientation(ctx, work); err != nil {
		out.Err = err
		logger.Debug("strip failed", logging.Error(err))
		return out
	}

	if out.UsedTemp {
		if err := fileutil.CopyFile(work, file.Path); err != nil {
			out.Err = fmt.Errorf("copy back: %w", err)
			return out
		}
	}

	newSize, err := fileutil.Size(file.Path)
	if err != nil {
		out.Err = fmt.Errorf("stat: %w", err)
		return out
	}
	out.NewSize = newSize
	out.Warnings = s.opts.Verifier.Check(ctx, file.Path, snapshot)
	for _, warning := range out.Warnings {
		logger.Info("verification warning", logging.String("detail", warning))
	}
	logger.Debug("stripped", logging.Int64("delta", out.Delta()))
	return out
}

func removeTemp(logger *slog.Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Debug("temp cleanup failed", logging.String("temp", path), logging.Error(err))
	}
}
