// Package orchestrator runs one strip pass over a directory: locate the tool,
// discover and inspect files, confirm with the user, strip and summarize.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"exifstrip/internal/config"
	"exifstrip/internal/discover"
	"exifstrip/internal/faults"
	"exifstrip/internal/inspect"
	"exifstrip/internal/logging"
	"exifstrip/internal/preflight"
	"exifstrip/internal/prompt"
	"exifstrip/internal/report"
	"exifstrip/internal/runctx"
	"exifstrip/internal/strip"
	"exifstrip/internal/verify"
)

// MetadataTool is everything a run needs from the metadata editor.
type MetadataTool interface {
	Version() string
	DetectFormat(ctx context.Context, path string) (string, error)
	HasMetadata(ctx context.Context, path string) (bool, error)
	StripKeepingOrientation(ctx context.Context, path string) error
}

// Locator produces the tool for a run. Tools that also implement io.Closer
// are closed when the run ends.
type Locator func(ctx context.Context) (MetadataTool, error)

// Options configures a run.
type Options struct {
	// Dir is the directory whose images are processed.
	Dir string
	// ExeDir is shown in the installation guide.
	ExeDir string
	GOOS   string
	// Version is the exifstrip version shown in the banner.
	Version string

	AssumeYes    bool
	BackupMode   string
	BackupSuffix string
	DryRun       bool
	Verify       bool
	// TempDir holds mismatch working copies and the run lock.
	TempDir string
}

// Result is the tally of a completed run.
type Result struct {
	RunID     string
	Processed int
	Failed    int
	SizeDelta int64
	Outcomes  []strip.Outcome
}

// Runner wires the run's collaborators together.
type Runner struct {
	locate   Locator
	reporter *report.Reporter
	prompter *prompt.Prompter
	logger   *slog.Logger
	opts     Options
}

// New constructs a Runner.
func New(locate Locator, reporter *report.Reporter, prompter *prompt.Prompter, logger *slog.Logger, opts Options) *Runner {
	if opts.BackupMode == "" {
		opts.BackupMode = config.BackupAsk
	}
	if opts.BackupSuffix == "" {
		opts.BackupSuffix = "_backup"
	}
	return &Runner{
		locate:   locate,
		reporter: reporter,
		prompter: prompter,
		logger:   logging.NewComponentLogger(logger, "orchestrator"),
		opts:     opts,
	}
}

// Run performs one pass. Early exits the user should simply be told about
// (nothing found, nothing to do, declined) return a nil error. Errors marked
// with faults.Fatal have already been reported to the console; a context
// error means the run was interrupted and no summary was printed.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	result := Result{RunID: uuid.NewString()}
	ctx = runctx.WithRunID(ctx, result.RunID)
	logger := logging.WithContext(ctx, r.logger)
	dir := r.opts.Dir

	r.reporter.Banner(r.opts.Version)

	tool, err := r.locate(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		logger.Warn("exiftool not found", logging.Error(err))
		r.reporter.InstallGuide(r.opts.ExeDir, r.opts.GOOS)
		return result, err
	}
	if closer, ok := tool.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Debug("close metadata tool", logging.Error(err))
			}
		}()
	}
	r.reporter.ToolFound(tool.Version())
	logger.Info("run started", logging.String("dir", dir), logging.String("exiftool_version", tool.Version()))

	if err := r.checkDirectory(dir); err != nil {
		r.reporter.DirectoryError(err)
		return result, err
	}

	lock, err := acquireLock(LockPath(r.opts.TempDir, dir))
	if err != nil {
		r.reporter.LockHeld(dir)
		return result, err
	}
	defer func() {
		if err := releaseLock(lock); err != nil {
			logger.Debug("release run lock", logging.Error(err))
		}
	}()

	names, err := discover.Images(dir)
	if err != nil {
		r.reporter.DirectoryError(err)
		return result, err
	}
	if len(names) == 0 {
		r.reporter.NoImages(dir)
		return result, nil
	}

	r.reporter.Found(len(names))
	inspector := inspect.New(tool, r.logger)
	results := make([]inspect.Result, 0, len(names))
	for i, name := range names {
		res, err := inspector.Inspect(ctx, filepath.Join(dir, name))
		if err != nil {
			return result, err
		}
		r.reporter.Inspected(i+1, len(names), res)
		results = append(results, res)
	}

	summary := inspect.Summarize(results)
	logger.Info("inspection complete",
		logging.Int("candidates", len(names)),
		logging.Int("valid", len(summary.Valid)),
		logging.Int("with_exif", len(summary.WithExif)),
		logging.Int("mismatched", len(summary.Mismatched)),
	)
	if len(summary.Valid) == 0 {
		r.reporter.NoValidFiles()
		return result, nil
	}
	r.reporter.Mismatches(summary.Mismatched)
	if len(summary.WithExif) == 0 {
		r.reporter.NoMetadata(len(summary.Valid))
		return result, nil
	}

	if r.opts.DryRun {
		r.reporter.Pending(summary.WithExif)
		r.reporter.InspectionTable(results)
		r.reporter.DryRun()
		return result, nil
	}

	r.reporter.Pending(summary.WithExif)
	if !r.opts.AssumeYes {
		proceed, err := r.prompter.Confirm(ctx, "Process these files?")
		if err != nil {
			return result, err
		}
		if !proceed {
			r.reporter.Cancelled()
			return result, nil
		}
	}
	backup, err := r.chooseBackup(ctx)
	if err != nil {
		return result, err
	}

	var verifier *verify.Verifier
	if r.opts.Verify {
		reader, _ := tool.(verify.OrientationReader)
		verifier = verify.New(r.logger, reader)
	}
	stripper := strip.New(tool, strip.Options{
		Backup:   backup,
		Suffix:   r.opts.BackupSuffix,
		TempDir:  r.opts.TempDir,
		Verifier: verifier,
	}, r.logger)

	r.reporter.Start()
	for i, file := range summary.WithExif {
		r.reporter.FileHeader(i+1, len(summary.WithExif), file.Name)
		out := stripper.Strip(ctx, file)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		r.reporter.Outcome(out)
		result.Outcomes = append(result.Outcomes, out)
		if out.OK() {
			result.Processed++
			result.SizeDelta += out.Delta()
		} else {
			result.Failed++
		}
	}

	r.reporter.ResultsTable(result.Outcomes)
	r.reporter.Summary(result.Processed, result.Failed, result.SizeDelta)
	logger.Info("run complete",
		logging.Int("processed", result.Processed),
		logging.Int("failed", result.Failed),
		logging.Int64("size_delta", result.SizeDelta),
	)
	return result, nil
}

// checkDirectory requires write access unless nothing will be modified.
func (r *Runner) checkDirectory(dir string) error {
	check := preflight.CheckDirectoryAccess
	if r.opts.DryRun {
		check = preflight.CheckDirectoryReadable
	}
	res := check("Work directory", dir)
	if res.Passed {
		return nil
	}
	return faults.Wrap(faults.ErrPrecondition, "discover", "work directory", res.Detail, nil)
}

func (r *Runner) chooseBackup(ctx context.Context) (bool, error) {
	switch r.opts.BackupMode {
	case config.BackupAlways:
		return true, nil
	case config.BackupNever:
		return false, nil
	case config.BackupAsk:
		return r.prompter.Confirm(ctx, "Create backup files?")
	default:
		return false, faults.Wrap(faults.ErrConfiguration, "backup", "mode", fmt.Sprintf("unknown mode %q", r.opts.BackupMode), nil)
	}
}

// IsInterrupt reports whether err ended a run because its context was
// cancelled.
func IsInterrupt(err error) bool {
	return errors.Is(err, context.Canceled)
}
