// Package inspect classifies candidate files by asking the metadata tool for
// their true format and whether they carry EXIF data.
package inspect

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"exifstrip/internal/faults"
	"exifstrip/internal/imagefmt"
	"exifstrip/internal/logging"
	"exifstrip/internal/runctx"
)

// Prober is the read-only subset of the metadata tool the inspector needs.
type Prober interface {
	DetectFormat(ctx context.Context, path string) (string, error)
	HasMetadata(ctx context.Context, path string) (bool, error)
}

// Result is the outcome of inspecting one file. When Err is set the file is
// invalid and the remaining fields other than Path and Name are meaningless.
type Result struct {
	Path        string
	Name        string
	Format      imagefmt.Format
	HasMetadata bool
	Mismatch    bool
	Err         error
}

// Valid reports whether the file was recognised as a supported image.
func (r Result) Valid() bool { return r.Err == nil }

// Inspector runs the probes for each file.
type Inspector struct {
	prober Prober
	logger *slog.Logger
}

// New constructs an inspector backed by prober.
func New(prober Prober, logger *slog.Logger) *Inspector {
	return &Inspector{prober: prober, logger: logging.NewComponentLogger(logger, "inspector")}
}

// Inspect probes the file at path. A probe failure or an unsupported format
// yields an invalid Result rather than an error so the batch can continue.
// Only context cancellation is returned as an error.
func (i *Inspector) Inspect(ctx context.Context, path string) (Result, error) {
	res := Result{Path: path, Name: filepath.Base(path)}
	ctx = runctx.WithStage(runctx.WithFile(ctx, res.Name), "inspect")
	logger := logging.WithContext(ctx, i.logger)

	raw, err := i.prober.DetectFormat(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		res.Err = err
		logger.Debug("file type probe failed", logging.Error(err))
		return res, nil
	}

	format, ok := imagefmt.Parse(raw)
	res.Format = format
	if !ok {
		res.Err = faults.Wrap(faults.ErrUnsupported, "inspect", "file type", fmt.Sprintf("unsupported format: %s", format), nil)
		logger.Debug("unsupported format", logging.String("format", format.String()))
		return res, nil
	}
	res.Mismatch = !format.MatchesPath(path)

	has, err := i.prober.HasMetadata(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		res.Err = err
		logger.Debug("exif probe failed", logging.Error(err))
		return res, nil
	}
	res.HasMetadata = has

	logger.Debug("file inspected",
		logging.String("format", format.String()),
		logging.Bool("has_metadata", has),
		logging.Bool("mismatch", res.Mismatch),
	)
	return res, nil
}

// Summary partitions inspection results the way the run reports them.
type Summary struct {
	Valid      []Result
	Invalid    []Result
	Mismatched []Result
	WithExif   []Result
}

// Summarize groups results in their original order.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if !r.Valid() {
			s.Invalid = append(s.Invalid, r)
			continue
		}
		s.Valid = append(s.Valid, r)
		if r.Mismatch {
			s.Mismatched = append(s.Mismatched, r)
		}
		if r.HasMetadata {
			s.WithExif = append(s.WithExif, r)
		}
	}
	return s
}
