package exiftool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	goexiftool "github.com/barasher/go-exiftool"

	"exifstrip/internal/faults"
	"exifstrip/internal/logging"
)

const (
	fileTypeKey    = "File:FileType"
	orientationKey = "EXIF:Orientation"
	exifGroup      = "EXIF:"
)

// Session serves the same operations as Client over one long-lived
// "exiftool -stay_open" process. The underlying library has no per-call
// timeout, so only cancellation between calls is honoured.
type Session struct {
	client *Client
	et     *goexiftool.Exiftool
	logger *slog.Logger
}

// OpenSession starts a persistent process for the binary client already
// validated.
func OpenSession(client *Client, logger *slog.Logger) (*Session, error) {
	if client == nil || client.Path() == "" {
		return nil, faults.Wrap(faults.ErrNotFound, "session", "open", "no located exiftool", nil)
	}
	et, err := goexiftool.NewExiftool(
		goexiftool.SetExiftoolBinaryPath(client.Path()),
		goexiftool.PrintGroupNames("0"),
		goexiftool.NoPrintConversion(),
		goexiftool.ClearFieldsBeforeWriting(),
	)
	if err != nil {
		return nil, faults.Wrap(faults.ErrExternalTool, "session", "open", client.Path(), err)
	}
	return &Session{
		client: client,
		et:     et,
		logger: logging.NewComponentLogger(logger, "exiftool-session"),
	}, nil
}

// Version returns the version reported by the located binary.
func (s *Session) Version() string { return s.client.Version() }

// DetectFormat returns the raw FileType tag for path.
func (s *Session) DetectFormat(ctx context.Context, path string) (string, error) {
	md, err := s.extract(ctx, "file type", path)
	if err != nil {
		return "", err
	}
	value, err := md.GetString(fileTypeKey)
	if err != nil {
		return "", faults.Wrap(faults.ErrExternalTool, "session", "file type", path, err)
	}
	return strings.TrimSpace(value), nil
}

// HasMetadata reports whether any EXIF-group tag is present.
func (s *Session) HasMetadata(ctx context.Context, path string) (bool, error) {
	md, err := s.extract(ctx, "exif presence", path)
	if err != nil {
		return false, err
	}
	for key := range md.Fields {
		if strings.HasPrefix(key, exifGroup) {
			return true, nil
		}
	}
	return false, nil
}

// Orientation returns the numeric EXIF Orientation. The boolean is false
// when the file carries none.
func (s *Session) Orientation(ctx context.Context, path string) (int, bool, error) {
	md, err := s.extract(ctx, "orientation", path)
	if err != nil {
		return 0, false, err
	}
	n, err := md.GetInt(orientationKey)
	switch {
	case err == nil:
		return int(n), true, nil
	case errors.Is(err, goexiftool.ErrKeyNotFound):
		return 0, false, nil
	default:
		return 0, false, faults.Wrap(faults.ErrExternalTool, "session", "orientation", path, err)
	}
}

// StripKeepingOrientation clears every tag and writes back the Orientation
// value read just before.
func (s *Session) StripKeepingOrientation(ctx context.Context, path string) error {
	md, err := s.extract(ctx, "strip", path)
	if err != nil {
		return err
	}

	update := goexiftool.FileMetadata{File: path, Fields: map[string]interface{}{}}
	orientation, err := md.GetInt(orientationKey)
	switch {
	case err == nil:
		update.SetInt("Orientation", orientation)
	case !errors.Is(err, goexiftool.ErrKeyNotFound):
		s.logger.Debug("orientation unreadable; stripping without it", logging.String("path", path), logging.Error(err))
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("exiftool strip: %w", err)
	}
	batch := []goexiftool.FileMetadata{update}
	s.et.WriteMetadata(batch)
	if batch[0].Err != nil {
		return faults.Wrap(faults.ErrExternalTool, "session", "strip", "", &faults.ToolError{Stderr: batch[0].Err.Error(), Err: batch[0].Err})
	}
	return nil
}

// Close stops the persistent process.
func (s *Session) Close() error {
	if s == nil || s.et == nil {
		return nil
	}
	return s.et.Close()
}

func (s *Session) extract(ctx context.Context, op, path string) (goexiftool.FileMetadata, error) {
	if err := ctx.Err(); err != nil {
		return goexiftool.FileMetadata{}, fmt.Errorf("exiftool %s: %w", op, err)
	}
	results := s.et.ExtractMetadata(path)
	if len(results) != 1 {
		return goexiftool.FileMetadata{}, faults.Wrap(faults.ErrExternalTool, "session", op,
			fmt.Sprintf("expected one result, got %d", len(results)), nil)
	}
	if results[0].Err != nil {
		return goexiftool.FileMetadata{}, faults.Wrap(faults.ErrExternalTool, "session", op, path, results[0].Err)
	}
	return results[0], nil
}
