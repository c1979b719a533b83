package exiftool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"exifstrip/internal/faults"
	"exifstrip/internal/logging"
)

// waitDelay bounds how long Wait blocks on inherited pipes after the process
// has been killed on timeout.
const waitDelay = 2 * time.Second

// Client runs ExifTool as a subprocess, one invocation per call.
type Client struct {
	path         string
	version      string
	queryTimeout time.Duration
	stripTimeout time.Duration
	logger       *slog.Logger
}

// Timeouts bounds each class of invocation. Zero disables the bound.
type Timeouts struct {
	Version time.Duration
	Query   time.Duration
	Strip   time.Duration
}

// NewClient returns a client for the binary at path without probing it.
func NewClient(path string, timeouts Timeouts, logger *slog.Logger) *Client {
	return &Client{
		path:         strings.TrimSpace(path),
		queryTimeout: timeouts.Query,
		stripTimeout: timeouts.Strip,
		logger:       logging.NewComponentLogger(logger, "exiftool"),
	}
}

// Path returns the executable this client invokes.
func (c *Client) Path() string { return c.path }

// Version returns the version string reported when the client was located.
func (c *Client) Version() string { return c.version }

// ProbeVersion runs -ver and records the reported version on success.
func (c *Client) ProbeVersion(ctx context.Context, timeout time.Duration) (string, error) {
	out, err := c.run(ctx, timeout, VersionArgs()...)
	if err != nil {
		return "", err
	}
	c.version = strings.TrimSpace(out)
	return c.version, nil
}

// DetectFormat returns the raw FileType tag ExifTool reports for path.
func (c *Client) DetectFormat(ctx context.Context, path string) (string, error) {
	out, err := c.run(ctx, c.queryTimeout, FileTypeArgs(path)...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HasMetadata reports whether any EXIF tag is present. Only the output is
// considered; a non-zero exit that still printed tags counts as present.
func (c *Client) HasMetadata(ctx context.Context, path string) (bool, error) {
	out, err := c.run(ctx, c.queryTimeout, ExifPresenceArgs(path)...)
	if err != nil && !isExitError(err) {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// Orientation returns the numeric Orientation tag. The boolean is false when
// the file carries none.
func (c *Client) Orientation(ctx context.Context, path string) (int, bool, error) {
	out, err := c.run(ctx, c.queryTimeout, OrientationArgs(path)...)
	if err != nil {
		return 0, false, err
	}
	value := strings.TrimSpace(out)
	if value == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, faults.Wrap(faults.ErrExternalTool, "exiftool", "orientation", fmt.Sprintf("unexpected value %q", value), err)
	}
	return n, true, nil
}

// StripKeepingOrientation removes all metadata from path in place while
// restoring the Orientation tag from the original.
func (c *Client) StripKeepingOrientation(ctx context.Context, path string) error {
	_, err := c.run(ctx, c.stripTimeout, StripArgs(path)...)
	return err
}

// run returns stdout even when the command fails so callers that only care
// about printed output can still use it.
func (c *Client) run(ctx context.Context, timeout time.Duration, args ...string) (string, error) {
	if c.path == "" {
		return "", faults.Wrap(faults.ErrNotFound, "exiftool", "run", "no executable configured", nil)
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.path, args...)
	hideWindow(cmd)
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()
	c.logger.Debug("exiftool invocation",
		logging.String("binary", c.path),
		logging.String("args", strings.Join(args, " ")),
		slog.Duration("elapsed", time.Since(started)),
		logging.Bool("ok", err == nil),
	)
	if err == nil {
		return stdout.String(), nil
	}

	op := operationName(args)
	switch ctxErr := ctx.Err(); {
	case errors.Is(ctxErr, context.DeadlineExceeded):
		return stdout.String(), faults.Wrap(faults.ErrTimeout, "exiftool", op, fmt.Sprintf("no response within %s", timeout), ctxErr)
	case errors.Is(ctxErr, context.Canceled):
		return stdout.String(), fmt.Errorf("exiftool %s: %w", op, ctxErr)
	}
	toolErr := &faults.ToolError{Args: args, Stderr: stderr.String(), Err: err}
	return stdout.String(), faults.Wrap(faults.ErrExternalTool, "exiftool", op, "", toolErr)
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

func operationName(args []string) string {
	for _, arg := range args {
		switch arg {
		case "-ver":
			return "version"
		case "-FileType":
			return "file type"
		case "-EXIF:all":
			return "exif presence"
		case "-Orientation":
			return "orientation"
		case "-all=":
			return "strip"
		}
	}
	return "run"
}
