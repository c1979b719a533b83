// Package verify double-checks a stripped file. JPEG and TIFF are decoded
// in-process; other formats only get their orientation compared through the
// metadata tool. It only reads; all rewriting is left to ExifTool.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"exifstrip/internal/imagefmt"
	"exifstrip/internal/logging"
)

// sensitive are the identifying fields that must not survive a strip.
var sensitive = []exif.FieldName{
	exif.Make,
	exif.Model,
	exif.DateTime,
	exif.DateTimeOriginal,
	exif.Software,
	exif.Artist,
}

// OrientationReader asks the metadata tool for a file's Orientation tag.
// It covers the formats goexif cannot decode.
type OrientationReader interface {
	Orientation(ctx context.Context, path string) (int, bool, error)
}

// Snapshot is the pre-strip state the post-strip check compares against.
type Snapshot struct {
	Format         imagefmt.Format
	Readable       bool
	Orientation    int
	HasOrientation bool
}

// Verifier reads EXIF from JPEG and TIFF files in-process and falls back to
// the tool's orientation query for everything else.
type Verifier struct {
	logger *slog.Logger
	reader OrientationReader
}

// New returns a verifier that logs decode problems at debug level. reader
// may be nil, in which case only JPEG and TIFF results are checked.
func New(logger *slog.Logger, reader OrientationReader) *Verifier {
	return &Verifier{logger: logging.NewComponentLogger(logger, "verify"), reader: reader}
}

// Supports reports whether format can be decoded in-process.
func Supports(format imagefmt.Format) bool {
	return format == imagefmt.JPEG || format == imagefmt.TIFF
}

// Capture records the orientation of path before it is stripped.
func (v *Verifier) Capture(ctx context.Context, path string, format imagefmt.Format) Snapshot {
	snap := Snapshot{Format: format}
	if v == nil {
		return snap
	}
	if !Supports(format) {
		if v.reader == nil {
			return snap
		}
		n, ok, err := v.reader.Orientation(ctx, path)
		if err != nil {
			v.logger.Debug("orientation query failed before strip", logging.String("path", path), logging.Error(err))
			return snap
		}
		snap.Readable = true
		snap.Orientation, snap.HasOrientation = n, ok
		return snap
	}
	x, err := decode(path)
	switch {
	case errors.Is(err, io.EOF):
		snap.Readable = true
		return snap
	case x == nil:
		v.logger.Debug("exif unreadable before strip", logging.String("path", path), logging.Error(err))
		return snap
	}
	snap.Readable = true
	snap.Orientation, snap.HasOrientation = orientation(x)
	return snap
}

// Check re-reads path after a strip and describes anything that looks
// wrong. An empty result means the file passed or could not be checked.
func (v *Verifier) Check(ctx context.Context, path string, before Snapshot) []string {
	if v == nil {
		return nil
	}
	if !Supports(before.Format) {
		if v.reader == nil || !before.Readable || !before.HasOrientation {
			return nil
		}
		after, ok, err := v.reader.Orientation(ctx, path)
		if err != nil {
			v.logger.Debug("orientation query failed after strip", logging.String("path", path), logging.Error(err))
			return nil
		}
		return orientationWarnings(before.Orientation, after, ok)
	}

	x, err := decode(path)
	if err != nil && x == nil && !errors.Is(err, io.EOF) {
		v.logger.Debug("exif unreadable after strip", logging.String("path", path), logging.Error(err))
		return nil
	}

	var warnings []string
	if before.Readable && before.HasOrientation {
		after, ok := 0, false
		if x != nil {
			after, ok = orientation(x)
		}
		warnings = orientationWarnings(before.Orientation, after, ok)
	}
	if x != nil {
		if remaining := remainingSensitive(x); len(remaining) > 0 {
			warnings = append(warnings, "metadata still present: "+strings.Join(remaining, ", "))
		}
	}
	return warnings
}

func orientationWarnings(before, after int, ok bool) []string {
	switch {
	case !ok:
		return []string{fmt.Sprintf("orientation %d was not kept", before)}
	case after != before:
		return []string{fmt.Sprintf("orientation changed from %d to %d", before, after)}
	default:
		return nil
	}
}

func decode(path string) (*exif.Exif, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return exif.Decode(f)
}

func orientation(x *exif.Exif) (int, bool) {
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 0, false
	}
	value, err := tag.Int(0)
	if err != nil {
		return 0, false
	}
	return value, true
}

func remainingSensitive(x *exif.Exif) []string {
	var names []string
	for _, field := range sensitive {
		if _, err := x.Get(field); err == nil {
			names = append(names, string(field))
		}
	}
	if _, _, err := x.LatLong(); err == nil {
		names = append(names, "GPS")
	}
	return names
}
