// Package discover lists the candidate image files of a work directory.
package discover

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"exifstrip/internal/faults"
	"exifstrip/internal/imagefmt"
)

// Images returns the names of the image files directly inside dir, sorted by
// byte order. Extensions are matched case-insensitively. Hidden files (such
// as macOS "._" resource forks) and subdirectories are skipped, and symlinks
// are treated like any other entry.
func Images(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, faults.Wrap(faults.ErrPrecondition, "discover", "read directory", fmt.Sprintf("%q", dir), err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !imagefmt.IsImageName(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}
