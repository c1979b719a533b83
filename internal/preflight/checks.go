package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"

	"exifstrip/internal/exiftool"
)

// CheckExiftool locates ExifTool the same way a run does and reports the
// adopted binary and version.
func CheckExiftool(ctx context.Context, opts exiftool.LocateOptions) Result {
	const name = "ExifTool"

	client, err := exiftool.Locate(ctx, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Result{Name: name, Detail: "check cancelled"}
		}
		return Result{Name: name, Detail: fmt.Sprintf("not found (%v)", err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("version %s (%s)", client.Version(), client.Path())}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, true)
}

// CheckDirectoryReadable verifies that the directory exists and can be listed.
func CheckDirectoryReadable(name, path string) Result {
	return checkDirectory(name, path, false)
}

func checkDirectory(name, path string, write bool) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := access(path, write); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	if write {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}
