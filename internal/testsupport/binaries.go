package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// StubExiftool writes an executable shell script called name into dir and
// returns its path. The script body is appended after the shebang. Tests
// using it are skipped on Windows.
func StubExiftool(t testing.TB, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir stub dir: %v", err)
	}
	target := filepath.Join(dir, name)
	script := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(target, script, 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

// PrependPath puts dir at the front of PATH for the duration of the test.
func PrependPath(t testing.TB, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// IsolatePath points PATH at an empty directory so no real exiftool is found.
func IsolatePath(t testing.TB) {
	t.Helper()
	t.Setenv("PATH", t.TempDir())
}
