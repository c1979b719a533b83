package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "dst.jpg")

	content := []byte("hello world")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFilePreservesModTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "dst.jpg")

	if err := os.WriteFile(src, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	stamp := time.Date(2019, 7, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("mtime not preserved: got %v want %v", info.ModTime(), stamp)
	}
}

func TestCopyFilePreservesModeOverExistingFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "dst.png")

	if err := os.WriteFile(src, []byte("data"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(src, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("previous and longer"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %o", info.Mode().Perm())
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "data" {
		t.Fatalf("existing destination not truncated: %q", got)
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := []byte("verified copy content")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}
	stamp := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(src, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("mtime not preserved: got %v", info.ModTime())
	}
}

func TestCopyFileVerified_MissingSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "nonexistent")
	dst := filepath.Join(dir, "dst.bin")

	err := CopyFileVerified(src, dst)
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestBackupPathFree(t *testing.T) {
	dir := t.TempDir()
	got, err := BackupPath(filepath.Join(dir, "photo.jpg"), "_backup")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, "photo_backup.jpg") {
		t.Fatalf("unexpected backup path %s", got)
	}
}

func TestBackupPathCollisionsAreNumbered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"photo_backup.jpg", "photo_backup_1.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := BackupPath(filepath.Join(dir, "photo.jpg"), "_backup")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, "photo_backup_2.jpg") {
		t.Fatalf("unexpected backup path %s", got)
	}
}

func TestBackupPathKeepsExtensionCase(t *testing.T) {
	dir := t.TempDir()
	got, err := BackupPath(filepath.Join(dir, "IMG_0001.JPG"), "_orig")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, "IMG_0001_orig.JPG") {
		t.Fatalf("unexpected backup path %s", got)
	}
}

func TestTempPath(t *testing.T) {
	dir := t.TempDir()
	first := TempPath(dir, "/images/image.png", ".jpg")
	again := TempPath(dir, "/images/image.png", ".jpg")
	other := TempPath(dir, "/images/other.png", ".jpg")

	if first != again {
		t.Fatalf("temp path not stable: %s vs %s", first, again)
	}
	if first == other {
		t.Fatalf("distinct sources share a temp path: %s", first)
	}
	if filepath.Dir(first) != dir {
		t.Fatalf("temp path outside dir: %s", first)
	}
	want := fmt.Sprintf("exif_temp_%d_9715.jpg", os.Getpid())
	if base := filepath.Base(first); base != want {
		t.Fatalf("temp name = %s want %s", base, want)
	}
}
