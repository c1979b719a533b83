package main

import (
	"os"
	"path/filepath"
	"testing"

	"exifstrip/internal/testsupport"
)

func TestRunStripsConfirmedFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	photo := filepath.Join(env.imageDir, "photo.jpg")
	if err := os.WriteFile(photo, []byte("EXIF camera data"), 0o644); err != nil {
		t.Fatalf("write photo: %v", err)
	}
	plain := filepath.Join(env.imageDir, "plain.jpg")
	if err := os.WriteFile(plain, []byte("pixels"), 0o644); err != nil {
		t.Fatalf("write plain: %v", err)
	}

	out, _, err := runCLI(t, nil, env.configPath, "y\nn\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "✓ ExifTool 12.76")
	requireContains(t, out, "Found 2 candidate image files")
	requireContains(t, out, "photo.jpg [type: JPEG, has EXIF]")
	requireContains(t, out, "plain.jpg [type: JPEG, no EXIF]")
	requireContains(t, out, "✓ Processed: 1 file")
	requireContains(t, out, "Total size decreased by 11 bytes")

	if got := string(testsupport.ReadFile(t, photo)); got != "clean" {
		t.Fatalf("photo content = %q, want stripped", got)
	}
	if got := string(testsupport.ReadFile(t, plain)); got != "pixels" {
		t.Fatalf("plain content changed to %q", got)
	}
	if _, err := os.Stat(filepath.Join(env.imageDir, "photo_backup.jpg")); !os.IsNotExist(err) {
		t.Fatalf("expected no backup after declining, stat err = %v", err)
	}
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	other := filepath.Join(env.baseDir, "other")
	if err := os.MkdirAll(other, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	photo := filepath.Join(other, "photo.jpg")
	if err := os.WriteFile(photo, []byte("EXIF camera data"), 0o644); err != nil {
		t.Fatalf("write photo: %v", err)
	}

	out, _, err := runCLI(t, []string{"--dir", other, "--yes", "--backup"}, env.configPath, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireNotContains(t, out, "Process these files?")
	requireNotContains(t, out, "Create backup files?")
	requireContains(t, out, "✓ Processed: 1 file")

	backup := filepath.Join(other, "photo_backup.jpg")
	if got := string(testsupport.ReadFile(t, backup)); got != "EXIF camera data" {
		t.Fatalf("backup content = %q", got)
	}
}

func TestRunDryRunLeavesFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	photo := filepath.Join(env.imageDir, "photo.jpg")
	if err := os.WriteFile(photo, []byte("EXIF camera data"), 0o644); err != nil {
		t.Fatalf("write photo: %v", err)
	}

	out, _, err := runCLI(t, []string{"--dry-run"}, env.configPath, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Dry run: no files were modified")
	if got := string(testsupport.ReadFile(t, photo)); got != "EXIF camera data" {
		t.Fatalf("dry run modified photo: %q", got)
	}
}

func TestRunWithoutExiftoolShowsGuide(t *testing.T) {
	env := setupCLITestEnv(t)
	photo := filepath.Join(env.imageDir, "photo.jpg")
	if err := os.WriteFile(photo, []byte("EXIF camera data"), 0o644); err != nil {
		t.Fatalf("write photo: %v", err)
	}

	missing := filepath.Join(env.baseDir, "missing", "exiftool")
	out, _, err := runCLI(t, []string{"--exiftool", missing}, env.configPath, "")
	if err != nil {
		t.Fatalf("expected a clean exit, got %v", err)
	}
	requireContains(t, out, "ExifTool is required")
	if got := string(testsupport.ReadFile(t, photo)); got != "EXIF camera data" {
		t.Fatalf("photo modified without a tool: %q", got)
	}
}

func TestRunRejectsConflictingBackupFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"--backup", "--no-backup"}, env.configPath, ""); err == nil {
		t.Fatal("expected mutually exclusive flags to fail")
	}
}

func TestRunReportsInvalidConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[backup]\nmode = \"sometimes\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, _, err := runCLI(t, nil, env.configPath, "")
	if err != nil {
		t.Fatalf("expected the config error to be reported, got %v", err)
	}
	requireContains(t, out, "Configuration error")
	requireContains(t, out, "backup.mode must be one of")
	requireNotContains(t, out, "image metadata remover")
}

func TestSubcommandRejectsInvalidConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[backup]\nmode = \"sometimes\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := runCLI(t, []string{"doctor"}, env.configPath, ""); err == nil {
		t.Fatal("expected doctor to fail on an invalid config")
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "", "")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "exifstrip dev")
}
