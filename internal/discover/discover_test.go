package discover

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"exifstrip/internal/faults"
	"exifstrip/internal/testsupport"
)

func TestImagesMatchesExtensionsCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"photo.jpg", "SHOT.PNG", "Mixed.JpEg", "scan.tif", "scan2.TIFF",
		"web.webp", "old.bmp", "notes.txt", "archive.jpg.zip", "noext",
	} {
		testsupport.WriteFile(t, filepath.Join(dir, name), 8)
	}

	got, err := Images(dir)
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	want := []string{"Mixed.JpEg", "SHOT.PNG", "old.bmp", "photo.jpg", "scan.tif", "scan2.TIFF", "web.webp"}
	if !slices.Equal(got, want) {
		t.Fatalf("Images = %v want %v", got, want)
	}
}

func TestImagesSkipsDirectoriesAndDoesNotRecurse(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "album.jpg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	testsupport.WriteFile(t, filepath.Join(dir, "nested", "deep.jpg"), 8)
	testsupport.WriteFile(t, filepath.Join(dir, "top.jpg"), 8)

	got, err := Images(dir)
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	if !slices.Equal(got, []string{"top.jpg"}) {
		t.Fatalf("Images = %v", got)
	}
}

func TestImagesEmptyDirectory(t *testing.T) {
	got, err := Images(t.TempDir())
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no images, got %v", got)
	}
}

func TestImagesUnreadableDirectory(t *testing.T) {
	_, err := Images(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, faults.ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition, got %v", err)
	}
	if !faults.Fatal(err) {
		t.Fatal("unreadable directory must end the run")
	}
}

func TestImagesSkipsHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"._photo.jpg", ".thumb.png", "photo.jpg"} {
		testsupport.WriteFile(t, filepath.Join(dir, name), 8)
	}

	got, err := Images(dir)
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	if !slices.Equal(got, []string{"photo.jpg"}) {
		t.Fatalf("Images = %v", got)
	}
}
