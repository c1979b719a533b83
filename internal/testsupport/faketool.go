package testsupport

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"exifstrip/internal/faults"
	"exifstrip/internal/imagefmt"
)

const fakeMagic = "FAKEIMG"

// FakeImage is the content model understood by FakeTool. Files are written
// as a single header line followed by Payload filler bytes.
type FakeImage struct {
	Format      string
	Orientation int
	Tags        []string
	Payload     int
}

// WriteFakeImage writes img to path.
func WriteFakeImage(t testing.TB, path string, img FakeImage) {
	t.Helper()
	if err := os.WriteFile(path, encodeFake(img), 0o644); err != nil {
		t.Fatalf("write fake image %s: %v", path, err)
	}
}

// ReadFakeImage parses a file written by WriteFakeImage or rewritten by FakeTool.
func ReadFakeImage(t testing.TB, path string) FakeImage {
	t.Helper()
	img, err := decodeFake(path)
	if err != nil {
		t.Fatalf("read fake image %s: %v", path, err)
	}
	return img
}

func encodeFake(img FakeImage) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s format=%s orientation=%d exif=%s\n", fakeMagic, img.Format, img.Orientation, strings.Join(img.Tags, ","))
	buf.Write(bytes.Repeat([]byte{0x42}, img.Payload))
	return buf.Bytes()
}

func decodeFake(path string) (FakeImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FakeImage{}, err
	}
	line, rest, _ := bytes.Cut(data, []byte{'\n'})
	scanner := bufio.NewScanner(bytes.NewReader(line))
	scanner.Split(bufio.ScanWords)
	if !scanner.Scan() || scanner.Text() != fakeMagic {
		return FakeImage{}, fmt.Errorf("unknown file type")
	}
	img := FakeImage{Payload: len(rest)}
	for scanner.Scan() {
		key, value, _ := strings.Cut(scanner.Text(), "=")
		switch key {
		case "format":
			img.Format = value
		case "orientation":
			img.Orientation, _ = strconv.Atoi(value)
		case "exif":
			if value != "" {
				img.Tags = strings.Split(value, ",")
			}
		}
	}
	return img, nil
}

// FakeTool is an in-memory stand-in for ExifTool operating on FakeImage files.
// Like the real tool, it refuses to rewrite a file whose extension disagrees
// with its content.
type FakeTool struct {
	VersionString string
	// ProbeErr and StripErr inject failures keyed by file base name.
	ProbeErr map[string]error
	StripErr map[string]error

	Probed   []string
	Stripped []string
	Oriented []string
}

// NewFakeTool returns a FakeTool reporting version 12.76.
func NewFakeTool() *FakeTool {
	return &FakeTool{
		VersionString: "12.76",
		ProbeErr:      map[string]error{},
		StripErr:      map[string]error{},
	}
}

func (f *FakeTool) Version() string { return f.VersionString }

func (f *FakeTool) DetectFormat(_ context.Context, path string) (string, error) {
	f.Probed = append(f.Probed, path)
	if err := f.ProbeErr[filepath.Base(path)]; err != nil {
		return "", err
	}
	img, err := decodeFake(path)
	if err != nil {
		return "", faults.Wrap(faults.ErrExternalTool, "fake", "file type", "", &faults.ToolError{Stderr: "Error: " + err.Error()})
	}
	return img.Format, nil
}

// Orientation reports the fake image's orientation; zero means absent.
func (f *FakeTool) Orientation(_ context.Context, path string) (int, bool, error) {
	f.Oriented = append(f.Oriented, path)
	img, err := decodeFake(path)
	if err != nil {
		return 0, false, err
	}
	return img.Orientation, img.Orientation != 0, nil
}

func (f *FakeTool) HasMetadata(_ context.Context, path string) (bool, error) {
	img, err := decodeFake(path)
	if err != nil {
		return false, err
	}
	return len(img.Tags) > 0, nil
}

func (f *FakeTool) StripKeepingOrientation(_ context.Context, path string) error {
	f.Stripped = append(f.Stripped, path)
	if err := f.StripErr[filepath.Base(path)]; err != nil {
		return err
	}
	img, err := decodeFake(path)
	if err != nil {
		return err
	}
	format, _ := imagefmt.Parse(img.Format)
	if !format.MatchesPath(path) {
		return faults.Wrap(faults.ErrExternalTool, "fake", "strip", "", &faults.ToolError{
			Stderr: fmt.Sprintf("Error: Not a valid %s (looks more like a %s)", strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), ".")), img.Format),
		})
	}
	img.Tags = nil
	return os.WriteFile(path, encodeFake(img), 0o644)
}
