package imagefmt

import "testing"

func TestParse(t *testing.T) {
	cases := map[string]struct {
		want Format
		ok   bool
	}{
		"JPEG":   {JPEG, true},
		" png\n": {PNG, true},
		"tiff":   {TIFF, true},
		"WEBP":   {WEBP, true},
		"BMP":    {BMP, true},
		"GIF":    {"GIF", false},
		"":       {"", false},
		"MP4":    {"MP4", false},
	}
	for raw, tc := range cases {
		got, ok := Parse(raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Parse(%q) = %q,%v want %q,%v", raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestMatchesPath(t *testing.T) {
	if !JPEG.MatchesPath("photo.JPG") || !JPEG.MatchesPath("photo.jpeg") {
		t.Fatal("jpeg extensions should match")
	}
	if JPEG.MatchesPath("image.png") {
		t.Fatal("png extension must not match JPEG")
	}
	if !TIFF.MatchesPath("scan.tif") || !TIFF.MatchesPath("scan.TIFF") {
		t.Fatal("tiff extensions should match")
	}
	if PNG.MatchesPath("noext") {
		t.Fatal("missing extension must not match")
	}
}

func TestCanonicalExt(t *testing.T) {
	want := map[Format]string{JPEG: ".jpg", PNG: ".png", TIFF: ".tiff", WEBP: ".webp", BMP: ".bmp", "GIF": ".tmp"}
	for f, ext := range want {
		if got := f.CanonicalExt(); got != ext {
			t.Fatalf("%s.CanonicalExt() = %q want %q", f, got, ext)
		}
	}
}

func TestIsImageName(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.Png", "d.tif", "e.webp", "f.BMP"} {
		if !IsImageName(name) {
			t.Fatalf("expected %s to be an image name", name)
		}
	}
	for _, name := range []string{"a.gif", "notes.txt", "jpg", "archive.jpg.zip"} {
		if IsImageName(name) {
			t.Fatalf("expected %s to be rejected", name)
		}
	}
}
