// Package imagefmt names the image formats exifstrip accepts and the file
// extensions each one is expected to carry.
package imagefmt

import (
	"path/filepath"
	"slices"
	"strings"
)

// Format is a true image format as reported by ExifTool's FileType tag.
type Format string

const (
	JPEG Format = "JPEG"
	PNG  Format = "PNG"
	TIFF Format = "TIFF"
	WEBP Format = "WEBP"
	BMP  Format = "BMP"
)

// Supported lists the formats in display order.
var Supported = []Format{JPEG, PNG, TIFF, WEBP, BMP}

var extensions = map[Format][]string{
	JPEG: {".jpg", ".jpeg"},
	PNG:  {".png"},
	TIFF: {".tiff", ".tif"},
	WEBP: {".webp"},
	BMP:  {".bmp"},
}

// DiscoveryExtensions are the lowercase extensions scanned for, in the order
// they are globbed.
var DiscoveryExtensions = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".webp", ".bmp"}

// Parse maps a raw FileType value to a supported Format. The second result is
// false for anything outside the supported set.
func Parse(raw string) (Format, bool) {
	f := Format(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := extensions[f]; ok {
		return f, true
	}
	return f, false
}

// CanonicalExt is the extension used when a file has to be renamed for the
// tool's benefit. Unknown formats fall back to ".tmp".
func (f Format) CanonicalExt() string {
	if exts, ok := extensions[f]; ok {
		return exts[0]
	}
	return ".tmp"
}

// MatchesPath reports whether the extension of path agrees with f.
func (f Format) MatchesPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(extensions[f], ext)
}

// IsImageName reports whether name carries one of the discovery extensions,
// in any letter case.
func IsImageName(name string) bool {
	return slices.Contains(DiscoveryExtensions, strings.ToLower(filepath.Ext(name)))
}

func (f Format) String() string { return string(f) }
