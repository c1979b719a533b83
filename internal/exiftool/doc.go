// Package exiftool drives the external ExifTool binary.
//
// Client runs one subprocess per call with a hard timeout and exposes the four
// operations the stripper needs: Version, DetectFormat, HasMetadata, and
// StripKeepingOrientation. Locate builds a Client by probing an ordered list of
// candidate executables with -ver and adopting the first one that answers.
// Session offers the same operations over a single -stay_open process for
// large batches.
//
// Paths handed to the tool are expected to be absolute so a file name that
// begins with "-" can never be read as an option.
package exiftool
