package exiftool

// VersionArgs queries the tool version.
func VersionArgs() []string {
	return []string{"-ver"}
}

// FileTypeArgs prints only the detected FileType value.
func FileTypeArgs(path string) []string {
	return []string{"-s", "-s", "-s", "-FileType", path}
}

// ExifPresenceArgs prints every tag in the EXIF group, one value per line.
func ExifPresenceArgs(path string) []string {
	return []string{"-s", "-s", "-s", "-EXIF:all", path}
}

// OrientationArgs prints the numeric Orientation value.
func OrientationArgs(path string) []string {
	return []string{"-s", "-s", "-s", "-n", "-Orientation", path}
}

// StripArgs deletes all metadata in place, then copies Orientation back from
// the file's own pre-edit state ("@").
func StripArgs(path string) []string {
	return []string{"-overwrite_original", "-all=", "-TagsFromFile", "@", "-orientation", path}
}
