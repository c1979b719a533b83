// Package config loads, normalizes, and validates exifstrip configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the EXIFTOOL_PATH environment
// fallback. Every field is optional: with no file present the tool behaves
// exactly like the interactive defaults, scanning the directory that holds the
// executable and asking before it touches anything.
package config
