// Package main hosts the exifstrip CLI entrypoint and command graph.
//
// Running exifstrip without a subcommand strips metadata from the images in
// the work directory, asking before it changes anything. The config, doctor
// and version subcommands cover setup and troubleshooting.
//
// Keep this package lean: behavior lives in the internal packages and is
// only wired together here.
package main
