//go:build !unix

package preflight

import (
	"errors"
	"io"
	"os"
)

// access probes by listing the directory and, for write, creating and
// removing a scratch file, since there is no access(2) to ask.
func access(path string, write bool) error {
	dir, err := os.Open(path)
	if err != nil {
		return err
	}
	_, err = dir.Readdirnames(1)
	_ = dir.Close()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if !write {
		return nil
	}
	probe, err := os.CreateTemp(path, ".exifstrip-probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}
