//go:build unix

package preflight

import "golang.org/x/sys/unix"

func access(path string, write bool) error {
	mode := uint32(unix.R_OK | unix.X_OK)
	if write {
		mode |= unix.W_OK
	}
	return unix.Access(path, mode)
}
