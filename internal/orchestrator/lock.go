package orchestrator

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"exifstrip/internal/faults"
)

// LockPath returns the advisory lock file guarding dir. Two runs against the
// same directory map to the same file regardless of how dir was spelled.
func LockPath(tempDir, dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(filepath.Clean(dir)))
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return filepath.Join(tempDir, fmt.Sprintf("exifstrip-%08x.lock", h.Sum32()))
}

// acquireLock takes the run lock without blocking. A lock held by another
// process is reported as faults.ErrPrecondition.
func acquireLock(path string) (*flock.Flock, error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, faults.Wrap(faults.ErrPrecondition, "lock", "acquire", path, err)
	}
	if !ok {
		return nil, faults.Wrap(faults.ErrPrecondition, "lock", "acquire", "another run is processing this directory", nil)
	}
	return lock, nil
}

// releaseLock unlocks and deletes the lock file so processed directories do
// not leave one behind each.
func releaseLock(lock *flock.Flock) error {
	if err := lock.Unlock(); err != nil {
		return err
	}
	if err := os.Remove(lock.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
