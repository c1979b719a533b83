// Package fileutil holds the file copies and sibling/temp path naming used
// around a strip: backups, mismatch temp copies and the copy back.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CopyFile copies src over dst, then gives dst the permission bits and
// modification time of src.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if err := copyFileMode(src, dst, info.Mode().Perm()); err != nil {
		return err
	}
	return preserve(dst, info)
}

// CopyFileVerified streams src to dst with SHA256 + size integrity
// verification, then preserves mode and modification time like CopyFile.
// Removes dst on mismatch.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	return preserve(dst, srcInfo)
}

// BackupPath returns the first free sibling name for a backup of path:
// <stem><suffix><ext>, then <stem><suffix>_1<ext>, <stem><suffix>_2<ext>, ...
func BackupPath(path, suffix string) (string, error) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	candidate := stem + suffix + ext
	for n := 1; ; n++ {
		_, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("check backup name %q: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s%s_%d%s", stem, suffix, n, ext)
	}
}

// TempPath names the working copy used when the extension of path disagrees
// with its true format: exif_temp_<pid>_<hash><ext> inside dir. The hash is
// FNV-1a of path reduced modulo 10000.
func TempPath(dir, path, ext string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(path))
	name := fmt.Sprintf("exif_temp_%d_%d%s", os.Getpid(), h.Sum32()%10000, ext)
	return filepath.Join(dir, name)
}

// Size returns the byte size of path.
func Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func copyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// preserve applies mode and mtime; OpenFile only sets the mode on creation.
func preserve(dst string, info os.FileInfo) error {
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
