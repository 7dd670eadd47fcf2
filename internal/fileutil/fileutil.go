// Package fileutil implements the playlist write contract: direct writes
// for fresh destinations and atomic in-place replacement when the
// destination is also an input.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// CopyFile streams src to dst using io.Copy with default permissions (0o644).
func CopyFile(src, dst string) error {
	return CopyFileMode(src, dst, 0o644)
}

// CopyFileMode streams src to dst, setting the given file mode on dst.
func CopyFileMode(src, dst string, mode os.FileMode) error {
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

// SamePath reports whether a and b resolve to the same absolute path.
func SamePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, fmt.Errorf("resolve path %q: %w", a, err)
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, fmt.Errorf("resolve path %q: %w", b, err)
	}
	return absA == absB, nil
}

// WriteFile writes data directly to dest, creating or truncating it.
// Used when the destination is not one of the inputs.
func WriteFile(dest string, data []byte) error {
	return os.WriteFile(dest, data, 0o644)
}

// ReplaceFile atomically replaces dest with data. The data is first
// written to a sibling temporary file in dest's directory, then renamed
// over dest; when rename fails the replacement degrades to a copy and
// remove. On any failure the temporary file is deleted and dest is left
// untouched. An advisory lock serializes concurrent replacements of the
// same destination.
func ReplaceFile(dest string, data []byte) error {
	lock := flock.New(dest + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock destination: %w", err)
	}
	if !locked {
		return fmt.Errorf("destination %q is being written by another run", dest)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp_*.m3u")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		// Rename can fail on exotic filesystems; fall back to copying.
		if copyErr := CopyFile(tmpPath, dest); copyErr != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("replace destination: %w", err)
		}
		os.Remove(tmpPath)
	}
	return nil
}
