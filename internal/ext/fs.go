package ext

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnsureDirectories creates path and any missing parents. An existing directory is not an error.
func EnsureDirectories(path string) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// RemoveTree deletes path recursively. Git marks pack and object files read-only, so an entry
// that cannot be removed because of permissions gets its write bit (and that of its parent)
// restored and is retried once. A path that does not exist is not an error.
func RemoveTree(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if errors.Is(err, fs.ErrPermission) {
			makeWritable(path, info.Mode())
			entries, err = os.ReadDir(path)
		}
		if err != nil {
			return fmt.Errorf("failed to read directory %s: %w", path, err)
		}
		for _, entry := range entries {
			if err := RemoveTree(filepath.Join(path, entry.Name())); err != nil {
				return err
			}
		}
	}

	return removeEntry(path, info.Mode())
}

func removeEntry(path string, mode fs.FileMode) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrPermission) {
		if parent, statErr := os.Stat(filepath.Dir(path)); statErr == nil {
			makeWritable(filepath.Dir(path), parent.Mode())
		}
		makeWritable(path, mode)
		err = os.Remove(path)
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// makeWritable adds owner write permission; directories also get read and search permission so
// their entries can be listed and unlinked.
func makeWritable(path string, mode fs.FileMode) {
	if mode&fs.ModeSymlink != 0 {
		return
	}
	perm := mode.Perm() | 0o200
	if mode.IsDir() {
		perm |= 0o700
	}
	_ = os.Chmod(path, perm)
}
