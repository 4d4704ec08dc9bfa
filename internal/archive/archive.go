// Package archive packs a directory tree into a gzip-compressed tar file.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"gbm/internal/color"
	logger "gbm/internal/log"
)

// ArchiveError reports an I/O failure while reading the source tree or writing the archive.
type ArchiveError struct {
	Source string
	Output string
	Err    error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("failed to compress %s into %s: %v", e.Source, e.Output, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// Compress writes every entry below sourceDir into outputFile as a .tar.gz, rooted at a single
// top-level directory named after sourceDir, and returns the size of the archive. An existing
// outputFile is never overwritten. On failure the partial output file is removed.
func Compress(sourceDir, outputFile string) (int64, error) {
	logger.Log.Infof("Compressing project: %s -> %s", color.FgCyan(sourceDir), color.FgCyan(outputFile))

	size, created, err := compress(filepath.Clean(sourceDir), outputFile)
	if err != nil {
		// Only the file opened by this call is ours to remove.
		if !created {
			return 0, &ArchiveError{Source: sourceDir, Output: outputFile, Err: err}
		}
		if removeErr := os.Remove(outputFile); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			logger.Log.Errorf("Failed to remove incomplete archive %s: %v", outputFile, removeErr)
		}
		return 0, &ArchiveError{Source: sourceDir, Output: outputFile, Err: err}
	}

	logger.Log.Infof("Compressed %s -> %s (%s)", color.FgCyan(sourceDir), color.FgCyan(outputFile), color.FgMagenta(humanize.Bytes(uint64(size))))
	return size, nil
}

func compress(sourceDir, outputFile string) (size int64, created bool, err error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return 0, false, err
	}
	if !info.IsDir() {
		return 0, false, fmt.Errorf("%s is not a directory", sourceDir)
	}

	file, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return 0, false, err
	}
	created = true
	gz := gzip.NewWriter(file)
	tw := tar.NewWriter(gz)

	// The tar and gzip writers flush trailers on Close, so each close error counts.
	defer func() {
		err = errors.Join(err, tw.Close(), gz.Close())
		if stat, statErr := file.Stat(); statErr == nil {
			size = stat.Size()
		}
		err = errors.Join(err, file.Close())
	}()

	rootName := filepath.Base(sourceDir)
	err = filepath.WalkDir(sourceDir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		relPath, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		return addEntry(tw, path, filepath.ToSlash(filepath.Join(rootName, relPath)), entry)
	})
	return 0, true, err
}

func addEntry(tw *tar.Writer, path string, name string, entry fs.DirEntry) error {
	info, err := entry.Info()
	if err != nil {
		return err
	}

	var link string
	if info.Mode()&fs.ModeSymlink != 0 {
		if link, err = os.Readlink(path); err != nil {
			return err
		}
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return fmt.Errorf("failed to create tar header for %s: %w", path, err)
	}
	header.Name = name
	if info.IsDir() {
		header.Name += "/"
	}
	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write tar header for %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("failed to copy %s into archive: %w", path, err)
	}
	return nil
}
