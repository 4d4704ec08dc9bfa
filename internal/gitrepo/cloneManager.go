package gitrepo

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gbm/internal/color"
	"gbm/internal/ext"
	logger "gbm/internal/log"
)

const DefaultGitExecutable = "git"

// CloneManager prepares clone destinations and runs mirror clones with a configured git executable.
type CloneManager struct {
	gitExecutable string
}

func NewCloneManager(gitExecutable string) *CloneManager {
	return &CloneManager{gitExecutable: ext.DefaultValue(gitExecutable, DefaultGitExecutable)}
}

// MirrorClone clones repo into destination. A leftover destination from an earlier failed run is
// removed first, since git refuses to clone into a non-empty directory.
func (m *CloneManager) MirrorClone(ctx context.Context, repo *Repository, destination string) error {
	if _, err := os.Lstat(destination); err == nil {
		logger.Log.Warnf("Removing stale clone directory %s", color.FgYellow(destination))
		if err := ext.RemoveTree(destination); err != nil {
			return err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := ext.EnsureDirectories(filepath.Dir(destination)); err != nil {
		return err
	}
	return repo.MirrorClone(ctx, m.gitExecutable, destination)
}
