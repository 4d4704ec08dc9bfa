package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"gbm/internal/color"
	logger "gbm/internal/log"
	"gbm/internal/sh"
)

const (
	MirrorSuffix  = ".git"
	ArchiveSuffix = ".tar.gz"
)

type Repository struct {
	Name              string
	SSHURLToRepo      string
	PathWithNamespace string // Full namespace path, e.g. "GroupA/Subgroup1/Project"
}

// CloneError reports a mirror clone whose git process failed. ExitCode is -1 when git could not
// be started at all.
type CloneError struct {
	Repository  string
	Destination string
	ExitCode    int
	Output      string
	Err         error
}

func (e *CloneError) Error() string {
	msg := fmt.Sprintf("mirror clone of %s into %s failed", e.Repository, e.Destination)
	if e.ExitCode >= 0 {
		msg = fmt.Sprintf("%s with exit status %d", msg, e.ExitCode)
	}
	if e.Output != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Output)
	}
	return msg
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

// ClonePath is where the bare mirror of the repository is cloned, e.g. {tempRoot}/Team/Sub/Repo.git.
func (repo *Repository) ClonePath(tempRoot string) string {
	return filepath.Join(tempRoot, filepath.FromSlash(repo.PathWithNamespace)+MirrorSuffix)
}

// ArchivePath is where the compressed mirror is stored, e.g. {archiveRoot}/Team/Sub/Repo.tar.gz.
func (repo *Repository) ArchivePath(archiveRoot string) string {
	return filepath.Join(archiveRoot, filepath.FromSlash(repo.PathWithNamespace)+ArchiveSuffix)
}

// MirrorClone runs "git clone --mirror", fetching all refs into a bare repository at destination.
func (repo *Repository) MirrorClone(ctx context.Context, gitExecutable string, destination string) error {
	logger.Log.Infof("Cloning project: %s -> %s", color.FgMagenta(repo.Name), color.FgCyan(destination))

	_, err := sh.ExecuteCommand(ctx, "", gitExecutable, "clone", "--mirror", repo.SSHURLToRepo, destination)
	if err != nil {
		cloneErr := &CloneError{Repository: repo.PathWithNamespace, Destination: destination, ExitCode: -1, Err: err}
		var cmdErr *sh.CommandError
		if errors.As(err, &cmdErr) {
			cloneErr.ExitCode = cmdErr.ExitCode
			cloneErr.Output = cmdErr.Output
		}
		return cloneErr
	}
	return nil
}
