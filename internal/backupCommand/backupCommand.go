package backupCommand

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"golang.org/x/term"

	"gbm/internal/appConfig"
	"gbm/internal/archive"
	"gbm/internal/backupCommand/terminalView"
	"gbm/internal/color"
	"gbm/internal/ext"
	"gbm/internal/gitlab"
	"gbm/internal/gitrepo"
	logger "gbm/internal/log"
)

const defaultTerminalWidth = 120

type GroupLister interface {
	ListGroups(ctx context.Context) ([]gitlab.Group, error)
	ListGroupProjects(ctx context.Context, groupID int) ([]gitlab.Project, error)
}

type Cloner interface {
	MirrorClone(ctx context.Context, repo *gitrepo.Repository, destination string) error
}

// Compressor packs sourceDir into outputFile and returns the archive size.
type Compressor func(sourceDir, outputFile string) (int64, error)

// Backup mirrors every project of the included groups into archives. Projects are processed one at
// a time in the order the API returns them.
type Backup struct {
	config    *appConfig.AppConfig
	api       GroupLister
	cloner    Cloner
	compress  Compressor
	viewModel *terminalView.BackupViewModel
}

func NewBackup(config *appConfig.AppConfig, api GroupLister, cloner Cloner, compress Compressor, vm *terminalView.BackupViewModel) *Backup {
	return &Backup{
		config:    config,
		api:       api,
		cloner:    cloner,
		compress:  compress,
		viewModel: vm,
	}
}

// ExecuteBackupCommand wires the GitLab API, git and the archiver, runs the backup and prints a
// summary to stdout.
func ExecuteBackupCommand(ctx context.Context, config *appConfig.AppConfig) error {
	startTime := time.Now()

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if !isTTY {
		color.Disable()
	}

	logFilePath := ""
	if config.LogFile != "" {
		logFilePath = logger.GetLogFilePath(config.LogFile)
	}
	viewModel := terminalView.NewBackupViewModel(config.ArchiveDir, logFilePath)

	backup := NewBackup(config,
		gitlab.NewAPIClient(config.Token, config.APIURL),
		gitrepo.NewCloneManager(config.GitExecutable),
		archive.Compress,
		viewModel)
	err := backup.Run(ctx)

	renderSummary(viewModel, os.Stdout, startTime, isTTY)
	return err
}

func renderSummary(vm *terminalView.BackupViewModel, out *os.File, startTime time.Time, isTTY bool) {
	width := defaultTerminalWidth
	if isTTY {
		if w, _, err := term.GetSize(int(out.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	terminalView.NewDefaultBackupView(vm, out, startTime).Render(width)
}

// Run performs one complete backup pass. By default the first failure aborts the run; with
// ContinueOnError each failed project is recorded and all failures are returned together at the
// end. Failures to list groups or projects always abort.
func (b *Backup) Run(ctx context.Context) error {
	if err := ext.EnsureDirectories(b.config.TemporaryBackupDir); err != nil {
		return err
	}
	if err := ext.EnsureDirectories(b.config.ArchiveDir); err != nil {
		return err
	}

	groups, err := b.api.ListGroups(ctx)
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}
	includedGroups := lo.Filter(groups, func(group gitlab.Group, _ int) bool {
		return lo.Contains(b.config.IncludeGroups, group.Name)
	})
	logger.Log.Debugf("%d of %d groups included", len(includedGroups), len(groups))

	var failures []error
	for _, group := range includedGroups {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Log.Infof("Processing group: %s", color.FgCyan(group.Name))
		b.viewModel.GroupCount.Increment()

		projects, err := b.api.ListGroupProjects(ctx, group.ID)
		if err != nil {
			return fmt.Errorf("failed to list projects of group %s: %w", group.Name, err)
		}

		for _, project := range projects {
			if err := ctx.Err(); err != nil {
				return err
			}
			b.viewModel.ProjectCount.Increment()
			err := b.backupProject(ctx, gitlab.ConvertProjectToRepo(project))
			if err == nil {
				continue
			}
			b.viewModel.ErrorViewModel.Record(err)
			logger.Log.Errorf("Failed to back up project %s: %v", color.FgRed(project.PathWithNamespace), err)
			if !b.config.ContinueOnError {
				return err
			}
			failures = append(failures, err)
		}
	}

	logger.Log.Infof("Removing main backup directory: %s", color.FgCyan(b.config.TemporaryBackupDir))
	if err := ext.RemoveTree(b.config.TemporaryBackupDir); err != nil {
		b.viewModel.ErrorViewModel.Record(err)
		failures = append(failures, err)
	}
	return errors.Join(failures...)
}

func (b *Backup) backupProject(ctx context.Context, repo *gitrepo.Repository) error {
	clonePath := repo.ClonePath(b.config.TemporaryBackupDir)
	archivePath := repo.ArchivePath(b.config.ArchiveDir)

	if err := ext.EnsureDirectories(filepath.Dir(clonePath)); err != nil {
		return err
	}
	if err := ext.EnsureDirectories(filepath.Dir(archivePath)); err != nil {
		return err
	}

	archived, err := exists(archivePath)
	if err != nil {
		return err
	}
	if archived {
		logger.Log.Infof("Skipping existing archive: %s", color.FgCyan(archivePath))
		b.viewModel.SkippedCount.Increment()
		return nil
	}

	if err := b.cloner.MirrorClone(ctx, repo, clonePath); err != nil {
		return err
	}

	size, err := b.compress(clonePath, archivePath)
	if err != nil {
		return err
	}

	if err := ext.RemoveTree(clonePath); err != nil {
		return err
	}
	logger.Log.Infof("Deleted directory: %s", color.FgCyan(clonePath))

	b.viewModel.ArchivedCount.Increment()
	b.viewModel.ArchivedBytes.Add(size)
	return nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check %s: %w", path, err)
}
