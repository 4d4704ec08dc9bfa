package terminalView

import (
	"gbm/internal/counter"
	"gbm/internal/view"
)

type BackupViewModel struct {
	GroupCount     *counter.Counter
	ProjectCount   *counter.Counter
	SkippedCount   *counter.Counter
	ArchivedCount  *counter.Counter
	ArchivedBytes  *counter.Counter
	ErrorViewModel *view.ErrorViewModel
	ArchiveDir     string
}

func NewBackupViewModel(archiveDir string, logFilePath string) *BackupViewModel {
	return &BackupViewModel{
		GroupCount:     counter.NewCounter(),
		ProjectCount:   counter.NewCounter(),
		SkippedCount:   counter.NewCounter(),
		ArchivedCount:  counter.NewCounter(),
		ArchivedBytes:  counter.NewCounter(),
		ErrorViewModel: view.NewErrorViewModel(logFilePath),
		ArchiveDir:     archiveDir,
	}
}
