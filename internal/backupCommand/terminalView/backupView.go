package terminalView

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"gbm/internal/color"
	"gbm/internal/ext"
	"gbm/internal/view"
)

const minPathWidth = 16

// BackupSummaryView prints the counts of a finished run.
type BackupSummaryView struct {
	viewModel *BackupViewModel
	stdout    io.Writer
}

func NewBackupSummaryView(vm *BackupViewModel, stdout io.Writer) *BackupSummaryView {
	return &BackupSummaryView{viewModel: vm, stdout: stdout}
}

func (v *BackupSummaryView) Render(width int) int {
	vm := v.viewModel
	pathWidth := max(width-len("Archives in "), minPathWidth)
	archiveDir := view.TruncateTextToWidth(pathWidth, ext.ReplaceHomeDirWithTilde(vm.ArchiveDir))
	out := fmt.Sprintf("%s projects in %s groups\n%s archived (%s), %s skipped\nArchives in %s\n",
		color.FgMagenta(fmt.Sprintf("%d", vm.ProjectCount.Count())),
		color.FgMagenta(fmt.Sprintf("%d", vm.GroupCount.Count())),
		color.FgMagenta(fmt.Sprintf("%d", vm.ArchivedCount.Count())),
		color.FgMagenta(humanize.Bytes(uint64(vm.ArchivedBytes.Count()))),
		color.FgMagenta(fmt.Sprintf("%d", vm.SkippedCount.Count())),
		color.FgCyan(strings.TrimRight(archiveDir, " ")))
	_, err := fmt.Fprint(v.stdout, out)
	if err != nil {
		return 0
	}
	return strings.Count(out, "\n")
}

// BackupView is the summary printed once the run has finished: counts, errors and elapsed time.
type BackupView struct {
	compositeView *view.CompositeView
	stdout        io.Writer
}

func NewBackupView(vm *BackupViewModel, stdout io.Writer, timeElapsedView view.View) *BackupView {
	compositeView := view.NewCompositeView(nil)
	compositeView.AddView(NewBackupSummaryView(vm, stdout))
	compositeView.AddFooter(view.NewErrorView(vm.ErrorViewModel, stdout))
	compositeView.AddFooter(timeElapsedView)
	return &BackupView{compositeView: compositeView, stdout: stdout}
}

func NewDefaultBackupView(vm *BackupViewModel, stdout io.Writer, startTime time.Time) *BackupView {
	return NewBackupView(vm, stdout, view.NewTimeElapsedView(startTime, stdout, time.Since))
}

func (r *BackupView) Render(width int) int {
	_, err := fmt.Fprintln(r.stdout, "Backup done")
	if err != nil {
		return 0
	}
	return 1 + r.compositeView.Render(width)
}
