package view

import (
	"fmt"
	"io"
	"strings"

	"gbm/internal/color"
	"gbm/internal/counter"
	"gbm/internal/ext"
)

type ErrorViewModel struct {
	errorCount  *counter.Counter
	latestError string
	logFilePath string
}

func NewErrorViewModel(logFilePath string) *ErrorViewModel {
	return &ErrorViewModel{
		errorCount:  counter.NewCounter(),
		logFilePath: logFilePath,
	}
}

func (vm *ErrorViewModel) Record(err error) {
	vm.errorCount.Increment()
	vm.latestError = err.Error()
}

func (vm *ErrorViewModel) Count() int64 {
	return vm.errorCount.Count()
}

type ErrorView struct {
	viewModel *ErrorViewModel
	stdout    io.Writer
}

func NewErrorView(vm *ErrorViewModel, stdout io.Writer) *ErrorView {
	return &ErrorView{
		viewModel: vm,
		stdout:    stdout,
	}
}

func (v ErrorView) Render(width int) int {
	if v.viewModel.Count() == 0 {
		return 0
	}
	out := fmt.Sprintf("--- %s errors ---\n%s\n",
		color.FgRed(fmt.Sprintf("%d", v.viewModel.Count())),
		strings.TrimRight(TrimTextToWidth(width, v.viewModel.latestError), " "))
	if v.viewModel.logFilePath != "" {
		out += fmt.Sprintf("See log file:\n%s\n", color.FgMagenta(ext.ReplaceHomeDirWithTilde(v.viewModel.logFilePath)))
	}

	_, err := fmt.Fprint(v.stdout, out)
	if err != nil {
		return 0
	}
	return strings.Count(out, "\n")
}
