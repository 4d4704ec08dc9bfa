// Package color wraps fatih/color with the handful of foreground colors used for highlighting
// names, paths and counts in log lines and the run summary.
package color

import (
	fcolor "github.com/fatih/color"
)

var (
	FgRed     = fcolor.New(fcolor.FgRed).SprintFunc()
	FgGreen   = fcolor.New(fcolor.FgGreen).SprintFunc()
	FgYellow  = fcolor.New(fcolor.FgYellow).SprintFunc()
	FgMagenta = fcolor.New(fcolor.FgMagenta).SprintFunc()
	FgCyan    = fcolor.New(fcolor.FgCyan).SprintFunc()
)

// Disable turns off all escape sequences, e.g. when stdout is not a terminal.
func Disable() {
	fcolor.NoColor = true
}
