package view

import (
	"strings"
	"unicode/utf8"
)

// TruncateTextToWidth Cuts off front of text and adds ellipsis to indicate that text was shortened. Fills lines with spaces.
// Widths are counted in runes, so text must not contain escape sequences.
func TruncateTextToWidth(width int, out string) string {
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		runes := []rune(line)
		if len(runes) > width {
			if width > 3 {
				lines[i] = "..." + string(runes[len(runes)-width+3:])
			} else {
				lines[i] = string(runes[len(runes)-width:])
			}
		} else {
			lines[i] = padRight(line, width)
		}
	}
	return strings.Join(lines, "\n")
}

// TrimTextToWidth Cuts off end of every line if longer than width. Fills lines to width with spaces.
func TrimTextToWidth(width int, out string) string {
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		runes := []rune(line)
		if len(runes) > width {
			lines[i] = string(runes[:width])
		} else {
			lines[i] = padRight(line, width)
		}
	}
	return strings.Join(lines, "\n")
}

func padRight(line string, width int) string {
	if missing := width - utf8.RuneCountInString(line); missing > 0 {
		return line + strings.Repeat(" ", missing)
	}
	return line
}
