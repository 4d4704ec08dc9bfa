package view

// View writes itself to its output and reports how many lines it wrote.
type View interface {
	Render(width int) (lines int)
}
