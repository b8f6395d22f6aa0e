package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how table output is presented.
type OutputMode int

const (
	// OutputModePlain writes tab-aligned text with no styling.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss cards.
	OutputModeStyled
)

// defaultWidth is used when the terminal size cannot be read.
const defaultWidth = 80

// DetectOutputMode picks styled output only for an interactive stdout with
// colors allowed. forcePlain (--plain) and NO_COLOR always win.
func DetectOutputMode(forcePlain bool) OutputMode {
	if forcePlain || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return OutputModePlain
	}
	return OutputModeStyled
}

// TerminalWidth returns the stdout width, or 80 when it is not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
