package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode describes how much the terminal can render.
type OutputMode int

// Output modes.
const (
	// OutputModePlain writes unstyled text, for pipes and files.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled text without interaction.
	OutputModeStyled
	// OutputModeInteractive runs the full TUI.
	OutputModeInteractive
)

func (o OutputMode) String() string {
	switch o {
	case OutputModeInteractive:
		return "interactive"
	case OutputModeStyled:
		return "styled"
	default:
		return "plain"
	}
}

// DetectOutputMode picks a mode from stdout, stdin and the environment.
// NO_COLOR and TERM=dumb force plain output; a terminal stdout without a
// terminal stdin gets styled output.
func DetectOutputMode(forcePlain bool) OutputMode {
	return detectOutputMode(forcePlain, isTerminal(os.Stdout), isTerminal(os.Stdin), os.Getenv)
}

func detectOutputMode(forcePlain, stdoutTTY, stdinTTY bool, getenv func(string) string) OutputMode {
	if forcePlain || getenv("NO_COLOR") != "" || getenv("TERM") == "dumb" || !stdoutTTY {
		return OutputModePlain
	}
	if !stdinTTY {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the width of stdout, or defaultWidth when it is not
// a terminal.
func TerminalWidth() int {
	if !isTerminal(os.Stdout) {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
