package tui

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPopulation renders a population with locale digit grouping.
func FormatPopulation(tag language.Tag, n int64) string {
	return message.NewPrinter(tag).Sprintf("%d", n)
}

// truncate shortens s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
