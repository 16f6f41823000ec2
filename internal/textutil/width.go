package textutil

import "github.com/mattn/go-runewidth"

// Ellipsis marks text cut by Truncate.
const Ellipsis = "…"

// Width reports the number of terminal cells s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most max cells, ending with an ellipsis when
// anything was cut. Wide runes are never split.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max <= runewidth.StringWidth(Ellipsis) {
		return runewidth.Truncate(s, max, "")
	}
	return runewidth.Truncate(s, max, Ellipsis)
}

// Fit truncates s to width cells and pads it with spaces to exactly width.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(Truncate(s, width), width)
}
