package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/notetree/internal/state"
)

// buildHelpText returns the footer hint string with leading/trailing padding.
func buildHelpText(s *statepkg.ViewState, v *View) string {
	parts := helpSegments(s, v)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

func helpSegments(s *statepkg.ViewState, v *View) []string {
	if s == nil || v == nil {
		return nil
	}

	var segments []string
	if v.Pane == PaneTree {
		segments = append(segments,
			"↑↓: move",
			"↵: open",
			"space: expand",
			"f: focus",
			"u: unfocus",
			"x: exclude",
		)
	} else {
		segments = append(segments,
			"↑↓: move",
			"↵: select",
			"p: pin",
			"h: folders",
		)
	}

	if tree, list := Panes(s); tree && list {
		segments = append(segments, "tab: switch pane")
	}
	return append(segments, "n: new note", "r: reveal", "q: quit")
}
