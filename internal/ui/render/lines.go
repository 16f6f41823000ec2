package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/notetree/internal/state"
	"github.com/kk-code-lab/notetree/internal/textutil"
)

// TreeLines renders the folder tree as indented plain text. With
// expandAll every folder is shown, otherwise only open folders expand.
func TreeLines(s *statepkg.ViewState, expandAll bool) []string {
	rows := treeRows(s, expandAll)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		line := strings.Repeat("  ", row.Depth) + textutil.SanitizeName(row.Name)
		if s.Options.FolderCount {
			line += fmt.Sprintf(" (%d/%d)", row.Count, row.Total)
		}
		lines = append(lines, line)
	}
	return lines
}

// FileLines renders the file list as one vault path per line, pinned
// files first and marked with an asterisk.
func FileLines(s *statepkg.ViewState) []string {
	rows := ListRows(s)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		prefix := "  "
		if row.Pinned {
			prefix = "* "
		}
		lines = append(lines, prefix+textutil.SanitizeName(row.Entry.Path))
	}
	return lines
}
