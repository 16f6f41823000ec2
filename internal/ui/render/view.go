package render

import (
	"github.com/kk-code-lab/notetree/internal/fs"
	statepkg "github.com/kk-code-lab/notetree/internal/state"
)

// Pane identifies the half of the panel that owns the cursor.
type Pane int

const (
	PaneTree Pane = iota
	PaneList
)

// View holds cursor and scroll positions. It is presentation-only state
// owned by the UI goroutine and never stored in the ViewState.
type View struct {
	Pane       Pane
	TreeCursor int
	ListCursor int

	treeTop int
	listTop int
}

// Panes reports which panes are visible for s.
func Panes(s *statepkg.ViewState) (tree, list bool) {
	if s == nil || s.Mode == statepkg.ModeFolder {
		return true, false
	}
	if s.Options.Layout.Split() {
		return true, true
	}
	return false, true
}

// Sync moves the cursor onto a visible pane and clamps both cursors to
// the current rows. A pending scroll target moves the cursors onto the
// revealed rows; Sync reports whether it consumed one.
func (v *View) Sync(s *statepkg.ViewState) bool {
	tree, list := Panes(s)
	if v.Pane == PaneTree && !tree {
		v.Pane = PaneList
	}
	if v.Pane == PaneList && !list {
		v.Pane = PaneTree
	}

	trows := TreeRows(s)
	lrows := ListRows(s)

	consumed := false
	if s != nil && !s.ScrollTarget.IsZero() {
		if idx := treeIndex(trows, s.ScrollTarget.Folder); idx >= 0 {
			v.TreeCursor = idx
		}
		if idx := listIndex(lrows, s.ScrollTarget.File); idx >= 0 {
			v.ListCursor = idx
			if list {
				v.Pane = PaneList
			}
		}
		consumed = true
	}

	v.TreeCursor = clampCursor(v.TreeCursor, len(trows))
	v.ListCursor = clampCursor(v.ListCursor, len(lrows))
	return consumed
}

// Move shifts the cursor of the focused pane by delta rows.
func (v *View) Move(s *statepkg.ViewState, delta int) {
	if v.Pane == PaneTree {
		v.TreeCursor = clampCursor(v.TreeCursor+delta, len(TreeRows(s)))
		return
	}
	v.ListCursor = clampCursor(v.ListCursor+delta, len(ListRows(s)))
}

// Home moves the cursor to the first or last row of the focused pane.
func (v *View) Home(s *statepkg.ViewState, end bool) {
	target := 0
	if end {
		target = 1 << 30
	}
	if v.Pane == PaneTree {
		v.TreeCursor = clampCursor(target, len(TreeRows(s)))
		return
	}
	v.ListCursor = clampCursor(target, len(ListRows(s)))
}

// SwitchPane moves focus to the other pane when both are visible.
func (v *View) SwitchPane(s *statepkg.ViewState) bool {
	tree, list := Panes(s)
	if !tree || !list {
		return false
	}
	if v.Pane == PaneTree {
		v.Pane = PaneList
	} else {
		v.Pane = PaneTree
	}
	return true
}

// SelectedFolder returns the tree row under the cursor.
func (v *View) SelectedFolder(s *statepkg.ViewState) (TreeRow, bool) {
	rows := TreeRows(s)
	if v.TreeCursor < 0 || v.TreeCursor >= len(rows) {
		return TreeRow{}, false
	}
	return rows[v.TreeCursor], true
}

// SelectedFile returns the file under the list cursor.
func (v *View) SelectedFile(s *statepkg.ViewState) (fs.Entry, bool) {
	rows := ListRows(s)
	if v.ListCursor < 0 || v.ListCursor >= len(rows) {
		return fs.Entry{}, false
	}
	return rows[v.ListCursor].Entry, true
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// scrollTop returns the first visible row so cursor stays within height
// rows, moving top as little as possible.
func scrollTop(cursor, top, height, total int) int {
	if height <= 0 {
		return 0
	}
	if cursor < top {
		top = cursor
	}
	if cursor >= top+height {
		top = cursor - height + 1
	}
	if maxTop := total - height; top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	return top
}
