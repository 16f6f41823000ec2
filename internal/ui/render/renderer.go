package render

import (
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/notetree/internal/config"
	"github.com/kk-code-lab/notetree/internal/pathset"
	statepkg "github.com/kk-code-lab/notetree/internal/state"
	"github.com/kk-code-lab/notetree/internal/textutil"
)

const minTreeWidth = 16

// Renderer draws a ViewState onto a tcell screen.
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	title            string
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a renderer; title is shown in the header, usually
// the vault name.
func NewRenderer(screen tcell.Screen, title string) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		title:  title,
	}
}

// Render draws the whole panel. It updates the scroll offsets kept in v.
func (r *Renderer) Render(s *statepkg.ViewState, v *View) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if w <= 0 || h <= 0 || s == nil {
		r.screen.Show()
		return
	}

	r.drawHeader(s, w)
	if h > 2 {
		r.drawBody(s, v, 0, 1, w, h-2)
	}
	if h > 1 {
		r.drawStatusLine(s, v, w, h)
	}

	r.screen.Show()
}

func (r *Renderer) drawBody(s *statepkg.ViewState, v *View, x, y, w, h int) {
	tree, list := Panes(s)
	switch {
	case tree && list && s.Options.Layout == config.LayoutVertical:
		treeW := w / 3
		if treeW < minTreeWidth {
			treeW = minTreeWidth
		}
		if treeW >= w-1 {
			r.drawList(s, v, x, y, w, h)
			return
		}
		r.drawTree(s, v, x, y, treeW, h)
		sep := tcell.StyleDefault.Foreground(r.theme.SeparatorFg)
		for row := y; row < y+h; row++ {
			r.screen.SetContent(x+treeW, row, '│', nil, sep)
		}
		r.drawList(s, v, x+treeW+1, y, w-treeW-1, h)

	case tree && list:
		treeH := h / 2
		if treeH < 1 {
			r.drawList(s, v, x, y, w, h)
			return
		}
		r.drawTree(s, v, x, y, w, treeH)
		sep := tcell.StyleDefault.Foreground(r.theme.SeparatorFg)
		for col := x; col < x+w; col++ {
			r.screen.SetContent(col, y+treeH, '─', nil, sep)
		}
		r.drawList(s, v, x, y+treeH+1, w, h-treeH-1)

	case tree:
		r.drawTree(s, v, x, y, w, h)

	default:
		r.drawList(s, v, x, y, w, h)
	}
}

// drawHeader renders the top bar with the title and the focused folder.
func (r *Renderer) drawHeader(s *statepkg.ViewState, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)

	x := r.drawTextLine(0, 0, w, "notetree", style.Bold(true))
	if r.title != "" && x < w {
		x = r.drawTextLine(x, 0, w-x, " "+textutil.SanitizeName(r.title), style)
	}

	if x+1 < w {
		x = r.drawTextLine(x, 0, w-x, " ", style)
		crumb := fitLeft(breadcrumb(s.FocusedFolder), w-x)
		x = r.drawTextLine(x, 0, w-x, crumb, style.Bold(true))
	}
	r.fill(x, 0, w, style)
}

func breadcrumb(folder string) string {
	if folder == "" || folder == pathset.Root {
		return pathset.Root
	}
	parts := strings.Split(strings.TrimPrefix(folder, "/"), "/")
	for i, part := range parts {
		parts[i] = textutil.SanitizeName(part)
	}
	return "/ " + strings.Join(parts, " › ")
}

func (r *Renderer) drawTree(s *statepkg.ViewState, v *View, x, y, w, h int) {
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.FolderFg)
	rows := TreeRows(s)
	v.treeTop = scrollTop(v.TreeCursor, v.treeTop, h, len(rows))
	focused := v.Pane == PaneTree

	for i := 0; i < h; i++ {
		idx := v.treeTop + i
		if idx >= len(rows) {
			r.fill(x, y+i, x+w, tcell.StyleDefault)
			continue
		}
		row := rows[idx]

		style := base
		if row.Active {
			style = style.Foreground(r.theme.ActiveFg).Bold(true)
		}
		if idx == v.TreeCursor {
			style = r.cursorStyle(style, focused)
		}

		marker := "  "
		if row.HasChildren {
			marker = "▸ "
			if row.Open {
				marker = "▾ "
			}
		}
		label := strings.Repeat("  ", row.Depth) + marker + textutil.SanitizeName(row.Name)

		count := ""
		if s.Options.FolderCount {
			n := row.Total
			if row.Open {
				n = row.Count
			}
			if n > 0 {
				count = " " + strconv.Itoa(n) + " "
			}
		}

		nameW := w - textutil.Width(count)
		if nameW < 0 {
			count, nameW = "", w
		}
		end := r.drawCell(x, y+i, nameW, label, style)
		if count != "" {
			countStyle := style
			if idx != v.TreeCursor {
				countStyle = countStyle.Foreground(r.theme.CountFg).Bold(false)
			}
			r.drawTextLine(end, y+i, w-nameW, count, countStyle)
		}
	}
}

func (r *Renderer) drawList(s *statepkg.ViewState, v *View, x, y, w, h int) {
	rows := ListRows(s)
	if len(rows) == 0 {
		if h > 0 {
			placeholder := tcell.StyleDefault.Foreground(r.theme.PlaceholderFg)
			r.drawCell(x, y, w, " No files", placeholder)
		}
		for i := 1; i < h; i++ {
			r.fill(x, y+i, x+w, tcell.StyleDefault)
		}
		return
	}

	v.listTop = scrollTop(v.ListCursor, v.listTop, h, len(rows))
	focused := v.Pane == PaneList

	for i := 0; i < h; i++ {
		idx := v.listTop + i
		if idx >= len(rows) {
			r.fill(x, y+i, x+w, tcell.StyleDefault)
			continue
		}
		row := rows[idx]
		entry := row.Entry

		style := tcell.StyleDefault.Foreground(r.theme.FileFg)
		if !entry.IsNote() {
			style = style.Foreground(r.theme.OtherFileFg)
		}
		if row.Pinned {
			style = style.Foreground(r.theme.PinnedFg)
		}
		if row.Active {
			style = style.Foreground(r.theme.ActiveFg).Bold(true)
		}
		if idx == v.ListCursor {
			style = r.cursorStyle(style, focused)
		}

		marker := "  "
		if row.Pinned {
			marker = "• "
		}
		label := " " + marker + textutil.SanitizeName(entry.Name)

		location := ""
		if entry.ParentPath != s.ActiveFolderPath {
			location = "  " + textutil.SanitizeName(entry.ParentPath)
		}

		end := r.drawTextLine(x, y+i, w, textutil.Truncate(label, w), style)
		if location != "" && end < x+w {
			locStyle := style
			if idx != v.ListCursor {
				locStyle = locStyle.Foreground(r.theme.CountFg).Bold(false)
			}
			end = r.drawTextLine(end, y+i, x+w-end, textutil.Truncate(location, x+w-end), locStyle)
		}
		r.fill(end, y+i, x+w, style)
	}
}

func (r *Renderer) cursorStyle(style tcell.Style, focused bool) tcell.Style {
	if focused {
		return style.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	}
	return style.Background(r.theme.UnfocusedBg)
}

// drawStatusLine shows the newest notice, or key hints when there is none.
func (r *Renderer) drawStatusLine(s *statepkg.ViewState, v *View, w, h int) {
	y := h - 1
	if n := len(s.Notices); n > 0 {
		style := tcell.StyleDefault.Background(r.theme.NoticeBg).Foreground(r.theme.NoticeFg)
		r.drawCell(0, y, w, " "+textutil.SanitizeName(s.Notices[n-1]), style)
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.drawCell(0, y, w, buildHelpText(s, v), style)
}
