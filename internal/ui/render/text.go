package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kk-code-lab/notetree/internal/textutil"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actual := runewidth.RuneWidth(ru)
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actual + 1
			r.runeWidthCacheMu.Unlock()
			return actual
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}
	width := runewidth.RuneWidth(ru)
	r.runeWidthWide.Store(ru, width)
	return width
}

// drawTextLine draws text starting at startX, never past maxWidth cells.
// Zero-width runes are attached to the preceding cell as combining marks.
// It returns the column after the last drawn cell.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		mainc := runes[i]
		w := r.cachedRuneWidth(mainc)
		if w <= 0 {
			w = 1
		}
		if x-startX+w > maxWidth {
			break
		}
		i++

		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}
	return x
}

// fill paints blanks from x up to (not including) maxX.
func (r *Renderer) fill(x, y, maxX int, style tcell.Style) {
	for ; x < maxX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawCell draws a single line fitted to width, padding the remainder.
func (r *Renderer) drawCell(x, y, width int, text string, style tcell.Style) int {
	end := r.drawTextLine(x, y, width, textutil.Truncate(text, width), style)
	r.fill(end, y, x+width, style)
	return x + width
}

// fitLeft keeps the end of text, which for a path is the useful part.
func fitLeft(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if textutil.Width(text) <= width {
		return text
	}
	runes := []rune(text)
	budget := width - textutil.Width(textutil.Ellipsis)
	if budget <= 0 {
		return textutil.Ellipsis
	}
	start := len(runes)
	used := 0
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > budget {
			break
		}
		used += w
		start--
	}
	return textutil.Ellipsis + string(runes[start:])
}
