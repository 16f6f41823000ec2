package render

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kk-code-lab/notetree/internal/config"
	"github.com/kk-code-lab/notetree/internal/fs"
)

// SortFiles returns a copy of entries ordered for display. Names compare
// case-insensitively with embedded numbers ordered by value, so "Day 2"
// sorts before "Day 10". Time and size orders put the newest or largest
// file first and fall back to the name order on ties.
func SortFiles(entries []fs.Entry, order config.SortOrder) []fs.Entry {
	out := append([]fs.Entry(nil), entries...)
	col := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)

	byName := func(a, b fs.Entry) int {
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	}

	var less func(a, b fs.Entry) bool
	switch order {
	case config.SortNameRev:
		less = func(a, b fs.Entry) bool { return byName(a, b) > 0 }
	case config.SortLastUpdate:
		less = func(a, b fs.Entry) bool {
			if !a.Modified.Equal(b.Modified) {
				return a.Modified.After(b.Modified)
			}
			return byName(a, b) < 0
		}
	case config.SortCreated:
		less = func(a, b fs.Entry) bool {
			if !a.Created.Equal(b.Created) {
				return a.Created.After(b.Created)
			}
			return byName(a, b) < 0
		}
	case config.SortFileSize:
		less = func(a, b fs.Entry) bool {
			if a.Size != b.Size {
				return a.Size > b.Size
			}
			return byName(a, b) < 0
		}
	default:
		less = func(a, b fs.Entry) bool { return byName(a, b) < 0 }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
