package render

import (
	"github.com/kk-code-lab/notetree/internal/fs"
	"github.com/kk-code-lab/notetree/internal/pathset"
	statepkg "github.com/kk-code-lab/notetree/internal/state"
)

// TreeRow is one visible line of the folder tree.
type TreeRow struct {
	Path        string
	Name        string
	Depth       int
	Open        bool
	HasChildren bool
	Count       int
	Total       int
	Active      bool
}

// ListRow is one line of the file list.
type ListRow struct {
	Entry  fs.Entry
	Pinned bool
	Active bool
}

// TreeRows flattens the visible part of the folder tree. The tree root is
// always expanded; every other folder shows its children only when open.
func TreeRows(s *statepkg.ViewState) []TreeRow {
	return treeRows(s, false)
}

func treeRows(s *statepkg.ViewState, expandAll bool) []TreeRow {
	if s == nil {
		return nil
	}
	tree := s.FolderTree
	var rows []TreeRow
	tree.Walk(func(idx, depth int) bool {
		node := tree.Nodes[idx]
		open := depth == 0 || expandAll || s.IsOpen(node.Path)
		name := node.Name
		if depth == 0 && node.Path == pathset.Root {
			name = pathset.Root
		}
		rows = append(rows, TreeRow{
			Path:        node.Path,
			Name:        name,
			Depth:       depth,
			Open:        open && len(node.Children) > 0,
			HasChildren: len(node.Children) > 0,
			Count:       s.FolderFileCounts[node.Path],
			Total:       s.FolderFileTotals[node.Path],
			Active:      node.Path == s.ActiveFolderPath,
		})
		return open
	})
	return rows
}

// ListRows returns pinned files first, in pin order, followed by the
// sorted file list. A pinned file that is also listed appears once.
func ListRows(s *statepkg.ViewState) []ListRow {
	if s == nil {
		return nil
	}
	rows := make([]ListRow, 0, len(s.PinnedFiles)+len(s.FileList))
	for _, e := range s.PinnedFiles {
		rows = append(rows, ListRow{Entry: e, Pinned: true, Active: e.Path == s.ActiveFile})
	}
	for _, e := range SortFiles(s.FileList, s.Options.SortBy) {
		if s.IsPinned(e.Path) {
			continue
		}
		rows = append(rows, ListRow{Entry: e, Active: e.Path == s.ActiveFile})
	}
	return rows
}

func treeIndex(rows []TreeRow, p string) int {
	for i, row := range rows {
		if row.Path == p {
			return i
		}
	}
	return -1
}

func listIndex(rows []ListRow, p string) int {
	for i, row := range rows {
		if row.Entry.Path == p {
			return i
		}
	}
	return -1
}
