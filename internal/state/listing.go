package state

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/kk-code-lab/notetree/internal/config"
	"github.com/kk-code-lab/notetree/internal/fs"
	"github.com/kk-code-lab/notetree/internal/pathset"
)

// exclusions matches entries against the excluded folder and extension
// sets. Folder tokens without glob syntax match one folder path exactly;
// tokens such as "Archive/**" are doublestar patterns over vault paths
// without the leading slash.
type exclusions struct {
	exact    map[string]struct{}
	patterns []string
	exts     map[string]struct{}
}

func newExclusions(s *ViewState) exclusions {
	x := exclusions{
		exact: make(map[string]struct{}),
		exts:  make(map[string]struct{}),
	}
	for _, tok := range s.ExcludedFolders {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if strings.ContainsAny(tok, "*?[{") {
			x.patterns = append(x.patterns, strings.Trim(tok, "/"))
			continue
		}
		x.exact[pathset.Clean(tok)] = struct{}{}
	}
	for _, ext := range s.ExcludedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			x.exts[ext] = struct{}{}
		}
	}
	return x
}

func (x exclusions) folderExcluded(p string) bool {
	if _, ok := x.exact[p]; ok {
		return true
	}
	if len(x.patterns) == 0 {
		return false
	}
	rel := strings.TrimPrefix(p, "/")
	for _, pattern := range x.patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func (x exclusions) fileExcluded(e fs.Entry) bool {
	_, ok := x.exts[e.Ext()]
	return ok
}

// hiddenBelow reports whether a folder strictly between root and p's
// parent (inclusive) is excluded.
func (x exclusions) hiddenBelow(p, root string) bool {
	for cur := pathset.Parent(p); cur != "" && pathset.IsUnder(cur, root); cur = pathset.Parent(cur) {
		if x.folderExcluded(cur) {
			return true
		}
	}
	return false
}

// listFiles materializes the file list for folder: its direct files, or
// every file below it when sub-folder files are shown.
func (r *Reducer) listFiles(s *ViewState, folder string) []fs.Entry {
	x := newExclusions(s)
	files := make([]fs.Entry, 0, 16)

	if !s.Options.ShowSubFolders {
		for _, e := range r.storage.Children(folder) {
			if !e.IsDir() && !x.fileExcluded(e) {
				files = append(files, e)
			}
		}
		return files
	}

	fs.Walk(r.storage, folder, func(e fs.Entry) bool {
		if e.IsDir() {
			return !x.folderExcluded(e.Path)
		}
		if !x.fileExcluded(e) {
			files = append(files, e)
		}
		return true
	})
	return files
}

// inScope reports whether a file belongs in the list for the current
// active folder.
func (s *ViewState) inScope(e fs.Entry, x exclusions) bool {
	active := s.ActiveFolderPath
	if active == "" || x.fileExcluded(e) {
		return false
	}
	if e.ParentPath == active {
		return true
	}
	return s.Options.ShowSubFolders && pathset.IsUnder(e.ParentPath, active) && !x.hiddenBelow(e.Path, active)
}

// buildTree enumerates the folders under the focused folder, skipping
// excluded subtrees.
func (r *Reducer) buildTree(s *ViewState) pathset.Tree {
	x := newExclusions(s)
	var folders []string
	fs.Walk(r.storage, s.FocusedFolder, func(e fs.Entry) bool {
		if !e.IsDir() {
			return false
		}
		if x.folderExcluded(e.Path) {
			return false
		}
		folders = append(folders, e.Path)
		return true
	})
	return pathset.BuildTree(s.FocusedFolder, folders)
}

// recount rebuilds the per-folder file counts for the whole vault.
func (r *Reducer) recount(s *ViewState) {
	direct := make(map[string]int)
	totals := make(map[string]int)
	if !s.Options.FolderCount {
		s.FolderFileCounts, s.FolderFileTotals = direct, totals
		return
	}

	x := newExclusions(s)
	fs.Walk(r.storage, pathset.Root, func(e fs.Entry) bool {
		if e.IsDir() {
			return true
		}
		if s.Options.CountMode == config.CountFiles {
			if x.fileExcluded(e) {
				return true
			}
		} else if !e.IsNote() {
			return true
		}
		direct[e.ParentPath]++
		for _, folder := range pathset.Ancestors(e.Path) {
			totals[folder]++
		}
		return true
	})
	s.FolderFileCounts, s.FolderFileTotals = direct, totals
}
