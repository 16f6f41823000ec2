package state

import (
	"sort"

	"github.com/kk-code-lab/notetree/internal/config"
	"github.com/kk-code-lab/notetree/internal/fs"
	"github.com/kk-code-lab/notetree/internal/pathset"
)

// maxNotices bounds the notice backlog shown by the presentation layer.
const maxNotices = 5

// Mode selects between folder browsing and the flat file list.
type Mode int

const (
	ModeFolder Mode = iota
	ModeFile
)

func (m Mode) String() string {
	if m == ModeFile {
		return "file"
	}
	return "folder"
}

// Options are the configuration values the reconciliation reads.
type Options struct {
	ShowSubFolders bool
	SortBy         config.SortOrder
	FolderCount    bool
	CountMode      config.CountMode
	Layout         config.Layout
}

// OptionsFromConfig copies the relevant configuration values.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{SortBy: config.SortName, CountMode: config.CountNotes, Layout: config.LayoutDisabled}
	}
	return Options{
		ShowSubFolders: cfg.ShowFilesFromSubFolders,
		SortBy:         cfg.SortFilesBy,
		FolderCount:    cfg.FolderCount,
		CountMode:      cfg.FolderCountMode,
		Layout:         cfg.Layout,
	}
}

// ScrollTarget names the rows the presentation layer should bring into view.
type ScrollTarget struct {
	File   string
	Folder string
}

// IsZero reports whether no scroll is pending.
func (t ScrollTarget) IsZero() bool {
	return t.File == "" && t.Folder == ""
}

// ViewState is the single source of truth for the panel. It is owned by
// one panel for its lifetime and only written through Reducer.
type ViewState struct {
	Mode             Mode
	FocusedFolder    string
	ActiveFolderPath string

	// FileList is kept in insertion order; sorting happens on render.
	FileList   []fs.Entry
	FolderTree pathset.Tree

	OpenFolders        map[string]struct{}
	PinnedFiles        []fs.Entry
	ExcludedFolders    []string
	ExcludedExtensions []string

	FolderFileCounts map[string]int
	FolderFileTotals map[string]int

	ActiveFile   string
	ScrollTarget ScrollTarget
	Notices      []string

	Options  Options
	Revision uint64
}

// NewViewState returns an empty state focused on the vault root.
func NewViewState(opts Options) *ViewState {
	return &ViewState{
		Mode:             ModeFolder,
		FocusedFolder:    pathset.Root,
		FolderTree:       pathset.BuildTree(pathset.Root, nil),
		OpenFolders:      make(map[string]struct{}),
		FolderFileCounts: make(map[string]int),
		FolderFileTotals: make(map[string]int),
		Options:          opts,
	}
}

// Clone returns a deep copy safe to hand to readers.
func (s *ViewState) Clone() *ViewState {
	if s == nil {
		return nil
	}
	out := *s
	out.FileList = append([]fs.Entry(nil), s.FileList...)
	out.PinnedFiles = append([]fs.Entry(nil), s.PinnedFiles...)
	out.ExcludedFolders = append([]string(nil), s.ExcludedFolders...)
	out.ExcludedExtensions = append([]string(nil), s.ExcludedExtensions...)
	out.Notices = append([]string(nil), s.Notices...)
	out.OpenFolders = make(map[string]struct{}, len(s.OpenFolders))
	for k := range s.OpenFolders {
		out.OpenFolders[k] = struct{}{}
	}
	out.FolderFileCounts = copyCounts(s.FolderFileCounts)
	out.FolderFileTotals = copyCounts(s.FolderFileTotals)
	// Tree nodes are rebuilt, never mutated, so sharing them is safe.
	return &out
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// IsOpen reports whether folder is expanded in the tree.
func (s *ViewState) IsOpen(folder string) bool {
	_, ok := s.OpenFolders[folder]
	return ok
}

// OpenFolderList returns the open folders in path order.
func (s *ViewState) OpenFolderList() []string {
	out := make([]string, 0, len(s.OpenFolders))
	for p := range s.OpenFolders {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// IsPinned reports whether p is pinned.
func (s *ViewState) IsPinned(p string) bool {
	return indexOfPath(s.PinnedFiles, p) >= 0
}

// PinnedPaths returns the pinned file paths in pin order.
func (s *ViewState) PinnedPaths() []string {
	out := make([]string, len(s.PinnedFiles))
	for i, f := range s.PinnedFiles {
		out[i] = f.Path
	}
	return out
}

// InFileList reports whether p is currently listed.
func (s *ViewState) InFileList(p string) bool {
	return indexOfPath(s.FileList, p) >= 0
}

func (s *ViewState) addNotice(msg string) {
	s.Notices = append(s.Notices, msg)
	if len(s.Notices) > maxNotices {
		s.Notices = s.Notices[len(s.Notices)-maxNotices:]
	}
}

func indexOfPath(entries []fs.Entry, p string) int {
	for i, e := range entries {
		if e.Path == p {
			return i
		}
	}
	return -1
}

func withoutPath(entries []fs.Entry, p string) []fs.Entry {
	idx := indexOfPath(entries, p)
	if idx < 0 {
		return entries
	}
	out := make([]fs.Entry, 0, len(entries)-1)
	out = append(out, entries[:idx]...)
	return append(out, entries[idx+1:]...)
}
