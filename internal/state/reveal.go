package state

import (
	"go.uber.org/zap"

	"github.com/kk-code-lab/notetree/internal/events"
	"github.com/kk-code-lab/notetree/internal/fs"
	"github.com/kk-code-lab/notetree/internal/pathset"
)

// NoActiveFileNotice is shown when a reveal has nothing to reveal.
const NoActiveFileNotice = "No active file"

// reveal makes target visible: focus returns to the vault root, every
// ancestor folder is opened, the file list switches to the parent folder
// and both rows are scrolled into view. An empty target reveals the
// active file.
func (r *Reducer) reveal(s *ViewState, target string) error {
	if target == "" {
		target = s.ActiveFile
	}
	file, ok := fs.LookupFile(r.storage, target)
	if target == "" || !ok {
		r.logger.Debug("reveal target missing", zap.String("path", target))
		r.notify(s, NoActiveFileNotice)
		return nil
	}

	if s.FocusedFolder != pathset.Root {
		if err := r.Apply(s, FocusedFolderChange{Path: pathset.Root}); err != nil {
			return err
		}
	}

	parent := file.ParentPath
	if err := r.Apply(s, ActiveFolderPathChange{Path: parent}); err != nil {
		return err
	}
	if err := r.Apply(s, ActiveFileChange{Path: file.Path}); err != nil {
		return err
	}

	open := copySet(s.OpenFolders)
	for _, folder := range r.ancestorChain(s, parent) {
		if folder != pathset.Root {
			open[folder] = struct{}{}
		}
	}
	if len(open) != len(s.OpenFolders) {
		if err := r.Apply(s, OpenFoldersChange{Folders: open}); err != nil {
			return err
		}
	}

	s.ScrollTarget = ScrollTarget{File: file.Path, Folder: parent}
	r.emit(events.Event{
		Name:    events.ScrollIntoView,
		Payload: events.ScrollPayload{File: file.Path, Folder: parent},
	})
	return nil
}

// ancestorChain returns folder and its ancestors up to the root, following
// the tree's parent indices. Folders hidden from the tree by an exclusion
// fall back to path arithmetic.
func (r *Reducer) ancestorChain(s *ViewState, folder string) []string {
	if chain := s.FolderTree.Chain(folder); chain != nil && s.FolderTree.RootPath() == pathset.Root {
		return chain
	}
	return append([]string{folder}, pathset.Ancestors(folder)...)
}
