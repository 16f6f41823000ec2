package state

import (
	"go.uber.org/zap"

	"github.com/kk-code-lab/notetree/internal/fs"
	"github.com/kk-code-lab/notetree/internal/pathset"
)

// reconcile patches the view for one storage change. File changes edit the
// file list in place; folder changes rebuild the tree.
func (r *Reducer) reconcile(s *ViewState, ev fs.ChangeEvent) error {
	r.logger.Debug("reconcile",
		zap.Stringer("kind", ev.Kind),
		zap.Stringer("entry", ev.Entry.Kind),
		zap.String("path", ev.Entry.Path),
		zap.String("previous", ev.PreviousPath))

	var err error
	if ev.Entry.IsDir() {
		err = r.reconcileFolder(s, ev)
	} else {
		err = r.reconcileFile(s, ev)
	}

	// Content edits never change counts.
	if ev.Kind != fs.ChangeModify && s.Options.FolderCount {
		r.recount(s)
		s.Revision++
	}
	return err
}

func (r *Reducer) reconcileFile(s *ViewState, ev fs.ChangeEvent) error {
	if err := r.retargetFileRefs(s, ev); err != nil {
		return err
	}
	if s.Mode != ModeFile {
		return nil
	}

	entry := ev.Entry
	x := newExclusions(s)

	switch ev.Kind {
	case fs.ChangeCreate:
		if s.inScope(entry, x) && !s.InFileList(entry.Path) {
			return r.Apply(s, FileListChange{Files: appendEntry(s.FileList, entry)})
		}
		return nil

	case fs.ChangeModify:
		if !s.Options.SortBy.DependsOnContent() {
			return nil
		}
		if s.InFileList(entry.Path) {
			return r.Apply(s, FileListChange{Files: r.replaceListed(s, x, entry.Path, entry)})
		}

	case fs.ChangeRename:
		oldPath := ev.PreviousPath
		if oldPath == "" {
			oldPath = entry.Path
		}
		if s.InFileList(oldPath) || s.InFileList(entry.Path) {
			return r.Apply(s, FileListChange{Files: r.replaceListed(s, x, oldPath, entry)})
		}

	case fs.ChangeDelete:
		if s.InFileList(entry.Path) {
			return r.Apply(s, FileListChange{Files: withoutPath(s.FileList, entry.Path)})
		}
		return nil
	}

	// Not listed yet but now inside the visible scope, e.g. moved in.
	if s.inScope(entry, x) {
		return r.Apply(s, FileListChange{Files: appendEntry(s.FileList, entry)})
	}
	return nil
}

// replaceListed drops the entry at oldPath (and at the new path) and
// re-appends entry only when it sits directly in the active folder. Files
// in included sub-folders are not re-appended here.
func (r *Reducer) replaceListed(s *ViewState, x exclusions, oldPath string, entry fs.Entry) []fs.Entry {
	files := withoutPath(s.FileList, oldPath)
	if entry.Path != oldPath {
		files = withoutPath(files, entry.Path)
	}
	if entry.ParentPath == s.ActiveFolderPath && !x.fileExcluded(entry) {
		files = appendEntry(files, entry)
	}
	return files
}

// retargetFileRefs keeps pinned files and the active file pointing at live
// paths across renames and deletes.
func (r *Reducer) retargetFileRefs(s *ViewState, ev fs.ChangeEvent) error {
	switch ev.Kind {
	case fs.ChangeRename:
		if ev.PreviousPath == "" {
			return nil
		}
		if s.ActiveFile == ev.PreviousPath {
			if err := r.Apply(s, ActiveFileChange{Path: ev.Entry.Path}); err != nil {
				return err
			}
		}
		if idx := indexOfPath(s.PinnedFiles, ev.PreviousPath); idx >= 0 {
			pinned := append([]fs.Entry(nil), s.PinnedFiles...)
			pinned[idx] = ev.Entry
			return r.Apply(s, PinnedFilesChange{Files: pinned})
		}

	case fs.ChangeDelete:
		if s.ActiveFile == ev.Entry.Path {
			if err := r.Apply(s, ActiveFileChange{Path: ""}); err != nil {
				return err
			}
		}
		if s.IsPinned(ev.Entry.Path) {
			return r.Apply(s, PinnedFilesChange{Files: withoutPath(s.PinnedFiles, ev.Entry.Path)})
		}
	}
	return nil
}

// reconcileFolder rebuilds the tree from the focused folder and follows a
// renamed or deleted folder with the focus, the active path and the open
// set.
func (r *Reducer) reconcileFolder(s *ViewState, ev fs.ChangeEvent) error {
	switch ev.Kind {
	case fs.ChangeRename:
		if ev.PreviousPath != "" {
			if err := r.followFolderRename(s, ev.PreviousPath, ev.Entry.Path); err != nil {
				return err
			}
		}
	case fs.ChangeDelete:
		if err := r.followFolderDelete(s, ev.Entry.Path); err != nil {
			return err
		}
	}

	s.FolderTree = r.buildTree(s)
	s.Revision++
	return nil
}

func (r *Reducer) followFolderRename(s *ViewState, oldPath, newPath string) error {
	if focus, moved := pathset.Rebase(s.FocusedFolder, oldPath, newPath); moved && s.FocusedFolder != pathset.Root {
		s.FocusedFolder = focus
		if err := r.store.Set(r.keys.FocusedFolder, focus); err != nil {
			return err
		}
	}

	if s.ActiveFolderPath == oldPath || pathset.IsUnder(s.ActiveFolderPath, oldPath) {
		active, _ := pathset.Rebase(s.ActiveFolderPath, oldPath, newPath)
		if err := r.Apply(s, ActiveFolderPathChange{Path: active}); err != nil {
			return err
		}
	}

	open := make(map[string]struct{}, len(s.OpenFolders))
	changed := false
	for p := range s.OpenFolders {
		if rebased, moved := pathset.Rebase(p, oldPath, newPath); moved {
			p = rebased
			changed = true
		}
		open[p] = struct{}{}
	}
	if changed {
		return r.Apply(s, OpenFoldersChange{Folders: open})
	}
	return nil
}

func (r *Reducer) followFolderDelete(s *ViewState, gone string) error {
	if pathset.IsWithin(s.FocusedFolder, gone) && s.FocusedFolder != pathset.Root {
		r.logger.Info("focused folder deleted, focusing root", zap.String("path", gone))
		if err := r.Apply(s, FocusedFolderChange{Path: pathset.Root}); err != nil {
			return err
		}
	} else if s.ActiveFolderPath != "" && pathset.IsWithin(s.ActiveFolderPath, gone) {
		if err := r.Apply(s, ActiveFolderPathChange{Path: ""}); err != nil {
			return err
		}
		if err := r.Apply(s, FileListChange{Files: nil}); err != nil {
			return err
		}
		if err := r.Apply(s, ModeChange{Mode: ModeFolder}); err != nil {
			return err
		}
	}

	open := make(map[string]struct{}, len(s.OpenFolders))
	for p := range s.OpenFolders {
		if !pathset.IsWithin(p, gone) {
			open[p] = struct{}{}
		}
	}
	if len(open) != len(s.OpenFolders) {
		return r.Apply(s, OpenFoldersChange{Folders: open})
	}
	return nil
}

// appendEntry appends without sharing the backing array with the
// previous list, so readers holding the old slice see no change.
func appendEntry(files []fs.Entry, e fs.Entry) []fs.Entry {
	out := make([]fs.Entry, len(files), len(files)+1)
	copy(out, files)
	return append(out, e)
}
