package state

import (
	"go.uber.org/zap"

	"github.com/kk-code-lab/notetree/internal/fs"
	"github.com/kk-code-lab/notetree/internal/pathset"
	"github.com/kk-code-lab/notetree/internal/settings"
)

// Restore builds the initial state from the persisted settings and the
// current storage contents. Persisted paths that no longer resolve are
// dropped; the returned state is always usable even when err is non-nil.
func (r *Reducer) Restore() (*ViewState, error) {
	s := NewViewState(OptionsFromConfig(r.cfg))
	if r.cfg != nil {
		s.ExcludedFolders = r.cfg.ExcludedFolderList()
		s.ExcludedExtensions = r.cfg.ExcludedExtensionList()
	}

	for _, p := range settings.LoadPathList(r.store, r.keys.PinnedFiles, r.isFile, r.logger) {
		if file, ok := fs.LookupFile(r.storage, p); ok {
			s.PinnedFiles = append(s.PinnedFiles, file)
		}
	}
	for _, p := range settings.LoadPathList(r.store, r.keys.OpenFolders, r.isFolder, r.logger) {
		s.OpenFolders[p] = struct{}{}
	}

	focus := pathset.Root
	if saved, ok := r.store.Get(r.keys.FocusedFolder); ok && saved != "" {
		if folder, ok := fs.LookupFolder(r.storage, saved); ok {
			focus = folder.Path
		} else {
			r.logger.Debug("dropping stale focused folder", zap.String("path", saved))
		}
	}

	// The last active folder is only meaningful when both panes are shown.
	lastActive, _ := r.store.Get(r.keys.ActiveFolderPath)

	if err := r.Apply(s, FocusedFolderChange{Path: focus}); err != nil {
		return s, err
	}
	if s.Options.Layout.Split() && lastActive != "" && lastActive != focus {
		if folder, ok := fs.LookupFolder(r.storage, lastActive); ok && pathset.IsWithin(folder.Path, focus) {
			if err := r.Apply(s, ActiveFolderPathChange{Path: folder.Path}); err != nil {
				return s, err
			}
		}
	}
	r.recount(s)
	return s, nil
}

func (r *Reducer) isFile(p string) bool {
	_, ok := fs.LookupFile(r.storage, p)
	return ok
}

func (r *Reducer) isFolder(p string) bool {
	_, ok := fs.LookupFolder(r.storage, p)
	return ok
}
