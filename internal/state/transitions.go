package state

import (
	"fmt"

	"github.com/kk-code-lab/notetree/internal/fs"
	"github.com/kk-code-lab/notetree/internal/settings"
)

// Field names a writable ViewState field.
type Field int

const (
	FieldMode Field = iota
	FieldFocusedFolder
	FieldActiveFolderPath
	FieldFileList
	FieldOpenFolders
	FieldPinnedFiles
	FieldExcludedFolders
	FieldExcludedExtensions
	FieldActiveFile
)

var fieldNames = [...]string{
	FieldMode:               "mode",
	FieldFocusedFolder:      "focusedFolder",
	FieldActiveFolderPath:   "activeFolderPath",
	FieldFileList:           "fileList",
	FieldOpenFolders:        "openFolders",
	FieldPinnedFiles:        "pinnedFiles",
	FieldExcludedFolders:    "excludedFolders",
	FieldExcludedExtensions: "excludedExtensions",
	FieldActiveFile:         "activeFile",
}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// FieldChange is a single write to one ViewState field. Writes go through
// Reducer.Apply, which runs the field's on-write hook afterwards.
type FieldChange interface {
	Field() Field
	assign(s *ViewState)
}

type ModeChange struct{ Mode Mode }
type FocusedFolderChange struct{ Path string }
type ActiveFolderPathChange struct{ Path string }
type FileListChange struct{ Files []fs.Entry }
type OpenFoldersChange struct{ Folders map[string]struct{} }
type PinnedFilesChange struct{ Files []fs.Entry }
type ExcludedFoldersChange struct{ Folders []string }
type ExcludedExtensionsChange struct{ Extensions []string }
type ActiveFileChange struct{ Path string }

func (ModeChange) Field() Field               { return FieldMode }
func (FocusedFolderChange) Field() Field      { return FieldFocusedFolder }
func (ActiveFolderPathChange) Field() Field   { return FieldActiveFolderPath }
func (FileListChange) Field() Field           { return FieldFileList }
func (OpenFoldersChange) Field() Field        { return FieldOpenFolders }
func (PinnedFilesChange) Field() Field        { return FieldPinnedFiles }
func (ExcludedFoldersChange) Field() Field    { return FieldExcludedFolders }
func (ExcludedExtensionsChange) Field() Field { return FieldExcludedExtensions }
func (ActiveFileChange) Field() Field         { return FieldActiveFile }

func (c ModeChange) assign(s *ViewState)             { s.Mode = c.Mode }
func (c FocusedFolderChange) assign(s *ViewState)    { s.FocusedFolder = c.Path }
func (c ActiveFolderPathChange) assign(s *ViewState) { s.ActiveFolderPath = c.Path }
func (c FileListChange) assign(s *ViewState)         { s.FileList = c.Files }
func (c PinnedFilesChange) assign(s *ViewState)      { s.PinnedFiles = c.Files }
func (c ActiveFileChange) assign(s *ViewState)       { s.ActiveFile = c.Path }

func (c OpenFoldersChange) assign(s *ViewState) {
	if c.Folders == nil {
		c.Folders = make(map[string]struct{})
	}
	s.OpenFolders = c.Folders
}

func (c ExcludedFoldersChange) assign(s *ViewState) {
	s.ExcludedFolders = c.Folders
}

func (c ExcludedExtensionsChange) assign(s *ViewState) {
	s.ExcludedExtensions = c.Extensions
}

type fieldHook func(s *ViewState) error

func (r *Reducer) installHooks() {
	r.hooks = map[Field]fieldHook{
		FieldMode:               r.afterMode,
		FieldFocusedFolder:      r.afterFocusedFolder,
		FieldActiveFolderPath:   r.afterActiveFolderPath,
		FieldOpenFolders:        r.afterOpenFolders,
		FieldPinnedFiles:        r.afterPinnedFiles,
		FieldExcludedFolders:    r.afterExcludedFolders,
		FieldExcludedExtensions: r.afterExcludedExtensions,
	}
}

// Apply writes change into s and runs the derived recomputation registered
// for the field. It is the only way the reducer mutates persisted fields.
func (r *Reducer) Apply(s *ViewState, change FieldChange) error {
	change.assign(s)
	s.Revision++
	hook := r.hooks[change.Field()]
	if hook == nil {
		return nil
	}
	if err := hook(s); err != nil {
		return fmt.Errorf("%s: %w", change.Field(), err)
	}
	return nil
}

// A non-empty active folder path materializes the file list and switches
// to the file view. The path is persisted either way.
func (r *Reducer) afterActiveFolderPath(s *ViewState) error {
	if s.ActiveFolderPath != "" {
		s.FileList = r.listFiles(s, s.ActiveFolderPath)
		s.Mode = ModeFile
	}
	return r.store.Set(r.keys.ActiveFolderPath, s.ActiveFolderPath)
}

// File events are not reconciled in folder mode, so coming back to the
// file view rebuilds the list of the active folder.
func (r *Reducer) afterMode(s *ViewState) error {
	if s.Mode == ModeFile {
		r.refreshFileList(s)
	}
	return nil
}

// A new focus rebuilds the tree below it and points the file view at it.
func (r *Reducer) afterFocusedFolder(s *ViewState) error {
	s.FolderTree = r.buildTree(s)
	if err := r.store.Set(r.keys.FocusedFolder, s.FocusedFolder); err != nil {
		return err
	}
	return r.Apply(s, ActiveFolderPathChange{Path: s.FocusedFolder})
}

func (r *Reducer) afterOpenFolders(s *ViewState) error {
	return settings.SavePathSet(r.store, r.keys.OpenFolders, s.OpenFolders)
}

func (r *Reducer) afterPinnedFiles(s *ViewState) error {
	return settings.SavePathList(r.store, r.keys.PinnedFiles, s.PinnedPaths())
}

func (r *Reducer) afterExcludedFolders(s *ViewState) error {
	s.FolderTree = r.buildTree(s)
	r.refreshFileList(s)
	if r.cfg == nil {
		return nil
	}
	r.cfg.SetExcludedFolders(s.ExcludedFolders)
	return r.saveConfig()
}

func (r *Reducer) afterExcludedExtensions(s *ViewState) error {
	r.refreshFileList(s)
	r.recount(s)
	if r.cfg == nil {
		return nil
	}
	r.cfg.SetExcludedExtensions(s.ExcludedExtensions)
	return r.saveConfig()
}

func (r *Reducer) refreshFileList(s *ViewState) {
	if s.ActiveFolderPath != "" {
		s.FileList = r.listFiles(s, s.ActiveFolderPath)
	}
}

func (r *Reducer) saveConfig() error {
	if r.cfg.Path == "" {
		return nil
	}
	return r.cfg.Save()
}
