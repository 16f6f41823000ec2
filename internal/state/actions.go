package state

import "github.com/kk-code-lab/notetree/internal/fs"

// Action is the base interface for all state mutations
type Action interface{}

// ===== VAULT ACTIONS =====

// VaultChangeAction carries one storage mutation into the reconciliation.
type VaultChangeAction struct {
	Change fs.ChangeEvent
}

// ===== NAVIGATION ACTIONS =====

type SelectFolderAction struct {
	Path string
}
type FocusFolderAction struct {
	Path string
}
type SetViewModeAction struct {
	Mode Mode
}
type ToggleFolderAction struct {
	Path string
}

// ===== FILE ACTIONS =====

type RevealFileAction struct {
	Path string
}
type ActiveFileChangeAction struct {
	Path string
}
type TogglePinAction struct {
	Path string
}
type CreateNewNoteAction struct{}

// ===== VIEW ACTIONS =====

type RefreshViewAction struct{}
type ClearScrollTargetAction struct{}
type ClearNoticesAction struct{}

// NoticeAction shows a message raised outside the reducer.
type NoticeAction struct {
	Message string
}

// ===== EXCLUSION ACTIONS =====

type AddExcludedFolderAction struct {
	Folder string
}
type RemoveExcludedFolderAction struct {
	Folder string
}
type SetExcludedExtensionsAction struct {
	Raw string // comma separated
}
