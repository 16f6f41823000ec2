package state

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kk-code-lab/notetree/internal/config"
	"github.com/kk-code-lab/notetree/internal/events"
	"github.com/kk-code-lab/notetree/internal/fs"
	"github.com/kk-code-lab/notetree/internal/pathset"
	"github.com/kk-code-lab/notetree/internal/settings"
)

// maxUntitled bounds the search for a free "Untitled N.md" name.
const maxUntitled = 1000

// Deps are the collaborators a Reducer reads from and writes to.
type Deps struct {
	Storage fs.Storage
	Store   settings.Store
	Keys    settings.Keys
	// Config receives exclusion edits. Nil keeps them in memory only.
	Config *config.Config
	// Emit publishes outbound signals (scrollIntoView, notice). Optional.
	Emit   func(events.Event)
	Logger *zap.Logger
}

// Reducer handles all state mutations
type Reducer struct {
	storage fs.Storage
	store   settings.Store
	keys    settings.Keys
	cfg     *config.Config
	emit    func(events.Event)
	logger  *zap.Logger
	hooks   map[Field]fieldHook
}

// NewReducer creates a new reducer
func NewReducer(deps Deps) *Reducer {
	r := &Reducer{
		storage: deps.Storage,
		store:   deps.Store,
		keys:    deps.Keys,
		cfg:     deps.Config,
		emit:    deps.Emit,
		logger:  deps.Logger,
	}
	if r.store == nil {
		r.store = settings.NewMemoryStore()
	}
	if r.keys == (settings.Keys{}) {
		r.keys = settings.NewKeys("default")
	}
	if r.emit == nil {
		r.emit = func(events.Event) {}
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	r.installHooks()
	return r
}

// Reduce applies an action to the state. Failures the panel can absorb
// (stale paths, missing targets) leave a valid state and return nil; the
// returned error reports infrastructure failures such as a store write.
func (r *Reducer) Reduce(state *ViewState, action Action) (*ViewState, error) {
	switch a := action.(type) {

	// ===== VAULT =====

	case VaultChangeAction:
		return state, r.reconcile(state, a.Change)

	// ===== NAVIGATION =====

	case SelectFolderAction:
		folder, ok := fs.LookupFolder(r.storage, a.Path)
		if !ok {
			r.logger.Debug("select ignored, folder not found", zap.String("path", a.Path))
			return state, nil
		}
		if !pathset.IsWithin(folder.Path, state.FocusedFolder) {
			if err := r.Apply(state, FocusedFolderChange{Path: pathset.Root}); err != nil {
				return state, err
			}
		}
		return state, r.Apply(state, ActiveFolderPathChange{Path: folder.Path})

	case FocusFolderAction:
		folder, ok := fs.LookupFolder(r.storage, a.Path)
		if !ok {
			r.logger.Debug("focus ignored, folder not found", zap.String("path", a.Path))
			return state, nil
		}
		return state, r.Apply(state, FocusedFolderChange{Path: folder.Path})

	case SetViewModeAction:
		if state.Mode == a.Mode {
			return state, nil
		}
		return state, r.Apply(state, ModeChange{Mode: a.Mode})

	case ToggleFolderAction:
		p := pathset.Clean(a.Path)
		open := copySet(state.OpenFolders)
		if _, ok := open[p]; ok {
			delete(open, p)
		} else {
			if _, ok := fs.LookupFolder(r.storage, p); !ok {
				return state, nil
			}
			open[p] = struct{}{}
		}
		return state, r.Apply(state, OpenFoldersChange{Folders: open})

	// ===== FILES =====

	case RevealFileAction:
		return state, r.reveal(state, a.Path)

	case ActiveFileChangeAction:
		file, ok := fs.LookupFile(r.storage, a.Path)
		if !ok {
			r.logger.Debug("active file not found", zap.String("path", a.Path))
			return state, nil
		}
		return state, r.Apply(state, ActiveFileChange{Path: file.Path})

	case TogglePinAction:
		p := pathset.Clean(a.Path)
		if state.IsPinned(p) {
			return state, r.Apply(state, PinnedFilesChange{Files: withoutPath(state.PinnedFiles, p)})
		}
		file, ok := fs.LookupFile(r.storage, p)
		if !ok {
			return state, nil
		}
		pinned := append(append([]fs.Entry(nil), state.PinnedFiles...), file)
		return state, r.Apply(state, PinnedFilesChange{Files: pinned})

	case CreateNewNoteAction:
		return state, r.createNewNote(state)

	// ===== VIEW =====

	case RefreshViewAction:
		state.Revision++
		return state, nil

	case ClearScrollTargetAction:
		state.ScrollTarget = ScrollTarget{}
		return state, nil

	case ClearNoticesAction:
		state.Notices = nil
		state.Revision++
		return state, nil

	case NoticeAction:
		if a.Message != "" {
			r.notify(state, a.Message)
		}
		return state, nil

	// ===== EXCLUSIONS =====

	case AddExcludedFolderAction:
		folder := strings.TrimSpace(a.Folder)
		if folder == "" || containsString(state.ExcludedFolders, folder) {
			return state, nil
		}
		folders := append(append([]string(nil), state.ExcludedFolders...), folder)
		return state, r.Apply(state, ExcludedFoldersChange{Folders: folders})

	case RemoveExcludedFolderAction:
		folder := strings.TrimSpace(a.Folder)
		if !containsString(state.ExcludedFolders, folder) {
			return state, nil
		}
		folders := make([]string, 0, len(state.ExcludedFolders))
		for _, f := range state.ExcludedFolders {
			if f != folder {
				folders = append(folders, f)
			}
		}
		return state, r.Apply(state, ExcludedFoldersChange{Folders: folders})

	case SetExcludedExtensionsAction:
		exts := settings.ParseDelimitedList(a.Raw)
		for i, ext := range exts {
			exts[i] = strings.ToLower(strings.TrimPrefix(ext, "."))
		}
		return state, r.Apply(state, ExcludedExtensionsChange{Extensions: exts})

	default:
		return state, fmt.Errorf("unknown action: %T", action)
	}
}

// createNewNote creates the first free "Untitled" note in the active
// folder and marks it active. The storage reports the creation as a
// change event, which adds it to the list.
func (r *Reducer) createNewNote(s *ViewState) error {
	creator, ok := r.storage.(fs.Creator)
	if !ok {
		return fmt.Errorf("create note: %w", fs.ErrReadOnly)
	}
	folder := s.ActiveFolderPath
	if folder == "" {
		folder = pathset.Root
	}

	for i := 0; i < maxUntitled; i++ {
		name := "Untitled.md"
		if i > 0 {
			name = fmt.Sprintf("Untitled %d.md", i)
		}
		p := pathset.Join(folder, name)
		if _, taken := r.storage.Lookup(p); taken {
			continue
		}
		entry, err := creator.CreateFile(p)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("create note %s: %w", p, err)
		}
		r.logger.Info("created note", zap.String("path", entry.Path))
		return r.Apply(s, ActiveFileChange{Path: entry.Path})
	}
	return fmt.Errorf("create note in %s: no free name", folder)
}

// notify records a user-visible notice and publishes it.
func (r *Reducer) notify(s *ViewState, msg string) {
	s.addNotice(msg)
	s.Revision++
	r.logger.Info("notice", zap.String("message", msg))
	r.emit(events.Event{Name: events.Notice, Payload: events.NoticePayload{Message: msg}})
}

func copySet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in)+1)
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
