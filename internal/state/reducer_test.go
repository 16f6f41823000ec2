package state

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kk-code-lab/notetree/internal/events"
	"github.com/kk-code-lab/notetree/internal/fs"
)

func TestSelectFolderOutsideFocusResetsFocus(t *testing.T) {
	f := newFixture(t, defaultOptions(), "/Projects/P.md", "/Notes/A.md")
	f.dispatch(FocusFolderAction{Path: "/Projects"})

	f.dispatch(SelectFolderAction{Path: "/Notes"})

	if f.state.FocusedFolder != "/" || f.state.ActiveFolderPath != "/Notes" {
		t.Fatalf("expected root focus and /Notes active, got %q %q", f.state.FocusedFolder, f.state.ActiveFolderPath)
	}
}

func TestSelectMissingFolderIsIgnored(t *testing.T) {
	f := newFixture(t, defaultOptions(), "/Notes/A.md")
	f.dispatch(SelectFolderAction{Path: "/Nope"})
	f.dispatch(SelectFolderAction{Path: "/Notes/A.md"})
	f.dispatch(FocusFolderAction{Path: "/Nope"})

	if f.state.ActiveFolderPath != "" || f.state.FocusedFolder != "/" {
		t.Fatalf("expected untouched state, got %q %q", f.state.ActiveFolderPath, f.state.FocusedFolder)
	}
}

func TestToggleFolder(t *testing.T) {
	f := newFixture(t, defaultOptions(), "/Notes/Sub/")

	f.dispatch(ToggleFolderAction{Path: "/Notes"})
	f.dispatch(ToggleFolderAction{Path: "/Notes/Sub"})
	f.dispatch(ToggleFolderAction{Path: "/Missing"})
	if got := f.state.OpenFolderList(); !reflect.DeepEqual(got, []string{"/Notes", "/Notes/Sub"}) {
		t.Fatalf("unexpected open folders %v", got)
	}

	f.dispatch(ToggleFolderAction{Path: "/Notes"})
	if saved, _ := f.store.Get(testKeys.OpenFolders); saved != `["/Notes/Sub"]` {
		t.Fatalf("expected persisted open folders, got %s", saved)
	}
}

func TestTogglePin(t *testing.T) {
	f := newFixture(t, defaultOptions(), "/Notes/A.md", "/Notes/B.md")

	f.dispatch(TogglePinAction{Path: "/Notes/B.md"})
	f.dispatch(TogglePinAction{Path: "/Notes/A.md"})
	f.dispatch(TogglePinAction{Path: "/Notes/Missing.md"})
	if got := f.state.PinnedPaths(); !reflect.DeepEqual(got, []string{"/Notes/B.md", "/Notes/A.md"}) {
		t.Fatalf("unexpected pins %v", got)
	}

	f.dispatch(TogglePinAction{Path: "/Notes/B.md"})
	if saved, _ := f.store.Get(testKeys.PinnedFiles); saved != `["/Notes/A.md"]` {
		t.Fatalf("expected persisted pins, got %s", saved)
	}
}

func TestCreateNewNotePicksFreeName(t *testing.T) {
	f := newFixture(t, defaultOptions(), "/Notes/A.md")
	f.selectFolder("/Notes")

	f.dispatch(CreateNewNoteAction{})
	f.flush()
	f.dispatch(CreateNewNoteAction{})
	f.flush()

	expectPaths(t, f.state.FileList, "/Notes/A.md", "/Notes/Untitled.md", "/Notes/Untitled 1.md")
	if f.state.ActiveFile != "/Notes/Untitled 1.md" {
		t.Fatalf("expected new note active, got %q", f.state.ActiveFile)
	}
}

func TestCreateNewNoteDefaultsToRoot(t *testing.T) {
	f := newFixture(t, defaultOptions())
	f.dispatch(CreateNewNoteAction{})

	if _, ok := f.vault.Lookup("/Untitled.md"); !ok {
		t.Fatalf("expected note created at the root")
	}
}

type readOnlyStorage struct{ fs.Storage }

func TestCreateNewNoteOnReadOnlyStorage(t *testing.T) {
	vault := fs.NewMemVault()
	reducer := NewReducer(Deps{Storage: readOnlyStorage{vault}})
	state := NewViewState(defaultOptions())

	_, err := reducer.Reduce(state, CreateNewNoteAction{})
	if !errors.Is(err, fs.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
}

func TestRefreshViewBumpsRevision(t *testing.T) {
	f := newFixture(t, defaultOptions(), "/Notes/A.md")
	f.selectFolder("/Notes")
	before := f.state.Clone()

	f.dispatch(RefreshViewAction{})

	if f.state.Revision != before.Revision+1 {
		t.Fatalf("expected revision bump")
	}
	if !reflect.DeepEqual(listPaths(f.state.FileList), listPaths(before.FileList)) {
		t.Fatalf("refresh must not touch data")
	}
}

func TestExcludedFolderActions(t *testing.T) {
	f := newFixture(t, defaultOptions(), "/Notes/A.md", "/Archive/")

	f.dispatch(AddExcludedFolderAction{Folder: " Archive "})
	f.dispatch(AddExcludedFolderAction{Folder: "Archive"})
	f.dispatch(AddExcludedFolderAction{Folder: ""})
	if !reflect.DeepEqual(f.state.ExcludedFolders, []string{"Archive"}) {
		t.Fatalf("unexpected exclusions %v", f.state.ExcludedFolders)
	}
	if f.state.FolderTree.Contains("/Archive") {
		t.Fatalf("expected excluded folder hidden from the tree")
	}

	f.dispatch(RemoveExcludedFolderAction{Folder: "Archive"})
	if len(f.state.ExcludedFolders) != 0 || !f.state.FolderTree.Contains("/Archive") {
		t.Fatalf("expected exclusion removed, got %v", f.state.ExcludedFolders)
	}
}

func TestSetExcludedExtensionsParsesList(t *testing.T) {
	f := newFixture(t, defaultOptions(), "/Notes/A.md")
	f.dispatch(SetExcludedExtensionsAction{Raw: ".PNG, pdf,, "})

	if !reflect.DeepEqual(f.state.ExcludedExtensions, []string{"png", "pdf"}) {
		t.Fatalf("unexpected extensions %v", f.state.ExcludedExtensions)
	}
}

func TestNoticesAreBounded(t *testing.T) {
	f := newFixture(t, defaultOptions())
	for i := 0; i < maxNotices+3; i++ {
		f.dispatch(RevealFileAction{Path: "/missing.md"})
	}
	if len(f.state.Notices) != maxNotices {
		t.Fatalf("expected %d notices, got %d", maxNotices, len(f.state.Notices))
	}
	f.dispatch(ClearNoticesAction{})
	if len(f.state.Notices) != 0 {
		t.Fatalf("expected notices cleared")
	}
}

func TestNoticeActionPublishes(t *testing.T) {
	f := newFixture(t, defaultOptions())
	f.dispatch(NoticeAction{Message: "editor failed"})
	f.dispatch(NoticeAction{})

	if len(f.state.Notices) != 1 || f.state.Notices[0] != "editor failed" {
		t.Fatalf("unexpected notices %v", f.state.Notices)
	}
	if len(f.emitted) != 1 || f.emitted[0].Name != events.Notice {
		t.Fatalf("expected one notice event, got %+v", f.emitted)
	}
}

func TestUnknownAction(t *testing.T) {
	f := newFixture(t, defaultOptions())
	if _, err := f.reducer.Reduce(f.state, struct{}{}); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := newFixture(t, defaultOptions(), "/Notes/A.md")
	f.selectFolder("/Notes")
	f.dispatch(ToggleFolderAction{Path: "/Notes"})

	snap := f.state.Clone()
	f.dispatch(ToggleFolderAction{Path: "/Notes"})
	f.mustEntry(f.vault.AddFile("/Notes/B.md", 1))
	f.flush()

	if !snap.IsOpen("/Notes") || len(snap.FileList) != 1 {
		t.Fatalf("snapshot changed with the live state")
	}
}
