package state

import (
	"reflect"
	"testing"

	"github.com/kk-code-lab/notetree/internal/config"
	"github.com/kk-code-lab/notetree/internal/fs"
	"github.com/kk-code-lab/notetree/internal/settings"
)

func newRestoreVault(t *testing.T) *fs.MemVault {
	t.Helper()
	vault := fs.NewMemVault()
	for _, p := range []string{"/Notes/A.md", "/Notes/Sub/D.md", "/Projects/P.md"} {
		if _, err := vault.AddFile(p, 1); err != nil {
			t.Fatalf("seed %s: %v", p, err)
		}
	}
	return vault
}

func TestRestoreDropsStalePaths(t *testing.T) {
	vault := newRestoreVault(t)
	store := settings.NewMemoryStore()
	mustSet(t, store, testKeys.OpenFolders, `["/Notes","/Gone"]`)
	mustSet(t, store, testKeys.PinnedFiles, `["/Notes/A.md","/Gone.md","/Notes"]`)
	mustSet(t, store, testKeys.FocusedFolder, "/Gone")

	reducer := NewReducer(Deps{Storage: vault, Store: store, Keys: testKeys})
	state, err := reducer.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if got := state.OpenFolderList(); !reflect.DeepEqual(got, []string{"/Notes"}) {
		t.Fatalf("expected only live open folders, got %v", got)
	}
	if got := state.PinnedPaths(); !reflect.DeepEqual(got, []string{"/Notes/A.md"}) {
		t.Fatalf("expected only live pinned files, got %v", got)
	}
	if state.FocusedFolder != "/" || state.ActiveFolderPath != "/" || state.Mode != ModeFile {
		t.Fatalf("expected root focus in file mode, got focus=%q active=%q mode=%s",
			state.FocusedFolder, state.ActiveFolderPath, state.Mode)
	}
}

func TestRestoreMalformedListsAreEmpty(t *testing.T) {
	store := settings.NewMemoryStore()
	mustSet(t, store, testKeys.OpenFolders, `{"oops"`)
	mustSet(t, store, testKeys.PinnedFiles, `not json`)

	reducer := NewReducer(Deps{Storage: newRestoreVault(t), Store: store, Keys: testKeys})
	state, err := reducer.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(state.OpenFolders) != 0 || len(state.PinnedFiles) != 0 {
		t.Fatalf("expected empty collections, got %v %v", state.OpenFolderList(), state.PinnedPaths())
	}
}

func TestRestoreFocusAndExclusions(t *testing.T) {
	store := settings.NewMemoryStore()
	mustSet(t, store, testKeys.FocusedFolder, "/Notes")
	cfg := config.Default(t.TempDir())
	cfg.ExcludedFolders = "Notes/Sub"
	cfg.ExcludedExtensions = "png, pdf"

	reducer := NewReducer(Deps{Storage: newRestoreVault(t), Store: store, Keys: testKeys, Config: &cfg})
	state, err := reducer.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if state.FocusedFolder != "/Notes" || state.FolderTree.RootPath() != "/Notes" {
		t.Fatalf("expected restored focus, got %q", state.FocusedFolder)
	}
	if state.FolderTree.Contains("/Notes/Sub") {
		t.Fatalf("expected excluded folder hidden")
	}
	if !reflect.DeepEqual(state.ExcludedExtensions, []string{"png", "pdf"}) {
		t.Fatalf("unexpected extensions %v", state.ExcludedExtensions)
	}
	if state.FolderFileTotals["/"] != 3 {
		t.Fatalf("expected counts computed on restore, got %v", state.FolderFileTotals)
	}
}

func TestRestoreLastActiveFolderOnlyInSplitLayout(t *testing.T) {
	tests := []struct {
		layout config.Layout
		want   string
	}{
		{config.LayoutDisabled, "/"},
		{config.LayoutHorizontal, "/Notes/Sub"},
		{config.LayoutVertical, "/Notes/Sub"},
	}

	for _, tt := range tests {
		t.Run(string(tt.layout), func(t *testing.T) {
			store := settings.NewMemoryStore()
			mustSet(t, store, testKeys.ActiveFolderPath, "/Notes/Sub")
			cfg := config.Default(t.TempDir())
			cfg.Layout = tt.layout

			reducer := NewReducer(Deps{Storage: newRestoreVault(t), Store: store, Keys: testKeys, Config: &cfg})
			state, err := reducer.Restore()
			if err != nil {
				t.Fatalf("restore: %v", err)
			}
			if state.ActiveFolderPath != tt.want {
				t.Fatalf("expected active %q, got %q", tt.want, state.ActiveFolderPath)
			}
		})
	}
}

func mustSet(t *testing.T, store settings.Store, key, value string) {
	t.Helper()
	if err := store.Set(key, value); err != nil {
		t.Fatalf("set %s: %v", key, err)
	}
}
