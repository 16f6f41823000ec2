package state

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kk-code-lab/notetree/internal/config"
	"github.com/kk-code-lab/notetree/internal/events"
	"github.com/kk-code-lab/notetree/internal/fs"
	"github.com/kk-code-lab/notetree/internal/settings"
)

var testKeys = settings.NewKeys("test")

type fixture struct {
	t       *testing.T
	vault   *fs.MemVault
	store   *settings.MemoryStore
	reducer *Reducer
	state   *ViewState
	pending []fs.ChangeEvent
	emitted []events.Event
}

func defaultOptions() Options {
	return Options{SortBy: config.SortName, CountMode: config.CountNotes, Layout: config.LayoutDisabled}
}

// newFixture builds a vault from paths; a trailing slash marks a folder.
func newFixture(t *testing.T, opts Options, paths ...string) *fixture {
	t.Helper()

	vault := fs.NewMemVault()
	for _, p := range paths {
		var err error
		if strings.HasSuffix(p, "/") {
			_, err = vault.AddFolder(strings.TrimSuffix(p, "/"))
		} else {
			_, err = vault.AddFile(p, 1)
		}
		if err != nil {
			t.Fatalf("seed %s: %v", p, err)
		}
	}

	f := &fixture{t: t, vault: vault, store: settings.NewMemoryStore()}
	vault.Subscribe(func(ev fs.ChangeEvent) { f.pending = append(f.pending, ev) })
	f.reducer = NewReducer(Deps{
		Storage: vault,
		Store:   f.store,
		Keys:    testKeys,
		Emit:    func(ev events.Event) { f.emitted = append(f.emitted, ev) },
	})
	f.state = NewViewState(opts)
	f.state.FolderTree = f.reducer.buildTree(f.state)
	return f
}

func (f *fixture) dispatch(action Action) {
	f.t.Helper()
	if _, err := f.reducer.Reduce(f.state, action); err != nil {
		f.t.Fatalf("reduce %T: %v", action, err)
	}
}

// flush feeds every change the vault reported since the last flush.
func (f *fixture) flush() {
	f.t.Helper()
	pending := f.pending
	f.pending = nil
	for _, ev := range pending {
		f.dispatch(VaultChangeAction{Change: ev})
	}
}

func (f *fixture) selectFolder(p string) {
	f.t.Helper()
	f.dispatch(SelectFolderAction{Path: p})
	if f.state.ActiveFolderPath != p {
		f.t.Fatalf("expected active folder %s, got %q", p, f.state.ActiveFolderPath)
	}
}

func (f *fixture) must(err error) {
	f.t.Helper()
	if err != nil {
		f.t.Fatalf("vault mutation failed: %v", err)
	}
}

func (f *fixture) mustEntry(_ fs.Entry, err error) {
	f.t.Helper()
	f.must(err)
}

func listPaths(entries []fs.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func expectPaths(t *testing.T, entries []fs.Entry, want ...string) {
	t.Helper()
	got := listPaths(entries)
	if len(want) == 0 {
		want = []string{}
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
