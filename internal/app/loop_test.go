package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/notetree/internal/state"
	inputui "github.com/kk-code-lab/notetree/internal/ui/input"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(40, 8)
	return screen
}

func screenText(screen tcell.Screen) string {
	w, h := screen.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func runApp(t *testing.T, app *Application) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not quit")
	}
}

func TestApplicationQuitsOnQ(t *testing.T) {
	f := newPanelFixture(t, "/Notes/A.md")
	screen := newTestScreen(t)
	app := NewApplication(screen, f.mount(t), Options{Title: "vault"})
	t.Cleanup(func() { _ = app.Close() })

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	runApp(t, app)

	if !app.shouldQuit {
		t.Fatalf("expected quit flag")
	}
}

func TestApplicationSelectsFolderFromKeys(t *testing.T) {
	f := newPanelFixture(t, "/Notes/A.md")
	screen := newTestScreen(t)
	panel := f.mount(t)
	app := NewApplication(screen, panel, Options{Title: "vault"})
	t.Cleanup(func() { _ = app.Close() })

	screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	runApp(t, app)

	snap := panel.Snapshot()
	if snap.ActiveFolderPath != "/Notes" || snap.Mode != statepkg.ModeFile {
		t.Fatalf("active folder = %q mode = %v", snap.ActiveFolderPath, snap.Mode)
	}
	if text := screenText(screen); !strings.Contains(text, "A.md") {
		t.Fatalf("file list not rendered:\n%s", text)
	}
}

func TestApplicationAppliesVaultChanges(t *testing.T) {
	f := newPanelFixture(t, "/Notes/A.md")
	screen := newTestScreen(t)
	panel := f.mount(t)
	if err := panel.Apply(statepkg.SelectFolderAction{Path: "/Notes"}); err != nil {
		t.Fatalf("select: %v", err)
	}
	app := NewApplication(screen, panel, Options{})
	t.Cleanup(func() { _ = app.Close() })

	if _, err := f.vault.AddFile("/Notes/B.md", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	runApp(t, app)

	// The queued change is applied either on wake or while processing
	// the quit key, whichever the loop sees first.
	if !panel.Snapshot().InFileList("/Notes/B.md") {
		t.Fatalf("vault change not applied")
	}
}

func TestRenderConsumesScrollTarget(t *testing.T) {
	f := newPanelFixture(t, "/Notes/Sub/D.md")
	screen := newTestScreen(t)
	panel := f.mount(t)
	app := NewApplication(screen, panel, Options{})
	t.Cleanup(func() { _ = app.Close() })

	if err := panel.Apply(statepkg.RevealFileAction{Path: "/Notes/Sub/D.md"}); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	app.render()

	if !panel.Snapshot().ScrollTarget.IsZero() {
		t.Fatalf("scroll target should be cleared after render")
	}
	if row, ok := app.view.SelectedFile(panel.Snapshot()); !ok || row.Path != "/Notes/Sub/D.md" {
		t.Fatalf("cursor not on revealed file: %+v", row)
	}
}

func TestEditWithoutEditorShowsNotice(t *testing.T) {
	f := newPanelFixture(t, "/A.md")
	screen := newTestScreen(t)
	panel := f.mount(t)
	app := NewApplication(screen, panel, Options{})
	t.Cleanup(func() { _ = app.Close() })

	app.handleAction(inputui.EditFileAction{Path: "/A.md"})

	snap := panel.Snapshot()
	if snap.ActiveFile != "/A.md" {
		t.Fatalf("active file = %q", snap.ActiveFile)
	}
	if n := len(snap.Notices); n == 0 || snap.Notices[n-1] != NoEditorNotice {
		t.Fatalf("notices = %v", snap.Notices)
	}
}
