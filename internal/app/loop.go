package app

import (
	"context"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	statepkg "github.com/kk-code-lab/notetree/internal/state"
	inputui "github.com/kk-code-lab/notetree/internal/ui/input"
	renderui "github.com/kk-code-lab/notetree/internal/ui/render"
)

// NoEditorNotice is shown when a file cannot be opened for editing.
const NoEditorNotice = "No editor available"

// NewApplication wires a browser around an initialised screen and a
// mounted panel.
func NewApplication(screen tcell.Screen, panel *Panel, opts Options) *Application {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	view := &renderui.View{}
	actionCh := make(chan statepkg.Action, 16)
	editorCmd, _ := detectEditorCommand()

	return &Application{
		screen:    screen,
		panel:     panel,
		renderer:  renderui.NewRenderer(screen, opts.Title),
		input:     inputui.NewInputHandler(actionCh, view),
		view:      view,
		actionCh:  actionCh,
		osPath:    opts.OSPath,
		editorCmd: editorCmd,
		logger:    logger,
	}
}

// Run processes terminal events, queued panel actions and job-control
// signals until the user quits or ctx is done.
func (app *Application) Run(ctx context.Context) error {
	app.render()
	renderPending := false

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.render()
			renderPending = false
		}

		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-app.panel.Wake():
			if app.panel.Drain() {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
	return nil
}

// render draws the latest snapshot. A scroll target is consumed by the
// view and cleared in the state once it has been shown.
func (app *Application) render() {
	snap := app.panel.Snapshot()
	if app.view.Sync(snap) {
		_ = app.panel.Apply(statepkg.ClearScrollTargetAction{})
	}
	app.input.SetState(snap)
	app.renderer.Render(snap, app.view)
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
		return true
	case *tcell.EventResize:
		app.screen.Sync()
		return true
	case *tcell.EventInterrupt:
		return true
	}
	return false
}

// processActions handles everything the input handler queued for this
// iteration, then any panel actions those produced.
func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			if app.panel.Drain() {
				changed = true
			}
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch a := action.(type) {
	case inputui.QuitAction:
		app.shouldQuit = true
		return false
	case inputui.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case inputui.EditFileAction:
		app.editFile(a.Path)
		return true
	}

	_ = app.panel.Apply(action)
	return true
}

// editFile makes path the active file and opens it in the editor.
func (app *Application) editFile(path string) {
	_ = app.panel.Apply(statepkg.ActiveFileChangeAction{Path: path})

	if app.osPath == nil || len(app.editorCmd) == 0 {
		_ = app.panel.Apply(statepkg.NoticeAction{Message: NoEditorNotice})
		return
	}
	if err := app.openInEditor(app.osPath(path)); err != nil {
		app.logger.Warn("editor failed", zap.String("path", path), zap.Error(err))
		_ = app.panel.Apply(statepkg.NoticeAction{Message: "Editor failed: " + err.Error()})
	}
}
