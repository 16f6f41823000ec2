package app

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	statepkg "github.com/kk-code-lab/notetree/internal/state"
	inputui "github.com/kk-code-lab/notetree/internal/ui/input"
	renderui "github.com/kk-code-lab/notetree/internal/ui/render"
)

// Options configure the interactive browser.
type Options struct {
	// Title is shown in the header, usually the vault name.
	Title string
	// OSPath maps a vault path to a filesystem path for the editor. Nil
	// disables editing.
	OSPath func(string) string
	Logger *zap.Logger
}

// Application is the interactive panel browser.
type Application struct {
	screen     tcell.Screen
	panel      *Panel
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	view       *renderui.View
	actionCh   chan statepkg.Action
	osPath     func(string) string
	editorCmd  []string
	logger     *zap.Logger
	shouldQuit bool
}

// Close releases the screen. The panel is unmounted by its owner.
func (app *Application) Close() error {
	app.screen.Fini()
	return nil
}
