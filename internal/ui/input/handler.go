package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/notetree/internal/pathset"
	statepkg "github.com/kk-code-lab/notetree/internal/state"
	renderui "github.com/kk-code-lab/notetree/internal/ui/render"
)

const pageSize = 10

// InputHandler converts tcell events to Actions. Cursor movement only
// touches the View and never produces an action.
type InputHandler struct {
	actionChan chan statepkg.Action
	view       *renderui.View
	state      *statepkg.ViewState // latest snapshot, read-only
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action, view *renderui.View) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
		view:       view,
	}
}

// SetState sets the snapshot used to resolve the rows under the cursor.
func (ih *InputHandler) SetState(state *statepkg.ViewState) {
	ih.state = state
}

// ProcessEvent handles one terminal event. It returns false when the
// loop should quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- QuitAction{}
		return false

	case tcell.KeyCtrlZ:
		ih.actionChan <- SuspendAction{}

	case tcell.KeyEscape:
		ih.actionChan <- statepkg.ClearNoticesAction{}

	case tcell.KeyUp:
		ih.move(-1)
	case tcell.KeyDown:
		ih.move(1)
	case tcell.KeyPgUp:
		ih.move(-pageSize)
	case tcell.KeyPgDn:
		ih.move(pageSize)
	case tcell.KeyHome:
		ih.home(false)
	case tcell.KeyEnd:
		ih.home(true)

	case tcell.KeyEnter, tcell.KeyRight:
		ih.activate()

	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.back()

	case tcell.KeyTab:
		ih.switchPane()

	case tcell.KeyRune:
		return ih.processRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		ih.actionChan <- QuitAction{}
		return false
	case 'j':
		ih.move(1)
	case 'k':
		ih.move(-1)
	case 'g':
		ih.home(false)
	case 'G':
		ih.home(true)
	case 'l':
		ih.activate()
	case 'h':
		ih.view.Pane = renderui.PaneTree
		ih.actionChan <- statepkg.SetViewModeAction{Mode: statepkg.ModeFolder}
	case ' ':
		if row, ok := ih.folderUnderCursor(); ok && row.HasChildren {
			ih.actionChan <- statepkg.ToggleFolderAction{Path: row.Path}
		}
	case 'f':
		if row, ok := ih.folderUnderCursor(); ok {
			ih.view.TreeCursor = 0
			ih.actionChan <- statepkg.FocusFolderAction{Path: row.Path}
		}
	case 'u':
		if ih.state != nil && ih.state.FocusedFolder != pathset.Root {
			parent := pathset.Parent(ih.state.FocusedFolder)
			ih.actionChan <- statepkg.FocusFolderAction{Path: parent}
		}
	case 'x':
		if row, ok := ih.folderUnderCursor(); ok && row.Path != pathset.Root {
			ih.actionChan <- statepkg.AddExcludedFolderAction{Folder: strings.TrimPrefix(row.Path, "/")}
		}
	case 'p':
		if file, ok := ih.fileUnderCursor(); ok {
			ih.actionChan <- statepkg.TogglePinAction{Path: file}
		}
	case 'e':
		if file, ok := ih.fileUnderCursor(); ok {
			ih.actionChan <- EditFileAction{Path: file}
		} else if ih.state != nil && ih.state.ActiveFile != "" {
			ih.actionChan <- EditFileAction{Path: ih.state.ActiveFile}
		}
	case 'n':
		ih.actionChan <- statepkg.CreateNewNoteAction{}
	case 'r':
		ih.actionChan <- statepkg.RevealFileAction{}
	case 'R':
		ih.actionChan <- statepkg.RefreshViewAction{}
	}
	return true
}

func (ih *InputHandler) move(delta int) {
	if ih.state != nil {
		ih.view.Move(ih.state, delta)
	}
}

func (ih *InputHandler) home(end bool) {
	if ih.state != nil {
		ih.view.Home(ih.state, end)
	}
}

// activate opens the folder under the cursor, or makes the file under the
// cursor the active file.
func (ih *InputHandler) activate() {
	if ih.state == nil {
		return
	}
	if ih.view.Pane == renderui.PaneTree {
		row, ok := ih.view.SelectedFolder(ih.state)
		if !ok {
			return
		}
		ih.view.Pane = renderui.PaneList
		ih.view.ListCursor = 0
		ih.actionChan <- statepkg.SelectFolderAction{Path: row.Path}
		return
	}
	if file, ok := ih.view.SelectedFile(ih.state); ok {
		ih.actionChan <- statepkg.ActiveFileChangeAction{Path: file.Path}
	}
}

func (ih *InputHandler) back() {
	if ih.state == nil {
		return
	}
	if tree, list := renderui.Panes(ih.state); tree && list && ih.view.Pane == renderui.PaneList {
		ih.view.Pane = renderui.PaneTree
		return
	}
	ih.view.Pane = renderui.PaneTree
	ih.actionChan <- statepkg.SetViewModeAction{Mode: statepkg.ModeFolder}
}

func (ih *InputHandler) switchPane() {
	if ih.state == nil || ih.view.SwitchPane(ih.state) {
		return
	}
	switch {
	case ih.state.Mode == statepkg.ModeFile:
		ih.view.Pane = renderui.PaneTree
		ih.actionChan <- statepkg.SetViewModeAction{Mode: statepkg.ModeFolder}
	case ih.state.ActiveFolderPath != "":
		ih.view.Pane = renderui.PaneList
		ih.actionChan <- statepkg.SetViewModeAction{Mode: statepkg.ModeFile}
	}
}

func (ih *InputHandler) folderUnderCursor() (renderui.TreeRow, bool) {
	if ih.state == nil || ih.view.Pane != renderui.PaneTree {
		return renderui.TreeRow{}, false
	}
	return ih.view.SelectedFolder(ih.state)
}

func (ih *InputHandler) fileUnderCursor() (string, bool) {
	if ih.state == nil || ih.view.Pane != renderui.PaneList {
		return "", false
	}
	file, ok := ih.view.SelectedFile(ih.state)
	return file.Path, ok
}
