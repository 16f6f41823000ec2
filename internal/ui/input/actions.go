package input

// Actions handled by the browse loop itself rather than the reducer.

// QuitAction stops the browse loop.
type QuitAction struct{}

// SuspendAction hands the terminal back to the shell until resumed.
type SuspendAction struct{}

// EditFileAction opens a file in the external editor.
type EditFileAction struct {
	Path string
}
