//go:build windows

package app

import "os"

// Windows has no SIGTSTP/SIGCONT; suspending is a no-op.
func contSignals() []os.Signal {
	return nil
}

func (app *Application) suspendToShell() {
}

func (app *Application) resumeAfterStop() bool {
	return false
}
