package app

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// execCommand is swapped in tests.
var execCommand = exec.Command

func detectEditorCommand() ([]string, bool) {
	return detectEditor(runtime.GOOS, os.Getenv, exec.LookPath)
}

// detectEditor prefers $VISUAL, then $EDITOR, then a platform default.
func detectEditor(goos string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		args := splitCommand(getenv(name))
		if len(args) == 0 {
			continue
		}
		if resolved, err := lookPath(args[0]); err == nil {
			args[0] = resolved
			return args, true
		}
	}

	defaults := [][]string{{"vim"}, {"vi"}, {"nano"}}
	if strings.EqualFold(goos, "windows") {
		defaults = [][]string{{"code", "--wait"}, {"notepad.exe"}}
	}
	for _, def := range defaults {
		if resolved, err := lookPath(def[0]); err == nil {
			return append([]string{resolved}, def[1:]...), true
		}
	}
	return nil, false
}

// splitCommand splits an editor command line on whitespace, honoring
// single and double quotes. A leading ~ in the program is expanded.
func splitCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	var quote rune
	for _, r := range cmd {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = expandHome(args[0])
	}
	return args
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}

// openInEditor suspends the screen, runs the editor on osPath attached to
// the terminal and restores the screen afterwards.
func (app *Application) openInEditor(osPath string) error {
	if len(app.editorCmd) == 0 {
		return fmt.Errorf("no editor configured")
	}
	args := append(append([]string(nil), app.editorCmd...), osPath)

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("suspend screen: %w", err)
	}

	cmd := execCommand(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	runErr := cmd.Run()

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("resume screen: %w", err)
	}
	app.screen.Sync()
	if runErr != nil {
		return fmt.Errorf("%s: %w", filepath.Base(args[0]), runErr)
	}
	return nil
}
