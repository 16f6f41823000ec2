package app

import (
	"errors"
	"os"
	"os/exec"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"vim", []string{"vim"}},
		{"code --wait", []string{"code", "--wait"}},
		{`"/opt/My Editor/ed" -n`, []string{"/opt/My Editor/ed", "-n"}},
		{`emacs -nw 'a b'`, []string{"emacs", "-nw", "a b"}},
	}
	for _, tt := range tests {
		if got := splitCommand(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("splitCommand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectEditorPrefersVisual(t *testing.T) {
	env := map[string]string{"VISUAL": "nvim -p", "EDITOR": "nano"}
	lookPath := func(cmd string) (string, error) { return "/usr/bin/" + cmd, nil }

	args, ok := detectEditor("linux", func(k string) string { return env[k] }, lookPath)
	if !ok || !reflect.DeepEqual(args, []string{"/usr/bin/nvim", "-p"}) {
		t.Fatalf("detectEditor = %v, %v", args, ok)
	}
}

func TestDetectEditorFallbacks(t *testing.T) {
	getenv := func(string) string { return "" }

	unix := func(cmd string) (string, error) {
		if cmd == "nano" {
			return "/usr/bin/nano", nil
		}
		return "", errors.New("not found")
	}
	if args, ok := detectEditor("linux", getenv, unix); !ok || !reflect.DeepEqual(args, []string{"/usr/bin/nano"}) {
		t.Fatalf("unix fallback = %v, %v", args, ok)
	}

	windows := func(cmd string) (string, error) {
		if cmd == "code" {
			return `C:\Code\code.exe`, nil
		}
		return "", errors.New("not found")
	}
	if args, ok := detectEditor("windows", getenv, windows); !ok || !reflect.DeepEqual(args, []string{`C:\Code\code.exe`, "--wait"}) {
		t.Fatalf("windows fallback = %v, %v", args, ok)
	}

	none := func(string) (string, error) { return "", errors.New("not found") }
	if _, ok := detectEditor("linux", getenv, none); ok {
		t.Fatalf("expected no editor")
	}
}

func TestOpenInEditorReportsFailure(t *testing.T) {
	screen := newTestScreen(t)
	t.Cleanup(screen.Fini)
	app := &Application{screen: screen, editorCmd: []string{"fake-editor", "--wait"}}

	var recorded []string
	orig := execCommand
	execCommand = func(name string, args ...string) *exec.Cmd {
		recorded = append([]string{name}, args...)
		cmd := exec.Command(os.Args[0], "-test.run=TestHelperProcess", "--")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "HELPER_PROCESS_EXIT=3")
		return cmd
	}
	t.Cleanup(func() { execCommand = orig })

	err := app.openInEditor("/vault/A.md")
	if err == nil || !strings.Contains(err.Error(), "fake-editor") {
		t.Fatalf("expected editor error naming the command, got %v", err)
	}
	if !reflect.DeepEqual(recorded, []string{"fake-editor", "--wait", "/vault/A.md"}) {
		t.Fatalf("recorded = %v", recorded)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	code, err := strconv.Atoi(os.Getenv("HELPER_PROCESS_EXIT"))
	if err != nil {
		code = 1
	}
	os.Exit(code)
}
