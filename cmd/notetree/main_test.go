package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVault(t *testing.T, config ...string) string {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	dir := t.TempDir()
	files := map[string]string{
		"top.md":                  "# top",
		"A/note.md":               "# note",
		"A/B/deep.md":             "# deep",
		"A/B/image.png":           "png",
		".notetree/notetree.yaml": "folderCount: false\n" + strings.Join(config, ""),
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, vault string, args ...string) []string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--vault", vault}, args...))
	require.NoError(t, cmd.Execute(), out.String())

	text := strings.TrimRight(out.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestTreeAll(t *testing.T) {
	vault := newVault(t)
	assert.Equal(t, []string{"/", "  A", "    B"}, run(t, vault, "tree", "--all"))
	assert.Equal(t, []string{"/", "  A"}, run(t, vault, "tree"))
}

func TestRevealPersistsOpenFolders(t *testing.T) {
	vault := newVault(t)

	out := run(t, vault, "reveal", "A/B/deep.md")
	assert.Contains(t, out, "active: /A/B")
	assert.Contains(t, out, "open:   /A")
	assert.Contains(t, out, "open:   /A/B")

	// A fresh process restores the open folders from the store.
	assert.Equal(t, []string{"/", "  A", "    B"}, run(t, vault, "tree"))
}

func TestLsSelectsFolder(t *testing.T) {
	vault := newVault(t)
	assert.Equal(t, []string{"  /A/note.md"}, run(t, vault, "ls", "A"))
	// Without a split layout a new session starts on the focused folder.
	assert.Equal(t, []string{"  /top.md"}, run(t, vault, "ls"))
}

func TestLsRemembersFolderInSplitLayout(t *testing.T) {
	vault := newVault(t, "layout: vertical\n")
	run(t, vault, "ls", "A")
	assert.Equal(t, []string{"  /A/note.md"}, run(t, vault, "ls"))
}

func TestLsUnknownFolder(t *testing.T) {
	vault := newVault(t)
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--vault", vault, "ls", "Missing"})
	assert.Error(t, cmd.Execute())
}

func TestPinAndUnpin(t *testing.T) {
	vault := newVault(t)
	run(t, vault, "pin", "top.md")
	run(t, vault, "pin", "top.md")
	assert.Equal(t, []string{"* /top.md", "  /A/note.md"}, run(t, vault, "ls", "A"))

	run(t, vault, "unpin", "top.md")
	assert.Equal(t, []string{"  /A/note.md"}, run(t, vault, "ls", "A"))
}

func TestExclude(t *testing.T) {
	vault := newVault(t)
	run(t, vault, "exclude", "add", "/A/B")
	assert.Equal(t, []string{"A/B"}, run(t, vault, "exclude", "list"))
	assert.Equal(t, []string{"/", "  A"}, run(t, vault, "tree", "--all"))

	data, err := os.ReadFile(filepath.Join(vault, ".notetree", "notetree.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "A/B")

	run(t, vault, "exclude", "remove", "A/B")
	assert.Empty(t, run(t, vault, "exclude", "list"))
}

func TestNewCreatesUntitledNotes(t *testing.T) {
	vault := newVault(t)

	assert.Equal(t, []string{"/Untitled.md"}, run(t, vault, "new"))
	assert.Equal(t, []string{"/Untitled 1.md"}, run(t, vault, "new"))

	_, err := os.Stat(filepath.Join(vault, "Untitled 1.md"))
	assert.NoError(t, err)
}

func TestNewUsesRememberedFolder(t *testing.T) {
	vault := newVault(t, "layout: horizontal\n")
	run(t, vault, "ls", "A")
	assert.Equal(t, []string{"/A/Untitled.md"}, run(t, vault, "new"))
}
