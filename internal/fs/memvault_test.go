package fs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordEvents(v *MemVault) *[]ChangeEvent {
	var got []ChangeEvent
	v.Subscribe(func(ev ChangeEvent) { got = append(got, ev) })
	return &got
}

func TestMemVaultAddFileCreatesParents(t *testing.T) {
	v := NewMemVault()
	events := recordEvents(v)

	e, err := v.AddFile("/Notes/Sub/D.md", 12)
	require.NoError(t, err)
	assert.Equal(t, "/Notes/Sub", e.ParentPath)
	assert.Equal(t, "D.md", e.Name)

	require.Len(t, *events, 3)
	assert.Equal(t, "/Notes", (*events)[0].Entry.Path)
	assert.Equal(t, KindFolder, (*events)[0].Entry.Kind)
	assert.Equal(t, "/Notes/Sub", (*events)[1].Entry.Path)
	assert.Equal(t, ChangeCreate, (*events)[2].Kind)
	assert.Equal(t, "/Notes/Sub/D.md", (*events)[2].Entry.Path)

	_, err = v.AddFile("/Notes/Sub/D.md", 1)
	assert.ErrorIs(t, err, ErrExist)
}

func TestMemVaultChildrenSorted(t *testing.T) {
	v := NewMemVault()
	_, _ = v.AddFile("/b.md", 1)
	_, _ = v.AddFile("/a.md", 1)
	_, _ = v.AddFolder("/Notes")

	var paths []string
	for _, e := range v.Children("/") {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{"/Notes", "/a.md", "/b.md"}, paths)
}

func TestMemVaultRenameFolderMovesSubtree(t *testing.T) {
	v := NewMemVault()
	_, _ = v.AddFile("/Notes/Sub/D.md", 1)
	_, _ = v.AddFile("/Notes/A.md", 1)
	events := recordEvents(v)

	_, err := v.Rename("/Notes", "/Archive/Notes")
	require.NoError(t, err)

	_, ok := v.Lookup("/Notes/A.md")
	assert.False(t, ok)
	moved, ok := v.Lookup("/Archive/Notes/Sub/D.md")
	require.True(t, ok)
	assert.Equal(t, "/Archive/Notes/Sub", moved.ParentPath)

	var renames []string
	for _, ev := range *events {
		if ev.Kind == ChangeRename {
			renames = append(renames, ev.PreviousPath+"->"+ev.Entry.Path)
		}
	}
	assert.Equal(t, []string{
		"/Notes->/Archive/Notes",
		"/Notes/A.md->/Archive/Notes/A.md",
		"/Notes/Sub->/Archive/Notes/Sub",
		"/Notes/Sub/D.md->/Archive/Notes/Sub/D.md",
	}, renames)
}

func TestMemVaultDeleteFolderDeletesChildrenFirst(t *testing.T) {
	v := NewMemVault()
	_, _ = v.AddFile("/Notes/A.md", 1)
	events := recordEvents(v)

	require.NoError(t, v.Delete("/Notes"))
	require.Len(t, *events, 2)
	assert.Equal(t, "/Notes/A.md", (*events)[0].Entry.Path)
	assert.Equal(t, "/Notes", (*events)[1].Entry.Path)
	assert.Empty(t, v.Children("/"))

	assert.ErrorIs(t, v.Delete("/Notes"), ErrNotExist)
}

func TestMemVaultModify(t *testing.T) {
	v := NewMemVault()
	_, _ = v.AddFile("/A.md", 1)
	events := recordEvents(v)

	e, err := v.Modify("/A.md", 99)
	require.NoError(t, err)
	assert.Equal(t, int64(99), e.Size)
	require.Len(t, *events, 1)
	assert.Equal(t, ChangeModify, (*events)[0].Kind)

	_, err = v.Modify("/missing.md", 1)
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestMemVaultUnsubscribe(t *testing.T) {
	v := NewMemVault()
	count := 0
	cancel := v.Subscribe(func(ChangeEvent) { count++ })
	_, _ = v.AddFile("/A.md", 1)
	cancel()
	_, _ = v.AddFile("/B.md", 1)
	assert.Equal(t, 1, count)
}

func TestWalkHelpers(t *testing.T) {
	v := NewMemVault()
	_, _ = v.AddFile("/Notes/A.md", 1)
	_, _ = v.AddFile("/Notes/Sub/B.md", 1)
	_, _ = v.AddFile("/C.md", 1)

	assert.Equal(t, []string{"/Notes", "/Notes/Sub"}, Folders(v, "/"))
	files := Files(v, "/Notes")
	require.Len(t, files, 2)
	assert.Equal(t, "/Notes/A.md", files[0].Path)

	_, ok := LookupFolder(v, "/Notes/A.md")
	assert.False(t, ok)
	_, ok = LookupFile(v, "/Notes/A.md")
	assert.True(t, ok)
}
