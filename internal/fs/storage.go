package fs

import (
	"errors"

	"github.com/kk-code-lab/notetree/internal/pathset"
)

var (
	// ErrNotExist is returned when a path does not resolve to an entry.
	ErrNotExist = errors.New("entry does not exist")
	// ErrExist is returned when creating an entry over an existing one.
	ErrExist = errors.New("entry already exists")
	// ErrReadOnly is returned when a storage cannot create entries.
	ErrReadOnly = errors.New("storage is read-only")
)

// Storage is the read surface of the host vault.
type Storage interface {
	// Lookup resolves a path to its entry.
	Lookup(path string) (Entry, bool)
	// Children lists the direct children of a folder.
	Children(folder string) []Entry
}

// Creator is implemented by storages that can create notes.
type Creator interface {
	CreateFile(path string) (Entry, error)
}

// WalkFunc is called for every entry below the walk root. Returning false
// for a folder skips its contents.
type WalkFunc func(e Entry) bool

// Walk visits the subtree under root depth first. The root itself is not
// visited.
func Walk(s Storage, root string, fn WalkFunc) {
	for _, child := range s.Children(root) {
		if !fn(child) {
			continue
		}
		if child.IsDir() {
			Walk(s, child.Path, fn)
		}
	}
}

// Folders enumerates every folder path under root.
func Folders(s Storage, root string) []string {
	var out []string
	Walk(s, root, func(e Entry) bool {
		if e.IsDir() {
			out = append(out, e.Path)
		}
		return true
	})
	return out
}

// Files enumerates every file under root.
func Files(s Storage, root string) []Entry {
	var out []Entry
	Walk(s, root, func(e Entry) bool {
		if !e.IsDir() {
			out = append(out, e)
		}
		return true
	})
	return out
}

// LookupFolder resolves p and reports whether it is a live folder.
func LookupFolder(s Storage, p string) (Entry, bool) {
	e, ok := s.Lookup(pathset.Clean(p))
	if !ok || !e.IsDir() {
		return Entry{}, false
	}
	return e, true
}

// LookupFile resolves p and reports whether it is a live file.
func LookupFile(s Storage, p string) (Entry, bool) {
	e, ok := s.Lookup(pathset.Clean(p))
	if !ok || e.IsDir() {
		return Entry{}, false
	}
	return e, true
}
