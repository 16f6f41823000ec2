package fs

import (
	"time"

	"github.com/kk-code-lab/notetree/internal/pathset"
)

// Kind distinguishes files from folders.
type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

func (k Kind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "file"
}

// Entry is a single file or folder in the vault. ParentPath is a
// navigation-only back-link to the containing folder; it identifies the
// parent without owning or pointing at it.
type Entry struct {
	Kind       Kind
	Path       string
	Name       string
	ParentPath string
	Size       int64
	Modified   time.Time
	// Created is the creation time where the storage can report one and
	// the modification time otherwise.
	Created    time.Time
}

// NewFile builds a file entry for p.
func NewFile(p string, size int64, modified time.Time) Entry {
	p = pathset.Clean(p)
	return Entry{
		Kind:       KindFile,
		Path:       p,
		Name:       pathset.Base(p),
		ParentPath: pathset.Parent(p),
		Size:       size,
		Modified:   modified,
		Created:    modified,
	}
}

// NewFolder builds a folder entry for p.
func NewFolder(p string) Entry {
	p = pathset.Clean(p)
	return Entry{
		Kind:       KindFolder,
		Path:       p,
		Name:       pathset.Base(p),
		ParentPath: pathset.Parent(p),
	}
}

// IsDir reports whether the entry is a folder.
func (e Entry) IsDir() bool {
	return e.Kind == KindFolder
}

// IsZero reports whether e is the zero Entry.
func (e Entry) IsZero() bool {
	return e.Path == ""
}

// Ext returns the lowercased extension without the dot.
func (e Entry) Ext() string {
	return pathset.Ext(e.Path)
}

// IsNote reports whether the entry is a markdown note.
func (e Entry) IsNote() bool {
	return e.Kind == KindFile && e.Ext() == "md"
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return isHiddenName(e.Name)
}
