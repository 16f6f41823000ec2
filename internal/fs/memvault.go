package fs

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kk-code-lab/notetree/internal/pathset"
)

// MemVault is an in-memory vault. Every mutation is reported to
// subscribers as a ChangeEvent, in the order the host would emit them.
type MemVault struct {
	mu          sync.RWMutex
	entries     map[string]Entry
	children    map[string]map[string]struct{}
	subscribers map[int]func(ChangeEvent)
	nextSub     int
	now         func() time.Time
}

// NewMemVault returns an empty vault containing only the root folder.
func NewMemVault() *MemVault {
	v := &MemVault{
		entries:     make(map[string]Entry),
		children:    make(map[string]map[string]struct{}),
		subscribers: make(map[int]func(ChangeEvent)),
		now:         time.Now,
	}
	v.entries[pathset.Root] = NewFolder(pathset.Root)
	return v
}

// SetClock overrides the modification timestamp source.
func (v *MemVault) SetClock(now func() time.Time) {
	v.mu.Lock()
	v.now = now
	v.mu.Unlock()
}

// Subscribe registers fn for change events and returns a function that
// detaches it.
func (v *MemVault) Subscribe(fn func(ChangeEvent)) func() {
	v.mu.Lock()
	id := v.nextSub
	v.nextSub++
	v.subscribers[id] = fn
	v.mu.Unlock()
	return func() {
		v.mu.Lock()
		delete(v.subscribers, id)
		v.mu.Unlock()
	}
}

// Lookup implements Storage.
func (v *MemVault) Lookup(p string) (Entry, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	e, ok := v.entries[pathset.Clean(p)]
	return e, ok
}

// Children implements Storage. Entries are ordered by name.
func (v *MemVault) Children(folder string) []Entry {
	v.mu.RLock()
	defer v.mu.RUnlock()
	names := v.children[pathset.Clean(folder)]
	out := make([]Entry, 0, len(names))
	for p := range names {
		out = append(out, v.entries[p])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// AddFolder creates p and any missing ancestors.
func (v *MemVault) AddFolder(p string) (Entry, error) {
	var events []ChangeEvent
	v.mu.Lock()
	e, err := v.ensureFolderLocked(pathset.Clean(p), &events)
	v.mu.Unlock()
	v.emit(events)
	return e, err
}

// AddFile creates a file of the given size, creating missing folders.
func (v *MemVault) AddFile(p string, size int64) (Entry, error) {
	p = pathset.Clean(p)
	var events []ChangeEvent
	v.mu.Lock()
	if _, exists := v.entries[p]; exists {
		v.mu.Unlock()
		return Entry{}, fmt.Errorf("add %s: %w", p, ErrExist)
	}
	if _, err := v.ensureFolderLocked(pathset.Parent(p), &events); err != nil {
		v.mu.Unlock()
		v.emit(events)
		return Entry{}, err
	}
	e := NewFile(p, size, v.now())
	v.insertLocked(e)
	events = append(events, ChangeEvent{Kind: ChangeCreate, Entry: e})
	v.mu.Unlock()
	v.emit(events)
	return e, nil
}

// CreateFile implements Creator.
func (v *MemVault) CreateFile(p string) (Entry, error) {
	return v.AddFile(p, 0)
}

// Modify updates the size and timestamp of an existing file.
func (v *MemVault) Modify(p string, size int64) (Entry, error) {
	p = pathset.Clean(p)
	v.mu.Lock()
	e, ok := v.entries[p]
	if !ok || e.IsDir() {
		v.mu.Unlock()
		return Entry{}, fmt.Errorf("modify %s: %w", p, ErrNotExist)
	}
	e.Size = size
	e.Modified = v.now()
	v.entries[p] = e
	v.mu.Unlock()
	v.emit([]ChangeEvent{{Kind: ChangeModify, Entry: e}})
	return e, nil
}

// Rename moves an entry. For folders the whole subtree moves; one rename
// event is emitted for the folder followed by one per descendant.
func (v *MemVault) Rename(from, to string) (Entry, error) {
	from, to = pathset.Clean(from), pathset.Clean(to)
	var events []ChangeEvent
	v.mu.Lock()
	e, ok := v.entries[from]
	if !ok || from == pathset.Root {
		v.mu.Unlock()
		return Entry{}, fmt.Errorf("rename %s: %w", from, ErrNotExist)
	}
	if _, exists := v.entries[to]; exists {
		v.mu.Unlock()
		return Entry{}, fmt.Errorf("rename to %s: %w", to, ErrExist)
	}
	if _, err := v.ensureFolderLocked(pathset.Parent(to), &events); err != nil {
		v.mu.Unlock()
		v.emit(events)
		return Entry{}, err
	}

	var moved []Entry
	if e.IsDir() {
		moved = v.subtreeLocked(from)
	}
	v.removeLocked(from)
	renamed := e
	renamed.Path, renamed.Name, renamed.ParentPath = to, pathset.Base(to), pathset.Parent(to)
	v.insertLocked(renamed)
	events = append(events, ChangeEvent{Kind: ChangeRename, Entry: renamed, PreviousPath: from})

	for _, child := range moved {
		v.removeLocked(child.Path)
	}
	for _, child := range moved {
		newPath, _ := pathset.Rebase(child.Path, from, to)
		next := child
		next.Path, next.Name, next.ParentPath = newPath, pathset.Base(newPath), pathset.Parent(newPath)
		v.insertLocked(next)
		events = append(events, ChangeEvent{Kind: ChangeRename, Entry: next, PreviousPath: child.Path})
	}
	v.mu.Unlock()
	v.emit(events)
	return renamed, nil
}

// Delete removes an entry. Folder contents are deleted first, deepest
// entries before their parents.
func (v *MemVault) Delete(p string) error {
	p = pathset.Clean(p)
	v.mu.Lock()
	e, ok := v.entries[p]
	if !ok || p == pathset.Root {
		v.mu.Unlock()
		return fmt.Errorf("delete %s: %w", p, ErrNotExist)
	}
	var events []ChangeEvent
	if e.IsDir() {
		sub := v.subtreeLocked(p)
		for i := len(sub) - 1; i >= 0; i-- {
			v.removeLocked(sub[i].Path)
			events = append(events, ChangeEvent{Kind: ChangeDelete, Entry: sub[i]})
		}
	}
	v.removeLocked(p)
	events = append(events, ChangeEvent{Kind: ChangeDelete, Entry: e})
	v.mu.Unlock()
	v.emit(events)
	return nil
}

func (v *MemVault) ensureFolderLocked(p string, events *[]ChangeEvent) (Entry, error) {
	if p == "" {
		p = pathset.Root
	}
	if e, ok := v.entries[p]; ok {
		if !e.IsDir() {
			return Entry{}, fmt.Errorf("folder %s: %w", p, ErrExist)
		}
		return e, nil
	}
	if _, err := v.ensureFolderLocked(pathset.Parent(p), events); err != nil {
		return Entry{}, err
	}
	e := NewFolder(p)
	v.insertLocked(e)
	*events = append(*events, ChangeEvent{Kind: ChangeCreate, Entry: e})
	return e, nil
}

func (v *MemVault) insertLocked(e Entry) {
	v.entries[e.Path] = e
	if e.ParentPath == "" {
		return
	}
	set, ok := v.children[e.ParentPath]
	if !ok {
		set = make(map[string]struct{})
		v.children[e.ParentPath] = set
	}
	set[e.Path] = struct{}{}
}

func (v *MemVault) removeLocked(p string) {
	e, ok := v.entries[p]
	if !ok {
		return
	}
	delete(v.entries, p)
	delete(v.children, p)
	if set, ok := v.children[e.ParentPath]; ok {
		delete(set, p)
	}
}

// subtreeLocked lists the descendants of p, parents before children.
func (v *MemVault) subtreeLocked(p string) []Entry {
	var out []Entry
	names := make([]string, 0, len(v.children[p]))
	for child := range v.children[p] {
		names = append(names, child)
	}
	sort.Strings(names)
	for _, child := range names {
		e := v.entries[child]
		out = append(out, e)
		if e.IsDir() {
			out = append(out, v.subtreeLocked(child)...)
		}
	}
	return out
}

func (v *MemVault) emit(events []ChangeEvent) {
	if len(events) == 0 {
		return
	}
	v.mu.RLock()
	ids := make([]int, 0, len(v.subscribers))
	for id := range v.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]func(ChangeEvent), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, v.subscribers[id])
	}
	v.mu.RUnlock()

	for _, ev := range events {
		for _, fn := range subs {
			fn(ev)
		}
	}
}
