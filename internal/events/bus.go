// Package events is the in-process publish/subscribe channel between the
// panel, the vault and the presentation layer.
package events

import (
	"sort"
	"sync"

	"github.com/kk-code-lab/notetree/internal/fs"
)

// Name identifies an event kind.
type Name string

const (
	VaultChange      Name = "vaultChange"
	ActiveFileChange Name = "activeFileChange"
	RefreshView      Name = "refreshView"
	RevealFile       Name = "revealFile"
	CreateNewNote    Name = "createNewNote"
	ScrollIntoView   Name = "scrollIntoView"
	Notice           Name = "notice"
)

// Event is one published signal. Payload holds the value matching Name:
//
//	vaultChange       fs.ChangeEvent
//	activeFileChange  FilePayload
//	revealFile        FilePayload
//	scrollIntoView    ScrollPayload
//	notice            NoticePayload
//
// refreshView and createNewNote carry no payload.
type Event struct {
	Name    Name
	Payload any
}

// FilePayload names a vault file.
type FilePayload struct {
	Path string
}

// ScrollPayload asks the presentation layer to bring rows into view.
type ScrollPayload struct {
	File   string
	Folder string
}

// NoticePayload is a short user-visible message.
type NoticePayload struct {
	Message string
}

// Handler receives published events.
type Handler func(Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus delivers events synchronously to subscribers in subscription order.
type Bus struct {
	mu     sync.RWMutex
	subs   map[Name][]subscription
	nextID uint64
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Name][]subscription)}
}

// Subscribe registers h for name and returns a function detaching it.
func (b *Bus) Subscribe(name Name, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || h == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscription{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(name, id) })
	}
}

func (b *Bus) unsubscribe(name Name, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[name]
	for i, s := range list {
		if s.id == id {
			b.subs[name] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(b.subs[name]) == 0 {
		delete(b.subs, name)
	}
}

// Publish delivers ev to every current subscriber of ev.Name before
// returning. Handlers may publish further events.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	list := append([]subscription(nil), b.subs[ev.Name]...)
	b.mu.RUnlock()

	for _, s := range list {
		s.handler(ev)
	}
}

// PublishChange wraps a vault change in a vaultChange event.
func (b *Bus) PublishChange(change fs.ChangeEvent) {
	b.Publish(Event{Name: VaultChange, Payload: change})
}

// Subscribers lists the event names that currently have subscribers.
func (b *Bus) Subscribers() []Name {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]Name, 0, len(b.subs))
	for n := range b.subs {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Close detaches every subscriber. Later subscriptions are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = make(map[Name][]subscription)
}
