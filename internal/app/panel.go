package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/kk-code-lab/notetree/internal/config"
	"github.com/kk-code-lab/notetree/internal/events"
	"github.com/kk-code-lab/notetree/internal/fs"
	"github.com/kk-code-lab/notetree/internal/settings"
	statepkg "github.com/kk-code-lab/notetree/internal/state"
)

// PanelOptions are the collaborators a Panel is mounted on.
type PanelOptions struct {
	Storage fs.Storage
	Store   settings.Store
	Keys    settings.Keys
	Config  *config.Config
	Bus     *events.Bus
	Logger  *zap.Logger
	// Closers are released on Unmount in reverse order, after the bus
	// listeners are detached. Typically the watcher and the store.
	Closers []io.Closer
}

// Panel owns one ViewState for its lifetime. Every write goes through the
// reducer while mu is held; inbound bus events are queued and applied by
// the single goroutine that calls Drain, so a change event is always
// reconciled to completion before the next one starts.
//
// Outbound events (scrollIntoView, notice) are published while the state
// is locked; their handlers may Dispatch but must not call Apply or
// Snapshot.
type Panel struct {
	mu      sync.Mutex
	reducer *statepkg.Reducer
	state   *statepkg.ViewState
	lastErr error

	qmu     sync.Mutex
	queue   []statepkg.Action
	wake    chan struct{}
	stopped bool

	bus     *events.Bus
	logger  *zap.Logger
	unsubs  []func()
	closers []io.Closer
}

// Mount restores the panel state from the persisted settings and starts
// listening for inbound events. A restore error is returned alongside a
// usable panel; callers may log it and continue.
func Mount(opts PanelOptions) (*Panel, error) {
	if opts.Storage == nil {
		return nil, errors.New("mount panel: no storage")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	bus := opts.Bus
	if bus == nil {
		bus = events.NewBus()
	}

	p := &Panel{
		wake:    make(chan struct{}, 1),
		bus:     bus,
		logger:  logger,
		closers: opts.Closers,
	}
	p.reducer = statepkg.NewReducer(statepkg.Deps{
		Storage: opts.Storage,
		Store:   opts.Store,
		Keys:    opts.Keys,
		Config:  opts.Config,
		Emit:    bus.Publish,
		Logger:  logger.Named("state"),
	})

	state, err := p.reducer.Restore()
	p.state = state
	if err != nil {
		p.lastErr = err
		logger.Warn("restore panel state", zap.Error(err))
	}

	p.unsubs = []func(){
		bus.Subscribe(events.VaultChange, func(ev events.Event) {
			if change, ok := ev.Payload.(fs.ChangeEvent); ok {
				p.Dispatch(statepkg.VaultChangeAction{Change: change})
			}
		}),
		bus.Subscribe(events.ActiveFileChange, func(ev events.Event) {
			if payload, ok := ev.Payload.(events.FilePayload); ok {
				p.Dispatch(statepkg.ActiveFileChangeAction{Path: payload.Path})
			}
		}),
		bus.Subscribe(events.RefreshView, func(events.Event) {
			p.Dispatch(statepkg.RefreshViewAction{})
		}),
		bus.Subscribe(events.RevealFile, func(ev events.Event) {
			payload, _ := ev.Payload.(events.FilePayload)
			p.Dispatch(statepkg.RevealFileAction{Path: payload.Path})
		}),
		bus.Subscribe(events.CreateNewNote, func(events.Event) {
			p.Dispatch(statepkg.CreateNewNoteAction{})
		}),
	}

	logger.Debug("panel mounted",
		zap.String("focus", state.FocusedFolder),
		zap.String("active_folder", state.ActiveFolderPath),
		zap.Int("open_folders", len(state.OpenFolders)),
		zap.Int("pinned", len(state.PinnedFiles)))
	return p, err
}

// Bus returns the bus the panel listens on.
func (p *Panel) Bus() *events.Bus {
	return p.bus
}

// Dispatch queues an action without blocking. It is safe to call from any
// goroutine, including from inside a reducer step.
func (p *Panel) Dispatch(action statepkg.Action) {
	p.qmu.Lock()
	if p.stopped {
		p.qmu.Unlock()
		return
	}
	p.queue = append(p.queue, action)
	p.qmu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Wake is signalled whenever Dispatch queues an action.
func (p *Panel) Wake() <-chan struct{} {
	return p.wake
}

// Drain applies queued actions until the queue is empty, including actions
// queued while draining. It reports whether anything was applied.
func (p *Panel) Drain() bool {
	applied := false
	for {
		p.qmu.Lock()
		if len(p.queue) == 0 {
			p.qmu.Unlock()
			return applied
		}
		action := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.qmu.Unlock()

		p.Apply(action)
		applied = true
	}
}

// Apply runs one action through the reducer synchronously. Errors are
// recorded in LastError and logged; the state stays valid either way.
func (p *Panel) Apply(action statepkg.Action) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, err := p.reducer.Reduce(p.state, action)
	if next != nil {
		p.state = next
	}
	if err != nil {
		p.lastErr = err
		p.logger.Error("apply action", zap.String("action", actionName(action)), zap.Error(err))
		return err
	}
	return nil
}

// Run drains the queue whenever it is woken, until ctx is done. It is the
// headless counterpart of the browse loop. onChange, when set, is called
// with a snapshot after every drain that applied something.
func (p *Panel) Run(ctx context.Context, onChange func(*statepkg.ViewState)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.wake:
			if p.Drain() && onChange != nil {
				onChange(p.Snapshot())
			}
		}
	}
}

// Snapshot returns a deep copy of the current state for readers.
func (p *Panel) Snapshot() *statepkg.ViewState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone()
}

// LastError returns the most recent error reported by an action.
func (p *Panel) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Unmount detaches the bus listeners, drops queued actions and releases
// the closers. The panel must not be used afterwards.
func (p *Panel) Unmount() error {
	p.qmu.Lock()
	if p.stopped {
		p.qmu.Unlock()
		return nil
	}
	p.stopped = true
	p.queue = nil
	p.qmu.Unlock()

	for _, unsub := range p.unsubs {
		unsub()
	}

	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	p.logger.Debug("panel unmounted")
	return errors.Join(errs...)
}

func actionName(action statepkg.Action) string {
	return fmt.Sprintf("%T", action)
}
