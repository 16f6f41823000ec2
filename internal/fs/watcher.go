package fs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kk-code-lab/notetree/internal/pathset"
	"go.uber.org/zap"
)

// DefaultRenameWindow is how long a disappearing path waits for its
// matching create before it is reported as deleted.
const DefaultRenameWindow = 150 * time.Millisecond

// Watcher translates filesystem notifications under a DiskVault into
// ChangeEvents. fsnotify reports a rename as a rename of the old name
// followed by a create of the new one; the two are paired into a single
// ChangeRename when they arrive within the rename window.
type Watcher struct {
	vault        *DiskVault
	fsw          *fsnotify.Watcher
	logger       *zap.Logger
	events       chan ChangeEvent
	known        map[string]Kind
	renameWindow time.Duration
}

type pendingRename struct {
	path string
	kind Kind
}

// NewWatcher starts watching every folder of the vault.
func NewWatcher(v *DiskVault, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}
	w := &Watcher{
		vault:        v,
		fsw:          fsw,
		logger:       logger.Named("watcher"),
		events:       make(chan ChangeEvent, 64),
		known:        make(map[string]Kind),
		renameWindow: DefaultRenameWindow,
	}
	if err := w.watchTree(pathset.Root, nil); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// SetRenameWindow adjusts the rename pairing window. Call before Run.
func (w *Watcher) SetRenameWindow(d time.Duration) {
	if d > 0 {
		w.renameWindow = d
	}
}

// Events delivers translated changes. The channel closes when Run returns.
func (w *Watcher) Events() <-chan ChangeEvent {
	return w.events
}

// Close stops the underlying fsnotify watcher, which ends Run.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run processes notifications until ctx is cancelled or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)

	var pending *pendingRename
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if pending == nil {
			return
		}
		w.emitRemoval(ctx, pending.path, pending.kind)
		pending = nil
		if timer != nil {
			timer.Stop()
		}
		timerC = nil
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return ctx.Err()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("fs watcher error", zap.Error(err))

		case <-timerC:
			flush()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				flush()
				return nil
			}
			vp, inVault := w.vault.VaultPath(ev.Name)
			if !inVault || hiddenPath(vp) {
				continue
			}

			switch {
			case ev.Has(fsnotify.Create):
				entry, ok := w.vault.Lookup(vp)
				if !ok {
					continue
				}
				if pending != nil && pending.kind == entry.Kind && pending.path != vp {
					prev := pending.path
					pending = nil
					if timer != nil {
						timer.Stop()
					}
					timerC = nil
					w.emitRename(ctx, prev, entry)
					continue
				}
				flush()
				w.emitCreate(ctx, entry)

			case ev.Has(fsnotify.Write):
				if kind, ok := w.known[vp]; !ok || kind != KindFile {
					continue
				}
				if entry, ok := w.vault.Lookup(vp); ok {
					w.send(ctx, ChangeEvent{Kind: ChangeModify, Entry: entry})
				}

			case ev.Has(fsnotify.Rename):
				kind, ok := w.known[vp]
				if !ok {
					continue
				}
				flush()
				pending = &pendingRename{path: vp, kind: kind}
				if timer == nil {
					timer = time.NewTimer(w.renameWindow)
				} else {
					timer.Reset(w.renameWindow)
				}
				timerC = timer.C

			case ev.Has(fsnotify.Remove):
				kind, ok := w.known[vp]
				if !ok {
					continue
				}
				if pending != nil && pending.path == vp {
					pending = nil
					timerC = nil
				}
				flush()
				w.emitRemoval(ctx, vp, kind)
			}
		}
	}
}

func (w *Watcher) emitCreate(ctx context.Context, entry Entry) {
	w.known[entry.Path] = entry.Kind
	w.send(ctx, ChangeEvent{Kind: ChangeCreate, Entry: entry})
	if !entry.IsDir() {
		return
	}
	// A folder moved in from outside arrives with contents already present.
	if err := w.watchTree(entry.Path, func(e Entry) {
		w.send(ctx, ChangeEvent{Kind: ChangeCreate, Entry: e})
	}); err != nil {
		w.logger.Warn("watch new folder", zap.String("path", entry.Path), zap.Error(err))
	}
}

func (w *Watcher) emitRename(ctx context.Context, prev string, entry Entry) {
	descendants := w.knownUnder(prev)
	delete(w.known, prev)
	for _, d := range descendants {
		delete(w.known, d)
	}
	w.known[entry.Path] = entry.Kind
	w.send(ctx, ChangeEvent{Kind: ChangeRename, Entry: entry, PreviousPath: prev})
	if !entry.IsDir() {
		return
	}

	_ = w.fsw.Remove(w.vault.OSPath(prev))
	for _, d := range descendants {
		newPath, _ := pathset.Rebase(d, prev, entry.Path)
		moved, ok := w.vault.Lookup(newPath)
		if !ok {
			continue
		}
		w.known[newPath] = moved.Kind
		w.send(ctx, ChangeEvent{Kind: ChangeRename, Entry: moved, PreviousPath: d})
	}
	if err := w.watchTree(entry.Path, nil); err != nil {
		w.logger.Warn("watch renamed folder", zap.String("path", entry.Path), zap.Error(err))
	}
}

func (w *Watcher) emitRemoval(ctx context.Context, p string, kind Kind) {
	if kind == KindFolder {
		descendants := w.knownUnder(p)
		for i := len(descendants) - 1; i >= 0; i-- {
			d := descendants[i]
			dk := w.known[d]
			delete(w.known, d)
			w.send(ctx, ChangeEvent{Kind: ChangeDelete, Entry: removedEntry(d, dk)})
		}
		_ = w.fsw.Remove(w.vault.OSPath(p))
	}
	delete(w.known, p)
	w.send(ctx, ChangeEvent{Kind: ChangeDelete, Entry: removedEntry(p, kind)})
}

func (w *Watcher) send(ctx context.Context, ev ChangeEvent) {
	w.logger.Debug("vault change",
		zap.Stringer("kind", ev.Kind),
		zap.String("path", ev.Entry.Path),
		zap.String("previous", ev.PreviousPath))
	select {
	case w.events <- ev:
	case <-ctx.Done():
	}
}

// watchTree registers root and every folder below it, recording all
// entries as known. onEntry, when set, is called for each descendant.
func (w *Watcher) watchTree(root string, onEntry func(Entry)) error {
	if err := w.fsw.Add(w.vault.OSPath(root)); err != nil && !errors.Is(err, fsnotify.ErrClosed) {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	w.known[root] = KindFolder
	var firstErr error
	Walk(w.vault, root, func(e Entry) bool {
		w.known[e.Path] = e.Kind
		if onEntry != nil {
			onEntry(e)
		}
		if e.IsDir() {
			if err := w.fsw.Add(w.vault.OSPath(e.Path)); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("watch %s: %w", e.Path, err)
			}
		}
		return true
	})
	return firstErr
}

func (w *Watcher) knownUnder(p string) []string {
	var out []string
	for k := range w.known {
		if pathset.IsUnder(k, p) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func removedEntry(p string, kind Kind) Entry {
	if kind == KindFolder {
		return NewFolder(p)
	}
	return NewFile(p, 0, time.Time{})
}

func hiddenPath(p string) bool {
	for _, seg := range strings.Split(strings.TrimPrefix(p, "/"), "/") {
		if isHiddenName(seg) {
			return true
		}
	}
	return false
}
