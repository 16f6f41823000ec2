package app

import (
	"context"

	"github.com/kk-code-lab/notetree/internal/events"
	"github.com/kk-code-lab/notetree/internal/fs"
)

// ForwardChanges publishes every change read from src as a vaultChange
// event until src is closed or ctx is done.
func ForwardChanges(ctx context.Context, src <-chan fs.ChangeEvent, bus *events.Bus) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-src:
			if !ok {
				return
			}
			bus.PublishChange(change)
		}
	}
}
