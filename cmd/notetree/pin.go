package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/notetree/internal/events"
	statepkg "github.com/kk-code-lab/notetree/internal/state"
)

// NewPinCmd builds "pin" or, with pin false, "unpin". Both are
// idempotent: pinning a pinned file does nothing.
func NewPinCmd(e *env, pin bool) *cobra.Command {
	use, short := "pin <file>", "Pin a note to the top of the file list"
	if !pin {
		use, short = "unpin <file>", "Remove a note from the pinned files"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := e.mount(events.NewBus())
			if err != nil {
				return err
			}
			defer panel.Unmount()

			p := e.vaultArg(args[0])
			if panel.Snapshot().IsPinned(p) == pin {
				return nil
			}
			if err := panel.Apply(statepkg.TogglePinAction{Path: p}); err != nil {
				return err
			}
			if panel.Snapshot().IsPinned(p) != pin {
				return fmt.Errorf("file not found: %s", p)
			}
			return nil
		},
	}
}
