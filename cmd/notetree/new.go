package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/notetree/internal/events"
	statepkg "github.com/kk-code-lab/notetree/internal/state"
)

func NewNewCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create an untitled note in the active folder",
		Long: `Create "Untitled.md" (or the first free "Untitled N.md") in the
active folder and print its vault path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := events.NewBus()
			panel, err := e.mount(bus)
			if err != nil {
				return err
			}
			defer panel.Unmount()

			if err := panel.Apply(statepkg.CreateNewNoteAction{}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), panel.Snapshot().ActiveFile)
			return nil
		},
	}
}
