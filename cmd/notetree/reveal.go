package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/notetree/internal/events"
	statepkg "github.com/kk-code-lab/notetree/internal/state"
)

func NewRevealCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <file>",
		Short: "Reveal a note in the folder tree",
		Long: `Open every folder between the focused folder and the note,
make its folder active and remember the result for the next session.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := e.mount(events.NewBus())
			if err != nil {
				return err
			}
			defer panel.Unmount()

			if err := panel.Apply(statepkg.RevealFileAction{Path: e.vaultArg(args[0])}); err != nil {
				return err
			}

			s := panel.Snapshot()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "focus:  %s\n", s.FocusedFolder)
			fmt.Fprintf(out, "active: %s\n", s.ActiveFolderPath)
			for _, folder := range s.OpenFolderList() {
				fmt.Fprintf(out, "open:   %s\n", folder)
			}
			return nil
		},
	}
}
