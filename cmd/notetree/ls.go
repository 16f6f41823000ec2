package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/notetree/internal/events"
	statepkg "github.com/kk-code-lab/notetree/internal/state"
	renderui "github.com/kk-code-lab/notetree/internal/ui/render"
)

func NewLsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "ls [folder]",
		Aliases: []string{"list"},
		Short:   "Select a folder and print its file list",
		Long: `Make folder the active folder and print its files, pinned
files first. Without an argument the current active folder is listed:
the folder of the last session in a split layout, else the focused folder.

Examples:
  notetree ls              # List the active folder
  notetree ls Projects     # Switch to /Projects and list it`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := e.mount(events.NewBus())
			if err != nil {
				return err
			}
			defer panel.Unmount()

			if len(args) == 1 {
				folder := e.vaultArg(args[0])
				if err := panel.Apply(statepkg.SelectFolderAction{Path: folder}); err != nil {
					return err
				}
				if panel.Snapshot().ActiveFolderPath != folder {
					return fmt.Errorf("folder not found: %s", folder)
				}
			}

			printLines(cmd.OutOrStdout(), renderui.FileLines(panel.Snapshot()))
			return nil
		},
	}
}
