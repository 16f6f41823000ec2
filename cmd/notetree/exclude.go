package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/notetree/internal/events"
	statepkg "github.com/kk-code-lab/notetree/internal/state"
)

func NewExcludeCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exclude",
		Short: "Manage excluded folders",
		Long: `Excluded folders are hidden from the tree, the file list and
the counts. Entries are vault paths without the leading slash or glob
patterns such as "Archive/*". Changes are saved to the configuration file.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <folder>",
		Short: "Exclude a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withPanel(statepkg.AddExcludedFolderAction{Folder: excludeArg(args[0])})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <folder>",
		Short: "Stop excluding a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withPanel(statepkg.RemoveExcludedFolderAction{Folder: excludeArg(args[0])})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List excluded folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := e.mount(events.NewBus())
			if err != nil {
				return err
			}
			defer panel.Unmount()

			for _, folder := range panel.Snapshot().ExcludedFolders {
				fmt.Fprintln(cmd.OutOrStdout(), folder)
			}
			return nil
		},
	})

	return cmd
}

func excludeArg(arg string) string {
	return strings.TrimPrefix(strings.TrimSpace(arg), "/")
}

// withPanel mounts a panel, applies one action and unmounts again.
func (e *env) withPanel(action statepkg.Action) error {
	panel, err := e.mount(events.NewBus())
	if err != nil {
		return err
	}
	applyErr := panel.Apply(action)
	if err := panel.Unmount(); err != nil && applyErr == nil {
		return err
	}
	return applyErr
}
