package main

import (
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/notetree/internal/events"
	renderui "github.com/kk-code-lab/notetree/internal/ui/render"
)

func NewTreeCmd(e *env) *cobra.Command {
	var expandAll bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the folder tree",
		Long: `Print the folder tree below the focused folder. Only folders
opened in the panel are expanded unless --all is given. Counts are
shown as (direct/total) when folderCount is enabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := e.mount(events.NewBus())
			if err != nil {
				return err
			}
			defer panel.Unmount()

			printLines(cmd.OutOrStdout(), renderui.TreeLines(panel.Snapshot(), expandAll))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&expandAll, "all", "a", false, "Expand every folder")
	return cmd
}
