package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kk-code-lab/notetree/internal/app"
	"github.com/kk-code-lab/notetree/internal/events"
	"github.com/kk-code-lab/notetree/internal/fs"
	"github.com/kk-code-lab/notetree/internal/logging"
	statepkg "github.com/kk-code-lab/notetree/internal/state"
	renderui "github.com/kk-code-lab/notetree/internal/ui/render"
)

func NewWatchCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [folder]",
		Short: "Print the file list every time the vault changes",
		Long: `Keep a panel mounted without a terminal UI and print the file
list of the active folder after every change to the vault. Stop with
Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			watcher, err := fs.NewWatcher(e.vault, logging.Named("watcher"))
			if err != nil {
				return err
			}
			bus := events.NewBus()
			panel, err := e.mount(bus, watcher)
			if err != nil {
				_ = watcher.Close()
				return err
			}
			defer panel.Unmount()

			if len(args) == 1 {
				if err := panel.Apply(statepkg.SelectFolderAction{Path: e.vaultArg(args[0])}); err != nil {
					return err
				}
			}

			go func() {
				if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
					e.logger.Error("watcher stopped", zap.Error(err))
				}
			}()
			go app.ForwardChanges(ctx, watcher.Events(), bus)

			out := cmd.OutOrStdout()
			show := func(s *statepkg.ViewState) {
				fmt.Fprintf(out, "== %s\n", s.ActiveFolderPath)
				printLines(out, renderui.FileLines(s))
			}
			show(panel.Snapshot())

			err = panel.Run(ctx, show)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
