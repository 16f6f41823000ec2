package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kk-code-lab/notetree/internal/app"
	"github.com/kk-code-lab/notetree/internal/events"
	"github.com/kk-code-lab/notetree/internal/fs"
	"github.com/kk-code-lab/notetree/internal/logging"
)

func NewBrowseCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive folder tree and file list",
		Long: `Open the interactive panel. The vault is watched while the
panel is open, so notes created, renamed or removed elsewhere show up
immediately.

Keys:
  j/k, arrows   move            enter   open folder / select file
  space         expand folder   tab     switch pane
  h             folder view     p       pin file
  n             new note        e       edit file
  r             reveal file     R       refresh
  q             quit`,
		Args: cobra.NoArgs,
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
			defer func() {
				if err := panel.Unmount(); err != nil {
					e.logger.Warn("unmount panel", zap.Error(err))
				}
			}()

			go func() {
				if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
					e.logger.Error("watcher stopped", zap.Error(err))
				}
			}()
			go app.ForwardChanges(ctx, watcher.Events(), bus)

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initialise screen: %w", err)
			}

			browser := app.NewApplication(screen, panel, app.Options{
				Title:  filepath.Base(e.vaultDir),
				OSPath: e.vault.OSPath,
				Logger: logging.Named("app"),
			})
			defer func() {
				_ = browser.Close()
			}()
			return browser.Run(ctx)
		},
	}
}
