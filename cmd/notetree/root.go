package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kk-code-lab/notetree/internal/app"
	"github.com/kk-code-lab/notetree/internal/config"
	"github.com/kk-code-lab/notetree/internal/events"
	"github.com/kk-code-lab/notetree/internal/fs"
	"github.com/kk-code-lab/notetree/internal/logging"
	"github.com/kk-code-lab/notetree/internal/pathset"
	"github.com/kk-code-lab/notetree/internal/settings"
)

// env is shared by every subcommand. The persistent pre-run fills it.
type env struct {
	vaultDir   string
	configFile string
	logLevel   string

	cfg    *config.Config
	vault  *fs.DiskVault
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "notetree",
		Short: "Browse a notes vault as a folder tree and a file list",
		Long: `notetree keeps a folder tree and a file list in sync with a
directory of notes.

Examples:
  notetree browse                 # Interactive panel for the current directory
  notetree --vault ~/notes tree   # Print the folder tree of ~/notes
  notetree ls Projects            # List the files of /Projects`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.open()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&e.vaultDir, "vault", "V", "", "Vault directory (defaults to the current directory)")
	root.PersistentFlags().StringVarP(&e.configFile, "config", "c", "", "Configuration file (defaults to <vault>/.notetree/notetree.yaml)")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	root.AddCommand(NewBrowseCmd(e))
	root.AddCommand(NewTreeCmd(e))
	root.AddCommand(NewLsCmd(e))
	root.AddCommand(NewRevealCmd(e))
	root.AddCommand(NewPinCmd(e, true))
	root.AddCommand(NewPinCmd(e, false))
	root.AddCommand(NewExcludeCmd(e))
	root.AddCommand(NewNewCmd(e))
	root.AddCommand(NewWatchCmd(e))
	return root
}

// open loads the configuration, sets up logging and opens the vault.
func (e *env) open() error {
	dir := e.vaultDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve vault %s: %w", dir, err)
	}
	e.vaultDir = abs

	cfg, err := config.Load(abs, e.configFile)
	if err != nil {
		return err
	}
	if e.logLevel != "" {
		cfg.Log.Level = e.logLevel
	}
	if err := logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.Path,
	}); err != nil {
		return err
	}
	e.cfg = cfg
	e.logger = logging.Named("cli")

	vault, err := fs.NewDiskVault(abs)
	if err != nil {
		return err
	}
	e.vault = vault
	return nil
}

// mount opens the settings store and mounts a panel on the vault. The
// store and any extra closers are released by the panel's Unmount.
func (e *env) mount(bus *events.Bus, closers ...io.Closer) (*app.Panel, error) {
	storePath := e.cfg.Store.Path
	if !filepath.IsAbs(storePath) {
		storePath = filepath.Join(e.vaultDir, storePath)
	}
	if err := os.MkdirAll(filepath.Dir(storePath), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	store, err := settings.NewSQLiteStore(storePath)
	if err != nil {
		return nil, err
	}

	panel, err := app.Mount(app.PanelOptions{
		Storage: e.vault,
		Store:   store,
		Keys:    settings.NewKeys(e.vaultDir),
		Config:  e.cfg,
		Bus:     bus,
		Logger:  logging.Named("panel"),
		Closers: append([]io.Closer{store}, closers...),
	})
	if panel == nil {
		_ = store.Close()
		return nil, err
	}
	if err != nil {
		// Restore problems leave a usable panel with fewer remembered paths.
		e.logger.Warn("restore panel", zap.Error(err))
	}
	return panel, nil
}

// vaultArg turns a command line argument into a vault path. An absolute
// file system path inside the vault is accepted as well.
func (e *env) vaultArg(arg string) string {
	if filepath.IsAbs(arg) {
		if _, err := os.Stat(arg); err == nil {
			if p, ok := e.vault.VaultPath(arg); ok {
				return p
			}
		}
	}
	return pathset.Clean(arg)
}

func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
