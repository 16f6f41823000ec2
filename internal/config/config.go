// Package config loads and saves the panel configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kk-code-lab/notetree/internal/settings"
)

// DirName is the per-vault directory holding configuration and UI state.
const DirName = ".notetree"

// SortOrder is the file list sort criterion.
type SortOrder string

const (
	SortName       SortOrder = "name"
	SortNameRev    SortOrder = "name-rev"
	SortLastUpdate SortOrder = "last-update"
	SortCreated    SortOrder = "created"
	SortFileSize   SortOrder = "file-size"
)

// DependsOnContent reports whether a content edit can move a file within
// the sorted list.
func (s SortOrder) DependsOnContent() bool {
	return s == SortLastUpdate || s == SortFileSize
}

func (s SortOrder) valid() bool {
	switch s {
	case SortName, SortNameRev, SortLastUpdate, SortCreated, SortFileSize:
		return true
	}
	return false
}

// Layout selects whether the folder tree and file list are shown side by side.
type Layout string

const (
	LayoutDisabled   Layout = "disabled"
	LayoutHorizontal Layout = "horizontal"
	LayoutVertical   Layout = "vertical"
)

// Split reports whether both panes are visible at once.
func (l Layout) Split() bool {
	return l == LayoutHorizontal || l == LayoutVertical
}

// CountMode selects which files are counted per folder.
type CountMode string

const (
	CountNotes CountMode = "notes"
	CountFiles CountMode = "files"
)

// StoreConfig locates the UI state database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Path   string `yaml:"path" mapstructure:"path"`
}

// Config is the panel configuration.
type Config struct {
	ExcludedFolders         string      `yaml:"excludedFolders" mapstructure:"excludedFolders"`
	ExcludedExtensions      string      `yaml:"excludedExtensions" mapstructure:"excludedExtensions"`
	ShowFilesFromSubFolders bool        `yaml:"showFilesFromSubFolders" mapstructure:"showFilesFromSubFolders"`
	SortFilesBy             SortOrder   `yaml:"sortFilesBy" mapstructure:"sortFilesBy"`
	FolderCount             bool        `yaml:"folderCount" mapstructure:"folderCount"`
	FolderCountMode         CountMode   `yaml:"folderCountMode" mapstructure:"folderCountMode"`
	Layout                  Layout      `yaml:"layout" mapstructure:"layout"`
	Store                   StoreConfig `yaml:"store" mapstructure:"store"`
	Log                     LogConfig   `yaml:"log" mapstructure:"log"`

	// Path is the file the configuration was read from and is saved to.
	Path string `yaml:"-" mapstructure:"-"`
}

// DefaultPath returns the configuration file location for a vault.
func DefaultPath(vaultDir string) string {
	return filepath.Join(vaultDir, DirName, "notetree.yaml")
}

// Default returns the configuration used when no file exists.
func Default(vaultDir string) Config {
	return Config{
		SortFilesBy:     SortName,
		FolderCount:     true,
		FolderCountMode: CountNotes,
		Layout:          LayoutDisabled,
		Store:           StoreConfig{Path: filepath.Join(vaultDir, DirName, "state.db")},
		Log:             LogConfig{Level: "info", Format: "json", Path: defaultLogPath()},
		Path:            DefaultPath(vaultDir),
	}
}

func defaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "notetree", "notetree.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "notetree", "notetree.log")
}

// Load reads the configuration for vaultDir. An empty file means the
// default location; a missing file yields the defaults. NOTETREE_*
// environment variables override file values.
func Load(vaultDir, file string) (*Config, error) {
	def := Default(vaultDir)
	if file == "" {
		file = def.Path
	}

	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("NOTETREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("excludedFolders", def.ExcludedFolders)
	v.SetDefault("excludedExtensions", def.ExcludedExtensions)
	v.SetDefault("showFilesFromSubFolders", def.ShowFilesFromSubFolders)
	v.SetDefault("sortFilesBy", string(def.SortFilesBy))
	v.SetDefault("folderCount", def.FolderCount)
	v.SetDefault("folderCountMode", string(def.FolderCountMode))
	v.SetDefault("layout", string(def.Layout))
	v.SetDefault("store.path", def.Store.Path)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.path", def.Log.Path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", file, err)
	}
	cfg.Path = file
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values outside the known enumerations.
func (c *Config) Validate() error {
	if !c.SortFilesBy.valid() {
		return fmt.Errorf("sortFilesBy: unknown value %q", c.SortFilesBy)
	}
	switch c.FolderCountMode {
	case CountNotes, CountFiles:
	default:
		return fmt.Errorf("folderCountMode: unknown value %q", c.FolderCountMode)
	}
	switch c.Layout {
	case LayoutDisabled, LayoutHorizontal, LayoutVertical:
	default:
		return fmt.Errorf("layout: unknown value %q", c.Layout)
	}
	return nil
}

// Save writes the configuration back to Path.
func (c *Config) Save() error {
	if c.Path == "" {
		return errors.New("config has no path")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	tmp := c.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, c.Path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// ExcludedFolderList parses the excluded folders string.
func (c *Config) ExcludedFolderList() []string {
	return settings.ParseDelimitedList(c.ExcludedFolders)
}

// ExcludedExtensionList parses the excluded extensions string.
func (c *Config) ExcludedExtensionList() []string {
	return settings.ParseDelimitedList(c.ExcludedExtensions)
}

// SetExcludedFolders serializes folders into the configuration.
func (c *Config) SetExcludedFolders(folders []string) {
	c.ExcludedFolders = settings.SerializeList(folders)
}

// SetExcludedExtensions serializes extensions into the configuration.
func (c *Config) SetExcludedExtensions(exts []string) {
	c.ExcludedExtensions = settings.SerializeList(exts)
}
