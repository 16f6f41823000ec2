package settings

import (
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Keys names the store entries of one vault.
type Keys struct {
	ActiveFolderPath string
	FocusedFolder    string
	OpenFolders      string
	PinnedFiles      string
}

// NewKeys derives the keys for vault. Several vaults can share a store.
func NewKeys(vault string) Keys {
	prefix := "notetree:" + vault + ":"
	return Keys{
		ActiveFolderPath: prefix + "activeFolderPath",
		FocusedFolder:    prefix + "focusedFolder",
		OpenFolders:      prefix + "openFolders",
		PinnedFiles:      prefix + "pinnedFiles",
	}
}

// LoadPathList reads the JSON array stored under key and keeps the paths
// for which resolve reports true. A missing key, malformed JSON or stale
// paths never fail the load; they yield fewer (or no) paths.
func LoadPathList(store Store, key string, resolve func(string) bool, logger *zap.Logger) []string {
	if logger == nil {
		logger = zap.NewNop()
	}
	raw, ok := store.Get(key)
	if !ok || raw == "" {
		return nil
	}

	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.Warn("ignoring malformed persisted list", zap.String("key", key), zap.Error(err))
		return nil
	}

	out := make([]string, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, p := range stored {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if resolve != nil && !resolve(p) {
			logger.Debug("dropping stale persisted path", zap.String("key", key), zap.String("path", p))
			continue
		}
		out = append(out, p)
	}
	return out
}

// SavePathList stores paths under key as a JSON array.
func SavePathList(store Store, key string, paths []string) error {
	if paths == nil {
		paths = []string{}
	}
	data, err := json.Marshal(paths)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return store.Set(key, string(data))
}

// SavePathSet stores a set of paths in sorted order.
func SavePathSet(store Store, key string, set map[string]struct{}) error {
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return SavePathList(store, key, paths)
}
