package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kk-code-lab/notetree/internal/pathset"
	"golang.org/x/text/unicode/norm"
)

// DiskVault exposes a directory on disk as a vault.
type DiskVault struct {
	root string
}

// NewDiskVault opens the vault rooted at dir.
func NewDiskVault(dir string) (*DiskVault, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve vault dir %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open vault %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open vault %s: not a directory", abs)
	}
	return &DiskVault{root: abs}, nil
}

// Dir returns the absolute directory backing the vault.
func (v *DiskVault) Dir() string {
	return v.root
}

// OSPath maps a vault path to its location on disk.
func (v *DiskVault) OSPath(p string) string {
	p = pathset.Clean(p)
	if p == "" || p == pathset.Root {
		return v.root
	}
	return filepath.Join(v.root, filepath.FromSlash(strings.TrimPrefix(p, "/")))
}

// VaultPath maps a location on disk back to a vault path. The second
// return value is false when osPath lies outside the vault.
func (v *DiskVault) VaultPath(osPath string) (string, bool) {
	rel, err := filepath.Rel(v.root, osPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	if rel == "." {
		return pathset.Root, true
	}
	return pathset.Clean(norm.NFC.String(filepath.ToSlash(rel))), true
}

// Lookup implements Storage.
func (v *DiskVault) Lookup(p string) (Entry, bool) {
	p = pathset.Clean(p)
	if p == "" {
		return Entry{}, false
	}
	if p == pathset.Root {
		return NewFolder(pathset.Root), true
	}
	if hiddenPath(p) {
		return Entry{}, false
	}
	info, err := os.Stat(v.OSPath(p))
	if err != nil {
		return Entry{}, false
	}
	return entryFromInfo(p, info), true
}

// Children implements Storage. Unreadable folders list as empty.
func (v *DiskVault) Children(folder string) []Entry {
	folder = pathset.Clean(folder)
	dirPath := v.OSPath(folder)
	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil
	}

	out := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		rawName := de.Name()
		fullPath := filepath.Join(dirPath, rawName)
		if skipOnDisk(fullPath, rawName) {
			continue
		}
		// Symlinks are resolved so linked folders browse like real ones.
		info, err := os.Stat(fullPath)
		if err != nil {
			continue
		}
		name := norm.NFC.String(rawName)
		out = append(out, entryFromInfo(pathset.Join(folder, name), info))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// CreateFile implements Creator. It fails with ErrExist when p is taken.
func (v *DiskVault) CreateFile(p string) (Entry, error) {
	p = pathset.Clean(p)
	osPath := v.OSPath(p)
	if err := os.MkdirAll(filepath.Dir(osPath), 0o755); err != nil {
		return Entry{}, fmt.Errorf("create folder for %s: %w", p, err)
	}
	f, err := os.OpenFile(osPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return Entry{}, fmt.Errorf("create %s: %w", p, ErrExist)
		}
		return Entry{}, fmt.Errorf("create %s: %w", p, err)
	}
	info, statErr := f.Stat()
	if closeErr := f.Close(); closeErr != nil {
		return Entry{}, fmt.Errorf("close %s: %w", p, closeErr)
	}
	if statErr != nil {
		return NewFile(p, 0, timeNow()), nil
	}
	return entryFromInfo(p, info), nil
}

func entryFromInfo(p string, info os.FileInfo) Entry {
	if info.IsDir() {
		return NewFolder(p)
	}
	return NewFile(p, info.Size(), info.ModTime())
}
