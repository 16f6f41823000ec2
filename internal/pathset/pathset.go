// Package pathset holds pure helpers for vault paths: containment checks,
// parent extraction and folder-table construction from a flat listing.
//
// Vault paths are slash separated and rooted at "/" ("/Notes/A.md").
package pathset

import (
	"path"
	"strings"
)

// Root is the vault root folder path.
const Root = "/"

// Clean normalizes p into the canonical vault form: leading slash, no
// trailing slash, no "." or ".." segments. The empty string stays empty.
func Clean(p string) string {
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Parent returns the folder containing p. The parent of a top-level entry
// is Root; Root itself has no parent and yields "".
func Parent(p string) string {
	p = Clean(p)
	if p == "" || p == Root {
		return ""
	}
	idx := strings.LastIndexByte(p, '/')
	if idx <= 0 {
		return Root
	}
	return p[:idx]
}

// Base returns the last path segment.
func Base(p string) string {
	p = Clean(p)
	if p == "" || p == Root {
		return ""
	}
	return p[strings.LastIndexByte(p, '/')+1:]
}

// Join appends name to dir.
func Join(dir, name string) string {
	if dir == "" || dir == Root {
		return Clean("/" + name)
	}
	return Clean(dir + "/" + name)
}

// Ext returns the extension of p without the leading dot, lowercased.
func Ext(p string) string {
	ext := path.Ext(Base(p))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsUnder reports whether p is a strict descendant of dir. Matching is
// segment aware: "/Notes2/a.md" is not under "/Notes".
func IsUnder(p, dir string) bool {
	p, dir = Clean(p), Clean(dir)
	if p == "" || dir == "" || p == dir {
		return false
	}
	if dir == Root {
		return true
	}
	return strings.HasPrefix(p, dir+"/")
}

// IsWithin reports whether p equals dir or lies under it.
func IsWithin(p, dir string) bool {
	return Clean(p) == Clean(dir) || IsUnder(p, dir)
}

// IsDirectChild reports whether dir is the immediate parent of p.
func IsDirectChild(p, dir string) bool {
	parent := Parent(p)
	return parent != "" && parent == Clean(dir)
}

// Ancestors lists the folders containing p, from the immediate parent up
// to and including Root.
func Ancestors(p string) []string {
	var out []string
	for cur := Parent(p); cur != ""; cur = Parent(cur) {
		out = append(out, cur)
	}
	return out
}

// Rebase rewrites p from oldPrefix to newPrefix when p is within oldPrefix.
// The second return value reports whether a rewrite happened.
func Rebase(p, oldPrefix, newPrefix string) (string, bool) {
	p, oldPrefix, newPrefix = Clean(p), Clean(oldPrefix), Clean(newPrefix)
	if p == oldPrefix {
		return newPrefix, true
	}
	if !IsUnder(p, oldPrefix) {
		return p, false
	}
	rest := strings.TrimPrefix(p, oldPrefix)
	if oldPrefix == Root {
		rest = p
	}
	return Clean(newPrefix + rest), true
}
