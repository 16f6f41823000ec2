package pathset

import "sort"

// NoParent marks the root node of a Tree.
const NoParent = -1

// Node is one folder in a Tree. Parent and Children are indices into the
// owning Tree's node table, so walking ancestors never needs live links.
type Node struct {
	Path     string
	Name     string
	Parent   int
	Children []int
}

// Tree is a folder table rooted at Nodes[0].
type Tree struct {
	Nodes []Node
	index map[string]int
}

// BuildTree constructs the folder table rooted at root from a flat
// enumeration of folder paths. Paths outside root are ignored; missing
// intermediate folders are created. Children are ordered by path.
func BuildTree(root string, folders []string) Tree {
	root = Clean(root)
	if root == "" {
		root = Root
	}

	t := Tree{index: make(map[string]int)}
	t.add(root, NoParent)

	sorted := make([]string, 0, len(folders))
	for _, f := range folders {
		f = Clean(f)
		if IsUnder(f, root) {
			sorted = append(sorted, f)
		}
	}
	sort.Strings(sorted)

	for _, f := range sorted {
		t.ensure(f, root)
	}
	for i := range t.Nodes {
		children := t.Nodes[i].Children
		sort.Slice(children, func(a, b int) bool {
			return t.Nodes[children[a]].Path < t.Nodes[children[b]].Path
		})
	}
	return t
}

func (t *Tree) add(p string, parent int) int {
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{Path: p, Name: Base(p), Parent: parent})
	t.index[p] = idx
	if parent != NoParent {
		t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	}
	return idx
}

func (t *Tree) ensure(p, root string) int {
	if idx, ok := t.index[p]; ok {
		return idx
	}
	parent := Parent(p)
	parentIdx := 0
	if parent != root {
		parentIdx = t.ensure(parent, root)
	}
	return t.add(p, parentIdx)
}

// Len returns the number of folders in the tree.
func (t Tree) Len() int {
	return len(t.Nodes)
}

// RootPath returns the path of the tree root, or "" for an empty tree.
func (t Tree) RootPath() string {
	if len(t.Nodes) == 0 {
		return ""
	}
	return t.Nodes[0].Path
}

// Lookup returns the node index for p.
func (t Tree) Lookup(p string) (int, bool) {
	if t.index == nil {
		return -1, false
	}
	idx, ok := t.index[Clean(p)]
	return idx, ok
}

// Contains reports whether p is a folder in the tree.
func (t Tree) Contains(p string) bool {
	_, ok := t.Lookup(p)
	return ok
}

// Chain walks parent indices from the node at p up to the tree root and
// returns the visited paths, p first. It returns nil when p is unknown.
func (t Tree) Chain(p string) []string {
	idx, ok := t.Lookup(p)
	if !ok {
		return nil
	}
	var out []string
	for idx != NoParent {
		out = append(out, t.Nodes[idx].Path)
		idx = t.Nodes[idx].Parent
	}
	return out
}

// Walk visits nodes depth first starting at the root. Returning false from
// fn skips the node's children.
func (t Tree) Walk(fn func(idx, depth int) bool) {
	if len(t.Nodes) == 0 {
		return
	}
	var visit func(idx, depth int)
	visit = func(idx, depth int) {
		if !fn(idx, depth) {
			return
		}
		for _, child := range t.Nodes[idx].Children {
			visit(child, depth+1)
		}
	}
	visit(0, 0)
}
