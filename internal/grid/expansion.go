package grid

import (
	"sort"
	"strings"
)

// Expansion tracks which rows of a nested grid are expanded. Nodes live in an
// arena and are addressed by the path of entity ids from the top level down,
// so ids only need to be unique among siblings.
//
// A node that is collapsed takes its whole subtree with it. Ancestors that
// were only created to hold a descendant are pruned as soon as they hold
// nothing, so toggling a leaf twice restores the previous state exactly.
//
// The zero value is ready to use. Expansion is not safe for concurrent use.
type Expansion struct {
	nodes []expNode
	free  []int
}

type expNode struct {
	id       string
	parent   int
	open     bool
	live     bool
	children map[string]int
}

const rootIndex = 0

func (e *Expansion) init() {
	if len(e.nodes) == 0 {
		e.nodes = append(e.nodes, expNode{live: true, parent: -1, children: map[string]int{}})
	}
}

// lookup returns the arena index for path, or -1.
func (e *Expansion) lookup(path []string) int {
	e.init()
	cur := rootIndex
	for _, id := range path {
		next, ok := e.nodes[cur].children[id]
		if !ok {
			return -1
		}
		cur = next
	}
	return cur
}

func (e *Expansion) alloc(id string, parent int) int {
	n := expNode{id: id, parent: parent, live: true, children: map[string]int{}}
	if k := len(e.free); k > 0 {
		idx := e.free[k-1]
		e.free = e.free[:k-1]
		e.nodes[idx] = n
		return idx
	}
	e.nodes = append(e.nodes, n)
	return len(e.nodes) - 1
}

func (e *Expansion) ensure(path []string) int {
	e.init()
	cur := rootIndex
	for _, id := range path {
		next, ok := e.nodes[cur].children[id]
		if !ok {
			next = e.alloc(id, cur)
			e.nodes[cur].children[id] = next
		}
		cur = next
	}
	return cur
}

// release frees idx and its subtree and unlinks it from its parent.
func (e *Expansion) release(idx int) {
	n := e.nodes[idx]
	for _, child := range n.children {
		e.release(child)
	}
	if n.parent >= 0 {
		delete(e.nodes[n.parent].children, n.id)
	}
	e.nodes[idx] = expNode{}
	e.free = append(e.free, idx)
}

// prune walks up from idx removing closed, childless placeholders.
func (e *Expansion) prune(idx int) {
	for idx != rootIndex && idx >= 0 {
		n := e.nodes[idx]
		if n.open || len(n.children) > 0 {
			return
		}
		parent := n.parent
		e.release(idx)
		idx = parent
	}
}

// Toggle expands the row at path, or collapses it (and everything beneath it)
// when it is already expanded. An empty path is ignored.
func (e *Expansion) Toggle(path ...string) {
	if len(path) == 0 {
		return
	}
	if e.IsExpanded(path...) {
		e.Collapse(path...)
		return
	}
	idx := e.ensure(path)
	e.nodes[idx].open = true
}

// Collapse closes the row at path and forgets every expansion beneath it.
func (e *Expansion) Collapse(path ...string) {
	if len(path) == 0 {
		return
	}
	idx := e.lookup(path)
	if idx < 0 {
		return
	}
	parent := e.nodes[idx].parent
	e.release(idx)
	e.prune(parent)
}

// IsExpanded reports whether the row at path itself is expanded.
func (e *Expansion) IsExpanded(path ...string) bool {
	if len(path) == 0 {
		return false
	}
	idx := e.lookup(path)
	return idx > 0 && e.nodes[idx].open
}

// Visible reports whether every row along path is expanded, i.e. whether the
// children of the last element are on screen.
func (e *Expansion) Visible(path ...string) bool {
	for i := range path {
		if !e.IsExpanded(path[:i+1]...) {
			return false
		}
	}
	return len(path) > 0
}

// Reset collapses everything.
func (e *Expansion) Reset() {
	e.nodes = nil
	e.free = nil
}

// Len is the number of expanded rows at any depth.
func (e *Expansion) Len() int {
	n := 0
	for i, node := range e.nodes {
		if i != rootIndex && node.live && node.open {
			n++
		}
	}
	return n
}

// ExpandedPaths lists every expanded path in lexical order of its Key.
func (e *Expansion) ExpandedPaths() [][]string {
	var out [][]string
	var walk func(idx int, prefix []string)
	walk = func(idx int, prefix []string) {
		for id, child := range e.nodes[idx].children {
			p := append(append([]string(nil), prefix...), id)
			if e.nodes[child].open {
				out = append(out, p)
			}
			walk(child, p)
		}
	}
	e.init()
	walk(rootIndex, nil)
	sort.Slice(out, func(i, j int) bool { return Key(out[i]...) < Key(out[j]...) })
	return out
}

// Key renders a path as the flat "parent-child" key used in logs and exports.
func Key(path ...string) string {
	return strings.Join(path, "-")
}
