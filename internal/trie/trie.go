// Package trie implements the prefix tree used for command, argument and value completion.
package trie

import (
	"iter"
	"strings"
)

// Node is a single character in the trie
type Node struct {
	value    rune
	depth    int
	complete bool
	parent   *Node

	// children keeps first-insertion order, byValue is the lookup index
	children []*Node
	byValue  map[rune]*Node
}

func newNode(value rune, parent *Node) *Node {
	depth := 0
	if parent != nil {
		depth = parent.depth + 1
	}
	return &Node{
		value:   value,
		depth:   depth,
		parent:  parent,
		byValue: make(map[rune]*Node),
	}
}

// Value returns the character stored at this node. The root holds zero.
func (n *Node) Value() rune {
	return n.value
}

// Depth returns the distance from the root
func (n *Node) Depth() int {
	return n.depth
}

// IsComplete reports whether an inserted string terminates at this node
func (n *Node) IsComplete() bool {
	return n.complete
}

// ChildCount returns the number of direct children
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Children returns the direct children in insertion order
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the child matching c, or nil.
// Case-insensitive lookup probes the ASCII lower then upper variant of c.
func (n *Node) Child(c rune, caseInsensitive bool) *Node {
	if !caseInsensitive {
		return n.byValue[c]
	}
	if child, ok := n.byValue[toLowerASCII(c)]; ok {
		return child
	}
	if child, ok := n.byValue[toUpperASCII(c)]; ok {
		return child
	}
	return nil
}

// String rebuilds the characters on the path from the root to this node
func (n *Node) String() string {
	runes := make([]rune, n.depth)
	for cur := n; cur != nil && cur.depth > 0; cur = cur.parent {
		runes[cur.depth-1] = cur.value
	}
	return string(runes)
}

func (n *Node) addChild(c rune) *Node {
	if child, ok := n.byValue[c]; ok {
		return child
	}
	child := newNode(c, n)
	n.byValue[c] = child
	n.children = append(n.children, child)
	return child
}

// Trie is a prefix tree over strings. Nodes are never removed.
type Trie struct {
	root *Node
}

// New creates an empty trie, optionally seeded with items
func New(items ...string) *Trie {
	t := &Trie{root: newNode(0, nil)}
	t.InsertAll(items)
	return t
}

// Root returns the root node
func (t *Trie) Root() *Node {
	return t.root
}

// Insert adds s to the trie. Inserting an existing string is a no-op.
func (t *Trie) Insert(s string) {
	current := t.root
	for _, c := range s {
		current = current.addChild(c)
	}
	current.complete = true
}

// InsertAll inserts every item in order
func (t *Trie) InsertAll(items []string) {
	for _, item := range items {
		t.Insert(item)
	}
}

// PrefixNode returns the deepest node reached by consuming s from the root.
// It returns the root when nothing matched and never returns nil.
func (t *Trie) PrefixNode(s string, caseInsensitive bool) *Node {
	result := t.root
	for _, c := range s {
		next := result.Child(c, caseInsensitive)
		if next == nil {
			break
		}
		result = next
	}
	return result
}

// Contains reports whether s was inserted
func (t *Trie) Contains(s string, caseInsensitive bool) bool {
	node := t.PrefixNode(s, caseInsensitive)
	return node.depth == len([]rune(s)) && node.complete
}

// Enumerate yields every complete string at or below node, depth first in
// insertion order. Each string is the suffix below node, so node itself
// yields "" when it is complete.
func Enumerate(node *Node) iter.Seq[string] {
	return func(yield func(string) bool) {
		var path []rune
		var walk func(n *Node) bool
		walk = func(n *Node) bool {
			if n.complete && !yield(string(path)) {
				return false
			}
			for _, child := range n.children {
				path = append(path, child.value)
				if !walk(child) {
					return false
				}
				path = path[:len(path)-1]
			}
			return true
		}
		walk(node)
	}
}

// ExtendUnambiguous descends from node while it is not complete and has
// exactly one child. It returns the characters added and the node it stopped on.
func ExtendUnambiguous(node *Node) (string, *Node) {
	var b strings.Builder
	for !node.complete && len(node.children) == 1 {
		node = node.children[0]
		b.WriteRune(node.value)
	}
	return b.String(), node
}

func toLowerASCII(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func toUpperASCII(c rune) rune {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
