package doctree

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html/atom"
)

// Tag is a recognized element kind. Each tag has exactly one HTML name.
type Tag int

const (
	TagHR Tag = iota + 1 // thematic break
)

var tagAtoms = map[Tag]atom.Atom{
	TagHR: atom.Hr,
}

// Atom returns the canonical HTML element for t, or 0 if t is unknown.
func (t Tag) Atom() atom.Atom {
	return tagAtoms[t]
}

// String returns the lowercase HTML tag name.
func (t Tag) String() string {
	if a := t.Atom(); a != 0 {
		return a.String()
	}
	return fmt.Sprintf("tag(%d)", int(t))
}

// Void reports whether elements with this tag never have content.
func (t Tag) Void() bool {
	switch t {
	case TagHR:
		return true
	}
	return false
}

// Kind says which variant a Node is.
type Kind int

const (
	ElementNode Kind = iota + 1
	TextNode
)

// Node is an element or a run of text. Nodes are immutable once built and
// own their children; there are no parent links.
type Node struct {
	kind     Kind
	tag      Tag
	data     string
	children []*Node
}

// NewElement builds an element node. The children slice is copied.
func NewElement(tag Tag, children ...*Node) *Node {
	return &Node{kind: ElementNode, tag: tag, children: slices.Clone(children)}
}

// NewText builds a text node holding already-decoded character data.
func NewText(data string) *Node {
	return &Node{kind: TextNode, data: data}
}

func (n *Node) Kind() Kind { return n.kind }

// Tag returns the element tag, or 0 for text nodes.
func (n *Node) Tag() Tag { return n.tag }

// Data returns the text of a text node, or "" for elements.
func (n *Node) Data() string { return n.data }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// NodeName follows the DOM convention: the uppercase tag name for
// elements and "#text" for text.
func (n *Node) NodeName() string {
	if n.kind == TextNode {
		return "#text"
	}
	return strings.ToUpper(n.tag.String())
}

// Equal reports whether n and o are structurally identical.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.kind != o.kind || n.tag != o.tag || n.data != o.data || len(n.children) != len(o.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	if n.kind == TextNode {
		return fmt.Sprintf("#text %q", n.data)
	}
	if len(n.children) == 0 {
		return n.tag.String()
	}
	parts := make([]string, len(n.children))
	for i, c := range n.children {
		parts[i] = c.String()
	}
	return n.tag.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Tree is the parsed document: an ordered list of top-level nodes.
type Tree struct {
	Title string // Document title (from filename), empty if unknown
	nodes []*Node
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// Append adds n after all existing top-level nodes.
func (t *Tree) Append(n *Node) {
	t.nodes = append(t.nodes, n)
}

// Nodes returns the top-level nodes in document order.
func (t *Tree) Nodes() []*Node {
	return slices.Clone(t.nodes)
}

// Len returns the number of top-level nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Walk visits every node top-down in document order. Returning false from
// fn skips the node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	for _, n := range t.nodes {
		walk(n, 0)
	}
}
