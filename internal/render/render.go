// Package render serializes a document tree to an HTML fragment.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docmark/internal/doctree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// textContainer wraps every top-level text node.
const textContainer = atom.P

// Options controls rendering.
type Options struct {
	// EscapeText HTML-escapes text content. Off by default: the current
	// grammar emits no markup inside text.
	EscapeText bool
}

// Renderer writes trees as HTML. It never modifies the tree.
type Renderer struct {
	opts Options
}

// New returns a renderer.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// HTML renders tree with default options.
func HTML(tree *doctree.Tree) string {
	return New(Options{}).String(tree)
}

// String renders tree to a string. It panics if the tree holds a tag or
// node kind the renderer has no arm for; writes to a strings.Builder
// cannot fail, so that is the only error Render can return here.
func (r *Renderer) String(tree *doctree.Tree) string {
	var sb strings.Builder
	if err := r.Render(&sb, tree); err != nil {
		panic(err)
	}
	return sb.String()
}

// Render writes each top-level node in document order, with no separator.
func (r *Renderer) Render(w io.Writer, tree *doctree.Tree) error {
	for _, n := range tree.Nodes() {
		if err := r.node(w, n, 0); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) node(w io.Writer, n *doctree.Node, depth int) error {
	switch n.Kind() {
	case doctree.ElementNode:
		return r.element(w, n, depth)
	case doctree.TextNode:
		text := n.Data()
		if r.opts.EscapeText {
			text = html.EscapeString(text)
		}
		if depth > 0 {
			_, err := io.WriteString(w, text)
			return err
		}
		_, err := fmt.Fprintf(w, "<%s>%s</%s>", textContainer, text, textContainer)
		return err
	default:
		return fmt.Errorf("render: unknown node kind %d", n.Kind())
	}
}

func (r *Renderer) element(w io.Writer, n *doctree.Node, depth int) error {
	tag := n.Tag()
	name := tag.Atom()
	if name == 0 {
		return fmt.Errorf("render: unknown tag %v", tag)
	}
	if tag.Void() {
		_, err := fmt.Fprintf(w, "<%s />", name)
		return err
	}
	if _, err := fmt.Fprintf(w, "<%s>", name); err != nil {
		return err
	}
	for _, child := range n.Children() {
		if err := r.node(w, child, depth+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "</%s>", name)
	return err
}
