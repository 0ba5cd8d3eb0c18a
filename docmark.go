// Package docmark converts plain-text markup into an HTML fragment.
//
// Input is scanned block by block against an ordered list of grammar rules;
// whatever no rule recognizes is kept as literal text. The resulting
// document tree is then rendered to HTML.
package docmark

import (
	"io"
	"sync"

	"github.com/dgallion1/docmark/internal/doctree"
	"github.com/dgallion1/docmark/internal/parser"
	"github.com/dgallion1/docmark/internal/render"
)

// Converter pairs a parsing engine with a renderer. It is safe for
// concurrent use.
type Converter struct {
	engine   *parser.Engine
	renderer *render.Renderer
}

// NewConverter builds a converter. It fails if popts names an unknown rule.
func NewConverter(popts parser.Options, ropts render.Options) (*Converter, error) {
	e, err := parser.New(popts)
	if err != nil {
		return nil, err
	}
	return &Converter{engine: e, renderer: render.New(ropts)}, nil
}

// Convert parses text and renders it. It always succeeds.
func (c *Converter) Convert(text string) string {
	html, _ := c.ConvertTree(text)
	return html
}

// ConvertTree is Convert but also returns the parsed tree.
func (c *Converter) ConvertTree(text string) (string, *doctree.Tree) {
	tree := c.engine.Tree(text)
	return c.renderer.String(tree), tree
}

// ConvertReader reads a whole document and renders it to w.
func (c *Converter) ConvertReader(w io.Writer, r io.Reader, filename string) (*doctree.Tree, error) {
	tree, err := c.engine.Parse(r, filename)
	if err != nil {
		return nil, err
	}
	if err := c.renderer.Render(w, tree); err != nil {
		return nil, err
	}
	return tree, nil
}

var (
	defaultOnce      sync.Once
	defaultConverter *Converter
)

// Parse converts document text to HTML with the default rule set.
func Parse(text string) string {
	defaultOnce.Do(func() {
		c, err := NewConverter(parser.Options{}, render.Options{})
		if err != nil {
			// The default rules are always registered.
			panic(err)
		}
		defaultConverter = c
	})
	return defaultConverter.Convert(text)
}
