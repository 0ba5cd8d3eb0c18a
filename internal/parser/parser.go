package parser

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	c "github.com/dgallion1/docmark/internal/combinator"
	"github.com/dgallion1/docmark/internal/doctree"
	"github.com/dgallion1/docmark/internal/entity"
)

// Parser converts raw document bytes into a Tree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Tree, error)
}

// Rule recognizes one block construct at the cursor.
type Rule = c.Parser[*doctree.Node]

// Rules lists every block rule by name.
var Rules = map[string]Rule{
	"thematic_break": ThematicBreak,
}

// DefaultRules is the default precedence order.
var DefaultRules = []string{"thematic_break"}

// SupportedExtensions lists file extensions holding plain-text markup.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Options configures an Engine.
type Options struct {
	// Rules names the enabled block rules in precedence order. Nil means
	// DefaultRules.
	Rules []string
	// DecodeReferences decodes character references in literal text.
	DecodeReferences bool
	// Table backs named references. Nil means entity.Default().
	Table entity.Table
	// Logger receives rule failures at debug level. Nil discards them.
	Logger *slog.Logger
}

type namedRule struct {
	name  string
	parse Rule
}

// Engine tries its rules in order at each block boundary. The first rule
// that matches wins; when none does, the rest of the input becomes a
// single text node.
type Engine struct {
	rules []namedRule
	text  *literalText
	log   *slog.Logger
}

// New builds an engine. It fails if a rule name is unknown.
func New(opts Options) (*Engine, error) {
	names := opts.Rules
	if names == nil {
		names = DefaultRules
	}
	e := &Engine{log: opts.Logger}
	for _, name := range names {
		r, ok := Rules[name]
		if !ok {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
		e.rules = append(e.rules, namedRule{name: name, parse: r})
	}
	if e.log == nil {
		e.log = slog.New(slog.DiscardHandler)
	}
	e.text = &literalText{
		refs:   NewReferences(entity.NewResolver(opts.Table)),
		decode: opts.DecodeReferences,
	}
	return e, nil
}

// Tree parses src. It never fails: input no rule recognizes is kept as
// literal text.
func (e *Engine) Tree(src string) *doctree.Tree {
	tree := doctree.New()
	in := c.NewInput(src)
	for {
		in, _, _ = blankLines(in)
		if in.AtEOF() {
			return tree
		}
		next, node, ok := e.block(in)
		if !ok {
			break
		}
		tree.Append(node)
		in = next
	}
	if _, node, err := e.text.parse(in); err == nil {
		tree.Append(node)
	}
	return tree
}

// block returns the node of the first rule that matches and consumes input.
func (e *Engine) block(in c.Input) (c.Input, *doctree.Node, bool) {
	for _, r := range e.rules {
		next, node, err := r.parse(in)
		if err != nil {
			e.log.Debug("rule did not match", "rule", r.name, "kind", c.KindOf(err).String(), "pos", in.Pos(), "error", err)
			continue
		}
		if next.Pos() == in.Pos() {
			e.log.Warn("rule matched without consuming input", "rule", r.name, "pos", in.Pos())
			continue
		}
		return next, node, true
	}
	return in, nil, false
}

// Parse reads a whole document. The title is the filename without its
// extension.
func (e *Engine) Parse(r io.Reader, filename string) (*doctree.Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	tree := e.Tree(string(src))
	tree.Title = strings.TrimSuffix(filename, filepath.Ext(filename))
	return tree, nil
}
