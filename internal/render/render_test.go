package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/docmark/internal/doctree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func treeOf(nodes ...*doctree.Node) *doctree.Tree {
	tree := doctree.New()
	for _, n := range nodes {
		tree.Append(n)
	}
	return tree
}

func TestHTML_Nodes(t *testing.T) {
	tests := []struct {
		name string
		tree *doctree.Tree
		want string
	}{
		{"empty", treeOf(), ""},
		{"text", treeOf(doctree.NewText("Multiple     spaces")), "<p>Multiple     spaces</p>"},
		{"newline kept", treeOf(doctree.NewText("foo\nbaz")), "<p>foo\nbaz</p>"},
		{"thematic break", treeOf(doctree.NewElement(doctree.TagHR)), "<hr />"},
		{"document order", treeOf(
			doctree.NewText("a"),
			doctree.NewElement(doctree.TagHR),
			doctree.NewText("b"),
		), "<p>a</p><hr /><p>b</p>"},
		{"no escaping", treeOf(doctree.NewText("hello $.;'there <b>")), "<p>hello $.;'there <b></p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTML(tt.tree); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderer_EscapeText(t *testing.T) {
	r := New(Options{EscapeText: true})
	got := r.String(treeOf(doctree.NewText(`a < b & "c"`)))
	want := "<p>a &lt; b &amp; &#34;c&#34;</p>"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderer_Idempotent(t *testing.T) {
	tree := treeOf(doctree.NewText("x"), doctree.NewElement(doctree.TagHR))
	r := New(Options{})
	first := r.String(tree)
	second := r.String(tree)
	if first != second {
		t.Errorf("expected identical output, got %q then %q", first, second)
	}
	if tree.Len() != 2 {
		t.Errorf("expected tree to be unchanged, got %d nodes", tree.Len())
	}
}

func TestRenderer_UnknownTag(t *testing.T) {
	var sb strings.Builder
	err := New(Options{}).Render(&sb, treeOf(doctree.NewElement(doctree.Tag(42))))
	if err == nil {
		t.Fatal("expected error for unknown tag")
	}
}

func TestRenderer_StringPanicsOnUnknownTag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected String to panic on a tag with no render arm")
		}
	}()
	New(Options{}).String(treeOf(doctree.NewText("kept"), doctree.NewElement(doctree.Tag(42))))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderer_WriteError(t *testing.T) {
	err := New(Options{}).Render(failingWriter{}, treeOf(doctree.NewText("x")))
	if err == nil || err.Error() != "disk full" {
		t.Errorf("expected write error, got %v", err)
	}
}

// The output must parse back into the same elements.
func TestHTML_WellFormed(t *testing.T) {
	out := HTML(treeOf(
		doctree.NewElement(doctree.TagHR),
		doctree.NewText("Foo χρῆν"),
		doctree.NewElement(doctree.TagHR),
	))

	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(out), ctx)
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	var got []string
	for _, n := range nodes {
		got = append(got, n.Data)
	}
	want := []string{"hr", "p", "hr"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected elements %v, got %v", want, got)
	}
	if p := nodes[1]; p.FirstChild == nil || p.FirstChild.Data != "Foo χρῆν" {
		t.Errorf("expected paragraph text to survive, got %+v", p.FirstChild)
	}
}
