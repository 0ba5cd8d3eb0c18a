package parser

import (
	"testing"

	c "github.com/dgallion1/docmark/internal/combinator"
	"github.com/dgallion1/docmark/internal/entity"
)

func newLiteralText(decode bool) *literalText {
	return &literalText{refs: NewReferences(entity.NewResolver(nil)), decode: decode}
}

func TestLiteralText_Lines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "Multiple     spaces", "Multiple     spaces"},
		{"unicode", "Foo χρῆν", "Foo χρῆν"},
		{"symbols", "hello $.;'there", "hello $.;'there"},
		{"newline kept", "foo\nbaz", "foo\nbaz"},
		{"spaces around newline", "foo \n baz", "foo\nbaz"},
		{"crlf normalized", "foo\r\nbaz\rqux", "foo\nbaz\nqux"},
		{"indentation dropped", "   foo\n\tbar", "foo\nbar"},
		{"blank lines trimmed", "\n\nfoo\n\n", "foo"},
		{"interior blank line kept", "foo\n\nbar", "foo\n\nbar"},
		{"whitespace-only interior line", "foo\n  \t\nbar", "foo\n\nbar"},
		{"nul replaced", "a\x00b", "a\ufffdb"},
		{"references left alone", "&amp; &#35;", "&amp; &#35;"},
		{"backslash escapes left alone", `\*not\*`, `\*not\*`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, node, err := newLiteralText(false).parse(c.NewInput(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if node.Data() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, node.Data())
			}
			if !rest.AtEOF() {
				t.Errorf("expected all input consumed, rest %q", rest.Rest())
			}
		})
	}
}

func TestLiteralText_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n", " \t\r\n "} {
		_, node, err := newLiteralText(false).parse(c.NewInput(input))
		if err == nil {
			t.Errorf("input=%q: expected failure, got %v", input, node)
			continue
		}
		if c.KindOf(err) != c.UnexpectedEndOfInput {
			t.Errorf("input=%q: expected %v, got %v", input, c.UnexpectedEndOfInput, err)
		}
	}
}

func TestLiteralText_DecodeReferences(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"&AElig;sop", "\u00c6sop"},
		{"caf&#233; &amp; bar", "caf\u00e9 & bar"},
		{"&#x1F600;", "\U0001F600"},
		{"&#0;", "\ufffd"},
		{"&madeUpEntity; stays", "&madeUpEntity; stays"},
		{"&copy without semicolon", "&copy without semicolon"},
		{"a && b", "a && b"},
		{`\&amp;`, `\&amp;`},
		{`\&amp; and \&#35; but &amp;`, `\&amp; and \&#35; but &`},
		{`\\&amp;`, `\\&`},
	}
	for _, tt := range tests {
		_, node, err := newLiteralText(true).parse(c.NewInput(tt.input))
		if err != nil {
			t.Fatalf("input=%q: unexpected error: %v", tt.input, err)
		}
		if node.Data() != tt.want {
			t.Errorf("input=%q: expected %q, got %q", tt.input, tt.want, node.Data())
		}
	}
}
