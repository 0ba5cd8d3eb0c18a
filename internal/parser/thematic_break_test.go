package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	c "github.com/dgallion1/docmark/internal/combinator"
	"github.com/dgallion1/docmark/internal/doctree"
)

func TestThematicBreak_Matches(t *testing.T) {
	inputs := []string{
		"***",
		"---",
		"___",
		"_____________________________________",
		" ***",
		"  ***",
		"   ***",
		" - - -",
		" **  * ** * ** * **",
		"-     -      -      -",
		" - - -    ",
		" - - -\t",
		"*\t*\t*",
	}
	for _, input := range inputs {
		rest, node, err := ThematicBreak(c.NewInput(input))
		if err != nil {
			t.Errorf("input=%q: unexpected error: %v", input, err)
			continue
		}
		if diff := cmp.Diff(doctree.NewElement(doctree.TagHR), node); diff != "" {
			t.Errorf("input=%q: node mismatch (-want +got):\n%s", input, diff)
		}
		if !rest.AtEOF() {
			t.Errorf("input=%q: expected whole line consumed, rest %q", input, rest.Rest())
		}
	}
}

func TestThematicBreak_ConsumesLineEnding(t *testing.T) {
	for _, term := range []string{"\n", "\r\n", "\r"} {
		rest, _, err := ThematicBreak(c.NewInput("* * *" + term + "next"))
		if err != nil {
			t.Fatalf("term=%q: unexpected error: %v", term, err)
		}
		if rest.Rest() != "next" {
			t.Errorf("term=%q: expected rest %q, got %q", term, "next", rest.Rest())
		}
	}
}

func TestThematicBreak_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  c.Kind // outermost failure kind
		pos   int
		inner c.Kind // innermost failure kind
	}{
		{"wrong characters plus", "+++", c.AllAlternativesFailed, 0, c.UnexpectedToken},
		{"wrong characters equals", "===", c.AllAlternativesFailed, 0, c.UnexpectedToken},
		{"mixed", "-*_", c.AllAlternativesFailed, 1, c.UnexpectedToken},
		{"mixed indented", " *-*", c.AllAlternativesFailed, 2, c.UnexpectedToken},
		{"insufficient", "--", c.AllAlternativesFailed, 2, c.UnexpectedEndOfInput},
		{"too much indentation", "    ***", c.AllAlternativesFailed, 3, c.UnexpectedToken},
		{"tab indentation", "\t***", c.AllAlternativesFailed, 0, c.UnexpectedToken},
		{"mixed termination", "***-_*", c.UnexpectedToken, 3, c.UnexpectedToken},
		{"trailing letter", "_ _ _ _ a", c.UnexpectedToken, 8, c.UnexpectedToken},
		{"leading letter", "a------", c.AllAlternativesFailed, 0, c.UnexpectedToken},
		{"letter inside", "---a---", c.UnexpectedToken, 3, c.UnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, node, err := ThematicBreak(c.NewInput(tt.input))
			if err == nil {
				t.Fatalf("expected failure, got %v", node)
			}
			if rest.Pos() != 0 {
				t.Errorf("expected no input consumed, got pos %d", rest.Pos())
			}
			f, ok := c.AsFailure(err)
			if !ok {
				t.Fatalf("expected *Failure, got %T", err)
			}
			if f.Kind != tt.kind || f.Pos != tt.pos {
				t.Errorf("expected %v at %d, got %v at %d", tt.kind, tt.pos, f.Kind, f.Pos)
			}
			if inner := f.Innermost(); inner.Kind != tt.inner {
				t.Errorf("expected innermost %v, got %v", tt.inner, inner.Kind)
			}
		})
	}
}
