package parser

import (
	c "github.com/dgallion1/docmark/internal/combinator"
	"github.com/dgallion1/docmark/internal/doctree"
)

// A thematic break may be indented by up to three spaces; four or more
// make the line something else.
var breakIndent = c.RepeatMN(0, 3, c.Tag(" "))

var thematicBreakLine = c.Delimited(
	breakIndent,
	c.Alt(breakRun('*'), breakRun('-'), breakRun('_')),
	c.LineEnd(),
)

// ThematicBreak recognizes a line of three or more '*', '-' or '_'
// characters, all the same, optionally separated by spaces or tabs. On
// success the input is positioned after the line ending.
func ThematicBreak(in c.Input) (c.Input, *doctree.Node, error) {
	rest, _, err := thematicBreakLine(in)
	if err != nil {
		return in, nil, err
	}
	return rest, doctree.NewElement(doctree.TagHR), nil
}

// breakRun matches three occurrences of mark with optional spaces between
// them, then any further run of mark and spaces.
func breakRun(mark rune) c.Parser[string] {
	m := c.Tag(string(mark))
	return c.Recognize(c.Terminated(
		c.Sequence(m, c.Space0(), m, c.Space0(), m),
		c.TakeWhile(func(r rune) bool { return r == mark || c.IsSpace(r) }),
	))
}
