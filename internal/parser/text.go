package parser

import (
	"strings"

	c "github.com/dgallion1/docmark/internal/combinator"
	"github.com/dgallion1/docmark/internal/doctree"
)

const replacementChar = "\uFFFD"

func isLineEnding(r rune) bool {
	return r == '\n' || r == '\r'
}

// textLine yields one line without its indentation or terminator.
var textLine = c.Terminated(
	c.Preceded(c.Space0(), c.TakeWhile(func(r rune) bool { return !isLineEnding(r) })),
	c.LineEnd(),
)

// blankLines skips lines holding nothing but spaces and tabs.
var blankLines = c.Many0(c.Recognize(c.Sequence(c.Space0(), c.LineEnd())))

// literalText consumes all remaining input as one text node. Line endings
// are kept, normalized to "\n"; spaces and tabs around them are dropped,
// and so are leading and trailing blank lines. It fails with
// UnexpectedEndOfInput when there is no text left.
type literalText struct {
	refs   *References
	decode bool
}

func (lt *literalText) parse(in c.Input) (c.Input, *doctree.Node, error) {
	rest, lines, _ := c.Many0(textLine)(in)

	var (
		sb      strings.Builder
		pending int // blank lines not yet written
	)
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			pending++
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(strings.Repeat("\n", pending+1))
		}
		pending = 0
		lt.writeInline(&sb, line)
	}
	if sb.Len() == 0 {
		return in, nil, c.Fail(c.UnexpectedEndOfInput, rest, "text")
	}
	return rest, doctree.NewText(sb.String()), nil
}

// writeInline copies a line to sb, replacing NUL with U+FFFD and, when
// enabled, decoding character references. Backslash escapes and references
// that do not resolve are copied as they are.
func (lt *literalText) writeInline(sb *strings.Builder, line string) {
	var charRef c.Parser[string]
	if lt.decode {
		charRef = lt.refs.CharRef()
	}
	escaped := c.Escaped()
	nul := c.Insecure()
	one := c.Take(1)

	in := c.NewInput(line)
	for !in.AtEOF() {
		if next, _, err := escaped(in); err == nil {
			sb.WriteString(next.Since(in))
			in = next
			continue
		}
		if charRef != nil {
			if next, s, err := charRef(in); err == nil {
				sb.WriteString(s)
				in = next
				continue
			}
		}
		if next, _, err := nul(in); err == nil {
			sb.WriteString(replacementChar)
			in = next
			continue
		}
		next, s, _ := one(in)
		sb.WriteString(s)
		in = next
	}
}
