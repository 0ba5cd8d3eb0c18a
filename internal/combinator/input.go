// Package combinator provides small, composable parsers over a read-only
// input cursor. Every parser either succeeds, returning the remaining input
// and its output, or fails with a *Failure and leaves the input untouched.
package combinator

import "unicode/utf8"

// Input is a view over the unconsumed suffix of a document. It is a value
// type: advancing returns a new Input and never affects the receiver.
type Input struct {
	src string
	pos int
}

// NewInput returns a cursor positioned at the start of src.
func NewInput(src string) Input {
	return Input{src: src}
}

// Rest returns the unconsumed text.
func (in Input) Rest() string {
	return in.src[in.pos:]
}

// Pos returns the byte offset of the cursor in the original document.
func (in Input) Pos() int {
	return in.pos
}

// Len returns the number of unconsumed bytes.
func (in Input) Len() int {
	return len(in.src) - in.pos
}

// AtEOF reports whether all input has been consumed.
func (in Input) AtEOF() bool {
	return in.pos >= len(in.src)
}

// Since returns the text consumed between start and in. start must be an
// earlier cursor over the same document.
func (in Input) Since(start Input) string {
	return in.src[start.pos:in.pos]
}

func (in Input) advance(n int) Input {
	return Input{src: in.src, pos: in.pos + n}
}

// peek decodes the next rune. size is 0 at end of input.
func (in Input) peek() (r rune, size int) {
	if in.AtEOF() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(in.src[in.pos:])
}
