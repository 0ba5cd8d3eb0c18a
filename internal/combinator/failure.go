package combinator

import (
	"errors"
	"fmt"
)

// Kind classifies why a parser failed.
type Kind int

const (
	UnexpectedToken Kind = iota + 1
	UnexpectedCharacterClass
	UnexpectedEndOfInput
	RepetitionCountNotMet
	AllAlternativesFailed
	UnknownReference
)

var kindNames = map[Kind]string{
	UnexpectedToken:          "unexpected token",
	UnexpectedCharacterClass: "unexpected character class",
	UnexpectedEndOfInput:     "unexpected end of input",
	RepetitionCountNotMet:    "repetition count not met",
	AllAlternativesFailed:    "all alternatives failed",
	UnknownReference:         "unknown reference",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Failure is the error returned by every parser in this package.
type Failure struct {
	Kind Kind
	// Pos is the byte offset in the original document where parsing failed.
	Pos int
	// Want describes what was expected at Pos, if known.
	Want string
	// Cause is the inner failure for composite parsers.
	Cause error
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s at offset %d", f.Kind, f.Pos)
	if f.Want != "" {
		msg += ", want " + f.Want
	}
	if f.Cause != nil {
		msg += ": " + f.Cause.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Innermost follows the Cause chain down to the failure that started it.
func (f *Failure) Innermost() *Failure {
	cur := f
	for {
		var next *Failure
		if cur.Cause == nil || !errors.As(cur.Cause, &next) {
			return cur
		}
		cur = next
	}
}

// Fail builds a failure of the given kind at the cursor position.
func Fail(kind Kind, in Input, want string) *Failure {
	return &Failure{Kind: kind, Pos: in.pos, Want: want}
}

// AsFailure extracts the outermost *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// KindOf returns the kind of the outermost failure in err, or 0 if err is
// not a parse failure.
func KindOf(err error) Kind {
	if f, ok := AsFailure(err); ok {
		return f.Kind
	}
	return 0
}

// posOf returns the failing position of err, or -1 if unknown.
func posOf(err error) int {
	if f, ok := AsFailure(err); ok {
		return f.Pos
	}
	return -1
}
