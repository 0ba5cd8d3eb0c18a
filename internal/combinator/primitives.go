package combinator

import (
	"strconv"
	"strings"
)

// Parser consumes a prefix of in and produces a T. On failure the returned
// Input is in itself and err is a *Failure.
type Parser[T any] func(in Input) (Input, T, error)

// ASCIIPunctuation is the set of characters a backslash may escape.
const ASCIIPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// IsSpace reports whether c is a space or a tab.
func IsSpace(c rune) bool {
	return c == ' ' || c == '\t'
}

// IsASCIIAlphanumeric reports whether c is in [0-9A-Za-z].
func IsASCIIAlphanumeric(c rune) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// Tag matches the literal lit exactly.
func Tag(lit string) Parser[string] {
	want := strconv.Quote(lit)
	return func(in Input) (Input, string, error) {
		rest := in.Rest()
		if strings.HasPrefix(rest, lit) {
			return in.advance(len(lit)), lit, nil
		}
		if len(rest) < len(lit) && strings.HasPrefix(lit, rest) {
			return in, "", Fail(UnexpectedEndOfInput, in.advance(len(rest)), want)
		}
		return in, "", Fail(UnexpectedToken, in, want)
	}
}

// Satisfy consumes one character accepted by pred. desc names the class
// for error messages.
func Satisfy(desc string, pred func(rune) bool) Parser[rune] {
	return func(in Input) (Input, rune, error) {
		r, size := in.peek()
		if size == 0 {
			return in, 0, Fail(UnexpectedEndOfInput, in, desc)
		}
		if !pred(r) {
			return in, 0, Fail(UnexpectedCharacterClass, in, desc)
		}
		return in.advance(size), r, nil
	}
}

// OneOf consumes exactly one character from set.
func OneOf(set string) Parser[rune] {
	return Satisfy("one of "+strconv.Quote(set), func(r rune) bool {
		return strings.ContainsRune(set, r)
	})
}

// TakeWhile consumes the longest, possibly empty, run of characters
// accepted by pred. It never fails.
func TakeWhile(pred func(rune) bool) Parser[string] {
	return func(in Input) (Input, string, error) {
		cur := in
		for {
			r, size := cur.peek()
			if size == 0 || !pred(r) {
				break
			}
			cur = cur.advance(size)
		}
		return cur, cur.Since(in), nil
	}
}

// TakeWhile1 is TakeWhile but requires at least one character.
func TakeWhile1(desc string, pred func(rune) bool) Parser[string] {
	first := Satisfy(desc, pred)
	rest := TakeWhile(pred)
	return func(in Input) (Input, string, error) {
		cur, _, err := first(in)
		if err != nil {
			return in, "", err
		}
		cur, _, _ = rest(cur)
		return cur, cur.Since(in), nil
	}
}

// IsA consumes a non-empty run of characters from set.
func IsA(set string) Parser[string] {
	return TakeWhile1("run of "+strconv.Quote(set), func(r rune) bool {
		return strings.ContainsRune(set, r)
	})
}

// Alphanumeric1 consumes a non-empty run of ASCII letters and digits.
func Alphanumeric1() Parser[string] {
	return TakeWhile1("alphanumeric", IsASCIIAlphanumeric)
}

// Space0 consumes any run of spaces and tabs.
func Space0() Parser[string] {
	return TakeWhile(IsSpace)
}

// Space1 consumes a non-empty run of spaces and tabs.
func Space1() Parser[string] {
	return TakeWhile1("space", IsSpace)
}

// Take consumes exactly n characters.
func Take(n int) Parser[string] {
	return func(in Input) (Input, string, error) {
		cur := in
		for i := 0; i < n; i++ {
			_, size := cur.peek()
			if size == 0 {
				return in, "", Fail(UnexpectedEndOfInput, cur, strconv.Itoa(n)+" characters")
			}
			cur = cur.advance(size)
		}
		return cur, cur.Since(in), nil
	}
}

// EOF succeeds with an empty string only at end of input.
func EOF() Parser[string] {
	return func(in Input) (Input, string, error) {
		if !in.AtEOF() {
			return in, "", Fail(UnexpectedToken, in, "end of input")
		}
		return in, "", nil
	}
}

// EOL matches a single line ending: "\r\n", "\r" or "\n".
func EOL() Parser[string] {
	return func(in Input) (Input, string, error) {
		rest := in.Rest()
		switch {
		case strings.HasPrefix(rest, "\r\n"):
			return in.advance(2), "\r\n", nil
		case strings.HasPrefix(rest, "\r"), strings.HasPrefix(rest, "\n"):
			return in.advance(1), rest[:1], nil
		case rest == "":
			return in, "", Fail(UnexpectedEndOfInput, in, "line ending")
		}
		return in, "", Fail(UnexpectedToken, in, "line ending")
	}
}

// LineEnd matches a line ending or the end of input. The end of input
// yields an empty string.
func LineEnd() Parser[string] {
	eol := EOL()
	return func(in Input) (Input, string, error) {
		if in.AtEOF() {
			return in, "", nil
		}
		cur, term, err := eol(in)
		if err != nil {
			return in, "", Fail(UnexpectedToken, in, "line ending or end of input")
		}
		return cur, term, nil
	}
}

// Escaped matches a backslash followed by one ASCII punctuation character
// and yields the punctuation character.
func Escaped() Parser[string] {
	gate := Peek(Preceded(Tag(`\`), OneOf(ASCIIPunctuation)))
	skip := Take(1)
	char := Take(1)
	return func(in Input) (Input, string, error) {
		if _, _, err := gate(in); err != nil {
			return in, "", err
		}
		cur, _, _ := skip(in)
		cur, c, _ := char(cur)
		return cur, c, nil
	}
}

// Insecure matches the NUL character, which is never passed through to
// output.
func Insecure() Parser[string] {
	return Tag("\x00")
}
