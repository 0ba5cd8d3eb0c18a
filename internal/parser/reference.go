package parser

import (
	c "github.com/dgallion1/docmark/internal/combinator"
	"github.com/dgallion1/docmark/internal/entity"
)

const (
	decimalDigits = "0123456789"
	hexDigits     = "0123456789abcdefABCDEF"
)

var entityName = c.Delimited(c.Tag("&"), c.Alphanumeric1(), c.Tag(";"))

var (
	hexDigitRun = c.Delimited(
		c.Sequence(c.Tag("&#"), c.Recognize(c.OneOf("xX"))),
		c.RepeatMN(1, 6, c.Recognize(c.OneOf(hexDigits))),
		c.Tag(";"),
	)
	decDigitRun = c.Delimited(
		c.Tag("&#"),
		c.RepeatMN(1, 7, c.Recognize(c.OneOf(decimalDigits))),
		c.Tag(";"),
	)
)

// References parses character references and decodes them with a
// resolver.
type References struct {
	resolver *entity.Resolver
}

// NewReferences returns reference parsers backed by r.
func NewReferences(r *entity.Resolver) *References {
	return &References{resolver: r}
}

// EntityRef parses "&name;" and yields the decoded text. A well-formed
// reference to an unknown name fails with UnknownReference, reported at
// the end of the reference.
func (x *References) EntityRef(in c.Input) (c.Input, string, error) {
	rest, name, err := entityName(in)
	if err != nil {
		return in, "", err
	}
	s, err := x.resolver.Named(name)
	if err != nil {
		return in, "", &c.Failure{Kind: c.UnknownReference, Pos: rest.Pos(), Want: "known reference name", Cause: err}
	}
	return rest, s, nil
}

// HexCharRef parses "&#x" or "&#X", one to six hex digits and ";".
func (x *References) HexCharRef(in c.Input) (c.Input, string, error) {
	rest, digits, err := hexDigitRun(in)
	if err != nil {
		return in, "", err
	}
	return rest, x.resolver.Numeric(digits, 16), nil
}

// DecCharRef parses "&#", one to seven decimal digits and ";".
func (x *References) DecCharRef(in c.Input) (c.Input, string, error) {
	rest, digits, err := decDigitRun(in)
	if err != nil {
		return in, "", err
	}
	return rest, x.resolver.Numeric(digits, 10), nil
}

// NumericCharRef tries the hexadecimal form before the decimal one.
func (x *References) NumericCharRef() c.Parser[string] {
	return c.Alt[string](x.HexCharRef, x.DecCharRef)
}

// CharRef parses any character reference.
func (x *References) CharRef() c.Parser[string] {
	return c.Alt[string](x.NumericCharRef(), x.EntityRef)
}
