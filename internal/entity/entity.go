// Package entity resolves HTML character references.
//
// The named reference table is the HTML5 list, embedded as JSON and loaded
// once on first use. Resolvers take a Table so tests can substitute their
// own.
package entity

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"unicode/utf8"
)

// ErrUnknownReference is returned for a name that is not in the table.
var ErrUnknownReference = errors.New("unknown character reference")

// Table maps a reference name (without '&' and ';') to its decoded text.
type Table interface {
	Lookup(name string) (string, bool)
}

// Map is a Table backed by a plain map.
type Map map[string]string

func (m Map) Lookup(name string) (string, bool) {
	s, ok := m[name]
	return s, ok
}

//go:embed entities.json
var entitiesJSON []byte

var (
	defaultOnce  sync.Once
	defaultTable Map
)

// Default returns the process-wide HTML5 table. It is decoded on the first
// call and never modified afterwards.
func Default() Table {
	defaultOnce.Do(func() {
		t, err := Load(bytes.NewReader(entitiesJSON))
		if err != nil {
			// The embedded file is part of the build.
			panic(fmt.Sprintf("entity: embedded table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Load decodes a JSON object of name to decoded text.
func Load(r io.Reader) (Map, error) {
	var m Map
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode entity table: %w", err)
	}
	return m, nil
}

// Resolver decodes named and numeric references against a Table.
type Resolver struct {
	table Table
}

// NewResolver returns a resolver over t. A nil t means Default().
func NewResolver(t Table) *Resolver {
	if t == nil {
		t = Default()
	}
	return &Resolver{table: t}
}

// Named returns the text for a reference name. Lookup is case-sensitive.
func (r *Resolver) Named(name string) (string, error) {
	if s, ok := r.table.Lookup(name); ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReference, name)
}

// Numeric decodes the digits of a numeric reference in the given base
// (10 or 16). Digits that do not name a valid, non-zero Unicode scalar
// value decode to U+FFFD.
func (r *Resolver) Numeric(digits string, base int) string {
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil || n == 0 || n > utf8.MaxRune {
		return string(utf8.RuneError)
	}
	c := rune(n)
	if !utf8.ValidRune(c) {
		return string(utf8.RuneError)
	}
	return string(c)
}
