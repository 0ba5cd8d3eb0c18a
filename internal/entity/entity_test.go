package entity

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestDefault_NamedReferences(t *testing.T) {
	r := NewResolver(nil)
	tests := []struct {
		name string
		want string
	}{
		{"AElig", "Æ"},
		{"Afr", "\U0001d504"},
		{"amp", "&"},
		{"copy", "©"},
		{"NotEqualTilde", "\u2242\u0338"},
	}
	for _, tt := range tests {
		got, err := r.Named(tt.name)
		if err != nil {
			t.Fatalf("name=%q: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("name=%q: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestDefault_UnknownAndCaseSensitive(t *testing.T) {
	r := NewResolver(nil)
	for _, name := range []string{"madeUpEntity", "aelig2", "AMp"} {
		_, err := r.Named(name)
		if !errors.Is(err, ErrUnknownReference) {
			t.Errorf("name=%q: expected ErrUnknownReference, got %v", name, err)
		}
	}
}

func TestDefault_LoadedOnce(t *testing.T) {
	var wg sync.WaitGroup
	tables := make([]Table, 8)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tables[i] = Default()
		}(i)
	}
	wg.Wait()
	first := tables[0].(Map)
	for i, tb := range tables[1:] {
		if len(tb.(Map)) != len(first) {
			t.Errorf("table %d: expected %d entries, got %d", i+1, len(first), len(tb.(Map)))
		}
	}
	if len(first) < 2000 {
		t.Errorf("expected the full HTML5 table, got %d entries", len(first))
	}
}

func TestResolver_SubstituteTable(t *testing.T) {
	r := NewResolver(Map{"shrug": "¯\\_(ツ)_/¯"})
	got, err := r.Named("shrug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "¯\\_(ツ)_/¯" {
		t.Errorf("expected substitute value, got %q", got)
	}
	if _, err := r.Named("amp"); !errors.Is(err, ErrUnknownReference) {
		t.Errorf("expected substitute table to replace the default, got %v", err)
	}
}

func TestResolver_Numeric(t *testing.T) {
	r := NewResolver(Map{})
	tests := []struct {
		digits string
		base   int
		want   string
	}{
		{"1234", 10, "\u04d2"},
		{"35", 10, "#"},
		{"04D2", 16, "\u04d2"},
		{"cab", 16, "\u0cab"},
		{"0", 10, "\ufffd"},
		{"D800", 16, "\ufffd"},
		{"110000", 16, "\ufffd"},
		{"9999999", 10, "\ufffd"},
		{"", 10, "\ufffd"},
	}
	for _, tt := range tests {
		if got := r.Numeric(tt.digits, tt.base); got != tt.want {
			t.Errorf("digits=%q base=%d: expected %q, got %q", tt.digits, tt.base, tt.want, got)
		}
	}
}

func TestLoad(t *testing.T) {
	m, err := Load(strings.NewReader(`{"lt": "<", "ngE": "\u2267\u0338"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := m.Lookup("ngE"); !ok || s != "\u2267\u0338" {
		t.Errorf("expected two-codepoint value, got %q (%v)", s, ok)
	}

	if _, err := Load(strings.NewReader(`["lt"]`)); err == nil {
		t.Error("expected error for non-object JSON")
	}
}
