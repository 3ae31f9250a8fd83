package tokenizer

import (
	"io"
	"strings"
	"testing"

	"github.com/llkit/llkit/grammar"
)

func buildTable(t *testing.T) *grammar.PatternTable {
	t.Helper()
	table := grammar.NewPatternTable()
	table.Add(grammar.NewStringTokenPattern(1, "IF", "if"))
	ident, err := grammar.NewRegexpTokenPattern(2, "IDENT", `[a-z][a-z0-9]*`)
	if err != nil {
		t.Fatal(err)
	}
	table.Add(ident)
	ws, err := grammar.NewRegexpTokenPattern(3, "WS", `[ \t\n]+`)
	if err != nil {
		t.Fatal(err)
	}
	ws.SetIgnore()
	table.Add(ws)
	bad, err := grammar.NewRegexpTokenPattern(4, "BADNUM", `0[0-9]+`)
	if err != nil {
		t.Fatal(err)
	}
	bad.SetError("leading zero is not allowed")
	table.Add(bad)
	if err := table.Prepare(); err != nil {
		t.Fatal(err)
	}
	return table
}

func TestTokenizerIgnoreAndLongestMatch(t *testing.T) {
	table := buildTable(t)
	tz := NewTokenizer(strings.NewReader("if  iffy"), table, false)

	tok, err := tz.Next()
	if err != nil || tok.ID != 1 || tok.Image != "if" {
		t.Fatalf("got (%v, %v), want IF \"if\"", tok, err)
	}
	tok, err = tz.Next()
	if err != nil || tok.ID != 2 || tok.Image != "iffy" {
		t.Fatalf("got (%v, %v), want IDENT \"iffy\" (longest match over keyword prefix)", tok, err)
	}
	if _, err := tz.Next(); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestTokenizerErrorPattern(t *testing.T) {
	table := buildTable(t)
	tz := NewTokenizer(strings.NewReader("0123"), table, false)
	_, err := tz.Next()
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != InvalidToken {
		t.Fatalf("got %v, want InvalidToken ParseError", err)
	}
}

func TestTokenizerUnexpectedChar(t *testing.T) {
	table := buildTable(t)
	tz := NewTokenizer(strings.NewReader("@"), table, false)
	_, err := tz.Next()
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != UnexpectedChar {
		t.Fatalf("got %v, want UnexpectedChar ParseError", err)
	}
}

func TestTokenizerTokenList(t *testing.T) {
	table := buildTable(t)
	tz := NewTokenizer(strings.NewReader("if iffy"), table, false)
	tz.SetUseTokenList(true)
	for {
		_, err := tz.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	// Ignored tokens (the whitespace between "if" and "iffy") are still
	// linked into the list, so there are 3 entries, not 2.
	list := tz.TokenList()
	if list.Len() != 3 {
		t.Fatalf("got %d tokens, want 3", list.Len())
	}
	idx := list.Head()
	if list.At(idx).Image != "if" {
		t.Fatalf("got %q, want \"if\"", list.At(idx).Image)
	}
	idx = list.Next(idx)
	if list.At(idx).Image != " " {
		t.Fatalf("got %q, want \" \"", list.At(idx).Image)
	}
	idx = list.Next(idx)
	if list.At(idx).Image != "iffy" {
		t.Fatalf("got %q, want \"iffy\"", list.At(idx).Image)
	}
	if !IsNil(list.Next(idx)) {
		t.Fatal("expected Next of last element to be nil")
	}
}

func TestTokenizerCaseInsensitive(t *testing.T) {
	table := grammar.NewPatternTable()
	table.Add(grammar.NewStringTokenPattern(1, "IF", "if"))
	if err := table.Prepare(); err != nil {
		t.Fatal(err)
	}
	// Case sensitivity is a tokenizer-wide mode, not a per-pattern one:
	// the same table matches "IF" only because NewTokenizer is told to
	// run case-insensitively, not because the pattern itself was built
	// that way.
	tz := NewTokenizer(strings.NewReader("IF"), table, true)
	tok, err := tz.Next()
	if err != nil || tok.ID != 1 {
		t.Fatalf("got (%v, %v), want IF", tok, err)
	}
}

func TestTokenizerCaseSensitiveByDefault(t *testing.T) {
	table := grammar.NewPatternTable()
	table.Add(grammar.NewStringTokenPattern(1, "IF", "if"))
	if err := table.Prepare(); err != nil {
		t.Fatal(err)
	}
	tz := NewTokenizer(strings.NewReader("IF"), table, false)
	_, err := tz.Next()
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != UnexpectedChar {
		t.Fatalf("got %v, want UnexpectedChar ParseError (no case-insensitive fold)", err)
	}
}
