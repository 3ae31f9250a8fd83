// Package token defines the value type produced by a tokenizer and
// consumed by a parser.
package token

import "fmt"

// Token is one lexical unit recognized in the input: the pattern ID
// that matched, the exact text matched, and its starting position.
type Token struct {
	ID     int
	Image  string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d: %q (id=%d)", t.Line, t.Column, t.Image, t.ID)
}
