// Package tokenizer turns a character stream into a sequence of
// Tokens using longest-match lookup against a grammar's pattern
// table, tracking line and column as it goes.
package tokenizer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/llkit/llkit/grammar"
	"github.com/llkit/llkit/token"
)

// DefaultMaxTokenLength bounds how many runes a single token may
// span. A pattern that would need to match more than this to complete
// fails with TokenTooLarge instead of buffering without limit.
const DefaultMaxTokenLength = 16 * 1024

type position struct {
	line, column int
}

// Tokenizer pulls runes from a reader into a sliding window buffer
// and repeatedly applies a grammar's pattern table to find the next
// token, advancing the window past whatever matched.
type Tokenizer struct {
	br           *bufio.Reader
	window       []rune
	positions    []position
	atEOF        bool
	line, column int
	maxTokenLen  int
	table        *grammar.PatternTable
	useTokenList bool
	list         *TokenList
}

// NewTokenizer returns a tokenizer reading from r against table, which
// must already have had Prepare called on it. caseInsensitive sets the
// tokenizer-wide matching mode (spec.md §3/§6): every pattern in table
// is matched case-insensitively, or none are, never a mix.
func NewTokenizer(r io.Reader, table *grammar.PatternTable, caseInsensitive bool) *Tokenizer {
	table.SetCaseInsensitive(caseInsensitive)
	return &Tokenizer{
		br:          bufio.NewReader(r),
		line:        1,
		column:      1,
		maxTokenLen: DefaultMaxTokenLength,
		table:       table,
	}
}

// SetMaxTokenLength overrides the default token-length cap.
func (tz *Tokenizer) SetMaxTokenLength(n int) { tz.maxTokenLen = n }

// SetUseTokenList enables recording every matched token, including
// matches of ignored patterns, into an internal TokenList as it is
// produced, retrievable with TokenList.
func (tz *Tokenizer) SetUseTokenList(use bool) {
	tz.useTokenList = use
	if use && tz.list == nil {
		tz.list = NewTokenList()
	}
}

// TokenList returns the tokens emitted so far, if SetUseTokenList(true)
// was called; otherwise nil.
func (tz *Tokenizer) TokenList() *TokenList { return tz.list }

// Reset discards the tokenizer's buffered state and begins reading
// from r, as if newly constructed (the token list, if enabled, is
// also cleared).
func (tz *Tokenizer) Reset(r io.Reader) {
	tz.br = bufio.NewReader(r)
	tz.window = nil
	tz.positions = nil
	tz.atEOF = false
	tz.line, tz.column = 1, 1
	if tz.useTokenList {
		tz.list = NewTokenList()
	}
}

func (tz *Tokenizer) fill(n int) {
	for len(tz.window) < n && !tz.atEOF {
		r, _, err := tz.br.ReadRune()
		if err != nil {
			tz.atEOF = true
			break
		}
		tz.window = append(tz.window, r)
		tz.positions = append(tz.positions, position{tz.line, tz.column})
		if r == '\n' {
			tz.line++
			tz.column = 1
		} else {
			tz.column++
		}
	}
}

func (tz *Tokenizer) advance(n int) {
	tz.window = append([]rune(nil), tz.window[n:]...)
	tz.positions = append([]position(nil), tz.positions[n:]...)
}

// Next returns the next token, skipping (and not returning) any match
// of a pattern marked ignored. It returns io.EOF once the input is
// exhausted with no further token to report.
func (tz *Tokenizer) Next() (token.Token, error) {
	for {
		tz.fill(1)
		if len(tz.window) == 0 {
			return token.Token{}, io.EOF
		}
		tz.fill(tz.maxTokenLen + 1)

		pat, n := tz.table.LongestMatch(tz.window, 0)
		pos := tz.positions[0]

		if pat == nil {
			bad := string(tz.window[0])
			tz.advance(1)
			return token.Token{}, &ParseError{
				Kind: UnexpectedChar, Line: pos.line, Column: pos.column, Image: bad,
				ErrorMessage: fmt.Sprintf("no token pattern matches %q", bad),
			}
		}

		if n > tz.maxTokenLen {
			return token.Token{}, &ParseError{
				Kind: TokenTooLarge, Line: pos.line, Column: pos.column,
				ErrorMessage: fmt.Sprintf("token exceeds maximum length of %d runes", tz.maxTokenLen),
			}
		}

		image := string(tz.window[:n])
		tz.advance(n)

		if pat.IsIgnore() {
			if tz.useTokenList {
				tz.list.Append(token.Token{ID: pat.ID(), Image: image, Line: pos.line, Column: pos.column})
			}
			continue
		}
		if pat.IsError() {
			return token.Token{}, &ParseError{
				Kind: InvalidToken, Line: pos.line, Column: pos.column, Image: image,
				ErrorMessage: pat.ErrorMessage(),
			}
		}

		tok := token.Token{ID: pat.ID(), Image: image, Line: pos.line, Column: pos.column}
		if tz.useTokenList {
			tz.list.Append(tok)
		}
		return tok, nil
	}
}
