// Package grammar models a token and production grammar: the set of
// lexical patterns a tokenizer recognizes, and the set of production
// rules an LL(k) parser derives from them.
package grammar

import (
	"unicode"

	"github.com/llkit/llkit/regex"
)

// TokenPatternKind distinguishes a literal-string pattern from a
// regular-expression pattern.
type TokenPatternKind int

const (
	TokenString TokenPatternKind = iota
	TokenRegexp
)

// TokenPattern is one entry in a pattern table: either a fixed literal
// image or a compiled regular expression, with an associated token ID.
// A pattern is either ignored (matched but never emitted), flagged as
// an error (matched but reported as invalid input), or emitted
// normally as a Token — never more than one of these.
//
// Case sensitivity is not a per-pattern choice: it is a single mode
// for the whole tokenizer (spec.md §3), applied uniformly by
// PatternTable.SetCaseInsensitive.
type TokenPattern struct {
	id    int
	name  string
	kind  TokenPatternKind
	image string
	re    *regex.Regexp

	ignore       bool
	errorFlag    bool
	errorMessage string
}

// NewStringTokenPattern builds a literal-image pattern.
func NewStringTokenPattern(id int, name, image string) *TokenPattern {
	return &TokenPattern{id: id, name: name, kind: TokenString, image: image}
}

// NewRegexpTokenPattern compiles pattern and builds a regexp-backed
// token pattern. It fails with the regex package's *regex.SyntaxError
// if pattern is malformed. The pattern is compiled case-sensitively;
// PatternTable.SetCaseInsensitive retoggles it later if the tokenizer
// using this table runs in case-insensitive mode.
func NewRegexpTokenPattern(id int, name, pattern string) (*TokenPattern, error) {
	re, err := regex.Compile(pattern, false)
	if err != nil {
		return nil, err
	}
	return &TokenPattern{id: id, name: name, kind: TokenRegexp, image: pattern, re: re}, nil
}

// applyCaseMode retoggles a regexp pattern's case sensitivity; it is a
// no-op for a literal pattern, whose folding is decided per lookup
// from the table-wide mode (in PatternTable's prefix-tree walk)
// instead.
func (p *TokenPattern) applyCaseMode(caseInsensitive bool) {
	if p.kind == TokenRegexp {
		p.re.SetCaseInsensitive(caseInsensitive)
	}
}

func (p *TokenPattern) ID() int                { return p.id }
func (p *TokenPattern) Name() string           { return p.name }
func (p *TokenPattern) Kind() TokenPatternKind { return p.kind }
func (p *TokenPattern) Image() string          { return p.image }
func (p *TokenPattern) IsIgnore() bool         { return p.ignore }
func (p *TokenPattern) IsError() bool          { return p.errorFlag }
func (p *TokenPattern) ErrorMessage() string   { return p.errorMessage }

// SetIgnore marks the pattern so matches are consumed silently,
// never emitted as a Token. It clears any prior error flag, since a
// pattern cannot be both ignored and an error at once.
func (p *TokenPattern) SetIgnore() {
	p.ignore = true
	p.errorFlag = false
	p.errorMessage = ""
}

// SetError marks the pattern so matches are reported as invalid
// input with the given message. It clears any prior ignore flag.
func (p *TokenPattern) SetError(message string) {
	p.errorFlag = true
	p.errorMessage = message
	p.ignore = false
}

// matchLength returns the length, in runes, of the longest match of
// this pattern starting exactly at window[pos], or -1 if it does not
// match there. caseInsensitive is the tokenizer-wide mode; a regexp
// pattern ignores it here since applyCaseMode already configured its
// matcher.
func (p *TokenPattern) matchLength(window []rune, pos int, caseInsensitive bool) int {
	switch p.kind {
	case TokenString:
		return matchLiteral(window, pos, p.image, caseInsensitive)
	case TokenRegexp:
		return p.re.MatchFromPosition(window, pos)
	default:
		return -1
	}
}

func matchLiteral(window []rune, pos int, image string, caseInsensitive bool) int {
	lit := []rune(image)
	if pos+len(lit) > len(window) {
		return -1
	}
	for i, r := range lit {
		w := window[pos+i]
		if w == r {
			continue
		}
		if caseInsensitive && foldEq(w, r) {
			continue
		}
		return -1
	}
	return len(lit)
}

func foldEq(a, b rune) bool {
	return unicode.ToLower(a) == unicode.ToLower(b)
}
