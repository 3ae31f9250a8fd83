package regex

import "unicode"

// Predefined range tables backing the \d \s \w escape shorthands. Each
// is stored as its positive form; \D \S \W apply at the negated set.
var (
	digitRanges = []RuneRange{{'0', '9'}}
	spaceRanges = []RuneRange{
		{' ', ' '}, {'\t', '\t'}, {'\n', '\n'}, {'\r', '\r'}, {'\f', '\f'}, {0x0B, 0x0B},
	}
	wordRanges = []RuneRange{{'a', 'z'}, {'A', 'Z'}, {'0', '9'}, {'_', '_'}}
)

// swapCase flips the Unicode case of r, returning r unchanged if it
// has no case (so é/É fold against each other, not just ASCII a-z/A-Z).
func swapCase(r rune) rune {
	switch {
	case unicode.IsUpper(r):
		return unicode.ToLower(r)
	case unicode.IsLower(r):
		return unicode.ToUpper(r)
	default:
		return r
	}
}

// matches reports whether r is a member of the class, honoring Negate
// and, when ci is set, matching either case of r.
func (c CharClass) matches(r rune, ci bool) bool {
	in := c.rangesContain(r)
	if !in && ci {
		in = c.rangesContain(swapCase(r))
	}
	if c.Negate {
		return !in
	}
	return in
}
