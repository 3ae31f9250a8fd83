package grammar

import (
	"sort"
	"unicode"

	"github.com/coregx/ahocorasick"
)

// PatternTable holds every token pattern of a grammar in insertion
// order and answers the tokenizer's core question: at this position,
// what is the longest match, and which pattern produced it? Ties
// break in favor of whichever pattern was added first.
//
// Literal string patterns are indexed in a prefix tree so a single
// walk considers all of them at once, accelerated by an Aho-Corasick
// automaton that fast-rejects positions where none of the literal
// images occur anywhere ahead in the current window. Every regexp
// pattern is matched directly. Case sensitivity is a single mode for
// the whole table (spec.md §3), set by SetCaseInsensitive — not a
// per-pattern choice — and the Aho-Corasick fast-reject, which only
// knows the exact-case bytes of each literal, is skipped in
// case-insensitive mode so it cannot wrongly reject a differently-cased
// occurrence; the prefix tree itself folds case at every step instead.
type PatternTable struct {
	patterns        []*TokenPattern
	caseInsensitive bool

	literalRoot  *prefixNode
	direct       []indexedPattern
	automaton    *ahocorasick.Automaton
	hasAutomaton bool
	prepared     bool
}

// NewPatternTable returns an empty table.
func NewPatternTable() *PatternTable {
	return &PatternTable{literalRoot: newPrefixNode()}
}

// Add appends a pattern to the table. Patterns must all be added
// before Prepare is called.
func (t *PatternTable) Add(p *TokenPattern) {
	t.patterns = append(t.patterns, p)
}

// Patterns returns the patterns in insertion order.
func (t *PatternTable) Patterns() []*TokenPattern { return t.patterns }

// SetCaseInsensitive sets the table-wide matching mode. It may be
// called again after Prepare to retoggle the mode without rebuilding
// the prefix tree; a tokenizer calls this once, at construction, with
// the mode it was given.
func (t *PatternTable) SetCaseInsensitive(caseInsensitive bool) {
	t.caseInsensitive = caseInsensitive
	for _, p := range t.patterns {
		p.applyCaseMode(caseInsensitive)
	}
}

// Prepare builds the acceleration structures. It must be called once,
// after all patterns are added and before any LongestMatch call.
func (t *PatternTable) Prepare() error {
	var literalImages [][]byte
	for i, p := range t.patterns {
		switch p.kind {
		case TokenString:
			t.literalRoot.insert([]rune(p.image), p, i)
			literalImages = append(literalImages, []byte(p.image))
		default:
			t.direct = append(t.direct, indexedPattern{p, i})
		}
	}
	if len(literalImages) > 0 {
		builder := ahocorasick.NewBuilder()
		for _, img := range literalImages {
			builder.AddPattern(img)
		}
		automaton, err := builder.Build()
		if err != nil {
			return err
		}
		t.automaton = automaton
		t.hasAutomaton = true
	}
	t.prepared = true
	return nil
}

// LongestMatch returns the pattern producing the longest match
// starting exactly at window[pos], and its length, or (nil, -1) if no
// pattern matches there.
func (t *PatternTable) LongestMatch(window []rune, pos int) (*TokenPattern, int) {
	bestPattern, bestLen, bestIndex := t.bestLiteralMatch(window, pos)

	for _, ip := range t.direct {
		n := ip.pattern.matchLength(window, pos, t.caseInsensitive)
		if n < 0 {
			continue
		}
		if n > bestLen || (n == bestLen && ip.index < bestIndex) {
			bestPattern, bestLen, bestIndex = ip.pattern, n, ip.index
		}
	}
	return bestPattern, bestLen
}

type indexedPattern struct {
	pattern *TokenPattern
	index   int
}

func (t *PatternTable) bestLiteralMatch(window []rune, pos int) (*TokenPattern, int, int) {
	if t.hasAutomaton && !t.caseInsensitive {
		rest := string(window[pos:])
		if !t.automaton.IsMatch([]byte(rest)) {
			return nil, -1, len(t.patterns)
		}
	}
	return t.literalRoot.longestMatch(window, pos, t.caseInsensitive)
}

// prefixNode is one node of the literal-image prefix tree.
type prefixNode struct {
	children map[rune]*prefixNode
	pattern  *TokenPattern
	index    int
}

func newPrefixNode() *prefixNode {
	return &prefixNode{children: make(map[rune]*prefixNode)}
}

func (root *prefixNode) insert(image []rune, p *TokenPattern, index int) {
	node := root
	for _, r := range image {
		child, ok := node.children[r]
		if !ok {
			child = newPrefixNode()
			node.children[r] = child
		}
		node = child
	}
	node.pattern = p
	node.index = index
}

// longestMatch walks the tree along window starting at pos, returning
// the deepest node reached that terminates a pattern. In
// case-insensitive mode a child is also matched by case-folded
// equality when no exact-case edge exists.
func (root *prefixNode) longestMatch(window []rune, pos int, caseInsensitive bool) (*TokenPattern, int, int) {
	node := root
	var bestPattern *TokenPattern
	bestLen := -1
	bestIndex := -1
	for i := 0; pos+i < len(window); i++ {
		child, ok := node.child(window[pos+i], caseInsensitive)
		if !ok {
			break
		}
		node = child
		if node.pattern != nil {
			bestPattern, bestLen, bestIndex = node.pattern, i+1, node.index
		}
	}
	return bestPattern, bestLen, bestIndex
}

func (n *prefixNode) child(r rune, caseInsensitive bool) (*prefixNode, bool) {
	if child, ok := n.children[r]; ok {
		return child, true
	}
	if !caseInsensitive {
		return nil, false
	}
	folded := unicode.ToLower(r)
	for key, child := range n.children {
		if unicode.ToLower(key) == folded {
			return child, true
		}
	}
	return nil, false
}

// sortedIDs returns the keys of ids in ascending order. No validation
// step calls it: AddTokenPattern rejects a duplicate token ID as soon
// as it is registered.
func sortedIDs(ids map[int]bool) []int {
	out := make([]int, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
