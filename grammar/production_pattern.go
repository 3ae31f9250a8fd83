package grammar

// ElementKind tags what a production Element refers to.
type ElementKind int

const (
	// ElementToken references a terminal by token ID.
	ElementToken ElementKind = iota
	// ElementRule references another production by name.
	ElementRule
	// ElementGroup is an inline nested alternation, e.g. `(a | b)`.
	ElementGroup
)

// Element is one member of a production alternative, repeated between
// Min and Max times (Max == -1 means unbounded). (1,1) is a plain
// single occurrence, (0,1) optional, (0,-1) zero-or-more, (1,-1)
// one-or-more.
type Element struct {
	Kind    ElementKind
	TokenID int
	Rule    string
	Group   *ProductionPattern
	Min     int
	Max     int
}

// Token builds a required single occurrence of a terminal.
func Token(id int) Element { return Element{Kind: ElementToken, TokenID: id, Min: 1, Max: 1} }

// Rule builds a required single occurrence of a named production.
func Rule(name string) Element { return Element{Kind: ElementRule, Rule: name, Min: 1, Max: 1} }

// Repeat returns a copy of e with its repetition bounds overridden.
func (e Element) Repeat(min, max int) Element {
	e.Min, e.Max = min, max
	return e
}

// Alternative is one production alternative: a sequence of elements
// that must all match, in order.
type Alternative struct {
	Elements []Element
}

// Seq builds an Alternative from a list of elements.
func Seq(elements ...Element) Alternative {
	return Alternative{Elements: elements}
}

// ProductionPattern is one non-terminal of the grammar: a name and the
// alternatives that derive it. LeftRecursive, RightRecursive and
// MatchesEmpty are filled in by Grammar.Prepare, not by callers.
type ProductionPattern struct {
	Name         string
	Alternatives []Alternative

	LeftRecursive  bool
	RightRecursive bool
	MatchesEmpty   bool
}

// IsLeftRecursive reports whether pp can derive itself as the leftmost
// symbol of some alternative.
func (pp *ProductionPattern) IsLeftRecursive() bool { return pp.LeftRecursive }

// IsRightRecursive reports whether pp can derive itself as the
// rightmost symbol of some alternative.
func (pp *ProductionPattern) IsRightRecursive() bool { return pp.RightRecursive }

// IsMatchingEmpty reports whether pp can derive the empty string.
func (pp *ProductionPattern) IsMatchingEmpty() bool { return pp.MatchesEmpty }

// NewProductionPattern returns an empty production named name.
func NewProductionPattern(name string) *ProductionPattern {
	return &ProductionPattern{Name: name}
}

// AddAlternative appends an alternative to the production.
func (pp *ProductionPattern) AddAlternative(alt Alternative) {
	pp.Alternatives = append(pp.Alternatives, alt)
}
