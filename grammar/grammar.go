package grammar

import "fmt"

// Grammar collects every token pattern and production pattern that
// make up one language definition.
type Grammar struct {
	Table       *PatternTable
	Productions map[string]*ProductionPattern
	order       []string // production names, insertion order
	StartRule   string

	prepared bool
}

// NewGrammar returns an empty grammar.
func NewGrammar() *Grammar {
	return &Grammar{Table: NewPatternTable(), Productions: make(map[string]*ProductionPattern)}
}

// AddTokenPattern registers a token pattern with the grammar's table.
// It rejects a pattern whose ID was already registered by an earlier
// pattern, since the tokenizer has no way to tell them apart.
func (g *Grammar) AddTokenPattern(p *TokenPattern) error {
	for _, existing := range g.Table.Patterns() {
		if existing.ID() == p.ID() {
			return &ParserCreationError{
				Kind:    DuplicateTokenID,
				Message: fmt.Sprintf("token ID %d already registered by pattern %q", p.ID(), existing.Name()),
			}
		}
	}
	g.Table.Add(p)
	return nil
}

// AddProductionPattern registers a production. The first production
// added becomes the grammar's start rule unless SetStartRule is
// called explicitly. A production with no name is rejected: only an
// inline group (referenced via Element.Group, never registered here)
// may be anonymous.
func (g *Grammar) AddProductionPattern(pp *ProductionPattern) error {
	if pp.Name == "" {
		return &ParserCreationError{
			Kind:    InvalidProductionName,
			Message: "a registered production must have a non-empty name",
		}
	}
	if _, exists := g.Productions[pp.Name]; !exists {
		g.order = append(g.order, pp.Name)
	}
	g.Productions[pp.Name] = pp
	if g.StartRule == "" {
		g.StartRule = pp.Name
	}
	return nil
}

// SetStartRule overrides which production the parser begins from.
func (g *Grammar) SetStartRule(name string) { g.StartRule = name }

// Prepare validates the grammar and builds its acceleration
// structures. It collects every defect it finds rather than stopping
// at the first, returning them all. A grammar that returns a non-nil,
// non-empty slice must not be used to construct a parser.
func (g *Grammar) Prepare() []error {
	var errs []error

	if err := g.Table.Prepare(); err != nil {
		errs = append(errs, err)
	}

	for _, name := range g.order {
		pp := g.Productions[name]
		errs = append(errs, g.checkRepetitions(pp)...)
		errs = append(errs, g.checkUnknownReferences(pp)...)
		errs = append(errs, g.checkDuplicateAlternatives(pp)...)
	}

	errs = append(errs, g.checkLeftRecursion()...)
	g.checkRightRecursion()

	for _, name := range g.order {
		g.Productions[name].MatchesEmpty = g.matchesEmpty(name, map[string]bool{})
	}

	if len(errs) == 0 {
		g.prepared = true
	}
	return errs
}

// Prepared reports whether Prepare succeeded with no errors.
func (g *Grammar) Prepared() bool { return g.prepared }

func (g *Grammar) checkRepetitions(pp *ProductionPattern) []error {
	var errs []error
	var walk func(e Element)
	walk = func(e Element) {
		if e.Min < 0 || (e.Max != -1 && e.Max < e.Min) || (e.Min == 0 && e.Max == 0) {
			errs = append(errs, &ParserCreationError{
				Kind:        InvalidRepetition,
				Productions: []string{pp.Name},
				Message:     fmt.Sprintf("invalid repetition bounds (%d, %d)", e.Min, e.Max),
			})
		}
		if e.Kind == ElementGroup && e.Group != nil {
			for _, alt := range e.Group.Alternatives {
				for _, sub := range alt.Elements {
					walk(sub)
				}
			}
		}
	}
	for _, alt := range pp.Alternatives {
		for _, e := range alt.Elements {
			walk(e)
		}
	}
	return errs
}

func (g *Grammar) checkUnknownReferences(pp *ProductionPattern) []error {
	var errs []error
	var walk func(e Element)
	walk = func(e Element) {
		if e.Kind == ElementRule {
			if _, ok := g.Productions[e.Rule]; !ok {
				errs = append(errs, &ParserCreationError{
					Kind:        UnknownReference,
					Productions: []string{pp.Name},
					Message:     fmt.Sprintf("reference to undefined production %q", e.Rule),
				})
			}
		}
		if e.Kind == ElementGroup && e.Group != nil {
			for _, alt := range e.Group.Alternatives {
				for _, sub := range alt.Elements {
					walk(sub)
				}
			}
		}
	}
	for _, alt := range pp.Alternatives {
		for _, e := range alt.Elements {
			walk(e)
		}
	}
	return errs
}

func (g *Grammar) checkDuplicateAlternatives(pp *ProductionPattern) []error {
	var errs []error
	for i := 0; i < len(pp.Alternatives); i++ {
		for j := i + 1; j < len(pp.Alternatives); j++ {
			if alternativesEqual(pp.Alternatives[i], pp.Alternatives[j]) {
				errs = append(errs, &ParserCreationError{
					Kind:        DuplicateAlternative,
					Productions: []string{pp.Name},
					Message:     fmt.Sprintf("alternatives %d and %d are identical", i, j),
				})
			}
		}
	}
	return errs
}

func alternativesEqual(a, b Alternative) bool {
	if len(a.Elements) != len(b.Elements) {
		return false
	}
	for i := range a.Elements {
		if !elementsEqual(a.Elements[i], b.Elements[i]) {
			return false
		}
	}
	return true
}

func elementsEqual(a, b Element) bool {
	if a.Kind != b.Kind || a.Min != b.Min || a.Max != b.Max {
		return false
	}
	switch a.Kind {
	case ElementToken:
		return a.TokenID == b.TokenID
	case ElementRule:
		return a.Rule == b.Rule
	case ElementGroup:
		if a.Group == nil || b.Group == nil {
			return a.Group == b.Group
		}
		if len(a.Group.Alternatives) != len(b.Group.Alternatives) {
			return false
		}
		for i := range a.Group.Alternatives {
			if !alternativesEqual(a.Group.Alternatives[i], b.Group.Alternatives[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// checkLeftRecursion builds a "can start with" graph between
// productions and reports every production reachable from itself.
func (g *Grammar) checkLeftRecursion() []error {
	leadsWith := make(map[string]map[string]bool)
	for _, name := range g.order {
		leadsWith[name] = g.leadingRules(g.Productions[name])
	}

	var errs []error
	for _, name := range g.order {
		if reached(leadsWith, name, name, map[string]bool{}) {
			g.Productions[name].LeftRecursive = true
			errs = append(errs, &ParserCreationError{
				Kind:        LeftRecursion,
				Productions: []string{name},
				Message:     "production is left-recursive",
			})
		}
	}
	return errs
}

// checkRightRecursion marks every production that can derive itself as
// the rightmost symbol of some alternative. Unlike left recursion this
// is not rejected: right recursion is harmless for a recursive-descent
// LL(k) parser, just recorded as a derived property of the grammar.
func (g *Grammar) checkRightRecursion() {
	trailsWith := make(map[string]map[string]bool)
	for _, name := range g.order {
		trailsWith[name] = g.trailingRules(g.Productions[name])
	}
	for _, name := range g.order {
		if reached(trailsWith, name, name, map[string]bool{}) {
			g.Productions[name].RightRecursive = true
		}
	}
}

func reached(graph map[string]map[string]bool, from, target string, seen map[string]bool) bool {
	if seen[from] {
		return false
	}
	seen[from] = true
	for next := range graph[from] {
		if next == target {
			return true
		}
		if reached(graph, next, target, seen) {
			return true
		}
	}
	return false
}

// leadingRules returns the set of production names that could appear
// as the leftmost symbol of some alternative of pp.
func (g *Grammar) leadingRules(pp *ProductionPattern) map[string]bool {
	out := make(map[string]bool)
	var walkAlt func(elements []Element)
	walkAlt = func(elements []Element) {
		for _, e := range elements {
			switch e.Kind {
			case ElementRule:
				out[e.Rule] = true
			case ElementGroup:
				if e.Group != nil {
					for _, alt := range e.Group.Alternatives {
						walkAlt(alt.Elements)
					}
				}
			}
			if e.Min >= 1 {
				return // this element is mandatory: nothing after it can be leftmost
			}
		}
	}
	for _, alt := range pp.Alternatives {
		walkAlt(alt.Elements)
	}
	return out
}

// trailingRules returns the set of production names that could appear
// as the rightmost symbol of some alternative of pp.
func (g *Grammar) trailingRules(pp *ProductionPattern) map[string]bool {
	out := make(map[string]bool)
	var walkAlt func(elements []Element)
	walkAlt = func(elements []Element) {
		for i := len(elements) - 1; i >= 0; i-- {
			e := elements[i]
			switch e.Kind {
			case ElementRule:
				out[e.Rule] = true
			case ElementGroup:
				if e.Group != nil {
					for _, alt := range e.Group.Alternatives {
						walkAlt(alt.Elements)
					}
				}
			}
			if e.Min >= 1 {
				return // this element is mandatory: nothing before it can be rightmost
			}
		}
	}
	for _, alt := range pp.Alternatives {
		walkAlt(alt.Elements)
	}
	return out
}

// matchesEmpty reports whether production name can derive the empty
// string, resolving mutual references via seen to avoid infinite
// recursion on cyclic (non-left-recursive) grammars.
func (g *Grammar) matchesEmpty(name string, seen map[string]bool) bool {
	if seen[name] {
		return false
	}
	seen[name] = true
	pp, ok := g.Productions[name]
	if !ok {
		return false
	}
	for _, alt := range pp.Alternatives {
		if g.alternativeMatchesEmpty(alt.Elements, seen) {
			return true
		}
	}
	return false
}

func (g *Grammar) alternativeMatchesEmpty(elements []Element, seen map[string]bool) bool {
	for _, e := range elements {
		if e.Min == 0 {
			continue
		}
		switch e.Kind {
		case ElementToken:
			return false
		case ElementRule:
			if !g.matchesEmpty(e.Rule, seen) {
				return false
			}
		case ElementGroup:
			if e.Group == nil {
				continue
			}
			matched := false
			for _, alt := range e.Group.Alternatives {
				if g.alternativeMatchesEmpty(alt.Elements, seen) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
	}
	return true
}
