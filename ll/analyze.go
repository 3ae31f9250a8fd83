package ll

import (
	"fmt"

	"github.com/llkit/llkit/grammar"
)

// Analysis is the lookahead information computed for one grammar: its
// FIRST_k and FOLLOW_k sets, and, per production, the prediction set
// of each alternative (the lookahead sequences that select it).
type Analysis struct {
	K       int
	Firsts  map[string]*SequenceSet
	Follows map[string]*SequenceSet
	Predict map[string][]*SequenceSet
}

// Analyze computes lookahead sets for g and validates that the
// grammar is LL(k): every pair of alternatives of the same production
// must have disjoint prediction sets. k <= 0 defaults to DefaultK.
// Errors are collected, not returned on the first failure, mirroring
// Grammar.Prepare.
func Analyze(g *grammar.Grammar, k int) (*Analysis, []error) {
	if k <= 0 {
		k = DefaultK
	}

	firsts := FirstSets(g, k)
	follows := FollowSets(g, firsts, k)
	predict := make(map[string][]*SequenceSet, len(g.Productions))

	var errs []error
	for name, pp := range g.Productions {
		sets := make([]*SequenceSet, len(pp.Alternatives))
		for i, alt := range pp.Alternatives {
			first := SequenceFirst(alt.Elements, firsts, k)
			sets[i] = first.Concat(follows[name])
		}
		predict[name] = sets
		errs = append(errs, disjointCheck(name, sets)...)

		for _, alt := range pp.Alternatives {
			errs = append(errs, checkGroupAmbiguity(name, alt.Elements, follows[name], firsts, k)...)
		}
	}

	return &Analysis{K: k, Firsts: firsts, Follows: follows, Predict: predict}, errs
}

// checkGroupAmbiguity recurses into every inline group nested within
// elements, checking that each group's own alternatives have disjoint
// prediction sets too — a group is a small anonymous production, and
// the same LL(k) requirement applies to it.
func checkGroupAmbiguity(ownerName string, elements []grammar.Element, ownFollow *SequenceSet, firsts map[string]*SequenceSet, k int) []error {
	var errs []error
	for i, e := range elements {
		if e.Kind != grammar.ElementGroup || e.Group == nil {
			continue
		}
		suffixFirst := SequenceFirst(elements[i+1:], firsts, k)
		groupFollow := suffixFirst.Concat(ownFollow)

		sets := make([]*SequenceSet, len(e.Group.Alternatives))
		for j, alt := range e.Group.Alternatives {
			sets[j] = SequenceFirst(alt.Elements, firsts, k).Concat(groupFollow)
		}
		errs = append(errs, disjointCheck(ownerName, sets)...)
		for _, alt := range e.Group.Alternatives {
			errs = append(errs, checkGroupAmbiguity(ownerName, alt.Elements, groupFollow, firsts, k)...)
		}
	}
	return errs
}

func disjointCheck(name string, sets []*SequenceSet) []error {
	var errs []error
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			if !sets[i].Disjoint(sets[j]) {
				errs = append(errs, &grammar.ParserCreationError{
					Kind:        grammar.Ambiguity,
					Productions: []string{name},
					Message:     fmt.Sprintf("alternatives %d and %d share a lookahead sequence", i, j),
				})
			}
		}
	}
	return errs
}

// Predicts reports whether the prediction set of alternative altIndex
// of production name contains lookahead (truncated to k tokens).
func (a *Analysis) Predicts(name string, altIndex int, lookahead []int) bool {
	sets, ok := a.Predict[name]
	if !ok || altIndex >= len(sets) {
		return false
	}
	return sets[altIndex].Contains(lookahead)
}
