package ll

import "github.com/llkit/llkit/grammar"

// FirstSets computes FIRST_k for every named production, iterating to
// a fixpoint since productions may reference each other in any order
// (left recursion is rejected before analysis ever reaches here, so
// this always terminates).
func FirstSets(g *grammar.Grammar, k int) map[string]*SequenceSet {
	firsts := make(map[string]*SequenceSet)
	for name := range g.Productions {
		firsts[name] = NewSequenceSet(k)
	}

	for changed := true; changed; {
		changed = false
		for name, pp := range g.Productions {
			next := NewSequenceSet(k)
			for _, alt := range pp.Alternatives {
				next.AddAll(SequenceFirst(alt.Elements, firsts, k))
			}
			if firsts[name].AddAll(next) {
				changed = true
			}
		}
	}
	return firsts
}

// SequenceFirst computes FIRST_k of a sequence of elements: the set
// of length-<=k token sequences that can begin a derivation of that
// sequence, folding left across the elements and accounting for
// optional (Min==0) elements by also admitting "skip it" at each
// step.
func SequenceFirst(elements []grammar.Element, firsts map[string]*SequenceSet, k int) *SequenceSet {
	acc := NewSequenceSet(k)
	acc.Add(nil) // the empty sequence, folded away as soon as a mandatory element appears
	for _, e := range elements {
		ef := elementFirst(e, firsts, k)
		acc = acc.Concat(ef)
		if e.Min >= 1 {
			// A mandatory element's own FIRST already accounts for the
			// case its contents match empty (via the empty sequence in that set);
			// once we've folded in a mandatory element we still continue
			// folding subsequent elements, since the sequence is not over.
		}
		if acc.Len() == 0 {
			break
		}
	}
	return acc
}

// elementFirst computes FIRST_k of one element, including the empty
// sequence when the element may be skipped (Min == 0).
func elementFirst(e grammar.Element, firsts map[string]*SequenceSet, k int) *SequenceSet {
	out := NewSequenceSet(k)
	switch e.Kind {
	case grammar.ElementToken:
		out.Add([]int{e.TokenID})
	case grammar.ElementRule:
		if f, ok := firsts[e.Rule]; ok {
			out.AddAll(f)
		}
	case grammar.ElementGroup:
		if e.Group != nil {
			for _, alt := range e.Group.Alternatives {
				out.AddAll(SequenceFirst(alt.Elements, firsts, k))
			}
		}
	}
	if e.Min == 0 {
		out.Add(nil)
	}
	return out
}
