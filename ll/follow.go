package ll

import "github.com/llkit/llkit/grammar"

// FollowSets computes FOLLOW_k for every named production: the set of
// token sequences that can legally appear immediately after a
// derivation of that production. The start rule's FOLLOW always
// contains the single-token sequence [EOF].
func FollowSets(g *grammar.Grammar, firsts map[string]*SequenceSet, k int) map[string]*SequenceSet {
	follows := make(map[string]*SequenceSet)
	for name := range g.Productions {
		follows[name] = NewSequenceSet(k)
	}
	if g.StartRule != "" {
		follows[g.StartRule].Add([]int{EOF})
	}

	for changed := true; changed; {
		changed = false
		for _, pp := range g.Productions {
			for _, alt := range pp.Alternatives {
				if contributeFollow(alt.Elements, firsts, follows, follows[pp.Name], k) {
					changed = true
				}
			}
		}
	}
	return follows
}

// contributeFollow walks one alternative, and for every rule
// reference (including inside inline groups) adds FIRST_k(suffix)
// concatenated with ownFollow (the follow of whatever production this
// alternative belongs to) into that reference's own FOLLOW set.
func contributeFollow(elements []grammar.Element, firsts, follows map[string]*SequenceSet, ownFollow *SequenceSet, k int) bool {
	changed := false
	for i, e := range elements {
		suffixFirst := SequenceFirst(elements[i+1:], firsts, k)
		contribution := suffixFirst.Concat(ownFollow)

		switch e.Kind {
		case grammar.ElementRule:
			if follows[e.Rule].AddAll(contribution) {
				changed = true
			}
		case grammar.ElementGroup:
			if e.Group != nil {
				for _, alt := range e.Group.Alternatives {
					if contributeFollow(alt.Elements, firsts, follows, contribution, k) {
						changed = true
					}
				}
			}
		}
	}
	return changed
}
