// Package ll computes LL(k) lookahead information for a grammar:
// FIRST_k and FOLLOW_k sequence sets, and the per-alternative
// prediction sets a recursive-descent parser needs to choose between
// alternatives without backtracking. It also detects genuine lookahead
// ambiguity, the grammar defect that makes that impossible; left
// recursion and duplicate alternatives are caught by the grammar
// package's Prepare before analysis even starts (an identical pair of
// alternatives that reaches Analyze is reported as an ambiguity).
package ll

import "strings"

// EOF is the sentinel token ID appended to the lookahead of whatever
// follows the grammar's start rule.
const EOF = -1

// DefaultK is the lookahead ceiling used when callers do not override
// it.
const DefaultK = 3

// SequenceSet is a set of token-ID sequences, each of length at most
// k, used to represent a FIRST_k or FOLLOW_k set.
type SequenceSet struct {
	k    int
	seqs map[string][]int
}

// NewSequenceSet returns an empty set bounded to sequences of at most
// k tokens.
func NewSequenceSet(k int) *SequenceSet {
	return &SequenceSet{k: k, seqs: make(map[string][]int)}
}

func key(seq []int) string {
	var b strings.Builder
	for i, id := range seq {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(itoa(id))
	}
	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Add inserts seq (truncated to k elements) and reports whether the
// set changed.
func (s *SequenceSet) Add(seq []int) bool {
	if len(seq) > s.k {
		seq = seq[:s.k]
	}
	cp := append([]int(nil), seq...)
	k := key(cp)
	if _, ok := s.seqs[k]; ok {
		return false
	}
	s.seqs[k] = cp
	return true
}

// AddAll merges other into s, reporting whether s changed.
func (s *SequenceSet) AddAll(other *SequenceSet) bool {
	changed := false
	if other == nil {
		return false
	}
	for _, seq := range other.seqs {
		if s.Add(seq) {
			changed = true
		}
	}
	return changed
}

// Sequences returns the set's members in no particular order.
func (s *SequenceSet) Sequences() [][]int {
	out := make([][]int, 0, len(s.seqs))
	for _, seq := range s.seqs {
		out = append(out, seq)
	}
	return out
}

// Contains reports whether seq (truncated to k) is a member.
func (s *SequenceSet) Contains(seq []int) bool {
	if len(seq) > s.k {
		seq = seq[:s.k]
	}
	_, ok := s.seqs[key(seq)]
	return ok
}

// Len returns the number of distinct sequences.
func (s *SequenceSet) Len() int { return len(s.seqs) }

// Concat returns a new set of every a++b (truncated to k) for a in s
// and b in other, except that a sequence already at length k is kept
// as-is without appending anything from other — it is already as
// specific as lookahead gets. When other is nil or empty, every a is
// kept as-is too.
func (s *SequenceSet) Concat(other *SequenceSet) *SequenceSet {
	out := NewSequenceSet(s.k)
	for _, a := range s.seqs {
		if len(a) >= s.k {
			out.Add(a)
			continue
		}
		if other == nil || len(other.seqs) == 0 {
			out.Add(a)
			continue
		}
		for _, b := range other.seqs {
			combined := append(append([]int(nil), a...), b...)
			out.Add(combined)
		}
	}
	return out
}

// Disjoint reports whether s and other share no sequence.
func (s *SequenceSet) Disjoint(other *SequenceSet) bool {
	for k := range s.seqs {
		if _, ok := other.seqs[k]; ok {
			return false
		}
	}
	return true
}
