package regex

// Regexp is a compiled pattern, ready to match against rune input
// starting at a given position.
type Regexp struct {
	source          string
	start           *inst
	caseInsensitive bool
}

// Compile parses and compiles pattern into a Regexp.
func Compile(pattern string, caseInsensitive bool) (*Regexp, error) {
	ast, err := ParsePattern(pattern)
	if err != nil {
		return nil, err
	}
	frag := compile(ast)
	match := &inst{op: opMatch}
	patch(frag.out, match)
	return &Regexp{source: pattern, start: frag.start, caseInsensitive: caseInsensitive}, nil
}

// String returns the original pattern text.
func (re *Regexp) String() string { return re.source }

// SetCaseInsensitive retoggles whether re matches case-insensitively,
// without recompiling. Letter classes and literal characters consult
// this flag at match time, so a pattern compiled one way can be reused
// under a different tokenizer-wide case mode.
func (re *Regexp) SetCaseInsensitive(ci bool) { re.caseInsensitive = ci }

// backtrackFrame is one saved alternative: resume at pc, input
// position pos.
type backtrackFrame struct {
	pc  *inst
	pos int
}

// MatchFromPosition attempts to match re against input starting
// exactly at start, returning the length of the match (which may be
// zero) or -1 if no match starts there. The explicit backtrack and
// atomic-mark stacks grow with input length and quantifier nesting
// only, never with Go call-stack recursion, so running time and
// memory are bounded even on pathological input.
func (re *Regexp) MatchFromPosition(input []rune, start int) int {
	if start < 0 || start > len(input) {
		return -1
	}
	var backtrack []backtrackFrame
	var marks []int

	pc := re.start
	pos := start
	for {
		switch pc.op {
		case opChar:
			if pos < len(input) && runeEqual(input[pos], pc.r, re.caseInsensitive) {
				pos++
				pc = pc.out
				continue
			}
		case opClass:
			if pos < len(input) && pc.class.matches(input[pos], re.caseInsensitive) {
				pos++
				pc = pc.out
				continue
			}
		case opAny:
			if pos < len(input) && !IsNewlineClass(input[pos]) {
				pos++
				pc = pc.out
				continue
			}
		case opSplit:
			backtrack = append(backtrack, backtrackFrame{pc.out1, pos})
			pc = pc.out
			continue
		case opJmp:
			pc = pc.out
			continue
		case opAtomicStart:
			marks = append(marks, len(backtrack))
			pc = pc.out
			continue
		case opAtomicEnd:
			m := marks[len(marks)-1]
			marks = marks[:len(marks)-1]
			if len(backtrack) > m {
				backtrack = backtrack[:m]
			}
			pc = pc.out
			continue
		case opMatch:
			return pos - start
		}

		if len(backtrack) == 0 {
			return -1
		}
		top := backtrack[len(backtrack)-1]
		backtrack = backtrack[:len(backtrack)-1]
		pc, pos = top.pc, top.pos
	}
}

func runeEqual(a, b rune, ci bool) bool {
	if a == b {
		return true
	}
	if !ci {
		return false
	}
	return swapCase(a) == b || a == swapCase(b)
}
