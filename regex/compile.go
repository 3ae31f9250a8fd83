package regex

// instOp enumerates the bytecode operations emitted by compile. The
// instruction graph is built with pointers rather than a flat
// addressed array: each compile step returns a fragment with a start
// instruction and a list of dangling out-pointers for the caller to
// patch once it knows what comes next.
type instOp int

const (
	opChar instOp = iota
	opClass
	opAny
	opSplit
	opJmp
	opAtomicStart
	opAtomicEnd
	opMatch
)

type inst struct {
	op    instOp
	r     rune
	class CharClass
	out   *inst
	out1  *inst // second branch, used only by opSplit
}

// fragment is a partially-wired subgraph: start is its entry
// instruction, and out holds pointers-to-pointers that must be patched
// to the instruction that should run next once the fragment is done.
type fragment struct {
	start *inst
	out   []**inst
}

func patch(holes []**inst, to *inst) {
	for _, h := range holes {
		*h = to
	}
}

// compile lowers a Pattern AST into a bytecode graph fragment.
func compile(p Pattern) fragment {
	switch v := p.(type) {
	case Literal:
		i := &inst{op: opChar, r: rune(v)}
		return fragment{i, []**inst{&i.out}}
	case CharClass:
		i := &inst{op: opClass, class: v}
		return fragment{i, []**inst{&i.out}}
	case AnyChar:
		i := &inst{op: opAny}
		return fragment{i, []**inst{&i.out}}
	case Group:
		return compile(v.Inner)
	case Concat:
		return compileConcat(v)
	case Alt:
		return compileAlt(v)
	case Quant:
		return compileQuant(v)
	default:
		i := &inst{op: opJmp}
		return fragment{i, []**inst{&i.out}}
	}
}

func compileConcat(v Concat) fragment {
	if len(v) == 0 {
		i := &inst{op: opJmp}
		return fragment{i, []**inst{&i.out}}
	}
	first := compile(v[0])
	start := first.start
	dangling := first.out
	for _, sub := range v[1:] {
		f := compile(sub)
		patch(dangling, f.start)
		dangling = f.out
	}
	return fragment{start, dangling}
}

func compileAlt(v Alt) fragment {
	if len(v) == 0 {
		i := &inst{op: opJmp}
		return fragment{i, []**inst{&i.out}}
	}
	last := compile(v[len(v)-1])
	start := last.start
	dangling := append([]**inst{}, last.out...)
	for i := len(v) - 2; i >= 0; i-- {
		f := compile(v[i])
		sp := &inst{op: opSplit, out: f.start, out1: start}
		dangling = append(dangling, f.out...)
		start = sp
	}
	return fragment{start, dangling}
}

// appendFragment chains f onto the end of a fragment currently
// identified by (start, prevDangling), returning the updated pair.
func appendFragment(start *inst, prevDangling []**inst, f fragment) (*inst, []**inst) {
	if start == nil {
		return f.start, f.out
	}
	patch(prevDangling, f.start)
	return start, f.out
}

func compileQuant(q Quant) fragment {
	mode := q.Mode
	internalMode := mode
	if mode == Possessive {
		internalMode = Greedy
	}

	var body fragment
	switch {
	case q.Max == -1 && q.Min == 0:
		body = compileStar(q.Inner, internalMode)
	case q.Max == -1:
		body = compileUnbounded(q.Inner, q.Min, internalMode)
	default:
		body = compileBounded(q.Inner, q.Min, q.Max, internalMode)
	}

	if mode != Possessive {
		return body
	}
	startMark := &inst{op: opAtomicStart, out: body.start}
	endMark := &inst{op: opAtomicEnd}
	patch(body.out, endMark)
	return fragment{startMark, []**inst{&endMark.out}}
}

func compileStar(inner Pattern, mode QuantMode) fragment {
	sp := &inst{op: opSplit}
	body := compile(inner)
	patch(body.out, sp)
	var dangling []**inst
	if mode == Reluctant {
		dangling = []**inst{&sp.out}
		sp.out1 = body.start
	} else {
		sp.out = body.start
		dangling = []**inst{&sp.out1}
	}
	return fragment{sp, dangling}
}

func compileUnbounded(inner Pattern, min int, mode QuantMode) fragment {
	var start *inst
	var dangling []**inst
	for i := 0; i < min; i++ {
		start, dangling = appendFragment(start, dangling, compile(inner))
	}
	start, dangling = appendFragment(start, dangling, compileStar(inner, mode))
	return fragment{start, dangling}
}

func compileBounded(inner Pattern, min, max int, mode QuantMode) fragment {
	var start *inst
	var dangling []**inst
	for i := 0; i < min; i++ {
		start, dangling = appendFragment(start, dangling, compile(inner))
	}
	for i := 0; i < max-min; i++ {
		body := compile(inner)
		sp := &inst{op: opSplit}
		var holes []**inst
		if mode == Reluctant {
			holes = []**inst{&sp.out}
			sp.out1 = body.start
		} else {
			sp.out = body.start
			holes = []**inst{&sp.out1}
		}
		holes = append(holes, body.out...)
		start, dangling = appendFragment(start, dangling, fragment{sp, holes})
	}
	if start == nil {
		i := &inst{op: opJmp}
		return fragment{i, []**inst{&i.out}}
	}
	return fragment{start, dangling}
}
