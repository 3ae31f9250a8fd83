package ll

import (
	"testing"

	"github.com/llkit/llkit/grammar"
)

func TestAnalyzeExampleGrammarIsLL(t *testing.T) {
	g := grammar.ExampleGrammar()
	if errs := g.Prepare(); len(errs) != 0 {
		t.Fatalf("Prepare() = %v, want no errors", errs)
	}
	_, errs := Analyze(g, 2)
	if len(errs) != 0 {
		t.Fatalf("Analyze() = %v, want no ambiguity errors", errs)
	}
}

func TestAnalyzeDetectsAmbiguity(t *testing.T) {
	g := grammar.NewGrammar()
	_ = g.AddTokenPattern(grammar.NewStringTokenPattern(1, "A", "a"))
	_ = g.AddTokenPattern(grammar.NewStringTokenPattern(2, "B", "b"))

	expr := grammar.NewProductionPattern("Expr")
	expr.AddAlternative(grammar.Seq(grammar.Token(1), grammar.Token(2)))
	expr.AddAlternative(grammar.Seq(grammar.Token(1), grammar.Token(1)))
	_ = g.AddProductionPattern(expr)

	if errs := g.Prepare(); len(errs) != 0 {
		t.Fatalf("Prepare() = %v, want no errors", errs)
	}

	_, errs := Analyze(g, 1)
	found := false
	for _, err := range errs {
		if pce, ok := err.(*grammar.ParserCreationError); ok && pce.Kind == grammar.Ambiguity {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an Ambiguity error with k=1, got %v", errs)
	}

	if _, errs := Analyze(g, 2); len(errs) != 0 {
		t.Fatalf("Analyze(k=2) = %v, want no errors (two tokens of lookahead disambiguate)", errs)
	}
}

func TestSequenceSetConcatAndDisjoint(t *testing.T) {
	a := NewSequenceSet(2)
	a.Add([]int{1})
	b := NewSequenceSet(2)
	b.Add([]int{2})
	c := a.Concat(b)
	if !c.Contains([]int{1, 2}) {
		t.Fatalf("expected concat to contain [1 2]")
	}

	x := NewSequenceSet(2)
	x.Add([]int{1, 2})
	y := NewSequenceSet(2)
	y.Add([]int{1, 3})
	if !x.Disjoint(y) {
		t.Fatal("expected [1 2] and [1 3] to be disjoint")
	}

	y.Add([]int{1, 2})
	if x.Disjoint(y) {
		t.Fatal("expected sets sharing [1 2] to not be disjoint")
	}
}
