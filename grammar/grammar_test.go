package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExampleGrammarPrepares(t *testing.T) {
	g := ExampleGrammar()
	errs := g.Prepare()
	require.Empty(t, errs, "ExampleGrammar().Prepare()")
	assert.True(t, g.Prepared())
}

func TestLeftRecursionRejected(t *testing.T) {
	g := NewGrammar()
	require.NoError(t, g.AddTokenPattern(NewStringTokenPattern(1, "PLUS", "+")))
	require.NoError(t, g.AddTokenPattern(NewStringTokenPattern(2, "NUM", "1")))

	expr := NewProductionPattern("Expr")
	expr.AddAlternative(Seq(Rule("Expr"), Token(1), Token(2)))
	expr.AddAlternative(Seq(Token(2)))
	require.NoError(t, g.AddProductionPattern(expr))

	errs := g.Prepare()
	assert.True(t, hasErrorKind(errs, LeftRecursion), "expected a LeftRecursion error, got %v", errs)
	assert.True(t, expr.IsLeftRecursive())
}

func TestRightRecursionRecordedNotRejected(t *testing.T) {
	g := NewGrammar()
	require.NoError(t, g.AddTokenPattern(NewStringTokenPattern(1, "PLUS", "+")))
	require.NoError(t, g.AddTokenPattern(NewStringTokenPattern(2, "NUM", "1")))

	expr := NewProductionPattern("Expr")
	expr.AddAlternative(Seq(Token(2), Token(1), Rule("Expr")))
	expr.AddAlternative(Seq(Token(2)))
	require.NoError(t, g.AddProductionPattern(expr))

	errs := g.Prepare()
	require.Empty(t, errs, "right recursion must not be rejected")
	assert.True(t, expr.IsRightRecursive())
	assert.False(t, expr.IsLeftRecursive())
}

func TestDuplicateAlternativeRejected(t *testing.T) {
	g := NewGrammar()
	require.NoError(t, g.AddTokenPattern(NewStringTokenPattern(1, "NUM", "1")))

	expr := NewProductionPattern("Expr")
	expr.AddAlternative(Seq(Token(1)))
	expr.AddAlternative(Seq(Token(1)))
	require.NoError(t, g.AddProductionPattern(expr))

	errs := g.Prepare()
	assert.True(t, hasErrorKind(errs, DuplicateAlternative), "expected a DuplicateAlternative error, got %v", errs)
}

func TestUnknownReferenceRejected(t *testing.T) {
	g := NewGrammar()
	expr := NewProductionPattern("Expr")
	expr.AddAlternative(Seq(Rule("DoesNotExist")))
	require.NoError(t, g.AddProductionPattern(expr))

	errs := g.Prepare()
	assert.True(t, hasErrorKind(errs, UnknownReference), "expected an UnknownReference error, got %v", errs)
}

func TestZeroZeroRepetitionRejected(t *testing.T) {
	g := NewGrammar()
	require.NoError(t, g.AddTokenPattern(NewStringTokenPattern(1, "NUM", "1")))

	expr := NewProductionPattern("Expr")
	expr.AddAlternative(Seq(Token(1).Repeat(0, 0)))
	require.NoError(t, g.AddProductionPattern(expr))

	errs := g.Prepare()
	assert.True(t, hasErrorKind(errs, InvalidRepetition), "expected an InvalidRepetition error, got %v", errs)
}

func TestAddTokenPatternRejectsDuplicateID(t *testing.T) {
	g := NewGrammar()
	require.NoError(t, g.AddTokenPattern(NewStringTokenPattern(1, "NUM", "1")))

	err := g.AddTokenPattern(NewStringTokenPattern(1, "OTHER", "2"))
	require.Error(t, err)
	pce, ok := err.(*ParserCreationError)
	require.True(t, ok)
	assert.Equal(t, DuplicateTokenID, pce.Kind)
}

func TestAddProductionPatternRejectsEmptyName(t *testing.T) {
	g := NewGrammar()
	err := g.AddProductionPattern(NewProductionPattern(""))
	require.Error(t, err)
	pce, ok := err.(*ParserCreationError)
	require.True(t, ok)
	assert.Equal(t, InvalidProductionName, pce.Kind)
}

func TestPatternTableLongestMatchInsertionOrderTieBreak(t *testing.T) {
	table := NewPatternTable()
	table.Add(NewStringTokenPattern(1, "IF", "if"))
	table.Add(NewRegexpTokenPattern1(t, 2, "IDENT", `[a-z]+`))
	require.NoError(t, table.Prepare())

	p, n := table.LongestMatch([]rune("if"), 0)
	require.NotNil(t, p)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, p.ID())
}

func hasErrorKind(errs []error, kind ParserCreationErrorKind) bool {
	for _, err := range errs {
		if pce, ok := err.(*ParserCreationError); ok && pce.Kind == kind {
			return true
		}
	}
	return false
}

func NewRegexpTokenPattern1(t *testing.T, id int, name, pattern string) *TokenPattern {
	t.Helper()
	p, err := NewRegexpTokenPattern(id, name, pattern)
	require.NoError(t, err)
	return p
}
