package grammar

// Token IDs used by ExampleGrammar.
const (
	TokNumber = iota + 1
	TokIdentifier
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokLParen
	TokRParen
	TokSemicolon
	TokWhitespace
)

// ExampleGrammar builds a small arithmetic-expression language:
//
//	Program    -> Statement*
//	Statement  -> Expression ";"
//	Expression -> Term (("+" | "-") Term)*
//	Term       -> Factor (("*" | "/") Factor)*
//	Factor     -> NUMBER | IDENTIFIER | "(" Expression ")"
//
// It exists to exercise every component of the package in tests and
// in the demo command, not as a language of its own.
func ExampleGrammar() *Grammar {
	g := NewGrammar()

	mustAddToken(g, mustRegexpPattern(TokNumber, "NUMBER", `\d+(\.\d+)?`))
	mustAddToken(g, mustRegexpPattern(TokIdentifier, "IDENTIFIER", `[A-Za-z_][A-Za-z0-9_]*`))
	mustAddToken(g, NewStringTokenPattern(TokPlus, "PLUS", "+"))
	mustAddToken(g, NewStringTokenPattern(TokMinus, "MINUS", "-"))
	mustAddToken(g, NewStringTokenPattern(TokStar, "STAR", "*"))
	mustAddToken(g, NewStringTokenPattern(TokSlash, "SLASH", "/"))
	mustAddToken(g, NewStringTokenPattern(TokLParen, "LPAREN", "("))
	mustAddToken(g, NewStringTokenPattern(TokRParen, "RPAREN", ")"))
	mustAddToken(g, NewStringTokenPattern(TokSemicolon, "SEMICOLON", ";"))

	ws := mustRegexpPattern(TokWhitespace, "WHITESPACE", `[ \t\n\r]+`)
	ws.SetIgnore()
	mustAddToken(g, ws)

	program := NewProductionPattern("Program")
	program.AddAlternative(Seq(Rule("Statement").Repeat(0, -1)))
	mustAddProduction(g, program)

	statement := NewProductionPattern("Statement")
	statement.AddAlternative(Seq(Rule("Expression"), Token(TokSemicolon)))
	mustAddProduction(g, statement)

	addOp := NewProductionPattern("")
	addOp.AddAlternative(Seq(Token(TokPlus)))
	addOp.AddAlternative(Seq(Token(TokMinus)))

	expression := NewProductionPattern("Expression")
	expression.AddAlternative(Seq(
		Rule("Term"),
		Element{Kind: ElementGroup, Group: addOp, Min: 0, Max: -1},
	))
	mustAddProduction(g, expression)
	// The group above needs its inner Term to be emitted alongside the
	// operator; model that with a second element in the repeated group.
	addOp.Alternatives[0].Elements = append(addOp.Alternatives[0].Elements, Rule("Term"))
	addOp.Alternatives[1].Elements = append(addOp.Alternatives[1].Elements, Rule("Term"))

	mulOp := NewProductionPattern("")
	mulOp.AddAlternative(Seq(Token(TokStar), Rule("Factor")))
	mulOp.AddAlternative(Seq(Token(TokSlash), Rule("Factor")))

	term := NewProductionPattern("Term")
	term.AddAlternative(Seq(
		Rule("Factor"),
		Element{Kind: ElementGroup, Group: mulOp, Min: 0, Max: -1},
	))
	mustAddProduction(g, term)

	factor := NewProductionPattern("Factor")
	factor.AddAlternative(Seq(Token(TokNumber)))
	factor.AddAlternative(Seq(Token(TokIdentifier)))
	factor.AddAlternative(Seq(Token(TokLParen), Rule("Expression"), Token(TokRParen)))
	mustAddProduction(g, factor)

	g.SetStartRule("Program")
	return g
}

func mustRegexpPattern(id int, name, pattern string) *TokenPattern {
	p, err := NewRegexpTokenPattern(id, name, pattern)
	if err != nil {
		panic(err) // the example grammar's own patterns are known-valid
	}
	return p
}

func mustAddToken(g *Grammar, p *TokenPattern) {
	if err := g.AddTokenPattern(p); err != nil {
		panic(err) // the example grammar's own patterns are known-valid
	}
}

func mustAddProduction(g *Grammar, pp *ProductionPattern) {
	if err := g.AddProductionPattern(pp); err != nil {
		panic(err) // the example grammar's own productions are known-valid
	}
}
