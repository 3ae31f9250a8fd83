package parser

import (
	"fmt"
	"io"
	"sort"

	"github.com/llkit/llkit/grammar"
	"github.com/llkit/llkit/ll"
	"github.com/llkit/llkit/token"
	"github.com/llkit/llkit/tokenizer"
)

// Parser drives a recursive-descent derivation of a grammar's start
// rule against a token stream, choosing between alternatives using
// the prediction sets ll.Analyze computed, with no backtracking.
type Parser struct {
	g        *grammar.Grammar
	analysis *ll.Analysis
	analyzer Analyzer

	tokens     []token.Token // fully buffered: EOF is represented by a trailing ll.EOF-ID token
	pos        int
	errs       []error
	tokenNames map[int]string
}

// NewParser returns a parser for g using the lookahead analysis in
// analysis, reading tokens from tz. tz.Next is fully drained up front,
// here in NewParser; any lexical error encountered while doing so is
// returned from NewParser, with a nil parser.
func NewParser(g *grammar.Grammar, analysis *ll.Analysis, tz *tokenizer.Tokenizer) (*Parser, error) {
	p := &Parser{g: g, analysis: analysis, analyzer: DefaultAnalyzer{}, tokenNames: make(map[int]string)}
	for _, tp := range g.Table.Patterns() {
		p.tokenNames[tp.ID()] = tp.Name()
	}
	if err := p.readAllTokens(tz); err != nil {
		return nil, err
	}
	return p, nil
}

// SetAnalyzer installs a custom tree-building hook, replacing
// DefaultAnalyzer.
func (p *Parser) SetAnalyzer(a Analyzer) { p.analyzer = a }

// Errors returns the recoverable syntax errors collected during
// Parse, in the order they were found.
func (p *Parser) Errors() []error { return p.errs }

func (p *Parser) readAllTokens(tz *tokenizer.Tokenizer) error {
	for {
		tok, err := tz.Next()
		if err == io.EOF {
			p.tokens = append(p.tokens, token.Token{ID: ll.EOF, Line: tok.Line, Column: tok.Column})
			return nil
		}
		if err != nil {
			return err
		}
		p.tokens = append(p.tokens, tok)
	}
}

func (p *Parser) current() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return token.Token{ID: ll.EOF}
}

func (p *Parser) lookaheadIDs() []int {
	k := p.analysis.K
	out := make([]int, 0, k)
	for i := 0; i < k && p.pos+i < len(p.tokens); i++ {
		out = append(out, p.tokens[p.pos+i].ID)
	}
	return out
}

// Parse derives the grammar's start rule against the buffered token
// stream. It returns the resulting tree along with any error that
// stopped derivation; recoverable syntax errors along the way are
// available afterward from Errors, whether or not a tree was
// produced.
func (p *Parser) Parse() (ParseNode, error) {
	node, err := p.parseProduction(p.g.StartRule)
	if err != nil {
		return node, err
	}
	if p.current().ID != ll.EOF {
		err := p.unexpectedToken([]int{ll.EOF})
		p.errs = append(p.errs, err)
		return node, err
	}
	return node, nil
}

func (p *Parser) parseProduction(name string) (ParseNode, error) {
	pp, ok := p.g.Productions[name]
	if !ok {
		return nil, &ParseError{Kind: AnalysisError, Found: name}
	}
	sets := p.analysis.Predict[name]
	la := p.lookaheadIDs()

	altIdx := -1
	for i, s := range sets {
		if s.Contains(la) {
			altIdx = i
			break
		}
	}
	if altIdx == -1 {
		err := p.unexpectedToken(p.leadingIDs(sets))
		posBefore := p.pos
		if p.recover(name) && p.pos != posBefore {
			p.errs = append(p.errs, err)
			return p.parseProduction(name)
		}
		return nil, err
	}

	var node ParseNode = &ProductionNode{Name: name, AltIndex: altIdx}
	node = p.analyzer.Enter(node)

	for _, e := range pp.Alternatives[altIdx].Elements {
		children, err := p.parseElement(e)
		if err != nil {
			return node, err
		}
		for _, c := range children {
			node = p.analyzer.Child(node, c)
		}
	}

	node = p.analyzer.Exit(node)
	return node, nil
}

// recover skips tokens until one in name's own FOLLOW set appears (or
// input is exhausted), so parsing of the surrounding context can
// continue after a syntax error instead of aborting outright.
func (p *Parser) recover(name string) bool {
	follow := p.analysis.Follows[name]
	for p.current().ID != ll.EOF {
		if follow.Contains([]int{p.current().ID}) {
			return true
		}
		p.pos++
	}
	return false
}

func (p *Parser) parseElement(e grammar.Element) ([]ParseNode, error) {
	var out []ParseNode
	count := 0
	for e.Max == -1 || count < e.Max {
		if count >= e.Min && !p.elementCanStartHere(e) {
			break
		}
		posBefore := p.pos
		node, err := p.parseElementOnce(e)
		if err != nil {
			// A failure that consumed no tokens was just a rejected
			// decision to enter this repetition; once min is met that is
			// fine, stop repeating. A failure that already consumed
			// tokens is a genuine syntax error with no way back.
			if count >= e.Min && p.pos == posBefore {
				break
			}
			return out, err
		}
		out = append(out, node)
		count++
	}
	if count < e.Min {
		first := ll.SequenceFirst([]grammar.Element{e}, p.analysis.Firsts, p.analysis.K)
		return out, p.unexpectedToken(p.leadingIDs([]*ll.SequenceSet{first}))
	}
	return out, nil
}

func (p *Parser) elementCanStartHere(e grammar.Element) bool {
	first := ll.SequenceFirst([]grammar.Element{e}, p.analysis.Firsts, p.analysis.K)
	return first.Contains(p.lookaheadIDs())
}

func (p *Parser) parseElementOnce(e grammar.Element) (ParseNode, error) {
	switch e.Kind {
	case grammar.ElementToken:
		tok := p.current()
		if tok.ID != e.TokenID {
			return nil, p.unexpectedToken([]int{e.TokenID})
		}
		p.pos++
		return TokenNode{Tok: tok}, nil
	case grammar.ElementRule:
		return p.parseProduction(e.Rule)
	case grammar.ElementGroup:
		return p.parseGroup(e.Group)
	default:
		return nil, fmt.Errorf("parser: unknown element kind %v", e.Kind)
	}
}

// parseGroup derives one alternative of an anonymous inline group,
// selected by the FIRST set of its elements alone (group alternatives
// are required to not need follow-context disambiguation; ll.Analyze
// validates that separately via its own group-ambiguity check).
func (p *Parser) parseGroup(g *grammar.ProductionPattern) (ParseNode, error) {
	la := p.lookaheadIDs()
	for i, alt := range g.Alternatives {
		first := ll.SequenceFirst(alt.Elements, p.analysis.Firsts, p.analysis.K)
		if !first.Contains(la) {
			continue
		}
		var node ParseNode = &ProductionNode{Name: "", AltIndex: i}
		node = p.analyzer.Enter(node)
		for _, e := range alt.Elements {
			children, err := p.parseElement(e)
			if err != nil {
				return node, err
			}
			for _, c := range children {
				node = p.analyzer.Child(node, c)
			}
		}
		return p.analyzer.Exit(node), nil
	}

	var sets []*ll.SequenceSet
	for _, alt := range g.Alternatives {
		sets = append(sets, ll.SequenceFirst(alt.Elements, p.analysis.Firsts, p.analysis.K))
	}
	return nil, p.unexpectedToken(p.leadingIDs(sets))
}

// leadingIDs collects the distinct token IDs that begin some sequence
// across sets, i.e. the IDs that could legally appear next.
func (p *Parser) leadingIDs(sets []*ll.SequenceSet) []int {
	seen := make(map[int]bool)
	for _, s := range sets {
		if s == nil {
			continue
		}
		for _, seq := range s.Sequences() {
			if len(seq) == 0 {
				continue
			}
			seen[seq[0]] = true
		}
	}
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// tokenNamesFor maps token IDs to their pattern names, in the order
// given. The ll.EOF sentinel is named "EOF"; any other ID not
// registered in the grammar's pattern table becomes "token#<id>".
func (p *Parser) tokenNamesFor(ids []int) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == ll.EOF {
			out = append(out, "EOF")
			continue
		}
		if name, ok := p.tokenNames[id]; ok {
			out = append(out, name)
			continue
		}
		out = append(out, fmt.Sprintf("token#%d", id))
	}
	return out
}

func (p *Parser) unexpectedToken(expected []int) error {
	tok := p.current()
	kind := UnexpectedToken
	if tok.ID == ll.EOF {
		kind = UnexpectedEOF
	}
	return &ParseError{Kind: kind, Line: tok.Line, Column: tok.Column, Found: tok.Image, Expected: p.tokenNamesFor(expected)}
}
