// Package parser implements a table-driven recursive-descent LL(k)
// parser over a grammar's productions, using the lookahead computed
// by the ll package to choose between alternatives without
// backtracking, plus an Analyzer hook for building or transforming a
// parse tree as it is derived.
package parser

import "github.com/llkit/llkit/token"

// ParseNode is the tagged interface for every node of a parse tree.
type ParseNode interface {
	isParseNode()
}

// TokenNode is a leaf: one matched terminal.
type TokenNode struct {
	Tok token.Token
}

func (TokenNode) isParseNode() {}

// ProductionNode is an interior node: the production it derives from,
// which alternative matched, and the children produced by that
// alternative's elements. Name is empty for an anonymous inline group.
type ProductionNode struct {
	Name     string
	AltIndex int
	Children []ParseNode
}

func (*ProductionNode) isParseNode() {}
