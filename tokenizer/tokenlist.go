package tokenizer

import "github.com/llkit/llkit/token"

const listNil = -1

type listNode struct {
	tok        token.Token
	prev, next int
}

// TokenList is a doubly linked list of tokens addressed by integer
// index into a backing slice rather than by pointer, so the whole
// list lives in one contiguous allocation.
type TokenList struct {
	nodes []listNode
	head  int
	tail  int
}

// NewTokenList returns an empty list.
func NewTokenList() *TokenList {
	return &TokenList{head: listNil, tail: listNil}
}

// Append adds t to the end of the list and returns its index.
func (l *TokenList) Append(t token.Token) int {
	idx := len(l.nodes)
	l.nodes = append(l.nodes, listNode{tok: t, prev: l.tail, next: listNil})
	if l.tail != listNil {
		l.nodes[l.tail].next = idx
	} else {
		l.head = idx
	}
	l.tail = idx
	return idx
}

// Len returns the number of tokens in the list.
func (l *TokenList) Len() int { return len(l.nodes) }

// Head returns the index of the first token, or listNil if empty.
func (l *TokenList) Head() int { return l.head }

// Tail returns the index of the last token, or listNil if empty.
func (l *TokenList) Tail() int { return l.tail }

// At returns the token stored at idx.
func (l *TokenList) At(idx int) token.Token { return l.nodes[idx].tok }

// Next returns the index following idx, or listNil if idx is the
// last element.
func (l *TokenList) Next(idx int) int { return l.nodes[idx].next }

// Prev returns the index preceding idx, or listNil if idx is the
// first element.
func (l *TokenList) Prev(idx int) int { return l.nodes[idx].prev }

// IsNil reports whether idx is the sentinel "no node" index.
func IsNil(idx int) bool { return idx == listNil }
