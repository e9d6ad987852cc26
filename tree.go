package lsystem

import (
	"iter"
	"strings"
)

// Node is one element of a Tree: either a symbol or a bracketed branch.
type Node[S Symbol] struct {
	Symbol S
	Branch *Tree[S]
}

// IsBranch reports whether n holds a nested tree rather than a symbol.
func (n Node[S]) IsBranch() bool {
	return n.Branch != nil
}

// Leaf wraps a symbol.
func Leaf[S Symbol](s S) Node[S] {
	return Node[S]{Symbol: s}
}

// Branch wraps a nested tree.
func Branch[S Symbol](t *Tree[S]) Node[S] {
	if t == nil {
		t = &Tree[S]{}
	}
	return Node[S]{Branch: t}
}

// Tree is an ordered sequence of symbols and branches, one nesting level of
// a bracketed L-system string. Order is significant.
type Tree[S Symbol] struct {
	Nodes []Node[S]
}

// NewTree builds a tree from symbols; use Branch nodes through Push for
// nested structure.
func NewTree[S Symbol](symbols ...S) *Tree[S] {
	t := &Tree[S]{}
	for _, s := range symbols {
		t.Append(s)
	}
	return t
}

// Len is the number of nodes at this level.
func (t *Tree[S]) Len() int {
	return len(t.Nodes)
}

// Append adds a symbol.
func (t *Tree[S]) Append(s S) {
	t.Nodes = append(t.Nodes, Leaf(s))
}

// AppendBranch adds a nested tree.
func (t *Tree[S]) AppendBranch(sub *Tree[S]) {
	t.Nodes = append(t.Nodes, Branch(sub))
}

// Push adds nodes as they are.
func (t *Tree[S]) Push(nodes ...Node[S]) {
	t.Nodes = append(t.Nodes, nodes...)
}

// Modules yields every symbol depth-first, with branches expanded in place.
func (t *Tree[S]) Modules() iter.Seq[S] {
	return func(yield func(S) bool) {
		t.each(yield)
	}
}

func (t *Tree[S]) each(yield func(S) bool) bool {
	for _, n := range t.Nodes {
		if n.IsBranch() {
			if !n.Branch.each(yield) {
				return false
			}
			continue
		}
		if !yield(n.Symbol) {
			return false
		}
	}
	return true
}

// Count is the number of symbols in the whole tree.
func (t *Tree[S]) Count() int {
	n := 0
	for range t.Modules() {
		n++
	}
	return n
}

// String renders t with branches as "[ ... ]", nodes separated by spaces.
func (t *Tree[S]) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *Tree[S]) write(sb *strings.Builder) {
	for i, n := range t.Nodes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if !n.IsBranch() {
			sb.WriteString(n.Symbol.String())
			continue
		}
		sb.WriteString("[ ")
		if n.Branch.Len() > 0 {
			n.Branch.write(sb)
			sb.WriteByte(' ')
		}
		sb.WriteByte(']')
	}
}
