// Package expr holds the numeric and boolean expressions used by L-system
// grammars: production conditions, successor arguments and global constants.
// Expressions are plain ASTs evaluated by a tree walker; they never touch
// state outside the bindings they are given.
package expr

import (
	"fmt"
	"math"
	"strconv"
)

// Operator identifies an infix operator.
type Operator int

const (
	OpAdd Operator = iota // +
	OpSub                 // -
	OpMul                 // *
	OpDiv                 // /
	OpPow                 // ^

	OpEq  // =
	OpNeq // !=
	OpLt  // <
	OpLte // <=
	OpGt  // >
	OpGte // >=

	OpAnd // and
	OpOr  // or
)

var operatorSymbols = map[Operator]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "^",
	OpEq:  "=",
	OpNeq: "!=",
	OpLt:  "<",
	OpLte: "<=",
	OpGt:  ">",
	OpGte: ">=",
	OpAnd: "and",
	OpOr:  "or",
}

func (op Operator) String() string {
	if s, ok := operatorSymbols[op]; ok {
		return s
	}
	return fmt.Sprintf("operator(%d)", int(op))
}

// LookupOperator returns the operator spelled s.
func LookupOperator(s string) (Operator, bool) {
	for op, symbol := range operatorSymbols {
		if symbol == s {
			return op, true
		}
	}
	return 0, false
}

// IsRelational reports whether op compares two numbers.
func (op Operator) IsRelational() bool {
	return op >= OpEq && op <= OpGte
}

// Node is implemented by all AST nodes.
type Node interface {
	node() // marker method
	String() string
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// Ident is a reference to a formal parameter or global constant.
type Ident struct {
	Name string
}

// Negate is unary minus.
type Negate struct {
	Operand Node
}

// Binary is an arithmetic operation.
type Binary struct {
	Op    Operator
	Left  Node
	Right Node
}

// Bool is a boolean literal.
type Bool struct {
	Value bool
}

// Not is boolean negation.
type Not struct {
	Operand Node
}

// Logical joins two boolean operands with and/or.
type Logical struct {
	Op    Operator
	Left  Node
	Right Node
}

// Compare relates two numeric operands.
type Compare struct {
	Op    Operator
	Left  Node
	Right Node
}

func (*Number) node()  {}
func (*Ident) node()   {}
func (*Negate) node()  {}
func (*Binary) node()  {}
func (*Bool) node()    {}
func (*Not) node()     {}
func (*Logical) node() {}
func (*Compare) node() {}

// Binding strength used when rendering, loosest first.
const (
	precOr = iota + 1
	precAnd
	precNot
	precCompare
	precSum
	precProduct
	precPow
	precUnary
	precAtom
)

func precedence(n Node) int {
	switch n := n.(type) {
	case *Logical:
		if n.Op == OpOr {
			return precOr
		}
		return precAnd
	case *Not:
		return precNot
	case *Compare:
		return precCompare
	case *Binary:
		switch n.Op {
		case OpAdd, OpSub:
			return precSum
		case OpMul, OpDiv:
			return precProduct
		default:
			return precPow
		}
	case *Negate:
		return precUnary
	case *Number:
		if n.Value < 0 && !math.IsInf(n.Value, -1) {
			return precUnary
		}
	}
	return precAtom
}

// FormatNumber renders v so that the parser reads it back unchanged.
// Infinities and NaN have no literal form and are written as the divisions
// that produce them.
func FormatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "(1 / 0)"
	case math.IsInf(v, -1):
		return "(-1 / 0)"
	case math.IsNaN(v):
		return "(0 / 0)"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (n *Number) String() string { return FormatNumber(n.Value) }
func (n *Ident) String() string  { return n.Name }

func (n *Negate) String() string {
	return "-" + wrap(n.Operand, precedence(n.Operand) < precUnary)
}

func (n *Binary) String() string {
	p := precedence(n)
	rightAssoc := n.Op == OpPow
	left := wrap(n.Left, precedence(n.Left) < p || (rightAssoc && precedence(n.Left) == p))
	right := wrap(n.Right, precedence(n.Right) < p || (!rightAssoc && precedence(n.Right) == p))
	return left + " " + n.Op.String() + " " + right
}

func (n *Bool) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

// not extends as far right as it can, so it is rendered bare only when it
// is not an operand of and/or.
func (n *Not) String() string { return "not " + n.Operand.String() }

func (n *Logical) String() string {
	p := precedence(n)
	left := wrap(n.Left, precedence(n.Left) < p || isNot(n.Left))
	right := wrap(n.Right, precedence(n.Right) <= p || isNot(n.Right))
	return left + " " + n.Op.String() + " " + right
}

func (n *Compare) String() string {
	return n.Left.String() + " " + n.Op.String() + " " + n.Right.String()
}

func isNot(n Node) bool {
	_, ok := n.(*Not)
	return ok
}

func wrap(n Node, parens bool) string {
	if parens {
		return "(" + n.String() + ")"
	}
	return n.String()
}

// Identifiers returns the distinct identifiers referenced under n in order
// of first reference.
func Identifiers(n Node) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Ident:
			if !seen[n.Name] {
				seen[n.Name] = true
				names = append(names, n.Name)
			}
		case *Negate:
			walk(n.Operand)
		case *Not:
			walk(n.Operand)
		case *Binary:
			walk(n.Left)
			walk(n.Right)
		case *Logical:
			walk(n.Left)
			walk(n.Right)
		case *Compare:
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(n)
	return names
}
