package expr

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Bindings maps identifiers to their numeric values.
type Bindings map[string]float64

// Over returns a new Bindings holding b with every entry of top applied on
// top of it.
func (b Bindings) Over(top Bindings) Bindings {
	merged := make(Bindings, len(b)+len(top))
	for name, v := range b {
		merged[name] = v
	}
	for name, v := range top {
		merged[name] = v
	}
	return merged
}

// UnboundParameterError is returned when an expression is evaluated without
// a value for one of its formal parameters.
type UnboundParameterError struct {
	Name string
}

func (e *UnboundParameterError) Error() string {
	return fmt.Sprintf("unbound parameter %q", e.Name)
}

// ErrType is returned when a numeric node is used as a boolean or the other
// way around. The parser never builds such trees.
var ErrType = errors.New("expression type mismatch")

// Kind tells numeric and boolean expressions apart.
type Kind int

const (
	Numeric Kind = iota
	Boolean
)

func (k Kind) String() string {
	if k == Boolean {
		return "boolean"
	}
	return "numeric"
}

// Expression is a parsed formula together with its formal parameters: the
// identifiers it references, in order of first reference.
type Expression struct {
	kind   Kind
	root   Node
	params []string
}

// NewNumeric wraps a numeric AST.
func NewNumeric(root Node) *Expression {
	return &Expression{kind: Numeric, root: root, params: Identifiers(root)}
}

// NewBoolean wraps a boolean AST.
func NewBoolean(root Node) *Expression {
	return &Expression{kind: Boolean, root: root, params: Identifiers(root)}
}

// Literal is a constant numeric expression.
func Literal(v float64) *Expression {
	return NewNumeric(&Number{Value: v})
}

// Variable is a numeric expression that returns the value bound to name.
func Variable(name string) *Expression {
	return NewNumeric(&Ident{Name: name})
}

func (e *Expression) Kind() Kind { return e.kind }
func (e *Expression) Root() Node { return e.root }

// Parameters returns the formal parameter names.
func (e *Expression) Parameters() []string {
	return append([]string(nil), e.params...)
}

func (e *Expression) String() string {
	return e.root.String()
}

func (e *Expression) bound(b Bindings) error {
	for _, name := range e.params {
		if _, ok := b[name]; !ok {
			return &UnboundParameterError{Name: name}
		}
	}
	return nil
}

// Evaluate computes a numeric expression.
func (e *Expression) Evaluate(b Bindings) (float64, error) {
	if e.kind != Numeric {
		return 0, errors.Wrapf(ErrType, "evaluating %q as a number", e)
	}
	if err := e.bound(b); err != nil {
		return 0, err
	}
	return evalNumber(e.root, b)
}

// Test computes a boolean expression.
func (e *Expression) Test(b Bindings) (bool, error) {
	if e.kind != Boolean {
		return false, errors.Wrapf(ErrType, "evaluating %q as a boolean", e)
	}
	if err := e.bound(b); err != nil {
		return false, err
	}
	return evalBool(e.root, b)
}

func evalNumber(n Node, b Bindings) (float64, error) {
	switch n := n.(type) {
	case *Number:
		return n.Value, nil

	case *Ident:
		v, ok := b[n.Name]
		if !ok {
			return 0, &UnboundParameterError{Name: n.Name}
		}
		return v, nil

	case *Negate:
		v, err := evalNumber(n.Operand, b)
		if err != nil {
			return 0, err
		}
		return -v, nil

	case *Binary:
		left, err := evalNumber(n.Left, b)
		if err != nil {
			return 0, err
		}
		right, err := evalNumber(n.Right, b)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case OpAdd:
			return left + right, nil
		case OpSub:
			return left - right, nil
		case OpMul:
			return left * right, nil
		case OpDiv:
			return left / right, nil
		case OpPow:
			return math.Pow(left, right), nil
		}
		return 0, errors.Errorf("unknown arithmetic operator %s", n.Op)

	default:
		return 0, errors.Wrapf(ErrType, "%T is not numeric", n)
	}
}

func evalBool(n Node, b Bindings) (bool, error) {
	switch n := n.(type) {
	case *Bool:
		return n.Value, nil

	case *Not:
		v, err := evalBool(n.Operand, b)
		if err != nil {
			return false, err
		}
		return !v, nil

	case *Logical:
		left, err := evalBool(n.Left, b)
		if err != nil {
			return false, err
		}
		// Short-circuit
		if n.Op == OpAnd && !left {
			return false, nil
		}
		if n.Op == OpOr && left {
			return true, nil
		}
		return evalBool(n.Right, b)

	case *Compare:
		left, err := evalNumber(n.Left, b)
		if err != nil {
			return false, err
		}
		right, err := evalNumber(n.Right, b)
		if err != nil {
			return false, err
		}
		switch n.Op {
		case OpEq:
			return left == right, nil
		case OpNeq:
			return left != right, nil
		case OpLt:
			return left < right, nil
		case OpLte:
			return left <= right, nil
		case OpGt:
			return left > right, nil
		case OpGte:
			return left >= right, nil
		}
		return false, errors.Errorf("unknown comparison operator %s", n.Op)

	default:
		return false, errors.Wrapf(ErrType, "%T is not boolean", n)
	}
}
