package expr

import (
	"math"
	"testing"

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
)

func num(v float64) Node  { return &Number{Value: v} }
func id(name string) Node { return &Ident{Name: name} }
func neg(n Node) Node     { return &Negate{Operand: n} }

func bin(op Operator, l, r Node) Node {
	return &Binary{Op: op, Left: l, Right: r}
}

func cmp(op Operator, l, r Node) Node {
	return &Compare{Op: op, Left: l, Right: r}
}

func logic(op Operator, l, r Node) Node {
	return &Logical{Op: op, Left: l, Right: r}
}

func TestIdentifiersInReferenceOrder(t *testing.T) {
	n := bin(OpAdd, bin(OpMul, id("y"), id("x")), bin(OpSub, id("y"), id("z")))
	got := NewNumeric(n).Parameters()
	want := []string{"y", "x", "z"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestEvaluateArithmetic(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want float64
	}{
		{"sum", bin(OpAdd, num(1), num(2)), 3},
		{"left assoc minus", bin(OpSub, bin(OpSub, num(10), num(3)), num(2)), 5},
		{"power right assoc", bin(OpPow, num(2), bin(OpPow, num(3), num(2))), 512},
		{"negate", neg(id("x")), -4},
		{"division", bin(OpDiv, id("x"), num(8)), 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewNumeric(tt.node).Evaluate(Bindings{"x": 4})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateDivisionByZeroIsInf(t *testing.T) {
	got, err := NewNumeric(bin(OpDiv, num(1), num(0))).Evaluate(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("got %v, want +Inf", got)
	}
}

func TestUnboundParameter(t *testing.T) {
	e := NewNumeric(bin(OpAdd, id("x"), id("y")))
	_, err := e.Evaluate(Bindings{"x": 1})
	var unbound *UnboundParameterError
	if !errors.As(err, &unbound) {
		t.Fatalf("expected UnboundParameterError, got %v", err)
	}
	if unbound.Name != "y" {
		t.Errorf("got name %q, want y", unbound.Name)
	}
}

func TestUnboundParameterIsReportedEvenWhenShortCircuited(t *testing.T) {
	e := NewBoolean(logic(OpOr, &Bool{Value: true}, cmp(OpGt, id("x"), num(1))))
	if _, err := e.Test(nil); err == nil {
		t.Fatal("expected an error for the missing binding of x")
	}
}

func TestTypeMismatch(t *testing.T) {
	if _, err := NewBoolean(&Bool{Value: true}).Evaluate(nil); errors.Cause(err) != ErrType {
		t.Errorf("expected ErrType, got %v", err)
	}
	if _, err := NewNumeric(num(1)).Test(nil); errors.Cause(err) != ErrType {
		t.Errorf("expected ErrType, got %v", err)
	}
}

func TestBooleanOperators(t *testing.T) {
	b := Bindings{"x": 3, "y": 5}
	tests := []struct {
		name string
		node Node
		want bool
	}{
		{"eq", cmp(OpEq, id("x"), num(3)), true},
		{"neq", cmp(OpNeq, id("x"), num(3)), false},
		{"lt", cmp(OpLt, id("x"), id("y")), true},
		{"lte", cmp(OpLte, id("y"), num(5)), true},
		{"gt", cmp(OpGt, id("x"), id("y")), false},
		{"gte", cmp(OpGte, id("x"), num(3)), true},
		{"and", logic(OpAnd, cmp(OpLt, id("x"), id("y")), &Bool{Value: false}), false},
		{"or", logic(OpOr, &Bool{Value: false}, cmp(OpLt, id("x"), id("y"))), true},
		{"not", &Not{Operand: cmp(OpEq, id("x"), id("y"))}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewBoolean(tt.node).Test(b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRendering(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{bin(OpMul, bin(OpAdd, id("a"), num(1)), id("b")), "(a + 1) * b"},
		{bin(OpAdd, id("a"), bin(OpMul, num(1), id("b"))), "a + 1 * b"},
		{bin(OpSub, id("a"), bin(OpSub, id("b"), id("c"))), "a - (b - c)"},
		{bin(OpPow, bin(OpPow, id("a"), id("b")), id("c")), "(a ^ b) ^ c"},
		{bin(OpPow, id("a"), bin(OpPow, id("b"), id("c"))), "a ^ b ^ c"},
		{neg(bin(OpAdd, id("a"), id("b"))), "-(a + b)"},
		{bin(OpPow, neg(id("x")), num(2)), "-x ^ 2"},
		{num(0.25), "0.25"},
		{num(1e21), "1e+21"},
		{num(math.Inf(1)), "(1 / 0)"},
		{num(math.Inf(-1)), "(-1 / 0)"},
		{num(math.NaN()), "(0 / 0)"},
		{bin(OpSub, num(2), num(math.Inf(-1))), "2 - (-1 / 0)"},
		{logic(OpAnd, logic(OpOr, &Bool{Value: true}, &Bool{Value: false}), cmp(OpGt, id("x"), num(0))), "(true or false) and x > 0"},
		{logic(OpAnd, &Not{Operand: &Bool{Value: false}}, &Bool{Value: true}), "(not false) and true"},
		{&Not{Operand: logic(OpOr, &Bool{Value: false}, &Bool{Value: true})}, "not false or true"},
	}
	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

// govaluate spells the operators differently; these pairs describe the same
// formula in both notations.
func TestEvaluateAgreesWithGovaluate(t *testing.T) {
	b := Bindings{"x": 2.5, "y": -1.25, "z": 7}
	tests := []struct {
		node   Node
		oracle string
	}{
		{bin(OpAdd, id("x"), bin(OpMul, id("y"), id("z"))), "x + y * z"},
		{bin(OpDiv, bin(OpSub, id("z"), id("x")), id("y")), "(z - x) / y"},
		{bin(OpPow, id("x"), num(3)), "x ** 3"},
		{bin(OpMul, neg(id("y")), bin(OpAdd, id("x"), num(0.5))), "-y * (x + 0.5)"},
		{bin(OpSub, bin(OpMul, num(2), id("z")), bin(OpDiv, id("x"), num(4))), "2 * z - x / 4"},
	}
	params := map[string]interface{}{}
	for name, v := range b {
		params[name] = v
	}
	for _, tt := range tests {
		oracle, err := govaluate.NewEvaluableExpression(tt.oracle)
		if err != nil {
			t.Fatalf("govaluate could not parse %q: %v", tt.oracle, err)
		}
		want, err := oracle.Evaluate(params)
		if err != nil {
			t.Fatalf("govaluate could not evaluate %q: %v", tt.oracle, err)
		}
		got, err := NewNumeric(tt.node).Evaluate(b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(got-want.(float64)) > 1e-12 {
			t.Errorf("%s: got %v, govaluate says %v", tt.node, got, want)
		}
	}
}

func TestBindingsOver(t *testing.T) {
	base := Bindings{"a": 1, "b": 2}
	merged := base.Over(Bindings{"b": 3, "c": 4})
	if merged["a"] != 1 || merged["b"] != 3 || merged["c"] != 4 {
		t.Errorf("unexpected merge result %v", merged)
	}
	if base["b"] != 2 {
		t.Errorf("Over must not modify the receiver")
	}
}
