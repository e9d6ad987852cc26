package dsl

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"

	lsystem "github.com/htdebeer/virtual-botanical-laboratory-sub000"
	"github.com/htdebeer/virtual-botanical-laboratory-sub000/expr"
)

const plant = `angle = 22.5;
len = angle / 2 + 1;
plant = lsystem(
    description: "test plant",
    alphabet: {A(x), B, F, +, -},
    axiom: A(len * 2) B,
    productions: {
        A(x) : x > 1 -> A(x - 1) [ + F ] B,
        B < A(y) > B -> F,
        B { 0.25 -> F, 0.75 -> B B }
    },
    ignore: {+, -}
)
`

func TestParse(t *testing.T) {
	p, err := Parse(plant)
	if err != nil {
		t.Fatal(err)
	}

	if p.Name != "plant" {
		t.Errorf("name is %q", p.Name)
	}
	if p.Description != "test plant" {
		t.Errorf("description is %q", p.Description)
	}
	if n := p.Alphabet.Len(); n != 5 {
		t.Errorf("alphabet has %d symbols, want 5", n)
	}
	if got := p.Axiom.String(); got != "A(24.5) B" {
		t.Errorf("axiom is %q, want %q", got, "A(24.5) B")
	}
	if n := len(p.Constants); n != 2 {
		t.Errorf("got %d constants, want 2", n)
	}
	if n := len(p.Ignore); n != 2 {
		t.Errorf("got %d ignored symbols, want 2", n)
	}

	if n := len(p.Productions); n != 3 {
		t.Fatalf("got %d productions, want 3", n)
	}
	kinds := []lsystem.ProductionKind{lsystem.Deterministic, lsystem.Deterministic, lsystem.Stochastic}
	contexts := []bool{false, true, false}
	for i, production := range p.Productions {
		if production.Kind != kinds[i] {
			t.Errorf("production %d is %v, want %v", i, production.Kind, kinds[i])
		}
		if production.Predecessor.ContextSensitive() != contexts[i] {
			t.Errorf("production %d context sensitivity is %v", i, !contexts[i])
		}
	}
	if p.Productions[0].Condition == nil {
		t.Error("first production lost its condition")
	}
	if got := p.Productions[1].Predecessor.Parameters(); len(got) != 1 || got[0] != "y" {
		t.Errorf("context production binds %v, want [y]", got)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	p, err := Parse(plant)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.String(); got != plant {
		t.Errorf("rendering differs from source:\n%s\nwant:\n%s", got, plant)
	}

	again, err := Parse(p.String())
	if err != nil {
		t.Fatalf("rendering does not parse: %v", err)
	}
	if again.String() != p.String() {
		t.Errorf("second rendering differs:\n%s", again.String())
	}
}

func TestParse_RoundTripNonFinite(t *testing.T) {
	tests := []struct {
		axiom string
		want  string
	}{
		{axiom: "A(1/0)", want: "A((1 / 0))"},
		{axiom: "A(0-1/0)", want: "A((-1 / 0))"},
		{axiom: "A(1e300*1e10)", want: "A((1 / 0))"},
		{axiom: "A(0/0)", want: "A((0 / 0))"},
	}
	for _, tt := range tests {
		src := "lsystem(alphabet: {A(x)}, axiom: " + tt.axiom + ", productions: {})"
		p, err := Parse(src)
		if err != nil {
			t.Fatalf("%s: %v", tt.axiom, err)
		}
		if got := p.Axiom.String(); got != tt.want {
			t.Errorf("%s: axiom renders as %q, want %q", tt.axiom, got, tt.want)
		}
		again, err := Parse(p.String())
		if err != nil {
			t.Errorf("%s: rendering does not parse: %v", tt.axiom, err)
			continue
		}
		if again.String() != p.String() {
			t.Errorf("%s: second rendering differs:\n%s", tt.axiom, again.String())
		}
	}
}

func TestParse_WithConstants(t *testing.T) {
	src := `size = 2; double = size * 2; lsystem(alphabet: {A(x)}, axiom: A(double), productions: {A(x) -> A(x + size)})`
	p, err := Parse(src, WithConstants(func(c lsystem.Constants) (lsystem.Constants, error) {
		return c.Override("size", 5)
	}))
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Axiom.String(); got != "A(10)" {
		t.Errorf("axiom is %q, want %q", got, "A(10)")
	}
	got, err := lsystem.New(p).Derive(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "A(15)" {
		t.Errorf("got %q, want %q", got, "A(15)")
	}

	_, err = Parse(src, WithConstants(func(c lsystem.Constants) (lsystem.Constants, error) {
		return c.Override("width", 1)
	}))
	if !errors.Is(err, lsystem.ErrUnknownConstant) {
		t.Errorf("got %v, want %v", err, lsystem.ErrUnknownConstant)
	}
}

func TestParse_Minimal(t *testing.T) {
	src := `lsystem(alphabet: {}, axiom: , productions: {})`
	p, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	want := "lsystem(\n    alphabet: {},\n    axiom:,\n    productions: {}\n)\n"
	if got := p.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParse_Conditions(t *testing.T) {
	src := `lsystem(
    alphabet: {A(x, y)},
    axiom: A(1, 1),
    productions: {
        A(x, y) : (x + 1) > 2 and (y < 3 or x = 1) -> A(x, y)
    }
)`
	p, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	condition := p.Productions[0].Condition
	if got, want := condition.String(), "x + 1 > 2 and (y < 3 or x = 1)"; got != want {
		t.Errorf("condition renders as %q, want %q", got, want)
	}

	tests := []struct {
		x, y float64
		want bool
	}{
		{x: 2, y: 5, want: false},
		{x: 1, y: 1, want: false},
		{x: 2, y: 1, want: true},
	}
	for _, tt := range tests {
		got, err := condition.Test(expr.Bindings{"x": tt.x, "y": tt.y})
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("x=%v y=%v: got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		cause error
	}{
		{
			name: "constant redefined",
			src:  `a = 1; a = 2; lsystem(alphabet: {A}, axiom: A, productions: {})`,
		},
		{
			name: "lsystem named like a constant",
			src:  `a = 1; a = lsystem(alphabet: {A}, axiom: A, productions: {})`,
		},
		{
			name: "constant referencing itself",
			src:  `a = a + 1; lsystem(alphabet: {A}, axiom: A, productions: {})`,
		},
		{
			name:  "symbol defined twice",
			src:   `lsystem(alphabet: {A, B, A}, axiom: A, productions: {})`,
			cause: lsystem.ErrAlphabetConflict,
		},
		{
			name:  "undeclared module in axiom",
			src:   `lsystem(alphabet: {A}, axiom: A B, productions: {})`,
			cause: lsystem.ErrUnknownModule,
		},
		{
			name:  "wrong arity",
			src:   `lsystem(alphabet: {A}, axiom: A(1), productions: {})`,
			cause: lsystem.ErrUnknownModule,
		},
		{
			name:  "undeclared module in successor",
			src:   `lsystem(alphabet: {A}, axiom: A, productions: {A -> A C})`,
			cause: lsystem.ErrUnknownModule,
		},
		{
			name: "unbound identifier in successor",
			src:  `lsystem(alphabet: {A, B(x)}, axiom: A, productions: {A -> B(y)})`,
		},
		{
			name: "unbound identifier in condition",
			src:  `lsystem(alphabet: {A}, axiom: A, productions: {A : x > 1 -> A})`,
		},
		{
			name:  "probabilities below one",
			src:   `lsystem(alphabet: {A}, axiom: A, productions: {A {0.5 -> A, 0.49 -> A A}})`,
			cause: lsystem.ErrProbability,
		},
		{
			name:  "probabilities above one",
			src:   `lsystem(alphabet: {A}, axiom: A, productions: {A {1.01 -> A}})`,
			cause: lsystem.ErrProbability,
		},
		{
			name:  "zero probability",
			src:   `lsystem(alphabet: {A}, axiom: A, productions: {A {0 -> A, 1 -> A A}})`,
			cause: lsystem.ErrProbability,
		},
		{
			name: "two modules without context",
			src:  `lsystem(alphabet: {A, B}, axiom: A, productions: {A B -> A})`,
		},
		{
			name: "empty right context",
			src:  `lsystem(alphabet: {A, B}, axiom: A, productions: {A > -> A})`,
		},
		{
			name: "missing alphabet",
			src:  `lsystem(axiom: A, productions: {})`,
		},
		{
			name: "trailing input",
			src:  `lsystem(alphabet: {A}, axiom: A, productions: {}) A`,
		},
		{
			name: "comparison expected",
			src:  `lsystem(alphabet: {A(x)}, axiom: A(1), productions: {A(x) : x + 1 -> A(x)})`,
		},
	}

	for _, tt := range tests {
		_, err := Parse(tt.src)
		if err == nil {
			t.Errorf("%s: no error", tt.name)
			continue
		}
		if _, ok := AsParseError(err); !ok {
			t.Errorf("%s: got %T %v, want a parse error", tt.name, err, err)
			continue
		}
		if tt.cause != nil && !errors.Is(err, tt.cause) {
			t.Errorf("%s: %v does not wrap %v", tt.name, err, tt.cause)
		}
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	src := "lsystem(\n  alphabet: {A},\n  axiom: A Q,\n  productions: {}\n)"
	_, err := Parse(src)
	pe, ok := AsParseError(err)
	if !ok {
		t.Fatalf("got %v, want a parse error", err)
	}
	if pe.Line != 2 || pe.Column != 11 {
		t.Errorf("error at %d:%d, want 2:11", pe.Line, pe.Column)
	}
	if !strings.Contains(pe.Error(), "Q") {
		t.Errorf("message %q does not name the module", pe.Error())
	}
}

func TestParse_LexicalError(t *testing.T) {
	_, err := Parse(`lsystem(alphabet: {A}, axiom: A ?, productions: {})`)
	if _, ok := AsLexicalError(err); !ok {
		t.Errorf("got %v, want a lexical error", err)
	}
}

func TestParseLSystem(t *testing.T) {
	ls, err := ParseLSystem(`lsystem(
    alphabet: {A, B},
    axiom: A,
    productions: {
        A -> A B,
        B -> A
    }
)`)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ls.Derive(context.Background(), 4)
	if err != nil {
		t.Fatal(err)
	}
	if want := "A B A A B A B A"; got.String() != want {
		t.Errorf("got %q, want %q", got.String(), want)
	}
}

func TestMustParse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on invalid input")
		}
	}()
	MustParse(`lsystem(`)
}
