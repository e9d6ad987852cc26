package lsystem

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/htdebeer/virtual-botanical-laboratory-sub000/expr"
)

// Key identifies a symbol for matching purposes: two modules match when their
// names and parameter counts match, whatever their values.
type Key struct {
	Name  string
	Arity int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Name, k.Arity)
}

// Symbol is implemented by every kind of module occurrence.
type Symbol interface {
	Key() Key
	String() string
}

// Equals reports whether a and b are structurally equal.
func Equals(a, b Symbol) bool {
	return a.Key() == b.Key()
}

// Module is a symbol with concrete parameter values. Axioms and every derived
// generation are made of modules.
type Module struct {
	Name       string
	Parameters []float64
}

func (m Module) Key() Key {
	return Key{Name: m.Name, Arity: len(m.Parameters)}
}

// Module stringifier
func (m Module) String() string {
	if len(m.Parameters) == 0 {
		return m.Name
	}
	values := make([]string, len(m.Parameters))
	for i, v := range m.Parameters {
		values[i] = expr.FormatNumber(v)
	}
	return m.Name + "(" + strings.Join(values, ", ") + ")"
}

// ModuleDefinition declares a symbol and names its formal parameters. It is
// used for alphabet entries, predecessor patterns and the ignore list.
type ModuleDefinition struct {
	Name       string
	Parameters []string
}

func (d ModuleDefinition) Key() Key {
	return Key{Name: d.Name, Arity: len(d.Parameters)}
}

func (d ModuleDefinition) String() string {
	if len(d.Parameters) == 0 {
		return d.Name
	}
	return d.Name + "(" + strings.Join(d.Parameters, ", ") + ")"
}

// Bind pairs the formal parameters of d with the values of m. It assumes m
// matches d.
func (d ModuleDefinition) Bind(m Module, into expr.Bindings) {
	for i, name := range d.Parameters {
		into[name] = m.Parameters[i]
	}
}

// ModuleApplication is a symbol in a successor whose arguments still have to
// be evaluated.
type ModuleApplication struct {
	Name      string
	Arguments []*expr.Expression
}

func (a ModuleApplication) Key() Key {
	return Key{Name: a.Name, Arity: len(a.Arguments)}
}

func (a ModuleApplication) String() string {
	if len(a.Arguments) == 0 {
		return a.Name
	}
	args := make([]string, len(a.Arguments))
	for i, arg := range a.Arguments {
		args[i] = arg.String()
	}
	return a.Name + "(" + strings.Join(args, ", ") + ")"
}

// Apply evaluates the arguments of a against b.
func (a ModuleApplication) Apply(b expr.Bindings) (Module, error) {
	m := Module{Name: a.Name}
	if len(a.Arguments) > 0 {
		m.Parameters = make([]float64, len(a.Arguments))
	}
	for i, arg := range a.Arguments {
		v, err := arg.Evaluate(b)
		if err != nil {
			return Module{}, errors.Wrapf(err, "argument %d of %s", i, a.Name)
		}
		m.Parameters[i] = v
	}
	return m, nil
}
