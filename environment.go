package lsystem

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/htdebeer/virtual-botanical-laboratory-sub000/expr"
)

// ErrUnknownConstant is returned when overriding a constant that was never
// declared.
var ErrUnknownConstant = errors.New("unknown constant")

// Constant is a named global value visible to every expression.
type Constant struct {
	Name       string
	Expression *expr.Expression
}

// Constants are evaluated in declaration order; a constant only sees the ones
// declared before it.
type Constants []Constant

// Evaluate computes every constant into one binding map.
func (c Constants) Evaluate() (expr.Bindings, error) {
	env := make(expr.Bindings, len(c))
	for _, constant := range c {
		v, err := constant.Expression.Evaluate(env)
		if err != nil {
			return nil, errors.Wrapf(err, "constant %s", constant.Name)
		}
		env[constant.Name] = v
	}
	return env, nil
}

// Lookup returns the declaration of name.
func (c Constants) Lookup(name string) (Constant, bool) {
	for _, constant := range c {
		if constant.Name == name {
			return constant, true
		}
	}
	return Constant{}, false
}

// Override returns a copy of c where name is bound to the literal v.
func (c Constants) Override(name string, v float64) (Constants, error) {
	out := make(Constants, len(c))
	copy(out, c)
	for i := range out {
		if out[i].Name == name {
			out[i].Expression = expr.Literal(v)
			return out, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownConstant, "%q", name)
}

func (c Constants) String() string {
	var sb strings.Builder
	for _, constant := range c {
		sb.WriteString(constant.Name)
		sb.WriteString(" = ")
		sb.WriteString(constant.Expression.String())
		sb.WriteString(";\n")
	}
	return sb.String()
}

// environment layers the bindings an expression sees during a derivation
// step: global constants, then context parameters, then the parameters of
// the module being rewritten.
type environment struct {
	globals expr.Bindings
}

func (env environment) with(context, target expr.Bindings) expr.Bindings {
	return env.globals.Over(context).Over(target)
}
