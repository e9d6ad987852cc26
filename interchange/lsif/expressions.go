package lsif

import (
	"sort"
	"strconv"

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"

	lsystem "github.com/htdebeer/virtual-botanical-laboratory-sub000"
	"github.com/htdebeer/virtual-botanical-laboratory-sub000/expr"
)

// bindingsParameters exposes constant values to govaluate.
type bindingsParameters expr.Bindings

func (b bindingsParameters) Get(name string) (interface{}, error) {
	v, ok := b[name]
	if !ok {
		return nil, errors.Errorf("no constant %s", name)
	}
	return v, nil
}

// evaluate computes an override expression. Plain numbers skip govaluate.
func evaluate(asString string, constants expr.Bindings) (float64, error) {
	if scalar, err := strconv.ParseFloat(asString, 64); err == nil {
		return scalar, nil
	}

	evaluable, err := govaluate.NewEvaluableExpression(asString)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %q", asString)
	}
	result, err := evaluable.Eval(bindingsParameters(constants))
	if err != nil {
		return 0, errors.Wrapf(err, "evaluating %q", asString)
	}
	v, ok := result.(float64)
	if !ok {
		return 0, errors.Errorf("%q is a %T, not a number", asString, result)
	}
	return v, nil
}

// override replaces constants by the values of the given expressions, in
// name order. Every expression sees the constants as declared.
func override(constants lsystem.Constants, overrides map[string]string) (lsystem.Constants, error) {
	if len(overrides) == 0 {
		return constants, nil
	}
	declared, err := constants.Evaluate()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v, err := evaluate(overrides[name], declared)
		if err != nil {
			return nil, errors.Wrapf(err, "constant %s", name)
		}
		if constants, err = constants.Override(name, v); err != nil {
			return nil, err
		}
	}
	return constants, nil
}
