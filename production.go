package lsystem

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/htdebeer/virtual-botanical-laboratory-sub000/expr"
)

// ErrProbability is returned for stochastic successors whose probabilities
// are outside (0,1] or do not add up to 1.
var ErrProbability = errors.New("invalid successor probabilities")

// probabilityTolerance absorbs the rounding of decimal literals such as
// 0.1 + 0.2 + 0.7.
const probabilityTolerance = 1e-9

// Rand is the source of randomness for stochastic productions. *rand.Rand
// satisfies it.
type Rand interface {
	// Float64 returns a number in [0,1).
	Float64() float64
}

// ProductionKind tells the successor shapes apart.
type ProductionKind int

const (
	Deterministic ProductionKind = iota
	Stochastic
	Identity
)

func (k ProductionKind) String() string {
	switch k {
	case Deterministic:
		return "deterministic"
	case Stochastic:
		return "stochastic"
	case Identity:
		return "identity"
	default:
		return fmt.Sprintf("production(%d)", int(k))
	}
}

// Predecessor is the left-hand side of a production. Left and Right are nil
// when the production has no such context.
type Predecessor struct {
	Left   *Tree[ModuleDefinition]
	Module ModuleDefinition
	Right  *Tree[ModuleDefinition]
}

// ContextSensitive reports whether p needs a left or right context.
func (p Predecessor) ContextSensitive() bool {
	return p.Left != nil || p.Right != nil
}

func (p Predecessor) String() string {
	s := p.Module.String()
	if p.Left != nil {
		s = p.Left.String() + " < " + s
	}
	if p.Right != nil {
		s = s + " > " + p.Right.String()
	}
	return s
}

// Parameters returns every formal parameter name the predecessor binds.
func (p Predecessor) Parameters() []string {
	var names []string
	collect := func(t *Tree[ModuleDefinition]) {
		if t == nil {
			return
		}
		for d := range t.Modules() {
			names = append(names, d.Parameters...)
		}
	}
	collect(p.Left)
	names = append(names, p.Module.Parameters...)
	collect(p.Right)
	return names
}

// Successor is one right-hand side alternative. Probability is 1 for
// deterministic productions.
type Successor struct {
	Probability float64
	Tree        *Tree[ModuleApplication]

	lower, upper float64
}

// Production is a rewriting rule.
type Production struct {
	Kind        ProductionKind
	Predecessor Predecessor
	// Condition is nil when the production applies unconditionally.
	Condition  *expr.Expression
	Successors []Successor
}

// NewProduction creates a deterministic production.
func NewProduction(predecessor Predecessor, condition *expr.Expression, successor *Tree[ModuleApplication]) *Production {
	return &Production{
		Kind:        Deterministic,
		Predecessor: predecessor,
		Condition:   condition,
		Successors:  []Successor{{Probability: 1, Tree: successor, upper: 1}},
	}
}

// NewStochasticProduction creates a production choosing among successors by
// their probabilities. Probabilities must be in (0,1] and sum to 1.
func NewStochasticProduction(predecessor Predecessor, condition *expr.Expression, successors []Successor) (*Production, error) {
	if len(successors) == 0 {
		return nil, errors.Wrap(ErrProbability, "no successors")
	}
	p := &Production{
		Kind:        Stochastic,
		Predecessor: predecessor,
		Condition:   condition,
		Successors:  make([]Successor, len(successors)),
	}
	sum := 0.0
	for i, s := range successors {
		if s.Probability <= 0 || s.Probability > 1 {
			return nil, errors.Wrapf(ErrProbability, "probability %s is not in (0,1]", expr.FormatNumber(s.Probability))
		}
		s.lower = sum
		sum += s.Probability
		s.upper = sum
		p.Successors[i] = s
	}
	if math.Abs(sum-1) > probabilityTolerance {
		return nil, errors.Wrapf(ErrProbability, "probabilities sum to %s instead of 1", expr.FormatNumber(sum))
	}
	p.Successors[len(p.Successors)-1].upper = 1
	return p, nil
}

// IdentityProduction rewrites a symbol with key k into itself.
func IdentityProduction(k Key) *Production {
	def := ModuleDefinition{Name: k.Name}
	app := ModuleApplication{Name: k.Name}
	for i := 0; i < k.Arity; i++ {
		name := fmt.Sprintf("_%d", i)
		def.Parameters = append(def.Parameters, name)
		app.Arguments = append(app.Arguments, expr.Variable(name))
	}
	return &Production{
		Kind:        Identity,
		Predecessor: Predecessor{Module: def},
		Successors:  []Successor{{Probability: 1, Tree: NewTree(app), upper: 1}},
	}
}

// Priority ranks matching productions: context-sensitive ones win over
// context-free ones.
func (p *Production) Priority() int {
	if p.Predecessor.ContextSensitive() {
		return 1
	}
	return 0
}

// Successor picks the right-hand side to apply. Only stochastic productions
// draw from r.
func (p *Production) Successor(r Rand) *Tree[ModuleApplication] {
	if p.Kind != Stochastic || len(p.Successors) == 1 {
		return p.Successors[0].Tree
	}
	n := r.Float64()
	for _, s := range p.Successors {
		if n >= s.lower && n < s.upper {
			return s.Tree
		}
	}
	return p.Successors[len(p.Successors)-1].Tree
}

func (p *Production) String() string {
	var sb strings.Builder
	sb.WriteString(p.Predecessor.String())
	if p.Condition != nil {
		sb.WriteString(" : ")
		sb.WriteString(p.Condition.String())
	}
	if p.Kind != Stochastic {
		sb.WriteString(arrow(p.Successors[0].Tree))
		return sb.String()
	}
	sb.WriteString(" {")
	for i, s := range p.Successors {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(" ")
		sb.WriteString(expr.FormatNumber(s.Probability))
		sb.WriteString(arrow(s.Tree))
	}
	sb.WriteString(" }")
	return sb.String()
}

func arrow(t *Tree[ModuleApplication]) string {
	if t == nil || t.Len() == 0 {
		return " ->"
	}
	return " -> " + t.String()
}
