package lsystem

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/htdebeer/virtual-botanical-laboratory-sub000/expr"
)

// deriver rewrites one generation into the next.
type deriver struct {
	productions []*Production
	ignore      map[Key]bool
	env         environment
	rng         Rand
	identities  map[Key]*Production
}

func newDeriver(productions []*Production, ignore []ModuleDefinition, globals expr.Bindings, rng Rand) *deriver {
	d := &deriver{
		productions: productions,
		ignore:      make(map[Key]bool, len(ignore)),
		env:         environment{globals: globals},
		rng:         rng,
		identities:  make(map[Key]*Production),
	}
	for _, def := range ignore {
		d.ignore[def.Key()] = true
	}
	return d
}

// derive rewrites every node of tree. path holds the modules already visited
// on the way to tree, the left context of its first node. Branches get the
// path as it is at the bracket; what they visit does not leak back out.
func (d *deriver) derive(tree *Tree[Module], path []Module) (*Tree[Module], error) {
	out := &Tree[Module]{}
	path = slices.Clip(path)

	for i, n := range tree.Nodes {
		if n.IsBranch() {
			sub, err := d.derive(n.Branch, path)
			if err != nil {
				return nil, err
			}
			out.AppendBranch(sub)
			continue
		}

		m := n.Symbol
		production, bindings, err := d.find(m, tree, i, path)
		if err != nil {
			return nil, err
		}
		if err := d.apply(production.Successor(d.rng), bindings, out); err != nil {
			return nil, errors.Wrapf(err, "applying %s to %s", production, m)
		}

		if !d.ignore[m.Key()] {
			path = append(path, m)
		}
	}
	return out, nil
}

// find selects the production rewriting the i-th node of tree. The first
// matching context-sensitive production wins, then the first matching
// context-free one, then the identity.
func (d *deriver) find(m Module, tree *Tree[Module], i int, path []Module) (*Production, expr.Bindings, error) {
	var (
		best     *Production
		bindings expr.Bindings
	)
	for _, p := range d.productions {
		if best != nil && p.Priority() <= best.Priority() {
			continue
		}
		context, ok := p.Predecessor.match(m, tree, i, path, d.ignore)
		if !ok {
			continue
		}
		target := make(expr.Bindings, len(m.Parameters))
		p.Predecessor.Module.Bind(m, target)
		env := d.env.with(context, target)

		if p.Condition != nil {
			holds, err := p.Condition.Test(env)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "condition of %s", p)
			}
			if !holds {
				continue
			}
		}
		best, bindings = p, env
	}
	if best != nil {
		return best, bindings, nil
	}

	identity, ok := d.identities[m.Key()]
	if !ok {
		identity = IdentityProduction(m.Key())
		d.identities[m.Key()] = identity
	}
	target := make(expr.Bindings, len(m.Parameters))
	identity.Predecessor.Module.Bind(m, target)
	return identity, target, nil
}

// apply evaluates a successor template and appends the result to out.
func (d *deriver) apply(successor *Tree[ModuleApplication], bindings expr.Bindings, out *Tree[Module]) error {
	if successor == nil {
		return nil
	}
	for _, n := range successor.Nodes {
		if n.IsBranch() {
			sub := &Tree[Module]{}
			if err := d.apply(n.Branch, bindings, sub); err != nil {
				return err
			}
			out.AppendBranch(sub)
			continue
		}
		m, err := n.Symbol.Apply(bindings)
		if err != nil {
			return err
		}
		out.Append(m)
	}
	return nil
}

// match checks m, the i-th node of tree, against p. On success it returns the
// values bound by the context modules.
func (p Predecessor) match(m Module, tree *Tree[Module], i int, path []Module, ignore map[Key]bool) (expr.Bindings, bool) {
	if !Equals(p.Module, m) {
		return nil, false
	}
	context := expr.Bindings{}
	if p.Left != nil && !matchLeft(p.Left.Nodes, path, context) {
		return nil, false
	}
	if p.Right != nil && !matchRight(p.Right.Nodes, tree.Nodes[i+1:], ignore, context) {
		return nil, false
	}
	return context, true
}

// matchLeft compares the tail of path with pattern, right to left.
func matchLeft(pattern []Node[ModuleDefinition], path []Module, into expr.Bindings) bool {
	if len(path) < len(pattern) {
		return false
	}
	offset := len(path) - len(pattern)
	for j := len(pattern) - 1; j >= 0; j-- {
		want := pattern[j]
		if want.IsBranch() || !Equals(want.Symbol, path[offset+j]) {
			return false
		}
		want.Symbol.Bind(path[offset+j], into)
	}
	return true
}

// matchRight looks for pattern at the start of siblings. Ignored modules are
// skipped. A branch is matched against a branch pattern; otherwise the
// pattern may continue inside the branch, and if it does not the branch is
// stepped over.
func matchRight(pattern []Node[ModuleDefinition], siblings []Node[Module], ignore map[Key]bool, into expr.Bindings) bool {
	if len(pattern) == 0 {
		return true
	}
	want := pattern[0]
	for k, n := range siblings {
		if n.IsBranch() {
			if want.IsBranch() {
				if !matchRight(want.Branch.Nodes, n.Branch.Nodes, ignore, into) {
					return false
				}
				return matchRight(pattern[1:], siblings[k+1:], ignore, into)
			}
			if matchRight(pattern, n.Branch.Nodes, ignore, into) {
				return true
			}
			continue
		}
		if ignore[n.Symbol.Key()] {
			continue
		}
		if want.IsBranch() || !Equals(want.Symbol, n.Symbol) {
			return false
		}
		want.Symbol.Bind(n.Symbol, into)
		return matchRight(pattern[1:], siblings[k+1:], ignore, into)
	}
	return false
}
