package lsystem

import (
	"sort"
)

// Interpreter consumes a derived generation, for instance to draw it with a
// turtle. Execute is called for every module in depth-first order; Enter and
// Exit wrap every branch.
type Interpreter interface {
	Execute(name string, parameters []float64)
	Enter()
	Exit()
}

// Interpret walks t, calling in for every module and branch.
func Interpret(t *Tree[Module], in Interpreter) {
	for _, n := range t.Nodes {
		if n.IsBranch() {
			in.Enter()
			Interpret(n.Branch, in)
			in.Exit()
			continue
		}
		in.Execute(n.Symbol.Name, n.Symbol.Parameters)
	}
}

// Interpret walks the current derivation.
func (ls *LSystem) Interpret(in Interpreter) {
	Interpret(ls.Current(), in)
}

// Stats is an Interpreter counting what it is shown.
type Stats struct {
	Modules  int
	Branches int
	MaxDepth int
	Counts   map[string]int

	depth int
}

func (s *Stats) Execute(name string, _ []float64) {
	if s.Counts == nil {
		s.Counts = make(map[string]int)
	}
	s.Modules++
	s.Counts[name]++
}

func (s *Stats) Enter() {
	s.Branches++
	s.depth++
	s.MaxDepth = max(s.MaxDepth, s.depth)
}

func (s *Stats) Exit() {
	s.depth--
}

// Names returns the counted module names, sorted.
func (s *Stats) Names() []string {
	names := make([]string, 0, len(s.Counts))
	for name := range s.Counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
