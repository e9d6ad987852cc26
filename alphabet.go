package lsystem

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrAlphabetConflict is returned when a symbol is defined twice.
	ErrAlphabetConflict = errors.New("module already defined in alphabet")
	// ErrUnknownModule is returned when a symbol is used without being defined.
	ErrUnknownModule = errors.New("module not defined in alphabet")
)

// Alphabet is the ordered set of declared symbols, unique by name and arity.
type Alphabet struct {
	definitions []ModuleDefinition
	index       map[Key]int
}

// NewAlphabet builds an alphabet from definitions, in order.
func NewAlphabet(definitions ...ModuleDefinition) (*Alphabet, error) {
	a := &Alphabet{}
	for _, d := range definitions {
		if err := a.Add(d); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Add appends a definition.
func (a *Alphabet) Add(d ModuleDefinition) error {
	if a.index == nil {
		a.index = make(map[Key]int)
	}
	if _, ok := a.index[d.Key()]; ok {
		return errors.Wrapf(ErrAlphabetConflict, "%s", d.Key())
	}
	a.index[d.Key()] = len(a.definitions)
	a.definitions = append(a.definitions, d)
	return nil
}

// Lookup returns the definition for k.
func (a *Alphabet) Lookup(k Key) (ModuleDefinition, bool) {
	i, ok := a.index[k]
	if !ok {
		return ModuleDefinition{}, false
	}
	return a.definitions[i], true
}

// Contains reports whether s is declared.
func (a *Alphabet) Contains(s Symbol) bool {
	_, ok := a.index[s.Key()]
	return ok
}

// Check returns ErrUnknownModule for the first symbol of t missing from a.
func Check[S Symbol](a *Alphabet, t *Tree[S]) error {
	for s := range t.Modules() {
		if !a.Contains(s) {
			return errors.Wrapf(ErrUnknownModule, "%s", s.Key())
		}
	}
	return nil
}

func (a *Alphabet) Definitions() []ModuleDefinition {
	return append([]ModuleDefinition(nil), a.definitions...)
}

func (a *Alphabet) Len() int {
	return len(a.definitions)
}

func (a *Alphabet) String() string {
	names := make([]string, len(a.definitions))
	for i, d := range a.definitions {
		names[i] = d.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}
