// Package lsystem is an L-system engine: an alphabet of parameterized
// symbols, an axiom, and context-sensitive, conditional, possibly stochastic
// productions rewriting a bracketed string of symbols generation after
// generation.
//
// Grammars are usually written in the L-system DSL and parsed with package
// dsl; this package holds the data model, the derivation algorithm and the
// rendering back to DSL text.
package lsystem

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/pkg/errors"
)

// Parameters describes an L-system.
type Parameters struct {
	Name        string
	Description string
	Alphabet    *Alphabet
	Axiom       *Tree[Module]
	Productions []*Production
	Ignore      []ModuleDefinition
	Constants   Constants

	// Seed feeds the random source of stochastic productions unless a
	// source is given with WithRand.
	Seed int64
}

// Option configures an LSystem.
type Option func(*LSystem)

// WithSeed overrides Parameters.Seed.
func WithSeed(seed int64) Option {
	return func(ls *LSystem) {
		ls.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source of stochastic productions.
func WithRand(r Rand) Option {
	return func(ls *LSystem) {
		ls.rng = r
	}
}

// WithLogger sets the logger receiving one debug record per derivation step.
func WithLogger(logger *slog.Logger) Option {
	return func(ls *LSystem) {
		ls.logger = logger
	}
}

// LSystem holds a grammar and its current derivation.
type LSystem struct {
	Parameters Parameters

	rng    Rand
	logger *slog.Logger

	mu      sync.Mutex
	current *Tree[Module]
	steps   int
}

// New creates an L-system whose current derivation is the axiom.
func New(parameters Parameters, opts ...Option) *LSystem {
	if parameters.Axiom == nil {
		parameters.Axiom = &Tree[Module]{}
	}
	ls := &LSystem{
		Parameters: parameters,
		rng:        rand.New(rand.NewSource(parameters.Seed)),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		current:    parameters.Axiom,
	}
	for _, opt := range opts {
		opt(ls)
	}
	return ls
}

// Reset goes back to the axiom.
func (ls *LSystem) Reset() {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.current = ls.Parameters.Axiom
	ls.steps = 0
}

// Derive rewrites the current derivation n times and returns the result.
func (ls *LSystem) Derive(ctx context.Context, n int) (*Tree[Module], error) {
	if n < 0 {
		return nil, errors.Errorf("cannot derive %d steps", n)
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	return ls.derive(ctx, n)
}

// DeriveUntil derives until the step counter reaches step.
func (ls *LSystem) DeriveUntil(ctx context.Context, step int) (*Tree[Module], error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	return ls.derive(ctx, max(0, step-ls.steps))
}

// derive runs n steps; ls.mu must be held.
func (ls *LSystem) derive(ctx context.Context, n int) (*Tree[Module], error) {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := ls.step(); err != nil {
			return nil, err
		}
	}
	return ls.current, nil
}

// step runs one generation. Constants are recomputed from their declarations
// every time.
func (ls *LSystem) step() error {
	globals, err := ls.Parameters.Constants.Evaluate()
	if err != nil {
		return err
	}
	d := newDeriver(ls.Parameters.Productions, ls.Parameters.Ignore, globals, ls.rng)
	next, err := d.derive(ls.current, nil)
	if err != nil {
		return errors.Wrapf(err, "step %d", ls.steps+1)
	}
	ls.current = next
	ls.steps++

	ls.logger.Debug("derived generation", "lsystem", ls.Parameters.Name, "step", ls.steps, "modules", next.Count())
	return nil
}

// Current returns the current derivation.
func (ls *LSystem) Current() *Tree[Module] {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	return ls.current
}

// Steps returns how many times the axiom has been rewritten.
func (ls *LSystem) Steps() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	return ls.steps
}
