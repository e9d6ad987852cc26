package lsif

import (
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	lsystem "github.com/htdebeer/virtual-botanical-laboratory-sub000"
)

// Result reports a derived generation.
type Result struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name,omitempty"`
	Steps      int            `yaml:"steps"`
	Modules    int            `yaml:"modules"`
	Branches   int            `yaml:"branches"`
	Depth      int            `yaml:"depth"`
	Counts     map[string]int `yaml:"counts,omitempty"`
	Generation string         `yaml:"generation"`
	// Error is set when the job failed.
	Error string `yaml:"error,omitempty"`
}

// NewResult describes the current derivation of ls under a fresh ID.
func NewResult(ls *lsystem.LSystem) *Result {
	var stats lsystem.Stats
	ls.Interpret(&stats)
	return &Result{
		ID:         uuid.NewString(),
		Name:       ls.Parameters.Name,
		Steps:      ls.Steps(),
		Modules:    stats.Modules,
		Branches:   stats.Branches,
		Depth:      stats.MaxDepth,
		Counts:     stats.Counts,
		Generation: ls.Current().String(),
	}
}

// Failure reports a job that could not be run.
func Failure(name string, err error) *Result {
	return &Result{ID: uuid.NewString(), Name: name, Error: err.Error()}
}

// Encoder writes results as a YAML stream.
type Encoder struct {
	yamlEncoder *yaml.Encoder
}

func NewEncoder(out io.Writer) *Encoder {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	return &Encoder{yamlEncoder: enc}
}

func (enc *Encoder) Encode(r *Result) error {
	return enc.yamlEncoder.Encode(r)
}

// Close flushes the stream.
func (enc *Encoder) Close() error {
	return enc.yamlEncoder.Close()
}
