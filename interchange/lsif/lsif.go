// Package lsif is the L-System Interchange Format: YAML documents describing
// derivation jobs, and the documents reporting their results.
//
// A job names an L-system program, inline or by file, and how to derive it:
//
//	name: bush
//	file: bush.lsys
//	steps: 5
//	seed: 7
//	constants:
//	  angle: "angle / 2"
//
// Several jobs can be given in one stream, separated by "---".
package lsif

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is one derivation job.
type Format struct {
	// Name replaces the name given in the program, if any.
	Name string `yaml:"name,omitempty"`
	// Source is the program text. Exactly one of Source and File is set.
	Source string `yaml:"source,omitempty"`
	// File is the path of the program, relative to the decoder's Dir.
	File  string `yaml:"file,omitempty"`
	Steps int    `yaml:"steps"`
	Seed  *int64 `yaml:"seed,omitempty"`
	// Constants overrides constants of the program. Values are expressions
	// that may reference the constants as the program declares them.
	Constants map[string]string `yaml:"constants,omitempty"`

	dir string
}

// Validate checks the job before anything is read or parsed.
func (f *Format) Validate() error {
	switch {
	case f.Source == "" && f.File == "":
		return errors.New("job has neither source nor file")
	case f.Source != "" && f.File != "":
		return errors.New("job has both source and file")
	case f.Steps < 0:
		return errors.Errorf("job asks for %d steps", f.Steps)
	}
	return nil
}

// Decoder reads jobs from a YAML stream.
type Decoder struct {
	// Dir is where relative job files are looked up.
	Dir string

	yamlDecoder *yaml.Decoder
}

func NewDecoder(in io.Reader) *Decoder {
	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)
	return &Decoder{yamlDecoder: dec}
}

// Decode reads the next job; it returns io.EOF when the stream is done.
func (dec *Decoder) Decode() (*Format, error) {
	format := &Format{dir: dec.Dir}
	if err := dec.yamlDecoder.Decode(format); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, errors.Wrap(err, "decoding job")
	}
	return format, nil
}
