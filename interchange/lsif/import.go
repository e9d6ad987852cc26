package lsif

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"

	lsystem "github.com/htdebeer/virtual-botanical-laboratory-sub000"
	"github.com/htdebeer/virtual-botanical-laboratory-sub000/dsl"
	"github.com/htdebeer/virtual-botanical-laboratory-sub000/interchange"
)

func (format *Format) program() interchange.Program {
	if format.Source != "" {
		return interchange.Source(format.Source)
	}
	path := format.File
	if !filepath.IsAbs(path) && format.dir != "" {
		path = filepath.Join(format.dir, path)
	}
	return interchange.File(path)
}

// Import parses the job's program and applies its name, seed and constant
// overrides.
func (format *Format) Import() (lsystem.Parameters, error) {
	if err := format.Validate(); err != nil {
		return lsystem.Parameters{}, err
	}
	rebind := dsl.WithConstants(func(constants lsystem.Constants) (lsystem.Constants, error) {
		overridden, err := override(constants, format.Constants)
		if err != nil {
			return nil, errors.Wrap(err, "overriding constants")
		}
		return overridden, nil
	})
	parameters, err := format.program().ImportWith(rebind)
	if err != nil {
		return parameters, err
	}

	if format.Name != "" {
		parameters.Name = format.Name
	}
	if format.Seed != nil {
		parameters.Seed = *format.Seed
	}
	return parameters, nil
}

// Run imports the job, derives it and reports the outcome.
func (format *Format) Run(ctx context.Context, opts ...lsystem.Option) (*Result, error) {
	parameters, err := format.Import()
	if err != nil {
		return nil, err
	}
	ls := lsystem.New(parameters, opts...)
	if _, err := ls.Derive(ctx, format.Steps); err != nil {
		return nil, err
	}
	return NewResult(ls), nil
}
