// Package interchange imports L-system definitions from outside sources.
package interchange

import (
	"os"

	"github.com/pkg/errors"

	lsystem "github.com/htdebeer/virtual-botanical-laboratory-sub000"
	"github.com/htdebeer/virtual-botanical-laboratory-sub000/dsl"
)

// Format is anything that can be turned into L-system parameters.
type Format interface {
	Import() (lsystem.Parameters, error)
}

// Program is a Format written in the L-system language.
type Program interface {
	Format
	ImportWith(opts ...dsl.ParseOption) (lsystem.Parameters, error)
}

// Source is a program in the L-system language.
type Source string

func (s Source) Import() (lsystem.Parameters, error) {
	return s.ImportWith()
}

func (s Source) ImportWith(opts ...dsl.ParseOption) (lsystem.Parameters, error) {
	return dsl.Parse(string(s), opts...)
}

// File is the path of a program in the L-system language.
type File string

func (f File) Import() (lsystem.Parameters, error) {
	return f.ImportWith()
}

func (f File) ImportWith(opts ...dsl.ParseOption) (lsystem.Parameters, error) {
	src, err := os.ReadFile(string(f))
	if err != nil {
		return lsystem.Parameters{}, err
	}
	parameters, err := dsl.Parse(string(src), opts...)
	if err != nil {
		return parameters, errors.Wrapf(err, "%s", f)
	}
	return parameters, nil
}
