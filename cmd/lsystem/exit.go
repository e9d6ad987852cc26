package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/htdebeer/virtual-botanical-laboratory-sub000/dsl"
)

const (
	exitGeneric      = 1
	exitParse        = 2
	exitFileNotFound = 3
)

// ExitError is an error that carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// classify picks the exit code for err.
func classify(err error, format string, args ...any) *ExitError {
	code := exitGeneric
	if errors.Is(err, os.ErrNotExist) {
		code = exitFileNotFound
	} else if _, ok := dsl.AsParseError(err); ok {
		code = exitParse
	} else if _, ok := dsl.AsLexicalError(err); ok {
		code = exitParse
	}
	return exitError(code, "%s: %v", fmt.Sprintf(format, args...), err)
}
