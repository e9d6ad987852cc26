package dsl

import "fmt"

// LexicalError reports input the lexer cannot tokenize. Line and Column are
// zero-based.
type LexicalError struct {
	Line    int
	Column  int
	Message string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// ParseError reports a well-formed token stream that is not a valid
// L-system. Err holds the underlying cause when there is one, such as
// lsystem.ErrAlphabetConflict.
type ParseError struct {
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error at %d:%d: %s: %v", e.Line, e.Column, e.Message, e.Err)
	}
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func errorAt(t Token, format string, args ...any) *ParseError {
	return &ParseError{Line: t.Line, Column: t.Column, Message: fmt.Sprintf(format, args...)}
}

func wrapAt(t Token, err error, format string, args ...any) *ParseError {
	return &ParseError{Line: t.Line, Column: t.Column, Message: fmt.Sprintf(format, args...), Err: err}
}
