// Package dsl reads the L-system language:
//
//	angle = 25;
//	plant = lsystem(
//	    description: "bush",
//	    alphabet: {F, X, +, -},
//	    axiom: X,
//	    productions: {
//	        X -> F [ + X ] F [ - X ] + X,
//	        F -> F F
//	    }
//	)
//
// Tokenization depends on what is being read: operator characters are part
// of a symbol name inside module trees, and < > delimit contexts inside a
// predecessor.
package dsl

import (
	"fmt"
)

// TokenKind identifies the type of a token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNumber
	TokenIdentifier
	TokenBracketOpen
	TokenBracketClose
	TokenOperator
	TokenDelimiter
	TokenKeyword
	TokenString
)

var tokenNames = map[TokenKind]string{
	TokenEOF:          "end of input",
	TokenNumber:       "number",
	TokenIdentifier:   "identifier",
	TokenBracketOpen:  "opening bracket",
	TokenBracketClose: "closing bracket",
	TokenOperator:     "operator",
	TokenDelimiter:    "delimiter",
	TokenKeyword:      "keyword",
	TokenString:       "string",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// Keywords of the language.
const (
	KeywordLSystem     = "lsystem"
	KeywordDescription = "description"
	KeywordAlphabet    = "alphabet"
	KeywordAxiom       = "axiom"
	KeywordProductions = "productions"
	KeywordIgnore      = "ignore"
	KeywordAnd         = "and"
	KeywordOr          = "or"
	KeywordNot         = "not"
	KeywordTrue        = "true"
	KeywordFalse       = "false"
)

var keywords = map[string]bool{
	KeywordLSystem:     true,
	KeywordDescription: true,
	KeywordAlphabet:    true,
	KeywordAxiom:       true,
	KeywordProductions: true,
	KeywordIgnore:      true,
	KeywordAnd:         true,
	KeywordOr:          true,
	KeywordNot:         true,
	KeywordTrue:        true,
	KeywordFalse:       true,
}

// Token is a lexical unit. Value is a float64 for numbers and the unquoted
// text for strings; for other kinds it is the lexeme.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Value  any
	Line   int
	Column int
}

// Is reports whether t has the given kind and lexeme.
func (t Token) Is(kind TokenKind, lexeme string) bool {
	return t.Kind == kind && t.Lexeme == lexeme
}

// Number returns the value of a number token.
func (t Token) Number() float64 {
	v, _ := t.Value.(float64)
	return v
}

// Text returns the value of a string token.
func (t Token) Text() string {
	s, _ := t.Value.(string)
	return s
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
}
