package dsl

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode tells the lexer what kind of text it is scanning.
type Mode int

const (
	// ModeExpression is the default: keywords, numbers and arithmetic.
	ModeExpression Mode = iota
	// ModeModule accepts + - / * & | $ as identifier characters, so turtle
	// commands are read as symbol names.
	ModeModule
	// ModeContext reads < and > as the brackets around a predecessor.
	ModeContext
)

const moduleSymbols = "+-/*&|$"

// state is everything needed to rewind the lexer.
type state struct {
	offset int
	line   int
	column int
}

// Lexer turns DSL source into tokens, one call at a time.
type Lexer struct {
	src string
	state
}

// NewLexer creates a lexer reading src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Next consumes and returns the next token.
func (l *Lexer) Next(mode Mode) (Token, error) {
	l.skipBlank()
	if l.offset >= len(l.src) {
		return Token{Kind: TokenEOF, Line: l.line, Column: l.column}, nil
	}

	start := l.state
	ch, _ := utf8.DecodeRuneInString(l.src[l.offset:])

	switch {
	case strings.HasPrefix(l.src[l.offset:], "->"):
		return l.emit(start, TokenOperator, 2), nil
	case isIdentStart(ch, mode):
		return l.lexIdentifier(start, mode), nil
	case isDigit(ch):
		return l.lexNumber(start)
	case ch == '"':
		return l.lexString(start)
	}

	switch ch {
	case '(', '{', '[':
		return l.emit(start, TokenBracketOpen, 1), nil
	case ')', '}', ']':
		return l.emit(start, TokenBracketClose, 1), nil
	case ',', ':', ';':
		return l.emit(start, TokenDelimiter, 1), nil
	}

	if mode == ModeContext {
		switch ch {
		case '<':
			return l.emit(start, TokenBracketOpen, 1), nil
		case '>':
			return l.emit(start, TokenBracketClose, 1), nil
		}
	}

	switch ch {
	case '<', '>', '!':
		if l.peekByte(1) == '=' {
			return l.emit(start, TokenOperator, 2), nil
		}
		if ch != '!' {
			return l.emit(start, TokenOperator, 1), nil
		}
	case '-', '+', '*', '/', '^', '=':
		return l.emit(start, TokenOperator, 1), nil
	}

	return Token{}, l.errorAt(start, "unexpected character %q", ch)
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek(mode Mode) (Token, error) {
	return l.LookAhead(1, mode)
}

// LookAhead returns the token distance positions ahead, 1 being the next
// one, without consuming anything.
func (l *Lexer) LookAhead(distance int, mode Mode) (Token, error) {
	saved := l.state
	defer func() { l.state = saved }()

	var (
		t   Token
		err error
	)
	for i := 0; i < distance; i++ {
		t, err = l.Next(mode)
		if err != nil || t.Kind == TokenEOF {
			break
		}
	}
	return t, err
}

func (l *Lexer) mark() state {
	return l.state
}

func (l *Lexer) rewind(s state) {
	l.state = s
}

// advance moves over n bytes, keeping line and column up to date. Columns
// count runes, not bytes.
func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.offset < len(l.src); i++ {
		switch b := l.src[l.offset]; {
		case b == '\n':
			l.line++
			l.column = 0
		case utf8.RuneStart(b):
			l.column++
		}
		l.offset++
	}
}

func (l *Lexer) peekByte(distance int) byte {
	if l.offset+distance >= len(l.src) {
		return 0
	}
	return l.src[l.offset+distance]
}

// skipBlank skips whitespace and # comments.
func (l *Lexer) skipBlank() {
	for l.offset < len(l.src) {
		ch, size := utf8.DecodeRuneInString(l.src[l.offset:])
		switch {
		case unicode.IsSpace(ch):
			l.advance(size)
		case ch == '#':
			for l.offset < len(l.src) && l.src[l.offset] != '\n' {
				l.advance(1)
			}
		default:
			return
		}
	}
}

func (l *Lexer) emit(start state, kind TokenKind, n int) Token {
	l.advance(n)
	lexeme := l.src[start.offset:l.offset]
	return Token{Kind: kind, Lexeme: lexeme, Value: lexeme, Line: start.line, Column: start.column}
}

func (l *Lexer) lexIdentifier(start state, mode Mode) Token {
	for l.offset < len(l.src) {
		if strings.HasPrefix(l.src[l.offset:], "->") {
			break
		}
		ch, size := utf8.DecodeRuneInString(l.src[l.offset:])
		if !isIdentPart(ch, mode) {
			break
		}
		l.advance(size)
	}
	lexeme := l.src[start.offset:l.offset]
	kind := TokenIdentifier
	if keywords[lexeme] {
		kind = TokenKeyword
	}
	return Token{Kind: kind, Lexeme: lexeme, Value: lexeme, Line: start.line, Column: start.column}
}

// lexNumber reads digits, an optional fraction and an optional signed
// exponent.
func (l *Lexer) lexNumber(start state) (Token, error) {
	l.skipDigits()
	if l.peekByte(0) == '.' && isDigit(rune(l.peekByte(1))) {
		l.advance(1)
		l.skipDigits()
	}
	if c := l.peekByte(0); c == 'e' || c == 'E' {
		l.advance(1)
		if c := l.peekByte(0); c == '+' || c == '-' {
			l.advance(1)
		}
		if !isDigit(rune(l.peekByte(0))) {
			return Token{}, l.errorAt(l.state, "malformed exponent in %q", l.src[start.offset:l.offset])
		}
		l.skipDigits()
	}

	lexeme := l.src[start.offset:l.offset]
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return Token{}, l.errorAt(start, "invalid number %q", lexeme)
	}
	return Token{Kind: TokenNumber, Lexeme: lexeme, Value: v, Line: start.line, Column: start.column}, nil
}

func (l *Lexer) skipDigits() {
	for l.offset < len(l.src) && isDigit(rune(l.src[l.offset])) {
		l.advance(1)
	}
}

// lexString reads up to the closing quote; there are no escapes.
func (l *Lexer) lexString(start state) (Token, error) {
	end := strings.IndexByte(l.src[l.offset+1:], '"')
	if end < 0 {
		return Token{}, l.errorAt(start, "unterminated string")
	}
	l.advance(end + 2)
	lexeme := l.src[start.offset:l.offset]
	return Token{Kind: TokenString, Lexeme: lexeme, Value: lexeme[1 : len(lexeme)-1], Line: start.line, Column: start.column}, nil
}

func (l *Lexer) errorAt(at state, format string, args ...any) *LexicalError {
	return &LexicalError{Line: at.line, Column: at.column, Message: fmt.Sprintf(format, args...)}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune, mode Mode) bool {
	if ch == '_' || ch == '\'' || unicode.IsLetter(ch) {
		return true
	}
	return mode == ModeModule && strings.ContainsRune(moduleSymbols, ch)
}

func isIdentPart(ch rune, mode Mode) bool {
	return isIdentStart(ch, mode) || unicode.IsDigit(ch)
}
