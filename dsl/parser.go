package dsl

import (
	"fmt"

	"github.com/pkg/errors"

	lsystem "github.com/htdebeer/virtual-botanical-laboratory-sub000"
	"github.com/htdebeer/virtual-botanical-laboratory-sub000/expr"
)

// ParseOption configures Parse.
type ParseOption func(*parser)

// WithConstants rewrites the declared constants once they are all read and
// before the axiom is evaluated, so the axiom and the productions see the same
// values.
func WithConstants(rebind func(lsystem.Constants) (lsystem.Constants, error)) ParseOption {
	return func(p *parser) {
		p.rebind = rebind
	}
}

// Parse reads a program: constant declarations followed by one lsystem.
func Parse(src string, opts ...ParseOption) (lsystem.Parameters, error) {
	p := &parser{
		lex: NewLexer(src),
		identifiers: map[scope]map[string]Token{
			globalScope: {},
			moduleScope: {},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p.parseProgram()
}

// ParseLSystem parses src and creates the L-system it describes.
func ParseLSystem(src string, opts ...lsystem.Option) (*lsystem.LSystem, error) {
	parameters, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return lsystem.New(parameters, opts...), nil
}

// MustParse is like ParseLSystem but panics on error.
func MustParse(src string, opts ...lsystem.Option) *lsystem.LSystem {
	ls, err := ParseLSystem(src, opts...)
	if err != nil {
		panic(fmt.Sprintf("dsl: %v", err))
	}
	return ls
}

type scope int

const (
	globalScope scope = iota // constants and the lsystem name
	moduleScope              // alphabet symbols
)

// visibility tells which identifiers an expression may reference.
type visibility func(name string) bool

type parser struct {
	lex         *Lexer
	identifiers map[scope]map[string]Token
	alphabet    *lsystem.Alphabet
	constants   lsystem.Constants
	// formals holds the parameters bound by the predecessor being parsed.
	formals map[string]bool
	rebind  func(lsystem.Constants) (lsystem.Constants, error)
}

func (p *parser) next(mode Mode) (Token, error) {
	return p.lex.Next(mode)
}

func (p *parser) peek(mode Mode) (Token, error) {
	return p.lex.Peek(mode)
}

func (p *parser) expect(mode Mode, kind TokenKind, lexeme string) (Token, error) {
	t, err := p.next(mode)
	if err != nil {
		return t, err
	}
	if t.Kind != kind || (lexeme != "" && t.Lexeme != lexeme) {
		want := kind.String()
		if lexeme != "" {
			want = fmt.Sprintf("%q", lexeme)
		}
		return t, errorAt(t, "expected %s but got %s", want, t)
	}
	return t, nil
}

// accept consumes the next token if it is the given one.
func (p *parser) accept(mode Mode, kind TokenKind, lexeme string) (bool, error) {
	t, err := p.peek(mode)
	if err != nil {
		return false, err
	}
	if !t.Is(kind, lexeme) {
		return false, nil
	}
	_, err = p.next(mode)
	return true, err
}

// separator reads a ',' or the given closing bracket; it reports whether the
// list goes on.
func (p *parser) separator(closing string) (bool, error) {
	t, err := p.next(ModeExpression)
	if err != nil {
		return false, err
	}
	switch {
	case t.Is(TokenDelimiter, ","):
		return true, nil
	case t.Is(TokenBracketClose, closing):
		return false, nil
	}
	return false, errorAt(t, "expected \",\" or %q but got %s", closing, t)
}

func (p *parser) declare(s scope, t Token) error {
	if previous, ok := p.identifiers[s][t.Lexeme]; ok {
		return errorAt(t, "%s is already defined at %d:%d", t.Lexeme, previous.Line, previous.Column)
	}
	p.identifiers[s][t.Lexeme] = t
	return nil
}

func (p *parser) isConstant(name string) bool {
	_, ok := p.constants.Lookup(name)
	return ok
}

func (p *parser) isProductionVariable(name string) bool {
	return p.formals[name] || p.isConstant(name)
}

func (p *parser) parseProgram() (lsystem.Parameters, error) {
	var parameters lsystem.Parameters
	for {
		t, err := p.peek(ModeExpression)
		if err != nil {
			return parameters, err
		}
		if t.Is(TokenKeyword, KeywordLSystem) {
			break
		}
		if t.Kind != TokenIdentifier {
			return parameters, errorAt(t, "expected a constant or an lsystem but got %s", t)
		}

		third, err := p.lex.LookAhead(3, ModeExpression)
		if err != nil {
			return parameters, err
		}
		if third.Is(TokenKeyword, KeywordLSystem) {
			name, _ := p.next(ModeExpression)
			if _, err := p.expect(ModeExpression, TokenOperator, "="); err != nil {
				return parameters, err
			}
			if err := p.declare(globalScope, name); err != nil {
				return parameters, err
			}
			parameters.Name = name.Lexeme
			break
		}

		if err := p.parseConstant(); err != nil {
			return parameters, err
		}
	}

	if p.rebind != nil {
		constants, err := p.rebind(p.constants)
		if err != nil {
			return parameters, err
		}
		p.constants = constants
	}

	if err := p.parseLSystem(&parameters); err != nil {
		return parameters, err
	}
	if _, err := p.expect(ModeExpression, TokenEOF, ""); err != nil {
		return parameters, err
	}
	parameters.Constants = p.constants
	return parameters, nil
}

// parseConstant reads "name = expression;". The expression only sees the
// constants declared before it.
func (p *parser) parseConstant() error {
	name, err := p.expect(ModeExpression, TokenIdentifier, "")
	if err != nil {
		return err
	}
	if previous, ok := p.identifiers[globalScope][name.Lexeme]; ok {
		return errorAt(name, "%s is already defined at %d:%d", name.Lexeme, previous.Line, previous.Column)
	}
	if _, err := p.expect(ModeExpression, TokenOperator, "="); err != nil {
		return err
	}
	node, err := p.parseNumeric(p.isConstant)
	if err != nil {
		return err
	}
	if _, err := p.expect(ModeExpression, TokenDelimiter, ";"); err != nil {
		return err
	}
	if err := p.declare(globalScope, name); err != nil {
		return err
	}
	p.constants = append(p.constants, lsystem.Constant{Name: name.Lexeme, Expression: expr.NewNumeric(node)})
	return nil
}

func (p *parser) parseLSystem(parameters *lsystem.Parameters) error {
	if _, err := p.expect(ModeExpression, TokenKeyword, KeywordLSystem); err != nil {
		return err
	}
	if _, err := p.expect(ModeExpression, TokenBracketOpen, "("); err != nil {
		return err
	}

	ok, err := p.accept(ModeExpression, TokenKeyword, KeywordDescription)
	if err != nil {
		return err
	}
	if ok {
		if _, err := p.expect(ModeExpression, TokenDelimiter, ":"); err != nil {
			return err
		}
		description, err := p.expect(ModeExpression, TokenString, "")
		if err != nil {
			return err
		}
		parameters.Description = description.Text()
		if _, err := p.expect(ModeExpression, TokenDelimiter, ","); err != nil {
			return err
		}
	}

	if err := p.property(KeywordAlphabet); err != nil {
		return err
	}
	if err := p.parseAlphabet(); err != nil {
		return err
	}
	parameters.Alphabet = p.alphabet
	if _, err := p.expect(ModeExpression, TokenDelimiter, ","); err != nil {
		return err
	}

	if err := p.property(KeywordAxiom); err != nil {
		return err
	}
	if parameters.Axiom, err = p.parseAxiom(); err != nil {
		return err
	}
	if _, err := p.expect(ModeExpression, TokenDelimiter, ","); err != nil {
		return err
	}

	if err := p.property(KeywordProductions); err != nil {
		return err
	}
	if parameters.Productions, err = p.parseProductions(); err != nil {
		return err
	}

	more, err := p.accept(ModeExpression, TokenDelimiter, ",")
	if err != nil {
		return err
	}
	if more {
		if err := p.property(KeywordIgnore); err != nil {
			return err
		}
		if parameters.Ignore, err = p.parseIgnore(); err != nil {
			return err
		}
	}

	_, err = p.expect(ModeExpression, TokenBracketClose, ")")
	return err
}

// property reads "keyword :".
func (p *parser) property(keyword string) error {
	if _, err := p.expect(ModeExpression, TokenKeyword, keyword); err != nil {
		return err
	}
	_, err := p.expect(ModeExpression, TokenDelimiter, ":")
	return err
}

func (p *parser) parseAlphabet() error {
	p.alphabet = &lsystem.Alphabet{}
	if _, err := p.expect(ModeExpression, TokenBracketOpen, "{"); err != nil {
		return err
	}
	if closed, err := p.accept(ModeExpression, TokenBracketClose, "}"); err != nil || closed {
		return err
	}
	for {
		name, err := p.expect(ModeModule, TokenIdentifier, "")
		if err != nil {
			return err
		}
		definition, err := p.parseFormals(name)
		if err != nil {
			return err
		}
		if err := p.alphabet.Add(definition); err != nil {
			return wrapAt(name, err, "cannot define %s", definition)
		}
		p.identifiers[moduleScope][name.Lexeme] = name

		more, err := p.separator("}")
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// parseFormals reads the optional "(a, b, ...)" after a module name.
func (p *parser) parseFormals(name Token) (lsystem.ModuleDefinition, error) {
	definition := lsystem.ModuleDefinition{Name: name.Lexeme}
	open, err := p.accept(ModeExpression, TokenBracketOpen, "(")
	if err != nil || !open {
		return definition, err
	}
	seen := make(map[string]bool)
	for {
		parameter, err := p.expect(ModeExpression, TokenIdentifier, "")
		if err != nil {
			return definition, err
		}
		if seen[parameter.Lexeme] {
			return definition, errorAt(parameter, "parameter %s appears twice in %s", parameter.Lexeme, name.Lexeme)
		}
		seen[parameter.Lexeme] = true
		definition.Parameters = append(definition.Parameters, parameter.Lexeme)

		more, err := p.separator(")")
		if err != nil {
			return definition, err
		}
		if !more {
			return definition, nil
		}
	}
}

// resolve checks that a module with this name and arity is in the alphabet.
func (p *parser) resolve(name Token, arity int) error {
	key := lsystem.Key{Name: name.Lexeme, Arity: arity}
	if _, ok := p.alphabet.Lookup(key); ok {
		return nil
	}
	if _, ok := p.identifiers[moduleScope][name.Lexeme]; ok {
		return wrapAt(name, lsystem.ErrUnknownModule, "%s does not take %d parameters", name.Lexeme, arity)
	}
	return wrapAt(name, lsystem.ErrUnknownModule, "%s", key)
}

// parseTree reads modules and [ ] branches until something else comes.
func parseTree[S lsystem.Symbol](p *parser, module func(Token) (S, error)) (*lsystem.Tree[S], error) {
	t := &lsystem.Tree[S]{}
	for {
		next, err := p.peek(ModeModule)
		if err != nil {
			return nil, err
		}
		switch {
		case next.Kind == TokenIdentifier:
			if _, err := p.next(ModeModule); err != nil {
				return nil, err
			}
			s, err := module(next)
			if err != nil {
				return nil, err
			}
			t.Append(s)

		case next.Is(TokenBracketOpen, "["):
			if _, err := p.next(ModeModule); err != nil {
				return nil, err
			}
			sub, err := parseTree(p, module)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(ModeModule, TokenBracketClose, "]"); err != nil {
				return nil, err
			}
			t.AppendBranch(sub)

		default:
			return t, nil
		}
	}
}

// parseApplication reads the optional "(expr, ...)" after a module name.
func (p *parser) parseApplication(name Token, visible visibility) (lsystem.ModuleApplication, error) {
	application := lsystem.ModuleApplication{Name: name.Lexeme}
	open, err := p.accept(ModeExpression, TokenBracketOpen, "(")
	if err != nil {
		return application, err
	}
	for open {
		node, err := p.parseNumeric(visible)
		if err != nil {
			return application, err
		}
		application.Arguments = append(application.Arguments, expr.NewNumeric(node))
		if open, err = p.separator(")"); err != nil {
			return application, err
		}
	}
	return application, p.resolve(name, len(application.Arguments))
}

// parseAxiom reads the axiom; its arguments may use constants and are
// evaluated right away.
func (p *parser) parseAxiom() (*lsystem.Tree[lsystem.Module], error) {
	start, err := p.peek(ModeModule)
	if err != nil {
		return nil, err
	}
	globals, err := p.constants.Evaluate()
	if err != nil {
		return nil, wrapAt(start, err, "cannot evaluate constants")
	}
	return parseTree(p, func(name Token) (lsystem.Module, error) {
		application, err := p.parseApplication(name, p.isConstant)
		if err != nil {
			return lsystem.Module{}, err
		}
		m, err := application.Apply(globals)
		if err != nil {
			return lsystem.Module{}, wrapAt(name, err, "cannot evaluate %s", application)
		}
		return m, nil
	})
}

// parsePattern reads a module of a predecessor or the ignore list.
func (p *parser) parsePattern(name Token) (lsystem.ModuleDefinition, error) {
	definition, err := p.parseFormals(name)
	if err != nil {
		return definition, err
	}
	if err := p.resolve(name, len(definition.Parameters)); err != nil {
		return definition, err
	}
	for _, parameter := range definition.Parameters {
		if p.formals != nil {
			p.formals[parameter] = true
		}
	}
	return definition, nil
}

func (p *parser) parseSuccessorModule(name Token) (lsystem.ModuleApplication, error) {
	return p.parseApplication(name, p.isProductionVariable)
}

func (p *parser) parseProductions() ([]*lsystem.Production, error) {
	if _, err := p.expect(ModeExpression, TokenBracketOpen, "{"); err != nil {
		return nil, err
	}
	var productions []*lsystem.Production
	if closed, err := p.accept(ModeExpression, TokenBracketClose, "}"); err != nil || closed {
		return productions, err
	}
	for {
		production, err := p.parseProduction()
		if err != nil {
			return nil, err
		}
		productions = append(productions, production)

		more, err := p.separator("}")
		if err != nil {
			return nil, err
		}
		if !more {
			return productions, nil
		}
	}
}

// parseProduction reads
//
//	[left <] module [> right] [: condition] (-> successor | { p -> successor, ... })
func (p *parser) parseProduction() (*lsystem.Production, error) {
	p.formals = make(map[string]bool)
	defer func() { p.formals = nil }()

	start, err := p.peek(ModeModule)
	if err != nil {
		return nil, err
	}
	predecessor, err := p.parsePredecessor(start)
	if err != nil {
		return nil, err
	}

	var condition *expr.Expression
	hasCondition, err := p.accept(ModeExpression, TokenDelimiter, ":")
	if err != nil {
		return nil, err
	}
	if hasCondition {
		node, err := p.parseBoolean(p.isProductionVariable)
		if err != nil {
			return nil, err
		}
		condition = expr.NewBoolean(node)
	}

	t, err := p.next(ModeExpression)
	if err != nil {
		return nil, err
	}
	switch {
	case t.Is(TokenOperator, "->"):
		successor, err := parseTree(p, p.parseSuccessorModule)
		if err != nil {
			return nil, err
		}
		return lsystem.NewProduction(predecessor, condition, successor), nil

	case t.Is(TokenBracketOpen, "{"):
		successors, err := p.parseWeightedSuccessors()
		if err != nil {
			return nil, err
		}
		production, err := lsystem.NewStochasticProduction(predecessor, condition, successors)
		if err != nil {
			return nil, wrapAt(t, err, "stochastic production for %s", predecessor)
		}
		return production, nil
	}
	return nil, errorAt(t, "expected \"->\" or \"{\" but got %s", t)
}

func (p *parser) parsePredecessor(start Token) (lsystem.Predecessor, error) {
	var predecessor lsystem.Predecessor

	first, err := parseTree(p, p.parsePattern)
	if err != nil {
		return predecessor, err
	}
	t, err := p.peek(ModeContext)
	if err != nil {
		return predecessor, err
	}
	if t.Is(TokenBracketOpen, "<") {
		if first.Len() == 0 {
			return predecessor, errorAt(t, "empty left context")
		}
		p.next(ModeContext)
		predecessor.Left = first
		name, err := p.expect(ModeModule, TokenIdentifier, "")
		if err != nil {
			return predecessor, err
		}
		if predecessor.Module, err = p.parsePattern(name); err != nil {
			return predecessor, err
		}
	} else {
		if first.Len() != 1 || first.Nodes[0].IsBranch() {
			return predecessor, errorAt(start, "expected a single module as predecessor")
		}
		predecessor.Module = first.Nodes[0].Symbol
	}

	t, err = p.peek(ModeContext)
	if err != nil {
		return predecessor, err
	}
	if t.Is(TokenBracketClose, ">") {
		p.next(ModeContext)
		if predecessor.Right, err = parseTree(p, p.parsePattern); err != nil {
			return predecessor, err
		}
		if predecessor.Right.Len() == 0 {
			return predecessor, errorAt(t, "empty right context")
		}
	}
	return predecessor, nil
}

// parseWeightedSuccessors reads "p -> successor, ... }" after the opening
// brace. Probabilities must be number literals.
func (p *parser) parseWeightedSuccessors() ([]lsystem.Successor, error) {
	var successors []lsystem.Successor
	for {
		probability, err := p.expect(ModeExpression, TokenNumber, "")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ModeExpression, TokenOperator, "->"); err != nil {
			return nil, err
		}
		tree, err := parseTree(p, p.parseSuccessorModule)
		if err != nil {
			return nil, err
		}
		successors = append(successors, lsystem.Successor{Probability: probability.Number(), Tree: tree})

		more, err := p.separator("}")
		if err != nil {
			return nil, err
		}
		if !more {
			return successors, nil
		}
	}
}

func (p *parser) parseIgnore() ([]lsystem.ModuleDefinition, error) {
	if _, err := p.expect(ModeExpression, TokenBracketOpen, "{"); err != nil {
		return nil, err
	}
	var ignore []lsystem.ModuleDefinition
	if closed, err := p.accept(ModeExpression, TokenBracketClose, "}"); err != nil || closed {
		return ignore, err
	}
	for {
		name, err := p.expect(ModeModule, TokenIdentifier, "")
		if err != nil {
			return nil, err
		}
		definition, err := p.parsePattern(name)
		if err != nil {
			return nil, err
		}
		ignore = append(ignore, definition)

		more, err := p.separator("}")
		if err != nil {
			return nil, err
		}
		if !more {
			return ignore, nil
		}
	}
}

// Numeric expressions, loosest first:
//
//	sum    := term (('+'|'-') term)*
//	term   := factor (('*'|'/') factor)*
//	factor := unit ('^' factor)?
//	unit   := IDENTIFIER | NUMBER | '-' unit | '(' sum ')'
func (p *parser) parseNumeric(visible visibility) (expr.Node, error) {
	return p.parseInfix(visible, p.parseTerm, "+", "-")
}

func (p *parser) parseTerm(visible visibility) (expr.Node, error) {
	return p.parseInfix(visible, p.parseFactor, "*", "/")
}

func (p *parser) parseInfix(visible visibility, operand func(visibility) (expr.Node, error), operators ...string) (expr.Node, error) {
	left, err := operand(visible)
	if err != nil {
		return nil, err
	}
	for {
		t, err := p.peek(ModeExpression)
		if err != nil {
			return nil, err
		}
		op, ok := infixOperator(t, operators)
		if !ok {
			return left, nil
		}
		p.next(ModeExpression)
		right, err := operand(visible)
		if err != nil {
			return nil, err
		}
		left = &expr.Binary{Op: op, Left: left, Right: right}
	}
}

func infixOperator(t Token, operators []string) (expr.Operator, bool) {
	if t.Kind != TokenOperator {
		return 0, false
	}
	for _, s := range operators {
		if t.Lexeme == s {
			return expr.LookupOperator(s)
		}
	}
	return 0, false
}

func (p *parser) parseFactor(visible visibility) (expr.Node, error) {
	base, err := p.parseUnit(visible)
	if err != nil {
		return nil, err
	}
	power, err := p.accept(ModeExpression, TokenOperator, "^")
	if err != nil || !power {
		return base, err
	}
	exponent, err := p.parseFactor(visible)
	if err != nil {
		return nil, err
	}
	return &expr.Binary{Op: expr.OpPow, Left: base, Right: exponent}, nil
}

func (p *parser) parseUnit(visible visibility) (expr.Node, error) {
	t, err := p.next(ModeExpression)
	if err != nil {
		return nil, err
	}
	switch {
	case t.Kind == TokenIdentifier:
		if !visible(t.Lexeme) {
			return nil, errorAt(t, "unknown identifier %s", t.Lexeme)
		}
		return &expr.Ident{Name: t.Lexeme}, nil

	case t.Kind == TokenNumber:
		return &expr.Number{Value: t.Number()}, nil

	case t.Is(TokenOperator, "-"):
		operand, err := p.parseUnit(visible)
		if err != nil {
			return nil, err
		}
		return &expr.Negate{Operand: operand}, nil

	case t.Is(TokenBracketOpen, "("):
		inner, err := p.parseNumeric(visible)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ModeExpression, TokenBracketClose, ")"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, errorAt(t, "expected a number, an identifier or \"(\" but got %s", t)
}

// Boolean expressions:
//
//	or      := and ('or' and)*
//	and     := factor ('and' factor)*
//	factor  := 'true' | 'false' | 'not' or | '(' or ')' | compare
//	compare := sum relation sum
func (p *parser) parseBoolean(visible visibility) (expr.Node, error) {
	return p.parseLogical(visible, p.parseConjunction, KeywordOr, expr.OpOr)
}

func (p *parser) parseConjunction(visible visibility) (expr.Node, error) {
	return p.parseLogical(visible, p.parseBooleanFactor, KeywordAnd, expr.OpAnd)
}

func (p *parser) parseLogical(visible visibility, operand func(visibility) (expr.Node, error), keyword string, op expr.Operator) (expr.Node, error) {
	left, err := operand(visible)
	if err != nil {
		return nil, err
	}
	for {
		more, err := p.accept(ModeExpression, TokenKeyword, keyword)
		if err != nil {
			return nil, err
		}
		if !more {
			return left, nil
		}
		right, err := operand(visible)
		if err != nil {
			return nil, err
		}
		left = &expr.Logical{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseBooleanFactor(visible visibility) (expr.Node, error) {
	t, err := p.peek(ModeExpression)
	if err != nil {
		return nil, err
	}
	switch {
	case t.Is(TokenKeyword, KeywordTrue), t.Is(TokenKeyword, KeywordFalse):
		p.next(ModeExpression)
		return &expr.Bool{Value: t.Lexeme == KeywordTrue}, nil

	case t.Is(TokenKeyword, KeywordNot):
		p.next(ModeExpression)
		operand, err := p.parseBoolean(visible)
		if err != nil {
			return nil, err
		}
		return &expr.Not{Operand: operand}, nil

	case t.Is(TokenBracketOpen, "("):
		if node, ok := p.tryParenthesizedBoolean(visible); ok {
			return node, nil
		}
	}
	return p.parseCompare(visible)
}

// tryParenthesizedBoolean reads "( or )" if that is what comes; otherwise it
// rewinds so the parenthesis can be read as part of a comparison, as in
// "(x + 1) > 2".
func (p *parser) tryParenthesizedBoolean(visible visibility) (expr.Node, bool) {
	mark := p.lex.mark()
	if _, err := p.next(ModeExpression); err == nil {
		if node, err := p.parseBoolean(visible); err == nil {
			if closing, err := p.next(ModeExpression); err == nil && closing.Is(TokenBracketClose, ")") {
				if after, err := p.peek(ModeExpression); err == nil && !continuesComparison(after) {
					return node, true
				}
			}
		}
	}
	p.lex.rewind(mark)
	return nil, false
}

func continuesComparison(t Token) bool {
	return t.Kind == TokenOperator && t.Lexeme != "->"
}

func (p *parser) parseCompare(visible visibility) (expr.Node, error) {
	left, err := p.parseNumeric(visible)
	if err != nil {
		return nil, err
	}
	t, err := p.next(ModeExpression)
	if err != nil {
		return nil, err
	}
	op, ok := expr.LookupOperator(t.Lexeme)
	if t.Kind != TokenOperator || !ok || !op.IsRelational() {
		return nil, errorAt(t, "expected a comparison operator but got %s", t)
	}
	right, err := p.parseNumeric(visible)
	if err != nil {
		return nil, err
	}
	return &expr.Compare{Op: op, Left: left, Right: right}, nil
}

// AsParseError reports whether err is or wraps a ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	ok := errors.As(err, &pe)
	return pe, ok
}

// AsLexicalError reports whether err is or wraps a LexicalError.
func AsLexicalError(err error) (*LexicalError, bool) {
	var le *LexicalError
	ok := errors.As(err, &le)
	return le, ok
}
