// Package parser implements a Pratt (precedence-climbing) parser that
// turns a Cotton token stream into the AST defined in internal/ast,
// following a classic Pratt-parser architecture: a prefix/infix
// function table keyed by token type, plus a precedence table driving
// how far an infix parse climbs before returning to its caller.
package parser

import (
	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/ident"
	"github.com/lis05/cotton-go/internal/lexer"
	"github.com/lis05/cotton-go/internal/source"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGN
	LOGIC_OR
	LOGIC_AND
	BIT_OR
	BIT_XOR
	BIT_AND
	EQUALITY
	RELATIONAL
	SHIFT
	SUM
	PRODUCT
	PREFIX
	POSTFIX
	CALL_INDEX_MEMBER
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN: ASSIGN,
	lexer.OROR:   LOGIC_OR,
	lexer.OR:     LOGIC_OR,
	lexer.ANDAND: LOGIC_AND,
	lexer.AND:    LOGIC_AND,
	lexer.PIPE:   BIT_OR,
	lexer.CARET:  BIT_XOR,
	lexer.AMP:    BIT_AND,
	lexer.EQ:     EQUALITY,
	lexer.NEQ:    EQUALITY,
	lexer.LT:     RELATIONAL,
	lexer.LEQ:    RELATIONAL,
	lexer.GT:     RELATIONAL,
	lexer.GEQ:    RELATIONAL,
	lexer.SHL:    SHIFT,
	lexer.SHR:    SHIFT,
	lexer.PLUS:   SUM,
	lexer.MINUS:  SUM,
	lexer.STAR:   PRODUCT,
	lexer.SLASH:  PRODUCT,
	lexer.PERCENT: PRODUCT,
	lexer.LPAREN:   CALL_INDEX_MEMBER,
	lexer.LBRACKET: CALL_INDEX_MEMBER,
	lexer.DOT:      CALL_INDEX_MEMBER,
	lexer.INC:      POSTFIX,
	lexer.DEC:      POSTFIX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes a token stream and builds an ast.Program.
type Parser struct {
	l      *lexer.Lexer
	idents *ident.Table
	file   source.FileID

	curToken  lexer.Token
	peekToken lexer.Token

	errors []*source.Diagnostic

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser over l, interning identifier names into idents.
func New(l *lexer.Lexer, idents *ident.Table, file source.FileID) *Parser {
	p := &Parser{l: l, idents: idents, file: file}

	p.prefixFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:    p.parseIdentifier,
		lexer.INT:      p.parseIntegerLiteral,
		lexer.REAL:     p.parseRealLiteral,
		lexer.STRING:   p.parseStringLiteral,
		lexer.CHAR:     p.parseCharacterLiteral,
		lexer.TRUE:     p.parseBooleanLiteral,
		lexer.FALSE:    p.parseBooleanLiteral,
		lexer.NOTHING:  p.parseNothingLiteral,
		lexer.LPAREN:   p.parseGroupedExpression,
		lexer.LBRACKET: p.parseArrayLiteral,
		lexer.MINUS:    p.parsePrefixOperator,
		lexer.PLUS:     p.parsePrefixOperator,
		lexer.BANG:     p.parsePrefixOperator,
		lexer.NOT:      p.parsePrefixOperator,
		lexer.TILDE:    p.parsePrefixOperator,
		lexer.INC:      p.parsePrefixIncDec,
		lexer.DEC:      p.parsePrefixIncDec,
		lexer.FUNCTION:  p.parseFunctionLiteral,
		lexer.MAKE:      p.parseMakeExpression,
	}

	p.infixFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS: p.parseBinaryOperator, lexer.MINUS: p.parseBinaryOperator,
		lexer.STAR: p.parseBinaryOperator, lexer.SLASH: p.parseBinaryOperator,
		lexer.PERCENT: p.parseBinaryOperator,
		lexer.SHL: p.parseBinaryOperator, lexer.SHR: p.parseBinaryOperator,
		lexer.AMP: p.parseBinaryOperator, lexer.PIPE: p.parseBinaryOperator, lexer.CARET: p.parseBinaryOperator,
		lexer.LT: p.parseBinaryOperator, lexer.LEQ: p.parseBinaryOperator,
		lexer.GT: p.parseBinaryOperator, lexer.GEQ: p.parseBinaryOperator,
		lexer.EQ: p.parseBinaryOperator, lexer.NEQ: p.parseBinaryOperator,
		lexer.ANDAND: p.parseLogicalOperator, lexer.AND: p.parseLogicalOperator,
		lexer.OROR: p.parseLogicalOperator, lexer.OR: p.parseLogicalOperator,
		lexer.LPAREN:   p.parseCallExpression,
		lexer.LBRACKET: p.parseIndexExpression,
		lexer.DOT:      p.parseFieldAccess,
		lexer.ASSIGN:   p.parseAssignment,
		lexer.INC:      p.parsePostfixIncDec,
		lexer.DEC:      p.parsePostfixIncDec,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []*source.Diagnostic {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected next token to be %s, got %s", t, p.peekToken.Type)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) errorf(format string, args ...any) {
	area := p.curToken.Area
	p.errors = append(p.errors, source.New(source.CategoryParse, &area, format, args...))
}

func (p *Parser) internID(name string) uint64 {
	return uint64(p.idents.Intern(name))
}

func areaFrom(start, end source.Area) source.Area {
	return source.Area{File: start.File, First: start.First, Last: end.Last}
}

// ParseProgram parses the full token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	start := p.curToken.Area
	for !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.nextToken()
	}
	prog.Area = areaFrom(start, p.curToken.Area)
	return prog
}

func (p *Parser) noPrefixParseFnError(t lexer.TokenType) {
	p.errorf("unexpected token %s", t)
}
