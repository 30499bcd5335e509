package parser

import (
	"strconv"

	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/lexer"
)

// parseExpression is the heart of the Pratt parser: parse one prefix
// expression, then keep absorbing infix operators whose precedence
// exceeds minPrecedence.
func (p *Parser) parseExpression(minPrecedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.curToken.Type]
	if !ok {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekIs(lexer.SEMICOLON) && minPrecedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	tok := p.curToken
	return &ast.Identifier{Name: tok.Literal, NameID: p.internID(tok.Literal), Area: tok.Area}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.curToken
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errorf("invalid integer literal %q", tok.Literal)
	}
	return &ast.IntegerLiteral{Value: v, Area: tok.Area}
}

func (p *Parser) parseRealLiteral() ast.Expression {
	tok := p.curToken
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errorf("invalid real literal %q", tok.Literal)
	}
	return &ast.RealLiteral{Value: v, Area: tok.Area}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	return &ast.StringLiteral{Value: tok.Literal, Area: tok.Area}
}

func (p *Parser) parseCharacterLiteral() ast.Expression {
	tok := p.curToken
	b := byte(0)
	if len(tok.Literal) > 0 {
		b = tok.Literal[0]
	}
	return &ast.CharacterLiteral{Value: b, Area: tok.Area}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	tok := p.curToken
	return &ast.BooleanLiteral{Value: tok.Type == lexer.TRUE, Area: tok.Area}
}

func (p *Parser) parseNothingLiteral() ast.Expression {
	return &ast.NothingLiteral{Area: p.curToken.Area}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	start := p.curToken.Area
	lit := &ast.ArrayLiteral{}
	p.nextToken()
	for !p.curIs(lexer.RBRACKET) {
		lit.Elements = append(lit.Elements, p.parseExpression(LOWEST))
		if p.peekIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
		} else {
			p.nextToken()
			break
		}
	}
	lit.Area = areaFrom(start, p.curToken.Area)
	return lit
}

var prefixOperatorKind = map[lexer.TokenType]ast.OperatorKind{
	lexer.MINUS: ast.NEG, lexer.PLUS: ast.POS, lexer.BANG: ast.OPNOT,
	lexer.NOT: ast.OPNOT, lexer.TILDE: ast.INVERSE,
}

func (p *Parser) parsePrefixOperator() ast.Expression {
	tok := p.curToken
	kind := prefixOperatorKind[tok.Type]
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	return &ast.OperatorExpr{Kind: kind, Operands: []ast.Expression{operand}, Area: areaFrom(tok.Area, operand.Pos())}
}

func (p *Parser) parsePrefixIncDec() ast.Expression {
	tok := p.curToken
	kind := ast.PREINC
	if tok.Type == lexer.DEC {
		kind = ast.PREDEC
	}
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	return &ast.OperatorExpr{Kind: kind, Operands: []ast.Expression{operand}, Area: areaFrom(tok.Area, operand.Pos())}
}

func (p *Parser) parsePostfixIncDec(left ast.Expression) ast.Expression {
	tok := p.curToken
	kind := ast.POSTINC
	if tok.Type == lexer.DEC {
		kind = ast.POSTDEC
	}
	return &ast.OperatorExpr{Kind: kind, Operands: []ast.Expression{left}, Area: areaFrom(left.Pos(), tok.Area)}
}

var binaryOperatorKind = map[lexer.TokenType]ast.OperatorKind{
	lexer.PLUS: ast.ADD, lexer.MINUS: ast.SUB, lexer.STAR: ast.MULT,
	lexer.SLASH: ast.DIV, lexer.PERCENT: ast.REM,
	lexer.SHL: ast.LSHIFT, lexer.SHR: ast.RSHIFT,
	lexer.AMP: ast.BITAND, lexer.PIPE: ast.BITOR, lexer.CARET: ast.BITXOR,
	lexer.LT: ast.LT, lexer.LEQ: ast.LEQ, lexer.GT: ast.GT, lexer.GEQ: ast.GEQ,
	lexer.EQ: ast.EQ, lexer.NEQ: ast.NEQ,
}

func (p *Parser) parseBinaryOperator(left ast.Expression) ast.Expression {
	tok := p.curToken
	kind := binaryOperatorKind[tok.Type]
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.OperatorExpr{Kind: kind, Operands: []ast.Expression{left, right}, Area: areaFrom(left.Pos(), right.Pos())}
}

func (p *Parser) parseLogicalOperator(left ast.Expression) ast.Expression {
	tok := p.curToken
	kind := ast.OPAND
	if tok.Type == lexer.OROR || tok.Type == lexer.OR {
		kind = ast.OPOR
	}
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.OperatorExpr{Kind: kind, Operands: []ast.Expression{left, right}, Area: areaFrom(left.Pos(), right.Pos())}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	start := callee.Pos()
	args := p.parseExpressionList(lexer.RPAREN)
	return &ast.CallExpr{Callee: callee, Args: args, Area: areaFrom(start, p.curToken.Area)}
}

func (p *Parser) parseExpressionList(end lexer.TokenType) []ast.Expression {
	var list []ast.Expression
	if p.peekIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return list
	}
	return list
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	start := left.Pos()
	p.nextToken()
	idx := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return &ast.IndexExpr{Collection: left, Index: idx, Area: areaFrom(start, p.curToken.Area)}
}

func (p *Parser) parseFieldAccess(left ast.Expression) ast.Expression {
	start := left.Pos()
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.curToken.Literal
	return &ast.FieldAccessExpr{Receiver: left, Name: name, NameID: p.internID(name), Area: areaFrom(start, p.curToken.Area)}
}

func (p *Parser) parseAssignment(left ast.Expression) ast.Expression {
	start := left.Pos()
	p.nextToken()
	value := p.parseExpression(ASSIGN - 1) // right-associative
	if value == nil {
		return nil
	}
	return &ast.AssignmentExpr{Target: left, Value: value, Area: areaFrom(start, value.Pos())}
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	start := p.curToken.Area
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	params := p.parseParamList()
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	return &ast.FunctionLiteral{Params: params, Body: body, Area: areaFrom(start, body.Area)}
}

func (p *Parser) parseParamList() []ast.Identifier {
	var params []ast.Identifier
	if p.peekIs(lexer.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, ast.Identifier{Name: p.curToken.Literal, NameID: p.internID(p.curToken.Literal), Area: p.curToken.Area})
	for p.peekIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, ast.Identifier{Name: p.curToken.Literal, NameID: p.internID(p.curToken.Literal), Area: p.curToken.Area})
	}
	if !p.expectPeek(lexer.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseMakeExpression() ast.Expression {
	start := p.curToken.Area
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	typeName := p.curToken.Literal
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return &ast.MakeExpr{TypeName: typeName, Area: areaFrom(start, p.curToken.Area)}
}
