package parser

import (
	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/lexer"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case lexer.SEMICOLON:
		return &ast.EmptyStmt{Area: p.curToken.Area}
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.VAR:
		return p.parseVarDeclStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.BREAK:
		stmt := &ast.BreakStmt{Area: p.curToken.Area}
		if p.peekIs(lexer.SEMICOLON) {
			p.nextToken()
		}
		return stmt
	case lexer.CONTINUE:
		stmt := &ast.ContinueStmt{Area: p.curToken.Area}
		if p.peekIs(lexer.SEMICOLON) {
			p.nextToken()
		}
		return stmt
	case lexer.FUNCTION:
		return p.parseFuncDecl()
	case lexer.RECORD:
		return p.parseRecordDecl()
	case lexer.IMPORT:
		return p.parseImportStmt()
	default:
		return p.parseExpressionStmt()
	}
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Area: p.curToken.Area}
	start := p.curToken.Area
	p.nextToken()
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	block.Area = areaFrom(start, p.curToken.Area)
	return block
}

func (p *Parser) parseExpressionStmt() ast.Statement {
	start := p.curToken.Area
	expr := p.parseExpression(LOWEST)
	stmt := &ast.ExpressionStmt{X: expr, Area: areaFrom(start, p.curToken.Area)}
	if p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseVarDeclStmt() ast.Statement {
	start := p.curToken.Area
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.curToken.Literal
	stmt := &ast.VarDeclStmt{Name: name, NameID: p.internID(name), Area: start}
	if p.peekIs(lexer.ASSIGN) {
		p.nextToken()
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}
	stmt.Area = areaFrom(start, p.curToken.Area)
	if p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseIfStmt() ast.Statement {
	start := p.curToken.Area
	cond := p.parseCondition()
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	then := p.parseBlock()
	stmt := &ast.IfStmt{Condition: cond, Then: then, Area: areaFrom(start, then.Area)}

	if p.peekIs(lexer.ELSE) {
		p.nextToken()
		if p.peekIs(lexer.IF) {
			p.nextToken()
			stmt.Else = p.parseIfStmt()
		} else if p.expectPeek(lexer.LBRACE) {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Statement {
	start := p.curToken.Area
	cond := p.parseCondition()
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	return &ast.WhileStmt{Condition: cond, Body: body, Area: areaFrom(start, body.Area)}
}

// parseCondition parses an if/while condition. It accepts both the
// C-family `if (cond) { ... }` spelling (parseGroupedExpression, already
// registered as LPAREN's prefix parser, consumes the parens as an
// ordinary grouped expression) and the brace-only `if cond { ... }`
// spelling used throughout the worked examples:
// `if n<=1 { return 1; }` carries no parentheses at all.
func (p *Parser) parseCondition() ast.Expression {
	p.nextToken()
	return p.parseExpression(LOWEST)
}

func (p *Parser) parseForStmt() ast.Statement {
	start := p.curToken.Area
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	stmt := &ast.ForStmt{}

	p.nextToken()
	if !p.curIs(lexer.SEMICOLON) {
		stmt.Init = p.parseStatement()
	}
	if !p.curIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	p.nextToken()
	if !p.curIs(lexer.SEMICOLON) {
		stmt.Condition = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}

	p.nextToken()
	if !p.curIs(lexer.RPAREN) {
		stmt.Post = p.parseStatement()
	}
	if !p.curIs(lexer.RPAREN) {
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlock()
	stmt.Area = areaFrom(start, stmt.Body.Area)
	return stmt
}

func (p *Parser) parseReturnStmt() ast.Statement {
	start := p.curToken.Area
	stmt := &ast.ReturnStmt{Area: start}
	if !p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}
	stmt.Area = areaFrom(start, p.curToken.Area)
	if p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseFuncDecl() ast.Statement {
	start := p.curToken.Area
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.curToken.Literal
	decl := &ast.FuncDecl{Name: name, NameID: p.internID(name)}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	decl.Params = p.parseParamList()
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	decl.Body = p.parseBlock()
	decl.Area = areaFrom(start, decl.Body.Area)
	return decl
}

func (p *Parser) parseRecordDecl() ast.Statement {
	start := p.curToken.Area
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.curToken.Literal
	decl := &ast.RecordDecl{Name: name, NameID: p.internID(name)}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	p.nextToken()
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.IDENT) {
			decl.Fields = append(decl.Fields, p.curToken.Literal)
		}
		p.nextToken()
		if p.curIs(lexer.SEMICOLON) || p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	decl.Area = areaFrom(start, p.curToken.Area)
	return decl
}

func (p *Parser) parseImportStmt() ast.Statement {
	start := p.curToken.Area
	if !p.expectPeek(lexer.STRING) {
		return nil
	}
	stmt := &ast.ImportStmt{ModuleName: p.curToken.Literal, BindName: p.curToken.Literal}
	stmt.Area = areaFrom(start, p.curToken.Area)
	if p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}
