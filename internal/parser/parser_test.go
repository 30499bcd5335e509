package parser

import (
	"testing"

	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/ident"
	"github.com/lis05/cotton-go/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src, 0)
	p := New(l, ident.NewTable(), 0)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return program
}

func TestParseArithmeticPrecedence(t *testing.T) {
	program := parse(t, `1+2*3;`)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected an ExpressionStmt, got %T", program.Statements[0])
	}
	op, ok := stmt.X.(*ast.OperatorExpr)
	if !ok {
		t.Fatalf("expected top-level node to be the ADD, got %T", stmt.X)
	}
	if op.Kind != ast.ADD {
		t.Fatalf("expected top-level operator to be ADD (lowest precedence wins at the root), got %v", op.Kind)
	}
	rhs, ok := op.Operands[1].(*ast.OperatorExpr)
	if !ok || rhs.Kind != ast.MULT {
		t.Fatalf("expected right operand to be the MULT subexpression, got %#v", op.Operands[1])
	}
}

func TestParseAssignmentBindsLooserThanAddition(t *testing.T) {
	program := parse(t, `a = 1 + 2;`)
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	assign, ok := stmt.X.(*ast.AssignmentExpr)
	if !ok {
		t.Fatalf("expected an AssignmentExpr, got %#v", stmt.X)
	}
	if _, ok := assign.Target.(*ast.Identifier); !ok {
		t.Fatalf("expected assignment's target to be an identifier, got %#v", assign.Target)
	}
	if _, ok := assign.Value.(*ast.OperatorExpr); !ok {
		t.Fatalf("expected assignment's value to be the ADD subexpression, got %#v", assign.Value)
	}
}

func TestParseFunctionCallArguments(t *testing.T) {
	program := parse(t, `f(1, 2, 3);`)
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	call, ok := stmt.X.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected a CallExpr, got %#v", stmt.X)
	}
	if len(call.Args) != 3 {
		t.Fatalf("expected 3 call arguments, got %d", len(call.Args))
	}
}

func TestParseIfStatement(t *testing.T) {
	program := parse(t, `if n <= 1 { return 1; }`)
	ifStmt, ok := program.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected an IfStmt, got %#v", program.Statements[0])
	}
	cond, ok := ifStmt.Condition.(*ast.OperatorExpr)
	if !ok || cond.Kind != ast.LEQ {
		t.Fatalf("expected condition to be a LEQ comparison, got %#v", ifStmt.Condition)
	}
}

func TestParseArrayLiteral(t *testing.T) {
	program := parse(t, `a = [1,2,3,4];`)
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	assign := stmt.X.(*ast.AssignmentExpr)
	lit, ok := assign.Value.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("expected assignment's value to be an array literal, got %#v", assign.Value)
	}
	if len(lit.Elements) != 4 {
		t.Fatalf("expected 4 array elements, got %d", len(lit.Elements))
	}
}

func TestParseFieldAccessAsAssignmentTarget(t *testing.T) {
	program := parse(t, `p.x = 1;`)
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	assign := stmt.X.(*ast.AssignmentExpr)
	field, ok := assign.Target.(*ast.FieldAccessExpr)
	if !ok {
		t.Fatalf("expected assignment target to be a FieldAccessExpr, got %#v", assign.Target)
	}
	if field.Name != "x" {
		t.Fatalf("expected field name x, got %q", field.Name)
	}
}

func TestParseAndOrShortCircuitKinds(t *testing.T) {
	program := parse(t, `print(false and true or false);`)
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	call := stmt.X.(*ast.CallExpr)
	top, ok := call.Args[0].(*ast.OperatorExpr)
	if !ok || top.Kind != ast.OPOR {
		t.Fatalf("expected root operator OPOR (lowest precedence), got %#v", call.Args[0])
	}
}

func TestParseErrorOnUnexpectedToken(t *testing.T) {
	l := lexer.New(`1 + ;`, 0)
	p := New(l, ident.NewTable(), 0)
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a parse error for a dangling operator")
	}
}

func TestParseFunctionDefinition(t *testing.T) {
	program := parse(t, `function fact(n){ if n<=1 { return 1; } return n*fact(n-1); }`)
	if len(program.Statements) != 1 {
		t.Fatalf("expected a single function declaration statement, got %d", len(program.Statements))
	}
	decl, ok := program.Statements[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected a FuncDecl, got %#v", program.Statements[0])
	}
	if decl.Name != "fact" || len(decl.Params) != 1 {
		t.Fatalf("expected fact/1 to be parsed, got name=%q params=%d", decl.Name, len(decl.Params))
	}
}

func TestParseRecordDefinition(t *testing.T) {
	program := parse(t, `record Pt { x; y; }`)
	decl, ok := program.Statements[0].(*ast.RecordDecl)
	if !ok {
		t.Fatalf("expected a RecordDecl, got %#v", program.Statements[0])
	}
	if decl.Name != "Pt" {
		t.Fatalf("expected record name Pt, got %q", decl.Name)
	}
}
