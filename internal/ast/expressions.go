package ast

import "github.com/lis05/cotton-go/internal/source"

// Identifier is a bare name reference, resolved against the scope stack.
type Identifier struct {
	Name   string
	NameID uint64 // interned ident.ID, filled in by the parser
	Area   source.Area
}

func (i *Identifier) expressionNode() {}
func (i *Identifier) Pos() source.Area { return i.Area }

// Literal kinds.

type IntegerLiteral struct {
	Value int64
	Area  source.Area
}

func (l *IntegerLiteral) expressionNode() {}
func (l *IntegerLiteral) Pos() source.Area { return l.Area }

type RealLiteral struct {
	Value float64
	Area  source.Area
}

func (l *RealLiteral) expressionNode() {}
func (l *RealLiteral) Pos() source.Area { return l.Area }

type StringLiteral struct {
	Value string
	Area  source.Area
}

func (l *StringLiteral) expressionNode() {}
func (l *StringLiteral) Pos() source.Area { return l.Area }

type CharacterLiteral struct {
	Value byte
	Area  source.Area
}

func (l *CharacterLiteral) expressionNode() {}
func (l *CharacterLiteral) Pos() source.Area { return l.Area }

type BooleanLiteral struct {
	Value bool
	Area  source.Area
}

func (l *BooleanLiteral) expressionNode() {}
func (l *BooleanLiteral) Pos() source.Area { return l.Area }

type NothingLiteral struct {
	Area source.Area
}

func (l *NothingLiteral) expressionNode() {}
func (l *NothingLiteral) Pos() source.Area { return l.Area }

// ArrayLiteral is an `[a, b, c]` expression.
type ArrayLiteral struct {
	Elements []Expression
	Area     source.Area
}

func (l *ArrayLiteral) expressionNode() {}
func (l *ArrayLiteral) Pos() source.Area { return l.Area }

// OperatorExpr is a unary, binary, or inc/dec operator application. The
// evaluator establishes a context whose sub-areas are Operands[i].Pos(),
// at evaluation time.
type OperatorExpr struct {
	Kind     OperatorKind
	Operands []Expression
	Area     source.Area
}

func (e *OperatorExpr) expressionNode() {}
func (e *OperatorExpr) Pos() source.Area { return e.Area }

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Callee Expression
	Args   []Expression
	Area   source.Area
}

func (e *CallExpr) expressionNode() {}
func (e *CallExpr) Pos() source.Area { return e.Area }

// IndexExpr is `collection[index]`.
type IndexExpr struct {
	Collection Expression
	Index      Expression
	Area       source.Area
}

func (e *IndexExpr) expressionNode() {}
func (e *IndexExpr) Pos() source.Area { return e.Area }

// FieldAccessExpr is `receiver.Name` — resolved at evaluation time to
// either a bound method or a record field.
type FieldAccessExpr struct {
	Receiver Expression
	Name     string
	NameID   uint64
	Area     source.Area
}

func (e *FieldAccessExpr) expressionNode() {}
func (e *FieldAccessExpr) Pos() source.Area { return e.Area }

// AssignmentExpr is `lhs = rhs`, where lhs is an Identifier, a
// FieldAccessExpr, or an IndexExpr (the three assignment
// shapes). Assignment is an expression, not a statement: it evaluates to
// the assigned value, matching the C-family grammar's `x = (y = 1)`.
type AssignmentExpr struct {
	Target Expression
	Value  Expression
	Area   source.Area
}

func (e *AssignmentExpr) expressionNode() {}
func (e *AssignmentExpr) Pos() source.Area { return e.Area }

// FunctionLiteral is an anonymous `function(params){ body }` expression,
// used for closures passed as arguments; named declarations are parsed
// into a FuncDecl statement, which carries its own Params and Body.
type FunctionLiteral struct {
	Params []Identifier
	Body   *Block
	Area   source.Area
}

func (e *FunctionLiteral) expressionNode() {}
func (e *FunctionLiteral) Pos() source.Area { return e.Area }

// MakeExpr is `make(TypeName)`, constructing a fresh instance of a
// user-defined record type, or an empty String or Array; the other
// built-in types have no Create hook and cannot be made.
type MakeExpr struct {
	TypeName string
	Area     source.Area
}

func (e *MakeExpr) expressionNode() {}
func (e *MakeExpr) Pos() source.Area { return e.Area }
