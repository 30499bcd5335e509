package ast

import "github.com/lis05/cotton-go/internal/source"

// ExpressionStmt wraps an expression evaluated for its side effects (a
// bare call, an assignment).
type ExpressionStmt struct {
	X    Expression
	Area source.Area
}

func (s *ExpressionStmt) statementNode() {}
func (s *ExpressionStmt) Pos() source.Area { return s.Area }

// Block is a `{ ... }` sequence of statements; its value (when used as
// a function body) is the value of the last statement it executed.
type Block struct {
	Statements []Statement
	Area       source.Area
}

func (s *Block) statementNode() {}
func (s *Block) Pos() source.Area { return s.Area }

// EmptyStmt is a bare `;`.
type EmptyStmt struct {
	Area source.Area
}

func (s *EmptyStmt) statementNode() {}
func (s *EmptyStmt) Pos() source.Area { return s.Area }

// VarDeclStmt introduces a new local binding: `var x = expr;` or
// `var x;` (bound to nothing).
type VarDeclStmt struct {
	Name   string
	NameID uint64
	Value  Expression // nil if uninitialized
	Area   source.Area
}

func (s *VarDeclStmt) statementNode() {}
func (s *VarDeclStmt) Pos() source.Area { return s.Area }

// IfStmt is `if cond { then } else { else }`; Else may be nil, or itself
// an *IfStmt for an `else if` chain.
type IfStmt struct {
	Condition Expression
	Then      *Block
	Else      Statement // *Block or *IfStmt or nil
	Area      source.Area
}

func (s *IfStmt) statementNode() {}
func (s *IfStmt) Pos() source.Area { return s.Area }

// WhileStmt is `while cond { body }`.
type WhileStmt struct {
	Condition Expression
	Body      *Block
	Area      source.Area
}

func (s *WhileStmt) statementNode() {}
func (s *WhileStmt) Pos() source.Area { return s.Area }

// ForStmt is the C-style `for (init; cond; post) { body }`. Any of Init,
// Condition, Post may be nil.
type ForStmt struct {
	Init      Statement
	Condition Expression
	Post      Statement
	Body      *Block
	Area      source.Area
}

func (s *ForStmt) statementNode() {}
func (s *ForStmt) Pos() source.Area { return s.Area }

// ReturnStmt is `return expr;` or bare `return;` (returns nothing).
type ReturnStmt struct {
	Value Expression // nil if bare return
	Area  source.Area
}

func (s *ReturnStmt) statementNode() {}
func (s *ReturnStmt) Pos() source.Area { return s.Area }

// BreakStmt is `break;`.
type BreakStmt struct {
	Area source.Area
}

func (s *BreakStmt) statementNode() {}
func (s *BreakStmt) Pos() source.Area { return s.Area }

// ContinueStmt is `continue;`.
type ContinueStmt struct {
	Area source.Area
}

func (s *ContinueStmt) statementNode() {}
func (s *ContinueStmt) Pos() source.Area { return s.Area }

// FuncDecl is `function name(params){ body }`, binding name in the
// innermost frame to a scripted Function value.
type FuncDecl struct {
	Name   string
	NameID uint64
	Params []Identifier
	Body   *Block
	Area   source.Area
}

func (s *FuncDecl) statementNode() {}
func (s *FuncDecl) Pos() source.Area { return s.Area }

// RecordDecl is `record Name { field1; field2; }`, Cotton's spelling of
// TypeDef: it declares a new fixed-shape UserRecord type and
// binds its name to a type-itself Value.
type RecordDecl struct {
	Name   string
	NameID uint64
	Fields []string
	Area   source.Area
}

func (s *RecordDecl) statementNode() {}
func (s *RecordDecl) Pos() source.Area { return s.Area }

// ImportStmt is `import "name";`, the "Module load" AST node:
// it resolves a native module by name and binds the returned value.
type ImportStmt struct {
	ModuleName string
	BindName   string // always ModuleName; the grammar has no alias form
	Area       source.Area
}

func (s *ImportStmt) statementNode() {}
func (s *ImportStmt) Pos() source.Area { return s.Area }
