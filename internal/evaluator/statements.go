package evaluator

import (
	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/ident"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// execStatement evaluates one statement, returning its value where that
// is meaningful (an ExpressionStmt's value; a Block's trailing value)
// and threading control-flow signals through e.signal rather than a
// sentinel Value, the Return/Break/Continue propagation mechanism.
func (e *Evaluator) execStatement(stmt ast.Statement) (object.Value, *source.Diagnostic) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		return e.evalExpression(s.X)

	case *ast.Block:
		return e.execBlock(s)

	case *ast.EmptyStmt:
		return e.Nothing, nil

	case *ast.VarDeclStmt:
		return e.execVarDecl(s)

	case *ast.IfStmt:
		return e.execIf(s)

	case *ast.WhileStmt:
		return e.execWhile(s)

	case *ast.ForStmt:
		return e.execFor(s)

	case *ast.ReturnStmt:
		return e.execReturn(s)

	case *ast.BreakStmt:
		e.signal = controlSignal{kind: signalBreak}
		return e.Nothing, nil

	case *ast.ContinueStmt:
		e.signal = controlSignal{kind: signalContinue}
		return e.Nothing, nil

	case *ast.FuncDecl:
		return e.execFuncDecl(s)

	case *ast.RecordDecl:
		return e.execRecordDecl(s)

	case *ast.ImportStmt:
		return e.execImport(s)

	default:
		return object.Value{}, source.New(source.CategoryFatal, areaPtr(stmt.Pos()), "unhandled statement node %T", stmt)
	}
}

func (e *Evaluator) execBlock(b *ast.Block) (object.Value, *source.Diagnostic) {
	last := e.Nothing
	for _, stmt := range b.Statements {
		v, diag := e.execStatement(stmt)
		if diag != nil {
			return object.Value{}, diag
		}
		last = v
		if e.signal.kind != signalNone {
			break
		}
	}
	return last, nil
}

func (e *Evaluator) execVarDecl(s *ast.VarDeclStmt) (object.Value, *source.Diagnostic) {
	v := e.Nothing
	if s.Value != nil {
		var diag *source.Diagnostic
		v, diag = e.evalExpression(s.Value)
		if diag != nil {
			return object.Value{}, diag
		}
	}
	e.Scope.AddVariable(ident.ID(s.NameID), v)
	return e.Nothing, nil
}

func (e *Evaluator) execIf(s *ast.IfStmt) (object.Value, *source.Diagnostic) {
	cond, diag := e.evalExpression(s.Condition)
	if diag != nil {
		return object.Value{}, diag
	}
	truthy, diag := e.truthy(cond, s.Condition.Pos())
	if diag != nil {
		return object.Value{}, diag
	}
	if truthy {
		return e.execBlock(s.Then)
	}
	if s.Else != nil {
		return e.execStatement(s.Else)
	}
	return e.Nothing, nil
}

func (e *Evaluator) execWhile(s *ast.WhileStmt) (object.Value, *source.Diagnostic) {
	for {
		cond, diag := e.evalExpression(s.Condition)
		if diag != nil {
			return object.Value{}, diag
		}
		truthy, diag := e.truthy(cond, s.Condition.Pos())
		if diag != nil {
			return object.Value{}, diag
		}
		if !truthy {
			break
		}
		_, diag = e.execBlock(s.Body)
		if diag != nil {
			return object.Value{}, diag
		}
		e.safePoint()
		if e.signal.kind == signalBreak {
			e.signal = controlSignal{}
			break
		}
		if e.signal.kind == signalContinue {
			e.signal = controlSignal{}
			continue
		}
		if e.signal.kind == signalReturn {
			break
		}
	}
	return e.Nothing, nil
}

func (e *Evaluator) execFor(s *ast.ForStmt) (object.Value, *source.Diagnostic) {
	if s.Init != nil {
		if _, diag := e.execStatement(s.Init); diag != nil {
			return object.Value{}, diag
		}
	}
	for {
		if s.Condition != nil {
			cond, diag := e.evalExpression(s.Condition)
			if diag != nil {
				return object.Value{}, diag
			}
			truthy, diag := e.truthy(cond, s.Condition.Pos())
			if diag != nil {
				return object.Value{}, diag
			}
			if !truthy {
				break
			}
		}
		if _, diag := e.execBlock(s.Body); diag != nil {
			return object.Value{}, diag
		}
		e.safePoint()
		if e.signal.kind == signalBreak {
			e.signal = controlSignal{}
			break
		}
		if e.signal.kind == signalReturn {
			break
		}
		if e.signal.kind == signalContinue {
			e.signal = controlSignal{}
		}
		if s.Post != nil {
			if _, diag := e.execStatement(s.Post); diag != nil {
				return object.Value{}, diag
			}
		}
	}
	return e.Nothing, nil
}

func (e *Evaluator) execReturn(s *ast.ReturnStmt) (object.Value, *source.Diagnostic) {
	v := e.Nothing
	if s.Value != nil {
		var diag *source.Diagnostic
		v, diag = e.evalExpression(s.Value)
		if diag != nil {
			return object.Value{}, diag
		}
	}
	e.signal = controlSignal{kind: signalReturn, value: v}
	return v, nil
}

func (e *Evaluator) execFuncDecl(s *ast.FuncDecl) (object.Value, *source.Diagnostic) {
	fn := object.Value{
		Type: e.functionType,
		Kind: object.KindInstance,
		Payload: &object.Function{
			Kind:    object.FunctionScripted,
			Name:    s.Name,
			Params:  s.Params,
			Body:    s.Body,
			Closure: e.Scope,
		},
	}
	e.Register(fn)
	e.Scope.AddVariable(ident.ID(s.NameID), fn)
	return e.Nothing, nil
}

func (e *Evaluator) execRecordDecl(s *ast.RecordDecl) (object.Value, *source.Diagnostic) {
	typ := e.makeRecordType(s.Name, s.Fields)
	e.Scope.AddVariable(ident.ID(s.NameID), object.NewType(typ))
	return e.Nothing, nil
}

func (e *Evaluator) execImport(s *ast.ImportStmt) (object.Value, *source.Diagnostic) {
	loader, ok := e.Modules[s.ModuleName]
	if !ok {
		return object.Value{}, source.New(source.CategoryModule, areaPtr(s.Area), source.MsgModuleNotFound, s.ModuleName)
	}
	v, ok := loader(e)
	if !ok {
		return object.Value{}, source.New(source.CategoryModule, areaPtr(s.Area), source.MsgModuleLoadFailed, s.ModuleName, "loader returned no value")
	}
	e.Scope.AddVariable(ident.ID(e.Idents.Intern(s.BindName)), v)
	return e.Nothing, nil
}

func areaPtr(a source.Area) *source.Area { return &a }
