package evaluator

import (
	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/ident"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// evalExpression dispatches one expression node, pushing and popping it
// onto the operand stack so the GC can see it as a root for the
// duration its caller holds the reference (part of the GC root set).
func (e *Evaluator) evalExpression(expr ast.Expression) (object.Value, *source.Diagnostic) {
	v, diag := e.eval(expr)
	if diag != nil {
		return object.Value{}, diag
	}
	e.pushOperand(v)
	defer e.popOperand()
	return v, nil
}

func (e *Evaluator) eval(expr ast.Expression) (object.Value, *source.Diagnostic) {
	switch x := expr.(type) {
	case *ast.IntegerLiteral:
		return e.newInteger(x.Value), nil
	case *ast.RealLiteral:
		return e.newReal(x.Value), nil
	case *ast.StringLiteral:
		return e.newString(x.Value), nil
	case *ast.CharacterLiteral:
		return e.newCharacter(x.Value), nil
	case *ast.BooleanLiteral:
		if x.Value {
			return e.True, nil
		}
		return e.False, nil
	case *ast.NothingLiteral:
		return e.Nothing, nil
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(x)
	case *ast.Identifier:
		return e.evalIdentifier(x)
	case *ast.OperatorExpr:
		return e.evalOperator(x)
	case *ast.CallExpr:
		return e.evalCall(x)
	case *ast.IndexExpr:
		return e.evalIndex(x)
	case *ast.FieldAccessExpr:
		return e.evalFieldAccess(x)
	case *ast.AssignmentExpr:
		return e.evalAssignment(x)
	case *ast.FunctionLiteral:
		return e.evalFunctionLiteral(x)
	case *ast.MakeExpr:
		return e.evalMake(x)
	default:
		return object.Value{}, source.New(source.CategoryFatal, areaPtr(expr.Pos()), "unhandled expression node %T", expr)
	}
}

func (e *Evaluator) evalArrayLiteral(x *ast.ArrayLiteral) (object.Value, *source.Diagnostic) {
	elems := make([]object.Value, 0, len(x.Elements))
	for _, elemExpr := range x.Elements {
		v, diag := e.evalExpression(elemExpr)
		if diag != nil {
			return object.Value{}, diag
		}
		elems = append(elems, v.ClearSingleUse())
	}
	v := object.New(e.arrayType, &object.Array{Elements: elems})
	e.Register(v)
	return v, nil
}

func (e *Evaluator) evalIdentifier(x *ast.Identifier) (object.Value, *source.Diagnostic) {
	v, ok := e.Scope.Lookup(ident.ID(x.NameID))
	if !ok {
		return object.Value{}, source.New(source.CategoryName, areaPtr(x.Area), source.MsgUndefinedName, x.Name)
	}
	return v, nil
}

func (e *Evaluator) evalFunctionLiteral(x *ast.FunctionLiteral) (object.Value, *source.Diagnostic) {
	v := object.Value{
		Type: e.functionType,
		Kind: object.KindInstance,
		Payload: &object.Function{
			Kind:    object.FunctionScripted,
			Params:  x.Params,
			Body:    x.Body,
			Closure: e.Scope,
		},
	}
	e.Register(v)
	return v, nil
}

func (e *Evaluator) evalMake(x *ast.MakeExpr) (object.Value, *source.Diagnostic) {
	typ, ok := e.Types.Lookup(x.TypeName)
	if !ok {
		return object.Value{}, source.New(source.CategoryName, areaPtr(x.Area), source.MsgUndefinedType, x.TypeName)
	}
	if typ.Create == nil {
		return object.Value{}, source.New(source.CategoryType, areaPtr(x.Area), "type %s cannot be constructed with make", x.TypeName)
	}
	return typ.Create(e), nil
}

func (e *Evaluator) evalIndex(x *ast.IndexExpr) (object.Value, *source.Diagnostic) {
	coll, diag := e.evalExpression(x.Collection)
	if diag != nil {
		return object.Value{}, diag
	}
	idx, diag := e.evalExpression(x.Index)
	if diag != nil {
		return object.Value{}, diag
	}
	return e.dispatchOperator(ast.INDEX, []object.Value{coll, idx}, x.Area, []source.Area{x.Collection.Pos(), x.Index.Pos()})
}

func (e *Evaluator) evalFieldAccess(x *ast.FieldAccessExpr) (object.Value, *source.Diagnostic) {
	recv, diag := e.evalExpression(x.Receiver)
	if diag != nil {
		return object.Value{}, diag
	}
	return e.fieldAccess(recv, ident.ID(x.NameID), x.Name, x.Area)
}

func (e *Evaluator) fieldAccess(recv object.Value, nameID ident.ID, name string, area source.Area) (object.Value, *source.Diagnostic) {
	if recv.Type == nil {
		return object.Value{}, source.New(source.CategoryType, areaPtr(area), source.MsgNoSuchField, "nothing", name)
	}
	if bound, ok := recv.Type.Method(recv, nameID); ok {
		return bound, nil
	}
	if rec, ok := recv.Payload.(*object.Record); ok {
		if v, ok := rec.Fields[name]; ok {
			return v, nil
		}
	}
	return object.Value{}, source.New(source.CategoryType, areaPtr(area), source.MsgNoSuchField, recv.TypeName(), name)
}

func (e *Evaluator) evalAssignment(x *ast.AssignmentExpr) (object.Value, *source.Diagnostic) {
	val, diag := e.evalExpression(x.Value)
	if diag != nil {
		return object.Value{}, diag
	}
	val = val.ClearSingleUse()

	if diag := e.assignTo(x.Target, val); diag != nil {
		return object.Value{}, diag
	}
	return val, nil
}

// assignTo stores val into the storage location named by target — an
// Identifier, a FieldAccessExpr naming a record field, or an IndexExpr
// into an Array — the three assignment shapes the language supports.
// Shared by evalAssignment and the pre/post inc-dec write-back
// (internal/evaluator/incdec.go).
func (e *Evaluator) assignTo(target ast.Expression, val object.Value) *source.Diagnostic {
	switch target := target.(type) {
	case *ast.Identifier:
		e.Scope.AddVariable(ident.ID(target.NameID), val)
		return nil

	case *ast.FieldAccessExpr:
		recv, diag := e.evalExpression(target.Receiver)
		if diag != nil {
			return diag
		}
		rec, ok := recv.Payload.(*object.Record)
		if !ok {
			return source.New(source.CategoryType, areaPtr(target.Area), source.MsgNoSuchField, recv.TypeName(), target.Name)
		}
		if _, exists := rec.Fields[target.Name]; !exists {
			return source.New(source.CategoryType, areaPtr(target.Area), source.MsgNoSuchField, recv.TypeName(), target.Name)
		}
		rec.Fields[target.Name] = val
		return nil

	case *ast.IndexExpr:
		coll, diag := e.evalExpression(target.Collection)
		if diag != nil {
			return diag
		}
		idx, diag := e.evalExpression(target.Index)
		if diag != nil {
			return diag
		}
		arr, ok := coll.Payload.(*object.Array)
		if !ok {
			return source.New(source.CategoryType, areaPtr(target.Area), source.MsgTypeMismatch, "Array", coll.TypeName())
		}
		i, diag := e.indexAsInt(idx, target.Index.Pos())
		if diag != nil {
			return diag
		}
		if i < 0 || i >= int64(len(arr.Elements)) {
			return source.New(source.CategoryRange, areaPtr(target.Area), source.MsgIndexOutOfBounds, i, len(arr.Elements))
		}
		arr.Elements[i] = val
		return nil

	default:
		return source.New(source.CategoryFatal, areaPtr(target.Pos()), "unsupported assignment target %T", target)
	}
}

func (e *Evaluator) indexAsInt(v object.Value, area source.Area) (int64, *source.Diagnostic) {
	n, ok := v.Payload.(int64)
	if !ok {
		return 0, source.New(source.CategoryType, areaPtr(area), source.MsgTypeMismatch, "Integer", v.TypeName())
	}
	return n, nil
}
