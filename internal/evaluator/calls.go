package evaluator

import (
	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/ident"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/scope"
	"github.com/lis05/cotton-go/internal/source"
)

// evalCall evaluates a callee and its arguments, then dispatches CALL
// on the callee's type — for Function values this goes through
// callFunction; any other callee goes through the generic operator path,
// which reports an unsupported CALL because no other built-in or record
// type installs a CALL slot.
func (e *Evaluator) evalCall(x *ast.CallExpr) (object.Value, *source.Diagnostic) {
	callee, diag := e.evalExpression(x.Callee)
	if diag != nil {
		return object.Value{}, diag
	}

	args := make([]object.Value, 0, len(x.Args))
	subAreas := make([]source.Area, 0, len(x.Args)+1)
	subAreas = append(subAreas, x.Callee.Pos())
	for _, argExpr := range x.Args {
		v, diag := e.evalExpression(argExpr)
		if diag != nil {
			return object.Value{}, diag
		}
		args = append(args, v)
		subAreas = append(subAreas, argExpr.Pos())
	}

	if fn, ok := callee.Payload.(*object.Function); ok && callee.Type == e.functionType {
		e.Scope.PushContext(x.Area, subAreas)
		defer e.Scope.PopContext()
		return e.callFunctionValue(fn, args, x.Area)
	}

	return e.dispatchOperator(ast.CALL, append([]object.Value{callee}, args...), x.Area, subAreas)
}

// callFunction is the object.Evaluator-facing entry point built-in
// operator and method implementations use to call back into a Function
// value (e.g. Array.apply invoking a user-supplied callback).
func (e *Evaluator) callFunction(fn object.Value, args []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
	f, ok := fn.Payload.(*object.Function)
	if !ok {
		return object.Value{}, source.New(source.CategoryType, areaPtr(area), source.MsgNotCallable, fn.TypeName())
	}
	return e.callFunctionValue(f, args, area)
}

func (e *Evaluator) callFunctionValue(f *object.Function, args []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
	if f.BoundSelf != nil {
		args = append([]object.Value{*f.BoundSelf}, args...)
	}

	if f.Kind == object.FunctionInternal {
		v, err := f.Internal(e, args, area)
		if err != nil {
			if diag, ok := err.(*source.Diagnostic); ok {
				return object.Value{}, diag
			}
			return object.Value{}, source.New(source.CategoryType, areaPtr(area), "%s", err.Error())
		}
		return v, nil
	}

	return e.callScripted(f, args, area)
}

func (e *Evaluator) callScripted(f *object.Function, args []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
	maxDepth := 1024
	if e.Config != nil && e.Config.MaxCallDepth > 0 {
		maxDepth = e.Config.MaxCallDepth
	}
	if e.callDepth >= maxDepth {
		return object.Value{}, source.New(source.CategoryFatal, areaPtr(area), source.MsgStackOverflow, maxDepth)
	}
	e.callDepth++
	defer func() { e.callDepth-- }()

	savedScope := e.Scope
	if closure, ok := f.Closure.(*scope.Stack); ok && closure != nil {
		e.Scope = closure
	}
	e.Scope.PushFrame(false)
	e.Scope.SetIsFunctionCall(args)
	defer func() {
		e.Scope.PopFrame()
		e.Scope = savedScope
	}()

	for i, param := range f.Params {
		v := e.Nothing
		if i < len(args) {
			v = args[i]
		}
		e.Scope.AddVariable(ident.ID(param.NameID), v)
	}

	result, diag := e.execBlock(f.Body)
	if diag != nil {
		return object.Value{}, diag
	}

	if e.signal.kind == signalReturn {
		result = e.signal.value
	}
	e.signal = controlSignal{}

	return result, nil
}
