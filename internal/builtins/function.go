package builtins

import (
	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// registerFunctionType builds the Function type. CALL itself is
// special-cased by the evaluator (internal/evaluator/calls.go) rather
// than going through Type.Operator, since invoking a scripted function
// needs the scope stack, not just an operand list — but Function still
// installs __repr__ for debug printing.
func registerFunctionType(e *evaluator.Evaluator) *object.Type {
	t := &object.Type{
		Name:    "Function",
		Methods: make(map[object.NameID]func(self object.Value) object.Value),
	}
	t.Repr = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		f := self.Payload.(*object.Function)
		name := f.Name
		if name == "" {
			name = "<anonymous>"
		}
		return e.StringValue("function " + name), nil
	}
	t.InstanceSize = func(v object.Value) int64 { return 32 }
	e.Types.Register(t)
	return t
}

func registerNothingType(e *evaluator.Evaluator, functionType *object.Type) *object.Type {
	t := &object.Type{Name: "Nothing"}
	t.Repr = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		return e.StringValue("nothing"), nil
	}
	t.Bool = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		return e.BoolValue(false), nil
	}
	t.SetOperator(eqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		return e.BoolValue(operands[1].Type == t), nil
	})
	t.SetOperator(neqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		return e.BoolValue(operands[1].Type != t), nil
	})
	t.InstanceSize = func(v object.Value) int64 { return 0 }
	e.Types.Register(t)
	return t
}
