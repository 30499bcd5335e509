package builtins

import (
	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

func asBool(v object.Value) (bool, bool) {
	b, ok := v.Payload.(bool)
	return b, ok
}

// registerBooleanType builds the Boolean type. AND/OR are not installed
// as operator slots here: the evaluator short-circuits them directly via
// __bool__ (internal/evaluator/operators.go), per the
// requirement that the right operand never be evaluated when the left
// already determines the result.
func registerBooleanType(e *evaluator.Evaluator, functionType *object.Type) *object.Type {
	t := &object.Type{
		Name:    "Boolean",
		Methods: make(map[object.NameID]func(self object.Value) object.Value),
	}

	t.SetOperator(eqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asBool(operands[0])
		b, ok := asBool(operands[1])
		return e.BoolValue(ok && a == b), nil
	})
	t.SetOperator(neqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asBool(operands[0])
		b, ok := asBool(operands[1])
		return e.BoolValue(!ok || a != b), nil
	})
	t.SetOperator(notKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asBool(operands[0])
		return e.BoolValue(!a), nil
	})

	t.Repr = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asBool(self)
		if a {
			return e.StringValue("true"), nil
		}
		return e.StringValue("false"), nil
	}
	t.Str = t.Repr
	t.Bool = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		return self, nil
	}
	t.Int = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asBool(self)
		if a {
			return e.IntegerValue(1), nil
		}
		return e.IntegerValue(0), nil
	}

	t.Read = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		line, err := readLine()
		if b, ok := parseReadBool(line); ok {
			return e.BoolValue(b), nil
		}
		if err != nil {
			return object.Value{}, source.New(source.CategoryResource, &area, "read: %s", err.Error())
		}
		return object.Value{}, source.New(source.CategoryType, &area, source.MsgCannotCoerce, "String", "Boolean", "__read__")
	}

	t.InstanceSize = func(v object.Value) int64 { return 1 }
	e.Types.Register(t)
	return t
}
