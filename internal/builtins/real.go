package builtins

import (
	"strconv"

	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// asRealStrict reads a Real payload without Integer promotion. Real's
// own operators require the other operand to itself be a Real, the same
// rule the original runtime's RealAddAdapter enforces by rejecting any
// operand whose type isn't exactly Real.
func asRealStrict(v object.Value) (float64, bool) {
	r, ok := v.Payload.(float64)
	return r, ok
}

// arithReal builds an operator slot for a Real-receiver arithmetic
// operator; the other operand must itself be a Real.
func arithReal(e *evaluator.Evaluator, op func(area source.Area, a, b float64) (float64, *source.Diagnostic)) object.OperatorFunc {
	return func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asRealStrict(operands[0])
		b, ok := asRealStrict(operands[1])
		if !ok {
			sub := rt.SubArea(1)
			return object.Value{}, source.NewWithSubArea(source.CategoryType, &area, &sub, source.MsgUnsupportedOperand, "arithmetic", 1, operands[1].TypeName())
		}
		r, diag := op(area, a, b)
		if diag != nil {
			return object.Value{}, diag
		}
		return e.RealValue(r), nil
	}
}

func cmpReal(e *evaluator.Evaluator, fn func(a, b float64) bool) object.OperatorFunc {
	return func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asRealStrict(operands[0])
		b, ok := asRealStrict(operands[1])
		if !ok {
			sub := rt.SubArea(1)
			return object.Value{}, source.NewWithSubArea(source.CategoryType, &area, &sub, source.MsgUnsupportedOperand, "comparison", 1, operands[1].TypeName())
		}
		return e.BoolValue(fn(a, b)), nil
	}
}

func registerRealType(e *evaluator.Evaluator, functionType *object.Type) *object.Type {
	t := &object.Type{
		Name:    "Real",
		Methods: make(map[object.NameID]func(self object.Value) object.Value),
	}

	t.SetOperator(addKind, arithReal(e, func(area source.Area, a, b float64) (float64, *source.Diagnostic) { return a + b, nil }))
	t.SetOperator(subKind, arithReal(e, func(area source.Area, a, b float64) (float64, *source.Diagnostic) { return a - b, nil }))
	t.SetOperator(multKind, arithReal(e, func(area source.Area, a, b float64) (float64, *source.Diagnostic) { return a * b, nil }))
	t.SetOperator(divKind, arithReal(e, func(area source.Area, a, b float64) (float64, *source.Diagnostic) {
		if b == 0 {
			return 0, source.New(source.CategoryArithmetic, &area, source.MsgDivByZero)
		}
		return a / b, nil
	}))

	t.SetOperator(ltKind, cmpReal(e, func(a, b float64) bool { return a < b }))
	t.SetOperator(leqKind, cmpReal(e, func(a, b float64) bool { return a <= b }))
	t.SetOperator(gtKind, cmpReal(e, func(a, b float64) bool { return a > b }))
	t.SetOperator(geqKind, cmpReal(e, func(a, b float64) bool { return a >= b }))
	t.SetOperator(eqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asRealStrict(operands[0])
		b, ok := asRealStrict(operands[1])
		return e.BoolValue(ok && a == b), nil
	})
	t.SetOperator(neqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asRealStrict(operands[0])
		b, ok := asRealStrict(operands[1])
		return e.BoolValue(!ok || a != b), nil
	})

	t.SetOperator(negKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asReal(operands[0])
		return e.RealValue(-a), nil
	})
	t.SetOperator(posKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		return operands[0], nil
	})

	stepReal := func(delta float64) object.OperatorFunc {
		return func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
			a, _ := asReal(operands[0])
			return e.RealValue(a + delta), nil
		}
	}
	t.SetOperator(preincKind, stepReal(1))
	t.SetOperator(postincKind, stepReal(1))
	t.SetOperator(predecKind, stepReal(-1))
	t.SetOperator(postdecKind, stepReal(-1))

	t.Repr = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asReal(self)
		return e.StringValue(strconv.FormatFloat(a, 'g', -1, 64)), nil
	}
	t.Str = t.Repr
	t.Bool = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asReal(self)
		return e.BoolValue(a != 0), nil
	}
	t.Int = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asReal(self)
		return e.IntegerValue(int64(a)), nil
	}
	t.Real = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		return self, nil
	}
	t.Read = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		line, err := readLine()
		if r, ok := parseReadReal(line); ok {
			return e.RealValue(r), nil
		}
		if err != nil {
			return object.Value{}, source.New(source.CategoryResource, &area, "read: %s", err.Error())
		}
		return object.Value{}, source.New(source.CategoryType, &area, source.MsgCannotCoerce, "String", "Real", "__read__")
	}

	t.InstanceSize = func(v object.Value) int64 { return 8 }
	e.Types.Register(t)
	return t
}
