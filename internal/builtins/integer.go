package builtins

import (
	"strconv"

	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

func asInt(v object.Value) (int64, bool) {
	n, ok := v.Payload.(int64)
	return n, ok
}

func asReal(v object.Value) (float64, bool) {
	if r, ok := v.Payload.(float64); ok {
		return r, true
	}
	if n, ok := v.Payload.(int64); ok {
		return float64(n), true
	}
	return 0, false
}

// arithInt builds an operator slot for an Integer-receiver arithmetic
// operator. The other operand must itself be an Integer: Cotton's
// Integer type has no implicit promotion to Real, the same rule the
// original runtime's IntegerAddAdapter enforces by rejecting any
// operand whose type isn't exactly Integer.
func arithInt(e *evaluator.Evaluator, intOp func(area source.Area, a, b int64) (int64, *source.Diagnostic)) object.OperatorFunc {
	return func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		if len(operands) < 2 {
			return object.Value{}, source.New(source.CategoryType, &area, source.MsgWrongArgCount, 1, 0)
		}
		a, _ := asInt(operands[0])
		b, ok := asInt(operands[1])
		if !ok {
			sub := rt.SubArea(1)
			return object.Value{}, source.NewWithSubArea(source.CategoryType, &area, &sub, source.MsgUnsupportedOperand, "arithmetic", 1, operands[1].TypeName())
		}
		n, diag := intOp(area, a, b)
		if diag != nil {
			return object.Value{}, diag
		}
		return e.IntegerValue(n), nil
	}
}

func cmpInt(e *evaluator.Evaluator, fn func(a, b int64) bool) object.OperatorFunc {
	return func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asInt(operands[0])
		b, ok := asInt(operands[1])
		if !ok {
			sub := rt.SubArea(1)
			return object.Value{}, source.NewWithSubArea(source.CategoryType, &area, &sub, source.MsgUnsupportedOperand, "comparison", 1, operands[1].TypeName())
		}
		return e.BoolValue(fn(a, b)), nil
	}
}

func registerIntegerType(e *evaluator.Evaluator, functionType *object.Type) *object.Type {
	t := &object.Type{
		Name:    "Integer",
		Methods: make(map[object.NameID]func(self object.Value) object.Value),
	}

	t.SetOperator(addKind, arithInt(e, func(area source.Area, a, b int64) (int64, *source.Diagnostic) { return a + b, nil }))
	t.SetOperator(subKind, arithInt(e, func(area source.Area, a, b int64) (int64, *source.Diagnostic) { return a - b, nil }))
	t.SetOperator(multKind, arithInt(e, func(area source.Area, a, b int64) (int64, *source.Diagnostic) { return a * b, nil }))
	t.SetOperator(divKind, arithInt(e, func(area source.Area, a, b int64) (int64, *source.Diagnostic) {
		if b == 0 {
			return 0, source.New(source.CategoryArithmetic, &area, source.MsgDivByZero)
		}
		return a / b, nil
	}))
	t.SetOperator(remKind, arithInt(e, func(area source.Area, a, b int64) (int64, *source.Diagnostic) {
		if b == 0 {
			return 0, source.New(source.CategoryArithmetic, &area, source.MsgModByZero)
		}
		return a % b, nil
	}))
	t.SetOperator(lshiftKind, arithInt(e, func(area source.Area, a, b int64) (int64, *source.Diagnostic) { return a << uint(b), nil }))
	t.SetOperator(rshiftKind, arithInt(e, func(area source.Area, a, b int64) (int64, *source.Diagnostic) { return a >> uint(b), nil }))
	t.SetOperator(bitandKind, arithInt(e, func(area source.Area, a, b int64) (int64, *source.Diagnostic) { return a & b, nil }))
	t.SetOperator(bitorKind, arithInt(e, func(area source.Area, a, b int64) (int64, *source.Diagnostic) { return a | b, nil }))
	t.SetOperator(bitxorKind, arithInt(e, func(area source.Area, a, b int64) (int64, *source.Diagnostic) { return a ^ b, nil }))

	t.SetOperator(ltKind, cmpInt(e, func(a, b int64) bool { return a < b }))
	t.SetOperator(leqKind, cmpInt(e, func(a, b int64) bool { return a <= b }))
	t.SetOperator(gtKind, cmpInt(e, func(a, b int64) bool { return a > b }))
	t.SetOperator(geqKind, cmpInt(e, func(a, b int64) bool { return a >= b }))
	t.SetOperator(eqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asInt(operands[0])
		b, ok := asInt(operands[1])
		return e.BoolValue(ok && a == b), nil
	})
	t.SetOperator(neqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asInt(operands[0])
		b, ok := asInt(operands[1])
		return e.BoolValue(!ok || a != b), nil
	})

	t.SetOperator(negKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asInt(operands[0])
		return e.IntegerValue(-a), nil
	})
	t.SetOperator(posKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		return operands[0], nil
	})
	t.SetOperator(invKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asInt(operands[0])
		return e.IntegerValue(^a), nil
	})

	// PRE_INC/POST_INC/PRE_DEC/POST_DEC all install the same "stepped
	// value" computation; the evaluator (internal/evaluator/incdec.go)
	// decides whether the prefix or postfix form is in play and whether
	// to return the stepped or the original value.
	stepInt := func(delta int64) object.OperatorFunc {
		return func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
			a, _ := asInt(operands[0])
			return e.IntegerValue(a + delta), nil
		}
	}
	t.SetOperator(preincKind, stepInt(1))
	t.SetOperator(postincKind, stepInt(1))
	t.SetOperator(predecKind, stepInt(-1))
	t.SetOperator(postdecKind, stepInt(-1))

	t.Repr = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asInt(self)
		return e.StringValue(strconv.FormatInt(a, 10)), nil
	}
	t.Str = t.Repr
	t.Bool = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asInt(self)
		return e.BoolValue(a != 0), nil
	}
	t.Int = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		return self, nil
	}
	t.Real = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asInt(self)
		return e.RealValue(float64(a)), nil
	}
	t.Read = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		line, err := readLine()
		if n, ok := parseReadInt(line); ok {
			return e.IntegerValue(n), nil
		}
		if err != nil {
			return object.Value{}, source.New(source.CategoryResource, &area, "read: %s", err.Error())
		}
		return object.Value{}, source.New(source.CategoryType, &area, source.MsgCannotCoerce, "String", "Integer", "__read__")
	}

	t.InstanceSize = func(v object.Value) int64 { return 8 }
	e.Types.Register(t)
	return t
}
