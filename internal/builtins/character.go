package builtins

import (
	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

func asChar(v object.Value) (byte, bool) {
	c, ok := v.Payload.(byte)
	return c, ok
}

// registerCharacterType builds the Character type: a single-byte scalar
// supporting ordering, equality, and arithmetic against Integer offsets
// (c + 1 steps to the next character), the same shape the reference
// Cotton built-ins expose for character/integer interop.
func registerCharacterType(e *evaluator.Evaluator, functionType *object.Type) *object.Type {
	t := &object.Type{
		Name:    "Character",
		Methods: make(map[object.NameID]func(self object.Value) object.Value),
	}

	t.SetOperator(addKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		c, _ := asChar(operands[0])
		n, ok := asInt(operands[1])
		if !ok {
			sub := rt.SubArea(1)
			return object.Value{}, source.NewWithSubArea(source.CategoryType, &area, &sub, source.MsgUnsupportedOperand, "arithmetic", 1, operands[1].TypeName())
		}
		return e.CharacterValue(byte(int64(c) + n)), nil
	})
	t.SetOperator(subKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		c, _ := asChar(operands[0])
		if other, ok := asChar(operands[1]); ok {
			return e.IntegerValue(int64(c) - int64(other)), nil
		}
		if n, ok := asInt(operands[1]); ok {
			return e.CharacterValue(byte(int64(c) - n)), nil
		}
		sub := rt.SubArea(1)
		return object.Value{}, source.NewWithSubArea(source.CategoryType, &area, &sub, source.MsgUnsupportedOperand, "arithmetic", 1, operands[1].TypeName())
	})

	t.SetOperator(ltKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asChar(operands[0])
		b, ok := asChar(operands[1])
		if !ok {
			sub := rt.SubArea(1)
			return object.Value{}, source.NewWithSubArea(source.CategoryType, &area, &sub, source.MsgUnsupportedOperand, "comparison", 1, operands[1].TypeName())
		}
		return e.BoolValue(a < b), nil
	})
	t.SetOperator(leqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asChar(operands[0])
		b, _ := asChar(operands[1])
		return e.BoolValue(a <= b), nil
	})
	t.SetOperator(gtKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asChar(operands[0])
		b, _ := asChar(operands[1])
		return e.BoolValue(a > b), nil
	})
	t.SetOperator(geqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asChar(operands[0])
		b, _ := asChar(operands[1])
		return e.BoolValue(a >= b), nil
	})
	t.SetOperator(eqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asChar(operands[0])
		b, ok := asChar(operands[1])
		return e.BoolValue(ok && a == b), nil
	})
	t.SetOperator(neqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asChar(operands[0])
		b, ok := asChar(operands[1])
		return e.BoolValue(!ok || a != b), nil
	})

	t.Repr = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		c, _ := asChar(self)
		return e.StringValue("'" + string(rune(c)) + "'"), nil
	}
	t.Str = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		c, _ := asChar(self)
		return e.StringValue(string(rune(c))), nil
	}
	t.Bool = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		c, _ := asChar(self)
		return e.BoolValue(c != 0), nil
	}
	t.Int = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		c, _ := asChar(self)
		return e.IntegerValue(int64(c)), nil
	}
	t.Char = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		return self, nil
	}
	t.Read = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		line, err := readLine()
		if len(line) > 0 {
			return e.CharacterValue(line[0]), nil
		}
		if err != nil {
			return object.Value{}, source.New(source.CategoryResource, &area, "read: %s", err.Error())
		}
		return object.Value{}, source.New(source.CategoryType, &area, source.MsgCannotCoerce, "String", "Character", "__read__")
	}

	stepChar := func(delta int) object.OperatorFunc {
		return func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
			c, _ := asChar(operands[0])
			return e.CharacterValue(byte(int(c) + delta)), nil
		}
	}
	t.SetOperator(preincKind, stepChar(1))
	t.SetOperator(postincKind, stepChar(1))
	t.SetOperator(predecKind, stepChar(-1))
	t.SetOperator(postdecKind, stepChar(-1))

	t.InstanceSize = func(v object.Value) int64 { return 1 }
	e.Types.Register(t)
	return t
}
