package builtins

import (
	"sort"
	"strings"

	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

func asArray(v object.Value) (*object.Array, bool) {
	a, ok := v.Payload.(*object.Array)
	return a, ok
}

// registerArrayType builds the Array type: an ordered, heterogeneously
// typed sequence with indexing, structural equality, and the named
// method library every sequence type
// to expose, grounded on the same shape registerStringType already
// establishes for String's method table.
func registerArrayType(e *evaluator.Evaluator, functionType *object.Type) *object.Type {
	t := &object.Type{
		Name:    "Array",
		Methods: make(map[object.NameID]func(self object.Value) object.Value),
	}

	t.SetOperator(addKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asArray(operands[0])
		b, ok := asArray(operands[1])
		if !ok {
			sub := rt.SubArea(1)
			return object.Value{}, source.NewWithSubArea(source.CategoryType, &area, &sub, source.MsgUnsupportedOperand, "arithmetic", 1, operands[1].TypeName())
		}
		out := make([]object.Value, 0, len(a.Elements)+len(b.Elements))
		out = append(out, a.Elements...)
		out = append(out, b.Elements...)
		return e.ArrayValue(out), nil
	})

	// Equality resolves an ambiguity in the naive implementation: the
	// original ArrayEqAdapter compared self to itself, a likely bug;
	// here operands[0] (self) is compared against operands[1] (the
	// actual right-hand operand), element-wise, recursing through EQ
	// with a fresh context per the equality protocol.
	t.SetOperator(eqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asArray(operands[0])
		b, ok := asArray(operands[1])
		if !ok || len(a.Elements) != len(b.Elements) {
			return e.BoolValue(false), nil
		}
		for i := range a.Elements {
			eq, diag := elementsEqual(rt, a.Elements[i], b.Elements[i], area)
			if diag != nil {
				return object.Value{}, diag
			}
			if !eq {
				return e.BoolValue(false), nil
			}
		}
		return e.BoolValue(true), nil
	})
	t.SetOperator(neqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		v, diag := t.Operator(eqKind)(rt, operands, area)
		if diag != nil {
			return object.Value{}, diag
		}
		return e.BoolValue(!v.Payload.(bool)), nil
	})
	t.SetOperator(indexKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asArray(operands[0])
		i, ok := asInt(operands[1])
		if !ok || i < 0 || int(i) >= len(a.Elements) {
			return object.Value{}, rangeErr(area, int(i), len(a.Elements))
		}
		return a.Elements[i], nil
	})

	t.Repr = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asArray(self)
		parts := make([]string, 0, len(a.Elements))
		for _, elem := range a.Elements {
			s, diag := reprOf(rt, elem, area)
			if diag != nil {
				return object.Value{}, diag
			}
			parts = append(parts, s)
		}
		return e.StringValue("{" + strings.Join(parts, ", ") + "}"), nil
	}
	t.Str = t.Repr
	t.Bool = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asArray(self)
		return e.BoolValue(len(a.Elements) > 0), nil
	}

	t.DeepCopy = func(rt object.Evaluator, v object.Value) object.Value {
		a, _ := asArray(v)
		cp := make([]object.Value, len(a.Elements))
		for i, elem := range a.Elements {
			cp[i] = deepCopyValue(rt, elem)
		}
		return e.ArrayValue(cp)
	}
	t.Create = func(rt object.Evaluator) object.Value {
		return e.ArrayValue(nil)
	}
	t.InstanceSize = func(v object.Value) int64 {
		a, _ := asArray(v)
		return int64(8 * (1 + len(a.Elements)))
	}

	registerArrayMethods(e, t, functionType)
	e.Types.Register(t)
	return t
}

// elementsEqual dispatches EQ on a and b, the way Array/Record equality
// needs to recurse into contained values (element-wise "using EQ
// recursively with a fresh context").
func elementsEqual(rt object.Evaluator, a, b object.Value, area source.Area) (bool, *source.Diagnostic) {
	if a.Type == nil {
		return b.Type == nil, nil
	}
	slot := a.Type.Operator(eqKind)
	if slot == nil {
		return false, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "==", 0, a.TypeName())
	}
	v, diag := slot(rt, []object.Value{a, b}, area)
	if diag != nil {
		return false, diag
	}
	b2, _ := v.Payload.(bool)
	return b2, nil
}

// reprOf invokes v's __repr__ magic method, falling back to its
// __string__ method, for Array/Record's default rendering of contained
// values (print uses the same protocol at the top level).
func reprOf(rt object.Evaluator, v object.Value, area source.Area) (string, *source.Diagnostic) {
	if v.Type == nil {
		return "nothing", nil
	}
	fn := v.Type.Repr
	if fn == nil {
		fn = v.Type.Str
	}
	if fn == nil {
		return v.TypeName(), nil
	}
	r, diag := fn(rt, v, area)
	if diag != nil {
		return "", diag
	}
	s, _ := r.Payload.(*object.StringBuf)
	if s == nil {
		return "", nil
	}
	return s.String(), nil
}

// deepCopyValue deep-copies v through its type's DeepCopy hook, or
// returns v unchanged for value types that have none (Integer, Real,
// Boolean, Character are already independent after a Go value copy).
func deepCopyValue(rt object.Evaluator, v object.Value) object.Value {
	if v.Type != nil && v.Type.DeepCopy != nil {
		return v.Type.DeepCopy(rt, v)
	}
	return v
}

func registerArrayMethods(e *evaluator.Evaluator, t, functionType *object.Type) {
	internMethod(e, t, "size", func(self object.Value) object.Value {
		return boundMethod(functionType, "size", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			return e.IntegerValue(int64(len(a.Elements))), nil
		})
	})

	internMethod(e, t, "empty", func(self object.Value) object.Value {
		return boundMethod(functionType, "empty", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			return e.BoolValue(len(a.Elements) == 0), nil
		})
	})

	internMethod(e, t, "clear", func(self object.Value) object.Value {
		return boundMethod(functionType, "clear", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			a.Elements = a.Elements[:0]
			return e.NothingValue(), nil
		})
	})

	internMethod(e, t, "resize", func(self object.Value) object.Value {
		return boundMethod(functionType, "resize", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			n, ok := asInt(args[1])
			if !ok || n < 0 {
				return object.Value{}, source.New(source.CategoryRange, &area, source.MsgNegativeSize, n)
			}
			if int(n) <= len(a.Elements) {
				a.Elements = a.Elements[:n]
			} else {
				grown := make([]object.Value, n)
				copy(grown, a.Elements)
				for i := len(a.Elements); i < int(n); i++ {
					grown[i] = e.NothingValue()
				}
				a.Elements = grown
			}
			return e.NothingValue(), nil
		})
	})

	internMethod(e, t, "append", func(self object.Value) object.Value {
		return boundMethod(functionType, "append", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			a.Elements = append(a.Elements, args[1].ClearSingleUse())
			return e.NothingValue(), nil
		})
	})

	internMethod(e, t, "prepend", func(self object.Value) object.Value {
		return boundMethod(functionType, "prepend", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			a.Elements = append([]object.Value{args[1].ClearSingleUse()}, a.Elements...)
			return e.NothingValue(), nil
		})
	})

	internMethod(e, t, "poplast", func(self object.Value) object.Value {
		return boundMethod(functionType, "poplast", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			if len(a.Elements) == 0 {
				return object.Value{}, rangeErr(area, -1, 0)
			}
			last := a.Elements[len(a.Elements)-1]
			a.Elements = a.Elements[:len(a.Elements)-1]
			return last, nil
		})
	})

	internMethod(e, t, "popfirst", func(self object.Value) object.Value {
		return boundMethod(functionType, "popfirst", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			if len(a.Elements) == 0 {
				return object.Value{}, rangeErr(area, 0, 0)
			}
			first := a.Elements[0]
			a.Elements = a.Elements[1:]
			return first, nil
		})
	})

	internMethod(e, t, "first", func(self object.Value) object.Value {
		return boundMethod(functionType, "first", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			if len(a.Elements) == 0 {
				return object.Value{}, rangeErr(area, 0, 0)
			}
			return a.Elements[0], nil
		})
	})

	internMethod(e, t, "last", func(self object.Value) object.Value {
		return boundMethod(functionType, "last", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			if len(a.Elements) == 0 {
				return object.Value{}, rangeErr(area, -1, 0)
			}
			return a.Elements[len(a.Elements)-1], nil
		})
	})

	internMethod(e, t, "copy", func(self object.Value) object.Value {
		return boundMethod(functionType, "copy", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			return t.DeepCopy(rt, args[0]), nil
		})
	})

	internMethod(e, t, "reverse", func(self object.Value) object.Value {
		return boundMethod(functionType, "reverse", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			for i, j := 0, len(a.Elements)-1; i < j; i, j = i+1, j-1 {
				a.Elements[i], a.Elements[j] = a.Elements[j], a.Elements[i]
			}
			return e.NothingValue(), nil
		})
	})

	// sort takes a user comparator `function(x, y) { return x < y; }`,
	// matching the documented worked example.
	internMethod(e, t, "sort", func(self object.Value) object.Value {
		return boundMethod(functionType, "sort", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			less := args[1]
			var sortErr *source.Diagnostic
			sort.SliceStable(a.Elements, func(i, j int) bool {
				if sortErr != nil {
					return false
				}
				r, diag := rt.CallFunction(less, []object.Value{a.Elements[i], a.Elements[j]}, area)
				if diag != nil {
					sortErr = diag
					return false
				}
				truthy, diag := truthyForCaller(rt, r, area)
				if diag != nil {
					sortErr = diag
					return false
				}
				return truthy
			})
			if sortErr != nil {
				return object.Value{}, sortErr
			}
			return e.NothingValue(), nil
		})
	})

	internMethod(e, t, "filter", func(self object.Value) object.Value {
		return boundMethod(functionType, "filter", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			pred := args[1]
			out := make([]object.Value, 0, len(a.Elements))
			for _, elem := range a.Elements {
				keep, diag := rt.CallFunction(pred, []object.Value{elem}, area)
				if diag != nil {
					return object.Value{}, diag
				}
				truthy, diag := truthyForCaller(rt, keep, area)
				if diag != nil {
					return object.Value{}, diag
				}
				if truthy {
					out = append(out, elem)
				}
			}
			return e.ArrayValue(out), nil
		})
	})

	// apply maps fn over every element in place (per the worked
	// example 2 instead builds a fresh array via filter; apply mirrors
	// the String/Array method symmetry by doing the in-place
	// equivalent for maps).
	internMethod(e, t, "apply", func(self object.Value) object.Value {
		return boundMethod(functionType, "apply", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			fn := args[1]
			for i, elem := range a.Elements {
				r, diag := rt.CallFunction(fn, []object.Value{elem}, area)
				if diag != nil {
					return object.Value{}, diag
				}
				a.Elements[i] = r.ClearSingleUse()
			}
			return e.NothingValue(), nil
		})
	})

	internMethod(e, t, "combine", func(self object.Value) object.Value {
		return boundMethod(functionType, "combine", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			fn := args[1]
			acc := args[2]
			for _, elem := range a.Elements {
				next, diag := rt.CallFunction(fn, []object.Value{acc, elem}, area)
				if diag != nil {
					return object.Value{}, diag
				}
				acc = next
			}
			return acc, nil
		})
	})

	internMethod(e, t, "slice", func(self object.Value) object.Value {
		return boundMethod(functionType, "slice", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			from, ok1 := asInt(args[1])
			length, ok2 := asInt(args[2])
			if !ok1 || !ok2 || from < 0 || length < 0 || int(from+length) > len(a.Elements) {
				return object.Value{}, rangeErr(area, int(from), len(a.Elements))
			}
			out := make([]object.Value, length)
			copy(out, a.Elements[from:from+length])
			return e.ArrayValue(out), nil
		})
	})

	internMethod(e, t, "find", func(self object.Value) object.Value {
		return boundMethod(functionType, "find", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			for i, elem := range a.Elements {
				eq, diag := elementsEqual(rt, elem, args[1], area)
				if diag != nil {
					return object.Value{}, diag
				}
				if eq {
					return e.IntegerValue(int64(i)), nil
				}
			}
			return e.IntegerValue(-1), nil
		})
	})

	internMethod(e, t, "contains", func(self object.Value) object.Value {
		return boundMethod(functionType, "contains", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			for _, elem := range a.Elements {
				eq, diag := elementsEqual(rt, elem, args[1], area)
				if diag != nil {
					return object.Value{}, diag
				}
				if eq {
					return e.BoolValue(true), nil
				}
			}
			return e.BoolValue(false), nil
		})
	})

	internMethod(e, t, "join", func(self object.Value) object.Value {
		return boundMethod(functionType, "join", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			a, _ := asArray(args[0])
			sep, ok := asStringBuf(args[1])
			if !ok {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "join", 0, args[1].TypeName())
			}
			parts := make([]string, 0, len(a.Elements))
			for _, elem := range a.Elements {
				s, diag := stringOf(rt, elem, area)
				if diag != nil {
					return object.Value{}, diag
				}
				parts = append(parts, s)
			}
			return e.StringValue(strings.Join(parts, sep.String())), nil
		})
	})
}

// stringOf invokes v's __string__ magic method, falling back to
// __repr__, used by Array.join to coerce heterogeneous elements.
func stringOf(rt object.Evaluator, v object.Value, area source.Area) (string, *source.Diagnostic) {
	if v.Type == nil {
		return "nothing", nil
	}
	fn := v.Type.Str
	if fn == nil {
		fn = v.Type.Repr
	}
	if fn == nil {
		return v.TypeName(), nil
	}
	r, diag := fn(rt, v, area)
	if diag != nil {
		return "", diag
	}
	s, _ := r.Payload.(*object.StringBuf)
	if s == nil {
		return "", nil
	}
	return s.String(), nil
}
