package builtins

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

func asStringBuf(v object.Value) (*object.StringBuf, bool) {
	s, ok := v.Payload.(*object.StringBuf)
	return s, ok
}

func rangeErr(area source.Area, idx, size int) *source.Diagnostic {
	return source.New(source.CategoryRange, &area, source.MsgIndexOutOfBounds, idx, size)
}

// registerStringType builds the String type: a mutable byte buffer with
// indexing into Character, equality/ordering by byte content, and the
// named method library every sequence type (String,
// Array) to expose: size, resize, append, prepend, poplast/popfirst,
// first/last, empty, clear, copy, reverse, sort, filter, apply,
// combine/fold, substr, and conversions.
func registerStringType(e *evaluator.Evaluator, functionType *object.Type) *object.Type {
	t := &object.Type{
		Name:    "String",
		Methods: make(map[object.NameID]func(self object.Value) object.Value),
	}

	t.SetOperator(addKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asStringBuf(operands[0])
		b, ok := asStringBuf(operands[1])
		if !ok {
			sub := rt.SubArea(1)
			return object.Value{}, source.NewWithSubArea(source.CategoryType, &area, &sub, source.MsgUnsupportedOperand, "arithmetic", 1, operands[1].TypeName())
		}
		return e.StringValue(a.String() + b.String()), nil
	})
	t.SetOperator(eqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asStringBuf(operands[0])
		b, ok := asStringBuf(operands[1])
		return e.BoolValue(ok && a.String() == b.String()), nil
	})
	t.SetOperator(neqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asStringBuf(operands[0])
		b, ok := asStringBuf(operands[1])
		return e.BoolValue(!ok || a.String() != b.String()), nil
	})
	t.SetOperator(ltKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asStringBuf(operands[0])
		b, ok := asStringBuf(operands[1])
		if !ok {
			sub := rt.SubArea(1)
			return object.Value{}, source.NewWithSubArea(source.CategoryType, &area, &sub, source.MsgUnsupportedOperand, "comparison", 1, operands[1].TypeName())
		}
		return e.BoolValue(a.String() < b.String()), nil
	})
	t.SetOperator(leqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asStringBuf(operands[0])
		b, _ := asStringBuf(operands[1])
		return e.BoolValue(a.String() <= b.String()), nil
	})
	t.SetOperator(gtKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asStringBuf(operands[0])
		b, _ := asStringBuf(operands[1])
		return e.BoolValue(a.String() > b.String()), nil
	})
	t.SetOperator(geqKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a, _ := asStringBuf(operands[0])
		b, _ := asStringBuf(operands[1])
		return e.BoolValue(a.String() >= b.String()), nil
	})
	t.SetOperator(indexKind, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		s, _ := asStringBuf(operands[0])
		i, ok := asInt(operands[1])
		if !ok || i < 0 || int(i) >= len(s.Chars) {
			return object.Value{}, rangeErr(area, int(i), len(s.Chars))
		}
		return e.CharacterValue(s.Chars[i]), nil
	})

	t.Repr = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		s, _ := asStringBuf(self)
		return e.StringValue(strconv.Quote(s.String())), nil
	}
	t.Str = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		return self, nil
	}
	// __bool__ resolves an ambiguity in naive string coercion: only the
	// literal strings "true"/"false" coerce; anything else is a type
	// error rather than falling back to a nonempty-string rule.
	t.Bool = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		s, _ := asStringBuf(self)
		switch s.String() {
		case "true":
			return e.BoolValue(true), nil
		case "false":
			return e.BoolValue(false), nil
		default:
			return object.Value{}, source.New(source.CategoryType, &area, source.MsgCannotCoerce, "String", "Boolean", "__bool__")
		}
	}
	t.Int = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		s, _ := asStringBuf(self)
		n, err := strconv.ParseInt(s.String(), 10, 64)
		if err != nil {
			return object.Value{}, source.New(source.CategoryType, &area, source.MsgCannotCoerce, "String", "Integer", "__int__")
		}
		return e.IntegerValue(n), nil
	}
	t.Real = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		s, _ := asStringBuf(self)
		r, err := strconv.ParseFloat(s.String(), 64)
		if err != nil {
			return object.Value{}, source.New(source.CategoryType, &area, source.MsgCannotCoerce, "String", "Real", "__real__")
		}
		return e.RealValue(r), nil
	}
	t.Read = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		line, err := readLine()
		if err != nil && line == "" {
			return object.Value{}, source.New(source.CategoryResource, &area, "read: %s", err.Error())
		}
		return e.StringValue(line), nil
	}

	t.DeepCopy = func(rt object.Evaluator, v object.Value) object.Value {
		s, _ := asStringBuf(v)
		cp := make([]byte, len(s.Chars))
		copy(cp, s.Chars)
		nv := object.New(t, &object.StringBuf{Chars: cp})
		rt.Register(nv)
		return nv
	}
	t.Create = func(rt object.Evaluator) object.Value {
		return e.StringValue("")
	}
	t.InstanceSize = func(v object.Value) int64 {
		s, _ := asStringBuf(v)
		return int64(len(s.Chars))
	}

	registerStringMethods(e, t, functionType)
	e.Types.Register(t)
	return t
}

func registerStringMethods(e *evaluator.Evaluator, t, functionType *object.Type) {
	internMethod(e, t, "size", func(self object.Value) object.Value {
		return boundMethod(functionType, "size", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			return e.IntegerValue(int64(len(s.Chars))), nil
		})
	})

	internMethod(e, t, "empty", func(self object.Value) object.Value {
		return boundMethod(functionType, "empty", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			return e.BoolValue(len(s.Chars) == 0), nil
		})
	})

	internMethod(e, t, "clear", func(self object.Value) object.Value {
		return boundMethod(functionType, "clear", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			s.Chars = s.Chars[:0]
			return e.NothingValue(), nil
		})
	})

	internMethod(e, t, "resize", func(self object.Value) object.Value {
		return boundMethod(functionType, "resize", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			n, ok := asInt(args[1])
			if !ok || n < 0 {
				return object.Value{}, source.New(source.CategoryRange, &area, source.MsgNegativeSize, n)
			}
			if int(n) <= len(s.Chars) {
				s.Chars = s.Chars[:n]
			} else {
				grown := make([]byte, n)
				copy(grown, s.Chars)
				s.Chars = grown
			}
			return e.NothingValue(), nil
		})
	})

	internMethod(e, t, "append", func(self object.Value) object.Value {
		return boundMethod(functionType, "append", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			other, ok := asStringBuf(args[1])
			if !ok {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "append", 0, args[1].TypeName())
			}
			s.Chars = append(s.Chars, other.Chars...)
			return e.NothingValue(), nil
		})
	})

	internMethod(e, t, "prepend", func(self object.Value) object.Value {
		return boundMethod(functionType, "prepend", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			other, ok := asStringBuf(args[1])
			if !ok {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "prepend", 0, args[1].TypeName())
			}
			s.Chars = append(append([]byte{}, other.Chars...), s.Chars...)
			return e.NothingValue(), nil
		})
	})

	internMethod(e, t, "poplast", func(self object.Value) object.Value {
		return boundMethod(functionType, "poplast", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			if len(s.Chars) == 0 {
				return object.Value{}, rangeErr(area, -1, 0)
			}
			last := s.Chars[len(s.Chars)-1]
			s.Chars = s.Chars[:len(s.Chars)-1]
			return e.CharacterValue(last), nil
		})
	})

	internMethod(e, t, "popfirst", func(self object.Value) object.Value {
		return boundMethod(functionType, "popfirst", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			if len(s.Chars) == 0 {
				return object.Value{}, rangeErr(area, 0, 0)
			}
			first := s.Chars[0]
			s.Chars = s.Chars[1:]
			return e.CharacterValue(first), nil
		})
	})

	internMethod(e, t, "first", func(self object.Value) object.Value {
		return boundMethod(functionType, "first", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			if len(s.Chars) == 0 {
				return object.Value{}, rangeErr(area, 0, 0)
			}
			return e.CharacterValue(s.Chars[0]), nil
		})
	})

	internMethod(e, t, "last", func(self object.Value) object.Value {
		return boundMethod(functionType, "last", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			if len(s.Chars) == 0 {
				return object.Value{}, rangeErr(area, -1, 0)
			}
			return e.CharacterValue(s.Chars[len(s.Chars)-1]), nil
		})
	})

	internMethod(e, t, "copy", func(self object.Value) object.Value {
		return boundMethod(functionType, "copy", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			return t.DeepCopy(rt, args[0]), nil
		})
	})

	internMethod(e, t, "reverse", func(self object.Value) object.Value {
		return boundMethod(functionType, "reverse", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			for i, j := 0, len(s.Chars)-1; i < j; i, j = i+1, j-1 {
				s.Chars[i], s.Chars[j] = s.Chars[j], s.Chars[i]
			}
			return e.NothingValue(), nil
		})
	})

	internMethod(e, t, "sort", func(self object.Value) object.Value {
		return boundMethod(functionType, "sort", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			sort.Slice(s.Chars, func(i, j int) bool { return s.Chars[i] < s.Chars[j] })
			return e.NothingValue(), nil
		})
	})

	internMethod(e, t, "filter", func(self object.Value) object.Value {
		return boundMethod(functionType, "filter", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			pred := args[1]
			out := make([]byte, 0, len(s.Chars))
			for _, c := range s.Chars {
				keep, diag := rt.CallFunction(pred, []object.Value{e.CharacterValue(c)}, area)
				if diag != nil {
					return object.Value{}, diag
				}
				truthy, diag := truthyForCaller(rt, keep, area)
				if diag != nil {
					return object.Value{}, diag
				}
				if truthy {
					out = append(out, c)
				}
			}
			return e.StringValue(string(out)), nil
		})
	})

	internMethod(e, t, "apply", func(self object.Value) object.Value {
		return boundMethod(functionType, "apply", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			fn := args[1]
			for i, c := range s.Chars {
				r, diag := rt.CallFunction(fn, []object.Value{e.CharacterValue(c)}, area)
				if diag != nil {
					return object.Value{}, diag
				}
				nc, ok := r.Payload.(byte)
				if !ok {
					return object.Value{}, source.New(source.CategoryType, &area, source.MsgCannotCoerce, r.TypeName(), "Character", "__char__")
				}
				s.Chars[i] = nc
			}
			return e.NothingValue(), nil
		})
	})

	internMethod(e, t, "combine", func(self object.Value) object.Value {
		return boundMethod(functionType, "combine", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			fn := args[1]
			acc := args[2]
			for _, c := range s.Chars {
				next, diag := rt.CallFunction(fn, []object.Value{acc, e.CharacterValue(c)}, area)
				if diag != nil {
					return object.Value{}, diag
				}
				acc = next
			}
			return acc, nil
		})
	})

	internMethod(e, t, "substr", func(self object.Value) object.Value {
		return boundMethod(functionType, "substr", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			from, ok1 := asInt(args[1])
			length, ok2 := asInt(args[2])
			if !ok1 || !ok2 || from < 0 || length < 0 || int(from+length) > len(s.Chars) {
				return object.Value{}, rangeErr(area, int(from), len(s.Chars))
			}
			return e.StringValue(string(s.Chars[from : from+length])), nil
		})
	})

	internMethod(e, t, "upper", func(self object.Value) object.Value {
		return boundMethod(functionType, "upper", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			return e.StringValue(cases.Upper(language.Und).String(s.String())), nil
		})
	})

	internMethod(e, t, "lower", func(self object.Value) object.Value {
		return boundMethod(functionType, "lower", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			return e.StringValue(cases.Lower(language.Und).String(s.String())), nil
		})
	})

	internMethod(e, t, "title", func(self object.Value) object.Value {
		return boundMethod(functionType, "title", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			return e.StringValue(cases.Title(language.Und).String(s.String())), nil
		})
	})

	internMethod(e, t, "find", func(self object.Value) object.Value {
		return boundMethod(functionType, "find", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			needle, ok := asStringBuf(args[1])
			if !ok {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "find", 0, args[1].TypeName())
			}
			return e.IntegerValue(int64(strings.Index(s.String(), needle.String()))), nil
		})
	})

	internMethod(e, t, "replace", func(self object.Value) object.Value {
		return boundMethod(functionType, "replace", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			from, ok1 := asStringBuf(args[1])
			to, ok2 := asStringBuf(args[2])
			if !ok1 || !ok2 {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "replace", 1, args[1].TypeName())
			}
			return e.StringValue(strings.ReplaceAll(s.String(), from.String(), to.String())), nil
		})
	})

	internMethod(e, t, "split", func(self object.Value) object.Value {
		return boundMethod(functionType, "split", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			sep, ok := asStringBuf(args[1])
			if !ok {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "split", 0, args[1].TypeName())
			}
			parts := strings.Split(s.String(), sep.String())
			out := make([]object.Value, len(parts))
			for i, p := range parts {
				out[i] = e.StringValue(p)
			}
			return e.ArrayValue(out), nil
		})
	})

	internMethod(e, t, "trim", func(self object.Value) object.Value {
		return boundMethod(functionType, "trim", self, func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, _ := asStringBuf(args[0])
			return e.StringValue(strings.TrimSpace(s.String())), nil
		})
	})
}
