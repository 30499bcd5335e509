package evaluator

import (
	"sort"

	"github.com/kr/pretty"

	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// SetFunctionType installs the Function type every scripted and
// internal Function value is tagged with. Called once by the builtins
// package's registration entry point.
func (e *Evaluator) SetFunctionType(t *object.Type) { e.functionType = t }

// FunctionType exposes the installed Function type, for builtins
// (globals.go binds print/argg as Function values; the native module
// loaders bind their entries the same way).
func (e *Evaluator) FunctionType() *object.Type { return e.functionType }

// SetIntegerType installs the Type literal integer expressions are
// tagged with.
func (e *Evaluator) SetIntegerType(t *object.Type) { e.integerType = t }

// SetRealType installs the Type literal real expressions are tagged
// with.
func (e *Evaluator) SetRealType(t *object.Type) { e.realType = t }

// SetStringType installs the Type literal string expressions are
// tagged with.
func (e *Evaluator) SetStringType(t *object.Type) { e.stringType = t }

// SetCharacterType installs the Type literal character expressions are
// tagged with.
func (e *Evaluator) SetCharacterType(t *object.Type) { e.characterType = t }

// SetArrayType installs the Type array literal expressions are tagged
// with.
func (e *Evaluator) SetArrayType(t *object.Type) { e.arrayType = t }

// SetBooleanSingletons installs the pinned true/false/nothing Values
// every evaluation session roots regardless of scope reachability.
func (e *Evaluator) SetBooleanSingletons(t, f, nothing object.Value) {
	e.True, e.False, e.Nothing = t, f, nothing
}

// Integer, Real, Boolean, and Character are plain Go scalars copied by
// value on every assignment, so they need no GC tracking of their own —
// only the containers that can reach other Values (Array, UserRecord,
// Function's closure) do. String is mutable (resize/append/prepend, see
// internal/builtins) and so is tracked like any other heap payload.
func (e *Evaluator) newInteger(n int64) object.Value  { return object.New(e.integerType, n) }
func (e *Evaluator) newReal(r float64) object.Value   { return object.New(e.realType, r) }
func (e *Evaluator) newCharacter(c byte) object.Value { return object.New(e.characterType, c) }

func (e *Evaluator) newString(s string) object.Value {
	v := object.New(e.stringType, &object.StringBuf{Chars: []byte(s)})
	e.Register(v)
	return v
}

// BoolValue returns the pinned True or False singleton for b, exported
// for the builtins package to use when implementing operator slots and
// magic methods.
func (e *Evaluator) BoolValue(b bool) object.Value {
	if b {
		return e.True
	}
	return e.False
}

// IntegerValue builds a fresh Integer value, exported for builtins.
func (e *Evaluator) IntegerValue(n int64) object.Value { return e.newInteger(n) }

// RealValue builds a fresh Real value, exported for builtins.
func (e *Evaluator) RealValue(r float64) object.Value { return e.newReal(r) }

// CharacterValue builds a fresh Character value, exported for builtins.
func (e *Evaluator) CharacterValue(c byte) object.Value { return e.newCharacter(c) }

// StringValue builds a fresh String value, exported for builtins.
func (e *Evaluator) StringValue(s string) object.Value { return e.newString(s) }

// ArrayValue builds a fresh Array value from elems, exported for
// builtins (Array.filter/slice/copy, String.split, and the glob and json
// modules build new arrays this way).
func (e *Evaluator) ArrayValue(elems []object.Value) object.Value {
	v := object.New(e.arrayType, &object.Array{Elements: elems})
	e.Register(v)
	return v
}

// NothingValue returns the pinned Nothing singleton, exported for
// builtins.
func (e *Evaluator) NothingValue() object.Value { return e.Nothing }

// makeRecordType builds a fresh UserRecord Type for a `record`
// declaration with the given field names, generalizing the reference
// module loaders' make_record_type(name_id) helper (see
// original_source/cotton_modules/gc.cpp's Builtin::makeRecordType call)
// to a per-declaration dynamic registry rather than one name-keyed slot.
// MakeRecordType exposes makeRecordType to the builtins package, which
// needs it to hand back ad-hoc records from native modules (gc.status(),
// the json module's object results) using the same Create/DeepCopy/
// default-__repr__ machinery a `record` declaration gets.
func (e *Evaluator) MakeRecordType(name string, fields []string) *object.Type {
	return e.makeRecordType(name, fields)
}

// deepCopyValue deep-copies v through its type's DeepCopy hook, or
// returns v unchanged for value types that have none (Integer, Real,
// Boolean, Character are already independent after a Go value copy).
// Mirrors internal/builtins' own deepCopyValue (Array.copy's helper);
// duplicated here rather than imported because builtins imports
// evaluator, and a record's DeepCopy needs the same per-field recursion
// Array.DeepCopy performs (internal/builtins/array.go) to satisfy
// spec.md §4.3's "contained references are themselves deep-copied" rule.
func deepCopyValue(rt object.Evaluator, v object.Value) object.Value {
	if v.Type != nil && v.Type.DeepCopy != nil {
		return v.Type.DeepCopy(rt, v)
	}
	return v
}

func (e *Evaluator) makeRecordType(name string, fields []string) *object.Type {
	t := &object.Type{
		Name:         name,
		RecordFields: fields,
		Methods:      make(map[object.NameID]func(self object.Value) object.Value),
	}
	t.Create = func(rt object.Evaluator) object.Value {
		fieldMap := make(map[string]object.Value, len(fields))
		for _, f := range fields {
			fieldMap[f] = e.Nothing
		}
		v := object.New(t, &object.Record{TypeName: name, Fields: fieldMap})
		rt.Register(v)
		return v
	}
	t.DeepCopy = func(rt object.Evaluator, v object.Value) object.Value {
		rec := v.Payload.(*object.Record)
		copied := make(map[string]object.Value, len(rec.Fields))
		for k, fv := range rec.Fields {
			copied[k] = deepCopyValue(rt, fv)
		}
		nv := object.New(t, &object.Record{TypeName: rec.TypeName, Fields: copied})
		rt.Register(nv)
		return nv
	}
	t.InstanceSize = func(v object.Value) int64 {
		rec := v.Payload.(*object.Record)
		return int64(8 * (1 + len(rec.Fields)))
	}

	// Records compare structurally, field by field, recursing through
	// each field's own EQ the way Array elements do (internal/builtins/
	// array.go's elementsEqual) — not duplicated here as a shared helper
	// since builtins imports evaluator, not the other way around.
	t.SetOperator(ast.EQ, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		a := operands[0].Payload.(*object.Record)
		other, ok := operands[1].Payload.(*object.Record)
		if !ok || other.TypeName != a.TypeName || len(other.Fields) != len(a.Fields) {
			return e.BoolValue(false), nil
		}
		for k, fv := range a.Fields {
			ov, ok := other.Fields[k]
			if !ok {
				return e.BoolValue(false), nil
			}
			eq, diag := fieldsEqual(rt, fv, ov, area)
			if diag != nil {
				return object.Value{}, diag
			}
			if !eq {
				return e.BoolValue(false), nil
			}
		}
		return e.BoolValue(true), nil
	})
	t.SetOperator(ast.NEQ, func(rt object.Evaluator, operands []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		v, diag := t.Operator(ast.EQ)(rt, operands, area)
		if diag != nil {
			return object.Value{}, diag
		}
		return e.BoolValue(!v.Payload.(bool)), nil
	})

	// record declarations carry no methods of their own, so every
	// UserRecord needs a default __repr__. Each field's own Repr/Str
	// magic method renders its value; the field->rendering map is then
	// handed to kr/pretty, the same library `cotton dump` uses to print
	// the parsed AST.
	t.Repr = func(rt object.Evaluator, v object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		rec := v.Payload.(*object.Record)
		keys := make([]string, 0, len(rec.Fields))
		for k := range rec.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		dump := make(map[string]string, len(keys))
		for _, k := range keys {
			s, diag := reprField(rt, rec.Fields[k], area)
			if diag != nil {
				return object.Value{}, diag
			}
			dump[k] = s
		}
		return e.StringValue(name + " " + pretty.Sprint(dump)), nil
	}
	t.Str = t.Repr

	e.Types.Register(t)
	return t
}

// fieldsEqual dispatches EQ on a and b, mirroring internal/builtins'
// elementsEqual (array.go) so Record equality recurses into nested
// fields the same way Array equality recurses into elements.
func fieldsEqual(rt object.Evaluator, a, b object.Value, area source.Area) (bool, *source.Diagnostic) {
	if a.Type == nil {
		return b.Type == nil, nil
	}
	slot := a.Type.Operator(ast.EQ)
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

// reprField renders v through its type's __repr__ (falling back to
// __string__), the same protocol Array/String use to stringify
// contained values, without depending on the builtins package (which
// imports this one).
func reprField(rt object.Evaluator, v object.Value, area source.Area) (string, *source.Diagnostic) {
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
