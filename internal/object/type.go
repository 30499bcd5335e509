package object

import (
	"fmt"

	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/ident"
	"github.com/lis05/cotton-go/internal/source"
)

// TypeID uniquely identifies a Type within one Runtime's registry, the
// way ident.ID uniquely identifies an interned name.
type TypeID uint64

// OperatorFunc implements one operator slot. operands[0] is always the
// receiver; operands[1:] are the remaining operands (one for binary
// operators, zero for unary/INDEX-less calls). It returns the computed
// Value or a diagnostic when the type does not support that operator for
// the given operand shape.
type OperatorFunc func(rt Evaluator, operands []Value, area source.Area) (Value, *source.Diagnostic)

// MagicFunc implements one of the magic conversion methods (__repr__,
// __string__, __bool__, __int__, __real__, __char__, __read__).
type MagicFunc func(rt Evaluator, self Value, area source.Area) (Value, *source.Diagnostic)

// Evaluator is the minimal surface of internal/evaluator that operator
// and method implementations need: enough to call back into scripted
// functions (such as the callbacks Array.sort and Array.filter take; record
// types carry no user-defined operators) and to consult
// the GC/scope stack without internal/object importing internal/evaluator
// (which would create an import cycle, since the evaluator imports
// object for Value/Type).
type Evaluator interface {
	// CallFunction invokes a Function value (builtin or scripted) with
	// args, returning its result or a diagnostic.
	CallFunction(fn Value, args []Value, area source.Area) (Value, *source.Diagnostic)
	// Register asks the GC to track a freshly allocated payload so it
	// participates in the next mark-and-sweep cycle.
	Register(v Value)
	// Files is the source file table, for diagnostics that need to
	// render an Area.
	Files() *source.Files
	// SubArea resolves the i'th operand's source area from the
	// innermost open evaluation context (the one dispatchOperator or
	// the call/field-access path pushed around this adapter's
	// invocation), so an adapter can blame a specific operand via
	// source.NewWithSubArea instead of the whole expression's area.
	SubArea(i int) source.Area
}

// Type describes one kind of Value: its name, its operator slots (one
// per ast.OperatorKind, nil when unsupported), its magic-method hooks,
// its named method table (interned name ID -> bound Function value
// factory), and the hooks the object model needs to create and copy
// instances and to account for them in the GC's size bookkeeping.
type Type struct {
	ID   TypeID
	Name string

	Operators [ast.CALL + 1]OperatorFunc

	Repr   MagicFunc // __repr__
	Str    MagicFunc // __string__
	Bool   MagicFunc // __bool__
	Int    MagicFunc // __int__
	Real   MagicFunc // __real__
	Char   MagicFunc // __char__
	Read   MagicFunc // __read__

	// Methods maps an interned method name to a function that builds
	// the bound method Value for a given receiver. Record and Array
	// share this table shape; for named methods is looked up once per
	// FieldAccessExpr and then called like any other Function value.
	Methods map[ident.ID]func(self Value) Value

	// Create returns this type's zero-value instance (used by `make`
	// for UserRecord types, and by any built-in type that wants a
	// default-constructed instance).
	Create func(rt Evaluator) Value

	// DeepCopy returns a fresh, independently-mutable copy of v,
	// registering any newly allocated payload with the GC. Value types
	// (Integer, Real, Boolean, Character) may return v unchanged, since
	// Go's value-copy semantics already give them independent storage.
	DeepCopy func(rt Evaluator, v Value) Value

	// InstanceSize estimates the heap cost of v's payload in abstract
	// units, feeding the GC's trigger-policy accounting.
	InstanceSize func(v Value) int64

	// RecordFields is set only for UserRecord types generated by a
	// `record` declaration: the fixed, declared field names a Make call
	// default-initializes to Nothing.
	RecordFields []string
}

// SetOperator installs fn in the slot for kind, panicking on an
// out-of-range kind — a programmer error in type setup, never a
// user-triggerable condition.
func (t *Type) SetOperator(kind ast.OperatorKind, fn OperatorFunc) {
	if int(kind) < 0 || int(kind) >= len(t.Operators) {
		panic(fmt.Sprintf("object: operator kind %d out of range for type %s", kind, t.Name))
	}
	t.Operators[kind] = fn
}

// Operator returns the slot for kind, or nil if t does not support it.
func (t *Type) Operator(kind ast.OperatorKind) OperatorFunc {
	if int(kind) < 0 || int(kind) >= len(t.Operators) {
		return nil
	}
	return t.Operators[kind]
}

// Method looks up a named method on t, returning the bound Function
// value for self, or (Value{}, false) if t has no such method.
func (t *Type) Method(self Value, name ident.ID) (Value, bool) {
	if t.Methods == nil {
		return Value{}, false
	}
	factory, ok := t.Methods[name]
	if !ok {
		return Value{}, false
	}
	return factory(self), true
}

// Registry assigns TypeIDs and looks types up by name, the object-model
// analogue of ident.Table: built-in types register themselves once at
// Runtime startup, and `record` declarations register a new Type per
// distinct user-defined shape encountered during evaluation.
type Registry struct {
	byID   []*Type
	byName map[string]*Type
}

// NewRegistry creates an empty type registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Type, 16)}
}

// Register assigns t a fresh TypeID and makes it resolvable by name.
func (r *Registry) Register(t *Type) *Type {
	t.ID = TypeID(len(r.byID))
	r.byID = append(r.byID, t)
	r.byName[t.Name] = t
	return t
}

// Lookup resolves a type by its declared name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// ByID resolves a type by its registry-assigned ID.
func (r *Registry) ByID(id TypeID) *Type {
	return r.byID[id]
}
