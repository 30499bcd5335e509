package object

import (
	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/ident"
	"github.com/lis05/cotton-go/internal/source"
)

// Array is the payload of an Array value: a resizable, heterogeneously
// typed element list (Cotton arrays, like its records, carry no element
// type constraint).
type Array struct {
	Elements []Value
}

// GCReachable reports the array's elements as outgoing edges for the
// collector's mark phase (internal/gc.Reachable).
func (a *Array) GCReachable() []Value {
	return a.Elements
}

// Record is the payload of a UserRecord value: a fixed set of named
// fields, declared once by a `record` statement and populated per
// instance by Make.
type Record struct {
	TypeName string
	Fields   map[string]Value
}

// GCReachable reports the record's field values as outgoing edges.
func (r *Record) GCReachable() []Value {
	out := make([]Value, 0, len(r.Fields))
	for _, v := range r.Fields {
		out = append(out, v)
	}
	return out
}

// StringBuf is the payload of a String value: a mutable byte buffer, so
// that resize/append/prepend on String mutate the receiver in place, the
// same way Array's methods do.
type StringBuf struct {
	Chars []byte
}

func (s *StringBuf) String() string { return string(s.Chars) }

// FunctionKind distinguishes a function implemented in Go (a built-in or
// a native-module export) from one produced by evaluating a
// FunctionLiteral.
type FunctionKind int

const (
	FunctionInternal FunctionKind = iota
	FunctionScripted
)

// InternalFunc is the signature every Go-implemented Function payload
// satisfies: it receives the already-evaluated argument Values and the
// call site's source area (for diagnostics), and returns a result or an
// error, exactly like a scripted function call from the evaluator's
// point of view. A returned *source.Diagnostic is reported verbatim;
// any other error is wrapped into a CategoryType diagnostic at area.
type InternalFunc func(rt Evaluator, args []Value, area source.Area) (Value, error)

// Function is the payload of a Function value. A scripted function
// captures its declaring Params/Body and, for closures, the enclosing
// scope it was created in (an opaque any to avoid an import cycle with
// internal/scope; the evaluator type-asserts it back on call).
type Function struct {
	Kind FunctionKind
	Name string

	// Scripted function fields.
	Params  []ast.Identifier
	Body    *ast.Block
	Closure any

	// Internal (built-in or native-module) function field.
	Internal InternalFunc

	// BoundSelf is set when this Function is a bound method value
	// produced by Type.Method; the evaluator prepends it to Args before
	// dispatch.
	BoundSelf *Value
}

// GCReachable reports the bound receiver, if any, as an outgoing edge.
// A scripted function's enclosing scope is not itself a Value and is
// already rooted independently by the live scope stack, so closures
// contribute no additional edges here: a closure holds the evaluator's
// one shared scope stack, not a per-closure frame snapshot.
func (f *Function) GCReachable() []Value {
	if f.BoundSelf != nil {
		return []Value{*f.BoundSelf}
	}
	return nil
}

// NameTable is the subset of ident.Table the object package needs when
// formatting diagnostics that mention an interned name (e.g. "no such
// field" errors) without importing the full table type everywhere.
type NameTable interface {
	NameOf(id ident.ID) string
}
