// Package object implements the polymorphic value and type model: every
// runtime value is a Value tagged with the Type that governs it, and every
// Type carries a fixed operator-slot table plus a named method table,
// splitting the same way a tagged-union value representation splits
// "a value" and "the type metadata that interprets it".
package object

import "github.com/lis05/cotton-go/internal/ident"

// Kind distinguishes an ordinary instance from a type used as a
// first-class value (the receiver of Make, or a static method lookup).
type Kind int

const (
	KindInstance Kind = iota
	KindTypeItself
)

// Value is the tagged union threaded through the evaluator. Payload holds
// the Go-native representation appropriate to Type: int64 for Integer,
// float64 for Real, bool for Boolean, byte for Character, *StringBuf for
// String, *Array for Array, *Function for Function, *Record for
// UserRecord, or nil for Nothing and for TypeItself values.
type Value struct {
	Type    *Type
	Kind    Kind
	Payload any

	// singleUse marks a value produced by an expression with no other
	// live reference (a fresh literal, an intermediate of an operator
	// chain). Storing a Value into a variable, field, or array slot
	// clears it, recursively, via ClearSingleUse. The built-in methods do
	// not consult it: String and Array methods mutate their receiver in
	// place whether or not it is single-use.
	singleUse bool
}

// New builds an instance Value for typ with payload, marked single-use
// (the common case: a value that has just been computed).
func New(typ *Type, payload any) Value {
	return Value{Type: typ, Kind: KindInstance, Payload: payload, singleUse: true}
}

// NewType builds a Value naming typ itself, as produced by a type
// declaration or returned by a native module that exports its types.
func NewType(typ *Type) Value {
	return Value{Type: typ, Kind: KindTypeItself, singleUse: false}
}

// IsSingleUse reports whether v has no other live reference.
func (v Value) IsSingleUse() bool { return v.singleUse }

// SingleUse returns a copy of v with the single-use flag forced to on;
// used by the evaluator when it hands a freshly constructed value
// upward as an operator or call result.
func (v Value) SingleUse() Value {
	v.singleUse = true
	return v
}

// ClearSingleUse returns a copy of v with the single-use flag cleared,
// and recurses into Array/Record payloads so that storing a container
// also demotes everything reachable from it. This follows the
// single-use propagation rule: once a value is reachable from more than
// the expression that produced it, neither it nor anything it contains
// may be treated as exclusively owned.
func (v Value) ClearSingleUse() Value {
	v.singleUse = false
	switch p := v.Payload.(type) {
	case *Array:
		for i, elem := range p.Elements {
			p.Elements[i] = elem.ClearSingleUse()
		}
	case *Record:
		for name, field := range p.Fields {
			p.Fields[name] = field.ClearSingleUse()
		}
	}
	return v
}

// TypeName returns the human-readable name of v's type, for diagnostics
// and for __repr__/__string__ fallbacks.
func (v Value) TypeName() string {
	if v.Type == nil {
		return "<untyped>"
	}
	return v.Type.Name
}

// NameID is a convenience alias so object code doesn't need to import
// ident directly just to spell out the table's ID type.
type NameID = ident.ID
