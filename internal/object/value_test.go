package object

import "testing"

func TestNewValueStartsSingleUse(t *testing.T) {
	v := New(nil, int64(1))
	if !v.IsSingleUse() {
		t.Fatalf("expected New to mark its value single-use")
	}
	if v.Kind != KindInstance {
		t.Fatalf("expected New to produce a KindInstance value, got %v", v.Kind)
	}
}

func TestNewTypeIsNeverSingleUse(t *testing.T) {
	typ := &Type{Name: "Integer"}
	v := NewType(typ)
	if v.IsSingleUse() {
		t.Fatalf("expected a type-itself value to never be single-use")
	}
	if v.Kind != KindTypeItself {
		t.Fatalf("expected NewType to produce a KindTypeItself value, got %v", v.Kind)
	}
}

func TestClearSingleUseClearsTopLevel(t *testing.T) {
	v := New(nil, int64(1)).ClearSingleUse()
	if v.IsSingleUse() {
		t.Fatalf("expected ClearSingleUse to clear the flag")
	}
}

func TestClearSingleUsePropagatesIntoArray(t *testing.T) {
	inner := New(nil, int64(1))
	arr := &Array{Elements: []Value{inner}}
	v := New(nil, arr)

	v = v.ClearSingleUse()

	if arr.Elements[0].IsSingleUse() {
		t.Fatalf("expected ClearSingleUse to propagate into array elements")
	}
}

func TestClearSingleUsePropagatesIntoRecord(t *testing.T) {
	inner := New(nil, int64(1))
	rec := &Record{TypeName: "Pt", Fields: map[string]Value{"x": inner}}
	v := New(nil, rec)

	v = v.ClearSingleUse()

	if rec.Fields["x"].IsSingleUse() {
		t.Fatalf("expected ClearSingleUse to propagate into record fields")
	}
}

func TestClearSingleUsePropagatesTransitively(t *testing.T) {
	innermost := New(nil, int64(1))
	inner := &Array{Elements: []Value{innermost}}
	outer := &Array{Elements: []Value{New(nil, inner)}}
	v := New(nil, outer)

	v = v.ClearSingleUse()

	if inner.Elements[0].IsSingleUse() {
		t.Fatalf("expected ClearSingleUse to propagate through nested arrays")
	}
}

func TestSingleUseRemarksAsSingleUse(t *testing.T) {
	v := New(nil, int64(1)).ClearSingleUse()
	if v.IsSingleUse() {
		t.Fatalf("precondition failed: value should be cleared")
	}
	v = v.SingleUse()
	if !v.IsSingleUse() {
		t.Fatalf("expected SingleUse to re-mark the value as single-use")
	}
}

func TestTypeNameHandlesNilType(t *testing.T) {
	v := Value{}
	if got := v.TypeName(); got != "<untyped>" {
		t.Fatalf("expected <untyped> for a zero-value Value, got %q", got)
	}
}

func TestTypeNameReportsDeclaredName(t *testing.T) {
	typ := &Type{Name: "Integer"}
	v := New(typ, int64(1))
	if got := v.TypeName(); got != "Integer" {
		t.Fatalf("expected type name Integer, got %q", got)
	}
}
