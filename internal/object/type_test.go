package object

import (
	"testing"

	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/ident"
	"github.com/lis05/cotton-go/internal/source"
)

// stubEvaluator is the minimal Evaluator implementation the object
// package's tests need to exercise operator/method slots without
// depending on internal/evaluator (which imports this package).
type stubEvaluator struct {
	files *source.Files
}

func (s *stubEvaluator) CallFunction(fn Value, args []Value, area source.Area) (Value, *source.Diagnostic) {
	return Value{}, nil
}
func (s *stubEvaluator) Register(v Value) {}
func (s *stubEvaluator) Files() *source.Files {
	return s.files
}
func (s *stubEvaluator) SubArea(i int) source.Area { return source.Area{} }

func TestSetOperatorAndOperatorRoundTrip(t *testing.T) {
	typ := &Type{Name: "Integer"}
	var called bool
	typ.SetOperator(ast.ADD, func(rt Evaluator, operands []Value, area source.Area) (Value, *source.Diagnostic) {
		called = true
		return Value{}, nil
	})

	fn := typ.Operator(ast.ADD)
	if fn == nil {
		t.Fatalf("expected Operator to find the just-installed ADD slot")
	}
	if _, diag := fn(&stubEvaluator{}, nil, source.Area{}); diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if !called {
		t.Fatalf("expected the installed operator function to run")
	}
}

func TestOperatorUnsetSlotIsNil(t *testing.T) {
	typ := &Type{Name: "Integer"}
	if fn := typ.Operator(ast.SUB); fn != nil {
		t.Fatalf("expected an unset operator slot to be nil")
	}
}

func TestOperatorOutOfRangeIsNil(t *testing.T) {
	typ := &Type{Name: "Integer"}
	if fn := typ.Operator(ast.OperatorKind(9999)); fn != nil {
		t.Fatalf("expected an out-of-range operator kind to report nil rather than panic")
	}
}

func TestSetOperatorOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected SetOperator with an out-of-range kind to panic")
		}
	}()
	typ := &Type{Name: "Integer"}
	typ.SetOperator(ast.OperatorKind(9999), nil)
}

func TestMethodLookupMissing(t *testing.T) {
	typ := &Type{Name: "Integer"}
	idents := ident.NewTable()
	if _, ok := typ.Method(Value{}, idents.Intern("nope")); ok {
		t.Fatalf("expected Method to report false for a type with no method table")
	}
}

func TestMethodLookupFound(t *testing.T) {
	typ := &Type{Name: "Array"}
	idents := ident.NewTable()
	sizeID := idents.Intern("size")
	typ.Methods = map[ident.ID]func(self Value) Value{
		sizeID: func(self Value) Value { return New(nil, int64(3)) },
	}

	self := New(typ, &Array{})
	bound, ok := typ.Method(self, sizeID)
	if !ok {
		t.Fatalf("expected Method to find the installed size method")
	}
	if bound.Payload.(int64) != 3 {
		t.Fatalf("expected the bound method's factory to run, got %+v", bound)
	}
}

func TestRegistryAssignsSequentialIDsAndResolvesByName(t *testing.T) {
	reg := NewRegistry()
	intT := reg.Register(&Type{Name: "Integer"})
	realT := reg.Register(&Type{Name: "Real"})

	if intT.ID != 0 || realT.ID != 1 {
		t.Fatalf("expected sequential TypeIDs starting at 0, got %d and %d", intT.ID, realT.ID)
	}

	if got, ok := reg.Lookup("Real"); !ok || got != realT {
		t.Fatalf("expected Lookup(Real) to resolve the registered type")
	}

	if reg.ByID(0) != intT {
		t.Fatalf("expected ByID(0) to resolve the first-registered type")
	}
}

func TestRegistryLookupMissing(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Lookup("Nope"); ok {
		t.Fatalf("expected Lookup of an unregistered name to fail")
	}
}
