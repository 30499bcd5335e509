package scope

import (
	"testing"

	"github.com/lis05/cotton-go/internal/ident"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

func TestLookupFallsThroughWhenCanAccessPrev(t *testing.T) {
	s := NewStack()
	idents := ident.NewTable()
	x := idents.Intern("x")

	s.AddVariable(x, object.New(nil, int64(1)))
	s.PushFrame(true)

	v, ok := s.Lookup(x)
	if !ok || v.Payload.(int64) != 1 {
		t.Fatalf("expected fallthrough lookup to find x=1, got %+v ok=%v", v, ok)
	}
}

func TestLookupStopsAtNonRootFrameWhenCannotAccessPrev(t *testing.T) {
	s := NewStack()
	idents := ident.NewTable()
	y := idents.Intern("y")

	s.PushFrame(true) // a block, not the root frame
	s.AddVariable(y, object.New(nil, int64(1)))
	s.PushFrame(false) // e.g. a function call frame
	s.PushFrame(true)  // a block inside that call

	if _, ok := s.Lookup(y); ok {
		t.Fatalf("expected lookup to stop at a can_access_prev=false frame short of the root")
	}
}

func TestLookupAlwaysFindsRootFrameAcrossCannotAccessPrev(t *testing.T) {
	s := NewStack()
	idents := ident.NewTable()
	x := idents.Intern("x")

	s.AddVariable(x, object.New(nil, int64(1)))
	s.PushFrame(false)

	v, ok := s.Lookup(x)
	if !ok || v.Payload.(int64) != 1 {
		t.Fatalf("expected a call frame to still reach a global (root-frame) binding, got %+v ok=%v", v, ok)
	}
}

func TestAddVariableOverwritesWithinSameFrame(t *testing.T) {
	s := NewStack()
	idents := ident.NewTable()
	x := idents.Intern("x")

	s.AddVariable(x, object.New(nil, int64(1)))
	s.AddVariable(x, object.New(nil, int64(2)))

	v, ok := s.Lookup(x)
	if !ok || v.Payload.(int64) != 2 {
		t.Fatalf("expected overwritten binding x=2, got %+v ok=%v", v, ok)
	}

	if n := len(s.top().order); n != 1 {
		t.Fatalf("expected a single order entry for x after overwrite, got %d", n)
	}
}

func TestAddVariableClearsSingleUse(t *testing.T) {
	s := NewStack()
	idents := ident.NewTable()
	x := idents.Intern("x")

	v := object.New(nil, int64(1))
	if !v.IsSingleUse() {
		t.Fatalf("expected a freshly-made value to start single-use")
	}
	s.AddVariable(x, v)

	bound, _ := s.Lookup(x)
	if bound.IsSingleUse() {
		t.Fatalf("expected storing a value to clear its single-use flag")
	}
}

func TestArgumentsOfEnclosingCallSkipsNonCallFrames(t *testing.T) {
	s := NewStack()
	args := []object.Value{object.New(nil, int64(42))}

	s.PushFrame(false)
	s.SetIsFunctionCall(args)
	s.PushFrame(true) // a block inside the function body, not itself a call frame

	got := s.ArgumentsOfEnclosingCall()
	if len(got) != 1 || got[0].Payload.(int64) != 42 {
		t.Fatalf("expected to find the enclosing call's arguments, got %+v", got)
	}
}

func TestArgumentsOfEnclosingCallNoneFound(t *testing.T) {
	s := NewStack()
	if got := s.ArgumentsOfEnclosingCall(); got != nil {
		t.Fatalf("expected no enclosing call, got %+v", got)
	}
}

func TestPopFrameOfEmptyStackPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected PopFrame on an empty stack to panic")
		}
	}()
	s := &Stack{}
	s.PopFrame()
}

func TestRootsIncludesArgumentsAndBindings(t *testing.T) {
	s := NewStack()
	idents := ident.NewTable()
	x := idents.Intern("x")
	s.AddVariable(x, object.New(nil, int64(7)))

	s.PushFrame(false)
	s.SetIsFunctionCall([]object.Value{object.New(nil, int64(9))})

	roots := s.Roots()
	var sawX, sawArg bool
	for _, r := range roots {
		if n, ok := r.Payload.(int64); ok {
			if n == 7 {
				sawX = true
			}
			if n == 9 {
				sawArg = true
			}
		}
	}
	if !sawX || !sawArg {
		t.Fatalf("expected roots to include both the bound variable and the call argument, got %+v", roots)
	}
}

func TestContextStackWithNoOpenContextReturnsZeroAreas(t *testing.T) {
	s := NewStack()
	if got := s.CurrentArea(); got != (source.Area{}) {
		t.Fatalf("expected zero area with no open context, got %+v", got)
	}
	if got := s.SubArea(0); got != (source.Area{}) {
		t.Fatalf("expected zero sub-area with no open context, got %+v", got)
	}
}

func TestPopContextOfEmptyStackPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected PopContext on an empty context stack to panic")
		}
	}()
	s := NewStack()
	s.PopContext()
}
