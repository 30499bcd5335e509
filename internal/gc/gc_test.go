package gc

import (
	"testing"

	"github.com/lis05/cotton-go/internal/object"
)

// fakeRoots implements Root by returning a fixed slice of Values, the
// way scope.Stack.Roots does for the real evaluator.
type fakeRoots []object.Value

func (f fakeRoots) GCRoots() []object.Value { return []object.Value(f) }

// cell is a minimal GC-reachable payload for tests: a pointer wrapping
// zero or more outgoing edges, mirroring object.Array's shape without
// depending on a real Type.
type cell struct {
	edges []object.Value
}

func (c *cell) GCReachable() []object.Value { return c.edges }

func newCellValue(edges ...object.Value) object.Value {
	return object.New(nil, &cell{edges: edges})
}

func TestUnreachableValueIsReclaimed(t *testing.T) {
	h := New()
	v := newCellValue()
	h.Register(v)

	h.Cycle(fakeRoots{})

	if h.Live() != 0 {
		t.Fatalf("expected the unreachable value to be swept, live=%d", h.Live())
	}
	if h.Stats().TotalReclaimed != 1 {
		t.Fatalf("expected TotalReclaimed=1, got %d", h.Stats().TotalReclaimed)
	}
}

func TestRootedValueSurvives(t *testing.T) {
	h := New()
	v := newCellValue()
	h.Register(v)

	h.Cycle(fakeRoots{v})

	if h.Live() != 1 {
		t.Fatalf("expected the rooted value to survive, live=%d", h.Live())
	}
}

func TestReachableThroughEdgeSurvives(t *testing.T) {
	h := New()
	child := newCellValue()
	parent := newCellValue(child)
	h.Register(child)
	h.Register(parent)

	h.Cycle(fakeRoots{parent})

	if h.Live() != 2 {
		t.Fatalf("expected both parent and child to survive via the edge, live=%d", h.Live())
	}
}

func TestCyclicReferencesAreCollectedWhenUnreachable(t *testing.T) {
	h := New()
	a := &cell{}
	b := &cell{}
	aVal := object.New(nil, a)
	bVal := object.New(nil, b)
	a.edges = []object.Value{bVal}
	b.edges = []object.Value{aVal}

	h.Register(aVal)
	h.Register(bVal)

	h.Cycle(fakeRoots{})

	if h.Live() != 0 {
		t.Fatalf("expected a cycle with no external root to be fully collected, live=%d", h.Live())
	}
}

func TestCyclicReferencesSurviveWhenRooted(t *testing.T) {
	h := New()
	a := &cell{}
	b := &cell{}
	aVal := object.New(nil, a)
	bVal := object.New(nil, b)
	a.edges = []object.Value{bVal}
	b.edges = []object.Value{aVal}

	h.Register(aVal)
	h.Register(bVal)

	h.Cycle(fakeRoots{aVal})

	if h.Live() != 2 {
		t.Fatalf("expected a rooted cycle to survive entirely, live=%d", h.Live())
	}
}

func TestEnableDisableGatesTrigger(t *testing.T) {
	h := New(WithThresholdMin(1))
	h.Disable()

	h.Register(newCellValue())
	h.Register(newCellValue())

	if h.ShouldTrigger() {
		t.Fatalf("expected ShouldTrigger to report false while disabled")
	}

	h.Enable()
	if !h.ShouldTrigger() {
		t.Fatalf("expected ShouldTrigger to report true once re-enabled past threshold")
	}
}

func TestPingNoOpWhenDisabled(t *testing.T) {
	h := New()
	h.Disable()
	v := newCellValue()
	h.Register(v)

	h.Ping(fakeRoots{})

	if h.Live() != 1 {
		t.Fatalf("expected Ping to no-op while disabled, live=%d", h.Live())
	}
}

func TestForcePingRunsEvenWhenDisabledAndRestoresState(t *testing.T) {
	h := New()
	h.Disable()
	h.Register(newCellValue())

	h.ForcePing(fakeRoots{})

	if h.Live() != 0 {
		t.Fatalf("expected ForcePing to collect even while disabled, live=%d", h.Live())
	}
	if h.Enabled() {
		t.Fatalf("expected ForcePing to restore the disabled state afterward")
	}
}

func TestShouldTriggerUsesThresholdMinWhenNothingLive(t *testing.T) {
	h := New(WithThresholdMin(4), WithGrowthFactor(2.0))
	for i := 0; i < 10; i++ {
		h.Register(newCellValue())
	}
	h.Cycle(fakeRoots{}) // nothing rooted: live_after_cycle becomes 0, alloc counter resets

	for i := 0; i < 3; i++ {
		h.Register(newCellValue())
	}
	if h.ShouldTrigger() {
		t.Fatalf("expected 3 allocations to stay under thresholdMin=4")
	}
	h.Register(newCellValue())
	h.Register(newCellValue())
	if !h.ShouldTrigger() {
		t.Fatalf("expected 5 allocations to exceed thresholdMin=4")
	}
}
