// Package gc implements a mark-and-sweep collector: a
// conservative-roots collector triggered between whole statements, with
// enable/disable/ping/force-ping controls following a
// atomic-counter pool statistics (internal/interp memory accounting) and
// grounded on the reference GC native module's enable/disable/status/
// ping/forceping contract (original_source/cotton_modules/gc.cpp).
package gc

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lis05/cotton-go/internal/object"
)

// Reachable is implemented by any payload a Type can report outgoing
// edges for: Array yields its elements, Record its field values. Scalar
// payloads need not implement it — the Heap treats a missing Reachable
// implementation as "no outgoing edges".
type Reachable interface {
	GCReachable() []object.Value
}

// Root supplies the collector's conservative root set: every live scope
// frame's bindings, the evaluator's in-flight operand stack, and the
// pinned true/false/nothing singletons.
type Root interface {
	GCRoots() []object.Value
}

// entry is one tracked allocation: its current Value and whether the
// last mark pass reached it.
type entry struct {
	value object.Value
	marked bool
}

// Stats snapshots collector counters for diagnostics and the `gc`
// native module's status/metrics surface.
type Stats struct {
	Cycles           uint64
	LastCycleID      uuid.UUID
	LiveAfterCycle   int64
	AllocSinceCycle  int64
	TotalAllocated   uint64
	TotalReclaimed   uint64
	Enabled          bool
}

// Heap owns every GC-tracked allocation and the trigger-policy counters
// controlling when a cycle runs automatically.
type Heap struct {
	entries []*entry

	enabled bool

	allocSinceLastCycle int64
	liveAfterLastCycle  int64

	thresholdMin   int64
	growthFactor   float64

	cycles         atomic.Uint64
	totalAllocated atomic.Uint64
	totalReclaimed atomic.Uint64
	lastCycleID    uuid.UUID
}

// Option configures a new Heap.
type Option func(*Heap)

// WithThresholdMin overrides the minimum allocation count before a cycle
// can trigger (`threshold_min`). Default: 256.
func WithThresholdMin(n int64) Option {
	return func(h *Heap) { h.thresholdMin = n }
}

// WithGrowthFactor overrides the multiplier applied to live-after-last-
// cycle when computing the trigger threshold (`growth_factor`).
// Default: 2.0.
func WithGrowthFactor(f float64) Option {
	return func(h *Heap) { h.growthFactor = f }
}

// New creates an enabled Heap with default trigger-policy parameters.
func New(opts ...Option) *Heap {
	h := &Heap{
		enabled:      true,
		thresholdMin: 256,
		growthFactor: 2.0,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register tracks v as a live allocation and bumps the allocation
// counter that feeds the trigger policy. Scalar value types are
// typically not registered at all (their Type.Create returns them
// directly) — only heap-payload types (Array, Function, UserRecord,
// String) that actually need collecting are tracked.
func (h *Heap) Register(v object.Value) {
	h.entries = append(h.entries, &entry{value: v})
	h.allocSinceLastCycle++
	h.totalAllocated.Add(1)
}

// ShouldTrigger reports whether the trigger policy calls for a cycle at
// the next safe point: allocations since the last cycle exceed
// max(thresholdMin, growthFactor * live count after the last cycle).
func (h *Heap) ShouldTrigger() bool {
	if !h.enabled {
		return false
	}
	threshold := h.thresholdMin
	if grown := int64(float64(h.liveAfterLastCycle) * h.growthFactor); grown > threshold {
		threshold = grown
	}
	return h.allocSinceLastCycle > threshold
}

// Enable turns on automatic triggering.
func (h *Heap) Enable() { h.enabled = true }

// Disable turns off automatic triggering; ping still no-ops, ForcePing
// still runs.
func (h *Heap) Disable() { h.enabled = false }

// Enabled reports the current trigger-policy flag, for the `gc` native
// module's status() export.
func (h *Heap) Enabled() bool { return h.enabled }

// Ping runs a collection cycle now if the collector is enabled;
// otherwise it is a no-op.
func (h *Heap) Ping(root Root) {
	if !h.enabled {
		return
	}
	h.Cycle(root)
}

// ForcePing runs a collection cycle unconditionally, temporarily
// enabling the collector if it was disabled, then restoring the prior
// enabled state — matching the reference module's forceping, which
// saves/restores `rt->getGC()->enabled` around an unconditional cycle.
func (h *Heap) ForcePing(root Root) {
	was := h.enabled
	h.enabled = true
	h.Cycle(root)
	h.enabled = was
}

// Cycle runs one mark-and-sweep pass unconditionally.
func (h *Heap) Cycle(root Root) {
	h.mark(root)
	reclaimed := h.sweep()

	h.cycles.Add(1)
	h.totalReclaimed.Add(uint64(reclaimed))
	h.lastCycleID = uuid.New()
	h.liveAfterLastCycle = int64(len(h.entries))
	h.allocSinceLastCycle = 0
}

func (h *Heap) mark(root Root) {
	for _, e := range h.entries {
		e.marked = false
	}

	var stack []object.Value
	stack = append(stack, root.GCRoots()...)

	seen := make(map[any]bool, len(h.entries))
	for len(stack) > 0 {
		n := len(stack) - 1
		v := stack[n]
		stack = stack[:n]

		if v.Payload == nil {
			continue
		}
		if seen[v.Payload] {
			continue
		}
		seen[v.Payload] = true

		for _, e := range h.entries {
			if e.value.Payload == v.Payload {
				e.marked = true
			}
		}

		if r, ok := v.Payload.(Reachable); ok {
			stack = append(stack, r.GCReachable()...)
		}
	}
}

func (h *Heap) sweep() int {
	kept := h.entries[:0]
	reclaimed := 0
	for _, e := range h.entries {
		if e.marked {
			kept = append(kept, e)
		} else {
			reclaimed++
		}
	}
	h.entries = kept
	return reclaimed
}

// Stats snapshots the collector's counters.
func (h *Heap) Stats() Stats {
	return Stats{
		Cycles:          h.cycles.Load(),
		LastCycleID:     h.lastCycleID,
		LiveAfterCycle:  h.liveAfterLastCycle,
		AllocSinceCycle: h.allocSinceLastCycle,
		TotalAllocated:  h.totalAllocated.Load(),
		TotalReclaimed:  h.totalReclaimed.Load(),
		Enabled:         h.enabled,
	}
}

// Live returns the number of currently tracked (pre-sweep) allocations.
func (h *Heap) Live() int { return len(h.entries) }
