package builtins

import (
	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// loadGCModule exposes internal/gc's public API directly, grounded on
// the reference gc native module's enable/disable/status/ping/forceping
// contract: this is the one module that doesn't wrap a Go standard
// library, since the collector itself is the thing being exercised.
func loadGCModule(e *evaluator.Evaluator) (object.Value, bool) {
	statusFields := []string{"cycles", "live", "alloc_since_cycle", "total_allocated", "total_reclaimed", "enabled"}
	statusType := e.MakeRecordType("GCStatus", statusFields)

	exports := map[string]object.Value{
		"enable": fn(e, "enable", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			e.Heap.Enable()
			return e.NothingValue(), nil
		}),
		"disable": fn(e, "disable", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			e.Heap.Disable()
			return e.NothingValue(), nil
		}),
		"ping": fn(e, "ping", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			e.Heap.Ping(e)
			return e.NothingValue(), nil
		}),
		"forceping": fn(e, "forceping", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			e.Heap.ForcePing(e)
			return e.NothingValue(), nil
		}),
		"status": fn(e, "status", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			stats := e.Heap.Stats()
			status := statusType.Create(e)
			rec := status.Payload.(*object.Record)
			rec.Fields["cycles"] = e.IntegerValue(int64(stats.Cycles))
			rec.Fields["live"] = e.IntegerValue(stats.LiveAfterCycle)
			rec.Fields["alloc_since_cycle"] = e.IntegerValue(stats.AllocSinceCycle)
			rec.Fields["total_allocated"] = e.IntegerValue(int64(stats.TotalAllocated))
			rec.Fields["total_reclaimed"] = e.IntegerValue(int64(stats.TotalReclaimed))
			rec.Fields["enabled"] = e.BoolValue(stats.Enabled)
			return status, nil
		}),
	}
	return newModule(e, "gc", exports), true
}
