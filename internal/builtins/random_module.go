package builtins

import (
	"math/rand"

	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// loadRandomModule wraps a private math/rand.Rand, modeled on
// cotton_modules/random.cpp's seed/next/nextint/nextreal contract: each
// import gets its own generator state rather than sharing the package
// global, so two scripts running in the same process (or the same
// script importing twice) don't perturb each other's sequence.
func loadRandomModule(e *evaluator.Evaluator) (object.Value, bool) {
	gen := rand.New(rand.NewSource(1))

	exports := map[string]object.Value{
		"seed": fn(e, "seed", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			n, ok := asInt(args[0])
			if !ok {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "seed", 0, args[0].TypeName())
			}
			gen.Seed(n)
			return e.NothingValue(), nil
		}),

		"next": fn(e, "next", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			return e.RealValue(gen.Float64()), nil
		}),

		"nextint": fn(e, "nextint", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			lo, ok1 := asInt(args[0])
			hi, ok2 := asInt(args[1])
			if !ok1 || !ok2 || hi < lo {
				return object.Value{}, source.New(source.CategoryRange, &area, source.MsgNegativeSize, hi-lo)
			}
			return e.IntegerValue(lo + gen.Int63n(hi-lo+1)), nil
		}),

		"nextreal": fn(e, "nextreal", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			lo, ok1 := asReal(args[0])
			hi, ok2 := asReal(args[1])
			if !ok1 || !ok2 {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "nextreal", 0, args[0].TypeName())
			}
			return e.RealValue(lo + gen.Float64()*(hi-lo)), nil
		}),
	}
	return newModule(e, "random", exports), true
}
