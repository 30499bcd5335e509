package builtins

import (
	"path/filepath"

	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// loadGlobModule exposes pattern matching over strings, modeled on
// cotton_modules/glob.cpp. path/filepath.Match already implements POSIX
// glob matching, so no third-party dependency is needed here — see
// DESIGN.md for that justification.
func loadGlobModule(e *evaluator.Evaluator) (object.Value, bool) {
	exports := map[string]object.Value{
		"match": fn(e, "match", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			pattern, ok1 := asStringBuf(args[0])
			name, ok2 := asStringBuf(args[1])
			if !ok1 || !ok2 {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "match", 0, args[0].TypeName())
			}
			ok, err := filepath.Match(pattern.String(), name.String())
			if err != nil {
				return object.Value{}, source.New(source.CategoryModule, &area, source.MsgModuleLoadFailed, "glob", err.Error())
			}
			return e.BoolValue(ok), nil
		}),

		"filter": fn(e, "filter", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			pattern, ok := asStringBuf(args[0])
			if !ok {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "filter", 0, args[0].TypeName())
			}
			names, ok := asArray(args[1])
			if !ok {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "filter", 1, args[1].TypeName())
			}
			out := make([]object.Value, 0, len(names.Elements))
			for _, elem := range names.Elements {
				s, ok := asStringBuf(elem)
				if !ok {
					return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "filter", 1, elem.TypeName())
				}
				if matched, err := filepath.Match(pattern.String(), s.String()); err == nil && matched {
					out = append(out, elem)
				}
			}
			return e.ArrayValue(out), nil
		}),
	}
	return newModule(e, "glob", exports), true
}
