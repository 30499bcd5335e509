package builtins

import (
	"fmt"

	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// registerGlobals binds the two names the worked examples call
// without an import: print, which writes a value's __string__ rendering
// followed by a newline to the Manager's configured writer, and argg,
// which exposes the positional arguments of the nearest enclosing call
// beyond its declared parameter list ("more arguments than
// parameters" rule).
func registerGlobals(e *evaluator.Evaluator) {
	functionType := e.FunctionType()

	bindGlobal(e, "print", newInternalFunction(e, functionType, "print", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
		for _, v := range args {
			s, diag := stringOf(rt, v, area)
			if diag != nil {
				return object.Value{}, diag
			}
			fmt.Fprint(e.Diag.Out, s)
		}
		fmt.Fprintln(e.Diag.Out)
		return e.NothingValue(), nil
	}))

	bindGlobal(e, "argg", newInternalFunction(e, functionType, "argg", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
		i, ok := asInt(args[0])
		if !ok || i < 0 {
			return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "argg", 0, args[0].TypeName())
		}
		all := e.Scope.ArgumentsOfEnclosingCall()
		if int(i) >= len(all) {
			return e.NothingValue(), nil
		}
		return all[i], nil
	}))
}
