package builtins

import (
	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// moduleType is the Type every native module's exported object carries:
// a record-typed value containing functions (and, for `gc`, data).
// Modules don't need per-declaration field generation the way `record`
// does, so this is a single shared Type rather than one made per import.
var moduleType = &object.Type{
	Name:    "Module",
	Methods: make(map[object.NameID]func(self object.Value) object.Value),
	Repr: func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		rec := self.Payload.(*object.Record)
		return object.Value{Type: nil, Payload: &object.StringBuf{Chars: []byte("<module " + rec.TypeName + ">")}}, nil
	},
	InstanceSize: func(v object.Value) int64 { return 8 },
}

// newModule builds a loaded native module's exported value: a Record
// whose fields are the named functions (and, for `gc`, data) the module
// exposes, looked up by the same FieldAccessExpr path a UserRecord field
// read uses (internal/evaluator/expressions.go's fieldAccess).
func newModule(e *evaluator.Evaluator, name string, exports map[string]object.Value) object.Value {
	v := object.Value{
		Type:    moduleType,
		Kind:    object.KindInstance,
		Payload: &object.Record{TypeName: name, Fields: exports},
	}
	e.Register(v)
	return v
}

func fn(e *evaluator.Evaluator, name string, impl object.InternalFunc) object.Value {
	return newInternalFunction(e, e.FunctionType(), name, impl)
}
