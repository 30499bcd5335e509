package builtins

import (
	"io"
	"os"

	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// resourceState is a Resource value's payload: the open *os.File plus
// the Resource-error status pair every failable native
// handle to expose (`file.error()`/`file.errormessage()`) instead of
// aborting through the error manager.
type resourceState struct {
	file    *os.File
	failed  bool
	message string
}

func (r *resourceState) GCReachable() []object.Value { return nil }

func asResource(v object.Value) (*resourceState, bool) {
	r, ok := v.Payload.(*resourceState)
	return r, ok
}

// loadIOModule wraps os.Open/os.Create/Read/Write/Close behind a Resource
// value, modeled on cotton_modules/io.cpp: every failure sets the
// Resource's status pair rather than signalling a fatal diagnostic, per
// the Resource-error carve-out: status fields instead of aborting.
func loadIOModule(e *evaluator.Evaluator) (object.Value, bool) {
	resourceType := &object.Type{
		Name:    "Resource",
		Methods: make(map[object.NameID]func(self object.Value) object.Value),
	}
	resourceType.Bool = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		r, _ := asResource(self)
		return e.BoolValue(r.file != nil && !r.failed), nil
	}
	resourceType.Repr = func(rt object.Evaluator, self object.Value, area source.Area) (object.Value, *source.Diagnostic) {
		return e.StringValue("<resource>"), nil
	}
	resourceType.InstanceSize = func(v object.Value) int64 { return 1 }
	e.Types.Register(resourceType)

	newResource := func(f *os.File, err error) object.Value {
		st := &resourceState{file: f}
		if err != nil {
			st.failed = true
			st.message = err.Error()
		}
		v := object.New(resourceType, st)
		e.Register(v)
		return v
	}

	exports := map[string]object.Value{
		"open": fn(e, "open", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			path, ok := asStringBuf(args[0])
			if !ok {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "open", 0, args[0].TypeName())
			}
			mode := "r"
			if len(args) > 1 {
				if m, ok := asStringBuf(args[1]); ok {
					mode = m.String()
				}
			}
			var f *os.File
			var err error
			switch mode {
			case "w":
				f, err = os.Create(path.String())
			case "a":
				f, err = os.OpenFile(path.String(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			default:
				f, err = os.Open(path.String())
			}
			return newResource(f, err), nil
		}),

		"read": fn(e, "read", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			r, ok := asResource(args[0])
			if !ok || r.file == nil {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "read", 0, args[0].TypeName())
			}
			data, err := io.ReadAll(r.file)
			if err != nil {
				r.failed = true
				r.message = err.Error()
				return e.StringValue(""), nil
			}
			return e.StringValue(string(data)), nil
		}),

		"write": fn(e, "write", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			r, ok := asResource(args[0])
			if !ok || r.file == nil {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "write", 0, args[0].TypeName())
			}
			s, ok := asStringBuf(args[1])
			if !ok {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "write", 1, args[1].TypeName())
			}
			n, err := r.file.WriteString(s.String())
			if err != nil {
				r.failed = true
				r.message = err.Error()
				return e.IntegerValue(0), nil
			}
			return e.IntegerValue(int64(n)), nil
		}),

		"close": fn(e, "close", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			r, ok := asResource(args[0])
			if !ok || r.file == nil {
				return e.NothingValue(), nil
			}
			if err := r.file.Close(); err != nil {
				r.failed = true
				r.message = err.Error()
			}
			r.file = nil
			return e.NothingValue(), nil
		}),

		"error": fn(e, "error", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			r, ok := asResource(args[0])
			if !ok {
				return e.BoolValue(true), nil
			}
			return e.BoolValue(r.failed), nil
		}),

		"errormessage": fn(e, "errormessage", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			r, ok := asResource(args[0])
			if !ok {
				return e.StringValue("not a resource"), nil
			}
			return e.StringValue(r.message), nil
		}),
	}
	return newModule(e, "io", exports), true
}
