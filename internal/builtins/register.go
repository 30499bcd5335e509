// Package builtins installs every built-in Type (Integer, Real, Boolean,
// Character, String, Array, Function, Nothing), the always-available
// global functions (print, argg, read), and the native module registry
// (gc, io, random, glob, json) into a freshly created Evaluator,
// mirroring the reference implementation's library_load_point contract
// (original_source/cotton_modules/*.cpp) with a static Go registry in
// place of dlopen.
package builtins

import (
	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/ident"
	"github.com/lis05/cotton-go/internal/object"
)

// Register is the entry point passed to evaluator.New: it installs every
// built-in type, pins the true/false/nothing singletons, binds the
// always-available global functions, and registers native module
// loaders under the names `import` resolves against.
func Register(e *evaluator.Evaluator) {
	functionType := registerFunctionType(e)
	e.SetFunctionType(functionType)

	nothingType := registerNothingType(e, functionType)
	booleanType := registerBooleanType(e, functionType)
	integerType := registerIntegerType(e, functionType)
	realType := registerRealType(e, functionType)
	characterType := registerCharacterType(e, functionType)
	stringType := registerStringType(e, functionType)
	arrayType := registerArrayType(e, functionType)
	e.SetIntegerType(integerType)
	e.SetRealType(realType)
	e.SetStringType(stringType)
	e.SetCharacterType(characterType)
	e.SetArrayType(arrayType)

	nothing := object.Value{Type: nothingType, Kind: object.KindInstance, Payload: nil}
	trueVal := object.Value{Type: booleanType, Kind: object.KindInstance, Payload: true}
	falseVal := object.Value{Type: booleanType, Kind: object.KindInstance, Payload: false}
	e.SetBooleanSingletons(trueVal, falseVal, nothing)

	// Bind every built-in type's own name to its type-itself Value, the
	// same way a `record` declaration binds its declared name, so
	// read(Integer) (registerGlobalRead below) and comparisons such as
	// `Integer == Integer` can name a primitive type the way scripted code
	// names a record type. make(...) does not use these bindings; it
	// resolves the type through the type registry.
	for _, t := range []*object.Type{nothingType, booleanType, integerType, realType, characterType, stringType, arrayType, functionType} {
		bindGlobal(e, t.Name, object.NewType(t))
	}

	registerGlobals(e)
	registerGlobalRead(e)

	e.Modules["gc"] = loadGCModule
	e.Modules["io"] = loadIOModule
	e.Modules["random"] = loadRandomModule
	e.Modules["glob"] = loadGlobModule
	e.Modules["json"] = loadJSONModule
}

func internMethod(e *evaluator.Evaluator, t *object.Type, name string, factory func(self object.Value) object.Value) {
	t.Methods[ident.ID(e.Idents.Intern(name))] = factory
}

func bindGlobal(e *evaluator.Evaluator, name string, fn object.Value) {
	e.Scope.AddVariable(ident.ID(e.Idents.Intern(name)), fn)
}

func newInternalFunction(e *evaluator.Evaluator, functionType *object.Type, name string, impl object.InternalFunc) object.Value {
	v := object.Value{
		Type: functionType,
		Kind: object.KindInstance,
		Payload: &object.Function{
			Kind:     object.FunctionInternal,
			Name:     name,
			Internal: impl,
		},
	}
	return v
}
