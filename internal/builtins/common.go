package builtins

import (
	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// Short local aliases for the ast.OperatorKind constants, so the
// per-type operator-slot tables below read as a compact table rather
// than a wall of ast.-qualified names.
const (
	addKind     = ast.ADD
	subKind     = ast.SUB
	multKind    = ast.MULT
	divKind     = ast.DIV
	remKind     = ast.REM
	lshiftKind  = ast.LSHIFT
	rshiftKind  = ast.RSHIFT
	bitandKind  = ast.BITAND
	bitorKind   = ast.BITOR
	bitxorKind  = ast.BITXOR
	notKind     = ast.OPNOT
	invKind     = ast.INVERSE
	negKind     = ast.NEG
	posKind     = ast.POS
	preincKind  = ast.PREINC
	postincKind = ast.POSTINC
	predecKind  = ast.PREDEC
	postdecKind = ast.POSTDEC
	ltKind      = ast.LT
	leqKind     = ast.LEQ
	gtKind      = ast.GT
	geqKind     = ast.GEQ
	eqKind      = ast.EQ
	neqKind     = ast.NEQ
	indexKind   = ast.INDEX
	callKind    = ast.CALL
)

// boundMethod wraps impl as a Function value bound to self, the shape
// every entry in a Type's Methods table returns: a callable Value the
// evaluator's FieldAccessExpr/CallExpr handling treats exactly like any
// other Function, with self prepended to args on invocation (see
// internal/evaluator/calls.go's BoundSelf handling).
func boundMethod(functionType *object.Type, name string, self object.Value, impl object.InternalFunc) object.Value {
	selfCopy := self
	return object.Value{
		Type: functionType,
		Kind: object.KindInstance,
		Payload: &object.Function{
			Kind:      object.FunctionInternal,
			Name:      name,
			Internal:  impl,
			BoundSelf: &selfCopy,
		},
	}
}

// truthyForCaller mirrors the evaluator's own __bool__ coercion
// (internal/evaluator/operators.go's truthy) for methods like
// Array/String.filter that need to coerce a user callback's result
// without access to the evaluator's unexported helper.
func truthyForCaller(rt object.Evaluator, v object.Value, area source.Area) (bool, *source.Diagnostic) {
	if v.Type != nil && v.Type.Bool != nil {
		result, diag := v.Type.Bool(rt, v, area)
		if diag != nil {
			return false, diag
		}
		b, _ := result.Payload.(bool)
		return b, nil
	}
	switch p := v.Payload.(type) {
	case bool:
		return p, nil
	case int64:
		return p != 0, nil
	case float64:
		return p != 0, nil
	case byte:
		return p != 0, nil
	case *object.StringBuf:
		return len(p.Chars) > 0, nil
	default:
		return false, nil
	}
}
