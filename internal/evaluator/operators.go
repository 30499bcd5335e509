package evaluator

import (
	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// evalOperator establishes a context whose area is the operator node's
// own span and whose sub-areas are each operand's span,
// evaluates operands left-to-right (short-circuiting AND/OR on the
// left operand's truthiness), and dispatches the operator slot.
func (e *Evaluator) evalOperator(x *ast.OperatorExpr) (object.Value, *source.Diagnostic) {
	if x.Kind == ast.OPAND || x.Kind == ast.OPOR {
		return e.evalShortCircuit(x)
	}
	switch x.Kind {
	case ast.PREINC, ast.POSTINC, ast.PREDEC, ast.POSTDEC:
		return e.evalIncDec(x)
	}

	operands := make([]object.Value, 0, len(x.Operands))
	subAreas := make([]source.Area, 0, len(x.Operands))
	for _, operandExpr := range x.Operands {
		v, diag := e.evalExpression(operandExpr)
		if diag != nil {
			return object.Value{}, diag
		}
		operands = append(operands, v)
		subAreas = append(subAreas, operandExpr.Pos())
	}
	return e.dispatchOperator(x.Kind, operands, x.Area, subAreas)
}

func (e *Evaluator) evalShortCircuit(x *ast.OperatorExpr) (object.Value, *source.Diagnostic) {
	left, diag := e.evalExpression(x.Operands[0])
	if diag != nil {
		return object.Value{}, diag
	}
	leftTruthy, diag := e.truthy(left, x.Operands[0].Pos())
	if diag != nil {
		return object.Value{}, diag
	}
	if x.Kind == ast.OPAND && !leftTruthy {
		return e.False, nil
	}
	if x.Kind == ast.OPOR && leftTruthy {
		return e.True, nil
	}
	right, diag := e.evalExpression(x.Operands[1])
	if diag != nil {
		return object.Value{}, diag
	}
	rightTruthy, diag := e.truthy(right, x.Operands[1].Pos())
	if diag != nil {
		return object.Value{}, diag
	}
	if rightTruthy {
		return e.True, nil
	}
	return e.False, nil
}

// dispatchOperator pushes a context, resolves the receiver's operator
// slot, and invokes it, per the dispatch consistency rule: a
// slot implementation may itself call back into the evaluator (Array
// equality calling EQ per-element), and those recursive calls push/pop
// their own contexts correctly because each call to dispatchOperator
// manages its own context push/pop.
func (e *Evaluator) dispatchOperator(kind ast.OperatorKind, operands []object.Value, area source.Area, subAreas []source.Area) (object.Value, *source.Diagnostic) {
	e.Scope.PushContext(area, subAreas)
	defer e.Scope.PopContext()

	if len(operands) == 0 || operands[0].Type == nil {
		sub := e.Scope.SubArea(0)
		return object.Value{}, source.NewWithSubArea(source.CategoryType, areaPtr(area), areaPtr(sub), source.MsgUnsupportedOperand, kind.String(), 0, "nothing")
	}
	// A type-itself operand has no payload for an instance slot to read:
	// two type-itself values are equal when they name the same Type, and a
	// type-itself value never equals an instance.
	if (kind == ast.EQ || kind == ast.NEQ) && len(operands) == 2 &&
		(operands[0].Kind == object.KindTypeItself || operands[1].Kind == object.KindTypeItself) {
		same := operands[0].Kind == operands[1].Kind && operands[0].Type == operands[1].Type
		if kind == ast.NEQ {
			same = !same
		}
		return e.BoolValue(same), nil
	}
	slot := operands[0].Type.Operator(kind)
	if slot == nil {
		sub := e.Scope.SubArea(0)
		return object.Value{}, source.NewWithSubArea(source.CategoryType, areaPtr(area), areaPtr(sub), source.MsgUnsupportedOperand, kind.String(), 0, operands[0].TypeName())
	}
	v, diag := slot(e, operands, area)
	if diag != nil {
		return object.Value{}, diag
	}
	return v.SingleUse(), nil
}

// truthy coerces v via its type's __bool__ magic method, falling back
// to the default value-derived rule for primitives that
// don't install one (nonzero numeric, nonzero character, nonempty
// string, true boolean).
func (e *Evaluator) truthy(v object.Value, area source.Area) (bool, *source.Diagnostic) {
	if v.Type != nil && v.Type.Bool != nil {
		result, diag := v.Type.Bool(e, v, area)
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
