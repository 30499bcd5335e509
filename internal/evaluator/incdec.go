package evaluator

import (
	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// evalIncDec evaluates a pre/post increment or decrement. Unlike every
// other operator, these need write access to the operand's storage
// location, not just its value, so they are intercepted before the
// generic dispatchOperator path (evalOperator) and handled here: read
// the current value, invoke the PREINC/POSTINC/PREDEC/POSTDEC slot on
// its type to compute the stepped value, write the stepped value back
// to the same identifier/field/element the operand named, and return
// either the stepped value (prefix) or the original value (postfix).
// The slot builds the stepped value as a new Value rather than mutating
// the operand, so the postfix forms return old without copying it.
func (e *Evaluator) evalIncDec(x *ast.OperatorExpr) (object.Value, *source.Diagnostic) {
	target := x.Operands[0]

	old, diag := e.evalExpression(target)
	if diag != nil {
		return object.Value{}, diag
	}

	targetArea := target.Pos()
	if old.Type == nil {
		return object.Value{}, source.NewWithSubArea(source.CategoryType, areaPtr(x.Area), &targetArea, source.MsgUnsupportedOperand, x.Kind.String(), 0, "nothing")
	}
	slot := old.Type.Operator(x.Kind)
	if slot == nil {
		return object.Value{}, source.NewWithSubArea(source.CategoryType, areaPtr(x.Area), &targetArea, source.MsgUnsupportedOperand, x.Kind.String(), 0, old.TypeName())
	}

	e.Scope.PushContext(x.Area, []source.Area{target.Pos()})
	stepped, diag := slot(e, []object.Value{old}, x.Area)
	e.Scope.PopContext()
	if diag != nil {
		return object.Value{}, diag
	}
	stepped = stepped.ClearSingleUse()

	if diag := e.assignTo(target, stepped); diag != nil {
		return object.Value{}, diag
	}

	if x.Kind == ast.PREINC || x.Kind == ast.PREDEC {
		return stepped, nil
	}
	return old, nil
}
