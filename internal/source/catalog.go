package source

// Error Message Catalog
//
// Standardized message formats, grouped by category, so diagnostics read
// consistently across the lexer, parser, and evaluator. Mirrors the
// common error-catalog layout and message-format
// conventions: lowercase start, present tense, operands named.

// Type-error messages.
const (
	MsgTypeMismatch       = "%s does not support operator %s"
	MsgUnsupportedOperand = "operator %s has no adapter for operand %d of type %s"
	MsgCannotCoerce       = "cannot coerce %s to %s: no %s method"
	MsgWrongArgCount      = "expected %d argument(s), got %d"
	MsgNotCallable        = "value of type %s is not callable"
	MsgNoSuchField        = "type %s has no field or method %q"
)

// Name-error messages.
const (
	MsgUndefinedName = "undefined name %q"
	MsgUndefinedType = "undefined type %q"
)

// Range-error messages.
const (
	MsgIndexOutOfBounds = "index %d out of bounds for size %d"
	MsgNegativeSize     = "size must be >= 0, got %d"
)

// Arithmetic-error messages.
const (
	MsgDivByZero = "division by zero"
	MsgModByZero = "modulo by zero"
)

// Module-error messages.
const (
	MsgModuleNotFound    = "no native module registered under name %q"
	MsgModuleLoadFailed  = "module %q failed to load: %s"
)

// Fatal-error messages.
const (
	MsgAllocFailed      = "allocation failed"
	MsgInvariantBroken  = "internal invariant violated: %s"
	MsgStackOverflow    = "call depth exceeded %d, possible infinite recursion"
)
