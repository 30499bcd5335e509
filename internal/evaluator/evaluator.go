// Package evaluator implements the recursive AST-walking execution core
// of a tree-walking evaluator: per-node dispatch, operator and method dispatch
// through the object model's Type, and flag-based propagation of
// break/continue/return signals — following a single giant
// Eval(node) switch (internal/interp/interpreter.go) and its
// breakSignal/continueSignal/exitSignal struct fields, generalized to
// Cotton's C-brace grammar and explicit garbage collector.
package evaluator

import (
	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/gc"
	"github.com/lis05/cotton-go/internal/ident"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/scope"
	"github.com/lis05/cotton-go/internal/source"
)

// ModuleLoader resolves a native module by name, in place of dlopen'd
// shared libraries ("Module load" is implemented as a static
// compile-time registry here — see SPEC_FULL.md §4.7 for why dynamic
// loading is out of scope).
type ModuleLoader func(rt *Evaluator) (object.Value, bool)

// Evaluator walks a parsed Program, owning the scope/context stack, the
// type registry, the garbage-collected heap, and the diagnostic manager
// every error is reported through.
type Evaluator struct {
	Scope    *scope.Stack
	Types    *object.Registry
	Heap     *gc.Heap
	Idents   *ident.Table
	Diag     *source.Manager
	Modules  map[string]ModuleLoader
	Config   *Config

	// callDepth tracks live scripted-function frames, checked against
	// Config.MaxCallDepth on every call (internal/evaluator/calls.go's
	// callScripted), enforcing a call-depth guard.
	callDepth int

	// Singletons pinned as GC roots regardless of scope reachability,
	// part of the GC root set.
	True, False, Nothing object.Value

	// functionType and the primitive types below are the single Type
	// instances every literal or array value is tagged with; set once
	// by the builtins package during registration.
	functionType *object.Type
	integerType  *object.Type
	realType     *object.Type
	stringType   *object.Type
	characterType *object.Type
	arrayType    *object.Type

	// operandStack holds every intermediate Value currently live on the
	// Go call stack during expression evaluation, so the collector can
	// treat it as a root even though no scope frame references it yet.
	operandStack []object.Value

	// signal carries an in-flight break/continue/return, checked after
	// every statement and cleared by the construct that handles it.
	signal controlSignal
}

type signalKind int

const (
	signalNone signalKind = iota
	signalBreak
	signalContinue
	signalReturn
)

type controlSignal struct {
	kind  signalKind
	value object.Value
}

// New creates an Evaluator with an empty scope stack, a fresh type
// registry populated by register (the built-ins package's entry point),
// and the given diagnostic manager and GC heap. A nil cfg falls back to
// DefaultConfig. idents must be the same table the lexer/parser interned
// identifiers into — register's method/global names are interned against
// it too, so scripted and built-in lookups resolve to the same IDs.
func New(diag *source.Manager, heap *gc.Heap, idents *ident.Table, cfg *Config, register func(*Evaluator)) *Evaluator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if idents == nil {
		idents = ident.NewTable()
	}
	e := &Evaluator{
		Scope:   scope.NewStack(),
		Types:   object.NewRegistry(),
		Heap:    heap,
		Idents:  idents,
		Diag:    diag,
		Modules: make(map[string]ModuleLoader, 8),
		Config:  cfg,
	}
	register(e)
	return e
}

// Files exposes the diagnostic manager's file table, satisfying
// object.Evaluator.
func (e *Evaluator) Files() *source.Files { return e.Diag.Files }

// Register tracks v with the GC heap, satisfying object.Evaluator.
func (e *Evaluator) Register(v object.Value) {
	e.Heap.Register(v)
}

// SubArea resolves the i'th operand's source area from the innermost
// open evaluation context, satisfying object.Evaluator. Operator and
// method adapters call this to blame the specific operand a type/range
// error is about, rather than the whole expression's span (spec.md
// §4.2's sub-area diagnostic contract).
func (e *Evaluator) SubArea(i int) source.Area {
	return e.Scope.SubArea(i)
}

// pushOperand records v as live on the evaluator's Go call stack, for
// the duration the caller holds a reference to it without yet having
// stored it anywhere a scope frame can see.
func (e *Evaluator) pushOperand(v object.Value) {
	e.operandStack = append(e.operandStack, v)
}

func (e *Evaluator) popOperand() {
	if len(e.operandStack) > 0 {
		e.operandStack = e.operandStack[:len(e.operandStack)-1]
	}
}

// GCRoots implements gc.Root: every live scope-frame binding, the
// pinned singletons, and the in-flight operand stack.
func (e *Evaluator) GCRoots() []object.Value {
	roots := e.Scope.Roots()
	roots = append(roots, e.True, e.False, e.Nothing)
	roots = append(roots, e.operandStack...)
	return roots
}

// safePoint runs a GC cycle if the trigger policy calls for one. The
// evaluator only calls this between whole statements, never mid-
// expression, so every transient value is either rooted via
// operandStack or already stored (the safe-point rule).
func (e *Evaluator) safePoint() {
	if e.Heap.ShouldTrigger() {
		e.Heap.Cycle(e)
	}
}

// Run executes prog to completion, returning the value of its last
// top-level expression statement if resultNeeded, or Nothing otherwise.
func (e *Evaluator) Run(prog *ast.Program, resultNeeded bool) (object.Value, *source.Diagnostic) {
	var last object.Value = e.Nothing
	for _, stmt := range prog.Statements {
		v, diag := e.execStatement(stmt)
		if diag != nil {
			return object.Value{}, diag
		}
		last = v
		e.safePoint()
		if e.signal.kind != signalNone {
			break
		}
	}
	if resultNeeded {
		return last, nil
	}
	return e.Nothing, nil
}

// CallFunction implements object.Evaluator: invoke a Function value
// (builtin or scripted) with already-evaluated args.
func (e *Evaluator) CallFunction(fn object.Value, args []object.Value, area source.Area) (object.Value, *source.Diagnostic) {
	return e.callFunction(fn, args, area)
}
