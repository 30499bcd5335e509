package evaluator_test

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/lis05/cotton-go/internal/ast"
	"github.com/lis05/cotton-go/internal/builtins"
	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/gc"
	"github.com/lis05/cotton-go/internal/ident"
	"github.com/lis05/cotton-go/internal/lexer"
	"github.com/lis05/cotton-go/internal/parser"
	"github.com/lis05/cotton-go/internal/source"
)

// buildRuntime lexes and parses src, then wires a fresh Evaluator over
// it exactly the way cmd/cotton/cmd's runScript does, returning
// everything the test needs to run it and inspect the result.
func buildRuntime(t *testing.T, src string) (rt *evaluator.Evaluator, program *ast.Program, out *bytes.Buffer, files *source.Files) {
	t.Helper()

	files = source.NewFiles()
	fileID := files.Add("<test>")
	out = &bytes.Buffer{}
	diag := source.NewTestManager(out, files)

	idents := ident.NewTable()
	l := lexer.New(src, fileID)
	p := parser.New(l, idents, fileID)
	program = p.ParseProgram()

	if errs := append(append([]*source.Diagnostic{}, l.Errors()...), p.Errors()...); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	heap := gc.New()
	rt = evaluator.New(diag, heap, idents, evaluator.DefaultConfig(), builtins.Register)
	return rt, program, out, files
}

// runScript lexes, parses, and evaluates src, returning everything
// written via print(). Mirrors the
// common runFixtureTest harness pattern,
// scaled down to the handful of end-to-end scenarios the worked
// examples name explicitly.
func runScript(t *testing.T, src string) string {
	t.Helper()
	rt, program, out, files := buildRuntime(t, src)

	if _, evalDiag := rt.Run(program, false); evalDiag != nil {
		t.Fatalf("evaluation failed: %s", evalDiag.Render(files))
	}

	return out.String()
}

// TestEndToEndScenarios runs the worked examples verbatim: a literal
// arithmetic expression, an array filter with a function literal, a
// recursive factorial, String.append, Array.sort with a user
// comparator, and a user-defined record's field arithmetic.
func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"arithmetic", `print(1+2*3);`},
		{"array_filter", `a = [1,2,3,4]; print(a.filter(function(x){ return x%2==0; }));`},
		{"recursive_factorial", `function fact(n){ if n<=1 { return 1; } return n*fact(n-1); } print(fact(10));`},
		{"string_append", `s = "ab"; s.append("cd"); print(s);`},
		{"array_sort", `a = [3,1,2]; a.sort(function(x,y){ return x<y; }); print(a);`},
		{"record_fields", `record Pt { x; y; } p = make(Pt); p.x = 1; p.y = 2; print(p.x + p.y);`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runScript(t, tt.src)
			snaps.MatchSnapshot(t, got)
		})
	}
}

func TestArgumentBindingDefaults(t *testing.T) {
	got := runScript(t, `function f(a, b) { print(a); print(b); } f(1);`)
	snaps.MatchSnapshot(t, got)
}

func TestArggObservesExtraArguments(t *testing.T) {
	got := runScript(t, `function f(a) { print(argg(1)); } f(1, 2);`)
	snaps.MatchSnapshot(t, got)
}

func TestShortCircuitEvaluation(t *testing.T) {
	got := runScript(t, `function boom(){ print("boom"); return true; } print(false and boom()); print(true or boom());`)
	snaps.MatchSnapshot(t, got)
}

// runScriptError is runScript's counterpart for scenarios expected to
// fail: it returns the diagnostic instead of failing the test.
func runScriptError(t *testing.T, src string) *source.Diagnostic {
	t.Helper()
	rt, program, _, _ := buildRuntime(t, src)

	_, evalDiag := rt.Run(program, false)
	if evalDiag == nil {
		t.Fatalf("expected evaluation to fail for %q", src)
	}
	return evalDiag
}

func TestIndexOutOfBoundsIsRangeError(t *testing.T) {
	diag := runScriptError(t, `a = [1,2,3]; print(a[3]);`)
	if diag.Category != source.CategoryRange {
		t.Fatalf("expected a range error, got %v: %s", diag.Category, diag.Message)
	}
}

func TestNegativeIndexIsRangeError(t *testing.T) {
	diag := runScriptError(t, `a = [1,2,3]; print(a[-1]);`)
	if diag.Category != source.CategoryRange {
		t.Fatalf("expected a range error, got %v: %s", diag.Category, diag.Message)
	}
}

func TestUnsupportedOperatorIsTypeError(t *testing.T) {
	diag := runScriptError(t, `print(true + false);`)
	if diag.Category != source.CategoryType {
		t.Fatalf("expected a type error, got %v: %s", diag.Category, diag.Message)
	}
}

func TestUndefinedNameIsNameError(t *testing.T) {
	diag := runScriptError(t, `print(undefinedVariable);`)
	if diag.Category != source.CategoryName {
		t.Fatalf("expected a name error, got %v: %s", diag.Category, diag.Message)
	}
}

func TestNegativeResizeIsRangeError(t *testing.T) {
	diag := runScriptError(t, `a = [1,2,3]; a.resize(-1);`)
	if diag.Category != source.CategoryRange {
		t.Fatalf("expected a range error, got %v: %s", diag.Category, diag.Message)
	}
}

func TestArrayDeepCopyIsIndependent(t *testing.T) {
	got := runScript(t, `a = [1,2,3]; b = a.copy(); b[0] = 99; print(a); print(b); print(a == b);`)
	snaps.MatchSnapshot(t, got)
}

func TestEqualityOnTypeItselfValues(t *testing.T) {
	got := runScript(t, `print(Integer == Integer); print(Integer == Real);`)
	snaps.MatchSnapshot(t, got)
}

func TestRecordEqualityIsStructural(t *testing.T) {
	got := runScript(t, `record Pt { x; y; } a = make(Pt); a.x = 1; a.y = 2; b = make(Pt); b.x = 1; b.y = 2; print(a == b); print(a == a);`)
	snaps.MatchSnapshot(t, got)
}

func TestReverseTwiceRestoresOriginal(t *testing.T) {
	got := runScript(t, `a = [1,2,3]; a.reverse(); a.reverse(); print(a);`)
	snaps.MatchSnapshot(t, got)
}

func TestGCReclaimsUnreferencedIntermediates(t *testing.T) {
	got := runScript(t, `import "gc"; gc.ping(); for (i = 0; i < 50; i = i + 1) { x = [i, i, i]; } gc.ping(); s = gc.status(); print(s.total_reclaimed); print("done");`)
	snaps.MatchSnapshot(t, got)
}

func TestMissingArgumentsDefaultToNothing(t *testing.T) {
	got := runScript(t, `function f(a, b) { print(b == nothing); } f(1);`)
	snaps.MatchSnapshot(t, got)
}
