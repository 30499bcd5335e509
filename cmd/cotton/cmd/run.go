package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/lis05/cotton-go/internal/builtins"
	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/gc"
	"github.com/lis05/cotton-go/internal/ident"
	"github.com/lis05/cotton-go/internal/lexer"
	"github.com/lis05/cotton-go/internal/parser"
	"github.com/lis05/cotton-go/internal/source"
)

var (
	evalExpr     string
	dumpAST      bool
	showTime     bool
	showGCStats  bool
	maxCallDepth int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Cotton script",
	Long: `Execute a Cotton program from a file or inline expression.

Examples:
  # Run a script file
  cotton run script.ctn

  # Evaluate an inline expression
  cotton run -e "print(1 + 2);"

  # Run with AST dump (for debugging)
  cotton run --dump-ast script.ctn`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&showTime, "time", false, "print wall-clock execution time on exit")
	runCmd.Flags().BoolVar(&showGCStats, "gc-stats", false, "print collector statistics on exit")
	runCmd.Flags().IntVar(&maxCallDepth, "max-call-depth", 0, "override the maximum scripted call depth (0 uses the default)")
}

func runScript(_ *cobra.Command, args []string) error {
	var input string
	var filename string

	switch {
	case evalExpr != "":
		input = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	files := source.NewFiles()
	fileID := files.Add(filename)
	diag := source.NewManager(os.Stdout, files)

	idents := ident.NewTable()

	l := lexer.New(input, fileID)
	p := parser.New(l, idents, fileID)
	program := p.ParseProgram()

	errs := append(append([]*source.Diagnostic{}, l.Errors()...), p.Errors()...)
	if len(errs) > 0 {
		for _, d := range errs {
			fmt.Fprintln(os.Stderr, d.Render(files))
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if dumpAST {
		fmt.Println("AST:")
		pretty.Println(program)
		fmt.Println()
	}

	cfg := evaluator.DefaultConfig()
	cfg.SourceFile = filename
	if maxCallDepth > 0 {
		cfg.MaxCallDepth = maxCallDepth
	}

	heap := gc.New(
		gc.WithThresholdMin(cfg.GCThresholdMin),
		gc.WithGrowthFactor(cfg.GCGrowthFactor),
	)

	rt := evaluator.New(diag, heap, idents, cfg, builtins.Register)

	start := time.Now()
	_, evalDiag := rt.Run(program, false)
	elapsed := time.Since(start)

	if evalDiag != nil {
		diag.Report(evalDiag)
		return fmt.Errorf("execution failed")
	}

	if showTime {
		fmt.Printf("TIME: %f\n", elapsed.Seconds())
	}

	if showGCStats {
		stats := heap.Stats()
		fmt.Fprintf(os.Stderr, "gc: cycles=%d live=%d alloc_since_cycle=%d total_allocated=%d total_reclaimed=%d\n",
			stats.Cycles, stats.LiveAfterCycle, stats.AllocSinceCycle, stats.TotalAllocated, stats.TotalReclaimed)
	}

	return nil
}
