package cmd

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/lis05/cotton-go/internal/ident"
	"github.com/lis05/cotton-go/internal/lexer"
	"github.com/lis05/cotton-go/internal/parser"
	"github.com/lis05/cotton-go/internal/source"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Parse a script and pretty-print its AST",
	Long: `dump parses a Cotton script and renders its AST with kr/pretty,
without evaluating it. Useful for inspecting how the parser built a
particular expression or statement.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	files := source.NewFiles()
	fileID := files.Add(filename)
	idents := ident.NewTable()

	l := lexer.New(string(content), fileID)
	p := parser.New(l, idents, fileID)
	program := p.ParseProgram()

	errs := append(append([]*source.Diagnostic{}, l.Errors()...), p.Errors()...)
	if len(errs) > 0 {
		for _, d := range errs {
			fmt.Fprintln(os.Stderr, d.Render(files))
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	pretty.Println(program)
	return nil
}
