// Command cotton is the reference command-line driver for the Cotton
// scripting language: it lexes, parses, and evaluates a script file (or
// an inline -e expression), reporting diagnostics through the same
// source.Manager the interpreter uses internally.
package main

import (
	"os"

	"github.com/lis05/cotton-go/cmd/cotton/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
