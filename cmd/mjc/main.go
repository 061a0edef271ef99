// Command mjc is the MJ front-end CLI: lexing, parsing, semantic
// analysis, and inspection of the result, with no code generation or
// execution.
package main

import (
	"os"

	"github.com/mjcompiler/mjc/cmd/mjc/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
