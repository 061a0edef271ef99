package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "mjc",
	Short: "Front end for the MJ language",
	Long: `mjc is the lexer, parser, and semantic analyzer for MJ, a small
case-insensitive class-and-method language.

It does not generate code or execute programs: mjc parses a source file,
resolves every declaration and use against a flat symbol table, and
hands the result off in one of several forms (a printed AST, a
symbol-table dump, or a JSON export for a downstream code generator).`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Main runs the CLI and returns a process exit code. It is the shape
// testscript.RunMain needs to register "mjc" as an in-process command
// for the black-box CLI tests under cmd/mjc/testdata/script.
func Main() int {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
