package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mjcompiler/mjc/internal/ast"
	"github.com/mjcompiler/mjc/internal/intern"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse MJ source and print its syntax tree",
	Long: `Parse MJ source code and print the abstract syntax tree.

If no file is given, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := readInput(args)
	if err != nil {
		return err
	}

	names := intern.New()
	root, err := parseSource(src, names)
	if err != nil {
		return err
	}

	fmt.Print(ast.PrintTree(root, names))
	return nil
}
