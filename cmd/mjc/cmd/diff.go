package cmd

import (
	"fmt"
	"os"

	"github.com/gkampitakis/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/mjcompiler/mjc/internal/semantic"
)

var diffCmd = &cobra.Command{
	Use:   "diff <file-a> <file-b>",
	Short: "Diff the symbol-table dumps of two MJ source files",
	Long: `Analyze two MJ source files independently and print a line-level
diff between their symbol-table dumps. Useful for spotting exactly what
a change to a class adds, removes, or renames at the symbol level.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	dumpA, err := dumpFile(args[0])
	if err != nil {
		return err
	}
	dumpB, err := dumpFile(args[1])
	if err != nil {
		return err
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(dumpA, dumpB, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	fmt.Println(dmp.DiffPrettyText(diffs))
	return nil
}

func dumpFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	a, _, err := analyzeSource(string(data), semantic.DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if a.Reporter.Aborted {
		return "", fmt.Errorf("%s: analysis aborted\n%s", path, a.Reporter.Dump())
	}
	return a.Table.PrintTable(), nil
}
