package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mjcompiler/mjc/internal/config"
	"github.com/mjcompiler/mjc/internal/semantic"
)

var (
	analyzeConfigPath string
	analyzeDumpTable  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Run the semantic analyzer over MJ source",
	Long: `Parse MJ source and run the semantic analyzer, printing any
diagnostics. A capacity overflow (scope stack, symbol table, or
attribute pool) aborts analysis and exits non-zero, matching how the
analyzer itself reports an Abort-severity diagnostic.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "YAML file overriding the default capacities")
	analyzeCmd.Flags().BoolVar(&analyzeDumpTable, "symbols", false, "print the symbol table after analysis")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	src, err := readInput(args)
	if err != nil {
		return err
	}

	cfg := semantic.DefaultConfig()
	if analyzeConfigPath != "" {
		cfg, err = config.Load(analyzeConfigPath)
		if err != nil {
			return err
		}
	}

	a, _, err := analyzeSource(src, cfg)
	if err != nil {
		return err
	}

	if len(a.Reporter.Errors) > 0 {
		fmt.Print(a.Reporter.Dump())
	}
	if a.Reporter.Aborted {
		return fmt.Errorf("analysis aborted")
	}

	if analyzeDumpTable {
		fmt.Print(a.Table.PrintTable())
	}
	return nil
}
