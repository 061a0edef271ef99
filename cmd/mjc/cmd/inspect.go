package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mjcompiler/mjc/internal/astexport"
	"github.com/mjcompiler/mjc/internal/semantic"
)

var (
	inspectRaw  bool
	inspectList string
	inspectSet  string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file] [path]",
	Short: "Query the JSON export of an analyzed program",
	Long: `Analyze MJ source, export its class/field/method structure as JSON
(the hand-off artifact a downstream code generator would consume), and
either query it at a gjson path, list the paths matching a glob, patch
a value, or print the raw pretty-printed export.

Examples:
  mjc inspect prog.mj classes.Account.fields.0.name
  mjc inspect prog.mj --list 'classes.*.methods.*.name'
  mjc inspect prog.mj --raw`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectRaw, "raw", false, "print the full pretty-printed export")
	inspectCmd.Flags().StringVar(&inspectList, "list", "", "list exported paths matching a glob")
	inspectCmd.Flags().StringVar(&inspectSet, "set", "", "patch a path to a literal value before printing (path=value)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	src, err := readInput(args[:1])
	if err != nil {
		return err
	}

	a, names, err := analyzeSource(src, semantic.DefaultConfig())
	if err != nil {
		return err
	}
	if a.Reporter.Aborted {
		fmt.Print(a.Reporter.Dump())
		return fmt.Errorf("analysis aborted")
	}

	prog := astexport.Export(a.Table, names)
	data, err := astexport.Marshal(prog)
	if err != nil {
		return err
	}

	if inspectSet != "" {
		path, value, ok := splitSetFlag(inspectSet)
		if !ok {
			return fmt.Errorf("--set expects path=value, got %q", inspectSet)
		}
		data, err = astexport.Patch(data, path, value)
		if err != nil {
			return err
		}
	}

	switch {
	case inspectList != "":
		paths, err := astexport.ListPaths(data, inspectList)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(p)
		}
	case inspectRaw:
		fmt.Println(string(astexport.Pretty(data)))
	case len(args) == 2:
		value, err := astexport.Query(data, args[1])
		if err != nil {
			return err
		}
		fmt.Println(value)
	default:
		fmt.Println(string(astexport.Pretty(data)))
	}
	return nil
}

func splitSetFlag(raw string) (path, value string, ok bool) {
	for i := 0; i < len(raw); i++ {
		if raw[i] == '=' {
			return raw[:i], raw[i+1:], true
		}
	}
	return "", "", false
}
