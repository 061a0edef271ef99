package cmd

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/spf13/cobra"

	"github.com/mjcompiler/mjc/internal/semantic"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [file]",
	Short: "List declared symbols in natural-sort order",
	Long: `Analyze MJ source and print every declared symbol's name and kind,
sorted in natural order (so Field2 sorts before Field10). This is a
read-only display view; it does not affect the golden-file symbol-table
dump format, which stays in declaration order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
}

func runSymbols(cmd *cobra.Command, args []string) error {
	src, err := readInput(args)
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

	type row struct {
		name string
		kind string
	}
	var rows []row
	for id := 1; id <= a.Table.EntryCount(); id++ {
		sym := semantic.SymId(id)
		nameID := a.Table.GetAttr(sym, semantic.KName).AsName()
		name, ok := names.Lookup(nameID)
		if !ok {
			continue
		}
		rows = append(rows, row{name: name, kind: a.Table.GetAttr(sym, semantic.KSymKind).AsSymKind().String()})
	}

	sort.Slice(rows, func(i, j int) bool {
		return natural.Less(rows[i].name, rows[j].name)
	})

	for _, r := range rows {
		fmt.Printf("%s\t%s\n", r.name, r.kind)
	}
	return nil
}
