package semantic

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// columns is the exact header spec.md section 6 requires for the
// symbol-table debug dump, in order.
var columns = []string{"Name", "Nest", "Tree", "Predefined", "Kind", "Type", "Value", "Offset", "Dimension", "ArgNum"}

var columnAttr = map[string]AttrKind{
	"Nest":       KNest,
	"Tree":       KTree,
	"Predefined": KPredefined,
	"Kind":       KSymKind,
	"Type":       KType,
	"Value":      KValue,
	"Offset":     KOffset,
	"Dimension":  KDimen,
	"ArgNum":     KArgNum,
}

// PrintTable renders every declared symbol as one row, in declaration
// (SymId) order. An attribute a symbol does not carry is rendered as
// an empty cell rather than a placeholder value, matching spec.md
// section 6's "omission of unset attributes" rule. Columns are
// tab-aligned with text/tabwriter: no third-party library in the
// corpus does aligned fixed-width table rendering, so this is the one
// place this package reaches past it (see DESIGN.md).
func (t *SymbolTable) PrintTable() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 2, 2, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(columns, "\t"))

	for id := 1; id <= len(t.entries); id++ {
		sym := SymId(id)
		row := make([]string, len(columns))
		row[0] = t.cellText(sym, KName)
		for i := 1; i < len(columns); i++ {
			row[i] = t.cellText(sym, columnAttr[columns[i]])
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	w.Flush()
	return sb.String()
}

func (t *SymbolTable) cellText(sym SymId, kind AttrKind) string {
	v, ok := t.lookupAttr(sym, kind)
	if !ok {
		return ""
	}
	switch kind {
	case KName:
		text, _ := t.names.Lookup(v.AsName())
		return text
	case KPredefined:
		if v.AsBool() {
			return "yes"
		}
		return "no"
	case KSymKind:
		return v.AsSymKind().String()
	case KType:
		return describeType(t, v.AsNode())
	case KTree, KValue:
		return describeValueNode(v.AsNode(), t.names)
	default:
		return fmt.Sprintf("%d", v.AsInt())
	}
}
