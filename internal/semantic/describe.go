package semantic

import (
	"fmt"
	"strings"

	"github.com/mjcompiler/mjc/internal/ast"
	"github.com/mjcompiler/mjc/internal/intern"
)

// describeType renders a Type attribute's TypeIdOp subtree as a
// compact single-line string for the symbol-table dump: "int",
// "int[]", "int[][]" for array dimensions, or the referenced class's
// name. A class type starts out as an IdRef (IntVal is the raw
// interned name) and is rewritten in place to a SymRef once typeID
// resolves it (IntVal is then a SymId into t, not a NameId), so the
// two cases need different lookups: IdRef reads names directly,
// SymRef goes through the owning table's Name attribute.
func describeType(t *SymbolTable, n *ast.Node) string {
	if ast.IsNull(n) {
		return ""
	}
	base := ast.Left(n)
	var sb strings.Builder
	switch ast.KindOf(base) {
	case ast.IntType:
		sb.WriteString("int")
	case ast.IdRef:
		if t != nil && t.names != nil {
			if text, ok := t.names.Lookup(intern.NameId(ast.IntOf(base))); ok {
				sb.WriteString(text)
			}
		}
	case ast.SymRef:
		if t != nil {
			sb.WriteString(t.cellText(SymId(ast.IntOf(base)), KName))
		}
	default:
		sb.WriteString("?")
	}
	for cur := ast.Right(n); !ast.IsNull(cur) && ast.OpOf(cur) == ast.IndexOp; cur = ast.Right(cur) {
		sb.WriteString("[]")
	}
	return sb.String()
}

// describeValueNode renders a Tree/Value attribute's AST-node-pointer
// payload as a short label rather than a full tree dump, since the
// symbol-table dump is one row per line.
func describeValueNode(n *ast.Node, names *intern.Table) string {
	if ast.IsNull(n) {
		return ""
	}
	switch ast.KindOf(n) {
	case ast.IntLit:
		return fmt.Sprintf("%d", ast.IntOf(n))
	case ast.CharLit:
		return fmt.Sprintf("'%c'", rune(ast.IntOf(n)))
	case ast.StringLit:
		if names != nil {
			if text, ok := names.Lookup(intern.NameId(ast.IntOf(n))); ok {
				return fmt.Sprintf("%q", text)
			}
		}
		return ""
	case ast.SymRef:
		return fmt.Sprintf("#%d", ast.IntOf(n))
	default:
		return ast.OpOf(n).String()
	}
}
