// Package astexport serializes an analyzed program's symbol table to
// JSON, the hand-off artifact spec.md section 1/2 leaves for "a
// downstream code generator (out of scope)". It also backs cmd/mjc's
// inspect subcommand: gjson/sjson/pretty/match query, patch, and
// pretty-print that JSON without round-tripping it through a full
// Go-struct unmarshal.
package astexport

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/match"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/mjcompiler/mjc/internal/ast"
	"github.com/mjcompiler/mjc/internal/intern"
	"github.com/mjcompiler/mjc/internal/semantic"
)

// Symbol is the exported shape of one field or parameter.
type Symbol struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Type      string `json:"type,omitempty"`
	Dimension int    `json:"dimension,omitempty"`
}

// Method is the exported shape of one class method.
type Method struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"` // "function" or "procedure"
	ReturnType string   `json:"returnType,omitempty"`
	ArgNum     int      `json:"argNum"`
	Params     []Symbol `json:"params"`
}

// Class is the exported shape of one class: its declared fields and
// methods, in declaration order.
type Class struct {
	Name    string   `json:"name"`
	Fields  []Symbol `json:"fields"`
	Methods []Method `json:"methods"`
}

// Program is the root of the exported artifact: every user-declared
// class, keyed by name for gjson path queries (`classes.Account.fields`).
// There is no separate flat, declaration-ordered list of classes.
type Program struct {
	Classes map[string]Class `json:"classes"`
}

// Export walks table's flat entries and rebuilds the class/member
// nesting spec.md section 4.2 only implies through Nest levels: a class
// entry's members are every subsequent entry whose Nest is exactly one
// deeper, up to the next entry at the class's own Nest or shallower
// (the same scan internal/semantic.Analyzer.varUse uses to resolve a
// field access). Predefined symbols (system, readln, println) are
// omitted; they have no place in a generated program's own class model.
func Export(table *semantic.SymbolTable, names *intern.Table) *Program {
	prog := &Program{Classes: map[string]Class{}}
	total := table.EntryCount()

	for id := 1; id <= total; id++ {
		sym := semantic.SymId(id)
		if table.IsAttr(sym, semantic.KPredefined) && table.GetAttr(sym, semantic.KPredefined).AsBool() {
			continue
		}
		if table.GetAttr(sym, semantic.KSymKind).AsSymKind() != semantic.Class {
			continue
		}

		nest := int(table.GetAttr(sym, semantic.KNest).AsInt())
		cls := Class{Name: symbolName(table, names, sym)}

		for m := id + 1; m <= total; m++ {
			memberSym := semantic.SymId(m)
			memberNest := int(table.GetAttr(memberSym, semantic.KNest).AsInt())
			if memberNest <= nest {
				break
			}
			if memberNest != nest+1 {
				continue
			}

			switch table.GetAttr(memberSym, semantic.KSymKind).AsSymKind() {
			case semantic.Var, semantic.Arr:
				cls.Fields = append(cls.Fields, fieldOf(table, names, memberSym))
			case semantic.Func, semantic.Proc:
				cls.Methods = append(cls.Methods, methodOf(table, names, memberSym))
			}
		}

		prog.Classes[cls.Name] = cls
	}

	return prog
}

func symbolName(table *semantic.SymbolTable, names *intern.Table, sym semantic.SymId) string {
	id := table.GetAttr(sym, semantic.KName).AsName()
	text, ok := names.Lookup(id)
	if !ok {
		return fmt.Sprintf("#%d", sym)
	}
	return text
}

func fieldOf(table *semantic.SymbolTable, names *intern.Table, sym semantic.SymId) Symbol {
	kind := table.GetAttr(sym, semantic.KSymKind).AsSymKind()
	s := Symbol{Name: symbolName(table, names, sym), Kind: kind.String()}
	if table.IsAttr(sym, semantic.KType) {
		s.Type = typeText(table, names, table.GetAttr(sym, semantic.KType).AsNode())
	}
	if kind == semantic.Arr {
		s.Dimension = int(table.GetAttr(sym, semantic.KDimen).AsInt())
	}
	return s
}

func methodOf(table *semantic.SymbolTable, names *intern.Table, sym semantic.SymId) Method {
	kind := table.GetAttr(sym, semantic.KSymKind).AsSymKind()
	m := Method{
		Name:   symbolName(table, names, sym),
		Kind:   kind.String(),
		ArgNum: int(table.GetAttr(sym, semantic.KArgNum).AsInt()),
	}
	if kind == semantic.Func && table.IsAttr(sym, semantic.KType) {
		m.ReturnType = typeText(table, names, table.GetAttr(sym, semantic.KType).AsNode())
	}

	nest := int(table.GetAttr(sym, semantic.KNest).AsInt())
	total := table.EntryCount()
	for p := int(sym) + 1; p <= total; p++ {
		paramSym := semantic.SymId(p)
		paramNest := int(table.GetAttr(paramSym, semantic.KNest).AsInt())
		if paramNest <= nest {
			break
		}
		if paramNest != nest+1 {
			continue
		}
		paramKind := table.GetAttr(paramSym, semantic.KSymKind).AsSymKind()
		if paramKind != semantic.ValueArg && paramKind != semantic.RefArg {
			continue
		}
		m.Params = append(m.Params, fieldOf(table, names, paramSym))
	}
	return m
}

// typeText renders a TypeIdOp subtree as a display string ("int",
// "Account", "int[]"), the export-side counterpart of
// internal/semantic.describeType (kept separate since that helper is
// unexported and this package only needs the display form, not the
// resolved SymId it also threads through). A class type starts out as
// an IdRef (IntVal is the raw interned name) and is rewritten in place
// to a SymRef once the analyzer resolves it (IntVal is then a SymId
// into table, not a NameId), so the two cases resolve differently.
func typeText(table *semantic.SymbolTable, names *intern.Table, n *ast.Node) string {
	if ast.IsNull(n) {
		return ""
	}
	base := ast.Left(n)
	var text string
	switch ast.KindOf(base) {
	case ast.IntType:
		text = "int"
	case ast.IdRef:
		if name, ok := names.Lookup(intern.NameId(ast.IntOf(base))); ok {
			text = name
		} else {
			text = fmt.Sprintf("#%d", ast.IntOf(base))
		}
	case ast.SymRef:
		text = symbolName(table, names, semantic.SymId(ast.IntOf(base)))
	default:
		text = "?"
	}
	for dims := ast.Right(n); !ast.IsNull(dims) && ast.OpOf(dims) == ast.IndexOp; dims = ast.Right(dims) {
		text += "[]"
	}
	return text
}

// Marshal renders prog as JSON.
func Marshal(prog *Program) ([]byte, error) {
	return json.Marshal(prog)
}

// Pretty reindents JSON for human-facing output (`mjc inspect --raw`).
func Pretty(data []byte) []byte {
	return pretty.Pretty(data)
}

// Query evaluates a gjson path against exported JSON (`mjc inspect
// <path>`, e.g. "classes.Account.fields.#.name").
func Query(data []byte, path string) (string, error) {
	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return "", fmt.Errorf("astexport: no value at path %q", path)
	}
	return result.String(), nil
}

// Patch sets path to value within JSON, used by test fixtures to
// deterministically mutate a golden export (`mjc inspect --set`).
func Patch(data []byte, path, value string) ([]byte, error) {
	return sjson.SetBytes(data, path, value)
}

// ListPaths enumerates every dotted path in JSON whose leaf or
// intermediate key matches glob (tidwall/match's shell-style matching),
// sorted for deterministic output (`mjc inspect --list
// 'classes.*.methods.*'`).
func ListPaths(data []byte, glob string) ([]string, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("astexport: unmarshal for listing: %w", err)
	}

	var paths []string
	collectPaths(root, nil, &paths)

	var matched []string
	for _, p := range paths {
		if match.Match(p, glob) {
			matched = append(matched, p)
		}
	}
	sort.Strings(matched)
	return matched, nil
}

func collectPaths(v any, prefix []string, out *[]string) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			path := append(append([]string{}, prefix...), k)
			*out = append(*out, strings.Join(path, "."))
			collectPaths(val[k], path, out)
		}
	case []any:
		for i, elem := range val {
			path := append(append([]string{}, prefix...), fmt.Sprintf("%d", i))
			*out = append(*out, strings.Join(path, "."))
			collectPaths(elem, path, out)
		}
	}
}
