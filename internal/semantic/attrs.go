package semantic

import (
	"github.com/mjcompiler/mjc/internal/ast"
	"github.com/mjcompiler/mjc/internal/intern"
)

// AttrKind is the closed set of per-symbol attribute kinds (spec.md
// section 3). Values are numbered exactly as spec.md lists them so that
// ascending-AttrKind iteration order (relied on by PrintTable and by
// the attribute pool's sorted cons-list) matches the documented column
// layout.
type AttrKind int

const (
	KName AttrKind = iota + 1
	KNest
	KTree
	KPredefined
	KSymKind
	KType
	KValue
	KOffset
	KDimen
	KArgNum
)

// SymKind is the closed set of symbol-table entry kinds (spec.md
// section 3).
type SymKind int

const (
	Const SymKind = iota
	Var
	FuncForward
	Func
	RefArg
	ValueArg
	Field
	TypeDef
	ProcForward
	Proc
	Class
	Arr
)

// dumpName is the exact lowercase spelling spec.md section 6 requires
// in the symbol-table debug dump's Kind column.
var dumpName = map[SymKind]string{
	Const:       "constant",
	Var:         "variable",
	FuncForward: "funcforw",
	Func:        "function",
	RefArg:      "ref_arg",
	ValueArg:    "val_arg",
	Field:       "field",
	TypeDef:     "typedef",
	ProcForward: "procforw",
	Proc:        "procedure",
	Class:       "class",
	Arr:         "array",
}

func (k SymKind) String() string {
	if name, ok := dumpName[k]; ok {
		return name
	}
	return "?"
}

// valueTag discriminates which field of Value is meaningful. This is
// the "type-safe indirection" spec.md section 9 calls for in place of
// the source's cast-AST-pointer-to-int trick.
type valueTag int

const (
	tagInt valueTag = iota
	tagBool
	tagName
	tagSymKind
	tagNode
)

// Value is the tagged union AttrKind values are stored as: Integer,
// NameId, SymKind, or a NodeRef back into the AST (spec.md section 9).
type Value struct {
	tag     valueTag
	i       int64
	b       bool
	name    intern.NameId
	symKind SymKind
	node    *ast.Node
}

func IntValue(v int64) Value               { return Value{tag: tagInt, i: v} }
func BoolValue(v bool) Value                { return Value{tag: tagBool, b: v} }
func NameIDValue(v intern.NameId) Value     { return Value{tag: tagName, name: v} }
func SymKindValue(v SymKind) Value          { return Value{tag: tagSymKind, symKind: v} }
func NodeValue(v *ast.Node) Value           { return Value{tag: tagNode, node: v} }

// AsInt returns the integer payload (0 if the value holds a different
// shape).
func (v Value) AsInt() int64 {
	if v.tag == tagInt {
		return v.i
	}
	return 0
}

// AsBool returns the boolean payload.
func (v Value) AsBool() bool {
	return v.tag == tagBool && v.b
}

// AsName returns the interned-name payload.
func (v Value) AsName() intern.NameId {
	if v.tag == tagName {
		return v.name
	}
	return intern.NameId(-1)
}

// AsSymKind returns the SymKind payload.
func (v Value) AsSymKind() SymKind {
	return v.symKind
}

// AsNode returns the AST-node-reference payload, or the shared Dummy
// node if v does not hold one.
func (v Value) AsNode() *ast.Node {
	if v.tag == tagNode && v.node != nil {
		return v.node
	}
	return ast.NullNode()
}

// cell is one cons cell in the shared, append-only attribute pool: a
// (kind, value, next) triple. Per-entry attribute lists thread through
// this single pool, sorted ascending by kind (spec.md section 4.2).
type cell struct {
	kind AttrKind
	val  Value
	next int // index into the pool, or -1
}
