// Package semantic implements the MJ semantic analyzer: a single
// recursive walk over the AST that binds every identifier use to a
// symbol-table entry, validates declarations and accesses, and
// rewrites IdRef leaves into SymRef leaves in place.
//
// The analyzer is a stateful struct holding a *SymbolTable and an
// *errors.Reporter, dispatching per AST node kind, backed by a flat
// symbol table plus an explicit scope stack rather than a chain of
// per-scope maps (see DESIGN.md).
//
// Several node shapes (which child slot holds which sub-part of a
// SelectOp/IndexOp/FieldOp chain) are pinned down here as concrete
// struct-field assignments; DESIGN.md
// records those as judgment calls where the prose was ambiguous.
package semantic

import (
	"github.com/mjcompiler/mjc/internal/ast"
	"github.com/mjcompiler/mjc/internal/errors"
	"github.com/mjcompiler/mjc/internal/intern"
	"github.com/mjcompiler/mjc/internal/token"
)

// Context distinguishes why a VarOp is being analyzed, since a few
// access shapes are legal only in specific contexts (spec.md section
// 4.3).
type Context int

const (
	General Context = iota
	InDeclaration
	InRoutineCall
)

// Analyzer walks a parsed program once, populating a SymbolTable and
// reporting diagnostics through an errors.Reporter.
type Analyzer struct {
	Table    *SymbolTable
	Reporter *errors.Reporter
	names    *intern.Table

	mainID   intern.NameId
	lengthID intern.NameId
}

// NewAnalyzer creates an Analyzer with a fresh, initialized
// SymbolTable (predefined system/readln/println already installed).
func NewAnalyzer(names *intern.Table, reporter *errors.Reporter, config Config) *Analyzer {
	table := NewSymbolTable(names, reporter, config)
	table.Init()
	return &Analyzer{
		Table:    table,
		Reporter: reporter,
		names:    names,
		mainID:   names.Intern("main"),
		lengthID: names.Intern("length"),
	}
}

// Analyze runs the analyzer over root. Call it at most once per root;
// a second call is expected to be a fixed point (spec.md section 8),
// but nothing stops a caller from invoking it twice to check that.
func (a *Analyzer) Analyze(root *ast.Node) {
	a.analyze(root)
}

// analyze is the recursive dispatcher spec.md section 4.3 names: a
// no-op on Dummy, a handler for each of the seven distinguished
// OpKinds, and plain left-then-right recursion for everything else
// (program/body/class structure, statements, and expression nodes,
// none of which need their own semantic handling beyond reaching the
// VarOp/RoutineCall/TypeId nodes nested inside them).
func (a *Analyzer) analyze(n *ast.Node) {
	if ast.IsNull(n) || ast.KindOf(n) != ast.OpNode {
		return
	}
	switch ast.OpOf(n) {
	case ast.ClassDefOp:
		a.classDef(n)
	case ast.MethodOp:
		a.methodDef(n)
	case ast.DeclOp:
		a.decl(n)
	case ast.SpecOp:
		a.paramSpec(n)
	case ast.TypeIdOp:
		a.typeID(n)
	case ast.VarOp:
		a.varUse(n, General)
	case ast.RoutineCallOp:
		a.routineCall(n)
	default:
		a.analyze(ast.Left(n))
		a.analyze(ast.Right(n))
	}
}

func (a *Analyzer) makeSymRef(sym SymId, from *ast.Node) *ast.Node {
	return ast.MakeLeaf(ast.SymRef, int64(sym), from.Pos)
}

func (a *Analyzer) report(kind errors.Kind, pos token.Position, name intern.NameId) {
	a.Reporter.Report(kind, errors.Continue, pos, name, false, 0)
}

// reportAbort reports a fatal diagnostic: one that both prints and
// sets Reporter.Aborted, the same capacity-overflow-style signal
// cmd/mjc checks to decide its exit code.
func (a *Analyzer) reportAbort(kind errors.Kind, pos token.Position, name intern.NameId) {
	a.Reporter.Report(kind, errors.Abort, pos, name, false, 0)
}

func (a *Analyzer) nameOf(sym SymId) intern.NameId {
	return a.Table.GetAttr(sym, KName).AsName()
}

// classDef handles ClassDefOp: right child is the class-name IdRef,
// left child is the class body. The name is inserted before opening
// the body's block so a self-referential field type resolves.
func (a *Analyzer) classDef(n *ast.Node) {
	nameLeaf := ast.Right(n)
	name := intern.NameId(ast.IntOf(nameLeaf))

	sym, ok := a.Table.InsertEntry(name, nameLeaf.Pos)
	if !ok {
		return
	}
	a.Table.SetAttr(sym, KSymKind, SymKindValue(Class))
	ast.SetRight(n, a.makeSymRef(sym, nameLeaf))

	a.Table.OpenBlock(nameLeaf.Pos)
	a.analyze(ast.Left(n))
	a.Table.CloseBlock()
}

// methodDef handles MethodOp: left child is HeadOp(name, SpecOp(params,
// returnType)), right child is the body block. A method named "main"
// is subject to the single cross-scope uniqueness rule instead of the
// ordinary same-scope redeclaration check.
func (a *Analyzer) methodDef(n *ast.Node) {
	head := ast.Left(n)
	nameLeaf := ast.Left(head)
	spec := ast.Right(head)
	name := intern.NameId(ast.IntOf(nameLeaf))

	if intern.Equal(name, a.mainID) {
		if _, exists := a.Table.FindByName(name); exists {
			a.report(errors.Redeclaration, nameLeaf.Pos, name)
			return
		}
	}

	sym, ok := a.Table.InsertEntry(name, nameLeaf.Pos)
	if !ok {
		return
	}
	ast.SetLeft(head, a.makeSymRef(sym, nameLeaf))

	a.Table.OpenBlock(nameLeaf.Pos)

	returnType := ast.Right(spec)
	if !ast.IsNull(returnType) {
		a.Table.SetAttr(sym, KSymKind, SymKindValue(Func))
		a.Table.SetAttr(sym, KType, NodeValue(returnType))
		a.typeID(returnType)
	} else {
		a.Table.SetAttr(sym, KSymKind, SymKindValue(Proc))
	}

	argNum := a.paramSpec(spec)
	a.Table.SetAttr(sym, KArgNum, IntValue(int64(argNum)))

	a.analyze(ast.Right(n))
	a.Table.CloseBlock()
}

// decl handles DeclOp: a left-recursive spine of declarators, each
// right child shaped CommaOp(name, CommaOp(type, initializer)). The
// spine is walked leaves-first so declarators are processed in the
// order they were written.
func (a *Analyzer) decl(n *ast.Node) {
	if ast.OpOf(ast.Left(n)) == ast.DeclOp {
		a.decl(ast.Left(n))
	}
	a.declarator(n)
}

func (a *Analyzer) declarator(n *ast.Node) {
	declr := ast.Right(n)
	nameLeaf := ast.Left(declr)
	rest := ast.Right(declr)
	typeNode := ast.Left(rest)
	init := ast.Right(rest)

	name := intern.NameId(ast.IntOf(nameLeaf))
	sym, ok := a.Table.InsertEntry(name, nameLeaf.Pos)
	if !ok {
		return
	}
	a.Table.SetAttr(sym, KType, NodeValue(typeNode))
	ast.SetLeft(declr, a.makeSymRef(sym, nameLeaf))

	a.typeID(typeNode)

	if dims := ast.Right(typeNode); isIndexChain(dims) {
		a.Table.SetAttr(sym, KDimen, IntValue(int64(indexChainLength(dims))))
		a.Table.SetAttr(sym, KSymKind, SymKindValue(Arr))
	} else {
		a.Table.SetAttr(sym, KSymKind, SymKindValue(Var))
	}

	if ast.IsNull(init) {
		return
	}
	if ast.OpOf(init) == ast.VarOp {
		a.varUse(init, InDeclaration)
	} else {
		a.analyze(init)
	}
}

func isIndexChain(n *ast.Node) bool {
	return !ast.IsNull(n) && ast.OpOf(n) == ast.IndexOp
}

func indexChainLength(n *ast.Node) int {
	count := 0
	for cur := n; !ast.IsNull(cur) && ast.OpOf(cur) == ast.IndexOp; cur = ast.Right(cur) {
		count++
	}
	return count
}

// paramSpec handles SpecOp's left child: a spine of VArgTypeOp /
// RArgTypeOp wrappers linked on their right child, each wrapping
// CommaOp(name, type) on its left. It returns the number of parameters
// declared, so methodDef can record ArgNum on the enclosing routine.
func (a *Analyzer) paramSpec(n *ast.Node) int {
	count := 0
	for w := ast.Left(n); !ast.IsNull(w); w = ast.Right(w) {
		op := ast.OpOf(w)
		if op != ast.VArgTypeOp && op != ast.RArgTypeOp {
			break
		}
		inner := ast.Left(w)
		nameLeaf := ast.Left(inner)
		typeNode := ast.Right(inner)
		name := intern.NameId(ast.IntOf(nameLeaf))

		sym, ok := a.Table.InsertEntry(name, nameLeaf.Pos)
		if !ok {
			count++
			continue
		}
		a.Table.SetAttr(sym, KType, NodeValue(typeNode))
		if op == ast.VArgTypeOp {
			a.Table.SetAttr(sym, KSymKind, SymKindValue(ValueArg))
		} else {
			a.Table.SetAttr(sym, KSymKind, SymKindValue(RefArg))
		}
		ast.SetLeft(inner, a.makeSymRef(sym, nameLeaf))
		a.typeID(typeNode)
		count++
	}
	return count
}

// typeID handles TypeIdOp: resolves a left child that is a bare IdRef
// (a user-defined class name) to a SymRef via lookup, leaving the
// primitive IntType marker untouched. An unresolved user type is
// reported by lookup itself; the spine continues either way.
func (a *Analyzer) typeID(n *ast.Node) {
	for cur := n; ast.OpOf(cur) == ast.TypeIdOp; cur = ast.Right(cur) {
		left := ast.Left(cur)
		if ast.KindOf(left) != ast.IdRef {
			continue
		}
		name := intern.NameId(ast.IntOf(left))
		if sym := a.Table.Lookup(name, left.Pos); sym != 0 {
			ast.SetLeft(cur, a.makeSymRef(sym, left))
		}
	}
}

// routineCall handles RoutineCallOp: the left child is the called
// routine, resolved as a variable use in InRoutineCall context; the
// right child is the argument list (or Dummy), analyzed normally so
// identifiers inside argument expressions get resolved.
func (a *Analyzer) routineCall(n *ast.Node) {
	a.varUse(ast.Left(n), InRoutineCall)
	a.analyze(ast.Right(n))
}

// varUse handles VarOp, MJ's access-chain resolution rule (spec.md
// section 4.3). n is shaped (IdRef base, access_chain): the base is
// looked up once, then the chain — a spine of SelectOp nodes each
// wrapping a FieldOp or IndexOp on its left — is walked against a
// moving "anchor" symbol that may retarget mid-chain (a Var anchor
// whose declared type is a class retargets to that class; a Class
// anchor's matched field becomes the next anchor).
func (a *Analyzer) varUse(n *ast.Node, ctx Context) {
	base := ast.Left(n)
	name := intern.NameId(ast.IntOf(base))
	sym := a.Table.Lookup(name, base.Pos)
	if sym == 0 {
		return
	}
	ast.SetLeft(n, a.makeSymRef(sym, base))

	anchor := sym
	nest := int(a.Table.GetAttr(sym, KNest).AsInt())
	chain := ast.Right(n)

	for !ast.IsNull(chain) {
		kind := a.Table.GetAttr(anchor, KSymKind).AsSymKind()
		switch kind {

		case Var:
			typeNode := a.Table.GetAttr(anchor, KType).AsNode()
			baseType := ast.Left(typeNode)
			if ast.KindOf(baseType) == ast.IntType {
				a.report(errors.FieldMismatch, chain.Pos, a.nameOf(anchor))
				return
			}
			anchor = SymId(ast.IntOf(baseType))
			nest = int(a.Table.GetAttr(anchor, KNest).AsInt())
			continue

		case Proc, Func:
			a.reportAbort(errors.ProcMismatch, chain.Pos, a.nameOf(anchor))
			return

		case Class:
			sel := ast.Left(chain)
			if ast.OpOf(sel) == ast.IndexOp {
				if ctx != InDeclaration {
					a.report(errors.TypeMismatch, chain.Pos, a.nameOf(anchor))
					return
				}
				chain = ast.Right(chain)
				continue
			}

			fieldLeaf := ast.Left(sel)
			fieldName := intern.NameId(ast.IntOf(fieldLeaf))
			found := SymId(0)
			for s := int(anchor) + 1; s <= a.Table.EntryCount(); s++ {
				symNest := int(a.Table.GetAttr(SymId(s), KNest).AsInt())
				if symNest <= nest {
					break
				}
				if symNest == nest+1 && intern.Equal(a.Table.GetAttr(SymId(s), KName).AsName(), fieldName) {
					found = SymId(s)
					break
				}
			}
			if found == 0 {
				a.report(errors.Undeclared, fieldLeaf.Pos, fieldName)
				return
			}
			ast.SetLeft(sel, a.makeSymRef(found, fieldLeaf))
			anchor = found
			nest = int(a.Table.GetAttr(anchor, KNest).AsInt())
			chain = ast.Right(chain)
			continue

		case Arr:
			dim := int(a.Table.GetAttr(anchor, KDimen).AsInt())
			count := 0
			cur := chain
			for !ast.IsNull(cur) && ast.OpOf(ast.Left(cur)) == ast.IndexOp {
				a.analyze(ast.Left(ast.Left(cur)))
				count++
				cur = ast.Right(cur)
			}
			if count > dim {
				a.report(errors.IndexMismatch, chain.Pos, a.nameOf(anchor))
				return
			}
			if count < dim && ast.IsNull(cur) {
				a.report(errors.IndexMismatch, chain.Pos, a.nameOf(anchor))
				return
			}
			chain = cur
			if ast.IsNull(chain) {
				return
			}

			sel := ast.Left(chain)
			if ast.OpOf(sel) != ast.FieldOp {
				a.report(errors.TypeMismatch, chain.Pos, a.nameOf(anchor))
				return
			}
			fieldLeaf := ast.Left(sel)
			fieldName := intern.NameId(ast.IntOf(fieldLeaf))
			if intern.Equal(fieldName, a.lengthID) {
				if ast.IsNull(ast.Right(chain)) {
					return
				}
				a.report(errors.TypeMismatch, chain.Pos, fieldName)
				return
			}

			elemType := a.Table.GetAttr(anchor, KType).AsNode()
			elemBase := ast.Left(elemType)
			if ast.KindOf(elemBase) != ast.SymRef {
				a.report(errors.TypeMismatch, fieldLeaf.Pos, fieldName)
				return
			}
			anchor = SymId(ast.IntOf(elemBase))
			nest = int(a.Table.GetAttr(anchor, KNest).AsInt())
			continue

		default:
			return
		}
	}

	if a.Table.GetAttr(anchor, KSymKind).AsSymKind() == Arr {
		a.report(errors.IndexMismatch, n.Pos, a.nameOf(anchor))
	}
}
