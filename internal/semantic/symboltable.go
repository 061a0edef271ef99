package semantic

import (
	"fmt"
	"os"

	"github.com/mjcompiler/mjc/internal/errors"
	"github.com/mjcompiler/mjc/internal/intern"
	"github.com/mjcompiler/mjc/internal/token"
)

// SymId is a symbol-table entry's identity: a positive, monotonically
// increasing integer assigned in declaration order (spec.md section 3).
// 0 is never a valid id; it is returned by Lookup/InsertEntry on
// failure so callers can keep walking a tree without a second error
// channel.
type SymId int

// entry is one symbol-table slot. It holds nothing but a pointer into
// the attribute pool: every other fact about a symbol (its name, nest
// depth, kind, type, ...) lives in the pool as an attribute, per
// spec.md section 3's explicit split between "entries" and
// "attributes".
type entry struct {
	attrHead int // index into the pool, or -1
}

// frame is one scope-stack slot. A frame is either a block marker
// (pushed by OpenBlock, popped by CloseBlock) or a binding frame that
// associates a name with a SymId for the lifetime of its enclosing
// block (spec.md section 4.2). dummy binding frames are pushed by
// Lookup on a failed search so later uses of the same undeclared name
// while that frame is live do not re-report Undeclared.
type frame struct {
	marker bool
	name   intern.NameId
	sym    SymId
	dummy  bool
	used   bool
}

// SymbolTable is the flat, append-only table of declared symbols plus
// the separate scope stack spec.md section 3 requires: a single
// indexed slice of entries (never shrinks, never reordered) alongside
// a stack of block markers and bindings that does shrink as blocks
// close, rather than nesting one Go map per scope (see DESIGN.md).
type SymbolTable struct {
	names    *intern.Table
	reporter *errors.Reporter
	config   Config

	entries []entry
	pool    []cell
	stack   []frame
	nesting int
}

// NewSymbolTable creates an empty table. Call Init to install the
// predefined symbols before analyzing a program.
func NewSymbolTable(names *intern.Table, reporter *errors.Reporter, config Config) *SymbolTable {
	return &SymbolTable{names: names, reporter: reporter, config: config}
}

// Nesting returns the current scope depth (0 at the outermost level).
func (t *SymbolTable) Nesting() int { return t.nesting }

// Init installs the three predefined symbols spec.md section 4.2
// requires before any user declaration is processed: the system class
// at the current nesting, and the readln/println procedures, whose Nest
// attribute is recorded one level deeper than whatever is currently
// open. All three binding frames are pushed into the current scope, so
// a later declaration of the same name in that scope reports
// Redeclaration.
func (t *SymbolTable) Init() {
	sys, _ := t.InsertEntry(t.names.Intern("system"), token.Position{})
	t.SetAttr(sys, KSymKind, SymKindValue(Class))
	t.SetAttr(sys, KPredefined, BoolValue(true))

	for _, name := range []string{"readln", "println"} {
		sym, ok := t.InsertEntry(t.names.Intern(name), token.Position{})
		if !ok {
			continue
		}
		t.SetAttr(sym, KSymKind, SymKindValue(Proc))
		t.SetAttr(sym, KPredefined, BoolValue(true))
		t.SetAttr(sym, KNest, IntValue(int64(t.nesting+1)))
	}
}

// OpenBlock pushes a new block marker, entering a fresh nested scope.
func (t *SymbolTable) OpenBlock(pos token.Position) {
	if !t.pushFrame(frame{marker: true}, pos) {
		return
	}
	t.nesting++
}

// CloseBlock pops frames down to and including the nearest block
// marker, leaving the enclosing scope current again. If
// Config.UnusedWarnings is set, every binding frame popped without
// ever being marked used is reported as NotUsed before it is dropped.
func (t *SymbolTable) CloseBlock() {
	for len(t.stack) > 0 {
		top := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		if top.marker {
			break
		}
		if t.config.UnusedWarnings && !top.dummy && !top.used && t.reporter != nil {
			t.reporter.Report(errors.NotUsed, errors.Continue, token.Position{}, top.name, false, 0)
		}
	}
	if t.nesting > 0 {
		t.nesting--
	}
}

// pushFrame appends f to the scope stack, reporting StackOverflow and
// refusing the push if the shared capacity is already exhausted.
func (t *SymbolTable) pushFrame(f frame, pos token.Position) bool {
	if len(t.stack) >= t.config.StackCapacity {
		if t.reporter != nil {
			t.reporter.Report(errors.StackOverflow, errors.Abort, pos, -1, false, 0)
		}
		return false
	}
	t.stack = append(t.stack, f)
	return true
}

// InsertEntry declares name in the current scope. It reports
// Redeclaration (Continue) and refuses the insert if name is already
// bound in the current scope (LookupHere succeeds); it reports
// STOverflow (Abort) and refuses the insert if the table is already at
// capacity. On success it appends a new entry, sets its Name and Nest
// attributes, and pushes a binding frame.
func (t *SymbolTable) InsertEntry(name intern.NameId, pos token.Position) (SymId, bool) {
	if existing := t.LookupHere(name); existing != 0 {
		if t.reporter != nil {
			t.reporter.Report(errors.Redeclaration, errors.Continue, pos, name, false, 0)
		}
		return 0, false
	}
	if len(t.entries) >= t.config.TableCapacity {
		if t.reporter != nil {
			t.reporter.Report(errors.STOverflow, errors.Abort, pos, -1, false, 0)
		}
		return 0, false
	}

	t.entries = append(t.entries, entry{attrHead: -1})
	sym := SymId(len(t.entries))

	if !t.pushFrame(frame{name: name, sym: sym}, pos) {
		t.entries = t.entries[:len(t.entries)-1]
		return 0, false
	}

	t.SetAttr(sym, KName, NameIDValue(name))
	t.SetAttr(sym, KNest, IntValue(int64(t.nesting)))
	return sym, true
}

// LookupHere searches only the current (innermost) scope: frames down
// to, but not past, the nearest marker. It does not report diagnostics
// and does not push a dummy frame; it exists purely so InsertEntry can
// test for a same-scope redeclaration.
func (t *SymbolTable) LookupHere(name intern.NameId) SymId {
	for i := len(t.stack) - 1; i >= 0; i-- {
		f := t.stack[i]
		if f.marker {
			break
		}
		if f.dummy {
			continue
		}
		if intern.Equal(f.name, name) {
			return f.sym
		}
	}
	return 0
}

// Lookup searches the full scope stack from innermost to outermost. On
// success it marks the binding frame used and returns its SymId. On
// failure it reports Undeclared (Continue) and pushes a dummy frame so
// a second use of the same undeclared name in the same block does not
// re-report it, then returns 0.
func (t *SymbolTable) Lookup(name intern.NameId, pos token.Position) SymId {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i].dummy {
			if intern.Equal(t.stack[i].name, name) {
				return 0
			}
			continue
		}
		if !t.stack[i].marker && intern.Equal(t.stack[i].name, name) {
			t.stack[i].used = true
			return t.stack[i].sym
		}
	}
	if t.reporter != nil {
		t.reporter.Report(errors.Undeclared, errors.Continue, pos, name, false, 0)
	}
	t.pushFrame(frame{name: name, dummy: true}, pos)
	return 0
}

// MarkUsed records that sym was referenced, for the NotUsed check that
// runs at CloseBlock time when Config.UnusedWarnings is set.
func (t *SymbolTable) MarkUsed(sym SymId) {
	for i := range t.stack {
		if !t.stack[i].marker && t.stack[i].sym == sym {
			t.stack[i].used = true
		}
	}
}

// IsAttr reports whether sym carries an attribute of the given kind.
func (t *SymbolTable) IsAttr(sym SymId, kind AttrKind) bool {
	_, ok := t.lookupAttr(sym, kind)
	return ok
}

// GetAttr returns the value of sym's kind attribute. Requesting an
// attribute a symbol does not carry is a caller bug (spec.md section
// 4.2's get_attr precondition), not a user-facing diagnostic; it is
// reported to stderr directly, outside the Kind taxonomy, and a zero
// Value is returned so analysis can continue rather than panic.
func (t *SymbolTable) GetAttr(sym SymId, kind AttrKind) Value {
	v, ok := t.lookupAttr(sym, kind)
	if !ok {
		fmt.Fprintf(os.Stderr, "internal: symbol #%d has no attribute %d\n", sym, kind)
		return Value{}
	}
	return v
}

func (t *SymbolTable) lookupAttr(sym SymId, kind AttrKind) (Value, bool) {
	idx := int(sym) - 1
	if idx < 0 || idx >= len(t.entries) {
		return Value{}, false
	}
	for p := t.entries[idx].attrHead; p != -1; p = t.pool[p].next {
		if t.pool[p].kind == kind {
			return t.pool[p].val, true
		}
		if t.pool[p].kind > kind {
			break
		}
	}
	return Value{}, false
}

// SetAttr sets (or overwrites) sym's kind attribute to val. New cells
// are threaded into the pool's per-symbol list in ascending-kind
// order, and the pool's capacity is enforced only when a brand new
// cell is appended (overwriting an existing attribute never grows the
// pool).
func (t *SymbolTable) SetAttr(sym SymId, kind AttrKind, val Value) {
	idx := int(sym) - 1
	if idx < 0 || idx >= len(t.entries) {
		return
	}

	prev := -1
	p := t.entries[idx].attrHead
	for p != -1 && t.pool[p].kind < kind {
		prev = p
		p = t.pool[p].next
	}
	if p != -1 && t.pool[p].kind == kind {
		t.pool[p].val = val
		return
	}

	if len(t.pool) >= t.config.PoolCapacity {
		if t.reporter != nil {
			t.reporter.Report(errors.AttrOverflow, errors.Abort, token.Position{}, -1, false, 0)
		}
		return
	}

	t.pool = append(t.pool, cell{kind: kind, val: val, next: p})
	newIdx := len(t.pool) - 1
	if prev == -1 {
		t.entries[idx].attrHead = newIdx
	} else {
		t.pool[prev].next = newIdx
	}
}

// EntryCount returns the number of declared symbols (the table never
// shrinks, so this only grows).
func (t *SymbolTable) EntryCount() int { return len(t.entries) }

// FindByName scans every declared entry's Name attribute looking for
// name, regardless of scope. It backs the single cross-scope
// uniqueness rule in MJ: there can be only one method named "main" in
// the entire program (spec.md section 4.3).
func (t *SymbolTable) FindByName(name intern.NameId) (SymId, bool) {
	for id := 1; id <= len(t.entries); id++ {
		sym := SymId(id)
		if v, ok := t.lookupAttr(sym, KName); ok && intern.Equal(v.AsName(), name) {
			return sym, true
		}
	}
	return 0, false
}
