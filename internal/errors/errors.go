// Package errors implements the MJ diagnostic reporter: a single
// taxonomy of diagnostic codes, two severities, and a reporter that
// prints a fixed-format diagnostic line and either continues or aborts
// analysis.
//
// Each diagnostic is a structured, typed record (Diagnostic) carrying
// its Kind from one closed taxonomy, its severity and position, and its
// rendered one-line text; no source line or caret is printed.
package errors

import (
	"fmt"
	"os"
	"strings"

	"github.com/kr/text"

	"github.com/mjcompiler/mjc/internal/intern"
	"github.com/mjcompiler/mjc/internal/token"
)

// Kind is the closed error taxonomy of spec.md section 6.
type Kind int

const (
	StackOverflow Kind = iota
	Redeclaration
	STOverflow
	Undeclared
	AttrOverflow
	NotUsed
	ArgumentsNum1
	ArgumentsNum2
	Bound
	ProcMismatch
	VarValMismatch
	ConstantVar
	ExprVar
	ConstantAssign
	IndexMismatch
	FieldMismatch
	ForwardRedeclare
	RecordTypeMismatch
	ArrayTypeMismatch
	VariableMisuse
	FuncMismatch
	TypeMismatch
	NotType
	ArrayDimMismatch
	MultiMain
)

var kindMessages = map[Kind]string{
	StackOverflow:      "scope stack overflow",
	Redeclaration:      "%s is already declared in this scope",
	STOverflow:         "symbol table overflow",
	Undeclared:         "%s is undeclared",
	AttrOverflow:       "attribute pool overflow",
	NotUsed:            "%s is declared but never used",
	ArgumentsNum1:      "too few arguments, expected at least %s more",
	ArgumentsNum2:      "too many arguments",
	Bound:              "array bound is invalid",
	ProcMismatch:       "method %s members cannot be accessed",
	VarValMismatch:     "value/reference parameter mismatch for %s",
	ConstantVar:        "a constant cannot be used where a variable is required: %s",
	ExprVar:            "an expression cannot be used where a variable is required",
	ConstantAssign:     "cannot assign to constant %s",
	IndexMismatch:      "array index count does not match its declared dimensions",
	FieldMismatch:      "%s has no such field",
	ForwardRedeclare:   "%s forward declaration does not match its definition",
	RecordTypeMismatch: "record type mismatch for %s",
	ArrayTypeMismatch:  "array type mismatch for %s",
	VariableMisuse:     "%s cannot be used this way",
	FuncMismatch:       "function/procedure mismatch for %s",
	TypeMismatch:       "type mismatch for %s",
	NotType:            "%s does not name a type",
	ArrayDimMismatch:   "array dimension mismatch for %s",
	MultiMain:          "only one main method is allowed",
}

// Severity controls whether the reporter continues after printing a
// diagnostic, or aborts analysis: Abort for capacity overflows and for
// the one fatal non-capacity diagnostic, ProcMismatch (accessing a
// member through a routine), Continue for everything else.
type Severity int

const (
	Continue Severity = iota
	Abort
)

// Ordinal renders n as an English ordinal: "0th", "1st", "2nd", "3rd",
// "4th", "11th", ... (spec.md section 4.4).
func Ordinal(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return fmt.Sprintf("%dth", n)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}

// Diagnostic is one reported error, retained for golden-file comparison
// and for programmatic inspection (e.g. by cmd/mjc).
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Pos      token.Position
	Name     string
	Seq      int
	HasSeq   bool
	Text     string
}

// Reporter accumulates diagnostics and prints them in the fixed format
// the test harness diffs against a golden file:
// "Semantic Error--line: <L>, <message>."
type Reporter struct {
	names   *intern.Table
	out     *os.File
	Errors  []Diagnostic
	Aborted bool // set once a Severity Abort diagnostic has been reported
}

// NewReporter creates a Reporter that writes each diagnostic line to
// out as it is reported (nil to only accumulate silently, as cmd/mjc
// does before printing Dump) and resolves name ids through names.
func NewReporter(names *intern.Table, out *os.File) *Reporter {
	return &Reporter{names: names, out: out}
}

// Report prints a diagnostic and records it. nameID is resolved through
// the interner when non-negative; pass -1 to omit a name. hasSeq/seq
// render the ordinal argument used by the ArgumentsNum1-style message.
//
// The caller is responsible for checking Aborted after every call whose
// severity might be Abort and unwinding the current analysis — the
// reporter itself never calls os.Exit, which keeps the core testable
// without subprocess tricks (spec.md section 7 still observably
// "aborts the process": cmd/mjc checks Aborted after Analyze returns
// and calls os.Exit(1) there).
func (r *Reporter) Report(kind Kind, severity Severity, pos token.Position, nameID intern.NameId, hasSeq bool, seq int) {
	name := ""
	if nameID >= 0 && r.names != nil {
		if resolved, ok := r.names.Lookup(nameID); ok {
			name = resolved
		}
	}

	msg := formatMessage(kind, name, hasSeq, seq)
	line := fmt.Sprintf("Semantic Error--line: %d, %s.", pos.Line, msg)

	r.Errors = append(r.Errors, Diagnostic{
		Kind: kind, Severity: severity, Pos: pos, Name: name, Seq: seq, HasSeq: hasSeq, Text: line,
	})

	if r.out != nil {
		fmt.Fprintln(r.out, line)
	}

	if severity == Abort {
		r.Aborted = true
	}
}

func formatMessage(kind Kind, name string, hasSeq bool, seq int) string {
	template, ok := kindMessages[kind]
	if !ok {
		return "unknown error"
	}
	if hasSeq {
		return fmt.Sprintf(template, Ordinal(seq))
	}
	if strings.Contains(template, "%s") {
		return fmt.Sprintf(template, name)
	}
	return template
}

// Dump renders every accumulated diagnostic, one per line, indented
// with kr/text.Indent (a go-snaps transitive dependency, promoted to
// direct use here for exactly this kind of multi-line body wrapping).
func (r *Reporter) Dump() string {
	var sb strings.Builder
	for _, d := range r.Errors {
		sb.WriteString(d.Text)
		sb.WriteByte('\n')
	}
	return text.Indent(sb.String(), "  ")
}
