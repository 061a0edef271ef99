package astexport

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mjcompiler/mjc/internal/errors"
	"github.com/mjcompiler/mjc/internal/intern"
	"github.com/mjcompiler/mjc/internal/lexer"
	"github.com/mjcompiler/mjc/internal/parser"
	"github.com/mjcompiler/mjc/internal/semantic"
)

func exportSource(t *testing.T, src string) ([]byte, *Program) {
	t.Helper()
	names := intern.New()
	l := lexer.New(src, names)
	p := parser.New(l, names)
	root := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}

	reporter := errors.NewReporter(names, nil)
	a := semantic.NewAnalyzer(names, reporter, semantic.DefaultConfig())
	a.Analyze(root)
	if len(reporter.Errors) != 0 {
		t.Fatalf("unexpected diagnostics: %v", reporter.Errors)
	}

	prog := Export(a.Table, names)
	data, err := Marshal(prog)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return data, prog
}

const sampleSource = `program P;
class Account {
	int balance;
	int history[10];
	method void deposit(val int amount) {
		balance = amount;
	}
	method int get() {
		return balance;
	}
}`

func TestExportOmitsPredefinedSymbols(t *testing.T) {
	_, prog := exportSource(t, sampleSource)
	for _, predefined := range []string{"system", "readln", "println"} {
		if _, ok := prog.Classes[predefined]; ok {
			t.Errorf("predefined symbol %q leaked into export", predefined)
		}
	}
	if _, ok := prog.Classes["Account"]; !ok {
		t.Fatal("expected Account class in export")
	}
}

func TestExportFieldsAndMethods(t *testing.T) {
	_, prog := exportSource(t, sampleSource)
	account := prog.Classes["Account"]
	if len(account.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(account.Fields))
	}
	if account.Fields[1].Dimension != 1 {
		t.Errorf("history Dimension = %d, want 1", account.Fields[1].Dimension)
	}
	if len(account.Methods) != 2 {
		t.Fatalf("got %d methods, want 2", len(account.Methods))
	}
	deposit := account.Methods[0]
	if deposit.Name != "deposit" || deposit.Kind != "procedure" || deposit.ArgNum != 1 {
		t.Errorf("unexpected deposit method: %+v", deposit)
	}
	get := account.Methods[1]
	if get.Name != "get" || get.Kind != "function" || get.ReturnType != "int" {
		t.Errorf("unexpected get method: %+v", get)
	}
}

func TestQueryByPath(t *testing.T) {
	data, _ := exportSource(t, sampleSource)
	name, err := Query(data, "classes.Account.methods.1.name")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if name != "get" {
		t.Errorf("got %q, want get", name)
	}
}

func TestPatchSetsValue(t *testing.T) {
	data, _ := exportSource(t, sampleSource)
	patched, err := Patch(data, "classes.Account.methods.0.name", "withdraw")
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	name, err := Query(patched, "classes.Account.methods.0.name")
	if err != nil {
		t.Fatalf("Query after patch: %v", err)
	}
	if name != "withdraw" {
		t.Errorf("got %q, want withdraw", name)
	}
}

func TestPrettyIndents(t *testing.T) {
	data, _ := exportSource(t, sampleSource)
	out := Pretty(data)
	if !strings.Contains(string(out), "\n") {
		t.Error("expected Pretty output to be multi-line")
	}
	var roundTrip any
	if err := json.Unmarshal(out, &roundTrip); err != nil {
		t.Errorf("pretty output is not valid JSON: %v", err)
	}
}

func TestListPathsMatchesGlob(t *testing.T) {
	data, _ := exportSource(t, sampleSource)
	// "?" matches exactly one character, so this reaches only the
	// top-level "name" field of each methods.<index> element and not
	// the nested params.<index>.name that a "*" wildcard would also
	// cross into (tidwall/match does not treat "." as a separator).
	paths, err := ListPaths(data, "classes.Account.methods.?.name")
	if err != nil {
		t.Fatalf("ListPaths: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d matching paths, want 2: %v", len(paths), paths)
	}
}
