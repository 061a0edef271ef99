package errors

import (
	"strings"
	"testing"

	"github.com/mjcompiler/mjc/internal/intern"
	"github.com/mjcompiler/mjc/internal/token"
)

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		0: "0th", 1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd", 23: "23rd",
	}
	for n, want := range cases {
		if got := Ordinal(n); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestReportFormatsFixedHeader(t *testing.T) {
	names := intern.New()
	id := names.Intern("foo")
	r := NewReporter(names, nil)

	r.Report(Undeclared, Continue, token.Position{Line: 7}, id, false, 0)

	if len(r.Errors) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(r.Errors))
	}
	got := r.Errors[0].Text
	want := "Semantic Error--line: 7, foo is undeclared."
	if got != want {
		t.Errorf("Report text = %q, want %q", got, want)
	}
}

func TestAbortSeverityMarksAborted(t *testing.T) {
	names := intern.New()
	r := NewReporter(names, nil)

	r.Report(STOverflow, Continue, token.Position{Line: 1}, -1, false, 0)
	if r.Aborted {
		t.Fatal("Continue severity must not set Aborted")
	}

	r.Report(STOverflow, Abort, token.Position{Line: 1}, -1, false, 0)
	if !r.Aborted {
		t.Fatal("Abort severity must set Aborted")
	}
}

func TestDumpIndentsEachLine(t *testing.T) {
	names := intern.New()
	r := NewReporter(names, nil)
	r.Report(Undeclared, Continue, token.Position{Line: 1}, -1, false, 0)
	r.Report(Redeclaration, Continue, token.Position{Line: 2}, -1, false, 0)

	out := r.Dump()
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("line %q not indented", line)
		}
	}
}
