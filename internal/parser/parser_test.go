package parser

import (
	"testing"

	"github.com/mjcompiler/mjc/internal/ast"
	"github.com/mjcompiler/mjc/internal/intern"
	"github.com/mjcompiler/mjc/internal/lexer"
)

func parse(t *testing.T, src string) (*ast.Node, *Parser, *intern.Table) {
	t.Helper()
	names := intern.New()
	l := lexer.New(src, names)
	p := New(l, names)
	root := p.ParseProgram()
	return root, p, names
}

func TestParseEmptyClass(t *testing.T) {
	root, p, _ := parse(t, "program P; class C { }")
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	if ast.OpOf(root) != ast.ProgramOp {
		t.Fatalf("root op = %v, want ProgramOp", ast.OpOf(root))
	}
}

func TestParseFieldAndMethod(t *testing.T) {
	src := `program P;
	class A {
		int x;
		int arr[5];
		method int f(val int i) {
			return arr[i];
		}
	}`
	_, p, _ := parse(t, src)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
}

func TestParseIfElseAndWhile(t *testing.T) {
	src := `program P;
	class A {
		method void g() {
			if (1 < 2) {
				while (1 == 1) {
					return;
				}
			} else {
				return;
			}
		}
	}`
	_, p, _ := parse(t, src)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
}

func TestParseFieldAccessAssignment(t *testing.T) {
	src := `program P;
	class A {
		int x;
		method void g() {
			x = 1;
		}
	}`
	_, p, _ := parse(t, src)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
}

func TestParseRoutineCallStatement(t *testing.T) {
	src := `program P;
	class A {
		method void g() {
			println(1);
		}
	}`
	_, p, _ := parse(t, src)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
}

func TestParseRefAndValParams(t *testing.T) {
	src := `program P;
	class A {
		method int f(ref int a, val int b) {
			return a;
		}
	}`
	_, p, _ := parse(t, src)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
}

func TestParseClassTypedField(t *testing.T) {
	src := `program P;
	class Node {
		Node next;
	}`
	_, p, _ := parse(t, src)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
}
