package lexer

import (
	"testing"

	"github.com/mjcompiler/mjc/internal/intern"
	"github.com/mjcompiler/mjc/internal/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	names := intern.New()
	l := New(src, names)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestScansKeywordsAndPunctuation(t *testing.T) {
	toks := scanAll(t, "class C { int x; }")
	want := []token.Type{token.CLASS, token.IDENT, token.LBRACE, token.INT_KW, token.IDENT, token.SEMICOLON, token.RBRACE, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, ty := range want {
		if toks[i].Type != ty {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, ty)
		}
	}
}

func TestMainAndLengthLexAsIdent(t *testing.T) {
	toks := scanAll(t, "main Length MAIN")
	for i, tok := range toks[:3] {
		if tok.Type != token.IDENT {
			t.Errorf("token %d: got %v, want IDENT", i, tok.Type)
		}
	}
}

func TestCaseInsensitiveKeyword(t *testing.T) {
	toks := scanAll(t, "CLASS Class cLaSs")
	for i, tok := range toks[:3] {
		if tok.Type != token.CLASS {
			t.Errorf("token %d: got %v, want CLASS", i, tok.Type)
		}
	}
}

func TestOperators(t *testing.T) {
	toks := scanAll(t, "= == != <= >= && ||")
	want := []token.Type{token.ASSIGN, token.EQ, token.NE, token.LE, token.GE, token.AND, token.OR, token.EOF}
	for i, ty := range want {
		if toks[i].Type != ty {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, ty)
		}
	}
}

func TestLineNumbersAdvanceAcrossNewlines(t *testing.T) {
	toks := scanAll(t, "int x;\nint y;")
	if toks[0].Pos.Line != 1 {
		t.Fatalf("first token line = %d, want 1", toks[0].Pos.Line)
	}
	var secondIntLine int
	seen := 0
	for _, tok := range toks {
		if tok.Type == token.INT_KW {
			seen++
			if seen == 2 {
				secondIntLine = tok.Pos.Line
			}
		}
	}
	if secondIntLine != 2 {
		t.Fatalf("second int line = %d, want 2", secondIntLine)
	}
}

func TestStringAndCharLiterals(t *testing.T) {
	toks := scanAll(t, `"hello" 'a'`)
	if toks[0].Type != token.STRING || toks[0].Literal != "hello" {
		t.Fatalf("got %+v, want STRING hello", toks[0])
	}
	if toks[1].Type != token.CHAR || toks[1].Literal != "a" {
		t.Fatalf("got %+v, want CHAR a", toks[1])
	}
}

func TestLineComment(t *testing.T) {
	toks := scanAll(t, "int x; // trailing comment\nint y;")
	count := 0
	for _, tok := range toks {
		if tok.Type == token.INT_KW {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("got %d int tokens, want 2", count)
	}
}
