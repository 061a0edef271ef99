package token

import "testing"

func TestLookupKeywordIsCaseFolded(t *testing.T) {
	if _, ok := LookupKeyword("class"); !ok {
		t.Fatal("expected \"class\" to be a keyword")
	}
	if _, ok := LookupKeyword("main"); ok {
		t.Fatal("\"main\" must not be a reserved word")
	}
	if _, ok := LookupKeyword("length"); ok {
		t.Fatal("\"length\" must not be a reserved word")
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Column: 7}
	if got, want := p.String(), "3:7"; got != want {
		t.Fatalf("Position.String() = %q, want %q", got, want)
	}
}
