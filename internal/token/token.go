// Package token defines the lexical token types consumed by the MJ lexer
// and parser.
package token

import (
	"fmt"

	"github.com/mjcompiler/mjc/internal/intern"
)

// Position identifies a location in a source file.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders a position as "line:column", the prefix the parser
// puts on each of its error messages.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Type is the closed set of MJ token kinds.
type Type int

const (
	ILLEGAL Type = iota
	EOF

	IDENT
	INT
	CHAR
	STRING

	// Keywords
	PROGRAM
	CLASS
	EXTENDS
	PUBLIC
	STATIC
	VOID
	RETURN
	IF
	ELSE
	WHILE
	INT_KW
	BOOLEAN
	STRING_KW
	NEW
	THIS
	TRUE
	FALSE
	METHOD
	VAL
	REF

	// Punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	SEMICOLON
	COMMA
	DOT
	ASSIGN

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	LT
	GT
	EQ
	NE
	LE
	GE
	AND
	OR
	NOT
)

var names = map[Type]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "IDENT",
	INT:       "INT",
	CHAR:      "CHAR",
	STRING:    "STRING",
	PROGRAM:   "program",
	CLASS:     "class",
	EXTENDS:   "extends",
	PUBLIC:    "public",
	STATIC:    "static",
	VOID:      "void",
	RETURN:    "return",
	IF:        "if",
	ELSE:      "else",
	WHILE:     "while",
	INT_KW:    "int",
	BOOLEAN:   "boolean",
	STRING_KW: "string",
	NEW:       "new",
	THIS:      "this",
	TRUE:      "true",
	FALSE:     "false",
	METHOD:    "method",
	VAL:       "val",
	REF:       "ref",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	SEMICOLON: ";",
	COMMA:     ",",
	DOT:       ".",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	LT:        "<",
	GT:        ">",
	EQ:        "==",
	NE:        "!=",
	LE:        "<=",
	GE:        ">=",
	AND:       "&&",
	OR:        "||",
	NOT:       "!",
}

// String renders a token type name, used in the parser's error messages.
func (t Type) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// keywords maps the case-folded spelling of every reserved word to its
// token type. Lookup is always performed against a case-folded key, so
// MJ keywords are recognized regardless of the casing used in the
// source (spec.md section 1: "all match-case-insensitive").
// "main" and "length" are deliberately absent: spec.md section 6 has
// the analyzer recognize them by interned name (find("main"),
// find("length")), not as reserved words, so they lex as ordinary
// IDENT tokens like any other identifier.
var keywords = map[string]Type{
	"class":   CLASS,
	"extends": EXTENDS,
	"public":  PUBLIC,
	"static":  STATIC,
	"void":    VOID,
	"return":  RETURN,
	"if":      IF,
	"else":    ELSE,
	"while":   WHILE,
	"int":     INT_KW,
	"boolean": BOOLEAN,
	"string":  STRING_KW,
	"new":     NEW,
	"this":    THIS,
	"true":    TRUE,
	"false":   FALSE,
	"method":  METHOD,
	"val":     VAL,
	"ref":     REF,
	"program": PROGRAM,
}

// LookupKeyword reports the token type for a case-folded identifier
// spelling, or (IDENT, false) if it names no MJ keyword.
func LookupKeyword(folded string) (Type, bool) {
	if t, ok := keywords[folded]; ok {
		return t, true
	}
	return IDENT, false
}

// Token is a single lexical token: its type, its literal source text
// (original casing preserved, for diagnostics), and its position. Name
// holds the interned id for IDENT and STRING tokens; it is meaningless
// for every other type.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
	Name    intern.NameId
}
