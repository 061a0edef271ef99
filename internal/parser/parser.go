// Package parser implements a recursive-descent parser for MJ source
// text. Its only contract with internal/ast is that it builds trees
// bottom-up through ast's constructors: parameter lists, argument lists
// and access chains are assembled with AttachRightmost, and declarator
// (DeclOp) spines by nesting MakeOp calls.
//
// Expression parsing uses Pratt-style precedence climbing keyed by
// token precedence, a cur/peek two-token lookahead, and an
// accumulating p.errors slice rather than panics.
package parser

import (
	"fmt"

	"github.com/mjcompiler/mjc/internal/ast"
	"github.com/mjcompiler/mjc/internal/intern"
	"github.com/mjcompiler/mjc/internal/lexer"
	"github.com/mjcompiler/mjc/internal/token"
)

// Parser turns a token stream into an MJ program tree.
type Parser struct {
	lex    *lexer.Lexer
	names  *intern.Table
	cur    token.Token
	peek   token.Token
	errors []string
}

// New creates a Parser reading from lex, interning identifiers through
// names (the same table the lexer itself interns through).
func New(lex *lexer.Lexer, names *intern.Table) *Parser {
	p := &Parser{lex: lex, names: names}
	p.next()
	p.next()
	return p
}

// Errors returns every parse error accumulated so far, in source
// order.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Sprintf("%s: %s", p.cur.Pos, fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(t token.Type) token.Token {
	tok := p.cur
	if p.cur.Type != t {
		p.errorf("expected %s, got %s (%q)", t, p.cur.Type, p.cur.Literal)
	}
	p.next()
	return tok
}

func (p *Parser) at(t token.Type) bool { return p.cur.Type == t }

// identLeaf builds an IdRef leaf from an IDENT token, using the NameId
// the lexer already interned into the token's Name field.
func (p *Parser) identLeaf(tok token.Token) *ast.Node {
	id := tok.Name
	return ast.MakeLeaf(ast.IdRef, int64(id), tok.Pos)
}

// ParseProgram parses "program" IDENT ";" followed by zero or more
// class declarations, chained as a BodyOp spine (spec.md section 8
// scenario 1: the program name itself is never inserted as a symbol).
func (p *Parser) ParseProgram() *ast.Node {
	pos := p.cur.Pos
	p.expect(token.PROGRAM)
	p.expect(token.IDENT)
	p.expect(token.SEMICOLON)

	body := ast.NullNode()
	for p.at(token.CLASS) {
		class := p.parseClassDecl()
		body = ast.MakeOp(ast.BodyOp, body, class, pos)
	}
	return ast.MakeOp(ast.ProgramOp, body, ast.NullNode(), pos)
}

// parseClassDecl parses "class" IDENT "{" member* "}" into a
// ClassDefOp whose Left is the member spine (a ClassOp chain) and
// whose Right is the class-name IdRef (spec.md section 4.3's
// class_def handler reads exactly this shape).
func (p *Parser) parseClassDecl() *ast.Node {
	pos := p.cur.Pos
	p.expect(token.CLASS)
	nameTok := p.expect(token.IDENT)
	p.expect(token.LBRACE)

	members := ast.NullNode()
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		member := p.parseClassMember()
		members = ast.MakeOp(ast.ClassOp, members, member, pos)
	}
	p.expect(token.RBRACE)

	return ast.MakeOp(ast.ClassDefOp, members, p.identLeaf(nameTok), pos)
}

func (p *Parser) parseClassMember() *ast.Node {
	if p.at(token.METHOD) {
		return p.parseMethodDecl()
	}
	return p.parseFieldDecl()
}

// parseFieldDecl parses "Type IDENT dims? (, IDENT dims?)* ;", where
// dims is one or more "[" bound? "]" after a name, into a DeclOp spine,
// one node per declarator, earliest-declared deepest (spec.md section
// 4.3's decl handler walks this spine leaves-first).
func (p *Parser) parseFieldDecl() *ast.Node {
	return p.parseDeclStatement()
}

func (p *Parser) parseDeclStatement() *ast.Node {
	pos := p.cur.Pos
	typeNode := p.parseType()
	chain := ast.NullNode()

	for {
		nameTok := p.expect(token.IDENT)
		declType := typeNode
		if p.at(token.LBRACKET) {
			// "int arr[5]": dimensions written after the name are added
			// to the type's own IndexOp spine for this declarator only.
			dims := ast.Right(typeNode)
			for p.at(token.LBRACKET) {
				dimPos := p.cur.Pos
				p.next()
				if !p.at(token.RBRACKET) {
					p.parseExpr() // fixed-size bound, not retained
				}
				p.expect(token.RBRACKET)
				dims = ast.MakeOp(ast.IndexOp, ast.NullNode(), dims, dimPos)
			}
			declType = ast.MakeOp(ast.TypeIdOp, ast.Left(typeNode), dims, pos)
		}
		var init *ast.Node = ast.NullNode()
		if p.at(token.ASSIGN) {
			p.next()
			init = p.parseExpr()
		}
		declarator := ast.MakeOp(ast.CommaOp, p.identLeaf(nameTok),
			ast.MakeOp(ast.CommaOp, declType, init, pos), pos)
		chain = ast.MakeOp(ast.DeclOp, chain, declarator, pos)

		if !p.at(token.COMMA) {
			break
		}
		p.next()
	}
	p.expect(token.SEMICOLON)
	return chain
}

// parseType parses a TypeIdOp: "int" or a class-name identifier,
// optionally followed by one or more "[" "]" array dimension markers
// chained as an IndexOp spine on the right (spec.md section 4.3's
// decl handler counts this chain's length as Dimen).
func (p *Parser) parseType() *ast.Node {
	pos := p.cur.Pos
	var base *ast.Node
	if p.at(token.INT_KW) {
		p.next()
		base = ast.MakeLeaf(ast.IntType, 0, pos)
	} else {
		nameTok := p.expect(token.IDENT)
		base = p.identLeaf(nameTok)
	}

	var dims []token.Position
	for p.at(token.LBRACKET) {
		dimPos := p.cur.Pos
		p.next()
		if !p.at(token.RBRACKET) {
			p.parseExpr() // fixed-size bound, not retained in the dimension count
		}
		p.expect(token.RBRACKET)
		dims = append(dims, dimPos)
	}

	right := ast.NullNode()
	for i := len(dims) - 1; i >= 0; i-- {
		right = ast.MakeOp(ast.IndexOp, ast.NullNode(), right, dims[i])
	}
	return ast.MakeOp(ast.TypeIdOp, base, right, pos)
}

// parseMethodDecl parses "method" Type IDENT "(" params? ")" "{" stmt*
// "}" into a MethodOp(HeadOp(name, SpecOp(params, returnType)), body).
func (p *Parser) parseMethodDecl() *ast.Node {
	pos := p.cur.Pos
	p.expect(token.METHOD)

	var returnType *ast.Node = ast.NullNode()
	if !p.at(token.VOID) {
		returnType = p.parseType()
	} else {
		p.next()
	}

	nameTok := p.expect(token.IDENT)
	p.expect(token.LPAREN)
	params := p.parseParamList()
	p.expect(token.RPAREN)

	spec := ast.MakeOp(ast.SpecOp, params, returnType, pos)
	head := ast.MakeOp(ast.HeadOp, p.identLeaf(nameTok), spec, pos)

	body := p.parseBlock()
	return ast.MakeOp(ast.MethodOp, head, body, pos)
}

// parseParamList parses a comma-separated parameter list into a spine
// of VArgTypeOp/RArgTypeOp wrappers threaded on their right child,
// assembled with AttachRightmost as spec.md section 4.1 prescribes for
// parameter lists.
func (p *Parser) parseParamList() *ast.Node {
	list := ast.NullNode()
	if p.at(token.RPAREN) {
		return list
	}
	for {
		byRef := false
		if p.at(token.REF) {
			byRef = true
			p.next()
		} else if p.at(token.VAL) {
			p.next()
		}
		typeNode := p.parseType()
		nameTok := p.expect(token.IDENT)

		inner := ast.MakeOp(ast.CommaOp, p.identLeaf(nameTok), typeNode, nameTok.Pos)
		op := ast.VArgTypeOp
		if byRef {
			op = ast.RArgTypeOp
		}
		wrapper := ast.MakeOp(op, inner, ast.NullNode(), nameTok.Pos)
		list = ast.AttachRightmost(wrapper, list)

		if !p.at(token.COMMA) {
			break
		}
		p.next()
	}
	return list
}

// parseBlock parses "{" stmt* "}" into a StmtOp spine.
func (p *Parser) parseBlock() *ast.Node {
	pos := p.cur.Pos
	p.expect(token.LBRACE)
	stmts := ast.NullNode()
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		stmt := p.parseStmt()
		stmts = ast.MakeOp(ast.StmtOp, stmts, stmt, pos)
	}
	p.expect(token.RBRACE)
	return stmts
}

func (p *Parser) parseStmt() *ast.Node {
	switch p.cur.Type {
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIfElse()
	case token.WHILE:
		return p.parseWhile()
	case token.RETURN:
		return p.parseReturn()
	case token.INT_KW:
		return p.parseDeclStatement()
	case token.IDENT:
		if p.isTypeStart() {
			return p.parseDeclStatement()
		}
		return p.parseSimpleStmt()
	default:
		p.errorf("unexpected token %s starting statement", p.cur.Type)
		p.next()
		return ast.NullNode()
	}
}

// isTypeStart heuristically distinguishes "ClassName x;" (a local
// declaration of a class-typed variable) from "x := ...;" or
// "x(...);" (a statement beginning with a variable use): a
// declaration's identifier is followed by another identifier, never by
// an operator or a "(".
func (p *Parser) isTypeStart() bool {
	return p.peek.Type == token.IDENT
}

func (p *Parser) parseIfElse() *ast.Node {
	pos := p.cur.Pos
	p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	thenStmt := p.parseStmt()

	elseStmt := ast.NullNode()
	if p.at(token.ELSE) {
		p.next()
		elseStmt = p.parseStmt()
	}
	branches := ast.MakeOp(ast.CommaOp, thenStmt, elseStmt, pos)
	return ast.MakeOp(ast.IfElseOp, cond, branches, pos)
}

func (p *Parser) parseWhile() *ast.Node {
	pos := p.cur.Pos
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	body := p.parseStmt()
	return ast.MakeOp(ast.LoopOp, cond, body, pos)
}

func (p *Parser) parseReturn() *ast.Node {
	pos := p.cur.Pos
	p.expect(token.RETURN)
	value := ast.NullNode()
	if !p.at(token.SEMICOLON) {
		value = p.parseExpr()
	}
	p.expect(token.SEMICOLON)
	return ast.MakeOp(ast.ReturnOp, value, ast.NullNode(), pos)
}

// parseSimpleStmt parses either an assignment ("var := expr ;") or a
// bare routine call used as a statement ("call(...) ;"), distinguished
// by whether "=" follows the parsed variable use.
func (p *Parser) parseSimpleStmt() *ast.Node {
	pos := p.cur.Pos
	lhs := p.parseVarUse(false)

	if p.at(token.ASSIGN) {
		p.next()
		rhs := p.parseExpr()
		p.expect(token.SEMICOLON)
		return ast.MakeOp(ast.AssignOp, lhs, rhs, pos)
	}

	if p.at(token.LPAREN) {
		p.next()
		args := p.parseArgList()
		p.expect(token.RPAREN)
		p.expect(token.SEMICOLON)
		return ast.MakeOp(ast.RoutineCallOp, lhs, args, pos)
	}

	p.errorf("expected ':=' or '(' after expression statement")
	p.expect(token.SEMICOLON)
	return lhs
}

// parseArgList parses a comma-separated expression list into a CommaOp
// spine threaded on the right, assembled with AttachRightmost.
func (p *Parser) parseArgList() *ast.Node {
	list := ast.NullNode()
	if p.at(token.RPAREN) {
		return list
	}
	for {
		pos := p.cur.Pos
		arg := p.parseExpr()
		wrapper := ast.MakeOp(ast.CommaOp, arg, ast.NullNode(), pos)
		list = ast.AttachRightmost(wrapper, list)
		if !p.at(token.COMMA) {
			break
		}
		p.next()
	}
	return list
}

// parseVarUse parses IdRef followed by a "." field / "[" index access
// chain into a VarOp(base, chain). allowCall is unused by the grammar
// today but documents that this is also the entry point a routine
// call's callee is parsed through.
func (p *Parser) parseVarUse(allowCall bool) *ast.Node {
	pos := p.cur.Pos
	nameTok := p.expect(token.IDENT)
	base := p.identLeaf(nameTok)

	chain := ast.NullNode()
	for p.at(token.DOT) || p.at(token.LBRACKET) {
		stepPos := p.cur.Pos
		var wrapper *ast.Node
		if p.at(token.DOT) {
			p.next()
			fieldTok := p.expect(token.IDENT)
			wrapper = ast.MakeOp(ast.FieldOp, p.identLeaf(fieldTok), ast.NullNode(), stepPos)
		} else {
			p.next()
			idx := p.parseExpr()
			p.expect(token.RBRACKET)
			wrapper = ast.MakeOp(ast.IndexOp, idx, ast.NullNode(), stepPos)
		}
		sel := ast.MakeOp(ast.SelectOp, wrapper, ast.NullNode(), stepPos)
		chain = ast.AttachRightmost(sel, chain)
	}
	return ast.MakeOp(ast.VarOp, base, chain, pos)
}

// Precedence climbing over the closed expression operator set: Or <
// And < equality < relational < additive < multiplicative < unary <
// primary.

func (p *Parser) parseExpr() *ast.Node { return p.parseOr() }

func (p *Parser) parseOr() *ast.Node {
	left := p.parseAnd()
	for p.at(token.OR) {
		pos := p.cur.Pos
		p.next()
		left = ast.MakeOp(ast.OrOp, left, p.parseAnd(), pos)
	}
	return left
}

func (p *Parser) parseAnd() *ast.Node {
	left := p.parseEquality()
	for p.at(token.AND) {
		pos := p.cur.Pos
		p.next()
		left = ast.MakeOp(ast.AndOp, left, p.parseEquality(), pos)
	}
	return left
}

func (p *Parser) parseEquality() *ast.Node {
	left := p.parseRelational()
	for p.at(token.EQ) || p.at(token.NE) {
		pos := p.cur.Pos
		op := ast.EQOp
		if p.cur.Type == token.NE {
			op = ast.NEOp
		}
		p.next()
		left = ast.MakeOp(op, left, p.parseRelational(), pos)
	}
	return left
}

func (p *Parser) parseRelational() *ast.Node {
	left := p.parseAdditive()
	for p.at(token.LT) || p.at(token.GT) || p.at(token.LE) || p.at(token.GE) {
		pos := p.cur.Pos
		var op ast.OpKind
		switch p.cur.Type {
		case token.LT:
			op = ast.LTOp
		case token.GT:
			op = ast.GTOp
		case token.LE:
			op = ast.LEOp
		case token.GE:
			op = ast.GEOp
		}
		p.next()
		left = ast.MakeOp(op, left, p.parseAdditive(), pos)
	}
	return left
}

func (p *Parser) parseAdditive() *ast.Node {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		pos := p.cur.Pos
		op := ast.AddOp
		if p.cur.Type == token.MINUS {
			op = ast.SubOp
		}
		p.next()
		left = ast.MakeOp(op, left, p.parseMultiplicative(), pos)
	}
	return left
}

func (p *Parser) parseMultiplicative() *ast.Node {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) {
		pos := p.cur.Pos
		op := ast.MultOp
		if p.cur.Type == token.SLASH {
			op = ast.DivOp
		}
		p.next()
		left = ast.MakeOp(op, left, p.parseUnary(), pos)
	}
	return left
}

func (p *Parser) parseUnary() *ast.Node {
	if p.at(token.MINUS) {
		pos := p.cur.Pos
		p.next()
		return ast.MakeOp(ast.UnaryNegOp, p.parseUnary(), ast.NullNode(), pos)
	}
	if p.at(token.NOT) {
		pos := p.cur.Pos
		p.next()
		return ast.MakeOp(ast.NotOp, p.parseUnary(), ast.NullNode(), pos)
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() *ast.Node {
	pos := p.cur.Pos
	switch p.cur.Type {
	case token.INT:
		tok := p.cur
		p.next()
		return ast.MakeLeaf(ast.IntLit, parseIntLiteral(tok.Literal), pos)
	case token.CHAR:
		tok := p.cur
		p.next()
		r := []rune(tok.Literal)
		var v int64
		if len(r) > 0 {
			v = int64(r[0])
		}
		return ast.MakeLeaf(ast.CharLit, v, pos)
	case token.STRING:
		tok := p.cur
		p.next()
		return ast.MakeLeaf(ast.StringLit, int64(tok.Name), pos)
	case token.TRUE:
		p.next()
		return ast.MakeLeaf(ast.IntLit, 1, pos)
	case token.FALSE:
		p.next()
		return ast.MakeLeaf(ast.IntLit, 0, pos)
	case token.LPAREN:
		p.next()
		inner := p.parseExpr()
		p.expect(token.RPAREN)
		return inner
	case token.IDENT:
		varUse := p.parseVarUse(true)
		if p.at(token.LPAREN) {
			p.next()
			args := p.parseArgList()
			p.expect(token.RPAREN)
			return ast.MakeOp(ast.RoutineCallOp, varUse, args, pos)
		}
		return varUse
	default:
		p.errorf("unexpected token %s in expression", p.cur.Type)
		p.next()
		return ast.NullNode()
	}
}

func parseIntLiteral(s string) int64 {
	var v int64
	for _, r := range s {
		v = v*10 + int64(r-'0')
	}
	return v
}
