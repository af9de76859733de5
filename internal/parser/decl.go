package parser

import (
	"fmt"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/ast"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/diag"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/token"
)

// parseDecl parses one declaration, top-level or member-level. Returns nil
// when recovery already happened.
func (p *Parser) parseDecl() ast.Stmt {
	modifiers := p.parseModifiers()
	switch p.lx.Peek().Kind {
	case token.KwClass, token.KwStruct:
		return p.parseClass()
	case token.KwEnum:
		return p.parseEnum()
	case token.KwTypealias:
		return p.parseTypealias()
	case token.KwFunc, token.KwInit:
		return p.parseFunc(modifiers)
	case token.KwVar, token.KwLet:
		return p.parseVar()
	default:
		tok := p.lx.Peek()
		p.bag.Add(diag.NewError(diag.SynUnexpectedToken, tok.Span,
			fmt.Sprintf("expected a declaration, found %s", describe(tok))))
		p.resyncTop()
		return nil
	}
}

func (p *Parser) parseModifiers() []string {
	var modifiers []string
	for {
		switch p.lx.Peek().Kind {
		case token.KwPublic, token.KwPrivate, token.KwStatic:
			modifiers = append(modifiers, p.advance().Text)
		default:
			return modifiers
		}
	}
}

func (p *Parser) parseClass() ast.Stmt {
	start := p.advance() // class | struct
	kind := ast.ClassKindClass
	if start.Kind == token.KwStruct {
		kind = ast.ClassKindStruct
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.resyncTop()
		return nil
	}
	decl := &ast.ClassDecl{
		Kind:          kind,
		DeclName:      nameTok.Text,
		GenericParams: p.parseGenericParams(),
		Inherits:      p.parseInheritance(),
	}
	decl.Members = p.parseMemberBlock(nil)
	decl.Loc = start.Span.Cover(p.lastSpan)
	return decl
}

func (p *Parser) parseEnum() ast.Stmt {
	start := p.advance() // enum
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.resyncTop()
		return nil
	}
	decl := &ast.EnumDecl{
		DeclName:      nameTok.Text,
		GenericParams: p.parseGenericParams(),
		Inherits:      p.parseInheritance(),
	}
	decl.Members = p.parseMemberBlock(&decl.Cases)
	decl.Loc = start.Span.Cover(p.lastSpan)
	return decl
}

func (p *Parser) parseTypealias() ast.Stmt {
	start := p.advance() // typealias
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.resyncTop()
		return nil
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken); !ok {
		p.resyncTop()
		return nil
	}
	target, ok := p.parseTypeExpr()
	if !ok {
		p.resyncTop()
		return nil
	}
	return &ast.TypealiasDecl{
		DeclName: nameTok.Text,
		Target:   target,
		Loc:      start.Span.Cover(p.lastSpan),
	}
}

func (p *Parser) parseVar() ast.Stmt {
	start := p.advance() // var | let
	mutable := start.Kind == token.KwVar
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.resyncMember()
		return nil
	}
	decl := &ast.VarDecl{
		DeclName: nameTok.Text,
		Mutable:  mutable,
	}
	if p.at(token.Colon) {
		p.advance()
		if t, ok := p.parseTypeExpr(); ok {
			decl.Type = &t
		}
	}
	if p.at(token.Assign) {
		p.advance()
		p.skipInitializer()
	}
	decl.Loc = start.Span.Cover(p.lastSpan)
	return decl
}

// skipInitializer consumes a stored-property initializer expression: every
// token up to the next member-start keyword or closing brace at depth zero.
func (p *Parser) skipInitializer() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case token.KwFunc, token.KwVar, token.KwLet, token.KwCase, token.KwInit,
			token.KwClass, token.KwStruct, token.KwEnum, token.KwTypealias,
			token.KwPublic, token.KwPrivate, token.KwStatic:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}

// parseGenericParams parses `<T, U>` into the ordered name list.
func (p *Parser) parseGenericParams() []string {
	if !p.at(token.Lt) {
		return nil
	}
	p.advance()
	var names []string
	for {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			p.skipUntil(token.Gt)
			p.advance()
			return names
		}
		names = append(names, nameTok.Text)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		p.expect(token.Gt, diag.SynUnclosedDelimiter)
		return names
	}
}

// parseInheritance parses `: A, B<C>` after a type name.
func (p *Parser) parseInheritance() []ast.TypeExpr {
	if !p.at(token.Colon) {
		return nil
	}
	p.advance()
	var out []ast.TypeExpr
	for {
		t, ok := p.parseTypeExpr()
		if !ok {
			return out
		}
		out = append(out, t)
		if !p.at(token.Comma) {
			return out
		}
		p.advance()
	}
}

// parseMemberBlock parses `{ ... }` collecting member declarations, and,
// when cases is non-nil, enum cases.
func (p *Parser) parseMemberBlock(cases *[]ast.EnumCase) []ast.Decl {
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken); !ok {
		p.resyncTop()
		return nil
	}
	var members []ast.Decl
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.KwCase) {
			if cases == nil {
				tok := p.advance()
				p.bag.Add(diag.NewError(diag.SynUnexpectedToken, tok.Span,
					"'case' is only allowed inside enum declarations"))
				p.resyncMember()
				continue
			}
			p.parseEnumCases(cases)
			continue
		}
		stmt := p.parseDecl()
		decl, ok := stmt.(ast.Decl)
		if !ok {
			if stmt != nil {
				p.bag.Add(diag.NewError(diag.SynExpectMember, stmt.Span(),
					"nested type declarations are not supported"))
			}
			continue
		}
		members = append(members, decl)
	}
	p.expect(token.RBrace, diag.SynUnclosedDelimiter)
	return members
}

// parseEnumCases parses `case A, B(Int), C` after the case keyword.
func (p *Parser) parseEnumCases(cases *[]ast.EnumCase) {
	p.advance() // case
	for {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			p.resyncMember()
			return
		}
		c := ast.EnumCase{CaseName: nameTok.Text, Loc: nameTok.Span}
		if p.at(token.LParen) {
			p.advance()
			for !p.at(token.RParen) && !p.at(token.EOF) {
				t, ok := p.parseTypeExpr()
				if !ok {
					p.skipUntil(token.RParen)
					break
				}
				c.Payload = append(c.Payload, t)
				if p.at(token.Comma) {
					p.advance()
				}
			}
			p.expect(token.RParen, diag.SynUnclosedDelimiter)
			c.Loc = c.Loc.Cover(p.lastSpan)
		}
		*cases = append(*cases, c)
		if !p.at(token.Comma) {
			return
		}
		p.advance()
	}
}

// resyncMember skips to the next plausible member start inside a type body.
func (p *Parser) resyncMember() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case token.KwFunc, token.KwVar, token.KwLet, token.KwCase, token.KwInit:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}

func (p *Parser) skipUntil(k token.Kind) {
	for !p.at(k) && !p.at(token.EOF) {
		p.advance()
	}
}
