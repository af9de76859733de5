package parser

import (
	"fmt"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/ast"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/diag"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/token"
)

// parseTypeExpr parses a source type reference. Supported shapes:
//
//	A, A.B.C, A<B, C>, [T], [K: V], T?
//
// The collection sugar desugars to the core Array/Dictionary/Optional
// generics, same as the surface language defines it.
func (p *Parser) parseTypeExpr() (ast.TypeExpr, bool) {
	switch p.lx.Peek().Kind {
	case token.LBracket:
		return p.parseCollectionType()
	case token.Ident:
		return p.parseNamedType()
	default:
		tok := p.lx.Peek()
		p.bag.Add(diag.NewError(diag.SynExpectType, tok.Span,
			fmt.Sprintf("expected a type, found %s", describe(tok))))
		return ast.TypeExpr{}, false
	}
}

func (p *Parser) parseNamedType() (ast.TypeExpr, bool) {
	nameTok := p.advance()
	t := ast.TypeExpr{
		Path: []string{nameTok.Text},
		Loc:  nameTok.Span,
	}
	for p.at(token.Dot) {
		p.advance()
		seg, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			return t, false
		}
		t.Path = append(t.Path, seg.Text)
		t.Loc = t.Loc.Cover(seg.Span)
	}
	if p.at(token.Lt) {
		p.advance()
		for {
			arg, ok := p.parseTypeExpr()
			if !ok {
				p.skipUntil(token.Gt)
				p.advance()
				return t, false
			}
			t.Args = append(t.Args, arg)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			if _, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter); !ok {
				return t, false
			}
			break
		}
		t.Loc = t.Loc.Cover(p.lastSpan)
	}
	return p.parseOptionalSuffix(t), true
}

// parseCollectionType parses `[T]` and `[K: V]`.
func (p *Parser) parseCollectionType() (ast.TypeExpr, bool) {
	open := p.advance() // [
	first, ok := p.parseTypeExpr()
	if !ok {
		p.skipUntil(token.RBracket)
		p.advance()
		return ast.TypeExpr{}, false
	}
	t := ast.TypeExpr{Loc: open.Span}
	if p.at(token.Colon) {
		p.advance()
		value, ok := p.parseTypeExpr()
		if !ok {
			p.skipUntil(token.RBracket)
			p.advance()
			return ast.TypeExpr{}, false
		}
		t.Path = []string{"Dictionary"}
		t.Args = []ast.TypeExpr{first, value}
	} else {
		t.Path = []string{"Array"}
		t.Args = []ast.TypeExpr{first}
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter); !ok {
		return t, false
	}
	t.Loc = t.Loc.Cover(p.lastSpan)
	return p.parseOptionalSuffix(t), true
}

// parseOptionalSuffix wraps the type in Optional for every trailing '?'.
func (p *Parser) parseOptionalSuffix(t ast.TypeExpr) ast.TypeExpr {
	for p.at(token.Question) {
		q := p.advance()
		t = ast.TypeExpr{
			Path: []string{"Optional"},
			Args: []ast.TypeExpr{t},
			Loc:  t.Loc.Cover(q.Span),
		}
	}
	return t
}
