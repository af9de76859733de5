package parser

import (
	"github.com/nagyist/praeclarum-SwiftSharp/internal/ast"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/diag"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/token"
)

// parseFunc parses `func name(list)(list)... -> Ret { body }` and
// `init(...) { body }`. Every written parameter list is kept; rejecting
// curried declarations is the member pass's job, not the parser's.
func (p *Parser) parseFunc(modifiers []string) ast.Stmt {
	start := p.advance() // func | init
	name := "init"
	if start.Kind == token.KwFunc {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			p.resyncMember()
			return nil
		}
		name = nameTok.Text
	}

	decl := &ast.FuncDecl{
		Modifiers: modifiers,
		DeclName:  name,
	}
	if !p.at(token.LParen) {
		p.expect(token.LParen, diag.SynUnexpectedToken)
		p.resyncMember()
		return nil
	}
	for p.at(token.LParen) {
		decl.ParamLists = append(decl.ParamLists, p.parseParamList())
	}
	if p.at(token.Arrow) {
		p.advance()
		if t, ok := p.parseTypeExpr(); ok {
			decl.Return = &t
		}
	}
	if p.at(token.LBrace) {
		decl.Body = p.captureBody()
	}
	decl.Loc = start.Span.Cover(p.lastSpan)
	return decl
}

// parseParamList parses one `( ... )` group.
func (p *Parser) parseParamList() []ast.Param {
	p.advance() // (
	params := []ast.Param{}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		params = append(params, p.parseParam())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, diag.SynUnclosedDelimiter)
	return params
}

// parseParam parses `@attr* [externalName] localName[: Type][= default]`.
// A single written name serves as both external and local name.
func (p *Parser) parseParam() ast.Param {
	var param ast.Param
	for p.at(token.At) {
		p.advance()
		if attrTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier); ok {
			param.Attributes = append(param.Attributes, attrTok.Text)
		}
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.skipParam()
		return param
	}
	param.ExternalName = nameTok.Text
	param.LocalName = nameTok.Text
	param.Loc = nameTok.Span
	if p.at(token.Ident) {
		local := p.advance()
		param.LocalName = local.Text
		param.Loc = param.Loc.Cover(local.Span)
	}
	if p.at(token.Colon) {
		p.advance()
		if t, ok := p.parseTypeExpr(); ok {
			param.Type = &t
			param.Loc = param.Loc.Cover(t.Loc)
		}
	}
	if p.at(token.Assign) {
		p.advance()
		param.HasDefault = true
		p.skipParam()
	}
	return param
}

// skipParam consumes tokens up to the next comma or the closing paren of
// the current list.
func (p *Parser) skipParam() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.LParen, token.LBracket, token.Lt:
			depth++
		case token.RBracket, token.Gt:
			if depth > 0 {
				depth--
			}
		case token.RParen:
			if depth == 0 {
				return
			}
			depth--
		case token.Comma:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}

// captureBody records the raw token run of a `{ ... }` block, braces
// included, for the deferred body-compilation pass.
func (p *Parser) captureBody() []token.Token {
	var body []token.Token
	depth := 0
	for !p.at(token.EOF) {
		tok := p.advance()
		body = append(body, tok)
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				return body
			}
		}
	}
	p.bag.Add(diag.NewError(diag.SynUnclosedDelimiter, p.lastSpan,
		"unterminated function body"))
	return body
}
