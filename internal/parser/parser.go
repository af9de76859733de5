// Package parser turns a token stream into the declaration AST the
// pipeline consumes. Only declarations are parsed structurally; member
// bodies are captured as raw token runs for the deferred body pass.
package parser

import (
	"fmt"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/ast"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/diag"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/lexer"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/source"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/token"
)

// Result pairs the parsed file with its diagnostics.
type Result struct {
	File *ast.File
	Bag  *diag.Bag
}

// Parser holds the state for parsing one file.
type Parser struct {
	lx       *lexer.Lexer
	file     *ast.File
	bag      *diag.Bag
	lastSpan source.Span
}

// ParseFile parses one source file into its declaration AST.
func ParseFile(f *source.File, maxDiagnostics int) Result {
	p := Parser{
		lx: lexer.New(f),
		file: &ast.File{
			FileID: f.ID,
			Path:   f.Path,
		},
		bag: diag.NewBag(maxDiagnostics),
	}
	p.parseTop()
	return Result{File: p.file, Bag: p.bag}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	got := p.lx.Peek()
	p.bag.Add(diag.NewError(code, got.Span,
		fmt.Sprintf("expected %s, found %s", k, describe(got))))
	return got, false
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return fmt.Sprintf("%q", tok.Text)
	default:
		return fmt.Sprintf("%q", tok.Kind.String())
	}
}

// parseTop is the top-level loop: imports and declarations until EOF.
func (p *Parser) parseTop() {
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.KwImport:
			p.parseImport()
		case token.KwClass, token.KwStruct, token.KwEnum, token.KwTypealias,
			token.KwFunc, token.KwPublic, token.KwPrivate, token.KwStatic:
			if stmt := p.parseDecl(); stmt != nil {
				p.file.Stmts = append(p.file.Stmts, stmt)
			}
		default:
			tok := p.lx.Peek()
			p.bag.Add(diag.NewError(diag.SynUnexpectedTopLevel, tok.Span,
				fmt.Sprintf("unexpected %s at top level", describe(tok))))
			p.resyncTop()
		}
	}
}

func (p *Parser) parseImport() {
	start := p.advance() // import
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.resyncTop()
		return
	}
	module := nameTok.Text
	for p.at(token.Dot) {
		p.advance()
		seg, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			break
		}
		module += "." + seg.Text
	}
	p.file.Imports = append(p.file.Imports, ast.ImportDecl{
		Module: module,
		Loc:    start.Span.Cover(p.lastSpan),
	})
}

// resyncTop skips tokens until something that can start a top-level
// declaration, balancing braces so a broken body does not poison the rest
// of the file.
func (p *Parser) resyncTop() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				p.advance()
				return
			}
			depth--
		case token.KwImport, token.KwClass, token.KwStruct, token.KwEnum,
			token.KwTypealias, token.KwFunc:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}
