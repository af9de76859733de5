package lexer

import (
	"testing"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/source"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/token"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	fset := source.NewFileSet()
	id := fset.AddVirtual("test.swift", []byte(src))
	return Tokenize(fset.Get(id))
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenizeClassHeader(t *testing.T) {
	tokens := tokenize(t, "class Box<T> { func get() -> T {} }")
	want := []token.Kind{
		token.KwClass, token.Ident, token.Lt, token.Ident, token.Gt,
		token.LBrace, token.KwFunc, token.Ident, token.LParen, token.RParen,
		token.Arrow, token.Ident, token.LBrace, token.RBrace, token.RBrace,
		token.EOF,
	}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	tokens := tokenize(t, "Class class")
	if tokens[0].Kind != token.Ident {
		t.Fatalf("capitalized Class should be an identifier, got %s", tokens[0].Kind)
	}
	if tokens[1].Kind != token.KwClass {
		t.Fatalf("lowercase class should be a keyword, got %s", tokens[1].Kind)
	}
}

func TestNestedBlockComments(t *testing.T) {
	tokens := tokenize(t, "/* outer /* inner */ still out */ enum")
	if tokens[0].Kind != token.KwEnum {
		t.Fatalf("expected enum after nested comment, got %s %q", tokens[0].Kind, tokens[0].Text)
	}
}

func TestLineComment(t *testing.T) {
	tokens := tokenize(t, "// heading\nstruct Point")
	if tokens[0].Kind != token.KwStruct || tokens[1].Text != "Point" {
		t.Fatalf("unexpected stream: %v", kinds(tokens))
	}
}

func TestIdentifierNFCNormalization(t *testing.T) {
	// "é" written as 'e' + combining acute must equal the precomposed form
	decomposed := "cafe\u0301"
	precomposed := "caf\u00e9"
	tok1 := tokenize(t, decomposed)[0]
	tok2 := tokenize(t, precomposed)[0]
	if tok1.Kind != token.Ident || tok2.Kind != token.Ident {
		t.Fatalf("expected identifiers, got %s / %s", tok1.Kind, tok2.Kind)
	}
	if tok1.Text != tok2.Text {
		t.Fatalf("NFC normalization mismatch: %q vs %q", tok1.Text, tok2.Text)
	}
}

func TestArrowVersusMinus(t *testing.T) {
	tokens := tokenize(t, "-> -")
	if tokens[0].Kind != token.Arrow {
		t.Fatalf("expected arrow, got %s", tokens[0].Kind)
	}
	if tokens[1].Kind != token.Op || tokens[1].Text != "-" {
		t.Fatalf("expected minus op, got %s %q", tokens[1].Kind, tokens[1].Text)
	}
}

func TestStringLiteralWithEscapes(t *testing.T) {
	tokens := tokenize(t, `"say \"hi\"" next`)
	if tokens[0].Kind != token.StringLit {
		t.Fatalf("expected string literal, got %s", tokens[0].Kind)
	}
	if tokens[1].Kind != token.Ident || tokens[1].Text != "next" {
		t.Fatalf("lexer overshot the string: %s %q", tokens[1].Kind, tokens[1].Text)
	}
}

func TestNumbers(t *testing.T) {
	tokens := tokenize(t, "42 3.14 1_000")
	if tokens[0].Kind != token.IntLit || tokens[0].Text != "42" {
		t.Fatalf("int literal: %s %q", tokens[0].Kind, tokens[0].Text)
	}
	if tokens[1].Kind != token.FloatLit || tokens[1].Text != "3.14" {
		t.Fatalf("float literal: %s %q", tokens[1].Kind, tokens[1].Text)
	}
	if tokens[2].Kind != token.IntLit || tokens[2].Text != "1_000" {
		t.Fatalf("underscored literal: %s %q", tokens[2].Kind, tokens[2].Text)
	}
}

func TestEOFIsSticky(t *testing.T) {
	fset := source.NewFileSet()
	id := fset.AddVirtual("test.swift", []byte("x"))
	lx := New(fset.Get(id))
	lx.Next()
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %s", tok.Kind)
		}
	}
}
