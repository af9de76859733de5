// Package token defines lexical token kinds for the Swift-like surface
// language.
// Invariants:
//   - Token.Text is a slice of the original source (no copies), except for
//     identifiers that needed NFC normalization.
//   - Token.Span matches Text exactly (Start..End).
//   - Attributes are lexed as '@' (Kind: At) + Ident; no per-attribute kinds.
//   - Built-in type names (Int, String, ...) are identifiers; only the type
//     registry knows which names are core types.
package token

import (
	"github.com/nagyist/praeclarum-SwiftSharp/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwClass, KwStruct, KwEnum, KwTypealias, KwFunc, KwCase, KwImport,
		KwVar, KwLet, KwReturn, KwPublic, KwPrivate, KwStatic, KwInit:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
