// Package lexer turns source bytes into tokens for the declaration parser.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/source"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/token"
)

// Lexer scans one source file.
type Lexer struct {
	file   *source.File
	cursor Cursor
	look   *token.Token
}

// New returns a lexer positioned at the start of file.
func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	lx.skipTrivia()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.spanFrom(lx.cursor.Off)}
	}

	start := lx.cursor.Off
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch) || ch >= utf8.RuneSelf:
		return lx.scanIdentOrKeyword(start)
	case ch >= '0' && ch <= '9':
		return lx.scanNumber(start)
	case ch == '"':
		return lx.scanString(start)
	default:
		return lx.scanPunct(start)
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.Next()
		lx.look = &tok
	}
	return *lx.look
}

// Tokenize drains the lexer into a slice, EOF token included.
func Tokenize(file *source.File) []token.Token {
	lx := New(file)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// skipTrivia consumes whitespace and comments. Block comments nest, matching
// Swift's lexical rules.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.cursor.Bump()
		case ch == '/':
			b0, b1, ok := lx.cursor.Peek2()
			if !ok || b0 != '/' {
				return
			}
			switch b1 {
			case '/':
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
			case '*':
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth := 1
				for !lx.cursor.EOF() && depth > 0 {
					c0, c1, ok2 := lx.cursor.Peek2()
					switch {
					case ok2 && c0 == '/' && c1 == '*':
						depth++
						lx.cursor.Bump()
						lx.cursor.Bump()
					case ok2 && c0 == '*' && c1 == '/':
						depth--
						lx.cursor.Bump()
						lx.cursor.Bump()
					default:
						lx.cursor.Bump()
					}
				}
			default:
				return
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdentOrKeyword(start uint32) token.Token {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if isIdentContinueByte(ch) {
			lx.cursor.Bump()
			continue
		}
		if ch < utf8.RuneSelf {
			break
		}
		r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		for i := 0; i < size; i++ {
			lx.cursor.Bump()
		}
	}
	raw := lx.text(start)
	// Swift treats identifiers as equal under canonical (NFC) equivalence.
	ident := norm.NFC.String(raw)
	if kind, ok := token.LookupKeyword(ident); ok {
		return token.Token{Kind: kind, Span: lx.spanFrom(start), Text: ident}
	}
	return token.Token{Kind: token.Ident, Span: lx.spanFrom(start), Text: ident}
}

func (lx *Lexer) scanNumber(start uint32) token.Token {
	kind := token.IntLit
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch >= '0' && ch <= '9' || ch == '_' {
			lx.cursor.Bump()
			continue
		}
		if ch == '.' {
			_, b1, ok := lx.cursor.Peek2()
			if !ok || b1 < '0' || b1 > '9' || kind == token.FloatLit {
				break
			}
			kind = token.FloatLit
			lx.cursor.Bump()
			continue
		}
		break
	}
	return token.Token{Kind: kind, Span: lx.spanFrom(start), Text: lx.text(start)}
}

func (lx *Lexer) scanString(start uint32) token.Token {
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		ch := lx.cursor.Bump()
		if ch == '\\' {
			lx.cursor.Bump()
			continue
		}
		if ch == '"' {
			return token.Token{Kind: token.StringLit, Span: lx.spanFrom(start), Text: lx.text(start)}
		}
	}
	// unterminated string: surface as Invalid, parser reports it
	return token.Token{Kind: token.Invalid, Span: lx.spanFrom(start), Text: lx.text(start)}
}

func (lx *Lexer) scanPunct(start uint32) token.Token {
	ch := lx.cursor.Bump()
	kind := token.Invalid
	switch ch {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case ',':
		kind = token.Comma
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semi
	case '.':
		kind = token.Dot
	case '?':
		kind = token.Question
	case '@':
		kind = token.At
	case '-':
		if lx.cursor.Peek() == '>' {
			lx.cursor.Bump()
			kind = token.Arrow
		} else {
			kind = token.Op
		}
	case '=':
		if isOperatorByte(lx.cursor.Peek()) {
			lx.consumeOperatorRun()
			kind = token.Op
		} else {
			kind = token.Assign
		}
	default:
		if isOperatorByte(ch) {
			lx.consumeOperatorRun()
			kind = token.Op
		}
	}
	return token.Token{Kind: kind, Span: lx.spanFrom(start), Text: lx.text(start)}
}

func (lx *Lexer) consumeOperatorRun() {
	for isOperatorByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) text(start uint32) string {
	return string(lx.file.Content[start:lx.cursor.Off])
}

func (lx *Lexer) spanFrom(start uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: start, End: lx.cursor.Off}
}

func isIdentStartByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || b >= '0' && b <= '9'
}

func isOperatorByte(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '%', '!', '&', '|', '^', '~', '=':
		return true
	default:
		return false
	}
}
