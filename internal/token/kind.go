package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating-point literal.
	FloatLit
	// StringLit represents a string literal.
	StringLit

	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwTypealias represents the 'typealias' keyword.
	KwTypealias // typealias
	// KwFunc represents the 'func' keyword.
	KwFunc // func
	// KwCase represents the 'case' keyword.
	KwCase // case
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwVar represents the 'var' keyword.
	KwVar // var
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwPublic represents the 'public' keyword.
	KwPublic // public
	// KwPrivate represents the 'private' keyword.
	KwPrivate // private
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwInit represents the 'init' keyword.
	KwInit // init

	// Punctuation and operators.
	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	Lt       // <
	Gt       // >
	Comma    // ,
	Colon    // :
	Semi     // ;
	Dot      // .
	Arrow    // ->
	Assign   // =
	Question // ?
	At       // @
	// Op covers every remaining operator character run inside bodies.
	Op
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Ident:
		return "ident"
	case IntLit:
		return "int"
	case FloatLit:
		return "float"
	case StringLit:
		return "string"
	case KwClass:
		return "class"
	case KwStruct:
		return "struct"
	case KwEnum:
		return "enum"
	case KwTypealias:
		return "typealias"
	case KwFunc:
		return "func"
	case KwCase:
		return "case"
	case KwImport:
		return "import"
	case KwVar:
		return "var"
	case KwLet:
		return "let"
	case KwReturn:
		return "return"
	case KwPublic:
		return "public"
	case KwPrivate:
		return "private"
	case KwStatic:
		return "static"
	case KwInit:
		return "init"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Comma:
		return ","
	case Colon:
		return ":"
	case Semi:
		return ";"
	case Dot:
		return "."
	case Arrow:
		return "->"
	case Assign:
		return "="
	case Question:
		return "?"
	case At:
		return "@"
	case Op:
		return "op"
	default:
		return "unknown"
	}
}
