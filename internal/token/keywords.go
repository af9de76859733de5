package token

var keywords = map[string]Kind{
	"class":     KwClass,
	"struct":    KwStruct,
	"enum":      KwEnum,
	"typealias": KwTypealias,
	"func":      KwFunc,
	"case":      KwCase,
	"import":    KwImport,
	"var":       KwVar,
	"let":       KwLet,
	"return":    KwReturn,
	"public":    KwPublic,
	"private":   KwPrivate,
	"static":    KwStatic,
	"init":      KwInit,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
