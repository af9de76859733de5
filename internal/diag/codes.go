package diag

import "fmt"

// Code identifies one diagnostic kind. Codes are grouped in bands of a
// thousand per compiler stage.
type Code uint16

const (
	// UnknownCode is the fallback for unclassified failures.
	UnknownCode Code = 0

	// Lexical.
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002

	// Syntactic.
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynUnclosedDelimiter  Code = 2005
	SynExpectMember       Code = 2006

	// Declaration passes.
	DeclInfo             Code = 3000
	DeclUnresolvedType   Code = 3001
	DeclArityMismatch    Code = 3002
	DeclQualifiedPath    Code = 3003
	DeclCurriedFunction  Code = 3004
	DeclDuplicateType    Code = 3005
	DeclUntypedParameter Code = 3006

	// Emission backend.
	EmitInfo          Code = 4000
	EmitBadTypeRef    Code = 4001
	EmitPersistFailed Code = 4002
)

func (c Code) String() string {
	return fmt.Sprintf("SS%04d", uint16(c))
}
