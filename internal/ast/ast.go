// Package ast defines the parsed declaration shapes consumed by the
// declaration pipeline. The pipeline treats a file as an ordered sequence of
// statements; only type-bearing statements matter to it, everything else is
// carried opaquely.
package ast

import (
	"github.com/nagyist/praeclarum-SwiftSharp/internal/source"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/token"
)

// Stmt is one top-level statement of a source module.
type Stmt interface {
	Span() source.Span
	stmtNode()
}

// Decl is one member declaration inside a type body.
type Decl interface {
	Span() source.Span
	declNode()
}

// File is one parsed source module.
type File struct {
	FileID  source.FileID
	Path    string
	Imports []ImportDecl
	Stmts   []Stmt
}

// ImportDecl records an `import Module` line.
type ImportDecl struct {
	Module string
	Loc    source.Span
}

// TypeExpr is a source-level type reference: a head name with optional
// generic arguments, possibly written as a qualified path (A.B.C). The
// resolver only supports single-segment heads; extra path segments are kept
// so it can fail loudly instead of resolving the wrong symbol.
type TypeExpr struct {
	Path []string
	Args []TypeExpr
	Loc  source.Span
}

// Name returns the head name of a single-segment type expression.
func (t *TypeExpr) Name() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[len(t.Path)-1]
}

// Qualified reports whether the reference has more than one path segment.
func (t *TypeExpr) Qualified() bool {
	return len(t.Path) > 1
}

// ClassKind distinguishes the two record flavors.
type ClassKind uint8

const (
	ClassKindClass ClassKind = iota
	ClassKindStruct
)

func (k ClassKind) String() string {
	if k == ClassKindStruct {
		return "struct"
	}
	return "class"
}

// ClassDecl is a class or struct declaration.
type ClassDecl struct {
	Kind          ClassKind
	DeclName      string
	GenericParams []string
	Inherits      []TypeExpr
	Members       []Decl
	Loc           source.Span
}

// EnumCase is one case of a tagged union.
type EnumCase struct {
	CaseName string
	Payload  []TypeExpr
	Loc      source.Span
}

// EnumDecl is a tagged-union declaration.
type EnumDecl struct {
	DeclName      string
	GenericParams []string
	Inherits      []TypeExpr
	Cases         []EnumCase
	Members       []Decl
	Loc           source.Span
}

// TypealiasDecl binds a name to an existing type expression.
type TypealiasDecl struct {
	DeclName string
	Target   TypeExpr
	Loc      source.Span
}

// Param is one declared function parameter.
type Param struct {
	Attributes   []string
	ExternalName string
	LocalName    string
	Type         *TypeExpr
	HasDefault   bool
	Loc          source.Span
}

// FuncDecl is a function declaration. ParamLists keeps every written
// parameter list; more than one means a curried declaration, which the
// member pass rejects.
type FuncDecl struct {
	Modifiers  []string
	DeclName   string
	ParamLists [][]Param
	Return     *TypeExpr
	Body       []token.Token
	Loc        source.Span
}

// VarDecl is a stored property declaration; the member pass ignores it.
type VarDecl struct {
	DeclName string
	Type     *TypeExpr
	Mutable  bool
	Loc      source.Span
}

func (d *ClassDecl) Span() source.Span     { return d.Loc }
func (d *EnumDecl) Span() source.Span      { return d.Loc }
func (d *TypealiasDecl) Span() source.Span { return d.Loc }
func (d *FuncDecl) Span() source.Span      { return d.Loc }
func (d *VarDecl) Span() source.Span       { return d.Loc }

func (d *ClassDecl) stmtNode()     {}
func (d *EnumDecl) stmtNode()      {}
func (d *TypealiasDecl) stmtNode() {}
func (d *FuncDecl) stmtNode()      {}
func (d *VarDecl) stmtNode()       {}

func (d *FuncDecl) declNode() {}
func (d *VarDecl) declNode()  {}
