// Package unit models one translation unit: a parsed source module plus the
// machinery that maps its source-level type references to target type
// handles. Resolution is two-tier: a unit-local import cache is consulted
// first, then the registry shared by the whole compilation.
package unit

import (
	"strings"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/ast"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/types"
)

// Unit is the resolved representation of one parsed source module.
type Unit struct {
	file     *ast.File
	registry *types.Registry
	imports  map[types.Identity]types.TypeRef
}

// New wraps a parsed file over the shared registry.
func New(file *ast.File, registry *types.Registry) *Unit {
	return &Unit{
		file:     file,
		registry: registry,
		imports:  make(map[types.Identity]types.TypeRef),
	}
}

// File returns the parsed module.
func (u *Unit) File() *ast.File {
	return u.file
}

// Stmts exposes the statement list for the declaration passes.
func (u *Unit) Stmts() []ast.Stmt {
	return u.file.Stmts
}

// Registry returns the compilation-wide registry this unit resolves over.
func (u *Unit) Registry() *types.Registry {
	return u.registry
}

// Import publishes another unit's declared type into the local cache. The
// pipeline calls this after the type-declaration pass so cross-module
// references hit the cache before the shared registry.
func (u *Unit) Import(id types.Identity, ref types.TypeRef) {
	u.imports[id] = ref
}

// ImportCount reports how many cross-module types were published here.
func (u *Unit) ImportCount() int {
	return len(u.imports)
}

// Scope carries the generic parameters of the type whose member is being
// resolved, so a method on Box<T> can reference T.
type Scope map[string]types.TypeRef

// Resolve maps a source type expression to a concrete target type handle.
// It fails with types.UnresolvedTypeError when the head name+arity is not
// found in the scope, the import cache, the defined types, or the core
// types.
func (u *Unit) Resolve(t *ast.TypeExpr, scope Scope) (types.TypeRef, error) {
	if t.Qualified() {
		return types.NoTypeRef, &types.UnsupportedShapeError{
			Shape:  "qualified type path",
			Detail: strings.Join(t.Path, "."),
		}
	}
	id := types.Ident(t.Name(), len(t.Args))

	open, ok := u.lookup(id, scope)
	if !ok {
		return types.NoTypeRef, &types.UnresolvedTypeError{Identity: id}
	}
	if id.Arity == 0 {
		return open, nil
	}

	// generic arguments resolve depth-first, left to right
	args := make([]types.TypeRef, 0, len(t.Args))
	for i := range t.Args {
		arg, err := u.Resolve(&t.Args[i], scope)
		if err != nil {
			return types.NoTypeRef, err
		}
		args = append(args, arg)
	}
	return u.registry.Backend().Instantiate(open, args)
}

// ResolveOptional defaults to the void type when no annotation was written.
func (u *Unit) ResolveOptional(t *ast.TypeExpr, scope Scope) (types.TypeRef, error) {
	if t == nil {
		return u.registry.Void(), nil
	}
	return u.Resolve(t, scope)
}

func (u *Unit) lookup(id types.Identity, scope Scope) (types.TypeRef, bool) {
	if id.Arity == 0 && scope != nil {
		if ref, ok := scope[id.Name]; ok {
			return ref, true
		}
	}
	if ref, ok := u.imports[id]; ok {
		return ref, true
	}
	return u.registry.Lookup(id)
}
