package types

import (
	"fmt"
	"sync"
)

// CoreSeed maps one surface-language name to a platform base-library type.
type CoreSeed struct {
	Name     string
	Arity    int
	Platform string
}

// Defined pairs a mutable type handle with its generic parameter handles in
// declared order.
type Defined struct {
	Type   TypeRef
	Params []TypeRef
}

// Registry owns the type tables for one compilation: the immutable core
// seeds and the monotonically growing table of defined types. It is scoped
// to a single compile call, never process-wide, so independent compilations
// can run concurrently in one process.
type Registry struct {
	mu      sync.Mutex
	backend Backend
	core    map[Identity]TypeRef
	defined map[Identity]Defined
	order   []Identity

	void TypeRef
	any  TypeRef
}

// NewRegistry seeds a registry from the core type library. The seed set
// must provide the unit type ("Void") and the universal object type
// ("AnyObject"); everything else is whatever the platform library offers.
func NewRegistry(backend Backend, seeds []CoreSeed) (*Registry, error) {
	r := &Registry{
		backend: backend,
		core:    make(map[Identity]TypeRef, len(seeds)),
		defined: make(map[Identity]Defined),
	}
	for _, seed := range seeds {
		id := Ident(seed.Name, seed.Arity)
		if _, ok := r.core[id]; ok {
			return nil, fmt.Errorf("core seed %s listed twice", id)
		}
		ref, err := backend.ImportCore(seed.Name, seed.Arity, seed.Platform)
		if err != nil {
			return nil, fmt.Errorf("seed core type %s: %w", id, err)
		}
		r.core[id] = ref
	}
	r.void = r.core[Ident("Void", 0)]
	r.any = r.core[Ident("AnyObject", 0)]
	if r.void == NoTypeRef {
		return nil, fmt.Errorf("core type library provides no Void type")
	}
	if r.any == NoTypeRef {
		return nil, fmt.Errorf("core type library provides no AnyObject type")
	}
	return r, nil
}

// Backend exposes the emission capability the registry was built over.
func (r *Registry) Backend() Backend {
	return r.backend
}

// Void returns the unit type used for omitted return annotations.
func (r *Registry) Void() TypeRef {
	return r.void
}

// Any returns the universal object type substituted for parameters with no
// declared type.
func (r *Registry) Any() TypeRef {
	return r.any
}

// DefineType allocates a fresh type skeleton for the identity
// (name, len(genericParams)) and records it. A second definition of the
// same identity fails with DuplicateTypeError instead of overwriting the
// first.
func (r *Registry) DefineType(name string, genericParams []string) (Defined, error) {
	id := Ident(name, len(genericParams))

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defined[id]; exists {
		return Defined{}, &DuplicateTypeError{Identity: id}
	}
	ref, params, err := r.backend.DefineType(name, genericParams)
	if err != nil {
		return Defined{}, fmt.Errorf("define type %s: %w", id, err)
	}
	def := Defined{Type: ref, Params: params}
	r.defined[id] = def
	r.order = append(r.order, id)
	return def, nil
}

// Lookup finds a type handle for the identity, checking defined types
// first, then core types.
func (r *Registry) Lookup(id Identity) (TypeRef, bool) {
	r.mu.Lock()
	def, ok := r.defined[id]
	r.mu.Unlock()
	if ok {
		return def.Type, true
	}
	ref, ok := r.core[id]
	return ref, ok
}

// LookupDefined returns the full defined record, generic parameter handles
// included. Core types are not visible through it.
func (r *Registry) LookupDefined(id Identity) (Defined, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	def, ok := r.defined[id]
	return def, ok
}

// DefinedTypes returns every defined type handle in definition order. This
// is the final output of the declaration pipeline, handed to the backend
// for persistence.
func (r *Registry) DefinedTypes() []TypeRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TypeRef, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defined[id].Type)
	}
	return out
}

// DefinedIdentities returns the identities of all defined types in
// definition order.
func (r *Registry) DefinedIdentities() []Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Identity, len(r.order))
	copy(out, r.order)
	return out
}
