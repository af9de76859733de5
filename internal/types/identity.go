// Package types holds the type registry shared by every translation unit of
// one compilation: the immutable core (platform) type seeds and the table of
// every type defined so far. Concrete type storage lives behind the Backend
// capability interface; the registry only deals in opaque handles.
package types

import "fmt"

// Identity names a declared type within one compilation: two declarations
// are the same type iff name and generic-parameter count match.
type Identity struct {
	Name  string
	Arity int
}

// Ident is shorthand for building an Identity.
func Ident(name string, arity int) Identity {
	return Identity{Name: name, Arity: arity}
}

func (id Identity) String() string {
	if id.Arity == 0 {
		return id.Name
	}
	return fmt.Sprintf("%s`%d", id.Name, id.Arity)
}
