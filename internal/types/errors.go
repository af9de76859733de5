package types

import "fmt"

// UnresolvedTypeError reports a referenced type name+arity that is not
// found in any known scope.
type UnresolvedTypeError struct {
	Identity Identity
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("unresolved type %s", e.Identity)
}

// UnsupportedShapeError reports a declaration shape the pipeline refuses
// to compile: curried function declarations and qualified type paths.
type UnsupportedShapeError struct {
	Shape  string
	Detail string
}

func (e *UnsupportedShapeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unsupported %s", e.Shape)
	}
	return fmt.Sprintf("unsupported %s: %s", e.Shape, e.Detail)
}

// DuplicateTypeError reports a second definition for an identity that is
// already defined in this compilation.
type DuplicateTypeError struct {
	Identity Identity
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("duplicate definition of type %s", e.Identity)
}
