package types

// TypeRef is an opaque handle to a concrete target type owned by the
// emission backend: a defined type, a core type, a generic parameter, or a
// constructed generic instantiation.
type TypeRef uint32

// NoTypeRef marks the absence of a type handle.
const NoTypeRef TypeRef = 0

// MethodRef is an opaque handle to a declared method signature, usable to
// attach a compiled body later.
type MethodRef uint32

// NoMethodRef marks the absence of a method handle.
const NoMethodRef MethodRef = 0

// Backend is the narrow capability surface of the target object-model
// emitter. Everything the declaration passes need from the output image
// goes through it; the passes never see concrete metadata.
type Backend interface {
	// ImportCore registers a platform base-library type under its surface
	// name and returns its immutable handle. Called only while seeding.
	ImportCore(name string, arity int, platformName string) (TypeRef, error)

	// DefineType allocates a mutable named type in the output module with
	// one generic parameter per name, in declared order. It returns the
	// type handle and the generic parameter handles.
	DefineType(name string, genericParams []string) (TypeRef, []TypeRef, error)

	// DefineMethod declares a public method signature on owner with
	// positional parameters and the given return type.
	DefineMethod(owner TypeRef, name string, params []TypeRef, ret TypeRef) (MethodRef, error)

	// Instantiate applies concrete type arguments to an open generic
	// handle. Construction is pure; repeated calls with equal inputs yield
	// interchangeable handles.
	Instantiate(generic TypeRef, args []TypeRef) (TypeRef, error)

	// Persist writes the output image to the given location.
	Persist(path string) error
}
