// Package emit implements the target object-model backend: an in-memory
// metadata image of defined types, method signatures, and constructed
// generic instantiations, persisted as a msgpack artifact.
package emit

import (
	"fmt"
	"strings"
	"sync"

	"fortio.org/safecast"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/types"
)

// TypeKind classifies one entry of the image's type table.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	// TypeCore is an immutable platform base-library type.
	TypeCore
	// TypeDefined is a mutable type owned by this compilation.
	TypeDefined
	// TypeGenericParam is one unbound generic parameter of a defined type.
	TypeGenericParam
	// TypeConstructed is an open generic with concrete arguments applied.
	TypeConstructed
)

func (k TypeKind) String() string {
	switch k {
	case TypeCore:
		return "core"
	case TypeDefined:
		return "defined"
	case TypeGenericParam:
		return "generic-param"
	case TypeConstructed:
		return "constructed"
	default:
		return "invalid"
	}
}

// TypeDef is one entry of the type table. Which fields are meaningful
// depends on Kind.
type TypeDef struct {
	Kind     TypeKind
	Name     string
	Platform string          // core: platform base-library name
	Arity    int             // core/defined: generic parameter count
	Params   []types.TypeRef // defined: generic parameter handles
	Owner    types.TypeRef   // generic param: owning defined type
	Index    int             // generic param: position
	Generic  types.TypeRef   // constructed: the open generic
	Args     []types.TypeRef // constructed: applied arguments
}

// MethodDef is one declared method signature.
type MethodDef struct {
	Owner  types.TypeRef
	Name   string
	Params []types.TypeRef
	Return types.TypeRef
	Public bool
}

// Image is the in-memory output module. Index 0 of both tables is a
// reserved invalid sentinel so the zero handle never aliases real metadata.
type Image struct {
	mu          sync.Mutex
	moduleName  string
	typedefs    []TypeDef
	methods     []MethodDef
	constructed map[string]types.TypeRef
}

var _ types.Backend = (*Image)(nil)

// NewImage creates an empty output module.
func NewImage(moduleName string) *Image {
	img := &Image{
		moduleName:  moduleName,
		constructed: make(map[string]types.TypeRef),
	}
	img.typedefs = append(img.typedefs, TypeDef{})
	img.methods = append(img.methods, MethodDef{})
	return img
}

// ModuleName returns the output module's name.
func (img *Image) ModuleName() string {
	return img.moduleName
}

func (img *Image) addTypeLocked(def TypeDef) types.TypeRef {
	lenDefs, err := safecast.Conv[uint32](len(img.typedefs))
	if err != nil {
		panic(fmt.Errorf("type table overflow: %w", err))
	}
	ref := types.TypeRef(lenDefs)
	img.typedefs = append(img.typedefs, def)
	return ref
}

// ImportCore registers a platform base-library type.
func (img *Image) ImportCore(name string, arity int, platformName string) (types.TypeRef, error) {
	if name == "" {
		return types.NoTypeRef, fmt.Errorf("core type needs a name")
	}
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.addTypeLocked(TypeDef{
		Kind:     TypeCore,
		Name:     name,
		Platform: platformName,
		Arity:    arity,
	}), nil
}

// DefineType allocates a mutable type skeleton plus one generic parameter
// handle per requested name, preserving order.
func (img *Image) DefineType(name string, genericParams []string) (types.TypeRef, []types.TypeRef, error) {
	if name == "" {
		return types.NoTypeRef, nil, fmt.Errorf("defined type needs a name")
	}
	img.mu.Lock()
	defer img.mu.Unlock()

	owner := img.addTypeLocked(TypeDef{
		Kind:  TypeDefined,
		Name:  name,
		Arity: len(genericParams),
	})
	params := make([]types.TypeRef, 0, len(genericParams))
	for i, paramName := range genericParams {
		params = append(params, img.addTypeLocked(TypeDef{
			Kind:  TypeGenericParam,
			Name:  paramName,
			Owner: owner,
			Index: i,
		}))
	}
	img.typedefs[owner].Params = params
	return owner, params, nil
}

// DefineMethod declares a public method signature on owner.
func (img *Image) DefineMethod(owner types.TypeRef, name string, params []types.TypeRef, ret types.TypeRef) (types.MethodRef, error) {
	img.mu.Lock()
	defer img.mu.Unlock()

	def, ok := img.lookupLocked(owner)
	if !ok || def.Kind != TypeDefined {
		return types.NoMethodRef, fmt.Errorf("method %q: owner %d is not a defined type", name, owner)
	}
	for i, p := range params {
		if _, ok := img.lookupLocked(p); !ok {
			return types.NoMethodRef, fmt.Errorf("method %q: parameter %d has invalid type handle", name, i)
		}
	}
	if _, ok := img.lookupLocked(ret); !ok {
		return types.NoMethodRef, fmt.Errorf("method %q: invalid return type handle", name)
	}

	lenMethods, err := safecast.Conv[uint32](len(img.methods))
	if err != nil {
		panic(fmt.Errorf("method table overflow: %w", err))
	}
	ref := types.MethodRef(lenMethods)
	img.methods = append(img.methods, MethodDef{
		Owner:  owner,
		Name:   name,
		Params: params,
		Return: ret,
		Public: true,
	})
	return ref, nil
}

// Instantiate applies concrete arguments to an open generic handle.
// Structurally equal instantiations are interned to one handle, so repeated
// resolution of the same type expression yields interchangeable handles.
func (img *Image) Instantiate(generic types.TypeRef, args []types.TypeRef) (types.TypeRef, error) {
	img.mu.Lock()
	defer img.mu.Unlock()

	def, ok := img.lookupLocked(generic)
	if !ok {
		return types.NoTypeRef, fmt.Errorf("instantiate: invalid generic handle %d", generic)
	}
	if def.Kind != TypeCore && def.Kind != TypeDefined {
		return types.NoTypeRef, fmt.Errorf("instantiate: %s is not an open generic", def.Name)
	}
	if def.Arity == 0 {
		return types.NoTypeRef, fmt.Errorf("instantiate: %s has no generic parameters", def.Name)
	}
	if len(args) != def.Arity {
		return types.NoTypeRef, fmt.Errorf("instantiate: %s expects %d arguments, got %d", def.Name, def.Arity, len(args))
	}
	for i, arg := range args {
		if _, ok := img.lookupLocked(arg); !ok {
			return types.NoTypeRef, fmt.Errorf("instantiate: argument %d has invalid type handle", i)
		}
	}

	key := constructedKey(generic, args)
	if ref, ok := img.constructed[key]; ok {
		return ref, nil
	}
	ref := img.addTypeLocked(TypeDef{
		Kind:    TypeConstructed,
		Name:    def.Name,
		Generic: generic,
		Args:    append([]types.TypeRef(nil), args...),
	})
	img.constructed[key] = ref
	return ref, nil
}

func constructedKey(generic types.TypeRef, args []types.TypeRef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d[", generic)
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", arg)
	}
	b.WriteByte(']')
	return b.String()
}

func (img *Image) lookupLocked(ref types.TypeRef) (*TypeDef, bool) {
	if ref == types.NoTypeRef || int(ref) >= len(img.typedefs) {
		return nil, false
	}
	return &img.typedefs[ref], true
}

// Lookup returns the type table entry for a handle.
func (img *Image) Lookup(ref types.TypeRef) (TypeDef, bool) {
	img.mu.Lock()
	defer img.mu.Unlock()
	def, ok := img.lookupLocked(ref)
	if !ok {
		return TypeDef{}, false
	}
	return *def, true
}

// Method returns the method table entry for a handle.
func (img *Image) Method(ref types.MethodRef) (MethodDef, bool) {
	img.mu.Lock()
	defer img.mu.Unlock()
	if ref == types.NoMethodRef || int(ref) >= len(img.methods) {
		return MethodDef{}, false
	}
	return img.methods[ref], true
}

// MethodsOf returns every method declared on owner, in declaration order.
func (img *Image) MethodsOf(owner types.TypeRef) []MethodDef {
	img.mu.Lock()
	defer img.mu.Unlock()
	var out []MethodDef
	for i := 1; i < len(img.methods); i++ {
		if img.methods[i].Owner == owner {
			out = append(out, img.methods[i])
		}
	}
	return out
}

// TypeCount reports how many real type entries exist (sentinel excluded).
func (img *Image) TypeCount() int {
	img.mu.Lock()
	defer img.mu.Unlock()
	return len(img.typedefs) - 1
}

// MethodCount reports how many method signatures exist (sentinel excluded).
func (img *Image) MethodCount() int {
	img.mu.Lock()
	defer img.mu.Unlock()
	return len(img.methods) - 1
}

// DisplayName renders a handle for diagnostics and the inspect command,
// e.g. "Box", "Box<Int>", "T".
func (img *Image) DisplayName(ref types.TypeRef) string {
	def, ok := img.Lookup(ref)
	if !ok {
		return fmt.Sprintf("<invalid:%d>", ref)
	}
	if def.Kind != TypeConstructed {
		return def.Name
	}
	var b strings.Builder
	b.WriteString(def.Name)
	b.WriteByte('<')
	for i, arg := range def.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(img.DisplayName(arg))
	}
	b.WriteByte('>')
	return b.String()
}
