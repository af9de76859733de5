package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/types"
)

// Current schema version - increment when the payload format changes.
const imageSchemaVersion uint16 = 1

// TypeRecord is the serialized form of one type table entry.
type TypeRecord struct {
	Kind     uint8
	Name     string
	Platform string
	Arity    int
	Params   []uint32
	Owner    uint32
	Index    int
	Generic  uint32
	Args     []uint32
}

// MethodRecord is the serialized form of one method signature.
type MethodRecord struct {
	Owner  uint32
	Name   string
	Params []uint32
	Return uint32
	Public bool
}

// Payload is the persisted image artifact.
type Payload struct {
	Schema  uint16
	Module  string
	Types   []TypeRecord
	Methods []MethodRecord
}

func refs(in []types.TypeRef) []uint32 {
	if in == nil {
		return nil
	}
	out := make([]uint32, len(in))
	for i, r := range in {
		out[i] = uint32(r)
	}
	return out
}

func (img *Image) payload() *Payload {
	img.mu.Lock()
	defer img.mu.Unlock()

	p := &Payload{
		Schema:  imageSchemaVersion,
		Module:  img.moduleName,
		Types:   make([]TypeRecord, 0, len(img.typedefs)-1),
		Methods: make([]MethodRecord, 0, len(img.methods)-1),
	}
	for _, def := range img.typedefs[1:] {
		p.Types = append(p.Types, TypeRecord{
			Kind:     uint8(def.Kind),
			Name:     def.Name,
			Platform: def.Platform,
			Arity:    def.Arity,
			Params:   refs(def.Params),
			Owner:    uint32(def.Owner),
			Index:    def.Index,
			Generic:  uint32(def.Generic),
			Args:     refs(def.Args),
		})
	}
	for _, m := range img.methods[1:] {
		p.Methods = append(p.Methods, MethodRecord{
			Owner:  uint32(m.Owner),
			Name:   m.Name,
			Params: refs(m.Params),
			Return: uint32(m.Return),
			Public: m.Public,
		})
	}
	return p
}

// Persist serializes the image to path. The write is atomic: a temp file in
// the target directory is renamed over the destination.
func (img *Image) Persist(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), "image-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(img.payload()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode image: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// ReadPayload decodes a persisted image artifact.
func ReadPayload(path string) (*Payload, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var p Payload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if p.Schema != imageSchemaVersion {
		return nil, fmt.Errorf("image schema %d not supported (want %d)", p.Schema, imageSchemaVersion)
	}
	return &p, nil
}
