package project

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// LoadManifest parses and validates a swiftsharp.toml file.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return m, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return m, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if err := m.Normalize(); err != nil {
		return m, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
