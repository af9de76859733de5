// Package project loads the build configuration: the project manifest and
// the platform core type library that seeds the registry.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the expected project manifest file name.
const ManifestName = "swiftsharp.toml"

// Manifest is the parsed swiftsharp.toml.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Build   BuildSection   `toml:"build"`
}

// PackageSection names the output module.
type PackageSection struct {
	Name string `toml:"name"`
}

// BuildSection locates inputs and outputs.
type BuildSection struct {
	// Sources lists files or directories to compile, relative to the
	// manifest directory.
	Sources []string `toml:"sources"`
	// Output is the image artifact location, relative to the manifest
	// directory.
	Output string `toml:"output"`
	// CoreLib optionally points at a core type library file; empty means
	// the built-in platform seeds.
	CoreLib string `toml:"corelib"`
}

// ErrPackageNameMissing indicates a manifest without [package].name.
var ErrPackageNameMissing = errors.New("missing [package].name")

// FindManifest walks from dir upwards looking for swiftsharp.toml.
func FindManifest(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Normalize fills defaults and validates the manifest against its location.
func (m *Manifest) Normalize() error {
	if m.Package.Name == "" {
		return ErrPackageNameMissing
	}
	if len(m.Build.Sources) == 0 {
		m.Build.Sources = []string{"."}
	}
	if m.Build.Output == "" {
		m.Build.Output = fmt.Sprintf("%s.image", m.Package.Name)
	}
	return nil
}
