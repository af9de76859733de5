package project

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/types"
)

// Built-in platform seeds used when the manifest names no core library.
//
//go:embed corelib.toml
var defaultCoreLib string

type coreLibFile struct {
	Types []coreTypeEntry `toml:"types"`
}

type coreTypeEntry struct {
	Name     string `toml:"name"`
	Arity    int    `toml:"arity"`
	Platform string `toml:"platform"`
}

// LoadCoreLibrary reads the core type library that maps surface names to
// platform base-library types. An empty path selects the built-in seeds.
func LoadCoreLibrary(path string) ([]types.CoreSeed, error) {
	data := defaultCoreLib
	origin := "built-in core library"
	if path != "" {
		// #nosec G304 -- path comes from the project manifest
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read core library: %w", err)
		}
		data = string(raw)
		origin = path
	}

	var lib coreLibFile
	if _, err := toml.Decode(data, &lib); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", origin, err)
	}
	if len(lib.Types) == 0 {
		return nil, fmt.Errorf("%s: no [[types]] entries", origin)
	}

	seeds := make([]types.CoreSeed, 0, len(lib.Types))
	for _, entry := range lib.Types {
		if entry.Name == "" || entry.Platform == "" {
			return nil, fmt.Errorf("%s: core type entries need name and platform", origin)
		}
		if entry.Arity < 0 {
			return nil, fmt.Errorf("%s: %s: negative arity", origin, entry.Name)
		}
		seeds = append(seeds, types.CoreSeed{
			Name:     entry.Name,
			Arity:    entry.Arity,
			Platform: entry.Platform,
		})
	}
	return seeds, nil
}
