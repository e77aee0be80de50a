package platformer

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
)

// DefaultWorld is the built-in world played when none is selected.
const DefaultWorld = "default"

//go:embed worlds/*.txt
var builtinWorlds embed.FS

// BuiltinNames returns the names of the worlds shipped with the binary.
func BuiltinNames() []string {
	matches, err := fs.Glob(builtinWorlds, "worlds/*.txt")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".txt"))
	}
	sort.Strings(names)
	return names
}

// BuiltinWorld returns the raw text of a built-in world.
func BuiltinWorld(name string) (string, bool) {
	data, err := builtinWorlds.ReadFile("worlds/" + name + ".txt")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// LoadBuiltin parses a built-in world.
func LoadBuiltin(name string) (*world.Directory, error) {
	data, ok := BuiltinWorld(name)
	if !ok {
		return nil, fmt.Errorf("platformer: unknown built-in world %q", name)
	}
	return world.Parse(data)
}
