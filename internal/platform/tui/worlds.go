package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
	"github.com/vovakirdan/tile-platformer/internal/storage"
)

// WorldSource tells where a world came from.
type WorldSource string

const (
	SourceBuiltin WorldSource = "built-in"
	SourceStored  WorldSource = "stored"
	SourceFile    WorldSource = "file"
)

// WorldInfo describes a playable world.
type WorldInfo struct {
	Name      string
	Source    WorldSource
	Rows      int
	Levels    int
	UpdatedAt time.Time // Zero for built-in worlds
}

// LoadedWorld is a parsed world ready to play.
type LoadedWorld struct {
	Name   string
	Source WorldSource
	Path   string // Set only for worlds read from a file
	Dir    *world.Directory
}

// ListWorlds returns the built-in worlds followed by the stored ones.
// store may be nil.
func ListWorlds(store *storage.Store) ([]WorldInfo, error) {
	var infos []WorldInfo
	for _, name := range platformer.BuiltinNames() {
		dir, err := platformer.LoadBuiltin(name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, WorldInfo{
			Name:   name,
			Source: SourceBuiltin,
			Rows:   dir.Rows(),
			Levels: dir.LevelCount(),
		})
	}

	if store == nil {
		return infos, nil
	}

	entries, err := store.ListWorlds()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		infos = append(infos, WorldInfo{
			Name:      e.Name,
			Source:    SourceStored,
			Rows:      e.Rows,
			Levels:    e.Levels,
			UpdatedAt: e.UpdatedAt,
		})
	}
	return infos, nil
}

// OpenWorld resolves ref to a world. ref is tried as a file path, then as a
// stored world name, then as a built-in name. An empty ref selects the
// default built-in world.
func OpenWorld(store *storage.Store, ref string) (LoadedWorld, error) {
	if ref == "" {
		ref = platformer.DefaultWorld
	}

	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return openWorldFile(ref)
	}

	if store != nil {
		dir, err := store.LoadWorld(ref)
		switch {
		case err == nil:
			return LoadedWorld{Name: ref, Source: SourceStored, Dir: dir}, nil
		case !errors.Is(err, storage.ErrWorldNotFound):
			return LoadedWorld{}, err
		}
	}

	if _, ok := platformer.BuiltinWorld(ref); ok {
		dir, err := platformer.LoadBuiltin(ref)
		if err != nil {
			return LoadedWorld{}, err
		}
		return LoadedWorld{Name: ref, Source: SourceBuiltin, Dir: dir}, nil
	}

	return LoadedWorld{}, fmt.Errorf("unknown world %q: not a file, stored world or built-in world", ref)
}

// OpenWorldInfo loads a world picked from ListWorlds.
func OpenWorldInfo(store *storage.Store, info WorldInfo) (LoadedWorld, error) {
	switch info.Source {
	case SourceStored:
		if store == nil {
			return LoadedWorld{}, fmt.Errorf("world %q: no world catalog open", info.Name)
		}
		dir, err := store.LoadWorld(info.Name)
		if err != nil {
			return LoadedWorld{}, err
		}
		return LoadedWorld{Name: info.Name, Source: SourceStored, Dir: dir}, nil
	case SourceBuiltin:
		dir, err := platformer.LoadBuiltin(info.Name)
		if err != nil {
			return LoadedWorld{}, err
		}
		return LoadedWorld{Name: info.Name, Source: SourceBuiltin, Dir: dir}, nil
	}
	return OpenWorld(store, info.Name)
}

func openWorldFile(path string) (LoadedWorld, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoadedWorld{}, fmt.Errorf("reading world %s: %w", path, err)
	}
	dir, err := world.Parse(string(data))
	if err != nil {
		return LoadedWorld{}, fmt.Errorf("world %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return LoadedWorld{Name: name, Source: SourceFile, Path: path, Dir: dir}, nil
}
