package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
	"github.com/vovakirdan/tile-platformer/internal/storage"
)

const tinyWorld = "aaaa/ZZZZ-aaaa/ZZZZ"

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "worlds.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveTestWorld(t *testing.T, store *storage.Store, name, data string) {
	t.Helper()
	dir, err := world.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := store.SaveWorld(name, dir); err != nil {
		t.Fatalf("SaveWorld failed: %v", err)
	}
}

func TestOpenWorldDefault(t *testing.T) {
	loaded, err := OpenWorld(nil, "")
	if err != nil {
		t.Fatalf("OpenWorld failed: %v", err)
	}
	if loaded.Name != platformer.DefaultWorld || loaded.Source != SourceBuiltin {
		t.Errorf("got %s (%s), expected built-in %s", loaded.Name, loaded.Source, platformer.DefaultWorld)
	}
	if loaded.Dir == nil {
		t.Error("Dir is nil")
	}
}

func TestOpenWorldFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caves.txt")
	if err := os.WriteFile(path, []byte(tinyWorld+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loaded, err := OpenWorld(nil, path)
	if err != nil {
		t.Fatalf("OpenWorld failed: %v", err)
	}
	if loaded.Source != SourceFile || loaded.Path != path || loaded.Name != "caves" {
		t.Errorf("got %+v", loaded)
	}
	if loaded.Dir.LevelCount() != 2 {
		t.Errorf("LevelCount = %d, expected 2", loaded.Dir.LevelCount())
	}
}

func TestOpenWorldMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("aaaa/ZZ"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := OpenWorld(nil, path)
	if !errors.Is(err, world.ErrMalformedLevelData) {
		t.Errorf("err = %v, expected ErrMalformedLevelData", err)
	}
}

func TestOpenWorldStoredShadowsBuiltin(t *testing.T) {
	store := openTestStore(t)
	saveTestWorld(t, store, platformer.DefaultWorld, tinyWorld)

	loaded, err := OpenWorld(store, platformer.DefaultWorld)
	if err != nil {
		t.Fatalf("OpenWorld failed: %v", err)
	}
	if loaded.Source != SourceStored {
		t.Errorf("Source = %s, expected stored", loaded.Source)
	}
	if loaded.Dir.Encode() != tinyWorld {
		t.Errorf("Encode = %q, expected %q", loaded.Dir.Encode(), tinyWorld)
	}
}

func TestOpenWorldUnknown(t *testing.T) {
	store := openTestStore(t)
	if _, err := OpenWorld(store, "no-such-world"); err == nil {
		t.Error("expected error for unknown world")
	}
}

func TestListWorlds(t *testing.T) {
	builtins := platformer.BuiltinNames()

	infos, err := ListWorlds(nil)
	if err != nil {
		t.Fatalf("ListWorlds failed: %v", err)
	}
	if len(infos) != len(builtins) {
		t.Fatalf("got %d worlds, expected %d built-ins", len(infos), len(builtins))
	}

	store := openTestStore(t)
	saveTestWorld(t, store, "mine", tinyWorld)

	infos, err = ListWorlds(store)
	if err != nil {
		t.Fatalf("ListWorlds failed: %v", err)
	}
	if len(infos) != len(builtins)+1 {
		t.Fatalf("got %d worlds, expected %d", len(infos), len(builtins)+1)
	}
	last := infos[len(infos)-1]
	if last.Name != "mine" || last.Source != SourceStored || last.Levels != 2 {
		t.Errorf("stored entry = %+v", last)
	}

	loaded, err := OpenWorldInfo(store, last)
	if err != nil {
		t.Fatalf("OpenWorldInfo failed: %v", err)
	}
	if loaded.Name != "mine" {
		t.Errorf("Name = %q, expected mine", loaded.Name)
	}
}
