package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
	"github.com/vovakirdan/tile-platformer/internal/platform/tui"
	"github.com/vovakirdan/tile-platformer/internal/storage"
)

var (
	flagImportName string
	flagExportOut  string
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Validate, show and manage worlds",
	Long: `Work with world files and the world catalog.

A world file holds one line of text: directory rows separated by '|',
levels within a row separated by '-', and tile rows within a level
separated by '/' (bottom row first). Tiles are 'Z' (background),
'a' and 'b' (solid).

Examples:
  platformer levels validate ./levels.txt
  platformer levels show default
  platformer levels import ./levels.txt --name caves
  platformer levels export caves -o caves.txt
  platformer levels list
  platformer levels delete caves`,
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check that a world file parses",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsValidate,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <world>",
	Short: "Print every level of a world",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsShow,
}

var levelsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store a world file in the catalog",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsImport,
}

var levelsExportCmd = &cobra.Command{
	Use:   "export <world>",
	Short: "Write a world in the file format",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsExport,
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and stored worlds",
	Args:  cobra.NoArgs,
	Run:   runLevelsList,
}

var levelsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a world from the catalog",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsDelete,
}

func init() {
	levelsImportCmd.Flags().StringVar(&flagImportName, "name", "", "Catalog name (default: file name without extension)")
	levelsExportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file (default: stdout)")

	levelsCmd.AddCommand(levelsValidateCmd)
	levelsCmd.AddCommand(levelsShowCmd)
	levelsCmd.AddCommand(levelsImportCmd)
	levelsCmd.AddCommand(levelsExportCmd)
	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsDeleteCmd)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// mustStore opens the world catalog or exits.
func mustStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("%v", err)
	}
	return store
}

func readWorldFile(path string) *world.Directory {
	data, err := os.ReadFile(path)
	if err != nil {
		fail("%v", err)
	}
	dir, err := world.Parse(string(data))
	if err != nil {
		fail("%s: %v", path, err)
	}
	return dir
}

func runLevelsValidate(_ *cobra.Command, args []string) {
	dir := readWorldFile(args[0])
	fmt.Printf("%s: ok, %d rows, %d levels\n", args[0], dir.Rows(), dir.LevelCount())
	for r := 0; r < dir.Rows(); r++ {
		widths := make([]string, 0, dir.Columns(r))
		for c := 0; c < dir.Columns(r); c++ {
			layout, _ := dir.Layout(world.Coord{Row: r, Col: c})
			widths = append(widths, fmt.Sprintf("%dx%d", layout.Width(), layout.Height()))
		}
		fmt.Printf("  row %d: %s\n", r, strings.Join(widths, " "))
	}
}

func runLevelsShow(_ *cobra.Command, args []string) {
	store := openStore()
	loaded, err := tui.OpenWorld(store, args[0])
	if store != nil {
		store.Close()
	}
	if err != nil {
		fail("%v", err)
	}

	dir := loaded.Dir
	fmt.Printf("%s (%s): %d rows, %d levels\n", loaded.Name, loaded.Source, dir.Rows(), dir.LevelCount())
	for r := 0; r < dir.Rows(); r++ {
		for c := 0; c < dir.Columns(r); c++ {
			coord := world.Coord{Row: r, Col: c}
			layout, _ := dir.Layout(coord)
			fmt.Printf("\nlevel %v  %dx%d\n", coord, layout.Width(), layout.Height())
			// Top row first, as it appears on screen.
			for i := layout.Height() - 1; i >= 0; i-- {
				fmt.Println(showRow(layout.Rows[i]))
			}
		}
	}
}

func showRow(row []world.TileType) string {
	var sb strings.Builder
	for _, t := range row {
		switch t {
		case world.TileSolidA:
			sb.WriteRune('█')
		case world.TileSolidB:
			sb.WriteRune('▓')
		default:
			sb.WriteRune('·')
		}
	}
	return sb.String()
}

func runLevelsImport(_ *cobra.Command, args []string) {
	path := args[0]
	dir := readWorldFile(path)

	name := flagImportName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	store := mustStore()
	defer store.Close()

	if err := store.SaveWorld(name, dir); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Stored %q: %d rows, %d levels\n", name, dir.Rows(), dir.LevelCount())
}

func runLevelsExport(_ *cobra.Command, args []string) {
	store := openStore()
	loaded, err := tui.OpenWorld(store, args[0])
	if store != nil {
		store.Close()
	}
	if err != nil {
		fail("%v", err)
	}

	data := loaded.Dir.Encode() + "\n"
	if flagExportOut == "" {
		fmt.Print(data)
		return
	}
	if err := os.WriteFile(flagExportOut, []byte(data), 0o644); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s\n", flagExportOut)
}

func runLevelsList(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	worlds, err := tui.ListWorlds(store)
	if err != nil {
		fail("%v", err)
	}

	maxNameLen := 4 // "Name" header
	for _, w := range worlds {
		maxNameLen = max(maxNameLen, len(w.Name))
	}

	fmt.Printf("  %-*s  %-8s  %4s  %6s  %s\n", maxNameLen, "Name", "Source", "Rows", "Levels", "Updated")
	fmt.Printf("  %-*s  %-8s  %4s  %6s  %s\n", maxNameLen, "----", "------", "----", "------", "-------")
	for _, w := range worlds {
		updated := "-"
		if !w.UpdatedAt.IsZero() {
			updated = w.UpdatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-*s  %-8s  %4d  %6d  %s\n", maxNameLen, w.Name, w.Source, w.Rows, w.Levels, updated)
	}
}

func runLevelsDelete(_ *cobra.Command, args []string) {
	store := mustStore()
	defer store.Close()

	if err := store.DeleteWorld(args[0]); err != nil {
		if errors.Is(err, storage.ErrWorldNotFound) {
			fail("no stored world named %q", args[0])
		}
		fail("%v", err)
	}
	fmt.Printf("Deleted %q\n", args[0])
}
