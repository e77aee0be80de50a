// platformer is a tile-based platformer that runs in the terminal.
//
// Usage:
//
//	platformer play             - Play a world
//	platformer menu             - Pick a world interactively
//	platformer serve            - Start SSH server for remote play
//	platformer simulate         - Run the simulation headless
//	platformer levels <cmd>     - Validate, show and manage stored worlds
//	platformer list             - List available games
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set world catalog path (default: ~/.platformer/worlds.db)
//	--log-level <level>  - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tile-platformer/internal/config"
	"github.com/vovakirdan/tile-platformer/internal/core"
	_ "github.com/vovakirdan/tile-platformer/internal/games/platformer" // registers the game
	"github.com/vovakirdan/tile-platformer/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Tile Platformer - run and jump through a world of screens",
	Long: `Tile Platformer is a terminal side-scroller. A world is a grid of
single-screen levels; walking off a screen edge streams in the next one.

Available commands:
  play      - Play a world directly
  menu      - Interactive world picker
  serve     - Start SSH server for remote play
  simulate  - Run the simulation without a terminal UI
  levels    - Validate, show, import and export worlds
  list      - Show all available games

Examples:
  platformer play
  platformer play --world ./levels.txt --watch
  platformer menu
  platformer serve --ssh :2222
  platformer simulate --ticks 600 --right --jump-every 40`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/worlds.db", "Path to world catalog database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(levelsCmd)
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// fileLogger logs to path, or discards when path is empty. The terminal UI
// owns the screen, so interactive commands never log to stderr.
func fileLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f, "platformer")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// terminalConfig builds the runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

// openStore opens the world catalog. Failure is not fatal: built-in worlds
// and world files still work.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open world catalog: %v\n", err)
		return nil
	}
	return store
}

// loadGameConfig loads the platformer config or exits.
func loadGameConfig(path string) config.PlatformerConfig {
	cfg, err := config.LoadPlatformer(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
