package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
	"github.com/vovakirdan/tile-platformer/internal/platform/tui"
	"github.com/vovakirdan/tile-platformer/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a world from a menu and play it",
	Long: `Start in interactive menu mode.

The menu lists the built-in worlds followed by the worlds stored in the
catalog (see 'platformer levels import'). After you quit a world you return
to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play world
  Q/Esc        - Quit

Examples:
  platformer menu
  platformer menu --fps 30
  platformer menu --db ./worlds.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
	menuCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

func runMenu(_ *cobra.Command, _ []string) {
	gameCfg := loadGameConfig(flagConfig)

	logger, closeLog, err := fileLogger(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()

	for {
		selected, updatedCfg, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = updatedCfg

		if selected == nil {
			return
		}

		loaded, err := tui.OpenWorldInfo(store, *selected)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		game, err := registry.Create(platformer.GameID, registry.Options{
			World:     loaded.Dir,
			WorldName: loaded.Name,
			Config:    gameCfg,
			Logger:    logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if err := tui.Run(game, cfg, tui.RunOptions{HoldTicks: gameCfg.Input.HoldTicks, Logger: logger}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			if store != nil {
				store.Close()
			}
			closeLog()
			os.Exit(1)
		}
	}
}
