package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
	"github.com/vovakirdan/tile-platformer/internal/platform/tui"
	"github.com/vovakirdan/tile-platformer/internal/registry"
)

var (
	flagWorld   string
	flagConfig  string
	flagWatch   bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a world",
	Long: `Start playing a world.

--world accepts a world file, the name of a stored world or the name of a
built-in world, tried in that order. Without it the default world is played.

Controls:
  Left/Right, A/D          - Run
  Shift+Left/Right, A/D    - Sprint (capital A/D)
  Up/W/Space               - Jump
  P/Esc                    - Pause
  R                        - Restart from the first level
  Ctrl+S                   - Save a screenshot
  Q/Ctrl+C                 - Quit

Examples:
  platformer play
  platformer play --world sandbox
  platformer play --world ./levels.txt --watch --log-file play.log
  platformer play --config ./my-platformer.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagWorld, "world", "", "World file, stored world or built-in world name")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the world file when it changes")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg := loadGameConfig(flagConfig)

	logger, closeLog, err := fileLogger(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore()
	loaded, err := tui.OpenWorld(store, flagWorld)
	if store != nil {
		store.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := tui.RunOptions{
		HoldTicks: gameCfg.Input.HoldTicks,
		Logger:    logger,
	}

	if flagWatch {
		if loaded.Path == "" {
			fmt.Fprintf(os.Stderr, "Error: --watch needs a world file, %q is a %s world\n", loaded.Name, loaded.Source)
			os.Exit(1)
		}
		watcher, watchErr := tui.WatchWorld(loaded.Path)
		if watchErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", watchErr)
			os.Exit(1)
		}
		defer watcher.Close()
		opts.Watcher = watcher
		logger.Info("watching world file", "path", watcher.Path())
	}

	game, err := registry.Create(platformer.GameID, registry.Options{
		World:     loaded.Dir,
		WorldName: loaded.Name,
		Config:    gameCfg,
		Logger:    logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(game, terminalConfig(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}
