package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/platform/tui"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
	"github.com/vovakirdan/tui-galaxia/internal/sim"
)

var (
	flagHero string
	flagHard bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal.

Controls:
  Left/A Right/D  - Steer (the mouse steers too)
  R               - Reload
  P/Esc           - Pause
  Enter           - Start, continue, dismiss
  1 2 3           - Encounter choices
  F1-F4           - Buy revive, fast reload, rapid fire, speed boost
  H / X           - Next hero / toggle hard mode (title screen)
  Tab             - Scoreboard (title screen)
  B               - Back to the title screen
  Space           - Restart after game over
  Ctrl+S          - Save a screenshot
  Q/Ctrl+C        - Quit

Examples:
  galaxia play
  galaxia play --hero beta
  galaxia play --hard --config ./my-shooter.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagHero, "hero", string(progression.HeroAlpha), "Hero selected on the title screen")
	playCmd.Flags().BoolVar(&flagHard, "hard", false, "Select hard mode on the title screen")
}

func runPlay(_ *cobra.Command, _ []string) {
	hero := parseHero(flagHero)
	cfg, catalog := loadConfig()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed(),
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	store := openStore(false)
	opts := engineOptions(cfg, catalog, nil, rc.Seed, nil, logger)
	if store != nil {
		opts.Store = store
		defer store.Close()
	}
	opts.OnRunEnd = tui.RunSaver(store, rc.Seed, logger)
	e := sim.NewEngine(opts)

	if err := e.SelectHero(hero); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s is locked, starting with %s\n", hero, e.MenuHero())
	}
	if flagHard {
		if err := e.SetHardMode(true); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: hard mode unlocks after the first victory")
		}
	}

	if err := tui.Run(e, store, rc); err != nil {
		fatalf("running game: %v", err)
	}
}
