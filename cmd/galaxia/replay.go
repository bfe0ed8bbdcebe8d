package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaxia/internal/config"
	"github.com/vovakirdan/tui-galaxia/internal/encounter"
	"github.com/vovakirdan/tui-galaxia/internal/replay"
	"github.com/vovakirdan/tui-galaxia/internal/sim"
)

var flagReplayVerbose bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Verify a recorded replay",
	Long: `Play a replay written by 'galaxia simulate --record' through a fresh
engine and check that it ends in the recorded state.

The replay names the config file it was recorded with; that file must
still be readable. Pass --encounters if the recording used a custom
catalog.

Examples:
  galaxia replay run.galaxia
  galaxia replay run.galaxia --verbose`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVarP(&flagReplayVerbose, "verbose", "v", false, "Print every mode change")
}

func runReplay(_ *cobra.Command, args []string) {
	rep, err := replay.Load(args[0])
	if err != nil {
		fatalf("%v", err)
	}

	cfg, err := config.LoadShooter(rep.Config)
	if err != nil {
		fatalf("%v", err)
	}
	catalog, err := encounter.LoadCatalog(flagEncounters)
	if err != nil {
		fatalf("%v", err)
	}

	opts := rep.Options(cfg, newLogger(os.Stderr))
	opts.Catalog = catalog
	e := sim.NewEngine(opts)

	last := sim.ModeIdle
	p := &replay.Player{Replay: rep}
	if flagReplayVerbose {
		p.OnFrame = func(i int, s sim.Snapshot) {
			if s.Mode != last {
				fmt.Printf("%7d  %8.0fms  %-26s level %d  score %d\n", i, s.Now, s.Mode, s.Level, s.Score)
				last = s.Mode
			}
		}
	}

	fmt.Printf("Replay %s: seed %d, hero %s, %d frames\n", args[0], rep.Seed, rep.Hero, len(rep.Frames))
	if err := p.Verify(e); err != nil {
		if errors.Is(err, replay.ErrMismatch) {
			fatalf("replay diverged: %v", err)
		}
		fatalf("%v", err)
	}
	s := e.Snapshot()
	fmt.Printf("OK: %s at level %d, score %d, hash %016x\n", s.Mode, s.Level, s.Score, rep.Hash)
}
