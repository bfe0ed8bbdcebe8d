package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaxia/internal/audio"
	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
	"github.com/vovakirdan/tui-galaxia/internal/replay"
	"github.com/vovakirdan/tui-galaxia/internal/sim"
)

var (
	flagSimDuration time.Duration
	flagSimHero     string
	flagSimHard     bool
	flagSimRecord   string
	flagSimAudio    string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the autopilot headless",
	Long: `Play one run with the built-in autopilot, without a terminal UI,
and print the result.

The run uses a copy of the stored progression record; nothing is
written back. With --record the input stream is saved as a replay that
'galaxia replay' can verify. With --audio-out the sound cues of the run
are rendered to a WAV file.

Examples:
  galaxia simulate --seed 42
  galaxia simulate --duration 10m --hero gamma
  galaxia simulate --seed 7 --record run.galaxia --audio-out run.wav`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagSimDuration, "duration", 3*time.Minute, "Longest run to simulate")
	simulateCmd.Flags().StringVar(&flagSimHero, "hero", string(progression.HeroAlpha), "Hero to fly")
	simulateCmd.Flags().BoolVar(&flagSimHard, "hard", false, "Play in hard mode")
	simulateCmd.Flags().StringVar(&flagSimRecord, "record", "", "Write a replay to this file")
	simulateCmd.Flags().StringVar(&flagSimAudio, "audio-out", "", "Render the sound cues to this WAV file")
}

func runSimulate(_ *cobra.Command, _ []string) {
	hero := parseHero(flagSimHero)
	cfg, catalog := loadConfig()
	logger := newLogger(os.Stderr)
	runSeed := seed()

	rec := progression.Defaults()
	if store := openStore(false); store != nil {
		loaded, err := store.Load()
		if err != nil {
			logger.Warn("cannot load progression, using defaults", "error", err)
		} else {
			rec = loaded
		}
		store.Close()
	}

	counter := &audio.Recorder{}
	sinks := audio.Tee{counter}
	var synth *audio.Synth
	if flagSimAudio != "" {
		synth = audio.NewSynth()
		synth.Skip[audio.PlayerShoot] = true
		sinks = append(sinks, synth)
	}

	var result *sim.RunResult
	opts := engineOptions(cfg, catalog, progression.NewMemStore(rec), runSeed, sinks, logger)
	opts.OnRunEnd = func(r sim.RunResult) { result = &r }
	e := sim.NewEngine(opts)

	recorder, err := replay.Begin(e, runSeed, hero, flagSimHard, flagConfig)
	if err != nil {
		fatalf("%v", err)
	}

	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}
	step := 1000 / float64(fps)
	limit := float64(flagSimDuration.Milliseconds())

	s := e.Snapshot()
	now := 0.0
	for now <= limit && result == nil {
		s = recorder.Tick(core.TickInput{Now: now, Frame: sim.Autopilot(s)})
		now += step
	}
	rep := recorder.Finish()

	fmt.Printf("Seed:      %d\n", runSeed)
	fmt.Printf("Hero:      %s\n", hero)
	if result == nil {
		fmt.Printf("Outcome:   running at %s (level %d, score %d)\n", flagSimDuration, s.Level, s.Score)
	} else {
		fmt.Printf("Outcome:   %s\n", result.Outcome)
		fmt.Printf("Score:     %d\n", result.Score)
		fmt.Printf("Level:     %d\n", result.Level)
		fmt.Printf("Currency:  %d\n", result.Currency)
		fmt.Printf("Parts:     %d\n", result.Parts)
		fmt.Printf("Game time: %s\n", (time.Duration(result.Duration) * time.Millisecond).Round(time.Second))
	}
	fmt.Printf("Kills:     %d\n", s.Kills)
	fmt.Printf("Bosses:    %d\n", counter.Count(audio.BossDefeated))
	fmt.Printf("Frames:    %d\n", recorder.Len())
	fmt.Printf("Hash:      %016x\n", rep.Hash)

	if flagSimRecord != "" {
		if err := replay.Save(flagSimRecord, rep); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("Replay:    %s\n", flagSimRecord)
	}
	if synth != nil {
		if err := synth.WriteFile(flagSimAudio); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("Audio:     %s (%d cues)\n", flagSimAudio, len(synth.Cues()))
	}
}
