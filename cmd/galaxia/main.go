// galaxia is a vertical arcade shooter for the terminal.
//
// Usage:
//
//	galaxia play             - Play in the terminal
//	galaxia simulate         - Run the autopilot headless
//	galaxia replay <file>    - Verify a recorded run
//	galaxia serve            - Start SSH server for remote play
//	galaxia scores           - Show high scores and recent runs
//	galaxia progress         - Show the progression record
//	galaxia shop buy <item>  - Buy a consumable
//	galaxia hangar ...       - Build permanent upgrades
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.galaxia/galaxia.db)
//	--config <path>      - Override the game tuning YAML
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaxia/internal/audio"
	"github.com/vovakirdan/tui-galaxia/internal/config"
	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/encounter"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
	"github.com/vovakirdan/tui-galaxia/internal/sim"
	"github.com/vovakirdan/tui-galaxia/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagEncounters string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "galaxia",
	Short: "Galaxia - a vertical arcade shooter in your terminal",
	Long: `Galaxia is a lane shooter with bosses, random encounters and a
persistent armory and hangar.

Available commands:
  play      - Play in the terminal
  simulate  - Run the autopilot headless, optionally recording a replay
  replay    - Verify a recorded replay
  serve     - Start SSH server for remote play
  scores    - View high scores and recent runs
  progress  - Show the progression record
  shop      - Buy consumables for the next run
  hangar    - Build permanent upgrades

Examples:
  galaxia play
  galaxia play --hero beta --hard
  galaxia simulate --duration 5m --record run.galaxia
  galaxia replay run.galaxia
  galaxia serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.galaxia/galaxia.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagEncounters, "encounters", "", "Path to custom encounter catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(hangarCmd)
}

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the host logger at the --log-level level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "galaxia",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger logs to ~/.galaxia/galaxia.log when debugging a full-screen
// session, where stderr belongs to the TUI. It discards otherwise.
func fileLogger() (*log.Logger, func()) {
	if flagLogLevel != "debug" {
		return log.New(io.Discard), func() {}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".galaxia")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)
	f, err := os.OpenFile(filepath.Join(dir, "galaxia.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// loadConfig loads the tuning and the encounter catalog.
func loadConfig() (config.ShooterConfig, *encounter.Catalog) {
	cfg, err := config.LoadShooter(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	catalog, err := encounter.LoadCatalog(flagEncounters)
	if err != nil {
		fatalf("%v", err)
	}
	return cfg, catalog
}

// seed returns the --seed value, or a time based one.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// openStore opens the database. Commands that only play degrade to an
// in-memory record when it is unavailable.
func openStore(required bool) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		if required {
			fatalf("cannot open database: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// engineOptions wires the engine to the host services.
func engineOptions(cfg config.ShooterConfig, catalog *encounter.Catalog, store progression.Store, rngSeed int64, sink audio.Sink, logger *log.Logger) sim.Options {
	return sim.Options{
		Config:  cfg,
		RNG:     core.NewSimpleRNG(rngSeed),
		Sink:    sink,
		Store:   store,
		Catalog: catalog,
		Logger:  logger,
	}
}

// parseHero validates a --hero flag.
func parseHero(name string) progression.Hero {
	h := progression.Hero(name)
	if !h.Valid() {
		fatalf("unknown hero %q (alpha, beta, gamma)", name)
	}
	return h
}
