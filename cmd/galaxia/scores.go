package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-galaxia/internal/platform/tui"
)

var flagScoresPlain bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and recent runs",
	Long: `Open the scoreboard with the top scores and the most recent runs.
With --plain, print the top 10 scores instead.

Examples:
  galaxia scores
  galaxia scores --plain`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print the top 10 instead of opening the scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	store := openStore(true)
	defer store.Close()

	if !flagScoresPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fatalf("scoreboard: %v", err)
		}
		return
	}

	scores, err := store.TopScores(10)
	if err != nil {
		fatalf("retrieving scores: %v", err)
	}

	fmt.Println("High Scores - Galaxia")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'galaxia play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-10s  %-5s  %-6s  %s\n", "Rank", "Hero", "Score", "Level", "Mode", "Date")
	fmt.Printf("  %-4s  %-6s  %-10s  %-5s  %-6s  %s\n", "----", "----", "-----", "-----", "----", "----")

	for i, entry := range scores {
		mode := "normal"
		if entry.HardMode {
			mode = "hard"
		}
		fmt.Printf("  %-4d  %-6s  %-10d  %-5d  %-6s  %s\n",
			i+1, entry.Hero, entry.Score, entry.Level, mode, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}
