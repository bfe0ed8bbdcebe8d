package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaxia/internal/encounter"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the progression record",
	Long: `Print the persistent progression: bank, armory, heroes, hangar
upgrades and milestones.`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func runProgress(_ *cobra.Command, _ []string) {
	cfg, _ := loadConfig()
	store := openStore(true)
	defer store.Close()

	rec, err := store.Load()
	if err != nil {
		fatalf("loading progression: %v", err)
	}

	fmt.Println("Galaxia - Progression")
	fmt.Println()
	fmt.Printf("  High score         %d\n", rec.HighScore)
	fmt.Printf("  Cumulative score   %d\n", rec.CumulativeScore)
	fmt.Printf("  Cumulative levels  %d\n", rec.CumulativeLevels)
	fmt.Printf("  Bank               $%d\n", rec.TotalCurrency)
	fmt.Printf("  Upgrade parts      %d\n", rec.UpgradeParts)
	fmt.Printf("  Bosses defeated    %d\n", rec.BossesDefeated)
	fmt.Printf("  Training runs      %d\n", rec.TrainingCompletions)
	fmt.Printf("  Briefings seen     %d\n", len(rec.DisplayedStoryLevels))
	fmt.Println()

	fmt.Println("  Heroes")
	for _, h := range progression.Heroes {
		state := "locked"
		if rec.Unlocked(h) {
			state = "unlocked"
		}
		fmt.Printf("    %-8s %s\n", h, state)
	}
	fmt.Printf("    hard mode %s\n", yesNo(rec.HardModeUnlocked, "unlocked", "locked"))
	fmt.Println()

	fmt.Println("  Armory")
	for _, c := range progression.Consumables {
		fmt.Printf("    %-18s %d\n", encounter.ConsumableName(c), rec.Owned[c])
	}
	fmt.Println()

	fmt.Println("  Hangar")
	if !progression.HangarOpen(rec, cfg.Progression) {
		fmt.Printf("    opens after %d boss defeat(s)\n", cfg.Progression.HangarUnlockBosses)
	}
	keys := make([]string, 0, len(rec.Upgrades))
	for k, lvl := range rec.Upgrades {
		if lvl > 0 {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Printf("    %-26s %d/%d\n", k, rec.Upgrades[k], cfg.Upgrades.MaxLevel(k))
	}
	if on := rec.Ongoing; on != nil {
		left := time.Until(on.EndsAt).Round(time.Second)
		if left <= 0 {
			fmt.Printf("    building %s level %d: ready to collect\n", on.Key, on.Level)
		} else {
			fmt.Printf("    building %s level %d: %s left\n", on.Key, on.Level, left)
		}
	}
	fmt.Println()

	fmt.Println("  Milestones")
	fmt.Printf("    tier 2 upgrades    %s\n", yesNo(rec.Tier2Unlocked, "unlocked", "locked"))
	fmt.Printf("    trident blueprint  %s\n", yesNo(rec.TridentUnlocked, "found", "missing"))
	fmt.Printf("    montezuma          %s (%d damage dealt)\n", yesNo(rec.MontezumaDefeated, "destroyed", "at large"), rec.MontezumaDamage)
	if len(rec.SeenArchetypes) > 0 {
		fmt.Printf("    sighted            %s\n", strings.Join(rec.SeenArchetypes, ", "))
	}
}

func yesNo(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
