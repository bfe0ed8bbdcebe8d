package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaxia/internal/config"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

// upgradeKeys lists the hangar upgrades in display order.
var upgradeKeys = []string{
	config.UpgradeAlphaAOE,
	config.UpgradeBetaHoming,
	config.UpgradeGammaShield,
	config.UpgradeMovementSpeed,
	config.UpgradeReloadSpeed,
	config.UpgradeAmmoCapacity,
	config.UpgradeTridentShot,
	config.UpgradeGraviton,
}

var hangarCmd = &cobra.Command{
	Use:   "hangar",
	Short: "Build permanent upgrades",
	Long: `The hangar opens after the first boss defeat. Upgrades cost banked
currency and upgrade parts, and take real time to build; one upgrade
is built at a time.

Examples:
  galaxia hangar status
  galaxia hangar start reload_speed_level
  galaxia hangar start alpha_aoe_level 2
  galaxia hangar collect`,
}

var hangarStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show upgrade levels and the next costs",
	Args:  cobra.NoArgs,
	Run:   runHangarStatus,
}

var hangarStartCmd = &cobra.Command{
	Use:   "start <key> [level]",
	Short: "Start building the next level of an upgrade",
	Long: `Start building the next level of an upgrade. If level is given it
must be the next level; this guards against double submissions.`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runHangarStart,
}

var hangarCollectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Install a finished upgrade",
	Args:  cobra.NoArgs,
	Run:   runHangarCollect,
}

func init() {
	hangarCmd.AddCommand(hangarStatusCmd)
	hangarCmd.AddCommand(hangarStartCmd)
	hangarCmd.AddCommand(hangarCollectCmd)
}

func runHangarStatus(_ *cobra.Command, _ []string) {
	cfg, _ := loadConfig()
	store := openStore(true)
	defer store.Close()

	rec, err := store.Load()
	if err != nil {
		fatalf("loading progression: %v", err)
	}

	fmt.Printf("Hangar - bank $%d, parts %d\n\n", rec.TotalCurrency, rec.UpgradeParts)
	if !progression.HangarOpen(rec, cfg.Progression) {
		fmt.Printf("Locked: defeat %d boss(es) to open the hangar.\n", cfg.Progression.HangarUnlockBosses)
		return
	}

	fmt.Printf("  %-26s  %-5s  %s\n", "Upgrade", "Level", "Next")
	fmt.Printf("  %-26s  %-5s  %s\n", "-------", "-----", "----")
	for _, key := range upgradeKeys {
		level := rec.Upgrade(key)
		maxLevel := cfg.Upgrades.MaxLevel(key)
		next := "max"
		if level < maxLevel {
			tier, _, err := progression.CanStart(rec, &cfg, key)
			t, _ := cfg.Upgrades.Tier(key, level+1)
			if err == nil {
				t = tier
			}
			next = fmt.Sprintf("$%d + %d parts, %s", t.Currency, t.Parts, time.Duration(t.Time)*time.Millisecond)
			if err != nil {
				next += fmt.Sprintf(" (%v)", err)
			}
		}
		fmt.Printf("  %-26s  %d/%-3d  %s\n", key, level, maxLevel, next)
	}

	if on := rec.Ongoing; on != nil {
		fmt.Println()
		if left := time.Until(on.EndsAt); left > 0 {
			fmt.Printf("Building %s level %d, ready in %s\n", on.Key, on.Level, left.Round(time.Second))
		} else {
			fmt.Printf("Building %s level %d, ready: run 'galaxia hangar collect'\n", on.Key, on.Level)
		}
	}
}

func runHangarStart(_ *cobra.Command, args []string) {
	cfg, _ := loadConfig()
	key := args[0]

	store := openStore(true)
	defer store.Close()

	rec, err := store.Load()
	if err != nil {
		fatalf("loading progression: %v", err)
	}

	if len(args) == 2 {
		want, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			fatalf("level %q is not a number", args[1])
		}
		if next := rec.Upgrade(key) + 1; want != next {
			fatalf("%s is at level %d; the next level is %d", key, next-1, next)
		}
	}

	if err := progression.StartUpgrade(&rec, &cfg, key, time.Now()); err != nil {
		fatalf("%v", err)
	}
	if err := store.Save(rec); err != nil {
		fatalf("saving progression: %v", err)
	}
	on := rec.Ongoing
	fmt.Printf("Building %s level %d, ready at %s\n", on.Key, on.Level, on.EndsAt.Format("15:04:05"))
}

func runHangarCollect(_ *cobra.Command, _ []string) {
	store := openStore(true)
	defer store.Close()

	rec, err := store.Load()
	if err != nil {
		fatalf("loading progression: %v", err)
	}
	done, err := progression.CollectUpgrade(&rec, time.Now())
	if err != nil {
		fatalf("%v", err)
	}
	if err := store.Save(rec); err != nil {
		fatalf("saving progression: %v", err)
	}
	fmt.Printf("Installed %s level %d\n", done.Key, done.Level)
}
