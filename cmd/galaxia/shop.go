package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaxia/internal/encounter"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Buy consumables for the next run",
	Long: `List the armory with its prices, or buy an item with the banked
currency. Every owned consumable is taken into the next run.

Items: revive, fast_reload, rapid_fire, speed_boost

Examples:
  galaxia shop
  galaxia shop buy revive`,
	Args: cobra.NoArgs,
	Run:  runShopList,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <item>",
	Short: "Buy one consumable",
	Args:  cobra.ExactArgs(1),
	Run:   runShopBuy,
}

func init() {
	shopCmd.AddCommand(shopBuyCmd)
}

func runShopList(_ *cobra.Command, _ []string) {
	cfg, _ := loadConfig()
	store := openStore(true)
	defer store.Close()

	rec, err := store.Load()
	if err != nil {
		fatalf("loading progression: %v", err)
	}

	fmt.Printf("Armory - bank $%d\n\n", rec.TotalCurrency)
	fmt.Printf("  %-12s  %-18s  %-7s  %s\n", "Item", "Name", "Price", "Owned")
	fmt.Printf("  %-12s  %-18s  %-7s  %s\n", "----", "----", "-----", "-----")
	for _, c := range progression.Consumables {
		price, _ := progression.Price(cfg.Shop, c)
		fmt.Printf("  %-12s  %-18s  $%-6d  %d\n", c, encounter.ConsumableName(c), price, rec.Owned[c])
	}
}

func runShopBuy(_ *cobra.Command, args []string) {
	cfg, _ := loadConfig()
	c := progression.Consumable(args[0])
	if _, ok := progression.Price(cfg.Shop, c); !ok {
		fatalf("unknown item %q", args[0])
	}

	store := openStore(true)
	defer store.Close()

	rec, err := store.Load()
	if err != nil {
		fatalf("loading progression: %v", err)
	}
	if err := progression.Buy(&rec, cfg.Shop, c, nil); err != nil {
		if errors.Is(err, progression.ErrInsufficientFunds) {
			price, _ := progression.Price(cfg.Shop, c)
			fatalf("%s costs $%d, bank holds $%d", encounter.ConsumableName(c), price, rec.TotalCurrency)
		}
		fatalf("%v", err)
	}
	if err := store.Save(rec); err != nil {
		fatalf("saving progression: %v", err)
	}
	fmt.Printf("Bought %s. Owned: %d, bank: $%d\n", encounter.ConsumableName(c), rec.Owned[c], rec.TotalCurrency)
}
