package progression

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-galaxia/internal/config"
)

func TestDecodeCorruptFallsBack(t *testing.T) {
	r, err := Decode([]byte("high_score: [not a number"))
	if err == nil {
		t.Error("expected parse error for corrupt record")
	}
	if r.HighScore != 0 || r.Owned == nil || !r.Unlocked(HeroAlpha) {
		t.Errorf("Decode(corrupt) = %+v, expected defaults", r)
	}
}

func TestDecodePartialKeepsDefaults(t *testing.T) {
	r, err := Decode([]byte("high_score: 4200\nconsumables:\n  revive: 2\n"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if r.HighScore != 4200 {
		t.Errorf("HighScore = %d, expected 4200", r.HighScore)
	}
	if r.Owned[Revive] != 2 {
		t.Errorf("Owned[revive] = %d, expected 2", r.Owned[Revive])
	}
	if r.Upgrades == nil || r.BossDefeatCount == nil || r.Notified == nil {
		t.Error("missing maps were not defaulted")
	}
}

func TestEncodeDecodeKeepsFields(t *testing.T) {
	r := Defaults()
	r.TotalCurrency = 1234
	r.Upgrades[config.UpgradeReloadSpeed] = 2
	r.MarkSeen("dodger")
	r.MarkStoryShown(10)
	data, err := Encode(r)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.TotalCurrency != 1234 || got.Upgrade(config.UpgradeReloadSpeed) != 2 || !got.Seen("dodger") {
		t.Errorf("Decode(Encode(r)) = %+v", got)
	}
}

func TestMarkStoryShown(t *testing.T) {
	r := Defaults()
	if r.StoryShown(1) {
		t.Fatal("StoryShown(1) = true on a fresh record")
	}
	if !r.MarkStoryShown(1) {
		t.Error("MarkStoryShown(1) = false, expected a new entry")
	}
	if r.MarkStoryShown(1) {
		t.Error("MarkStoryShown(1) twice = true, expected no duplicate")
	}
	c := r.Clone()
	c.MarkStoryShown(10)
	if r.StoryShown(10) {
		t.Error("Clone() shares the story levels with the original")
	}
	if got := Merge(Record{}).DisplayedStoryLevels; got == nil {
		t.Error("Merge() left DisplayedStoryLevels nil")
	}
}

func TestMergeClampsNegatives(t *testing.T) {
	r := Merge(Record{TotalCurrency: -50, Owned: map[Consumable]int{Revive: -1}})
	if r.TotalCurrency != 0 {
		t.Errorf("TotalCurrency = %d, expected 0", r.TotalCurrency)
	}
	if r.Owned[Revive] != 0 {
		t.Errorf("Owned[revive] = %d, expected 0", r.Owned[Revive])
	}
}

func TestSpend(t *testing.T) {
	tests := []struct {
		name      string
		bank, run int
		cost      int
		ok        bool
		wantBank  int
		wantRun   int
	}{
		{"run covers all", 100, 500, 300, true, 100, 200},
		{"run then bank", 1000, 200, 500, true, 700, 0},
		{"short", 100, 100, 300, false, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Defaults()
			r.TotalCurrency = tt.bank
			run := tt.run
			if got := Spend(&r, &run, tt.cost); got != tt.ok {
				t.Errorf("Spend() = %v, expected %v", got, tt.ok)
			}
			if r.TotalCurrency != tt.wantBank || run != tt.wantRun {
				t.Errorf("bank=%d run=%d, expected bank=%d run=%d", r.TotalCurrency, run, tt.wantBank, tt.wantRun)
			}
		})
	}
}

func TestBuy(t *testing.T) {
	shop := config.DefaultShooterConfig().Shop
	r := Defaults()
	r.TotalCurrency = 6000

	if err := Buy(&r, shop, Revive, nil); err != nil {
		t.Fatalf("Buy(revive) error = %v", err)
	}
	if r.TotalCurrency != 1000 || r.Owned[Revive] != 1 {
		t.Errorf("after Buy: currency=%d owned=%d", r.TotalCurrency, r.Owned[Revive])
	}
	if err := Buy(&r, shop, RapidFire, nil); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Buy(rapid_fire) error = %v, expected ErrInsufficientFunds", err)
	}
	if err := Buy(&r, shop, Consumable("laser"), nil); err == nil {
		t.Error("expected error for unknown item")
	}
}

func TestUpgradeLifecycle(t *testing.T) {
	cfg := config.DefaultShooterConfig()
	r := Defaults()
	r.TotalCurrency = 50000
	r.UpgradeParts = 20
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	if err := StartUpgrade(&r, &cfg, config.UpgradeReloadSpeed, now); !errors.Is(err, ErrLocked) {
		t.Fatalf("StartUpgrade() before boss error = %v, expected ErrLocked", err)
	}
	r.BossesDefeated = 1

	if err := StartUpgrade(&r, &cfg, "warp_drive", now); !errors.Is(err, ErrUnknownUpgrade) {
		t.Errorf("StartUpgrade(unknown) error = %v", err)
	}
	if err := StartUpgrade(&r, &cfg, config.UpgradeReloadSpeed, now); err != nil {
		t.Fatalf("StartUpgrade() error = %v", err)
	}
	if r.TotalCurrency != 40000 || r.UpgradeParts != 15 {
		t.Errorf("after start: currency=%d parts=%d", r.TotalCurrency, r.UpgradeParts)
	}
	if err := StartUpgrade(&r, &cfg, config.UpgradeAmmoCapacity, now); !errors.Is(err, ErrUpgradeInProgress) {
		t.Errorf("second StartUpgrade() error = %v, expected ErrUpgradeInProgress", err)
	}
	if _, err := CollectUpgrade(&r, now.Add(time.Minute)); !errors.Is(err, ErrUpgradeNotReady) {
		t.Errorf("early CollectUpgrade() error = %v, expected ErrUpgradeNotReady", err)
	}
	done, err := CollectUpgrade(&r, now.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("CollectUpgrade() error = %v", err)
	}
	if done.Level != 1 || r.Upgrade(config.UpgradeReloadSpeed) != 1 || r.Ongoing != nil {
		t.Errorf("after collect: done=%+v level=%d", done, r.Upgrade(config.UpgradeReloadSpeed))
	}
}

func TestUpgradeLocks(t *testing.T) {
	cfg := config.DefaultShooterConfig()
	r := Defaults()
	r.BossesDefeated = 3
	r.TotalCurrency = 10_000_000
	r.UpgradeParts = 10_000

	if _, _, err := CanStart(r, &cfg, config.UpgradeBetaHoming); !errors.Is(err, ErrLocked) {
		t.Errorf("beta upgrade with locked hero error = %v", err)
	}
	if _, _, err := CanStart(r, &cfg, config.UpgradeTridentShot); !errors.Is(err, ErrLocked) {
		t.Errorf("trident without blueprint error = %v", err)
	}
	r.Upgrades[config.UpgradeMovementSpeed] = 3
	if _, _, err := CanStart(r, &cfg, config.UpgradeMovementSpeed); !errors.Is(err, ErrLocked) {
		t.Errorf("tier 2 without unlock error = %v", err)
	}
	r.Tier2Unlocked = true
	if _, level, err := CanStart(r, &cfg, config.UpgradeMovementSpeed); err != nil || level != 4 {
		t.Errorf("CanStart() = %d, %v, expected level 4", level, err)
	}
	r.Upgrades[config.UpgradeGraviton] = 1
	if _, _, err := CanStart(r, &cfg, config.UpgradeGraviton); !errors.Is(err, ErrMaxLevel) {
		t.Errorf("graviton past max error = %v", err)
	}
}

func TestEndOfRun(t *testing.T) {
	prog := config.DefaultShooterConfig().Progression
	r := Defaults()
	r.HighScore = 500
	r.CumulativeLevels = 25

	EndOfRun(&r, RunSummary{Score: 300, LevelStreak: 6, Currency: 700, Parts: 2, Seen: []string{"weaver"}}, prog)

	if r.HighScore != 500 {
		t.Errorf("HighScore = %d, expected 500", r.HighScore)
	}
	if r.CumulativeScore != 300 || r.TotalCurrency != 700 || r.UpgradeParts != 2 {
		t.Errorf("totals = %+v", r)
	}
	if !r.Unlocked(HeroBeta) {
		t.Error("beta should unlock at 31 cumulative levels")
	}
	if r.Unlocked(HeroGamma) {
		t.Error("gamma should stay locked")
	}
	if !r.Seen("weaver") {
		t.Error("seen archetypes not merged")
	}

	unlocks := PendingUnlocks(&r, prog)
	if len(unlocks) != 1 || unlocks[0] != UnlockBeta {
		t.Errorf("PendingUnlocks() = %v, expected [beta]", unlocks)
	}
	if again := PendingUnlocks(&r, prog); len(again) != 0 {
		t.Errorf("second PendingUnlocks() = %v, expected none", again)
	}
}

func TestTakeLoadout(t *testing.T) {
	r := Defaults()
	r.Owned[Revive] = 1
	got := TakeLoadout(&r, Loadout{Revive: true, RapidFire: true})
	if !got[Revive] || got[RapidFire] {
		t.Errorf("TakeLoadout() = %v", got)
	}
	if r.Owned[Revive] != 0 {
		t.Errorf("Owned[revive] = %d, expected 0", r.Owned[Revive])
	}
}

func TestMemStore(t *testing.T) {
	s := NewMemStore(Defaults())
	r, _ := s.Load()
	r.TotalCurrency = 99
	if err := s.Save(r); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	r.TotalCurrency = 1
	got, _ := s.Load()
	if got.TotalCurrency != 99 {
		t.Errorf("Load().TotalCurrency = %d, expected 99", got.TotalCurrency)
	}
}
