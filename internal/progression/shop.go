package progression

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-galaxia/internal/config"
)

var (
	// ErrInsufficientFunds is returned when currency or parts do not cover a cost.
	ErrInsufficientFunds = errors.New("progression: insufficient funds")
	// ErrUpgradeInProgress is returned when another upgrade is already building.
	ErrUpgradeInProgress = errors.New("progression: upgrade already in progress")
	// ErrUpgradeNotReady is returned when collecting an unfinished or absent upgrade.
	ErrUpgradeNotReady = errors.New("progression: upgrade not ready")
	// ErrUnknownUpgrade is returned for an upgrade key missing from the tables.
	ErrUnknownUpgrade = errors.New("progression: unknown upgrade")
	// ErrMaxLevel is returned when an upgrade is already at its last level.
	ErrMaxLevel = errors.New("progression: upgrade at max level")
	// ErrLocked is returned when an item or upgrade is not unlocked yet.
	ErrLocked = errors.New("progression: locked")
)

// Clock returns the current wall-clock time. Hangar timers use it.
type Clock func() time.Time

// Price returns the armory price of a consumable.
func Price(shop config.ShopConfig, c Consumable) (int, bool) {
	switch c {
	case Revive:
		return shop.Revive, true
	case FastReload:
		return shop.FastReload, true
	case RapidFire:
		return shop.RapidFire, true
	case SpeedBoost:
		return shop.SpeedBoost, true
	}
	return 0, false
}

// Spend takes cost from the run wallet first and the bank after. run may
// be nil when no run is active. Nothing is spent if the total is short.
func Spend(r *Record, run *int, cost int) bool {
	avail := r.TotalCurrency
	if run != nil {
		avail += *run
	}
	if cost > avail {
		return false
	}
	if run != nil {
		take := min(*run, cost)
		*run -= take
		cost -= take
	}
	r.TotalCurrency -= cost
	return true
}

// Buy purchases one consumable. During an intermission the run wallet is
// passed as run and is spent before the bank.
func Buy(r *Record, shop config.ShopConfig, c Consumable, run *int) error {
	price, ok := Price(shop, c)
	if !ok {
		return fmt.Errorf("progression: unknown item %q", c)
	}
	if !Spend(r, run, price) {
		return fmt.Errorf("%w: %s costs %d", ErrInsufficientFunds, c, price)
	}
	r.Owned[c]++
	return nil
}

// heroForUpgrade maps hero upgrade keys to the hero that owns them.
func heroForUpgrade(key string) (Hero, bool) {
	for _, h := range Heroes {
		if strings.HasPrefix(key, string(h)+"_") {
			return h, true
		}
	}
	return "", false
}

// HangarOpen reports whether the hangar is available.
func HangarOpen(r Record, prog config.ProgressionConfig) bool {
	return r.BossesDefeated >= prog.HangarUnlockBosses
}

// CanStart validates the next level of an upgrade without changing r and
// returns the tier it would build.
func CanStart(r Record, cfg *config.ShooterConfig, key string) (config.UpgradeTier, int, error) {
	maxLevel := cfg.Upgrades.MaxLevel(key)
	if maxLevel == 0 {
		return config.UpgradeTier{}, 0, fmt.Errorf("%w: %s", ErrUnknownUpgrade, key)
	}
	if !HangarOpen(r, cfg.Progression) {
		return config.UpgradeTier{}, 0, fmt.Errorf("%w: hangar opens after the first boss", ErrLocked)
	}
	if r.Ongoing != nil {
		return config.UpgradeTier{}, 0, ErrUpgradeInProgress
	}
	level := r.Upgrade(key) + 1
	if level > maxLevel {
		return config.UpgradeTier{}, 0, ErrMaxLevel
	}
	if cfg.Upgrades.IsHero(key) {
		if h, ok := heroForUpgrade(key); ok && !r.Unlocked(h) {
			return config.UpgradeTier{}, 0, fmt.Errorf("%w: hero %s", ErrLocked, h)
		}
	} else {
		switch key {
		case config.UpgradeTridentShot:
			if !r.TridentUnlocked {
				return config.UpgradeTier{}, 0, fmt.Errorf("%w: trident blueprint not found", ErrLocked)
			}
		case config.UpgradeGraviton:
		default:
			if level > 3 && !r.Tier2Unlocked {
				return config.UpgradeTier{}, 0, fmt.Errorf("%w: clear %d consecutive levels", ErrLocked, cfg.Progression.Tier2UnlockStreak)
			}
		}
	}
	tier, _ := cfg.Upgrades.Tier(key, level)
	if r.TotalCurrency < tier.Currency || r.UpgradeParts < tier.Parts {
		return tier, level, fmt.Errorf("%w: need %d currency and %d parts", ErrInsufficientFunds, tier.Currency, tier.Parts)
	}
	return tier, level, nil
}

// StartUpgrade pays for the next level of key and starts its construction.
func StartUpgrade(r *Record, cfg *config.ShooterConfig, key string, now time.Time) error {
	tier, level, err := CanStart(*r, cfg, key)
	if err != nil {
		return err
	}
	r.TotalCurrency -= tier.Currency
	r.UpgradeParts -= tier.Parts
	r.Ongoing = &OngoingUpgrade{
		Key:    key,
		Level:  level,
		EndsAt: now.Add(time.Duration(tier.Time) * time.Millisecond),
	}
	return nil
}

// CollectUpgrade installs a finished upgrade and returns it.
func CollectUpgrade(r *Record, now time.Time) (OngoingUpgrade, error) {
	if r.Ongoing == nil {
		return OngoingUpgrade{}, fmt.Errorf("%w: nothing under construction", ErrUpgradeNotReady)
	}
	if now.Before(r.Ongoing.EndsAt) {
		return *r.Ongoing, fmt.Errorf("%w: %s ready in %s", ErrUpgradeNotReady, r.Ongoing.Key, r.Ongoing.EndsAt.Sub(now).Round(time.Second))
	}
	done := *r.Ongoing
	r.Upgrades[done.Key] = done.Level
	r.Ongoing = nil
	return done, nil
}
