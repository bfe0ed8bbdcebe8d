package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	var embedded ShooterConfig
	if err := yaml.Unmarshal(defaultShooterYAML, &embedded); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	want := DefaultShooterConfig()
	if !reflect.DeepEqual(embedded, want) {
		t.Errorf("embedded defaults differ from DefaultShooterConfig()")
	}
}

func TestLoadShooterCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("player:\n  max_speed: 600\nweapon:\n  initial_ammo: 12\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadShooter(path)
	if err != nil {
		t.Fatalf("LoadShooter() error = %v", err)
	}
	if cfg.Player.MaxSpeed != 600 {
		t.Errorf("MaxSpeed = %v, expected 600", cfg.Player.MaxSpeed)
	}
	if cfg.Weapon.InitialAmmo != 12 {
		t.Errorf("InitialAmmo = %d, expected 12", cfg.Weapon.InitialAmmo)
	}
	// Keys absent from the override keep their defaults.
	if cfg.Arena.Width != 500 {
		t.Errorf("Arena.Width = %v, expected 500", cfg.Arena.Width)
	}
}

func TestLoadShooterErrors(t *testing.T) {
	if _, err := LoadShooter(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("player: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadShooter(path); err == nil {
		t.Error("expected error for malformed custom config")
	}
}

func TestLoadShooterLocalDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join("configs", ShooterFile), []byte("crit:\n  radius: 99\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadShooter("")
	if err != nil {
		t.Fatalf("LoadShooter() error = %v", err)
	}
	if cfg.Crit.Radius != 99 {
		t.Errorf("Crit.Radius = %v, expected 99", cfg.Crit.Radius)
	}
}

func TestRampAt(t *testing.T) {
	r := Ramp{Initial: 1200, Max: 350, Span: 60000}
	tests := []struct {
		progress float64
		expected float64
	}{
		{-100, 1200},
		{0, 1200},
		{30000, 775},
		{60000, 350},
		{120000, 350},
	}
	for _, tt := range tests {
		if got := r.At(tt.progress); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("At(%v) = %v, expected %v", tt.progress, got, tt.expected)
		}
	}

	zero := Ramp{Initial: 1, Max: 2}
	if got := zero.At(5); got != 2 {
		t.Errorf("zero-span At(5) = %v, expected 2", got)
	}
}

func TestDifficultyChance(t *testing.T) {
	cfg := DefaultShooterConfig()
	d := NewDifficulty(&cfg)
	rule := cfg.Enemies.Evasive.Spawn

	if got := d.Chance(rule, 20); got != 0 {
		t.Errorf("Chance before unlock = %v, expected 0", got)
	}
	if got := d.Chance(rule, 21); math.Abs(got-0.05) > 1e-9 {
		t.Errorf("Chance at unlock = %v, expected 0.05", got)
	}
	if got := d.Chance(rule, 80); math.Abs(got-0.40) > 1e-9 {
		t.Errorf("Chance past ramp = %v, expected 0.40", got)
	}
}

func TestSupportHealth(t *testing.T) {
	cfg := DefaultShooterConfig()
	d := NewDifficulty(&cfg)
	tests := []struct {
		level    int
		expected int
	}{
		{60, 300},
		{69, 300},
		{70, 400},
		{95, 600},
	}
	for _, tt := range tests {
		if got := d.SupportHealth(tt.level); got != tt.expected {
			t.Errorf("SupportHealth(%d) = %d, expected %d", tt.level, got, tt.expected)
		}
	}
}

func TestBossScale(t *testing.T) {
	cfg := DefaultShooterConfig()
	d := NewDifficulty(&cfg)

	fresh := d.BossScale(0)
	if fresh.Health != 1 || fresh.AttackInterval != 1 {
		t.Errorf("BossScale(0) = %+v, expected unit multipliers", fresh)
	}
	if fresh.WardenWaves != 3 || fresh.WardenMinions != 2 || fresh.PunisherMinion != 4 {
		t.Errorf("BossScale(0) counts = %+v", fresh)
	}

	two := d.BossScale(2)
	if math.Abs(two.Health-1.9) > 1e-9 {
		t.Errorf("BossScale(2).Health = %v, expected 1.9", two.Health)
	}
	if math.Abs(two.AttackInterval-0.81) > 1e-9 {
		t.Errorf("BossScale(2).AttackInterval = %v, expected 0.81", two.AttackInterval)
	}

	capped := d.BossScale(50)
	if capped.Encounters != 10 {
		t.Errorf("Encounters = %d, expected cap 10", capped.Encounters)
	}
	if capped.Health != 5 {
		t.Errorf("Health = %v, expected cap 5", capped.Health)
	}
	if capped.AttackInterval != 0.35 {
		t.Errorf("AttackInterval = %v, expected floor 0.35", capped.AttackInterval)
	}
	if capped.WardenWaves != 8 || capped.WardenMinions != 6 || capped.PunisherMinion != 8 {
		t.Errorf("capped counts = %+v", capped)
	}
	if capped.WardenWaveGap != 350 {
		t.Errorf("WardenWaveGap = %v, expected floor 350", capped.WardenWaveGap)
	}
}

func TestApplyHardMode(t *testing.T) {
	cfg := DefaultShooterConfig()
	ApplyHardMode(&cfg)

	if math.Abs(cfg.Enemies.Speed-187.5) > 1e-9 {
		t.Errorf("Enemies.Speed = %v, expected 187.5", cfg.Enemies.Speed)
	}
	if math.Abs(cfg.Enemies.ProjectileSpeed-480) > 1e-9 {
		t.Errorf("ProjectileSpeed = %v, expected 480", cfg.Enemies.ProjectileSpeed)
	}
	if math.Abs(cfg.Enemies.ShootInterval-1800/1.4) > 1e-9 {
		t.Errorf("ShootInterval = %v, expected %v", cfg.Enemies.ShootInterval, 1800/1.4)
	}

	speed := cfg.Enemies.Speed
	ApplyHardMode(&cfg)
	if cfg.Enemies.Speed != speed {
		t.Errorf("second ApplyHardMode changed speed to %v", cfg.Enemies.Speed)
	}
}

func TestUpgradeLookups(t *testing.T) {
	u := DefaultShooterConfig().Upgrades

	if got := u.Effect(UpgradeGammaShield, 3); got != 3 {
		t.Errorf("Effect(gamma, 3) = %v, expected 3", got)
	}
	if got := u.Effect(UpgradeReloadSpeed, 0); got != 0 {
		t.Errorf("Effect(reload, 0) = %v, expected 0", got)
	}
	if _, ok := u.Tier(UpgradeGraviton, 2); ok {
		t.Error("Tier(graviton, 2) should not exist")
	}
	if got := u.MaxLevel(UpgradeMovementSpeed); got != 6 {
		t.Errorf("MaxLevel(movement) = %d, expected 6", got)
	}
	if !u.IsHero(UpgradeAlphaAOE) || u.IsHero(UpgradeTridentShot) {
		t.Error("IsHero misclassified keys")
	}
}

func TestEmpTier(t *testing.T) {
	h := DefaultShooterConfig().Heroes
	if _, ok := h.Emp(1); ok {
		t.Error("Emp(1) should be inactive")
	}
	tier, ok := h.Emp(3)
	if !ok || tier.Range != 350 {
		t.Errorf("Emp(3) = %+v, %v", tier, ok)
	}
}
