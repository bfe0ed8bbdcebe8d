package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ShooterFile is the config file name looked up in the search directories.
const ShooterFile = "shooter.yaml"

// LoadShooter loads the shooter configuration.
// Search order: customPath -> ~/.galaxia/configs/shooter.yaml -> ./configs/shooter.yaml -> embedded default
//
// Override files are decoded on top of the defaults, so a file only needs
// the keys it changes.
func LoadShooter(customPath string) (ShooterConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultShooterConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ShooterFile); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", ShooterFile)); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	var cfg ShooterConfig
	if err := yaml.Unmarshal(defaultShooterYAML, &cfg); err != nil {
		return DefaultShooterConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func tryLoad(path string) (ShooterConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ShooterConfig{}, false
	}
	cfg := DefaultShooterConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ShooterConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".galaxia", "configs", filename)
}

// ApplyHardMode folds the hard-mode multipliers into the enemy tuning:
// faster movement and projectiles, shorter fire and spawn intervals.
// The multipliers are reset to 1 afterwards, so applying twice is a no-op.
func ApplyHardMode(cfg *ShooterConfig) {
	hm := cfg.HardMode
	speed := nonZero(hm.EnemySpeed)
	shot := nonZero(hm.ProjectileSpeed)
	fire := nonZero(hm.FireRate)
	spawn := nonZero(hm.SpawnRate)

	e := &cfg.Enemies
	e.Speed *= speed
	e.Evasive.DodgeSpeed *= speed
	e.Diver.DiveSpeed *= speed
	e.Support.SpeedY *= speed
	cfg.Asteroids.BaseSpeedY *= speed
	cfg.Asteroids.DriftX *= speed

	e.ProjectileSpeed *= shot

	e.ShootInterval /= fire
	e.Diver.BeamInterval /= fire
	e.Elite.BurstInterval /= fire

	cfg.Spawn.Interval.Initial /= spawn
	cfg.Spawn.Interval.Max /= spawn
	cfg.AsteroidField.SpawnInterval /= spawn

	cfg.HardMode = HardModeConfig{EnemySpeed: 1, ProjectileSpeed: 1, FireRate: 1, SpawnRate: 1}
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
