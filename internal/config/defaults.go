package config

import (
	_ "embed"
)

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// Hero upgrade keys.
const (
	UpgradeAlphaAOE    = "alpha_aoe_level"
	UpgradeBetaHoming  = "beta_homing_level"
	UpgradeGammaShield = "gamma_shield_hp_level"
)

// General upgrade keys.
const (
	UpgradeMovementSpeed = "movement_speed_level"
	UpgradeReloadSpeed   = "reload_speed_level"
	UpgradeAmmoCapacity  = "ammo_capacity_level"
	UpgradeTridentShot   = "trident_shot_level"
	UpgradeGraviton      = "graviton_collector_level"
)

// DefaultShooterConfig returns the default shooter configuration.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		Arena: ArenaConfig{
			Width:     500,
			Height:    800,
			LaneCount: 5,
			GridCell:  150,
		},
		Player: PlayerConfig{
			Y:                      740,
			Width:                  60,
			MaxSpeed:               450,
			Acceleration:           2000,
			Friction:               8,
			PointerDeadzone:        5,
			BodyRadius:             20,
			BodyOffsetY:            55,
			NoseRadius:             15,
			NoseOffsetY:            20,
			DeathDuration:          2000,
			DeathExplosions:        8,
			DeathExplosionInterval: 200,
			ReviveInvulnerability:  3000,
			ShieldBreakGrace:       500,
		},
		Weapon: WeaponConfig{
			InitialAmmo:          30,
			ExtendedMag:          60,
			ReloadTime:           1500,
			ReloadReductionStack: 0.1,
			ReloadReductionMax:   0.75,
			AutoReloadMax:        0.9,
			ProjectileSpeed:      1000,
			ProjectileRadius:     5,
			DamageMin:            100,
			DamageMax:            150,
			AutoFireInterval:     180,
			RapidFireInterval:    90,
			SpreadOffset:         50,
			TridentInterval:      360,
			TridentIntervalL2:    240,
			TridentOffsetX:       40,
			TridentOffsetY:       48,
			HomingMaxSpeed:       600,
			HomingRange:          500,
			TridentAngle:         15,
			ClusterAngle:         3,
			SpawnOffsetY:         30,
		},
		Enemies: EnemiesConfig{
			Speed:            150,
			Width:            50,
			Height:           40,
			HitRadius:        25,
			ProjectileSpeed:  400,
			ProjectileRadius: 8,
			ShootInterval:    1800,
			ShootJitter:      800,
			SpreadOffset:     15,
			Evasive: EvasiveConfig{
				Spawn:         SpawnRule{StartLevel: 21, Chance: Ramp{Initial: 0.05, Max: 0.40, Span: 20}},
				DodgeSpeed:    800,
				Cooldown:      500,
				ThreatHorizon: 0.5,
				ThreatRadius:  37.5,
				DodgeMin:      80,
				DodgeJitter:   40,
			},
			Diver: DiverConfig{
				Spawn:        SpawnRule{StartLevel: 31, Chance: Ramp{Initial: 0.05, Max: 0.30, Span: 20}},
				Health:       200,
				DiveSpeed:    500,
				Pause:        1500,
				BeamInterval: 2000,
				BeamDuration: 1000,
				BeamHeight:   8,
				DepthMin:     150,
				DepthMargin:  300,
			},
			Support: SupportConfig{
				Spawn:             SpawnRule{StartLevel: 60, Chance: Ramp{Initial: 0.15, Max: 0.35, Span: 30}},
				MaxActive:         2,
				Health:            300,
				HealthStepLevels:  10,
				HealthStep:        100,
				SpeedY:            40,
				AsteroidRepair:    250,
				ShieldRegen:       5000,
				OscillationFreq:   0.5,
				OscillationFactor: 1.0 / 3.0,
			},
			Elite: EliteConfig{
				Health:        500,
				BurstInterval: 2400,
				BurstSize:     3,
				BurstSpread:   12,
			},
		},
		Asteroids: AsteroidsConfig{
			UnlockLevel: 11,
			Chance:      0.035,
			BaseSpeedY:  80,
			DriftX:      40,
			Tiers: []AsteroidTier{
				{Name: "small", Health: 500, Radius: 30, Score: 250, Currency: 50, PartChance: 0.10, Weight: 6},
				{Name: "medium", Health: 1500, Radius: 50, Score: 750, Currency: 150, PartChance: 0.30, Weight: 3},
				{Name: "large", Health: 4000, Radius: 80, Score: 2000, Currency: 400, PartChance: 1.0, Weight: 1},
			},
		},
		PowerUps: PowerUpConfig{
			DropChance:   0.20,
			FallSpeed:    120,
			Duration:     8000,
			Radius:       20,
			CritBoost:    2.5,
			GravitonPull: 400,
		},
		Crit: CritConfig{
			Chance:     0.15,
			Multiplier: 2.5,
			Radius:     120,
			Duration:   400,
		},
		Effects: EffectsConfig{
			DamageNumber: 1000,
			Explosion:    500,
			RockImpact:   300,
			EmpArc:       150,
		},
		Spawn: SpawnConfig{
			Interval: Ramp{Initial: 1200, Max: 350, Span: 60000},
		},
		Progression: ProgressionConfig{
			EnemiesPerLevel:     20,
			BossInterval:        10,
			FinalLevel:          100,
			ScorePerHit:         100,
			CurrencyPerKill:     15,
			StreakBonus:         0.05,
			PartChanceEnemy:     0.005,
			ShieldChance:        0.15,
			LevelAnnounce:       2000,
			VictoryPause:        1500,
			BetaUnlockLevels:    30,
			GammaUnlockScore:    200000,
			Tier2UnlockStreak:   42,
			HangarUnlockBosses:  1,
			OffscreenMargin:     40,
			EnemyEscapeEndsGame: true,
		},
		Bosses: BossesConfig{
			Thresholds:      []float64{0.75, 0.5, 0.25},
			EnterDuration:   3000,
			DefeatDuration:  4000,
			DeathExplosions: 30,
			HitScore:        50,
			DefeatScore:     10000,
			DefeatCurrency:  1000,
			PartReward:      2,
			PartChance:      0.5,
			HitMargin:       5,
			InsightDamage:   2,
			Scaling: BossScaling{
				EncounterCap:    10,
				HealthLinear:    0.25,
				HealthQuadratic: 0.1,
				HealthCap:       5.0,
				AttackRate:      0.90,
				AttackFloor:     0.35,
				PunisherMinion:  2,
				PunisherMinCap:  8,
				WardenWaveAdd:   1,
				WardenWaveCap:   8,
				WardenWaveRate:  0.95,
				WardenWaveFloor: 350,
				WardenMinionAdd: 2,
				WardenMinionCap: 6,
			},
			Warden: WardenConfig{
				Body:            BossBody{Health: 8000, Width: 150, Height: 120, Y: 100},
				BarrageInterval: 500,
				BarrageDecay:    0.8,
				BarrageDuration: 5000,
				SweepColumns:    10,
				SweepSafeLanes:  2,
				SweepWaves:      3,
				SweepInterval:   800,
				SweepTail:       1500,
				MinionDuration:  5000,
				MinionCount:     2,
				BarrageSpread:   0.8,
			},
			Punisher: PunisherConfig{
				Body:            BossBody{Health: 13000, Width: 180, Height: 140, Y: 110},
				BarrageInterval: 250,
				BarrageDecay:    0.85,
				BarrageDuration: 4000,
				MinionDuration:  5000,
				MinionCount:     4,
				LaserDuration:   3000,
				LaserCharge:     1200,
				LaserFire:       1000,
				LaserLanes:      []int{0, 1, 3, 4},
				LaserPicks:      2,
				CenterLaneLevel: 2,
			},
			Overmind: OvermindConfig{
				Body:            BossBody{Health: 120000, Width: 250, Height: 200, Y: 150},
				BarrageInterval: 500,
				AddsThreshold:   0.66,
				FragmentCount:   12,
				FuryInterval:    120,
				BeamEvery:       8000,
				BeamCharge:      2000,
				BeamFire:        2000,
				SafeZoneWidth:   100,
			},
		},
		HardMode: HardModeConfig{
			EnemySpeed:      1.25,
			ProjectileSpeed: 1.2,
			FireRate:        1.4,
			SpawnRate:       1.3,
		},
		Heroes: HeroesConfig{
			AlphaCritBonus:    0.05,
			BetaAccelModifier: 1.2,
			BetaFrictionMod:   1.2,
			GammaShieldBonus:  0.25,
			EmpDamage:         500,
			EmpLevels: []EmpTier{
				{Level: 2, Chance: 0.45, Range: 250, Cooldown: 1000},
				{Level: 3, Chance: 0.65, Range: 350, Cooldown: 600},
			},
			SpeedBoostModifier: 1.25,
		},
		Shop: ShopConfig{
			Revive:          5000,
			FastReload:      2500,
			RapidFire:       7500,
			SpeedBoost:      6000,
			FastReloadStack: 2,
		},
		Upgrades: UpgradesConfig{
			Hero: map[string][]UpgradeTier{
				UpgradeAlphaAOE: {
					{Currency: 25000, Parts: 5, Time: 300000, Effect: 0.30, CritBonus: 0.15},
					{Currency: 75000, Parts: 15, Time: 1200000, Effect: 0.45, CritBonus: 0.30},
					{Currency: 200000, Parts: 30, Time: 2700000, Effect: 0.60, CritBonus: 0.50},
				},
				UpgradeBetaHoming: {
					{Currency: 30000, Parts: 5, Time: 300000, Effect: 0.20},
					{Currency: 90000, Parts: 15, Time: 1200000, Effect: 0.25},
					{Currency: 250000, Parts: 30, Time: 2700000, Effect: 0.30},
				},
				UpgradeGammaShield: {
					{Currency: 20000, Parts: 5, Time: 300000, Effect: 2},
					{Currency: 60000, Parts: 15, Time: 1200000, Effect: 2},
					{Currency: 180000, Parts: 30, Time: 2700000, Effect: 3},
				},
			},
			General: map[string][]UpgradeTier{
				UpgradeMovementSpeed: {
					{Currency: 15000, Parts: 8, Time: 300000, Effect: 0.05},
					{Currency: 45000, Parts: 20, Time: 900000, Effect: 0.10},
					{Currency: 120000, Parts: 40, Time: 1800000, Effect: 0.15},
					{Currency: 300000, Parts: 80, Time: 5400000, Effect: 0.20},
					{Currency: 650000, Parts: 160, Time: 10800000, Effect: 0.25},
					{Currency: 1300000, Parts: 320, Time: 32400000, Effect: 0.30},
				},
				UpgradeReloadSpeed: {
					{Currency: 10000, Parts: 5, Time: 300000, Effect: 0.10},
					{Currency: 30000, Parts: 15, Time: 900000, Effect: 0.20},
					{Currency: 90000, Parts: 35, Time: 1800000, Effect: 0.30},
					{Currency: 275000, Parts: 75, Time: 5400000, Effect: 0.40},
					{Currency: 825000, Parts: 150, Time: 10800000, Effect: 0.50},
					{Currency: 2500000, Parts: 300, Time: 32400000, Effect: 0.60},
				},
				UpgradeAmmoCapacity: {
					{Currency: 20000, Parts: 10, Time: 450000, Effect: 10},
					{Currency: 60000, Parts: 25, Time: 1350000, Effect: 20},
					{Currency: 150000, Parts: 50, Time: 2700000, Effect: 30},
					{Currency: 350000, Parts: 100, Time: 7200000, Effect: 50},
					{Currency: 750000, Parts: 200, Time: 18000000, Effect: 70},
					{Currency: 1700000, Parts: 400, Time: 45000000, Effect: 100},
				},
				UpgradeTridentShot: {
					{Currency: 100000, Parts: 25, Time: 3600000, Effect: 1},
					{Currency: 150000, Parts: 30, Time: 5400000, Effect: 2},
					{Currency: 400000, Parts: 75, Time: 10800000, Effect: 3},
				},
				UpgradeGraviton: {
					{Currency: 75000, Parts: 20, Time: 1800000, Effect: 1},
				},
			},
		},
		Encounters: EncounterTuning{
			Chance:       0.12,
			ProcessDelay: 1500,
			FightPrepare: 1000,
			FightOscAmp:  50,
			FightOscFreq: 1.5,
		},
		AsteroidField: AsteroidFieldConfig{
			Duration:       25000,
			SpawnInterval:  400,
			RewardCurrency: 1500,
			RewardParts:    2,
		},
		TrainingSim: TrainingSimConfig{
			Countdown:       3000,
			Duration:        20000,
			BaseTargets:     5,
			HitsMin:         2,
			HitsMax:         4,
			RewardPerTarget: 400,
			HitCooldown:     200,
			TargetRadius:    40,
		},
		Montezuma: MontezumaConfig{
			Health:         500000,
			SpeedY:         20,
			SizeFactor:     0.45,
			RewardCurrency: 100000,
			RewardParts:    50,
		},
		Story: []StoryMilestone{
			{Level: 1, Title: "Mission Briefing", Text: "Pilot, you are our last hope. The alien armada has shattered our defenses.\n\nYour mission: break through their lines and reach the Orion Nebula rendezvous point. Good luck."},
			{Level: 10, Title: "Command Ship Detected", Text: "That's a Warden-class command ship! It's coordinating their fleet in this sector.\n\nTaking it down will throw their forces into disarray. Hit it with everything you've got!"},
			{Level: 20, Title: "High-Threat Signature", Text: "Intel reports a new high-threat signature... a Punisher-class assault platform.\n\nThis thing is a walking fortress armed with overwhelming firepower. Stay sharp, pilot."},
			{Level: 25, Title: "A Glimmer of Hope", Text: "Is that... a friendly signal? It's weak, but it's there! Other survivors might be out here.\n\nKeep pushing forward, pilot. You're not alone."},
			{Level: 50, Title: "Through the Fire", Text: "You've punched through their main blockade! The enemy's grip is weakening.\n\nThe path to Orion is clearer, but they're getting desperate. Expect heavier resistance."},
			{Level: 75, Title: "The Final Push", Text: "That's the edge of the Orion Nebula on long-range scanners! You're almost there.\n\nThe enemy is throwing everything they have left at you. Don't let them stop you now!"},
			{Level: 100, Title: "The Source", Text: "That's... the heart of the invasion. A biomechanical consciousness of immense power. The Overmind.\n\nIf you can destroy it, you might just end this war for good. No holding back."},
		},
	}
}

// Tier returns the upgrade tier for a 1-based level, and false when the
// level is 0 or past the table.
func (u UpgradesConfig) Tier(key string, level int) (UpgradeTier, bool) {
	table, ok := u.Hero[key]
	if !ok {
		table, ok = u.General[key]
	}
	if !ok || level < 1 || level > len(table) {
		return UpgradeTier{}, false
	}
	return table[level-1], true
}

// Effect returns the effect value of an upgrade at a level, or 0.
func (u UpgradesConfig) Effect(key string, level int) float64 {
	t, ok := u.Tier(key, level)
	if !ok {
		return 0
	}
	return t.Effect
}

// MaxLevel returns the number of levels of an upgrade, or 0 if unknown.
func (u UpgradesConfig) MaxLevel(key string) int {
	if t, ok := u.Hero[key]; ok {
		return len(t)
	}
	return len(u.General[key])
}

// IsHero reports whether key names a hero upgrade.
func (u UpgradesConfig) IsHero(key string) bool {
	_, ok := u.Hero[key]
	return ok
}

// Emp returns the EMP tier active at a gamma shield upgrade level, and false
// when the level has no EMP.
func (h HeroesConfig) Emp(level int) (EmpTier, bool) {
	var best EmpTier
	found := false
	for _, t := range h.EmpLevels {
		if level >= t.Level && t.Level >= best.Level {
			best = t
			found = true
		}
	}
	return best, found
}
