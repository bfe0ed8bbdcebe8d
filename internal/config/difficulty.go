package config

import "math"

// Ramp interpolates linearly from Initial to Max as progress goes from 0 to
// Span. Progress outside [0, Span] is clamped.
type Ramp struct {
	Initial float64 `yaml:"initial"`
	Max     float64 `yaml:"max"`
	Span    float64 `yaml:"span"`
}

// At returns the ramped value for the given progress.
func (r Ramp) At(progress float64) float64 {
	span := r.Span
	if span <= 0 {
		span = 1 // Prevent division by zero
	}
	t := clampF(progress/span, 0.0, 1.0)
	return r.Initial + (r.Max-r.Initial)*t
}

// Difficulty derives the level- and time-dependent tuning of a run from a
// ShooterConfig. Values are computed on demand and never cached, so a
// config swap (hard mode) takes effect immediately.
type Difficulty struct {
	cfg *ShooterConfig
}

// NewDifficulty creates a difficulty calculator over cfg.
func NewDifficulty(cfg *ShooterConfig) Difficulty {
	return Difficulty{cfg: cfg}
}

// SpawnInterval returns the milliseconds between spawns after gameTime ms of
// play.
func (d Difficulty) SpawnInterval(gameTime float64) float64 {
	return d.cfg.Spawn.Interval.At(gameTime)
}

// FieldSpawnInterval returns the asteroid-field spawn interval at a level.
func (d Difficulty) FieldSpawnInterval(level int) float64 {
	return d.cfg.AsteroidField.SpawnInterval / LevelFactor(level)
}

// Chance returns the spawn chance of an archetype at a level, or 0 if the
// archetype is still locked.
func (d Difficulty) Chance(rule SpawnRule, level int) float64 {
	if level < rule.StartLevel {
		return 0
	}
	return rule.Chance.At(float64(level - rule.StartLevel))
}

// SupportHealth returns the support-buffer health at a level.
func (d Difficulty) SupportHealth(level int) int {
	s := d.cfg.Enemies.Support
	steps := 0
	if s.HealthStepLevels > 0 && level > s.Spawn.StartLevel {
		steps = (level - s.Spawn.StartLevel) / s.HealthStepLevels
	}
	return s.Health + steps*s.HealthStep
}

// BossScale is the per-encounter scaling baked into a boss at spawn.
type BossScale struct {
	Encounters     int
	Health         float64 // multiplier on base health
	AttackInterval float64 // multiplier on barrage interval
	WardenWaves    int
	WardenWaveGap  float64 // ms between sweep waves
	WardenMinions  int
	PunisherMinion int
}

// BossScale returns the scaling for a boss that has been defeated n times.
func (d Difficulty) BossScale(n int) BossScale {
	sc := d.cfg.Bosses.Scaling
	if n > sc.EncounterCap {
		n = sc.EncounterCap
	}
	if n < 0 {
		n = 0
	}
	fn := float64(n)

	health := 1 + fn*sc.HealthLinear + fn*fn*sc.HealthQuadratic
	health = math.Min(health, sc.HealthCap)

	attack := math.Max(math.Pow(sc.AttackRate, fn), sc.AttackFloor)

	w := d.cfg.Bosses.Warden
	p := d.cfg.Bosses.Punisher
	return BossScale{
		Encounters:     n,
		Health:         health,
		AttackInterval: attack,
		WardenWaves:    min(sc.WardenWaveCap, w.SweepWaves+n*sc.WardenWaveAdd),
		WardenWaveGap:  math.Max(sc.WardenWaveFloor, w.SweepInterval*math.Pow(sc.WardenWaveRate, fn)),
		WardenMinions:  min(sc.WardenMinionCap, w.MinionCount+n*sc.WardenMinionAdd),
		PunisherMinion: min(sc.PunisherMinCap, p.MinionCount+n*sc.PunisherMinion),
	}
}

// StreakMultiplier returns the currency multiplier for a level streak.
func (d Difficulty) StreakMultiplier(streak int) float64 {
	return 1 + float64(streak)*d.cfg.Progression.StreakBonus
}

// LevelFactor is the asteroid-field intensity factor for a level.
func LevelFactor(level int) float64 {
	return 1 + float64(level)/40
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
