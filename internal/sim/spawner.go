package sim

import (
	"math"

	"github.com/vovakirdan/tui-galaxia/internal/config"
)

// spawn adds new enemies or asteroids on the level's cadence. Chances of
// zero consume no randomness, so early levels replay the same sequence no
// matter how the later archetypes are tuned.
func (e *Engine) spawn() {
	w := e.w
	if w.MontezumaActive {
		return
	}
	now := w.Now
	if w.Mode == ModeAsteroidField {
		if now >= w.FieldEndsAt || now-w.LastSpawn <= e.diff.FieldSpawnInterval(w.Level) {
			return
		}
		w.LastSpawn = now
		e.spawnFieldAsteroid()
		return
	}
	if now-w.LastSpawn <= e.diff.SpawnInterval(w.GameTime) {
		return
	}
	w.LastSpawn = now

	ec := e.cfg.Enemies
	width := e.cfg.Arena.Width
	switch {
	case e.roll(e.diff.Chance(ec.Diver.Spawn, w.Level)):
		x := e.rng.Float64()*(width-240) + 120
		e.spawnEnemy(Enemy{
			Archetype:   Diver,
			X:           x,
			BaseX:       x,
			Y:           -ec.Height,
			DiveTargetY: e.rng.Float64()*(e.cfg.Player.Y-ec.Diver.DepthMargin) + ec.Diver.DepthMin,
			LastBeam:    now + e.rng.Float64()*ec.Diver.BeamInterval,
		})
	case e.supportCount() < ec.Support.MaxActive && e.roll(e.diff.Chance(ec.Support.Spawn, w.Level)):
		x := e.rng.Float64()*(width-2*ec.Width) + ec.Width
		e.spawnEnemy(Enemy{
			Archetype: SupportBuffer,
			X:         x,
			BaseX:     x,
			Y:         -ec.Height,
			OscFreq:   ec.Support.OscillationFreq,
			OscAmp:    width * ec.Support.OscillationFactor,
			OscPhase:  e.rng.Float64() * 2 * math.Pi,
		})
	case e.rec.BossesDefeated > 0 && w.Level >= e.cfg.Asteroids.UnlockLevel && e.roll(e.cfg.Asteroids.Chance):
		e.spawnDriftAsteroid()
	default:
		kind := Standard
		if e.rec.BossDefeatCount[Punisher.String()] > 0 && e.roll(e.diff.Chance(ec.Evasive.Spawn, w.Level)) {
			kind = Evasive
		}
		x := e.rng.Float64()*(width-240) + 120
		e.spawnEnemy(Enemy{
			Archetype: kind,
			X:         x,
			BaseX:     x,
			Y:         -ec.Height,
			NextShot:  now + e.rng.Float64()*ec.ShootInterval,
			OscFreq:   e.rng.Float64() + 0.5,
			OscAmp:    e.rng.Float64()*80 + 40,
			OscPhase:  e.rng.Float64() * 2 * math.Pi,
		})
	}
}

// roll draws against a chance, skipping the draw when it cannot succeed.
func (e *Engine) roll(chance float64) bool {
	if chance <= 0 {
		return false
	}
	return e.rng.Float64() < chance
}

func (e *Engine) supportCount() int {
	n := 0
	for _, en := range e.w.Enemies.All() {
		if en.Archetype == SupportBuffer {
			n++
		}
	}
	return n
}

// rollTier picks an asteroid tier by weight. Tiers are listed small to
// large and the largest is checked first.
func (e *Engine) rollTier() int {
	tiers := e.cfg.Asteroids.Tiers
	total := 0
	for _, t := range tiers {
		total += t.Weight
	}
	if total <= 0 {
		return 0
	}
	r := e.rng.Float64() * float64(total)
	acc := 0.0
	for i := len(tiers) - 1; i >= 0; i-- {
		acc += float64(tiers[i].Weight)
		if r < acc {
			return i
		}
	}
	return 0
}

// spawnFieldAsteroid adds a rock during an asteroid field, faster with
// each level.
func (e *Engine) spawnFieldAsteroid() {
	ac := e.cfg.Asteroids
	lf := config.LevelFactor(e.w.Level)
	tier := e.rollTier()
	t := ac.Tiers[tier]
	x := e.rng.Float64() * e.cfg.Arena.Width
	vx := (e.rng.Float64() - 0.5) * 2 * ac.DriftX * lf
	vy := ac.BaseSpeedY * (1 + (e.rng.Float64()-0.5)*0.4) * lf
	e.addAsteroid(Asteroid{X: x, Y: -t.Radius, VX: vx, VY: vy, Tier: tier, Field: true})
}

// spawnDriftAsteroid adds a stray rock to normal play.
func (e *Engine) spawnDriftAsteroid() {
	ac := e.cfg.Asteroids
	tier := e.rollTier()
	t := ac.Tiers[tier]
	x := e.rng.Float64() * e.cfg.Arena.Width
	vx := (e.rng.Float64() - 0.5) * ac.DriftX
	vy := ac.BaseSpeedY * (1 + (e.rng.Float64()-0.5)*0.4)
	e.addAsteroid(Asteroid{X: x, Y: -t.Radius, VX: vx, VY: vy, Tier: tier})
}

func (e *Engine) addAsteroid(a Asteroid) {
	t := e.cfg.Asteroids.Tiers[a.Tier]
	a.ID = e.w.nextID()
	a.Radius = t.Radius
	a.Health = float64(t.Health)
	a.MaxHealth = a.Health
	_, slot := e.w.Asteroids.Acquire()
	*slot = a
	e.sight("asteroid")
}
