package sim

import (
	"errors"
	"math"
	"slices"

	"github.com/vovakirdan/tui-galaxia/internal/audio"
	"github.com/vovakirdan/tui-galaxia/internal/config"
	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/pool"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

// Resolution is the delta produced by one collision pass. Nothing is
// released while the pass runs; the engine merges the delta afterwards.
type Resolution struct {
	Score    int
	Currency int
	Parts    int
	Kills    int

	Projectiles      []pool.Handle
	Enemies          []pool.Handle
	EnemyProjectiles []pool.Handle
	Asteroids        []pool.Handle
	PowerUps         []pool.Handle

	PlayerDied bool
	Revived    bool
	BossKilled bool
}

// resolveCollisions tests every interaction of the tick and returns the
// resulting delta.
func (e *Engine) resolveCollisions() Resolution {
	var res Resolution
	w := e.w
	ec := e.cfg.Enemies

	e.grid.Clear()
	for h, en := range w.Enemies.All() {
		e.grid.Insert(Ref{Kind: RefEnemy, Handle: h}, en.X, en.Y+ec.Height/2, ec.HitRadius)
	}
	for h, a := range w.Asteroids.All() {
		e.grid.Insert(Ref{Kind: RefAsteroid, Handle: h}, a.X, a.Y, a.Radius)
	}

	e.shotHits(&res)
	if w.Mode != ModePlayerDying {
		e.playerHits(&res)
		if !res.PlayerDied {
			e.pickups(&res)
			e.emp(&res)
		}
	}
	return res
}

func (e *Engine) shotHits(res *Resolution) {
	w := e.w
	wc := e.cfg.Weapon
	bc := e.cfg.Bosses
	for ph, p := range w.Projectiles.All() {
		if b := w.Boss; b != nil && b.Hittable() && core.Dist(p.X, p.Y, b.X, b.CenterY()) < b.Width/2+bc.HitMargin {
			res.Projectiles = append(res.Projectiles, ph)
			res.Score += bc.HitScore
			dmg, crit := e.rollDamage(true)
			if e.hitBoss(b, dmg, crit, p.X, p.Y) {
				res.BossKilled = true
			}
			continue
		}
		e.nearby = e.grid.Nearby(Ref{}, p.X, p.Y, wc.ProjectileRadius, e.nearby[:0])
		for _, ref := range e.nearby {
			if e.hitTarget(res, ref, p) {
				res.Projectiles = append(res.Projectiles, ph)
				break
			}
		}
	}
}

// hitTarget applies a shot to one grid candidate. It reports whether the
// shot was consumed.
func (e *Engine) hitTarget(res *Resolution, ref Ref, p *Projectile) bool {
	w := e.w
	wc := e.cfg.Weapon
	switch ref.Kind {
	case RefAsteroid:
		if slices.Contains(res.Asteroids, ref.Handle) {
			return false
		}
		a, err := w.Asteroids.Get(ref.Handle)
		if err != nil || core.Dist(p.X, p.Y, a.X, a.Y) >= a.Radius+wc.ProjectileRadius {
			return false
		}
		dmg, crit := e.rollDamage(true)
		a.Health = math.Max(a.Health-float64(dmg), 0)
		e.addEffect(Effect{Kind: EffectRockImpact, X: p.X, Y: p.Y})
		e.addEffect(Effect{Kind: EffectDamageNumber, X: p.X, Y: p.Y, Value: dmg, Crit: crit})
		e.play(audio.AsteroidImpact)
		if crit {
			e.play(audio.Crit)
		}
		if a.Health <= 0 {
			e.destroyAsteroid(res, ref.Handle, a)
		}
		return true

	case RefEnemy:
		if slices.Contains(res.Enemies, ref.Handle) {
			return false
		}
		en, err := w.Enemies.Get(ref.Handle)
		ec := e.cfg.Enemies
		if err != nil || core.Dist(p.X, p.Y, en.X, en.Y+ec.Height/2) >= ec.HitRadius+wc.ProjectileRadius {
			return false
		}
		if en.Buffed && en.Shield > 0 {
			en.Shield--
			en.ShieldRegenAt = w.Now + ec.Support.ShieldRegen
			e.play(audio.ShieldBreak)
			return true
		}
		durable := en.Archetype.Durable()
		dmg, crit := e.rollDamage(!durable)
		e.addEffect(Effect{Kind: EffectDamageNumber, X: en.X, Y: en.Y, Value: dmg, Crit: crit})
		if durable {
			en.Health -= dmg
			e.play(audio.BossHit)
			if en.Health > 0 {
				return true
			}
		}
		e.killEnemy(res, ref.Handle, en, true)
		if crit {
			e.critChain(res, ref.Handle, en)
		}
		return true
	}
	return false
}

// destroyAsteroid pays out a rock's tier rewards. The montezuma giant is
// paid when its encounter settles.
func (e *Engine) destroyAsteroid(res *Resolution, h pool.Handle, a *Asteroid) {
	res.Asteroids = append(res.Asteroids, h)
	if !a.Montezuma {
		t := e.cfg.Asteroids.Tiers[a.Tier]
		res.Score += t.Score
		res.Currency += int(math.Floor(float64(t.Currency) * e.diff.StreakMultiplier(e.w.Streak)))
		if e.rec.BossesDefeated > 0 && e.roll(t.PartChance) {
			res.Parts++
		}
	}
	e.addEffect(Effect{Kind: EffectExplosion, X: a.X, Y: a.Y})
	e.addEffect(Effect{Kind: EffectCriticalHit, X: a.X, Y: a.Y})
	e.play(audio.Explosion)
}

// killEnemy records a kill. Drops covers the part roll and the power-up
// roll, which chained kills skip.
func (e *Engine) killEnemy(res *Resolution, h pool.Handle, en *Enemy, drops bool) {
	prog := e.cfg.Progression
	res.Enemies = append(res.Enemies, h)
	res.Kills++
	res.Score += prog.ScorePerHit
	res.Currency += int(math.Floor(float64(prog.CurrencyPerKill) * e.diff.StreakMultiplier(e.w.Streak)))
	e.addEffect(Effect{Kind: EffectExplosion, X: en.X, Y: en.Y})
	e.play(audio.Explosion)
	if !drops {
		return
	}
	if e.rec.BossesDefeated > 0 && e.roll(prog.PartChanceEnemy) {
		res.Parts++
	}
	if en.Archetype != SupportBuffer && e.roll(e.cfg.PowerUps.DropChance) {
		kind := PowerUpKinds[e.rng.Intn(len(PowerUpKinds))]
		_, pu := e.w.PowerUps.Acquire()
		*pu = PowerUp{ID: e.w.nextID(), Kind: kind, X: en.X, Y: en.Y}
	}
}

// critChain kills every other enemy inside the crit radius. Chained kills
// never chain again.
func (e *Engine) critChain(res *Resolution, h pool.Handle, en *Enemy) {
	w := e.w
	radius := e.cfg.Crit.Radius * (1 + e.upgradeEffect(config.UpgradeAlphaAOE))
	e.addEffect(Effect{Kind: EffectCriticalHit, X: en.X, Y: en.Y, Value: int(radius), Crit: true})
	e.play(audio.Crit)

	self := Ref{Kind: RefEnemy, Handle: h}
	e.nearby = e.grid.Nearby(self, en.X, en.Y+e.cfg.Enemies.Height/2, radius, e.nearby[:0])
	for _, ref := range e.nearby {
		if ref.Kind != RefEnemy || slices.Contains(res.Enemies, ref.Handle) {
			continue
		}
		o, err := w.Enemies.Get(ref.Handle)
		if err != nil || core.DistSq(en.X, en.Y, o.X, o.Y) >= radius*radius {
			continue
		}
		e.killEnemy(res, ref.Handle, o, false)
		e.addEffect(Effect{Kind: EffectDamageNumber, X: o.X, Y: o.Y, Value: e.cfg.Weapon.DamageMax, Crit: true})
	}
}

// playerHits tests every hazard against the ship, in priority order, and
// stops at the first lethal hit.
func (e *Engine) playerHits(res *Resolution) {
	w := e.w
	now := w.Now
	px := w.Player.X
	ec := e.cfg.Enemies

	for h, a := range w.Asteroids.All() {
		if slices.Contains(res.Asteroids, h) {
			continue
		}
		if e.hitsPlayer(a.X, a.Y, a.Radius) && e.absorbHit(res) {
			return
		}
	}
	if b := w.Boss; b != nil && b.BeamFiring() {
		safe := e.cfg.Bosses.Overmind.SafeZoneWidth
		if (px < b.SafeX || px > b.SafeX+safe) && e.absorbHit(res) {
			return
		}
	}
	lane := int(math.Floor(px / (e.cfg.Arena.Width / float64(e.cfg.Arena.LaneCount))))
	for _, l := range w.Lasers.All() {
		if l.Firing(now) && l.Lane == lane && e.absorbHit(res) {
			return
		}
	}
	cy := e.centerY()
	half := ec.Diver.BeamHeight / 2
	for _, b := range w.Beams.All() {
		if math.Abs(cy-b.Y) < half && e.absorbHit(res) {
			return
		}
	}
	for h, en := range w.Enemies.All() {
		if slices.Contains(res.Enemies, h) || !e.hitsPlayer(en.X, en.Y+ec.Height/2, ec.HitRadius) {
			continue
		}
		res.Enemies = append(res.Enemies, h)
		res.Kills++
		e.addEffect(Effect{Kind: EffectExplosion, X: en.X, Y: en.Y})
		e.play(audio.Explosion)
		if e.absorbHit(res) {
			return
		}
	}
	for h, p := range w.EnemyProjectiles.All() {
		if !e.hitsPlayer(p.X, p.Y, ec.ProjectileRadius) {
			continue
		}
		res.EnemyProjectiles = append(res.EnemyProjectiles, h)
		if e.absorbHit(res) {
			return
		}
	}
}

// absorbHit runs one hit through the ship's defenses. It reports whether
// the hit was lethal.
func (e *Engine) absorbHit(res *Resolution) bool {
	w := e.w
	p := &w.Player
	pc := e.cfg.Player
	now := w.Now
	if now < p.InvulnerableUntil || p.ShieldBreakingUntil > now {
		return false
	}
	if p.Shield > 0 {
		p.Shield--
		if p.Shield == 0 {
			p.ShieldBreakingUntil = now + pc.ShieldBreakGrace
		}
		e.play(audio.ShieldBreak)
		return false
	}
	if p.HasRevive {
		p.HasRevive = false
		p.InvulnerableUntil = now + pc.ReviveInvulnerability
		res.Revived = true
		e.play(audio.ReviveUsed)
		return false
	}
	res.PlayerDied = true
	return true
}

func (e *Engine) pickups(res *Resolution) {
	w := e.w
	p := &w.Player
	for h, pu := range w.PowerUps.All() {
		if !e.hitsPlayer(pu.X, pu.Y, e.cfg.PowerUps.Radius) {
			continue
		}
		res.PowerUps = append(res.PowerUps, h)
		switch pu.Kind {
		case PowerShield:
			p.Shield = e.shieldCharges()
			p.ShieldBreakingUntil = 0
		case PowerReloadBoost:
			p.ReloadBoosts++
		default:
			w.Buffs[pu.Kind] = w.Now + e.cfg.PowerUps.Duration
		}
		w.emit(EventPowerUp, pu.Kind.String())
		e.play(audio.PowerUp)
	}
}

// emp lets a shielded gamma ship arc to the nearest enemy.
func (e *Engine) emp(res *Resolution) {
	w := e.w
	p := &w.Player
	if w.Hero != progression.HeroGamma || !p.HasShield() {
		return
	}
	tier, ok := e.cfg.Heroes.Emp(e.upgradeLevel(config.UpgradeGammaShield))
	if !ok || w.Now <= p.LastEmp+tier.Cooldown {
		return
	}
	cy := e.centerY()
	best := tier.Range * tier.Range
	var target pool.Handle
	var en *Enemy
	e.nearby = e.grid.Nearby(Ref{}, p.X, cy, tier.Range, e.nearby[:0])
	for _, ref := range e.nearby {
		if ref.Kind != RefEnemy || slices.Contains(res.Enemies, ref.Handle) {
			continue
		}
		o, err := w.Enemies.Get(ref.Handle)
		if err != nil {
			continue
		}
		if d := core.DistSq(p.X, cy, o.X, o.Y); d < best {
			best, target, en = d, ref.Handle, o
		}
	}
	if en == nil || !e.roll(tier.Chance) {
		return
	}
	p.LastEmp = w.Now
	dmg := e.cfg.Heroes.EmpDamage
	e.addEffect(Effect{Kind: EffectEmpArc, X: p.X, Y: cy, X2: en.X, Y2: en.Y})
	e.addEffect(Effect{Kind: EffectDamageNumber, X: en.X, Y: en.Y, Value: dmg, Crit: true})
	e.play(audio.Emp)
	if en.Archetype.Durable() {
		en.Health -= dmg
		if en.Health > 0 {
			return
		}
	}
	e.killEnemy(res, target, en, false)
}

// applyResolution merges a collision delta into the world.
func (e *Engine) applyResolution(res *Resolution) {
	w := e.w
	w.Score += res.Score
	w.Currency += res.Currency
	w.Parts += res.Parts

	for _, h := range res.Enemies {
		if en, err := w.Enemies.Get(h); err == nil && en.Archetype == SupportBuffer {
			e.unlink(en.Link)
		}
	}
	err := errors.Join(
		w.Projectiles.ReleaseMany(res.Projectiles),
		w.Enemies.ReleaseMany(res.Enemies),
		w.EnemyProjectiles.ReleaseMany(res.EnemyProjectiles),
		w.Asteroids.ReleaseMany(res.Asteroids),
		w.PowerUps.ReleaseMany(res.PowerUps),
	)
	if err != nil {
		e.log.Warn("release failed", "error", err)
	}

	if res.BossKilled {
		w.resetEnemies()
		w.Beams.Reset()
		w.Lasers.Reset()
	}
	if res.Revived {
		w.clearHazards()
		if b := w.Boss; b != nil && b.Phase == PhaseFiringBeam && e.setPhase(b, PhaseFury) {
			b.PatternStart = w.Now
		}
	}
	if res.PlayerDied {
		e.killPlayer()
	}
}

// unlink clears the buff a dead support buffer granted.
func (e *Engine) unlink(r Ref) {
	switch r.Kind {
	case RefEnemy:
		if t, err := e.w.Enemies.Get(r.Handle); err == nil {
			t.Buffed = false
			t.Shield = 0
		}
	case RefAsteroid:
		if a, err := e.w.Asteroids.Get(r.Handle); err == nil {
			a.Buffed = false
		}
	}
}

// killPlayer starts the death sequence.
func (e *Engine) killPlayer() {
	w := e.w
	if w.Mode == ModePlayerDying {
		return
	}
	w.DeathAt = w.Now
	w.DeathX = w.Player.X
	w.DeathY = e.centerY()
	w.DeathExplosions = 0
	e.setMode(ModePlayerDying)
	e.addEffect(Effect{Kind: EffectExplosion, X: w.DeathX, Y: w.DeathY})
	e.play(audio.Explosion)
	e.play(audio.PlayerDeath)
}
