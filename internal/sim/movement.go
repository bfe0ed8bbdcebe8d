package sim

import (
	"math"

	"github.com/vovakirdan/tui-galaxia/internal/config"
	"github.com/vovakirdan/tui-galaxia/internal/core"
)

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// enemySpeed is the vertical speed of an enemy in px/s.
func (e *Engine) enemySpeed(en *Enemy) float64 {
	ec := e.cfg.Enemies
	switch en.Archetype {
	case SupportBuffer, Elite:
		return ec.Support.SpeedY
	case Diver:
		if en.Pausing {
			return 0
		}
		return ec.Diver.DiveSpeed
	}
	return ec.Speed
}

// moveEntities integrates every moving entity over dt seconds.
func (e *Engine) moveEntities(dt float64) {
	w := e.w
	ec := e.cfg.Enemies
	width := e.cfg.Arena.Width
	half := ec.Width / 2

	for _, en := range w.Enemies.All() {
		en.Y += e.enemySpeed(en) * dt
		switch {
		case en.Dodging:
			step := ec.Evasive.DodgeSpeed * dt
			dx := en.DodgeTargetX - en.X
			if math.Abs(dx) <= step {
				en.X = en.DodgeTargetX
				en.BaseX = en.X
				en.Dodging = false
				en.DodgeCooldown = w.Now + ec.Evasive.Cooldown
			} else {
				en.X += core.Sign(dx) * step
			}
		case en.Archetype != Diver:
			en.X = en.BaseX + math.Sin(w.GameTime*en.OscFreq/1000+en.OscPhase)*en.OscAmp
		}
		en.X = core.ClampF(en.X, half, width-half)
	}

	e.moveProjectiles(dt)

	for _, p := range w.EnemyProjectiles.All() {
		p.X += p.VX * dt
		p.Y += p.VY * dt
	}

	for _, a := range w.Asteroids.All() {
		a.X += a.VX * dt
		a.Y += a.VY * dt
		if a.Buffed && !a.Montezuma {
			a.Health = math.Min(a.Health+ec.Support.AsteroidRepair*dt, a.MaxHealth)
		}
	}

	pc := e.cfg.PowerUps
	graviton := e.rec.Upgrade(config.UpgradeGraviton) > 0
	px, py := w.Player.X, e.cfg.Player.Y
	for _, p := range w.PowerUps.All() {
		p.Y += pc.FallSpeed * dt
		if !graviton {
			continue
		}
		dx, dy := px-p.X, py-p.Y
		d := math.Hypot(dx, dy)
		if d < 1 {
			continue
		}
		step := math.Min(pc.GravitonPull*dt, d)
		p.X += dx / d * step
		p.Y += dy / d * step
	}
}

// moveProjectiles moves player shots along their angle. Beta's homing
// upgrade bends them toward the nearest target ahead.
func (e *Engine) moveProjectiles(dt float64) {
	w := e.w
	wc := e.cfg.Weapon
	speed := wc.ProjectileSpeed
	homing := e.upgradeEffect(config.UpgradeBetaHoming)

	for _, p := range w.Projectiles.All() {
		rad := radians(p.Angle)
		p.X += math.Sin(rad) * speed * dt
		p.Y -= math.Cos(rad) * speed * dt
		if homing <= 0 {
			continue
		}
		if tx, ok := e.homingTarget(p.X, p.Y); ok {
			dx := tx - p.X
			p.X += core.Sign(dx) * math.Min(wc.HomingMaxSpeed*homing*dt, math.Abs(dx))
		}
	}
}

// homingTarget returns the x of the nearest enemy or boss above the shot
// within homing range.
func (e *Engine) homingTarget(x, y float64) (float64, bool) {
	w := e.w
	limit := e.cfg.Weapon.HomingRange * e.cfg.Weapon.HomingRange
	best, found := limit, false
	var tx float64
	for _, en := range w.Enemies.All() {
		if en.Y > y {
			continue
		}
		if d := core.DistSq(x, y, en.X, en.Y); d < best {
			best, tx, found = d, en.X, true
		}
	}
	if b := w.Boss; b != nil && b.Hittable() && b.CenterY() <= y {
		if d := core.DistSq(x, y, b.X, b.CenterY()); d < best {
			tx, found = b.X, true
		}
	}
	return tx, found
}
