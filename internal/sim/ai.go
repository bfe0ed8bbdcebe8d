package sim

import (
	"math"

	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/pool"
)

// enemyAI runs the per-archetype behavior of every regular enemy.
func (e *Engine) enemyAI() {
	w := e.w
	for h, en := range w.Enemies.All() {
		switch en.Archetype {
		case Evasive:
			e.evade(en)
			e.enemyFire(en)
		case Standard:
			e.enemyFire(en)
		case Diver:
			e.dive(en)
		case SupportBuffer:
			e.link(h, en)
		case Elite:
			e.eliteFire(en)
		}
	}
	e.regenShields()
}

// evade scans the player's shots for one about to pass through the
// enemy and starts a dodge away from it.
func (e *Engine) evade(en *Enemy) {
	w := e.w
	ev := e.cfg.Enemies.Evasive
	if en.Dodging || w.Now < en.DodgeCooldown {
		return
	}
	speed := e.cfg.Weapon.ProjectileSpeed
	var threat *Projectile
	minT := ev.ThreatHorizon
	for _, p := range w.Projectiles.All() {
		if p.Y < en.Y {
			continue
		}
		vy := math.Cos(radians(p.Angle)) * speed
		if vy <= 0 {
			continue
		}
		tti := (p.Y - en.Y) / vy
		if tti >= minT {
			continue
		}
		predX := p.X + math.Sin(radians(p.Angle))*speed*tti
		if math.Abs(predX-en.X) < ev.ThreatRadius {
			minT = tti
			threat = p
		}
	}
	if threat == nil {
		return
	}
	dist := ev.DodgeMin + e.rng.Float64()*ev.DodgeJitter
	dir := 1.0
	if threat.X > en.X {
		dir = -1
	}
	half := e.cfg.Enemies.Width / 2
	en.DodgeTargetX = core.ClampF(en.X+dir*dist, half, e.cfg.Arena.Width-half)
	en.Dodging = true
}

// enemyFire shoots a single round down, or a triple spread when a
// support buffer links the enemy.
func (e *Engine) enemyFire(en *Enemy) {
	w := e.w
	ec := e.cfg.Enemies
	if w.Now <= en.NextShot {
		return
	}
	y := en.Y + ec.Height/2
	if en.Buffed && en.Archetype == Standard {
		for _, deg := range []float64{-ec.SpreadOffset, 0, ec.SpreadOffset} {
			rad := radians(deg)
			e.addEnemyShot(en.X, y, math.Sin(rad)*ec.ProjectileSpeed, math.Cos(rad)*ec.ProjectileSpeed)
		}
	} else {
		e.addEnemyShot(en.X, y, 0, ec.ProjectileSpeed)
	}
	en.NextShot = w.Now + ec.ShootInterval + (e.rng.Float64()-0.5)*ec.ShootJitter
}

// eliteFire shoots an aimed burst fanned around the line to the player.
func (e *Engine) eliteFire(en *Enemy) {
	w := e.w
	ec := e.cfg.Enemies
	el := ec.Elite
	if w.Now <= en.NextShot {
		return
	}
	y := en.Y + ec.Height/2
	aim := math.Atan2(w.Player.X-en.X, e.centerY()-y)
	spread := radians(el.BurstSpread)
	first := -float64(el.BurstSize-1) / 2
	for i := range el.BurstSize {
		a := aim + (first+float64(i))*spread
		e.addEnemyShot(en.X, y, math.Sin(a)*ec.ProjectileSpeed, math.Cos(a)*ec.ProjectileSpeed)
	}
	en.NextShot = w.Now + el.BurstInterval
}

// dive pauses a diver at its target depth and fires beams while paused.
func (e *Engine) dive(en *Enemy) {
	w := e.w
	dc := e.cfg.Enemies.Diver
	switch {
	case !en.Pausing && !en.Dived && en.Y >= en.DiveTargetY:
		en.Pausing = true
		en.PauseUntil = w.Now + dc.Pause
	case en.Pausing && w.Now >= en.PauseUntil:
		en.Pausing = false
		en.Dived = true
	case en.Pausing && w.Now-en.LastBeam > dc.BeamInterval:
		_, b := w.Beams.Acquire()
		*b = DiverBeam{ID: w.nextID(), Y: en.Y, Created: w.Now}
		en.LastBeam = w.Now
	}
}

// link keeps a support buffer attached to the nearest unbuffed enemy or
// asteroid. A linked enemy is shielded.
func (e *Engine) link(h pool.Handle, en *Enemy) {
	w := e.w
	if !en.Link.IsZero() && !e.refAlive(en.Link) {
		en.Link = Ref{}
	}
	if !en.Link.IsZero() {
		return
	}

	best := math.Inf(1)
	var target Ref
	for th, t := range w.Enemies.All() {
		if th == h || t.Archetype == SupportBuffer || t.Buffed {
			continue
		}
		if d := core.DistSq(en.X, en.Y, t.X, t.Y); d < best {
			best = d
			target = Ref{Kind: RefEnemy, Handle: th}
		}
	}
	for ah, a := range w.Asteroids.All() {
		if a.Montezuma || a.Buffed {
			continue
		}
		if d := core.DistSq(en.X, en.Y, a.X, a.Y); d < best {
			best = d
			target = Ref{Kind: RefAsteroid, Handle: ah}
		}
	}

	switch target.Kind {
	case RefEnemy:
		t, err := w.Enemies.Get(target.Handle)
		if err != nil {
			return
		}
		t.Buffed = true
		t.Shield = 1
	case RefAsteroid:
		a, err := w.Asteroids.Get(target.Handle)
		if err != nil {
			return
		}
		a.Buffed = true
	default:
		return
	}
	en.Link = target
}

// regenShields restores broken shields on buffed enemies.
func (e *Engine) regenShields() {
	w := e.w
	for _, en := range w.Enemies.All() {
		if en.Buffed && en.Shield <= 0 && w.Now > en.ShieldRegenAt {
			en.Shield = 1
		}
	}
}

// refAlive reports whether a reference still points at a live entity.
func (e *Engine) refAlive(r Ref) bool {
	switch r.Kind {
	case RefEnemy:
		return e.w.Enemies.Alive(r.Handle)
	case RefAsteroid:
		return e.w.Asteroids.Alive(r.Handle)
	case RefProjectile:
		return e.w.Projectiles.Alive(r.Handle)
	}
	return false
}
