package sim

import (
	"math"

	"github.com/vovakirdan/tui-galaxia/internal/audio"
	"github.com/vovakirdan/tui-galaxia/internal/config"
	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

// updatePlayer steers the ship and runs its guns. The pointer, when
// present, overrides the keys. noShoot holds fire during countdowns.
func (e *Engine) updatePlayer(dt float64, noShoot bool) {
	w := e.w
	p := &w.Player
	pc := e.cfg.Player

	maxSpeed := pc.MaxSpeed * (1 + e.upgradeEffect(config.UpgradeMovementSpeed))
	accel := pc.Acceleration
	friction := pc.Friction
	if w.Hero == progression.HeroBeta {
		accel *= e.cfg.Heroes.BetaAccelModifier
		friction *= e.cfg.Heroes.BetaFrictionMod
	}
	if p.SpeedBoost {
		maxSpeed *= e.cfg.Heroes.SpeedBoostModifier
		accel *= e.cfg.Heroes.SpeedBoostModifier
	}

	frame := e.input.Frame
	if ptr := e.input.PointerX; ptr != nil {
		dx := *ptr - p.X
		if math.Abs(dx) > pc.PointerDeadzone {
			p.VX += core.Sign(dx) * accel * dt
		} else {
			p.VX -= p.VX * friction * dt
		}
	} else {
		switch {
		case frame.Has(core.ActionLeft):
			p.VX -= accel * dt
		case frame.Has(core.ActionRight):
			p.VX += accel * dt
		default:
			p.VX -= p.VX * friction * dt
		}
		if math.Abs(p.VX) < 1 {
			p.VX = 0
		}
	}
	p.VX = core.ClampF(p.VX, -maxSpeed, maxSpeed)
	half := pc.Width / 2
	p.X = core.ClampF(p.X+p.VX*dt, half, e.cfg.Arena.Width-half)

	if noShoot {
		return
	}
	e.autoFire()
	e.tridentFire()
}

func (e *Engine) autoFire() {
	w := e.w
	p := &w.Player
	wc := e.cfg.Weapon
	now := w.Now

	interval := wc.AutoFireInterval
	if p.RapidFire || w.buffActive(PowerRapidFire) {
		interval = wc.RapidFireInterval
	}
	if now-p.LastShot <= interval {
		return
	}
	if p.Ammo <= 0 || p.Reloading(now) {
		if !p.Reloading(now) && !p.EmptyClipPlayed {
			e.play(audio.EmptyClip)
			p.EmptyClipPlayed = true
		}
		return
	}

	y := e.cfg.Player.Y - wc.SpawnOffsetY
	if e.rec.Upgrade(config.UpgradeTridentShot) >= 3 {
		e.addShot(p.X, y, 0, true)
		e.addShot(p.X, y, -wc.ClusterAngle, true)
		e.addShot(p.X, y, wc.ClusterAngle, true)
	} else {
		e.addShot(p.X, y, 0, false)
	}
	if w.buffActive(PowerSpreadShot) {
		e.addShot(p.X-wc.SpreadOffset, y, 0, false)
		e.addShot(p.X+wc.SpreadOffset, y, 0, false)
	}
	p.LastShot = now
	p.Ammo--
	p.EmptyClipPlayed = false
	e.play(audio.PlayerShoot)

	if p.Ammo == 0 && w.buffActive(PowerAutoReload) {
		p.ReloadAt = now + e.reloadTime(true)
		e.play(audio.Reload)
	}
}

// tridentFire runs the side cannons. They need ammo in the clip but do
// not consume it.
func (e *Engine) tridentFire() {
	level := e.rec.Upgrade(config.UpgradeTridentShot)
	if level == 0 {
		return
	}
	w := e.w
	p := &w.Player
	wc := e.cfg.Weapon
	interval := wc.TridentInterval
	if level >= 2 {
		interval = wc.TridentIntervalL2
	}
	if w.Now-p.LastTrident <= interval || p.Ammo <= 0 || p.Reloading(w.Now) {
		return
	}
	y := e.cfg.Player.Y + wc.TridentOffsetY
	e.addShot(p.X-wc.TridentOffsetX, y, -wc.TridentAngle, false)
	e.addShot(p.X+wc.TridentOffsetX, y, wc.TridentAngle, false)
	p.LastTrident = w.Now
}

// centerY is the vertical center of the ship, used by beams and the EMP.
func (e *Engine) centerY() float64 {
	return e.cfg.Player.Y + e.cfg.Arena.Height*0.05
}

// hitsPlayer tests a circle against the ship's body and nose circles.
func (e *Engine) hitsPlayer(x, y, r float64) bool {
	pc := e.cfg.Player
	px := e.w.Player.X
	c := core.Circle{X: x, Y: y, R: r}
	body := core.Circle{X: px, Y: pc.Y + pc.BodyOffsetY, R: pc.BodyRadius}
	nose := core.Circle{X: px, Y: pc.Y + pc.NoseOffsetY, R: pc.NoseRadius}
	return c.Overlaps(body) || c.Overlaps(nose)
}
