package sim

import (
	"github.com/vovakirdan/tui-galaxia/internal/audio"
	"github.com/vovakirdan/tui-galaxia/internal/core"
)

// maxStep caps the seconds simulated by one tick, so a stalled host does
// not teleport entities through each other.
const maxStep = 0.25

// Tick advances the world to in.Now and returns the resulting snapshot.
// Discrete actions in the frame are dispatched before the simulation step;
// Left and Right are sampled as held keys by the player update.
func (e *Engine) Tick(in core.TickInput) Snapshot {
	if !e.clock.Started() {
		e.clock.Start(in.Now)
	}
	e.input = in
	e.w.Events = e.w.Events[:0]
	e.applyResume()
	e.w.Now = e.clock.Now(in.Now)

	for _, a := range in.Frame.List() {
		switch a {
		case core.ActionLeft, core.ActionRight, core.ActionQuit:
			continue
		}
		if err := e.Dispatch(a); err != nil {
			e.log.Debug("action ignored", "action", a, "error", err)
		}
	}

	w := e.w
	w.Now = e.clock.Now(in.Now)
	if w.Mode != ModePaused {
		dt := core.ClampF((w.Now-w.LastTick)/1000, 0, maxStep)
		e.step(dt)
		e.w.LastTick = e.w.Now
	}
	return e.Snapshot()
}

// step runs one simulation step. The short-circuits are ordered: a
// settling fight, encounter processing, a pending encounter, the death
// sequence, the victory pause, training and finally the full pipeline.
func (e *Engine) step(dt float64) {
	w := e.w
	now := w.Now

	if w.SettleAt > 0 && now >= w.SettleAt {
		e.settleFight()
		return
	}
	if w.Mode == ModeEncounterProcessing && now >= w.RevealAt {
		w.RevealAt = 0
		e.setMode(ModeEncounterOutcome)
		return
	}
	if w.Mode == ModeEncounterProcessing || w.SettleAt > 0 {
		e.softPause(dt)
		return
	}
	if w.Pending != nil && w.Mode.Combat() && w.Enemies.Len() == 0 && w.EnemyProjectiles.Len() == 0 {
		e.presentEncounter()
		return
	}
	if w.Mode == ModePlayerDying {
		e.dying(dt)
		return
	}
	if w.Fight != nil && w.FightAt == 0 && w.Mode.Combat() && w.encounterEnemies() == 0 {
		w.SettleAt = now + e.cfg.Encounters.ProcessDelay
		return
	}
	if w.VictoryAt > 0 && now >= w.VictoryAt {
		e.victory()
		return
	}
	if w.Mode == ModeTrainingSim {
		e.trainingTick(dt)
		return
	}
	if w.Mode.Combat() {
		e.combatTick(dt)
	}
}

func (e *Engine) combatTick(dt float64) {
	w := e.w
	now := w.Now
	p := &w.Player

	w.GameTime += dt * 1000
	e.expireBuffs()
	e.updateMaxAmmo()
	if p.ReloadAt > 0 && now >= p.ReloadAt {
		p.Ammo = p.MaxAmmo
		p.ReloadAt = 0
	}

	e.updatePlayer(dt, w.FightAt > 0)
	e.moveEntities(dt)

	if w.Mode == ModeBossBattle {
		e.bossLogic()
	} else if w.Pending == nil && w.Fight == nil {
		e.spawn()
	}
	e.enemyAI()

	if w.FightAt > 0 && now >= w.FightAt {
		w.FightAt = 0
		if w.Fight != nil {
			e.spawnFight(*w.Fight)
		}
	}

	res := e.resolveCollisions()
	e.applyResolution(&res)
	e.checkProgression(res.Kills)
	e.cull()
	e.expireEffects()
}

// softPause keeps the ship and the field moving while an outcome is being
// revealed, with every hostile shot removed.
func (e *Engine) softPause(dt float64) {
	w := e.w
	w.GameTime += dt * 1000
	e.updatePlayer(dt, true)
	e.moveEntities(dt)
	w.EnemyProjectiles.Reset()
	w.Beams.Reset()
	w.Lasers.Reset()
	e.cull()
	e.expireEffects()
}

// dying plays the death sequence and ends the run when it is over.
func (e *Engine) dying(dt float64) {
	w := e.w
	pc := e.cfg.Player
	if w.Now-w.DeathAt > pc.DeathDuration {
		e.setMode(ModeGameOver)
		e.finishRun(OutcomeGameOver)
		return
	}
	if w.DeathExplosions < pc.DeathExplosions && e.rng.Float64() < dt*1000/pc.DeathExplosionInterval {
		e.addEffect(Effect{
			Kind: EffectExplosion,
			X:    w.DeathX + (e.rng.Float64()-0.5)*60,
			Y:    w.DeathY + (e.rng.Float64()-0.5)*72,
		})
		e.play(audio.Explosion)
		w.DeathExplosions++
	}
	w.Beams.Reset()
	e.expireEffects()
}

func (e *Engine) expireBuffs() {
	w := e.w
	for k, until := range w.Buffs {
		if until > 0 && w.Now > until {
			w.Buffs[k] = 0
		}
	}
	p := &w.Player
	if p.ShieldBreakingUntil > 0 && w.Now > p.ShieldBreakingUntil {
		p.ShieldBreakingUntil = 0
	}
}

// cull drops everything that left the field. Enemies are never culled:
// one passing the bottom edge ends the run.
func (e *Engine) cull() {
	w := e.w
	now := w.Now
	width, height := e.cfg.Arena.Width, e.cfg.Arena.Height
	margin := e.cfg.Progression.OffscreenMargin
	outside := func(x, y float64) bool {
		return y < -margin || y > height+margin || x < -margin || x > width+margin
	}

	for h, p := range w.Projectiles.All() {
		if outside(p.X, p.Y) {
			_ = w.Projectiles.Release(h)
		}
	}
	for h, p := range w.EnemyProjectiles.All() {
		if outside(p.X, p.Y) {
			_ = w.EnemyProjectiles.Release(h)
		}
	}
	for h, a := range w.Asteroids.All() {
		if !a.Montezuma && a.Y > height+a.Radius {
			_ = w.Asteroids.Release(h)
		}
	}
	for h, p := range w.PowerUps.All() {
		if p.Y > height+margin {
			_ = w.PowerUps.Release(h)
		}
	}
	for h, b := range w.Beams.All() {
		if now > b.Created+e.cfg.Enemies.Diver.BeamDuration {
			_ = w.Beams.Release(h)
		}
	}
	for h, l := range w.Lasers.All() {
		if now >= l.Until {
			_ = w.Lasers.Release(h)
		}
	}
}

func (e *Engine) expireEffects() {
	w := e.w
	for h, fx := range w.Effects.All() {
		if w.Now > fx.Created+fx.TTL {
			_ = w.Effects.Release(h)
		}
	}
}
