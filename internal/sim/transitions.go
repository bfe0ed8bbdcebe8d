package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-galaxia/internal/audio"
	"github.com/vovakirdan/tui-galaxia/internal/encounter"
	"github.com/vovakirdan/tui-galaxia/internal/pool"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

// checkProgression runs the per-tick transition checks after collisions:
// the montezuma giant, the asteroid field timer, level-ups, escapes and
// the end of a boss's death sequence.
func (e *Engine) checkProgression(kills int) {
	w := e.w
	if w.Mode == ModePlayerDying {
		return
	}
	if w.MontezumaActive && e.checkMontezuma() {
		return
	}
	if w.Mode == ModeAsteroidField && w.FieldEndsAt > 0 && w.Now >= w.FieldEndsAt {
		e.completeField()
		return
	}

	w.Kills += kills
	e.checkLevelUp()

	if e.cfg.Progression.EnemyEscapeEndsGame {
		limit := e.cfg.Arena.Height + e.cfg.Enemies.Height
		for _, en := range w.Enemies.All() {
			if en.Y > limit {
				e.log.Debug("enemy escaped", "archetype", en.Archetype, "level", w.Level)
				e.killPlayer()
				return
			}
		}
	}

	if b := w.Boss; b != nil && b.Phase == PhaseDefeated && w.Now > b.PhaseStart+e.cfg.Bosses.DefeatDuration {
		e.bossDefeated(b)
	}
}

func (e *Engine) checkLevelUp() {
	w := e.w
	prog := e.cfg.Progression
	if w.Kills < prog.EnemiesPerLevel || w.Fight != nil {
		return
	}
	if w.Mode == ModeAsteroidField || w.Mode == ModeBossBattle {
		return
	}
	gained := w.Kills / prog.EnemiesPerLevel
	w.Level += gained
	w.Streak += gained
	w.Kills %= prog.EnemiesPerLevel
	w.LevelUpAt = w.Now
	e.play(audio.LevelUp)
	w.emit(EventLevelUp, "")
	e.log.Debug("level up", "level", w.Level, "streak", w.Streak)

	if w.Streak >= prog.Tier2UnlockStreak && !e.rec.Tier2Unlocked {
		e.rec.Tier2Unlocked = true
		w.emit(EventUnlock, "tier2")
	}

	if e.showStory(w.Level) {
		w.clearHazards()
		w.Lasers.Reset()
		return
	}
	if e.bossLevel(w.Level) {
		e.startBossBattle()
		return
	}
	if e.roll(e.cfg.Encounters.Chance) {
		if enc, ok := e.catalog.Pick(w.Level, e.encounterState(), e.rng); ok {
			w.Pending = &enc
			w.emit(EventEncounterQueued, enc.ID)
		}
	}
	if !w.Player.HasShield() {
		chance := prog.ShieldChance
		if w.Hero == progression.HeroGamma {
			chance += e.cfg.Heroes.GammaShieldBonus
		}
		if e.roll(chance) {
			w.Player.Shield = e.shieldCharges()
			w.emit(EventShieldGained, "")
			e.play(audio.PowerUp)
		}
	}
}

func (e *Engine) bossLevel(level int) bool {
	prog := e.cfg.Progression
	return level%prog.BossInterval == 0 || level == prog.FinalLevel
}

// showStory opens the first unseen briefing at or below level. Virtual
// time stands still until it is dismissed. It reports whether a briefing
// was opened.
func (e *Engine) showStory(level int) bool {
	for _, m := range e.cfg.Story {
		if m.Level > level || e.rec.StoryShown(m.Level) {
			continue
		}
		w := e.w
		w.Story = &m
		e.clock.Pause(e.input.Now)
		e.setMode(ModeStory)
		w.emit(EventStory, m.Title)
		e.log.Debug("story", "milestone", m.Level, "level", level)
		return true
	}
	return false
}

// DismissStory closes the briefing and marks it shown. A briefing on a
// boss level leads straight into the boss battle.
func (e *Engine) DismissStory() error {
	w := e.w
	if w.Mode != ModeStory || w.Story == nil {
		return fmt.Errorf("%w: dismiss story in %s", ErrWrongMode, w.Mode)
	}
	e.rec.MarkStoryShown(w.Story.Level)
	w.Story = nil
	e.save()

	e.clock.Resume(e.input.Now)
	w.Now = e.clock.Now(e.input.Now)
	w.LastTick = w.Now
	w.LastSpawn = w.Now
	if e.bossLevel(w.Level) {
		e.startBossBattle()
		return nil
	}
	e.setMode(ModePlaying)
	return nil
}

func (e *Engine) startBossBattle() {
	w := e.w
	w.resetEnemies()
	w.EnemyProjectiles.Reset()
	w.PowerUps.Reset()
	e.spawnBoss()
	e.setMode(ModeBossBattle)
	e.play(audio.EncounterBad)
}

// checkMontezuma settles the giant once it is destroyed or has drifted
// off the bottom. It reports whether the encounter ended.
func (e *Engine) checkMontezuma() bool {
	w := e.w
	mc := e.cfg.Montezuma
	var res encounter.Result
	a, err := w.Asteroids.Get(w.Montezuma)
	switch {
	case err != nil:
		e.rec.MontezumaDefeated = true
		e.rec.MontezumaDamage = mc.Health
		w.Currency += mc.RewardCurrency
		if e.rec.BossesDefeated > 0 {
			w.Parts += mc.RewardParts
		}
		res = encounter.Result{
			Kind:     encounter.FightReward,
			Title:    "Behemoth Shattered!",
			Text:     "The giant asteroid breaks apart, scattering rare minerals.",
			Currency: mc.RewardCurrency,
			Parts:    mc.RewardParts,
		}
	case a.Y > e.cfg.Arena.Height+a.Radius:
		e.rec.MontezumaDamage = mc.Health - int(math.Ceil(a.Health))
		_ = w.Asteroids.Release(w.Montezuma)
		res = encounter.Result{
			Kind:  encounter.Nothing,
			Title: "It Got Away...",
			Text:  "The behemoth drifts out of range. The damage you dealt will remain.",
		}
	default:
		return false
	}
	w.MontezumaActive = false
	w.Montezuma = pool.Handle{}
	e.save()
	e.showOutcome(res, ModeIntermission)
	return true
}

// completeField pays out a survived asteroid field.
func (e *Engine) completeField() {
	w := e.w
	fc := e.cfg.AsteroidField
	currency := int(math.Floor(float64(fc.RewardCurrency) * e.diff.StreakMultiplier(w.Streak)))
	w.Currency += currency
	parts := 0
	if e.rec.BossesDefeated > 0 {
		parts = fc.RewardParts
		w.Parts += parts
	}
	res := encounter.Result{
		Kind:     encounter.FightReward,
		Title:    "Field Navigated!",
		Text:     "You made it through the asteroid field.",
		Currency: currency,
		Parts:    parts,
	}
	if !e.rec.TridentUnlocked {
		e.rec.TridentUnlocked = true
		w.emit(EventUnlock, "trident")
		res.Title = "Upgrade: Trident Shot Unlocked!"
		res.Text = "Salvage from the field reveals plans for a side-mounted cannon."
		e.save()
	} else {
		e.play(audio.LevelUp)
	}
	for h, a := range w.Asteroids.All() {
		if !a.Montezuma {
			_ = w.Asteroids.Release(h)
		}
	}
	w.FieldEndsAt = 0
	e.showOutcome(res, ModeIntermission)
}

// bossDefeated pays out a boss once its death sequence is over.
func (e *Engine) bossDefeated(b *Boss) {
	w := e.w
	bc := e.cfg.Bosses
	w.Score += bc.DefeatScore
	w.Currency += int(math.Floor(float64(bc.DefeatCurrency) * e.diff.StreakMultiplier(w.Streak)))
	w.Parts += bc.PartReward
	if e.roll(bc.PartChance) {
		w.Parts++
	}
	e.rec.BossesDefeated++
	e.rec.BossDefeatCount[b.Kind.String()]++
	w.emit(EventBossDefeated, b.Kind.String())
	e.log.Info("boss defeated", "boss", b.Kind, "level", w.Level, "count", e.rec.BossDefeatCount[b.Kind.String()])
	w.Boss = nil

	if b.Kind == Overmind {
		w.VictoryAt = w.Now + e.cfg.Progression.VictoryPause
		e.save()
		return
	}

	w.Reward = progression.Consumables[e.rng.Intn(len(progression.Consumables))]
	e.rec.Owned[w.Reward]++
	for _, u := range progression.PendingUnlocks(&e.rec, e.cfg.Progression) {
		w.emit(EventUnlock, u)
	}
	e.save()
	e.setMode(ModeIntermission)
}

// victory ends the run after the overmind's defeat.
func (e *Engine) victory() {
	w := e.w
	w.VictoryAt = 0
	e.setMode(ModeVictory)
	e.play(audio.Victory)
	e.finishRun(OutcomeVictory)
	w.clearEntities()
}
