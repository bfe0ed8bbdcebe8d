package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-galaxia/internal/audio"
	"github.com/vovakirdan/tui-galaxia/internal/encounter"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

// presentEncounter offers the queued encounter once the field is clear.
func (e *Engine) presentEncounter() {
	w := e.w
	enc := w.Pending
	w.Pending = nil
	w.Encounter = enc
	w.Choices = enc.Options(e.encounterState())
	e.log.Debug("encounter", "id", enc.ID, "choices", len(w.Choices))
	e.setMode(ModeAwaitingEncounterChoice)
}

// ChooseEncounterOption resolves choice i of the presented encounter.
func (e *Engine) ChooseEncounterOption(i int) error {
	w := e.w
	if w.Mode != ModeAwaitingEncounterChoice {
		return fmt.Errorf("%w: choose in %s", ErrWrongMode, w.Mode)
	}
	if i < 0 || i >= len(w.Choices) {
		return fmt.Errorf("%w: %d of %d", ErrBadChoice, i+1, len(w.Choices))
	}
	choice := w.Choices[i]
	w.Encounter = nil
	w.Choices = nil

	raw, ok := encounter.Roll(choice.Outcomes, e.rng)
	if !ok {
		e.setMode(ModeIntermission)
		return nil
	}
	res := encounter.Process(raw, e.rec.BossesDefeated, e.rng)
	if !e.pay(res) {
		e.log.Debug("encounter unaffordable", "cost", res.Cost, "consumable", res.CostConsumable)
		e.setMode(ModeIntermission)
		return nil
	}
	res.Currency = e.applyRewards(res)
	e.save()

	switch {
	case res.IsFight():
		w.Fight = &res
		w.FightAt = w.Now + e.cfg.Encounters.FightPrepare
		w.Player.X = e.cfg.Arena.Width / 2
		w.Player.VX = 0
		e.setMode(ModePlaying)
	case res.Kind == encounter.SpecialEvent:
		e.startEvent(res)
	default:
		w.Level = max(1, w.Level+res.Levels)
		post := ModeIntermission
		if res.Kind == encounter.LevelSkip && res.Levels < 0 {
			post = ModePlaying
		}
		w.Outcome = &res
		w.PostMode = post
		w.RevealAt = w.Now + e.cfg.Encounters.ProcessDelay
		e.setMode(ModeEncounterProcessing)
		e.playOutcome(res)
	}
	return nil
}

// pay checks and takes the cost of a result, the run wallet first.
func (e *Engine) pay(res encounter.Result) bool {
	w := e.w
	qty := max(res.CostQuantity, 1)
	if res.CostConsumable != "" && e.rec.Owned[res.CostConsumable] < qty {
		return false
	}
	if res.Cost > 0 && !progression.Spend(&e.rec, &w.Currency, res.Cost) {
		return false
	}
	if res.CostConsumable != "" {
		e.rec.Owned[res.CostConsumable] -= qty
	}
	return true
}

// applyRewards banks the gains of a result and takes its losses. Losses
// are capped at what the player holds and drain the run wallet first. It
// returns the currency change actually applied.
func (e *Engine) applyRewards(res encounter.Result) int {
	w := e.w
	delta := res.Currency
	switch {
	case delta > 0:
		e.rec.TotalCurrency += delta
	case delta < 0:
		loss := min(-delta, w.Currency+e.rec.TotalCurrency)
		fromRun := min(loss, w.Currency)
		w.Currency -= fromRun
		e.rec.TotalCurrency -= loss - fromRun
		delta = -loss
	}
	e.rec.UpgradeParts += res.Parts
	if res.Consumable != "" && res.Quantity > 0 {
		e.rec.Owned[res.Consumable] += res.Quantity
	}
	if res.Kind == encounter.LoseAllItems {
		for _, c := range progression.Consumables {
			e.rec.Owned[c] = 0
		}
	}
	return delta
}

// startEvent launches a special-event mode.
func (e *Engine) startEvent(res encounter.Result) {
	w := e.w
	switch res.Event {
	case encounter.MontezumaEncounter:
		if e.rec.MontezumaDefeated {
			empty := encounter.Result{
				Kind:  encounter.Nothing,
				Title: "Empty Space",
				Text:  "You arrive at the coordinates, but find nothing but empty space. The behemoth is long gone.",
			}
			w.Outcome = &empty
			w.PostMode = ModeIntermission
			w.RevealAt = w.Now + e.cfg.Encounters.ProcessDelay
			e.setMode(ModeEncounterProcessing)
			return
		}
		e.spawnMontezuma()
		e.setMode(ModePlaying)
	case encounter.AsteroidFieldSurvival:
		w.FieldEndsAt = w.Now + e.cfg.AsteroidField.Duration
		w.LastSpawn = w.Now
		e.setMode(ModeAsteroidField)
	case encounter.TrainingSimChallenge:
		e.setupTraining()
	default:
		e.log.Warn("unknown special event", "event", res.Event)
		e.setMode(ModeIntermission)
	}
}

// spawnMontezuma brings in the giant with the damage of earlier
// encounters still on it.
func (e *Engine) spawnMontezuma() {
	w := e.w
	mc := e.cfg.Montezuma
	w.resetEnemies()
	radius := e.cfg.Arena.Width * mc.SizeFactor
	health := float64(max(mc.Health-e.rec.MontezumaDamage, 1))
	h, a := w.Asteroids.Acquire()
	*a = Asteroid{
		ID:        w.nextID(),
		X:         e.cfg.Arena.Width / 2,
		Y:         -radius,
		VY:        mc.SpeedY,
		Radius:    radius,
		Health:    health,
		MaxHealth: float64(mc.Health),
		Montezuma: true,
	}
	w.Montezuma = h
	w.MontezumaActive = true
	e.sight("montezuma")
}

// DismissOutcome closes the outcome screen.
func (e *Engine) DismissOutcome() error {
	w := e.w
	if w.Mode != ModeEncounterOutcome {
		return fmt.Errorf("%w: dismiss in %s", ErrWrongMode, w.Mode)
	}
	if o := w.Outcome; o != nil && o.HereticalInsight && !w.Insight {
		w.Insight = true
		w.emit(EventInsight, o.Title)
	}
	w.Outcome = nil
	e.setMode(w.PostMode)
	return nil
}

// settleFight resolves a finished encounter fight through its followups.
func (e *Engine) settleFight() {
	w := e.w
	w.SettleAt = 0
	fight := w.Fight
	w.Fight = nil
	if fight == nil {
		return
	}
	raw, ok := encounter.Roll(fight.Followups, e.rng)
	if !ok {
		res := *fight
		res.Currency = e.applyRewards(res)
		e.save()
		e.showOutcome(res, ModeIntermission)
		return
	}
	chosen := encounter.Process(raw, e.rec.BossesDefeated, e.rng)
	if chosen.IsFight() && chosen.FightCount > 0 {
		w.Fight = &chosen
		e.spawnFight(chosen)
		e.showOutcome(chosen, ModePlaying)
		return
	}
	chosen.Currency = e.applyRewards(chosen)
	e.save()
	e.showOutcome(chosen, ModeIntermission)
}

// spawnFight lays out the enemies of an encounter fight.
func (e *Engine) spawnFight(res encounter.Result) {
	w := e.w
	ec := e.cfg.Enemies
	width := e.cfg.Arena.Width
	now := w.Now

	switch res.FightPreset {
	case encounter.HereticAntibodies:
		for _, fx := range []float64{0.25, 0.75} {
			e.spawnEnemy(Enemy{
				Archetype:   Diver,
				X:           width * fx,
				BaseX:       width * fx,
				Y:           -ec.Height,
				DiveTargetY: e.rng.Float64()*(e.cfg.Player.Y-ec.Diver.DepthMargin) + ec.Diver.DepthMin,
				LastBeam:    now,
				Encounter:   true,
			})
		}
		for _, fx := range []float64{0.3, 0.7} {
			e.spawnEnemy(Enemy{
				Archetype: SupportBuffer,
				X:         width * fx,
				BaseX:     width * fx,
				Y:         -ec.Height,
				OscFreq:   ec.Support.OscillationFreq,
				OscAmp:    width / 4,
				OscPhase:  e.rng.Float64() * 2 * math.Pi,
				Encounter: true,
			})
		}
	case encounter.HereticShip:
		e.spawnEnemy(Enemy{
			Archetype: Elite,
			X:         width / 2,
			BaseX:     width / 2,
			Y:         150,
			OscFreq:   0.2,
			OscAmp:    20,
			NextShot:  now + ec.Elite.BurstInterval,
			Encounter: true,
		})
	default:
		kind, ok := ParseArchetype(res.FightArchetype)
		if !ok {
			e.log.Warn("unknown fight archetype", "archetype", res.FightArchetype)
		}
		count := max(res.FightCount, 1)
		step := width / float64(count+1)
		for i := range count {
			x := step * float64(i+1)
			e.spawnEnemy(Enemy{
				Archetype: kind,
				X:         x,
				BaseX:     x,
				Y:         -ec.Height * (e.rng.Float64()*0.5 + 1),
				OscFreq:   e.cfg.Encounters.FightOscFreq,
				OscAmp:    e.cfg.Encounters.FightOscAmp,
				OscPhase:  e.rng.Float64() * 2 * math.Pi,
				NextShot:  now + e.rng.Float64()*500,
				Encounter: true,
			})
		}
	}
	e.play(audio.EncounterBad)
}

// showOutcome opens the outcome screen; post is the mode it closes into.
func (e *Engine) showOutcome(res encounter.Result, post Mode) {
	w := e.w
	w.Outcome = &res
	w.PostMode = post
	e.setMode(ModeEncounterOutcome)
	e.playOutcome(res)
}

func (e *Engine) playOutcome(res encounter.Result) {
	switch res.Kind {
	case encounter.LoseAllItems, encounter.DamageShip, encounter.Fight:
		e.play(audio.EncounterBad)
	case encounter.Nothing:
	default:
		e.play(audio.EncounterGood)
	}
}
