package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/tui-galaxia/internal/audio"
	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/encounter"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

// trainingBands are the near, mid and far placement bands, as [min, max] y.
var trainingBands = [3][2]float64{
	{390, 460},
	{280, 430},
	{100, 250},
}

const (
	trainingAttempts = 50
	trainingSpacing  = 40
)

// setupTraining lays out the targets and enters the precision mini-game.
// The harder targets go in the nearest band.
func (e *Engine) setupTraining() {
	w := e.w
	tc := e.cfg.TrainingSim
	width := e.cfg.Arena.Width
	done := e.rec.TrainingCompletions

	count := tc.BaseTargets + done
	hits := make([]int, count)
	for i := range hits {
		hits[i] = core.IntRange(e.rng, tc.HitsMin, tc.HitsMax) + done/2
	}
	sort.Sort(sort.Reverse(sort.IntSlice(hits)))

	w.Targets.Reset()
	type placed struct {
		x, y float64
		hits int
	}
	var all []placed
	for i, need := range hits {
		band := trainingBands[min(2, i*3/count)]
		var x, y float64
		for range trainingAttempts {
			x = e.rng.Float64()*(width-2*trainingSpacing) + trainingSpacing
			y = e.rng.Float64()*(band[1]-band[0]) + band[0]
			ok := true
			for _, p := range all {
				if core.Dist(x, y, p.x, p.y) < 2*trainingSpacing {
					ok = false
					break
				}
				if p.hits != need && math.Abs(x-p.x) < trainingSpacing {
					ok = false
					break
				}
			}
			if ok {
				break
			}
		}
		all = append(all, placed{x, y, need})
		_, t := w.Targets.Acquire()
		*t = TrainingTarget{ID: w.nextID(), X: x, Y: y, Required: need, Remaining: need}
	}

	start := w.Now + tc.Countdown
	w.Training = &Training{StartAt: start, EndAt: start + tc.Duration}
	p := &w.Player
	p.Ammo = p.MaxAmmo
	p.ReloadAt = 0
	w.Projectiles.Reset()
	w.EnemyProjectiles.Reset()
	e.log.Debug("training", "targets", count, "completions", done)
	e.setMode(ModeTrainingSim)
}

// trainingTick is the mini-game pipeline: shots fly straight up and only
// the targets can be hit.
func (e *Engine) trainingTick(dt float64) {
	w := e.w
	tr := w.Training
	if tr == nil {
		e.setMode(ModeIntermission)
		return
	}
	tc := e.cfg.TrainingSim
	now := w.Now
	p := &w.Player
	if p.ReloadAt > 0 && now >= p.ReloadAt {
		p.Ammo = p.MaxAmmo
		p.ReloadAt = 0
	}

	e.updatePlayer(dt, now < tr.StartAt)
	speed := e.cfg.Weapon.ProjectileSpeed
	for _, pr := range w.Projectiles.All() {
		pr.Y -= speed * dt
	}

	if now >= tr.StartAt {
		for ph, pr := range w.Projectiles.All() {
			for _, t := range w.Targets.All() {
				if t.Failed || core.Dist(pr.X, pr.Y, t.X, t.Y) >= tc.TargetRadius || now <= t.LastHit+tc.HitCooldown {
					continue
				}
				t.Remaining--
				t.LastHit = now
				switch {
				case t.Remaining < 0:
					t.Failed = true
					t.Complete = false
					e.play(audio.EncounterBad)
				case t.Remaining == 0:
					t.Complete = true
					e.play(audio.PowerUp)
				default:
					e.play(audio.BossHit)
				}
				_ = w.Projectiles.Release(ph)
				break
			}
		}
	}
	e.cull()
	e.expireEffects()

	resolved := true
	for _, t := range w.Targets.All() {
		if !t.Resolved() {
			resolved = false
			break
		}
	}
	if now >= tr.EndAt || resolved {
		e.finishTraining()
	}
}

// finishTraining pays out the mini-game. A perfect run makes the next one
// harder.
func (e *Engine) finishTraining() {
	w := e.w
	tc := e.cfg.TrainingSim
	done := e.rec.TrainingCompletions

	success, total := 0, w.Targets.Len()
	for _, t := range w.Targets.All() {
		if t.Complete {
			success++
		}
	}
	perfect := total > 0 && success == total
	res := encounter.Result{
		Kind:     encounter.FightReward,
		Currency: int(math.Floor(float64(success*tc.RewardPerTarget) * (1 + float64(done)*0.5))),
	}
	if done >= 2 && success > 0 {
		res.Parts = 1 + done/2
	}
	if done >= 4 && perfect {
		res.Consumable = progression.FastReload
		res.Quantity = 1
	}
	switch {
	case success == 0:
		res.Title = "Simulation Failed"
		res.Text = "No target was calibrated. No tactical data was recovered."
	case perfect:
		res.Title = "Perfect Calibration!"
		res.Text = fmt.Sprintf("All %d targets calibrated. The simulation will be harder next time.", total)
	default:
		res.Title = "Calibration Complete"
		res.Text = fmt.Sprintf("%d of %d targets calibrated.", success, total)
	}
	res = encounter.Process(res, e.rec.BossesDefeated, e.rng)

	if perfect {
		e.rec.TrainingCompletions++
	}
	if res.Consumable != "" {
		e.rec.Owned[res.Consumable] += res.Quantity
	}
	e.save()
	w.Currency += res.Currency
	w.Parts += res.Parts

	w.Projectiles.Reset()
	w.Targets.Reset()
	w.Training = nil
	e.showOutcome(res, ModeIntermission)
}
