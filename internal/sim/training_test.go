package sim

import (
	"testing"

	"github.com/vovakirdan/tui-galaxia/internal/audio"
	"github.com/vovakirdan/tui-galaxia/internal/core"
)

// newTraining enters the mini-game with the targets spread along one row
// and the countdown already over.
func newTraining(t *testing.T) (*Engine, []*TrainingTarget) {
	t.Helper()
	e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	e.setupTraining()
	w := e.World()
	var targets []*TrainingTarget
	i := 0
	for _, tg := range w.Targets.All() {
		tg.X = 50 + float64(i)*100
		tg.Y = 200
		targets = append(targets, tg)
		i++
	}
	w.Now = w.Training.StartAt
	w.Player.LastShot = w.Now
	return e, targets
}

func TestSetupTraining(t *testing.T) {
	e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	w := e.World()
	tc := e.cfg.TrainingSim
	w.Player.Ammo = 0
	e.setupTraining()

	if e.Mode() != ModeTrainingSim {
		t.Fatalf("Mode() = %s, expected training_sim", e.Mode())
	}
	if w.Targets.Len() != tc.BaseTargets {
		t.Errorf("Targets = %d, expected %d", w.Targets.Len(), tc.BaseTargets)
	}
	for _, tg := range w.Targets.All() {
		if tg.Required < tc.HitsMin || tg.Required > tc.HitsMax || tg.Remaining != tg.Required {
			t.Errorf("Required = %d Remaining = %d, expected [%d, %d]", tg.Required, tg.Remaining, tc.HitsMin, tc.HitsMax)
		}
		if tg.Y < 100 || tg.Y > 460 {
			t.Errorf("target y = %v outside the placement bands", tg.Y)
		}
	}
	if w.Training.StartAt != w.Now+tc.Countdown || w.Training.EndAt != w.Training.StartAt+tc.Duration {
		t.Errorf("Training = %+v", *w.Training)
	}
	if w.Player.Ammo != w.Player.MaxAmmo {
		t.Errorf("Ammo = %d, expected a full clip", w.Player.Ammo)
	}
}

func TestTrainingGrowsWithCompletions(t *testing.T) {
	e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	e.rec.TrainingCompletions = 2
	e.setupTraining()
	tc := e.cfg.TrainingSim
	if got := e.w.Targets.Len(); got != tc.BaseTargets+2 {
		t.Errorf("Targets = %d, expected %d", got, tc.BaseTargets+2)
	}
	for _, tg := range e.w.Targets.All() {
		if tg.Required < tc.HitsMin+1 {
			t.Errorf("Required = %d, expected at least %d", tg.Required, tc.HitsMin+1)
		}
	}
}

func TestTrainingIgnoresShotsDuringCountdown(t *testing.T) {
	e, targets := newTraining(t)
	w := e.World()
	w.Now = w.Training.StartAt - 1
	w.Player.LastShot = w.Now
	e.addShot(targets[0].X, targets[0].Y, 0, false)
	e.trainingTick(0)
	if targets[0].Remaining != targets[0].Required {
		t.Errorf("Remaining = %d, expected no hit before the countdown ends", targets[0].Remaining)
	}
}

func TestTrainingHitCooldown(t *testing.T) {
	e, targets := newTraining(t)
	w := e.World()
	tc := e.cfg.TrainingSim
	tg := targets[0]
	need := tg.Required

	e.addShot(tg.X, tg.Y, 0, false)
	e.addShot(tg.X, tg.Y, 0, false)
	e.trainingTick(0)
	if tg.Remaining != need-1 {
		t.Fatalf("Remaining = %d, expected %d", tg.Remaining, need-1)
	}
	if w.Projectiles.Len() != 1 {
		t.Fatalf("Projectiles = %d, expected the second shot held by the cooldown", w.Projectiles.Len())
	}

	w.Now += tc.HitCooldown + 1
	w.Player.LastShot = w.Now
	e.trainingTick(0)
	if tg.Remaining != need-2 {
		t.Errorf("Remaining = %d, expected %d", tg.Remaining, need-2)
	}
}

func TestTrainingOvershootFails(t *testing.T) {
	e, targets := newTraining(t)
	w := e.World()
	sink := e.sink.(*audio.Recorder)
	tg := targets[0]
	tg.Remaining = 1

	e.addShot(tg.X, tg.Y, 0, false)
	e.trainingTick(0)
	if !tg.Complete {
		t.Fatal("target not complete")
	}
	w.Now += e.cfg.TrainingSim.HitCooldown + 1
	w.Player.LastShot = w.Now
	e.addShot(tg.X, tg.Y, 0, false)
	e.trainingTick(0)
	if !tg.Failed || tg.Complete {
		t.Errorf("Failed = %v Complete = %v, expected an overshot target", tg.Failed, tg.Complete)
	}
	if sink.Count(audio.EncounterBad) == 0 {
		t.Error("no failure cue")
	}
	if e.Mode() != ModeTrainingSim {
		t.Errorf("Mode() = %s, expected the mini-game to go on", e.Mode())
	}
}

func TestTrainingPerfectFinish(t *testing.T) {
	e, targets := newTraining(t)
	w := e.World()
	tc := e.cfg.TrainingSim
	for _, tg := range targets {
		tg.Remaining = 1
		e.addShot(tg.X, tg.Y, 0, false)
	}
	e.trainingTick(0)

	if e.Mode() != ModeEncounterOutcome {
		t.Fatalf("Mode() = %s, expected encounter_outcome", e.Mode())
	}
	if w.Outcome.Title != "Perfect Calibration!" {
		t.Errorf("Title = %q", w.Outcome.Title)
	}
	if want := len(targets) * tc.RewardPerTarget; w.Currency != want {
		t.Errorf("Currency = %d, expected %d", w.Currency, want)
	}
	if e.Record().TrainingCompletions != 1 {
		t.Errorf("TrainingCompletions = %d, expected 1", e.Record().TrainingCompletions)
	}
	if w.Targets.Len() != 0 || w.Training != nil {
		t.Error("training state not cleared")
	}
	if err := e.DismissOutcome(); err != nil {
		t.Fatalf("DismissOutcome() error = %v", err)
	}
	if e.Mode() != ModeIntermission {
		t.Errorf("Mode() = %s, expected intermission", e.Mode())
	}
}

func TestTrainingTimesOut(t *testing.T) {
	e, targets := newTraining(t)
	w := e.World()
	targets[0].Remaining = 1
	e.addShot(targets[0].X, targets[0].Y, 0, false)
	e.trainingTick(0)

	w.Now = w.Training.EndAt
	w.Player.LastShot = w.Now
	e.trainingTick(0)
	if e.Mode() != ModeEncounterOutcome || w.Outcome.Title != "Calibration Complete" {
		t.Fatalf("Mode() = %s Outcome = %+v, expected a partial result", e.Mode(), w.Outcome)
	}
	if w.Currency != e.cfg.TrainingSim.RewardPerTarget {
		t.Errorf("Currency = %d, expected one target paid", w.Currency)
	}
	if e.Record().TrainingCompletions != 0 {
		t.Error("partial run counted as a completion")
	}
}
