package sim

import (
	"math"

	"github.com/vovakirdan/tui-galaxia/internal/core"
)

// autopilotDeadzone is how close the ship gets before it stops steering.
const autopilotDeadzone = 12

// Autopilot picks the input for the next tick from the last snapshot. It
// tracks the lowest threat, reloads on an empty clip and accepts every
// prompt with its first option. Headless runs and tests drive the engine
// with it.
func Autopilot(s Snapshot) core.InputFrame {
	f := core.NewInputFrame()
	switch s.Mode {
	case ModeIntermission, ModeEncounterOutcome, ModePaused, ModeStory:
		f.Set(core.ActionConfirm)
		return f
	case ModeAwaitingEncounterChoice:
		f.Set(core.ActionChoice1)
		return f
	}
	if !s.Mode.Combat() && s.Mode != ModeTrainingSim {
		return f
	}

	p := s.Player
	if p.Ammo == 0 && !p.Reloading(s.Now) {
		f.Set(core.ActionReload)
	}
	x, ok := autopilotTarget(s)
	if !ok {
		return f
	}
	// Ease off early so the ship does not oscillate around the target.
	dx := x - p.X - p.VX*0.1
	switch {
	case dx > autopilotDeadzone:
		f.Set(core.ActionRight)
	case dx < -autopilotDeadzone:
		f.Set(core.ActionLeft)
	}
	return f
}

func autopilotTarget(s Snapshot) (float64, bool) {
	if b := s.Boss; b != nil {
		return b.X, true
	}
	if s.Mode == ModeTrainingSim {
		for _, t := range s.Targets {
			if !t.Resolved() {
				return t.X, true
			}
		}
		return 0, false
	}
	best, found := math.Inf(-1), false
	var x float64
	for _, en := range s.Enemies {
		if en.Y > best {
			best, x, found = en.Y, en.X, true
		}
	}
	if found {
		return x, true
	}
	for _, a := range s.Asteroids {
		if !a.Montezuma {
			return a.X, true
		}
	}
	return 0, false
}
