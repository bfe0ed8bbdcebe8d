package sim

import (
	"testing"

	"github.com/vovakirdan/tui-galaxia/internal/core"
)

func TestAutopilot(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want []core.Action
	}{
		{"continues intermission", Snapshot{Mode: ModeIntermission}, []core.Action{core.ActionConfirm}},
		{"dismisses briefing", Snapshot{Mode: ModeStory}, []core.Action{core.ActionConfirm}},
		{"takes first choice", Snapshot{Mode: ModeAwaitingEncounterChoice}, []core.Action{core.ActionChoice1}},
		{"idle on game over", Snapshot{Mode: ModeGameOver}, []core.Action{}},
		{
			"steers to lowest enemy",
			Snapshot{
				Mode:    ModePlaying,
				Player:  Player{X: 250, Ammo: 5},
				Enemies: []Enemy{{X: 100, Y: 50}, {X: 400, Y: 300}},
			},
			[]core.Action{core.ActionRight},
		},
		{
			"reloads and tracks boss",
			Snapshot{
				Mode:   ModeBossBattle,
				Player: Player{X: 250},
				Boss:   &Boss{X: 100},
			},
			[]core.Action{core.ActionLeft, core.ActionReload},
		},
		{
			"holds inside the deadzone",
			Snapshot{
				Mode:    ModePlaying,
				Player:  Player{X: 250, Ammo: 5},
				Enemies: []Enemy{{X: 255, Y: 300}},
			},
			[]core.Action{},
		},
		{
			"aims at open training target",
			Snapshot{
				Mode:    ModeTrainingSim,
				Player:  Player{X: 250, Ammo: 5},
				Targets: []TrainingTarget{{X: 50, Complete: true}, {X: 450}},
			},
			[]core.Action{core.ActionRight},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Autopilot(tt.snap).List()
			if len(got) != len(tt.want) {
				t.Fatalf("Autopilot() = %v, expected %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Autopilot()[%d] = %v, expected %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAutopilotSurvivesARun(t *testing.T) {
	e, d, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	s := e.Snapshot()
	for range 600 {
		d.wall += 16
		s = e.Tick(core.TickInput{Now: d.wall, Frame: Autopilot(s)})
	}
	if s.Mode == ModeIdle {
		t.Errorf("Mode = %s, expected the run still going", s.Mode)
	}
}
