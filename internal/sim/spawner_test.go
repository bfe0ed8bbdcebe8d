package sim

import (
	"testing"

	"github.com/vovakirdan/tui-galaxia/internal/audio"
	"github.com/vovakirdan/tui-galaxia/internal/config"
	"github.com/vovakirdan/tui-galaxia/internal/core"
)

func TestSpawnStandardOnCadence(t *testing.T) {
	e, _, sink := newTestEngine(t, config.DefaultShooterConfig(), core.NewScriptRNG(0.5))
	w := e.World()
	w.Now = 2000

	e.spawn()
	if w.Enemies.Len() != 1 {
		t.Fatalf("Enemies = %d, expected 1", w.Enemies.Len())
	}
	_, en := first(w.Enemies)
	if en.Archetype != Standard {
		t.Errorf("Archetype = %s, expected standard", en.Archetype)
	}
	if en.X != 250 || en.Y != -e.cfg.Enemies.Height {
		t.Errorf("spawn at (%v, %v), expected (250, %v)", en.X, en.Y, -e.cfg.Enemies.Height)
	}
	if w.LastSpawn != 2000 {
		t.Errorf("LastSpawn = %v, expected 2000", w.LastSpawn)
	}
	if sink.Count(audio.FirstSighting) != 1 || len(w.Events) != 1 || w.Events[0].Kind != EventFirstSighting {
		t.Errorf("events = %+v, expected one first sighting", w.Events)
	}

	e.spawn()
	if w.Enemies.Len() != 1 {
		t.Errorf("Enemies = %d, expected the interval respected", w.Enemies.Len())
	}
	w.Now = 4000
	e.spawn()
	if w.Enemies.Len() != 2 {
		t.Errorf("Enemies = %d, expected a second spawn", w.Enemies.Len())
	}
	if sink.Count(audio.FirstSighting) != 1 {
		t.Errorf("FirstSighting cues = %d, expected 1", sink.Count(audio.FirstSighting))
	}
}

func TestSpawnArchetypeGates(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		bosses   int
		punisher int
		roll     float64
		want     Archetype
		asteroid bool
	}{
		{"early levels only standard", 5, 0, 0, 0.01, Standard, false},
		{"diver unlocked", 31, 0, 0, 0.01, Diver, false},
		{"asteroid after first boss", 11, 1, 0, 0.01, Standard, true},
		{"evasive needs punisher", 25, 0, 0, 0.01, Standard, false},
		{"evasive after punisher", 25, 0, 1, 0.01, Evasive, false},
		{"no roll succeeds", 31, 1, 1, 0.99, Standard, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newTestEngine(t, config.DefaultShooterConfig(), core.NewScriptRNG(tt.roll))
			w := e.World()
			w.Level = tt.level
			e.rec.BossesDefeated = tt.bosses
			e.rec.BossDefeatCount[Punisher.String()] = tt.punisher
			w.Now = 2000

			e.spawn()
			if tt.asteroid {
				if w.Asteroids.Len() != 1 || w.Enemies.Len() != 0 {
					t.Errorf("asteroids = %d enemies = %d, expected one asteroid", w.Asteroids.Len(), w.Enemies.Len())
				}
				return
			}
			if w.Enemies.Len() != 1 {
				t.Fatalf("Enemies = %d, expected 1", w.Enemies.Len())
			}
			if _, en := first(w.Enemies); en.Archetype != tt.want {
				t.Errorf("Archetype = %s, expected %s", en.Archetype, tt.want)
			}
		})
	}
}

func TestZeroChanceConsumesNoRandomness(t *testing.T) {
	rng := core.NewScriptRNG(0.3, 0.9)
	e, _, _ := newTestEngine(t, quietConfig(), rng)
	if e.roll(0) {
		t.Error("roll(0) succeeded")
	}
	if got := rng.Float64(); got != 0.3 {
		t.Errorf("next draw = %v, expected 0.3", got)
	}
}

func TestNoSpawnDuringMontezuma(t *testing.T) {
	e, _, _ := newTestEngine(t, config.DefaultShooterConfig(), core.NewScriptRNG(0.5))
	e.w.MontezumaActive = true
	e.w.Now = 5000
	e.spawn()
	if e.w.Enemies.Len() != 0 {
		t.Errorf("Enemies = %d, expected none while montezuma is active", e.w.Enemies.Len())
	}
}

func TestFieldSpawnsAsteroids(t *testing.T) {
	e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	w := e.World()
	w.FieldEndsAt = 10000
	e.setMode(ModeAsteroidField)
	w.Now = 1000

	e.spawn()
	if w.Asteroids.Len() != 1 || w.Enemies.Len() != 0 {
		t.Fatalf("asteroids = %d enemies = %d, expected one field rock", w.Asteroids.Len(), w.Enemies.Len())
	}
	_, a := first(w.Asteroids)
	if !a.Field {
		t.Error("field rock not marked")
	}
	e.spawn()
	if w.Asteroids.Len() != 1 {
		t.Errorf("Asteroids = %d, expected the field interval respected", w.Asteroids.Len())
	}
}

func TestRollTierPrefersLargestFirst(t *testing.T) {
	tests := []struct {
		roll float64
		want int
	}{
		{0.05, 2},
		{0.2, 1},
		{0.5, 0},
		{0.99, 0},
	}
	for _, tt := range tests {
		e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(tt.roll))
		if got := e.rollTier(); got != tt.want {
			t.Errorf("rollTier() at %v = %d, expected %d", tt.roll, got, tt.want)
		}
	}
}
