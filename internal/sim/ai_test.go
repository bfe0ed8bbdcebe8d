package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/pool"
)

func TestEvasiveDodgesIncomingShot(t *testing.T) {
	e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	w := e.World()
	h := e.spawnEnemy(Enemy{Archetype: Evasive, X: 250, BaseX: 250, Y: 300})
	e.addShot(250, 400, 0, false)

	e.enemyAI()
	en, _ := w.Enemies.Get(h)
	if !en.Dodging {
		t.Fatal("evasive enemy did not dodge")
	}
	// DodgeMin + 0.5*DodgeJitter, away from a shot dead ahead.
	if en.DodgeTargetX != 350 {
		t.Errorf("DodgeTargetX = %v, expected 350", en.DodgeTargetX)
	}

	e.moveEntities(1)
	if en.Dodging || en.X != 350 || en.BaseX != 350 {
		t.Errorf("after dodge X = %v BaseX = %v Dodging = %v", en.X, en.BaseX, en.Dodging)
	}
	if en.DodgeCooldown <= w.Now {
		t.Errorf("DodgeCooldown = %v, expected a cooldown", en.DodgeCooldown)
	}
}

func TestEvasiveIgnoresDistantShot(t *testing.T) {
	e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	h := e.spawnEnemy(Enemy{Archetype: Evasive, X: 250, Y: 100})
	e.addShot(250, 700, 0, false)
	e.addShot(400, 200, 0, false)

	e.enemyAI()
	if en, _ := e.w.Enemies.Get(h); en.Dodging {
		t.Error("dodged a shot beyond the threat horizon or radius")
	}
}

func TestStandardFires(t *testing.T) {
	e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	w := e.World()
	h := e.spawnEnemy(Enemy{Archetype: Standard, X: 250, Y: 100, NextShot: -1})

	e.enemyAI()
	if w.EnemyProjectiles.Len() != 1 {
		t.Fatalf("EnemyProjectiles = %d, expected 1", w.EnemyProjectiles.Len())
	}
	en, _ := w.Enemies.Get(h)
	if want := w.Now + e.cfg.Enemies.ShootInterval; en.NextShot != want {
		t.Errorf("NextShot = %v, expected %v", en.NextShot, want)
	}

	en.Buffed = true
	en.NextShot = -1
	e.enemyAI()
	if w.EnemyProjectiles.Len() != 4 {
		t.Errorf("EnemyProjectiles = %d, expected a buffed triple spread", w.EnemyProjectiles.Len())
	}
}

func TestEliteAimsAtShip(t *testing.T) {
	e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	w := e.World()
	el := e.cfg.Enemies.Elite
	e.spawnEnemy(Enemy{Archetype: Elite, X: w.Player.X, Y: 150, NextShot: -1})

	e.enemyAI()
	if w.EnemyProjectiles.Len() != el.BurstSize {
		t.Fatalf("EnemyProjectiles = %d, expected %d", w.EnemyProjectiles.Len(), el.BurstSize)
	}
	var vx []float64
	for _, p := range w.EnemyProjectiles.All() {
		vx = append(vx, p.VX)
		if p.VY <= 0 {
			t.Errorf("VY = %v, expected the burst to head down", p.VY)
		}
	}
	if math.Abs(vx[1]) > 1e-9 || vx[0] >= 0 || vx[2] <= 0 {
		t.Errorf("VX = %v, expected a fan centred on the ship", vx)
	}
}

func TestDiverPausesAndFiresBeams(t *testing.T) {
	e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	w := e.World()
	dc := e.cfg.Enemies.Diver
	h := e.spawnEnemy(Enemy{Archetype: Diver, X: 250, Y: 300, DiveTargetY: 300, LastBeam: -dc.BeamInterval - 1})
	en, _ := w.Enemies.Get(h)

	e.enemyAI()
	if !en.Pausing || en.PauseUntil != w.Now+dc.Pause {
		t.Fatalf("Pausing = %v PauseUntil = %v, expected a pause", en.Pausing, en.PauseUntil)
	}
	if e.enemySpeed(en) != 0 {
		t.Errorf("enemySpeed() = %v while pausing, expected 0", e.enemySpeed(en))
	}

	e.enemyAI()
	if w.Beams.Len() != 1 {
		t.Fatalf("Beams = %d, expected 1", w.Beams.Len())
	}
	e.enemyAI()
	if w.Beams.Len() != 1 {
		t.Errorf("Beams = %d, expected the beam interval respected", w.Beams.Len())
	}

	w.Now = en.PauseUntil
	e.enemyAI()
	if en.Pausing || !en.Dived {
		t.Errorf("Pausing = %v Dived = %v, expected the dive resumed", en.Pausing, en.Dived)
	}
}

func TestDiverBeamHitsShipRow(t *testing.T) {
	e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	_, b := e.w.Beams.Acquire()
	*b = DiverBeam{Y: e.centerY(), Created: e.w.Now}
	if res := e.resolveCollisions(); !res.PlayerDied {
		t.Error("beam across the ship row was not lethal")
	}
}

func TestSupportLinksNearestEnemy(t *testing.T) {
	e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	w := e.World()
	support := e.spawnEnemy(Enemy{Archetype: SupportBuffer, X: 250, Y: 100})
	near := e.spawnEnemy(Enemy{Archetype: Standard, X: 260, Y: 150})
	far := e.spawnEnemy(Enemy{Archetype: Standard, X: 450, Y: 400})

	e.enemyAI()
	s, _ := w.Enemies.Get(support)
	if s.Link != (Ref{Kind: RefEnemy, Handle: near}) {
		t.Fatalf("Link = %+v, expected the nearest enemy", s.Link)
	}
	n, _ := w.Enemies.Get(near)
	if !n.Buffed || n.Shield != 1 {
		t.Errorf("Buffed = %v Shield = %d, expected a shielded link", n.Buffed, n.Shield)
	}
	if f, _ := w.Enemies.Get(far); f.Buffed {
		t.Error("far enemy buffed")
	}

	res := Resolution{Enemies: []pool.Handle{support}}
	e.applyResolution(&res)
	if n.Buffed || n.Shield != 0 {
		t.Errorf("Buffed = %v Shield = %d after the support died", n.Buffed, n.Shield)
	}
}

func TestSupportRelinksWhenTargetDies(t *testing.T) {
	e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	w := e.World()
	support := e.spawnEnemy(Enemy{Archetype: SupportBuffer, X: 250, Y: 100})
	near := e.spawnEnemy(Enemy{Archetype: Standard, X: 260, Y: 150})
	other := e.spawnEnemy(Enemy{Archetype: Standard, X: 450, Y: 400})

	e.enemyAI()
	if err := w.Enemies.Release(near); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	e.enemyAI()
	s, _ := w.Enemies.Get(support)
	if s.Link.Handle != other {
		t.Errorf("Link = %+v, expected the remaining enemy", s.Link)
	}
}

func TestSupportRepairsAsteroid(t *testing.T) {
	e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	w := e.World()
	e.spawnEnemy(Enemy{Archetype: SupportBuffer, X: 250, Y: 100})
	e.addAsteroid(Asteroid{X: 250, Y: 200, Tier: 1})
	_, a := first(w.Asteroids)
	a.Health = 100

	e.enemyAI()
	if !a.Buffed {
		t.Fatal("asteroid not linked")
	}
	e.moveEntities(0.1)
	if want := 100 + e.cfg.Enemies.Support.AsteroidRepair*0.1; math.Abs(a.Health-want) > 1e-9 {
		t.Errorf("Health = %v, expected %v", a.Health, want)
	}
}

func TestEnemyResetsDropSupportLinks(t *testing.T) {
	tests := []struct {
		name  string
		clear func(e *Engine)
	}{
		{"boss battle", func(e *Engine) {
			e.World().Level = 10
			e.startBossBattle()
		}},
		{"revive", func(e *Engine) { e.World().clearHazards() }},
		{"montezuma", func(e *Engine) { e.spawnMontezuma() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
			w := e.World()
			e.spawnEnemy(Enemy{Archetype: SupportBuffer, X: 250, Y: 100})
			e.addAsteroid(Asteroid{X: 250, Y: 120, Tier: 1})
			_, a := first(w.Asteroids)
			a.Health = 100
			e.enemyAI()
			if !a.Buffed {
				t.Fatal("asteroid not linked")
			}

			tt.clear(e)
			if w.Enemies.Len() != 0 {
				t.Fatalf("Enemies = %d, expected none", w.Enemies.Len())
			}
			for _, a := range w.Asteroids.All() {
				if a.Buffed {
					t.Errorf("asteroid %d still buffed with no support buffer alive", a.ID)
				}
			}
		})
	}
}

func TestShieldRegenerates(t *testing.T) {
	e, _, _ := newTestEngine(t, quietConfig(), core.NewScriptRNG(0.5))
	w := e.World()
	h := e.spawnEnemy(Enemy{Archetype: Standard, X: 250, Y: 100, Buffed: true, ShieldRegenAt: 1000})
	e.regenShields()
	en, _ := w.Enemies.Get(h)
	if en.Shield != 0 {
		t.Errorf("Shield = %d before the regen time", en.Shield)
	}
	w.Now = 1001
	e.regenShields()
	if en.Shield != 1 {
		t.Errorf("Shield = %d, expected 1", en.Shield)
	}
}
