package sim

import (
	"github.com/vovakirdan/tui-galaxia/internal/config"
	"github.com/vovakirdan/tui-galaxia/internal/encounter"
	"github.com/vovakirdan/tui-galaxia/internal/pool"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

// Player holds the ship's kinematics, weapon and defensive state.
type Player struct {
	X, VX float64

	Ammo, MaxAmmo   int
	ReloadAt        float64 // completion time; 0 when not reloading
	LastShot        float64
	LastTrident     float64
	EmptyClipPlayed bool
	ReloadBoosts    int

	HasRevive         bool
	InvulnerableUntil float64

	Shield              int
	ShieldBreakingUntil float64
	LastEmp             float64

	// Permanent for the run, granted by consumables.
	RapidFire  bool
	SpeedBoost bool
}

// Reloading reports whether a reload is in progress at now.
func (p Player) Reloading(now float64) bool {
	return p.ReloadAt > now
}

// HasShield reports whether a shield is up or still shattering.
func (p Player) HasShield() bool {
	return p.Shield > 0 || p.ShieldBreakingUntil > 0
}

// Training is the state of a precision mini-game run.
type Training struct {
	StartAt float64 // countdown end
	EndAt   float64
}

// World is the complete mutable state of a run. The engine owns it and
// mutates it in place; hosts read it through Snapshot.
type World struct {
	Mode     Mode
	Resume   Mode // mode restored when unpausing
	Hero     progression.Hero
	HardMode bool

	Now      float64
	LastTick float64
	GameTime float64

	Level     int
	Streak    int
	Kills     int
	LevelUpAt float64
	Score     int
	Currency  int
	Parts     int

	Player Player
	// Buffs holds the expiry time of each timed power-up.
	Buffs [powerUpKinds]float64

	Enemies          *pool.Pool[Enemy]
	Projectiles      *pool.Pool[Projectile]
	EnemyProjectiles *pool.Pool[EnemyProjectile]
	Asteroids        *pool.Pool[Asteroid]
	PowerUps         *pool.Pool[PowerUp]
	Lasers           *pool.Pool[BossLaser]
	Beams            *pool.Pool[DiverBeam]
	Effects          *pool.Pool[Effect]
	Targets          *pool.Pool[TrainingTarget]
	Boss             *Boss

	LastSpawn       float64
	FieldEndsAt     float64
	MontezumaActive bool
	Montezuma       pool.Handle
	Training        *Training
	Insight         bool

	DeathAt         float64
	DeathX, DeathY  float64
	DeathExplosions int
	VictoryAt       float64

	// Reward is the armory item granted by the last boss.
	Reward progression.Consumable

	// Story is the briefing on screen in ModeStory.
	Story *config.StoryMilestone

	// Encounter flow.
	Pending   *encounter.Encounter
	Encounter *encounter.Encounter
	Choices   []encounter.Choice
	Outcome   *encounter.Result
	PostMode  Mode
	Fight     *encounter.Result
	FightAt   float64 // scripted fight spawn time
	SettleAt  float64 // end of the post-fight soft pause
	RevealAt  float64 // end of encounter processing

	Events []Event

	lastID uint64
}

const (
	enemyCap      = 64
	projectileCap = 128
	effectCap     = 128
)

func newWorld() *World {
	return &World{
		Mode:             ModeIdle,
		Level:            1,
		Enemies:          pool.New[Enemy](enemyCap),
		Projectiles:      pool.New[Projectile](projectileCap),
		EnemyProjectiles: pool.New[EnemyProjectile](projectileCap),
		Asteroids:        pool.New[Asteroid](16),
		PowerUps:         pool.New[PowerUp](16),
		Lasers:           pool.New[BossLaser](8),
		Beams:            pool.New[DiverBeam](8),
		Effects:          pool.New[Effect](effectCap),
		Targets:          pool.New[TrainingTarget](16),
	}
}

// nextID returns a fresh entity id. Ids survive run resets so they stay
// unique for the life of the engine.
func (w *World) nextID() uint64 {
	w.lastID++
	return w.lastID
}

// clearEntities empties every entity and effect collection.
func (w *World) clearEntities() {
	w.Enemies.Reset()
	w.Projectiles.Reset()
	w.EnemyProjectiles.Reset()
	w.Asteroids.Reset()
	w.PowerUps.Reset()
	w.Lasers.Reset()
	w.Beams.Reset()
	w.Effects.Reset()
	w.Targets.Reset()
	w.Boss = nil
}

// resetEnemies removes every enemy. Support links die with their buffers,
// so no asteroid stays buffed.
func (w *World) resetEnemies() {
	w.Enemies.Reset()
	for _, a := range w.Asteroids.All() {
		a.Buffed = false
	}
}

// clearHazards removes everything that can hurt the player. The montezuma
// giant survives a revive.
func (w *World) clearHazards() {
	w.resetEnemies()
	w.EnemyProjectiles.Reset()
	w.Lasers.Reset()
	w.Beams.Reset()
	for h, a := range w.Asteroids.All() {
		if !a.Montezuma {
			_ = w.Asteroids.Release(h)
		}
	}
}

// encounterEnemies counts live enemies spawned by an encounter fight.
func (w *World) encounterEnemies() int {
	n := 0
	for _, e := range w.Enemies.All() {
		if e.Encounter {
			n++
		}
	}
	return n
}

// buffActive reports whether a timed power-up is running.
func (w *World) buffActive(k PowerUpKind) bool {
	return w.Buffs[k] > 0
}

func (w *World) emit(kind EventKind, name string) {
	w.Events = append(w.Events, Event{Kind: kind, At: w.Now, Name: name, Level: w.Level})
}
