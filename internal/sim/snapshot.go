package sim

import (
	"math"

	"github.com/vovakirdan/tui-galaxia/internal/config"
	"github.com/vovakirdan/tui-galaxia/internal/encounter"
	"github.com/vovakirdan/tui-galaxia/internal/pool"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

// Snapshot is a value copy of the world for renderers and tests. It shares
// no memory with the engine.
type Snapshot struct {
	Mode     Mode
	Hero     progression.Hero
	HardMode bool

	Now       float64
	GameTime  float64
	Level     int
	Streak    int
	Kills     int
	Score     int
	Currency  int
	Parts     int
	LevelUpAt float64

	Player Player
	Buffs  [powerUpKinds]float64

	Enemies          []Enemy
	Projectiles      []Projectile
	EnemyProjectiles []EnemyProjectile
	Asteroids        []Asteroid
	PowerUps         []PowerUp
	Lasers           []BossLaser
	Beams            []DiverBeam
	Effects          []Effect
	Targets          []TrainingTarget
	Boss             *Boss
	Training         *Training

	FieldEndsAt     float64
	MontezumaActive bool
	Insight         bool

	Encounter *encounter.Encounter
	Choices   []encounter.Choice
	Outcome   *encounter.Result
	PostMode  Mode
	FightAt   float64
	Reward    progression.Consumable
	Story     *config.StoryMilestone

	Events []Event

	// Bank and HighScore come from the progression record.
	Bank      int
	HighScore int
}

func collect[T any](p *pool.Pool[T]) []T {
	out := make([]T, 0, p.Len())
	for _, v := range p.All() {
		out = append(out, *v)
	}
	return out
}

// Snapshot copies the current world.
func (e *Engine) Snapshot() Snapshot {
	w := e.w
	s := Snapshot{
		Mode:     w.Mode,
		Hero:     w.Hero,
		HardMode: w.HardMode,

		Now:       w.Now,
		GameTime:  w.GameTime,
		Level:     w.Level,
		Streak:    w.Streak,
		Kills:     w.Kills,
		Score:     w.Score,
		Currency:  w.Currency,
		Parts:     w.Parts,
		LevelUpAt: w.LevelUpAt,

		Player: w.Player,
		Buffs:  w.Buffs,

		Enemies:          collect(w.Enemies),
		Projectiles:      collect(w.Projectiles),
		EnemyProjectiles: collect(w.EnemyProjectiles),
		Asteroids:        collect(w.Asteroids),
		PowerUps:         collect(w.PowerUps),
		Lasers:           collect(w.Lasers),
		Beams:            collect(w.Beams),
		Effects:          collect(w.Effects),
		Targets:          collect(w.Targets),

		FieldEndsAt:     w.FieldEndsAt,
		MontezumaActive: w.MontezumaActive,
		Insight:         w.Insight,

		Choices:  append([]encounter.Choice(nil), w.Choices...),
		PostMode: w.PostMode,
		FightAt:  w.FightAt,
		Reward:   w.Reward,

		Events: append([]Event(nil), w.Events...),

		Bank:      e.rec.TotalCurrency,
		HighScore: e.rec.HighScore,
	}
	if w.Boss != nil {
		b := *w.Boss
		s.Boss = &b
	}
	if w.Training != nil {
		t := *w.Training
		s.Training = &t
	}
	if w.Encounter != nil {
		enc := *w.Encounter
		s.Encounter = &enc
	}
	if w.Outcome != nil {
		o := *w.Outcome
		s.Outcome = &o
	}
	if w.Story != nil {
		st := *w.Story
		s.Story = &st
	}
	return s
}

// Hash folds the simulation-relevant state into a single value. Two runs
// fed the same seed and inputs produce the same hash tick by tick.
func (s Snapshot) Hash() uint64 {
	var h uint64 = 17
	mix := func(v uint64) {
		h = h*31 + v
	}
	f := func(v float64) {
		mix(math.Float64bits(v))
	}
	i := func(v int) {
		mix(uint64(v)) //#nosec G115 -- hashing, wraparound is fine
	}

	i(int(s.Mode))
	f(s.Now)
	f(s.GameTime)
	i(s.Level)
	i(s.Streak)
	i(s.Kills)
	i(s.Score)
	i(s.Currency)
	i(s.Parts)
	f(s.Player.X)
	f(s.Player.VX)
	i(s.Player.Ammo)
	i(s.Player.Shield)
	for _, b := range s.Buffs {
		f(b)
	}
	for _, en := range s.Enemies {
		mix(en.ID)
		i(int(en.Archetype))
		f(en.X)
		f(en.Y)
		i(en.Health)
	}
	for _, p := range s.Projectiles {
		mix(p.ID)
		f(p.X)
		f(p.Y)
	}
	for _, p := range s.EnemyProjectiles {
		mix(p.ID)
		f(p.X)
		f(p.Y)
	}
	for _, a := range s.Asteroids {
		mix(a.ID)
		f(a.X)
		f(a.Y)
		f(a.Health)
	}
	for _, p := range s.PowerUps {
		mix(p.ID)
		i(int(p.Kind))
	}
	for _, l := range s.Lasers {
		i(l.Lane)
		f(l.FireAt)
	}
	for _, b := range s.Beams {
		f(b.Y)
	}
	for _, t := range s.Targets {
		i(t.Remaining)
	}
	if b := s.Boss; b != nil {
		i(int(b.Kind))
		i(int(b.Phase))
		i(int(b.Pattern))
		i(b.Health)
		f(b.X)
	}
	return h
}
