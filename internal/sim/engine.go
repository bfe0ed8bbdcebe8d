// Package sim implements the deterministic simulation core of the shooter:
// the world, the per-tick pipeline, enemy and boss behavior, collisions,
// level progression and the encounter flow.
//
// An Engine owns one World. Hosts call Tick once per frame with a wall
// timestamp and the pressed actions, and draw the returned Snapshot.
// Nothing in the package blocks or spawns goroutines.
package sim

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-galaxia/internal/audio"
	"github.com/vovakirdan/tui-galaxia/internal/config"
	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/encounter"
	"github.com/vovakirdan/tui-galaxia/internal/pool"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
	"github.com/vovakirdan/tui-galaxia/internal/spatial"
)

var (
	// ErrWrongMode is returned when an operation is not valid in the
	// current mode. The world is left untouched.
	ErrWrongMode = errors.New("sim: operation not allowed in this mode")

	// ErrBadChoice is returned for an encounter choice out of range.
	ErrBadChoice = errors.New("sim: no such encounter choice")
)

// Run outcomes reported to OnRunEnd.
const (
	OutcomeGameOver  = "game_over"
	OutcomeVictory   = "victory"
	OutcomeAbandoned = "abandoned"
)

// RunResult summarizes a finished run.
type RunResult struct {
	Hero     progression.Hero
	HardMode bool
	Score    int
	Level    int
	Streak   int
	Currency int
	Parts    int
	Outcome  string
	Duration float64 // game time in ms
}

// Options configures an Engine. Zero fields take defaults.
type Options struct {
	Config  config.ShooterConfig
	RNG     core.RNG
	Sink    audio.Sink
	Store   progression.Store
	Catalog *encounter.Catalog
	Logger  *log.Logger

	// OnRunEnd is called once per run when it is over.
	OnRunEnd func(RunResult)
}

// Engine drives one World. It is not safe for concurrent use; each player
// session owns its engine.
type Engine struct {
	base config.ShooterConfig
	cfg  config.ShooterConfig
	diff config.Difficulty

	rng      core.RNG
	sink     audio.Sink
	store    progression.Store
	catalog  *encounter.Catalog
	log      *log.Logger
	onRunEnd func(RunResult)

	rec   progression.Record
	w     *World
	clock core.Clock
	input core.TickInput

	menuHero      progression.Hero
	menuHard      bool
	resumePending bool
	banked        bool

	grid   *spatial.Grid[Ref]
	nearby []Ref
}

// NewEngine creates an engine in ModeIdle. The progression record is
// loaded from the store; a failed load falls back to the defaults.
func NewEngine(opts Options) *Engine {
	if opts.Config.Arena.Width == 0 {
		opts.Config = config.DefaultShooterConfig()
	}
	if opts.RNG == nil {
		opts.RNG = core.NewSimpleRNG(1)
	}
	if opts.Sink == nil {
		opts.Sink = audio.Discard
	}
	if opts.Store == nil {
		opts.Store = progression.NewMemStore(progression.Defaults())
	}
	if opts.Catalog == nil {
		opts.Catalog = encounter.DefaultCatalog()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	e := &Engine{
		base:     opts.Config,
		cfg:      opts.Config,
		rng:      opts.RNG,
		sink:     opts.Sink,
		store:    opts.Store,
		catalog:  opts.Catalog,
		log:      opts.Logger,
		onRunEnd: opts.OnRunEnd,
		w:        newWorld(),
		menuHero: progression.HeroAlpha,
		banked:   true,
	}
	e.diff = config.NewDifficulty(&e.cfg)
	arena := e.cfg.Arena
	e.grid = spatial.New[Ref](arena.Width, arena.Height, arena.GridCell)

	rec, err := e.store.Load()
	if err != nil {
		e.log.Warn("cannot load progression, using defaults", "error", err)
		rec = progression.Defaults()
	}
	e.rec = progression.Merge(rec)
	return e
}

// Mode returns the current mode.
func (e *Engine) Mode() Mode {
	return e.w.Mode
}

// World exposes the live world. Callers must treat it as read-only;
// Snapshot is the safe way to hand state to another goroutine.
func (e *Engine) World() *World {
	return e.w
}

// Record returns a copy of the progression record.
func (e *Engine) Record() progression.Record {
	return e.rec.Clone()
}

// Config returns the active configuration, hard mode included.
func (e *Engine) Config() config.ShooterConfig {
	return e.cfg
}

// MenuHero returns the hero selected for the next run.
func (e *Engine) MenuHero() progression.Hero {
	return e.menuHero
}

// MenuHard reports whether the next run starts in hard mode.
func (e *Engine) MenuHard() bool {
	return e.menuHard
}

// SelectHero picks the hero for the next run.
func (e *Engine) SelectHero(h progression.Hero) error {
	if !e.inMenu() {
		return fmt.Errorf("%w: select hero in %s", ErrWrongMode, e.w.Mode)
	}
	if !h.Valid() {
		return fmt.Errorf("sim: unknown hero %q", h)
	}
	if !e.rec.Unlocked(h) {
		return fmt.Errorf("%w: hero %s", progression.ErrLocked, h)
	}
	e.menuHero = h
	return nil
}

// SetHardMode toggles hard mode for the next run.
func (e *Engine) SetHardMode(on bool) error {
	if !e.inMenu() {
		return fmt.Errorf("%w: hard mode in %s", ErrWrongMode, e.w.Mode)
	}
	if on && !e.rec.HardModeUnlocked {
		return fmt.Errorf("%w: hard mode", progression.ErrLocked)
	}
	e.menuHard = on
	return nil
}

func (e *Engine) inMenu() bool {
	switch e.w.Mode {
	case ModeIdle, ModeGameOver, ModeVictory:
		return true
	}
	return false
}

// Start begins a new run with the given hero. Consumables in the loadout
// are taken from the record if owned.
func (e *Engine) Start(hero progression.Hero, hard bool, loadout progression.Loadout) error {
	if !e.inMenu() {
		return fmt.Errorf("%w: start in %s", ErrWrongMode, e.w.Mode)
	}
	if !e.rec.Unlocked(hero) {
		return fmt.Errorf("%w: hero %s", progression.ErrLocked, hero)
	}
	if hard && !e.rec.HardModeUnlocked {
		return fmt.Errorf("%w: hard mode", progression.ErrLocked)
	}
	e.menuHero, e.menuHard = hero, hard
	e.startRun(hero, hard, loadout)
	return nil
}

func (e *Engine) startRun(hero progression.Hero, hard bool, loadout progression.Loadout) {
	e.finishRun(OutcomeAbandoned)

	e.cfg = e.base
	if hard {
		config.ApplyHardMode(&e.cfg)
	}

	old := e.w
	w := newWorld()
	w.lastID = old.lastID
	w.Now, w.LastTick = old.Now, old.Now
	e.w = w

	w.Hero = hero
	w.HardMode = hard
	w.LastSpawn = w.Now
	p := &w.Player
	p.X = e.cfg.Arena.Width / 2
	p.LastShot = w.Now
	p.LastTrident = w.Now
	e.updateMaxAmmo()
	p.Ammo = p.MaxAmmo

	taken := progression.TakeLoadout(&e.rec, loadout)
	e.applyLoadout(taken)
	for _, u := range progression.PendingUnlocks(&e.rec, e.cfg.Progression) {
		w.emit(EventUnlock, u)
	}
	e.banked = false
	e.save()
	e.setMode(ModePlaying)
	e.showStory(w.Level)
	e.log.Debug("run started", "hero", hero, "hard", hard, "loadout", len(taken))
}

func (e *Engine) applyLoadout(taken progression.Loadout) {
	p := &e.w.Player
	if taken[progression.Revive] {
		p.HasRevive = true
	}
	if taken[progression.FastReload] {
		p.ReloadBoosts += e.cfg.Shop.FastReloadStack
	}
	if taken[progression.RapidFire] {
		p.RapidFire = true
	}
	if taken[progression.SpeedBoost] {
		p.SpeedBoost = true
	}
}

// Continue resumes the run from an intermission. Consumables the ship
// already carries for the run are not taken again.
func (e *Engine) Continue(loadout progression.Loadout) error {
	w := e.w
	if w.Mode != ModeIntermission {
		return fmt.Errorf("%w: continue in %s", ErrWrongMode, w.Mode)
	}
	p := &w.Player
	want := progression.Loadout{}
	for c, on := range loadout {
		if !on {
			continue
		}
		switch {
		case c == progression.Revive && p.HasRevive,
			c == progression.RapidFire && p.RapidFire,
			c == progression.SpeedBoost && p.SpeedBoost:
			continue
		}
		want[c] = true
	}
	taken := progression.TakeLoadout(&e.rec, want)
	e.applyLoadout(taken)
	if len(taken) > 0 {
		e.save()
	}

	w.Reward = ""
	w.LastSpawn = w.Now
	p.Ammo = p.MaxAmmo
	p.ReloadAt = 0
	e.setMode(ModePlaying)
	return nil
}

// Restart folds the finished run and starts a new one with the same hero
// and difficulty.
func (e *Engine) Restart() error {
	w := e.w
	if w.Mode != ModeGameOver && w.Mode != ModeVictory {
		return fmt.Errorf("%w: restart in %s", ErrWrongMode, w.Mode)
	}
	e.startRun(w.Hero, w.HardMode, nil)
	return nil
}

// ReturnToMenu ends the run. Finished runs and intermissions are folded
// into the record; a run abandoned mid-fight keeps nothing it earned.
func (e *Engine) ReturnToMenu() error {
	w := e.w
	switch w.Mode {
	case ModeIdle:
		return fmt.Errorf("%w: already in menu", ErrWrongMode)
	case ModeGameOver:
		e.finishRun(OutcomeGameOver)
	case ModeVictory:
		e.finishRun(OutcomeVictory)
	case ModeIntermission:
		e.finishRun(OutcomeGameOver)
	default:
		e.finishRun(OutcomeAbandoned)
	}
	e.clock.Resume(e.input.Now)
	e.resumePending = false
	w.clearEntities()
	w.Pending, w.Encounter, w.Choices, w.Outcome, w.Fight = nil, nil, nil, nil, nil
	w.Training = nil
	w.Story = nil
	w.MontezumaActive = false
	e.setMode(ModeIdle)
	return nil
}

// TogglePause pauses a running mode or resumes a paused one. Resuming
// takes effect on the next tick.
func (e *Engine) TogglePause() error {
	w := e.w
	switch {
	case w.Mode == ModePaused:
		e.resumePending = true
		return nil
	case w.Mode.Pausable():
		w.Resume = w.Mode
		e.clock.Pause(e.input.Now)
		e.setMode(ModePaused)
		return nil
	}
	return fmt.Errorf("%w: pause in %s", ErrWrongMode, w.Mode)
}

func (e *Engine) applyResume() {
	if !e.resumePending {
		return
	}
	e.resumePending = false
	e.clock.Resume(e.input.Now)
	w := e.w
	w.Now = e.clock.Now(e.input.Now)
	w.LastTick = w.Now
	e.setMode(w.Resume)
}

// Reload starts a manual reload.
func (e *Engine) Reload() error {
	w := e.w
	if !w.Mode.Pausable() {
		return fmt.Errorf("%w: reload in %s", ErrWrongMode, w.Mode)
	}
	p := &w.Player
	if p.Reloading(w.Now) || p.Ammo >= p.MaxAmmo {
		return nil
	}
	p.ReloadAt = w.Now + e.reloadTime(false)
	p.EmptyClipPlayed = false
	e.play(audio.Reload)
	return nil
}

// reloadTime returns the reload duration. Auto reloads allow a deeper
// reduction than manual ones.
func (e *Engine) reloadTime(auto bool) float64 {
	wc := e.cfg.Weapon
	p := e.w.Player
	upgrade := e.upgradeEffect(config.UpgradeReloadSpeed)
	boost := float64(p.ReloadBoosts) * wc.ReloadReductionStack
	var reduction float64
	if auto {
		reduction = math.Min(boost+upgrade, wc.AutoReloadMax)
	} else {
		reduction = math.Min(math.Min(boost, wc.ReloadReductionMax)+upgrade, wc.ReloadReductionMax)
	}
	return wc.ReloadTime * (1 - reduction)
}

// Buy purchases a consumable in the menu or during an intermission. In an
// intermission the run's currency is spent first.
func (e *Engine) Buy(c progression.Consumable) error {
	w := e.w
	var run *int
	switch w.Mode {
	case ModeIntermission:
		run = &w.Currency
	case ModeIdle, ModeGameOver, ModeVictory:
	default:
		return fmt.Errorf("%w: buy in %s", ErrWrongMode, w.Mode)
	}
	if err := progression.Buy(&e.rec, e.cfg.Shop, c, run); err != nil {
		return err
	}
	e.save()
	return nil
}

// Dispatch applies one discrete action.
func (e *Engine) Dispatch(a core.Action) error {
	w := e.w
	if i := a.ChoiceIndex(); i >= 0 {
		return e.ChooseEncounterOption(i)
	}
	switch a {
	case core.ActionReload:
		return e.Reload()
	case core.ActionPause:
		return e.TogglePause()
	case core.ActionRestart:
		return e.Restart()
	case core.ActionBack:
		return e.ReturnToMenu()
	case core.ActionConfirm:
		switch w.Mode {
		case ModeIdle, ModeGameOver, ModeVictory:
			return e.Start(e.menuHero, e.menuHard, nil)
		case ModeIntermission:
			return e.Continue(nil)
		case ModeEncounterOutcome:
			return e.DismissOutcome()
		case ModeStory:
			return e.DismissStory()
		case ModeAwaitingEncounterChoice:
			if len(w.Choices) == 1 {
				return e.ChooseEncounterOption(0)
			}
		case ModePaused:
			return e.TogglePause()
		}
		return fmt.Errorf("%w: confirm in %s", ErrWrongMode, w.Mode)
	}
	return nil
}

func (e *Engine) setMode(m Mode) {
	if e.w.Mode == m {
		return
	}
	e.log.Debug("mode", "from", e.w.Mode, "to", m, "level", e.w.Level)
	e.w.Mode = m
}

func (e *Engine) play(ev audio.Event) {
	e.sink.Play(ev, e.w.Now)
}

func (e *Engine) save() {
	if err := e.store.Save(e.rec); err != nil {
		e.log.Warn("cannot save progression", "error", err)
	}
}

// finishRun folds the current run into the record once.
func (e *Engine) finishRun(outcome string) {
	if e.banked {
		return
	}
	e.banked = true
	w := e.w
	if outcome != OutcomeAbandoned {
		progression.EndOfRun(&e.rec, progression.RunSummary{
			Score:       w.Score,
			LevelStreak: w.Streak,
			Currency:    w.Currency,
			Parts:       w.Parts,
			Victory:     outcome == OutcomeVictory,
		}, e.cfg.Progression)
	}
	e.save()
	e.log.Debug("run over", "outcome", outcome, "score", w.Score, "level", w.Level)
	if e.onRunEnd != nil {
		e.onRunEnd(RunResult{
			Hero:     w.Hero,
			HardMode: w.HardMode,
			Score:    w.Score,
			Level:    w.Level,
			Streak:   w.Streak,
			Currency: w.Currency,
			Parts:    w.Parts,
			Outcome:  outcome,
			Duration: w.GameTime,
		})
	}
}

// upgradeEffect returns the effect of a general upgrade, or of a hero
// upgrade when the run's hero owns it.
func (e *Engine) upgradeEffect(key string) float64 {
	return e.cfg.Upgrades.Effect(key, e.upgradeLevel(key))
}

func (e *Engine) upgradeLevel(key string) int {
	switch key {
	case config.UpgradeAlphaAOE:
		if e.w.Hero != progression.HeroAlpha {
			return 0
		}
	case config.UpgradeBetaHoming:
		if e.w.Hero != progression.HeroBeta {
			return 0
		}
	case config.UpgradeGammaShield:
		if e.w.Hero != progression.HeroGamma {
			return 0
		}
	}
	return e.rec.Upgrade(key)
}

func (e *Engine) updateMaxAmmo() {
	p := &e.w.Player
	base := e.cfg.Weapon.InitialAmmo
	if e.w.buffActive(PowerExtendedMag) {
		base = e.cfg.Weapon.ExtendedMag
	}
	p.MaxAmmo = base + int(e.upgradeEffect(config.UpgradeAmmoCapacity))
	p.Ammo = core.Clamp(p.Ammo, 0, p.MaxAmmo)
}

// shieldCharges is the number of hits a fresh shield absorbs.
func (e *Engine) shieldCharges() int {
	if n := int(e.upgradeEffect(config.UpgradeGammaShield)); n > 0 {
		return n
	}
	return 1
}

// critChance returns the crit chance including hero perks and buffs.
func (e *Engine) critChance() float64 {
	c := e.cfg.Crit.Chance
	if e.w.Hero == progression.HeroAlpha {
		c += e.cfg.Heroes.AlphaCritBonus
		if t, ok := e.cfg.Upgrades.Tier(config.UpgradeAlphaAOE, e.upgradeLevel(config.UpgradeAlphaAOE)); ok {
			c += t.CritBonus
		}
	}
	if e.w.buffActive(PowerCritBoost) {
		c *= e.cfg.PowerUps.CritBoost
	}
	return math.Min(c, 1)
}

// rollDamage rolls one hit. It returns the damage and whether it crit.
func (e *Engine) rollDamage(canCrit bool) (int, bool) {
	wc := e.cfg.Weapon
	dmg := core.IntRange(e.rng, wc.DamageMin, wc.DamageMax)
	crit := canCrit && e.rng.Float64() < e.critChance()
	if crit {
		dmg = int(float64(dmg) * e.cfg.Crit.Multiplier)
	}
	return dmg, crit
}

func (e *Engine) addEffect(fx Effect) {
	ec := e.cfg.Effects
	fx.ID = e.w.nextID()
	fx.Created = e.w.Now
	switch fx.Kind {
	case EffectExplosion:
		fx.TTL = ec.Explosion
	case EffectDamageNumber:
		fx.TTL = ec.DamageNumber
	case EffectRockImpact:
		fx.TTL = ec.RockImpact
	case EffectCriticalHit:
		fx.TTL = e.cfg.Crit.Duration
	case EffectEmpArc:
		fx.TTL = ec.EmpArc
	}
	_, slot := e.w.Effects.Acquire()
	*slot = fx
}

func (e *Engine) addEnemyShot(x, y, vx, vy float64) {
	_, p := e.w.EnemyProjectiles.Acquire()
	*p = EnemyProjectile{ID: e.w.nextID(), X: x, Y: y, VX: vx, VY: vy}
}

func (e *Engine) addShot(x, y, angle float64, cluster bool) {
	_, p := e.w.Projectiles.Acquire()
	*p = Projectile{ID: e.w.nextID(), X: x, Y: y, Angle: angle, Cluster: cluster}
}

// spawnEnemy adds an enemy, filling in archetype health, and records the
// first sighting of its archetype.
func (e *Engine) spawnEnemy(en Enemy) pool.Handle {
	ec := e.cfg.Enemies
	en.ID = e.w.nextID()
	if en.Health == 0 {
		switch en.Archetype {
		case Diver:
			en.Health = ec.Diver.Health
		case SupportBuffer:
			en.Health = e.diff.SupportHealth(e.w.Level)
		case Elite:
			en.Health = ec.Elite.Health
		default:
			en.Health = 1
		}
	}
	en.MaxHealth = en.Health
	h, slot := e.w.Enemies.Acquire()
	*slot = en
	e.sight(en.Archetype.String())
	return h
}

func (e *Engine) sight(name string) {
	if e.rec.MarkSeen(name) {
		e.w.emit(EventFirstSighting, name)
		e.play(audio.FirstSighting)
	}
}

// encounterState is the run state encounter conditions look at.
func (e *Engine) encounterState() encounter.State {
	return encounter.State{
		HasShield:         e.w.Player.HasShield(),
		HasConsumables:    e.rec.HasConsumables(),
		BossesDefeated:    e.rec.BossesDefeated,
		MontezumaDefeated: e.rec.MontezumaDefeated,
	}
}
