package sim

import (
	"math"

	"github.com/vovakirdan/tui-galaxia/internal/audio"
	"github.com/vovakirdan/tui-galaxia/internal/config"
)

// BossKind identifies one of the three boss types.
type BossKind int

const (
	Warden BossKind = iota
	Punisher
	Overmind
)

func (k BossKind) String() string {
	switch k {
	case Warden:
		return "warden"
	case Punisher:
		return "punisher"
	case Overmind:
		return "overmind"
	default:
		return "unknown"
	}
}

// Phase is a boss state machine state.
type Phase int

const (
	PhaseEntering Phase = iota
	PhaseAttacking
	PhaseSpawningAdds
	PhaseFury
	PhaseChargingBeam
	PhaseFiringBeam
	PhaseDefeated
)

var phaseNames = [...]string{
	PhaseEntering:     "entering",
	PhaseAttacking:    "attacking",
	PhaseSpawningAdds: "spawning_adds",
	PhaseFury:         "fury",
	PhaseChargingBeam: "charging_beam",
	PhaseFiringBeam:   "firing_beam",
	PhaseDefeated:     "defeated",
}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Pattern is the attack sub-pattern of an attacking warden or punisher.
type Pattern int

const (
	PatternBarrage Pattern = iota
	PatternSweep
	PatternSpawnAdds
	PatternLasers
)

func (p Pattern) String() string {
	switch p {
	case PatternBarrage:
		return "barrage"
	case PatternSweep:
		return "sweep"
	case PatternSpawnAdds:
		return "spawn_adds"
	case PatternLasers:
		return "lasers"
	default:
		return "unknown"
	}
}

// Boss is the single active boss of a boss battle.
type Boss struct {
	ID            uint64
	Kind          BossKind
	X, Y          float64
	Width, Height float64

	Health, MaxHealth int
	Difficulty        int
	Invulnerable      bool

	Phase        Phase
	PhaseStart   float64
	Pattern      Pattern
	PatternStart float64
	LastAttack   float64

	// Baked at spawn from the defeat count of this boss type.
	Scale    config.BossScale
	Interval float64

	SweepFired int
	SweepSafe  int
	SweepDir   int
	LastSweep  float64

	SafeX float64

	Explosions    int
	LastExplosion float64
}

// CenterY is the vertical center of the hit circle.
func (b *Boss) CenterY() float64 {
	return b.Y + b.Height/2
}

// Ratio returns the remaining health fraction.
func (b *Boss) Ratio() float64 {
	if b.MaxHealth <= 0 {
		return 0
	}
	return float64(b.Health) / float64(b.MaxHealth)
}

// Hittable reports whether player shots can damage the boss.
func (b *Boss) Hittable() bool {
	return b.Phase != PhaseDefeated && b.Phase != PhaseEntering && !b.Invulnerable
}

// BeamFiring reports whether the overmind beam is lethal.
func (b *Boss) BeamFiring() bool {
	return b.Kind == Overmind && b.Phase == PhaseFiringBeam
}

// canTransition enforces the phase graph of each boss type. Defeated is
// terminal.
func canTransition(kind BossKind, from, to Phase) bool {
	if from == PhaseDefeated {
		return false
	}
	if to == PhaseDefeated {
		return from != PhaseEntering && from != PhaseSpawningAdds
	}
	switch from {
	case PhaseEntering:
		return to == PhaseAttacking
	case PhaseAttacking:
		return kind == Overmind && to == PhaseSpawningAdds
	}
	if kind != Overmind {
		return false
	}
	switch from {
	case PhaseSpawningAdds:
		return to == PhaseFury
	case PhaseFury:
		return to == PhaseChargingBeam
	case PhaseChargingBeam:
		return to == PhaseFiringBeam
	case PhaseFiringBeam:
		return to == PhaseFury
	}
	return false
}

// setPhase moves the boss along its phase graph. Illegal moves are logged
// and ignored.
func (e *Engine) setPhase(b *Boss, to Phase) bool {
	if !canTransition(b.Kind, b.Phase, to) {
		e.log.Warn("illegal boss transition", "boss", b.Kind, "from", b.Phase, "to", to)
		return false
	}
	e.log.Debug("boss phase", "boss", b.Kind, "from", b.Phase, "to", to)
	b.Phase = to
	b.PhaseStart = e.w.Now
	return true
}

// bossFor returns the boss type fought at a boss level.
func (e *Engine) bossFor(level int) BossKind {
	prog := e.cfg.Progression
	switch {
	case level >= prog.FinalLevel:
		return Overmind
	case level == prog.BossInterval:
		return Warden
	case level == 2*prog.BossInterval:
		return Punisher
	}
	if (level/prog.BossInterval-3)%2 == 0 {
		return Warden
	}
	return Punisher
}

func (e *Engine) bossBody(kind BossKind) config.BossBody {
	switch kind {
	case Punisher:
		return e.cfg.Bosses.Punisher.Body
	case Overmind:
		return e.cfg.Bosses.Overmind.Body
	default:
		return e.cfg.Bosses.Warden.Body
	}
}

// spawnBoss creates the boss for the current level with its scaling baked in.
func (e *Engine) spawnBoss() {
	w := e.w
	kind := e.bossFor(w.Level)
	body := e.bossBody(kind)
	b := &Boss{
		ID:     w.nextID(),
		Kind:   kind,
		X:      e.cfg.Arena.Width / 2,
		Y:      body.Y,
		Width:  body.Width,
		Height: body.Height,
		Phase:  PhaseEntering,
	}
	b.PhaseStart = w.Now
	b.Scale = e.diff.BossScale(0)
	if kind != Overmind {
		b.Scale = e.diff.BossScale(e.rec.BossDefeatCount[kind.String()])
	}
	b.MaxHealth = int(math.Round(float64(body.Health) * b.Scale.Health))
	b.Health = b.MaxHealth
	switch kind {
	case Warden:
		b.Interval = e.cfg.Bosses.Warden.BarrageInterval * b.Scale.AttackInterval
	case Punisher:
		b.Interval = e.cfg.Bosses.Punisher.BarrageInterval * b.Scale.AttackInterval
	case Overmind:
		b.Interval = e.cfg.Bosses.Overmind.BarrageInterval
		b.LastAttack = w.Now
	}
	w.Boss = b
	e.log.Debug("boss spawned", "boss", kind, "level", w.Level, "health", b.MaxHealth, "encounters", b.Scale.Encounters)
	w.emit(EventBossSpawned, kind.String())
}

// bossLogic advances the boss phase machine and its attack patterns.
func (e *Engine) bossLogic() {
	b := e.w.Boss
	if b == nil {
		return
	}
	now := e.w.Now

	if b.Phase == PhaseDefeated {
		e.bossDeathSequence(b)
		return
	}

	if b.Phase == PhaseEntering && now-b.PhaseStart > e.cfg.Bosses.EnterDuration {
		e.setPhase(b, PhaseAttacking)
		b.LastAttack = now
		b.PatternStart = now
		b.Pattern = PatternBarrage
	}

	if b.Phase == PhaseAttacking || b.Phase == PhaseFury {
		period := 2000.0
		if b.Kind == Punisher {
			period = 1500
		}
		half := e.cfg.Arena.Width / 2
		b.X = half + math.Sin(now/period)*math.Max(half-b.Width/2, 0)
	}

	switch b.Kind {
	case Overmind:
		e.overmindLogic(b)
	case Warden:
		if b.Phase == PhaseAttacking {
			e.wardenLogic(b)
		}
	case Punisher:
		if b.Phase == PhaseAttacking {
			e.punisherLogic(b)
		}
	}
}

func (e *Engine) bossDeathSequence(b *Boss) {
	bc := e.cfg.Bosses
	now := e.w.Now
	interval := bc.DefeatDuration / float64(max(bc.DeathExplosions, 1))
	if b.Explosions >= bc.DeathExplosions || now <= b.LastExplosion+interval {
		return
	}
	x := b.X + (e.rng.Float64()-0.5)*b.Width*1.2
	y := b.Y + (e.rng.Float64()-0.5)*b.Height*1.2
	e.addEffect(Effect{Kind: EffectExplosion, X: x, Y: y})
	if b.Explosions%4 == 0 {
		e.addEffect(Effect{Kind: EffectCriticalHit, X: x, Y: y, Crit: true})
		e.play(audio.Crit)
	}
	e.play(audio.Explosion)
	b.Explosions++
	b.LastExplosion = now
}

// bossShot fires a straight-down projectile from a random point of the
// boss's body, spread over frac of its width.
func (e *Engine) bossShot(b *Boss, frac, y float64) {
	x := b.X + (e.rng.Float64()-0.5)*b.Width*frac
	e.addEnemyShot(x, y, 0, e.cfg.Enemies.ProjectileSpeed)
}

func (e *Engine) overmindLogic(b *Boss) {
	om := e.cfg.Bosses.Overmind
	w := e.w
	now := w.Now

	switch b.Phase {
	case PhaseAttacking:
		if b.Ratio() < om.AddsThreshold {
			e.setPhase(b, PhaseSpawningAdds)
			b.Invulnerable = true
			e.spawnFragments(b)
			return
		}
		if now > b.LastAttack+b.Interval {
			for range 3 {
				e.bossShot(b, 0.8, b.Y)
			}
			b.LastAttack = now
		}
	case PhaseSpawningAdds:
		if e.fragments() == 0 {
			e.setPhase(b, PhaseFury)
			b.Invulnerable = false
			b.PatternStart = now
			e.play(audio.LevelUp)
		}
	case PhaseFury:
		if now > b.PatternStart+om.BeamEvery {
			e.setPhase(b, PhaseChargingBeam)
			b.SafeX = e.rng.Float64() * (e.cfg.Arena.Width - om.SafeZoneWidth)
		} else if now > b.LastAttack+om.FuryInterval {
			e.bossShot(b, 1, b.Y)
			b.LastAttack = now
		}
	case PhaseChargingBeam:
		if now > b.PhaseStart+om.BeamCharge {
			e.setPhase(b, PhaseFiringBeam)
		}
	case PhaseFiringBeam:
		if now > b.PhaseStart+om.BeamFire {
			e.setPhase(b, PhaseFury)
			b.PatternStart = now
		}
	}
}

func (e *Engine) spawnFragments(b *Boss) {
	now := e.w.Now
	for range e.cfg.Bosses.Overmind.FragmentCount {
		e.spawnEnemy(Enemy{
			Archetype: Evasive,
			X:         b.X + (e.rng.Float64()-0.5)*b.Width,
			Y:         b.Y + (e.rng.Float64()-0.5)*b.Height,
			BaseX:     b.X,
			NextShot:  now + e.rng.Float64()*1000,
			OscFreq:   e.rng.Float64()*1.5 + 1,
			OscAmp:    e.rng.Float64()*60 + 30,
			OscPhase:  e.rng.Float64() * 2 * math.Pi,
			Fragment:  true,
		})
	}
}

// fragments counts the overmind's live fragments.
func (e *Engine) fragments() int {
	n := 0
	for _, en := range e.w.Enemies.All() {
		if en.Fragment {
			n++
		}
	}
	return n
}

func (e *Engine) wardenLogic(b *Boss) {
	wc := e.cfg.Bosses.Warden
	now := e.w.Now
	inPattern := now - b.PatternStart
	sweepDuration := float64(b.Scale.WardenWaves)*b.Scale.WardenWaveGap + wc.SweepTail

	switch {
	case b.Pattern == PatternBarrage && inPattern > wc.BarrageDuration:
		b.Pattern = PatternSweep
		b.PatternStart = now
		b.SweepFired = 0
		b.LastSweep = now
		b.SweepSafe = 0
		b.SweepDir = 1
		if e.rng.Float64() >= 0.5 {
			b.SweepSafe = wc.SweepColumns - wc.SweepSafeLanes
			b.SweepDir = -1
		}
	case b.Pattern == PatternSweep && inPattern > sweepDuration:
		b.Pattern = PatternSpawnAdds
		b.PatternStart = now
		b.LastAttack = now
	case b.Pattern == PatternSpawnAdds && inPattern > wc.MinionDuration:
		b.Pattern = PatternBarrage
		b.PatternStart = now
	}

	switch b.Pattern {
	case PatternBarrage:
		interval := b.Interval * math.Pow(wc.BarrageDecay, float64(b.Difficulty))
		if now > b.LastAttack+interval {
			e.bossShot(b, wc.BarrageSpread, b.CenterY())
			b.LastAttack = now
		}
	case PatternSweep:
		if b.SweepFired < b.Scale.WardenWaves && now > b.LastSweep+b.Scale.WardenWaveGap {
			safe := b.SweepSafe + b.SweepFired*b.SweepDir
			col := e.cfg.Arena.Width / float64(wc.SweepColumns)
			for i := range wc.SweepColumns {
				if i >= safe && i < safe+wc.SweepSafeLanes {
					continue
				}
				e.addEnemyShot(col*float64(i)+col/2, b.CenterY(), 0, e.cfg.Enemies.ProjectileSpeed)
			}
			b.LastSweep = now
			b.SweepFired++
		}
	case PatternSpawnAdds:
		count := max(b.Scale.WardenMinions, 1)
		if now > b.LastAttack+wc.MinionDuration*0.8/float64(count) {
			kind := Standard
			if e.rec.BossDefeatCount[Warden.String()] > 0 {
				kind = Evasive
			}
			e.spawnEnemy(Enemy{
				Archetype:     kind,
				X:             b.X + (e.rng.Float64()-0.5)*b.Width,
				Y:             b.Y + b.Height,
				BaseX:         b.X,
				NextShot:      now + e.rng.Float64()*e.cfg.Enemies.ShootInterval,
				OscFreq:       e.rng.Float64() + 0.5,
				OscAmp:        e.rng.Float64()*80 + 40,
				OscPhase:      e.rng.Float64() * 2 * math.Pi,
				DodgeCooldown: now + e.cfg.Enemies.Evasive.Cooldown,
			})
			b.LastAttack = now
		}
	}
}

func (e *Engine) punisherLogic(b *Boss) {
	pc := e.cfg.Bosses.Punisher
	w := e.w
	now := w.Now
	inPattern := now - b.PatternStart

	switch {
	case b.Pattern == PatternBarrage && inPattern > pc.BarrageDuration:
		b.Pattern = PatternSpawnAdds
		b.PatternStart = now
	case b.Pattern == PatternSpawnAdds && inPattern > pc.MinionDuration:
		b.Pattern = PatternLasers
		b.PatternStart = now
	case b.Pattern == PatternLasers && inPattern > pc.LaserDuration:
		b.Pattern = PatternBarrage
		b.PatternStart = now
	}
	inPattern = now - b.PatternStart

	switch b.Pattern {
	case PatternBarrage:
		interval := b.Interval * math.Pow(pc.BarrageDecay, float64(b.Difficulty))
		if now > b.LastAttack+interval {
			e.bossShot(b, 0.8, b.CenterY())
			b.LastAttack = now
		}
	case PatternSpawnAdds:
		count := b.Scale.PunisherMinion + b.Difficulty
		if count > 0 && w.Enemies.Len() < count && now > b.LastAttack+pc.MinionDuration*0.8/float64(count) {
			x := (e.rng.Float64()*0.6 + 0.2) * e.cfg.Arena.Width
			e.spawnEnemy(Enemy{
				Archetype: Standard,
				X:         x,
				Y:         b.Y + b.Height,
				BaseX:     x,
				NextShot:  now + e.rng.Float64()*e.cfg.Enemies.ShootInterval,
				OscFreq:   e.rng.Float64() + 0.5,
				OscAmp:    e.rng.Float64()*80 + 40,
				OscPhase:  e.rng.Float64() * 2 * math.Pi,
			})
			b.LastAttack = now
		}
	case PatternLasers:
		if w.Lasers.Len() == 0 && inPattern < 100 {
			lanes := append([]int(nil), pc.LaserLanes...)
			for i := 0; i < pc.LaserPicks && len(lanes) > 0; i++ {
				j := e.rng.Intn(len(lanes))
				e.addLaser(lanes[j])
				lanes = append(lanes[:j], lanes[j+1:]...)
			}
			if b.Difficulty >= pc.CenterLaneLevel {
				e.addLaser(e.cfg.Arena.LaneCount / 2)
			}
		}
	}
}

func (e *Engine) addLaser(lane int) {
	pc := e.cfg.Bosses.Punisher
	now := e.w.Now
	_, l := e.w.Lasers.Acquire()
	*l = BossLaser{
		ID:      e.w.nextID(),
		Lane:    lane,
		Created: now,
		FireAt:  now + pc.LaserCharge,
		Until:   now + pc.LaserCharge + pc.LaserFire,
	}
}

// hitBoss applies one player hit. It reports whether the boss died. The
// hit score is left to the caller.
func (e *Engine) hitBoss(b *Boss, damage int, crit bool, x, y float64) bool {
	w := e.w
	bc := e.cfg.Bosses
	if w.Insight && (b.Phase == PhaseFury || b.Phase == PhaseChargingBeam || b.Phase == PhaseFiringBeam) {
		damage = int(float64(damage) * bc.InsightDamage)
	}
	b.Health = max(b.Health-damage, 0)
	e.play(audio.BossHit)
	if crit {
		e.play(audio.Crit)
	}
	e.addEffect(Effect{Kind: EffectDamageNumber, X: x, Y: y, Value: damage, Crit: crit})

	d := 0
	for _, t := range bc.Thresholds {
		if b.Ratio() < t {
			d++
		}
	}
	if d > b.Difficulty {
		b.Difficulty = d
		if b.Kind != Overmind {
			e.play(audio.LevelUp)
		}
	}
	if b.Health > 0 {
		return false
	}
	if !e.setPhase(b, PhaseDefeated) {
		return false
	}
	b.Explosions = 0
	b.LastExplosion = w.Now
	b.Invulnerable = false
	e.play(audio.BossDefeated)
	return true
}
