package sim

import (
	"strings"

	"github.com/vovakirdan/tui-galaxia/internal/pool"
)

// Mode is the gameplay mode of a world.
type Mode int

const (
	ModeIdle Mode = iota
	ModePlaying
	ModeBossBattle
	ModePlayerDying
	ModeAsteroidField
	ModeTrainingSim
	ModeAwaitingEncounterChoice
	ModeEncounterProcessing
	ModeEncounterOutcome
	ModeIntermission
	ModePaused
	ModeGameOver
	ModeVictory
	ModeStory
)

var modeNames = [...]string{
	ModeIdle:                    "idle",
	ModePlaying:                 "playing",
	ModeBossBattle:              "boss_battle",
	ModePlayerDying:             "player_dying",
	ModeAsteroidField:           "asteroid_field",
	ModeTrainingSim:             "training_sim",
	ModeAwaitingEncounterChoice: "encounter_choice",
	ModeEncounterProcessing:     "encounter_processing",
	ModeEncounterOutcome:        "encounter_outcome",
	ModeIntermission:            "intermission",
	ModePaused:                  "paused",
	ModeGameOver:                "game_over",
	ModeVictory:                 "victory",
	ModeStory:                   "story",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Combat reports whether the full simulation pipeline runs in this mode.
func (m Mode) Combat() bool {
	return m == ModePlaying || m == ModeBossBattle || m == ModeAsteroidField
}

// Pausable reports whether the mode can be paused.
func (m Mode) Pausable() bool {
	return m.Combat() || m == ModeTrainingSim
}

// Archetype is the behavioral variant of a regular enemy.
type Archetype int

const (
	Standard Archetype = iota
	Evasive
	Diver
	SupportBuffer
	Elite
)

// Archetypes lists every archetype in declaration order.
var Archetypes = []Archetype{Standard, Evasive, Diver, SupportBuffer, Elite}

// String returns the name used in sightings and the encounter catalog.
func (a Archetype) String() string {
	switch a {
	case Standard:
		return "standard"
	case Evasive:
		return "dodger"
	case Diver:
		return "weaver"
	case SupportBuffer:
		return "conduit"
	case Elite:
		return "heretic"
	default:
		return "unknown"
	}
}

// ParseArchetype accepts both the catalog name and the descriptive name.
func ParseArchetype(s string) (Archetype, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return Standard, true
	case "dodger", "evasive":
		return Evasive, true
	case "weaver", "diver":
		return Diver, true
	case "conduit", "support", "support_buffer":
		return SupportBuffer, true
	case "heretic", "heretic_ship", "elite":
		return Elite, true
	}
	return Standard, false
}

// Durable reports whether the archetype loses health per hit instead of
// dying to the first one. Durable enemies never take critical damage.
func (a Archetype) Durable() bool {
	return a == Diver || a == SupportBuffer || a == Elite
}

// Enemy is a regular (non-boss) enemy.
type Enemy struct {
	ID        uint64
	Archetype Archetype
	X, Y      float64
	BaseX     float64

	OscFreq, OscAmp, OscPhase float64

	Health, MaxHealth int
	NextShot          float64

	Dodging       bool
	DodgeTargetX  float64
	DodgeCooldown float64

	DiveTargetY float64
	Pausing     bool
	PauseUntil  float64
	Dived       bool
	LastBeam    float64

	// Link is the support buffer's target.
	Link Ref

	Buffed        bool
	Shield        int
	ShieldRegenAt float64

	Encounter bool
	Fragment  bool
}

// Projectile is a player shot. Angle is in degrees from straight up.
type Projectile struct {
	ID      uint64
	X, Y    float64
	Angle   float64
	Cluster bool
}

// EnemyProjectile is a hostile shot moving by its velocity.
type EnemyProjectile struct {
	ID     uint64
	X, Y   float64
	VX, VY float64
}

// Asteroid is a drifting rock. The montezuma giant is an asteroid too.
type Asteroid struct {
	ID        uint64
	X, Y      float64
	VX, VY    float64
	Radius    float64
	Health    float64
	MaxHealth float64
	Tier      int
	Buffed    bool
	Montezuma bool
	Field     bool
}

// PowerUpKind is the kind of a falling pickup.
type PowerUpKind int

const (
	PowerRapidFire PowerUpKind = iota
	PowerSpreadShot
	PowerShield
	PowerExtendedMag
	PowerAutoReload
	PowerCritBoost
	PowerReloadBoost
	powerUpKinds
)

// PowerUpKinds lists every pickup kind; drops roll uniformly over it.
var PowerUpKinds = []PowerUpKind{
	PowerRapidFire, PowerSpreadShot, PowerShield, PowerExtendedMag,
	PowerAutoReload, PowerCritBoost, PowerReloadBoost,
}

func (k PowerUpKind) String() string {
	switch k {
	case PowerRapidFire:
		return "rapid_fire"
	case PowerSpreadShot:
		return "spread_shot"
	case PowerShield:
		return "shield"
	case PowerExtendedMag:
		return "extended_mag"
	case PowerAutoReload:
		return "auto_reload"
	case PowerCritBoost:
		return "crit_boost"
	case PowerReloadBoost:
		return "reload_boost"
	default:
		return "unknown"
	}
}

// PowerUp is a falling pickup.
type PowerUp struct {
	ID   uint64
	Kind PowerUpKind
	X, Y float64
}

// BossLaser is a punisher lane laser. It is harmless until FireAt.
type BossLaser struct {
	ID      uint64
	Lane    int
	Created float64
	FireAt  float64
	Until   float64
}

// Firing reports whether the laser is lethal at now.
func (l BossLaser) Firing(now float64) bool {
	return now >= l.FireAt && now < l.Until
}

// DiverBeam is a full-width horizontal beam.
type DiverBeam struct {
	ID      uint64
	Y       float64
	Created float64
}

// EffectKind is the kind of a short-lived visual effect.
type EffectKind int

const (
	EffectExplosion EffectKind = iota
	EffectDamageNumber
	EffectRockImpact
	EffectCriticalHit
	EffectEmpArc
)

// Effect is a cosmetic with a lifetime. Arcs run from (X, Y) to (X2, Y2).
type Effect struct {
	ID      uint64
	Kind    EffectKind
	X, Y    float64
	X2, Y2  float64
	Value   int
	Crit    bool
	Created float64
	TTL     float64
}

// TrainingTarget is a precision mini-game target.
type TrainingTarget struct {
	ID        uint64
	X, Y      float64
	Required  int
	Remaining int
	LastHit   float64
	Complete  bool
	Failed    bool
}

// Resolved reports whether the target can no longer change.
func (t TrainingTarget) Resolved() bool {
	return t.Complete || t.Failed
}

// RefKind names the pool a Ref points into.
type RefKind uint8

const (
	RefNone RefKind = iota
	RefEnemy
	RefAsteroid
	RefProjectile
)

// Ref is a typed, generation-checked reference to a pooled entity.
type Ref struct {
	Kind   RefKind
	Handle pool.Handle
}

// IsZero reports whether the reference points nowhere.
func (r Ref) IsZero() bool {
	return r.Kind == RefNone
}

// EventKind classifies world events.
type EventKind int

const (
	EventFirstSighting EventKind = iota
	EventLevelUp
	EventShieldGained
	EventBossSpawned
	EventBossDefeated
	EventEncounterQueued
	EventPowerUp
	EventUnlock
	EventInsight
	EventStory
)

// Event is a one-tick notification for hosts (banners, logs).
type Event struct {
	Kind  EventKind
	At    float64
	Name  string
	Level int
}
