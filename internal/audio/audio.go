// Package audio defines the fire-and-forget sound channel of the
// simulation and an offline synthesizer that renders it to WAV.
package audio

import "sync"

// Event is a named sound request.
type Event string

// Sound events emitted by the simulation.
const (
	Explosion      Event = "explosion"
	BossHit        Event = "boss_hit"
	LevelUp        Event = "level_up"
	PlayerShoot    Event = "player_shoot"
	Reload         Event = "reload"
	EmptyClip      Event = "empty_clip"
	PowerUp        Event = "power_up"
	ShieldBreak    Event = "shield_break"
	ReviveUsed     Event = "revive"
	PlayerDeath    Event = "player_death"
	BossDefeated   Event = "boss_defeated"
	EncounterBad   Event = "encounter_bad"
	EncounterGood  Event = "encounter_good"
	FirstSighting  Event = "first_sighting"
	Crit           Event = "crit"
	Emp            Event = "emp"
	Victory        Event = "victory"
	AsteroidImpact Event = "asteroid_impact"
)

// Events lists every event in a stable order.
var Events = []Event{
	Explosion, BossHit, LevelUp, PlayerShoot, Reload, EmptyClip, PowerUp,
	ShieldBreak, ReviveUsed, PlayerDeath, BossDefeated, EncounterBad,
	EncounterGood, FirstSighting, Crit, Emp, Victory, AsteroidImpact,
}

// Sink receives sound requests. at is the simulation time in ms.
// Implementations must not block the caller.
type Sink interface {
	Play(e Event, at float64)
}

// Discard drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Play(Event, float64) {}

// Cue is one recorded sound request.
type Cue struct {
	Event Event
	At    float64
}

// Recorder keeps every event it receives.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

// Play records the event.
func (r *Recorder) Play(e Event, at float64) {
	r.mu.Lock()
	r.cues = append(r.cues, Cue{Event: e, At: at})
	r.mu.Unlock()
}

// Cues returns a copy of the recorded events.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Cue, len(r.cues))
	copy(out, r.cues)
	return out
}

// Count returns how many times e was played.
func (r *Recorder) Count(e Event) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.cues {
		if c.Event == e {
			n++
		}
	}
	return n
}

// Reset forgets all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.cues = r.cues[:0]
	r.mu.Unlock()
}

// Tee fans every event out to several sinks.
type Tee []Sink

// Play forwards the event to each sink.
func (t Tee) Play(e Event, at float64) {
	for _, s := range t {
		s.Play(e, at)
	}
}
