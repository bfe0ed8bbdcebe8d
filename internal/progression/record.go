// Package progression holds the meta-progression record that survives
// across runs: banked currency, owned consumables, hangar upgrades, hero
// unlocks and the bookkeeping the simulation needs between runs.
package progression

import (
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Hero identifies a playable ship.
type Hero string

// Playable heroes.
const (
	HeroAlpha Hero = "alpha"
	HeroBeta  Hero = "beta"
	HeroGamma Hero = "gamma"
)

// Heroes lists every hero in menu order.
var Heroes = []Hero{HeroAlpha, HeroBeta, HeroGamma}

// Valid reports whether h names a known hero.
func (h Hero) Valid() bool {
	return slices.Contains(Heroes, h)
}

// Consumable is an armory item that can be carried into a run.
type Consumable string

// Armory consumables.
const (
	Revive     Consumable = "revive"
	FastReload Consumable = "fast_reload"
	RapidFire  Consumable = "rapid_fire"
	SpeedBoost Consumable = "speed_boost"
)

// Consumables lists every consumable in shop order.
var Consumables = []Consumable{Revive, FastReload, RapidFire, SpeedBoost}

// Valid reports whether c names a known consumable.
func (c Consumable) Valid() bool {
	return slices.Contains(Consumables, c)
}

// Unlock notification keys.
const (
	UnlockBeta   = "beta"
	UnlockGamma  = "gamma"
	UnlockHangar = "hangar"
)

// OngoingUpgrade is a hangar upgrade under construction. EndsAt is wall
// clock time so construction continues while the game is closed.
type OngoingUpgrade struct {
	Key    string    `yaml:"key"`
	Level  int       `yaml:"level"`
	EndsAt time.Time `yaml:"ends_at"`
}

// Record is the persisted progression state.
type Record struct {
	HighScore        int `yaml:"high_score"`
	CumulativeScore  int `yaml:"cumulative_score"`
	CumulativeLevels int `yaml:"cumulative_levels"`

	UnlockedHeroes map[Hero]bool   `yaml:"unlocked_heroes"`
	Notified       map[string]bool `yaml:"unlocks_notified"`

	TotalCurrency int                `yaml:"total_currency"`
	UpgradeParts  int                `yaml:"upgrade_parts"`
	Owned         map[Consumable]int `yaml:"consumables"`

	BossesDefeated  int            `yaml:"bosses_defeated"`
	BossDefeatCount map[string]int `yaml:"boss_defeat_count"`

	Upgrades        map[string]int  `yaml:"upgrades"`
	Ongoing         *OngoingUpgrade `yaml:"ongoing_upgrade,omitempty"`
	Tier2Unlocked   bool            `yaml:"tier2_unlocked"`
	TridentUnlocked bool            `yaml:"trident_unlocked"`

	SeenArchetypes       []string `yaml:"seen_archetypes"`
	DisplayedStoryLevels []int    `yaml:"displayed_story_levels"`
	TrainingCompletions  int      `yaml:"training_completions"`
	HardModeUnlocked     bool     `yaml:"hard_mode_unlocked"`

	MontezumaDamage   int  `yaml:"montezuma_damage"`
	MontezumaDefeated bool `yaml:"montezuma_defeated"`
}

// Defaults returns a fresh record.
func Defaults() Record {
	return Record{
		UnlockedHeroes:  map[Hero]bool{HeroAlpha: true},
		Notified:        map[string]bool{},
		Owned:           map[Consumable]int{},
		BossDefeatCount: map[string]int{},
		Upgrades:        map[string]int{},
		SeenArchetypes:  []string{},

		DisplayedStoryLevels: []int{},
	}
}

// Merge fills every missing field of r with its default, so a partial or
// hand-edited record is always usable.
func Merge(r Record) Record {
	if r.UnlockedHeroes == nil {
		r.UnlockedHeroes = map[Hero]bool{}
	}
	r.UnlockedHeroes[HeroAlpha] = true
	if r.Notified == nil {
		r.Notified = map[string]bool{}
	}
	if r.Owned == nil {
		r.Owned = map[Consumable]int{}
	}
	if r.BossDefeatCount == nil {
		r.BossDefeatCount = map[string]int{}
	}
	if r.Upgrades == nil {
		r.Upgrades = map[string]int{}
	}
	if r.SeenArchetypes == nil {
		r.SeenArchetypes = []string{}
	}
	if r.DisplayedStoryLevels == nil {
		r.DisplayedStoryLevels = []int{}
	}
	for c, n := range r.Owned {
		if n < 0 {
			r.Owned[c] = 0
		}
	}
	r.TotalCurrency = max(r.TotalCurrency, 0)
	r.UpgradeParts = max(r.UpgradeParts, 0)
	r.MontezumaDamage = max(r.MontezumaDamage, 0)
	return r
}

// Decode parses a YAML record on top of the defaults. Corrupt input yields
// the defaults and the parse error, so callers can log and carry on.
func Decode(data []byte) (Record, error) {
	r := Defaults()
	if len(data) == 0 {
		return r, nil
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Defaults(), err
	}
	return Merge(r), nil
}

// Encode serializes the record to YAML.
func Encode(r Record) ([]byte, error) {
	return yaml.Marshal(r)
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	c := r
	c.UnlockedHeroes = cloneMap(r.UnlockedHeroes)
	c.Notified = cloneMap(r.Notified)
	c.Owned = cloneMap(r.Owned)
	c.BossDefeatCount = cloneMap(r.BossDefeatCount)
	c.Upgrades = cloneMap(r.Upgrades)
	c.SeenArchetypes = slices.Clone(r.SeenArchetypes)
	c.DisplayedStoryLevels = slices.Clone(r.DisplayedStoryLevels)
	if r.Ongoing != nil {
		o := *r.Ongoing
		c.Ongoing = &o
	}
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Unlocked reports whether a hero can be selected.
func (r Record) Unlocked(h Hero) bool {
	return h == HeroAlpha || r.UnlockedHeroes[h]
}

// Upgrade returns the current level of a hangar upgrade.
func (r Record) Upgrade(key string) int {
	return r.Upgrades[key]
}

// Seen reports whether an archetype has been sighted before.
func (r Record) Seen(name string) bool {
	return slices.Contains(r.SeenArchetypes, name)
}

// MarkSeen records a first sighting and reports whether it was new.
func (r *Record) MarkSeen(name string) bool {
	if r.Seen(name) {
		return false
	}
	r.SeenArchetypes = append(r.SeenArchetypes, name)
	return true
}

// StoryShown reports whether the briefing of a milestone level was shown.
func (r Record) StoryShown(level int) bool {
	return slices.Contains(r.DisplayedStoryLevels, level)
}

// MarkStoryShown records a shown briefing and reports whether it was new.
func (r *Record) MarkStoryShown(level int) bool {
	if r.StoryShown(level) {
		return false
	}
	r.DisplayedStoryLevels = append(r.DisplayedStoryLevels, level)
	return true
}

// HasConsumables reports whether any consumable is owned.
func (r Record) HasConsumables() bool {
	for _, n := range r.Owned {
		if n > 0 {
			return true
		}
	}
	return false
}
