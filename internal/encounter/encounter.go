// Package encounter implements the randomized between-level events: the
// catalog, eligibility, weighted selection and outcome resolution.
// Applying a resolved result to a run is the simulation's job.
package encounter

import (
	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

// Kind is the type of an outcome result.
type Kind string

// Result kinds.
const (
	GainItems       Kind = "gain_items"
	LoseAllItems    Kind = "lose_all_items"
	Fight           Kind = "fight"
	FightReward     Kind = "fight_reward"
	Trade           Kind = "trade"
	LevelSkip       Kind = "level_skip"
	DamageShip      Kind = "damage_ship"
	Nothing         Kind = "nothing"
	DialogueReward  Kind = "dialogue_reward"
	GainConsumables Kind = "gain_consumables"
	SpecialEvent    Kind = "special_event"
)

// Event names a special event started by a result.
type Event string

// Special events.
const (
	AsteroidFieldSurvival Event = "asteroid_field_survival"
	TrainingSimChallenge  Event = "training_sim_challenge"
	MontezumaEncounter    Event = "montezuma_encounter"
)

// Preset names a scripted fight layout.
type Preset string

// Fight presets.
const (
	HereticAntibodies Preset = "heretic_antibodies"
	HereticShip       Preset = "heretic_ship"
)

// Result is what happens when an outcome is chosen. Ranges are inclusive
// [min, max] pairs rolled by Process.
type Result struct {
	Kind  Kind   `yaml:"kind"`
	Title string `yaml:"title"`
	Text  string `yaml:"text"`

	Currency      int   `yaml:"currency,omitempty"`
	CurrencyRange []int `yaml:"currency_range,omitempty"`
	Parts         int   `yaml:"parts,omitempty"`
	PartsRange    []int `yaml:"parts_range,omitempty"`

	Cost           int                    `yaml:"cost,omitempty"`
	CostConsumable progression.Consumable `yaml:"cost_consumable,omitempty"`
	CostQuantity   int                    `yaml:"cost_quantity,omitempty"`

	Consumable progression.Consumable `yaml:"consumable,omitempty"`
	Quantity   int                    `yaml:"quantity,omitempty"`

	Levels int `yaml:"levels,omitempty"`

	FightCount     int    `yaml:"fight_count,omitempty"`
	FightArchetype string `yaml:"fight_archetype,omitempty"`
	FightPreset    Preset `yaml:"fight_preset,omitempty"`

	Event            Event `yaml:"event,omitempty"`
	HereticalInsight bool  `yaml:"heretical_insight,omitempty"`

	Followups []Outcome `yaml:"followups,omitempty"`
}

// IsFight reports whether the result starts a scripted fight.
func (r Result) IsFight() bool {
	return r.Kind == Fight
}

// Outcome is one weighted branch of a choice.
type Outcome struct {
	Probability float64    `yaml:"probability"`
	When        *Condition `yaml:"when,omitempty"`
	Result      Result     `yaml:"result"`
}

// Choice is one option offered to the player.
type Choice struct {
	Text     string    `yaml:"text"`
	Outcomes []Outcome `yaml:"outcomes"`
}

// Encounter is a catalog entry. Encounters without explicit choices roll
// Outcomes directly behind a single "Investigate" option.
type Encounter struct {
	ID       string     `yaml:"id"`
	Title    string     `yaml:"title"`
	Text     string     `yaml:"text"`
	Weight   float64    `yaml:"weight"`
	MinLevel int        `yaml:"min_level,omitempty"`
	Dynamic  bool       `yaml:"dynamic,omitempty"`
	When     *Condition `yaml:"when,omitempty"`
	Choices  []Choice   `yaml:"choices,omitempty"`
	Outcomes []Outcome  `yaml:"outcomes,omitempty"`
}

// IsChoice reports whether the player picks between several options.
func (e Encounter) IsChoice() bool {
	return len(e.Choices) > 0
}

// Options returns the choices to present, with outcomes filtered by st.
func (e Encounter) Options(st State) []Choice {
	if !e.IsChoice() {
		return []Choice{{Text: "Investigate", Outcomes: FilterOutcomes(e.Outcomes, st)}}
	}
	out := make([]Choice, len(e.Choices))
	for i, c := range e.Choices {
		out[i] = Choice{Text: c.Text, Outcomes: FilterOutcomes(c.Outcomes, st)}
	}
	return out
}

// State is the slice of run state that conditions look at.
type State struct {
	HasShield         bool
	HasConsumables    bool
	BossesDefeated    int
	MontezumaDefeated bool
}

// Condition gates an encounter or outcome. Unset fields always match.
type Condition struct {
	HasShield         *bool `yaml:"has_shield,omitempty"`
	HasConsumables    *bool `yaml:"has_consumables,omitempty"`
	MinBosses         int   `yaml:"bosses_defeated,omitempty"`
	MontezumaDefeated *bool `yaml:"montezuma_defeated,omitempty"`
}

// Match reports whether st satisfies the condition. A nil condition matches.
func (c *Condition) Match(st State) bool {
	if c == nil {
		return true
	}
	if c.HasShield != nil && *c.HasShield != st.HasShield {
		return false
	}
	if c.HasConsumables != nil && *c.HasConsumables != st.HasConsumables {
		return false
	}
	if st.BossesDefeated < c.MinBosses {
		return false
	}
	if c.MontezumaDefeated != nil && *c.MontezumaDefeated != st.MontezumaDefeated {
		return false
	}
	return true
}

// FilterOutcomes returns the outcomes whose conditions match st.
func FilterOutcomes(outcomes []Outcome, st State) []Outcome {
	out := make([]Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.When.Match(st) {
			out = append(out, o)
		}
	}
	return out
}
