package encounter

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

//go:embed catalog/encounters.yaml
var defaultCatalogYAML []byte

// ErrUnknownEncounter is returned when an id is not in the catalog.
var ErrUnknownEncounter = errors.New("encounter: unknown encounter")

// Catalog is the ordered set of encounters.
type Catalog struct {
	list []Encounter
	byID map[string]int
}

// LoadCatalog reads a catalog file, or the embedded catalog when path is "".
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalogYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("encounter: cannot read catalog %s: %w", path, err)
		}
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the embedded catalog. It panics if the embedded
// file is invalid, which the package tests rule out.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var list []Encounter
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("encounter: cannot parse catalog: %w", err)
	}
	c := &Catalog{list: list, byID: make(map[string]int, len(list))}
	for i, e := range list {
		if e.ID == "" {
			return nil, fmt.Errorf("encounter: entry %d has no id", i)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("encounter: duplicate id %q", e.ID)
		}
		if e.Weight <= 0 {
			return nil, fmt.Errorf("encounter: %s: weight must be positive", e.ID)
		}
		if !e.Dynamic && len(e.Choices) == 0 && len(e.Outcomes) == 0 {
			return nil, fmt.Errorf("encounter: %s: no choices or outcomes", e.ID)
		}
		c.byID[e.ID] = i
	}
	return c, nil
}

// Len returns the number of encounters.
func (c *Catalog) Len() int {
	return len(c.list)
}

// All returns the encounters in catalog order.
func (c *Catalog) All() []Encounter {
	return c.list
}

// Get returns an encounter by id.
func (c *Catalog) Get(id string) (Encounter, error) {
	i, ok := c.byID[id]
	if !ok {
		return Encounter{}, fmt.Errorf("%w: %s", ErrUnknownEncounter, id)
	}
	return c.list[i], nil
}

// Eligible returns the encounters available at level for st.
func (c *Catalog) Eligible(level int, st State) []Encounter {
	var out []Encounter
	for _, e := range c.list {
		if level >= e.MinLevel && e.When.Match(st) {
			out = append(out, e)
		}
	}
	return out
}

// Pick chooses an eligible encounter by weight. Dynamic encounters are
// built before being returned.
func (c *Catalog) Pick(level int, st State, rng core.RNG) (Encounter, bool) {
	eligible := c.Eligible(level, st)
	if len(eligible) == 0 {
		return Encounter{}, false
	}
	total := 0.0
	for _, e := range eligible {
		total += e.Weight
	}
	roll := rng.Float64() * total
	chosen := eligible[len(eligible)-1]
	for _, e := range eligible {
		if roll < e.Weight {
			chosen = e
			break
		}
		roll -= e.Weight
	}
	if chosen.Dynamic {
		chosen = Build(chosen, rng)
	}
	return chosen, true
}

var consumableNames = map[progression.Consumable]string{
	progression.Revive:     "Revive Kits",
	progression.FastReload: "Adrenal Injectors",
	progression.RapidFire:  "Overdrive Cores",
	progression.SpeedBoost: "Engine Coolant",
}

// ConsumableName returns the display name of a consumable.
func ConsumableName(c progression.Consumable) string {
	if n, ok := consumableNames[c]; ok {
		return n
	}
	return string(c)
}

const (
	glitchQuantity = 3
	glitchPrice    = 1000
)

// Build fills in a dynamic encounter. Unknown dynamic ids are returned as is.
func Build(e Encounter, rng core.RNG) Encounter {
	if e.ID != "glitch_market" {
		return e
	}
	item := progression.Consumables[rng.Intn(len(progression.Consumables))]
	name := ConsumableName(item)
	deal := Result{
		Kind:       GainConsumables,
		Title:      "Deal of a Lifetime",
		Text:       fmt.Sprintf("The sale clears before the drone corrects itself. %d %s, for a steal.", glitchQuantity, name),
		Cost:       glitchPrice,
		Consumable: item,
		Quantity:   glitchQuantity,
	}
	salvage := deal
	salvage.Cost = 0
	salvage.Title = "Hostile Takeover"
	salvage.Text = "You scrap the security drones and take the goods from the wreckage."

	e.Text = fmt.Sprintf("A malfunctioning trade drone is liquidating %dx %s for just %d currency.", glitchQuantity, name, glitchPrice)
	e.Choices = []Choice{
		{
			Text: fmt.Sprintf("Exploit the Glitch (Cost: %d)", glitchPrice),
			Outcomes: []Outcome{
				{Probability: 0.9, Result: deal},
				{Probability: 0.1, Result: Result{
					Kind:           Fight,
					Title:          "Loss Prevention",
					Text:           "The sale trips an alarm. Security drones arrive to reclaim the stock.",
					FightCount:     3,
					FightArchetype: "dodger",
					Followups:      []Outcome{{Probability: 1, Result: salvage}},
				}},
			},
		},
		{
			Text: "Report Anomaly",
			Outcomes: []Outcome{{Probability: 1, Result: Result{
				Kind:  Nothing,
				Title: "By the Book",
				Text:  "You report the malfunction. The drone is recalled.",
			}}},
		},
	}
	return e
}
