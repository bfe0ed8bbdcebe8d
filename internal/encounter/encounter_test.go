package encounter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if c.Len() != 18 {
		t.Errorf("Len() = %d, expected 18", c.Len())
	}
	for _, e := range c.All() {
		for _, ch := range e.Options(State{}) {
			for _, o := range ch.Outcomes {
				if o.Result.Kind == "" {
					t.Errorf("%s: outcome without kind", e.ID)
				}
			}
		}
	}
}

func TestGet(t *testing.T) {
	c := DefaultCatalog()
	e, err := c.Get("distress_call")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !e.IsChoice() || len(e.Choices) != 2 {
		t.Errorf("distress_call choices = %d, expected 2", len(e.Choices))
	}
	if _, err := c.Get("nope"); !errors.Is(err, ErrUnknownEncounter) {
		t.Errorf("Get(nope) error = %v, expected ErrUnknownEncounter", err)
	}
}

func TestEligible(t *testing.T) {
	c := DefaultCatalog()
	tests := []struct {
		name     string
		level    int
		st       State
		expected int
	}{
		{"early run", 1, State{}, 5},
		{"training unlocked", 5, State{}, 6},
		{"level 40", 40, State{}, 15},
		{"montezuma gone", 40, State{MontezumaDefeated: true}, 14},
		{"late", 99, State{}, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(c.Eligible(tt.level, tt.st)); got != tt.expected {
				t.Errorf("len(Eligible(%d)) = %d, expected %d", tt.level, got, tt.expected)
			}
		})
	}
}

func TestPickWeighted(t *testing.T) {
	c := DefaultCatalog()
	// Level 1 pool in catalog order: freighter 2, stowaway 1, distress 5,
	// trader 3, wormhole 2. Total 13.
	tests := []struct {
		roll     float64
		expected string
	}{
		{0.0, "derelict_freighter"},
		{2.5 / 13, "stowaway_thief"},
		{3.5 / 13, "distress_call"},
		{12.5 / 13, "unstable_wormhole"},
	}
	for _, tt := range tests {
		e, ok := c.Pick(1, State{}, core.NewScriptRNG(tt.roll))
		if !ok {
			t.Fatal("Pick() found nothing")
		}
		if e.ID != tt.expected {
			t.Errorf("Pick(roll=%v) = %s, expected %s", tt.roll, e.ID, tt.expected)
		}
	}
}

func TestPickBuildsDynamic(t *testing.T) {
	c := DefaultCatalog()
	e, _ := c.Get("glitch_market")
	built := Build(e, core.NewScriptRNG(0.5))
	if len(built.Choices) != 2 {
		t.Fatalf("Build() choices = %d, expected 2", len(built.Choices))
	}
	deal := built.Choices[0].Outcomes[0].Result
	if deal.Consumable != progression.RapidFire || deal.Quantity != 3 || deal.Cost != 1000 {
		t.Errorf("deal = %+v", deal)
	}
	fight := built.Choices[0].Outcomes[1].Result
	if !fight.IsFight() || len(fight.Followups) != 1 || fight.Followups[0].Result.Cost != 0 {
		t.Errorf("fight branch = %+v", fight)
	}
}

func TestOptionsFiltersByShield(t *testing.T) {
	c := DefaultCatalog()
	e, _ := c.Get("stowaway_thief")

	shielded := e.Options(State{HasShield: true})
	if len(shielded) != 1 || shielded[0].Text != "Investigate" {
		t.Fatalf("Options() = %+v", shielded)
	}
	if len(shielded[0].Outcomes) != 2 || shielded[0].Outcomes[0].Result.Kind != Nothing {
		t.Errorf("shielded outcomes = %+v", shielded[0].Outcomes)
	}
	bare := e.Options(State{})
	if bare[0].Outcomes[0].Result.Kind != LoseAllItems {
		t.Errorf("unshielded first outcome = %s, expected lose_all_items", bare[0].Outcomes[0].Result.Kind)
	}
}

func TestRoll(t *testing.T) {
	outcomes := []Outcome{
		{Probability: 2, Result: Result{Title: "a"}},
		{Probability: 1, Result: Result{Title: "b"}},
		{Probability: 1, Result: Result{Title: "c"}},
	}
	tests := []struct {
		roll     float64
		expected string
	}{
		{0.0, "a"},
		{0.49, "a"},
		{0.5, "b"},
		{0.8, "c"},
		{0.99, "c"},
	}
	for _, tt := range tests {
		got, ok := Roll(outcomes, core.NewScriptRNG(tt.roll))
		if !ok || got.Title != tt.expected {
			t.Errorf("Roll(%v) = %q, expected %q", tt.roll, got.Title, tt.expected)
		}
	}
}

func TestRollZeroTotalIsUniform(t *testing.T) {
	outcomes := []Outcome{{Result: Result{Title: "a"}}, {Result: Result{Title: "b"}}}
	got, ok := Roll(outcomes, core.NewScriptRNG(0.75))
	if !ok || got.Title != "b" {
		t.Errorf("Roll() = %q, expected b", got.Title)
	}
	if _, ok := Roll(nil, core.NewScriptRNG(0.1)); ok {
		t.Error("Roll(nil) should report no outcome")
	}
}

func TestProcess(t *testing.T) {
	r := Result{Kind: GainItems, CurrencyRange: []int{1500, 2500}, PartsRange: []int{3, 6}}

	got := Process(r, 1, core.NewScriptRNG(0, 0.999))
	if got.Currency != 1500 || got.Parts != 6 {
		t.Errorf("Process() currency=%d parts=%d, expected 1500 and 6", got.Currency, got.Parts)
	}
	if got.CurrencyRange != nil || got.PartsRange != nil {
		t.Error("ranges not cleared")
	}

	early := Process(r, 0, core.NewScriptRNG(0.5))
	if early.Parts != 0 {
		t.Errorf("Process() before first boss parts = %d, expected 0", early.Parts)
	}

	neg := Process(Result{CurrencyRange: []int{-5000, -2000}}, 0, core.NewScriptRNG(0))
	if neg.Currency != -5000 {
		t.Errorf("negative range currency = %d, expected -5000", neg.Currency)
	}
}

func TestLoadCatalogOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enc.yaml")
	data := []byte(`- id: lone
  title: Lone
  text: Only one.
  weight: 1
  outcomes:
    - probability: 1
      result: { kind: nothing, title: Quiet, text: Nothing here. }
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", c.Len())
	}

	if _, err := ParseCatalog([]byte("- id: x\n  weight: 0\n")); err == nil {
		t.Error("expected error for zero weight")
	}
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
