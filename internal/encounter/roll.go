package encounter

import "github.com/vovakirdan/tui-galaxia/internal/core"

// Roll picks an outcome by normalized cumulative probability. Rounding
// leftovers fall to the last outcome, and a zero total picks uniformly.
// It returns false for an empty list.
func Roll(outcomes []Outcome, rng core.RNG) (Result, bool) {
	if len(outcomes) == 0 {
		return Result{}, false
	}
	total := 0.0
	for _, o := range outcomes {
		total += max(o.Probability, 0)
	}
	if total <= 0 {
		return outcomes[rng.Intn(len(outcomes))].Result, true
	}
	roll := rng.Float64()
	cumulative := 0.0
	for _, o := range outcomes {
		cumulative += max(o.Probability, 0) / total
		if roll < cumulative {
			return o.Result, true
		}
	}
	return outcomes[len(outcomes)-1].Result, true
}

// Process rolls the ranges of a result into fixed values. Parts are
// withheld until the first boss has fallen.
func Process(r Result, bossesDefeated int, rng core.RNG) Result {
	if len(r.CurrencyRange) == 2 {
		r.Currency = core.IntRange(rng, r.CurrencyRange[0], r.CurrencyRange[1])
	}
	if len(r.PartsRange) == 2 {
		r.Parts = core.IntRange(rng, r.PartsRange[0], r.PartsRange[1])
	}
	if bossesDefeated == 0 {
		r.Parts = 0
	}
	r.CurrencyRange = nil
	r.PartsRange = nil
	return r
}
