package progression

import "github.com/vovakirdan/tui-galaxia/internal/config"

// RunSummary is what a finished run contributes to the record.
type RunSummary struct {
	Score       int
	LevelStreak int
	Currency    int
	Parts       int
	Seen        []string
	Victory     bool
}

// EndOfRun folds a finished run into the record and refreshes hero unlocks.
func EndOfRun(r *Record, run RunSummary, prog config.ProgressionConfig) {
	r.HighScore = max(r.HighScore, run.Score)
	r.CumulativeScore += run.Score
	r.CumulativeLevels += run.LevelStreak
	r.TotalCurrency += run.Currency
	r.UpgradeParts += run.Parts
	for _, s := range run.Seen {
		r.MarkSeen(s)
	}
	if r.CumulativeLevels >= prog.BetaUnlockLevels {
		r.UnlockedHeroes[HeroBeta] = true
	}
	if r.CumulativeScore >= prog.GammaUnlockScore {
		r.UnlockedHeroes[HeroGamma] = true
	}
	if run.Victory {
		r.HardModeUnlocked = true
	}
}

// PendingUnlocks returns unlocks that have not been announced yet and marks
// them as announced.
func PendingUnlocks(r *Record, prog config.ProgressionConfig) []string {
	var out []string
	check := func(key string, unlocked bool) {
		if unlocked && !r.Notified[key] {
			r.Notified[key] = true
			out = append(out, key)
		}
	}
	check(UnlockBeta, r.UnlockedHeroes[HeroBeta])
	check(UnlockGamma, r.UnlockedHeroes[HeroGamma])
	check(UnlockHangar, HangarOpen(*r, prog))
	return out
}

// Loadout is the set of consumables a player chose to bring into a run.
type Loadout map[Consumable]bool

// TakeLoadout removes one of each requested and owned consumable from the
// record and returns those actually taken.
func TakeLoadout(r *Record, want Loadout) Loadout {
	got := Loadout{}
	for _, c := range Consumables {
		if want[c] && r.Owned[c] > 0 {
			r.Owned[c]--
			got[c] = true
		}
	}
	return got
}
