package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []ScoreEntry{
		{Hero: "alpha", Score: 100, Level: 3},
		{Hero: "beta", Score: 50, Level: 2},
		{Hero: "alpha", Score: 200, Level: 5, HardMode: true},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || !scores[0].HardMode || scores[0].Level != 5 {
		t.Errorf("top score = %+v, expected 200 hard mode level 5", scores[0])
	}
	if scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[2].Hero != "beta" {
		t.Errorf("Hero = %q, expected beta", scores[2].Hero)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(ScoreEntry{Hero: "alpha", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty table, got %d", high)
	}

	store.SaveScore(ScoreEntry{Hero: "alpha", Score: 100})
	store.SaveScore(ScoreEntry{Hero: "alpha", Score: 300})
	store.SaveScore(ScoreEntry{Hero: "gamma", Score: 200})

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores(10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{Seed: 1, Hero: "alpha", Score: 10, Level: 2, Outcome: "game_over"})
	store.SaveRun(RunRecord{Seed: 2, Hero: "beta", Score: 90, Level: 9, Outcome: "abandoned", DurationMS: 1234})

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].Seed != 2 || runs[0].Outcome != "abandoned" || runs[0].DurationMS != 1234 {
		t.Errorf("latest run = %+v", runs[0])
	}
}

func TestStoreProgressionRoundTrip(t *testing.T) {
	store := openTestStore(t)

	fresh, err := store.Load()
	if err != nil {
		t.Fatalf("Load() on empty db failed: %v", err)
	}
	if fresh.TotalCurrency != 0 || !fresh.Unlocked(progression.HeroAlpha) {
		t.Errorf("Load() on empty db = %+v, expected defaults", fresh)
	}

	rec := progression.Defaults()
	rec.TotalCurrency = 4200
	rec.Owned[progression.Revive] = 2
	rec.BossDefeatCount["warden"] = 1
	if err := store.Save(rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	rec.TotalCurrency = 5000
	if err := store.Save(rec); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.TotalCurrency != 5000 || got.Owned[progression.Revive] != 2 || got.BossDefeatCount["warden"] != 1 {
		t.Errorf("Load() = %+v", got)
	}
}

func TestStoreProfilesAreSeparate(t *testing.T) {
	store := openTestStore(t)

	alice := store.Profile("alice")
	rec := progression.Defaults()
	rec.TotalCurrency = 900
	if err := alice.Save(rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := alice.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.TotalCurrency != 900 {
		t.Errorf("alice TotalCurrency = %d, expected 900", got.TotalCurrency)
	}
	for name, s := range map[string]progression.Store{"local": store, "bob": store.Profile("bob")} {
		other, err := s.Load()
		if err != nil {
			t.Fatalf("%s Load() failed: %v", name, err)
		}
		if other.TotalCurrency != 0 {
			t.Errorf("%s TotalCurrency = %d, expected 0", name, other.TotalCurrency)
		}
	}
}

func TestStoreCorruptProgression(t *testing.T) {
	store := openTestStore(t)

	if err := store.putRaw(progressionKey, []byte("{{{ not yaml")); err != nil {
		t.Fatalf("putRaw() failed: %v", err)
	}
	rec, err := store.Load()
	if err == nil {
		t.Error("expected error for corrupt record")
	}
	if rec.Owned == nil || !rec.Unlocked(progression.HeroAlpha) {
		t.Errorf("Load() corrupt = %+v, expected defaults", rec)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
