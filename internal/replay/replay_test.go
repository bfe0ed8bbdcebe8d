package replay

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-galaxia/internal/config"
	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
	"github.com/vovakirdan/tui-galaxia/internal/sim"
)

// record plays ticks frames of autopilot and returns the replay.
func record(t *testing.T, seed int64, ticks int) *Replay {
	t.Helper()
	rec := progression.Defaults()
	rec.Owned[progression.Revive] = 1
	e := sim.NewEngine(sim.Options{
		Config: config.DefaultShooterConfig(),
		RNG:    core.NewSimpleRNG(seed),
		Store:  progression.NewMemStore(rec),
	})
	r, err := Begin(e, seed, progression.HeroAlpha, false, "")
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	s := e.Snapshot()
	for i := range ticks {
		in := core.TickInput{Now: float64(i) * 16, Frame: sim.Autopilot(s)}
		if i%97 == 0 {
			x := float64(i % 500)
			in.PointerX = &x
		}
		s = r.Tick(in)
	}
	if r.Len() != ticks {
		t.Fatalf("Len() = %d, expected %d", r.Len(), ticks)
	}
	return r.Finish()
}

func TestFrameRoundTrip(t *testing.T) {
	x := 123.5
	f := core.NewInputFrame()
	f.Set(core.ActionReload)
	f.Set(core.ActionLeft)
	in := core.TickInput{Now: 42.25, Frame: f, PointerX: &x}

	fr := FrameOf(in)
	if len(fr.Actions) != 2 || fr.Actions[0] != "Left" || fr.Actions[1] != "Reload" {
		t.Errorf("Actions = %v, expected [Left Reload]", fr.Actions)
	}
	x = 0
	got, err := fr.Input()
	if err != nil {
		t.Fatalf("Input() error = %v", err)
	}
	if got.Now != 42.25 || got.PointerX == nil || *got.PointerX != 123.5 {
		t.Errorf("Input() = %+v, expected the captured pointer", got)
	}
	if !got.Frame.Has(core.ActionLeft) || !got.Frame.Has(core.ActionReload) {
		t.Errorf("Frame = %v", got.Frame.List())
	}
}

func TestFrameUnknownAction(t *testing.T) {
	_, err := Frame{At: 1, Actions: []string{"Jump"}}.Input()
	if !errors.Is(err, ErrAction) {
		t.Errorf("Input() error = %v, expected ErrAction", err)
	}
}

func TestWriteRead(t *testing.T) {
	rep := record(t, 7, 300)

	var buf bytes.Buffer
	if err := Write(&buf, rep); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Seed != 7 || got.Hero != progression.HeroAlpha || got.Hash != rep.Hash {
		t.Errorf("Read() = seed %d hero %s hash %x, expected 7 alpha %x", got.Seed, got.Hero, got.Hash, rep.Hash)
	}
	if len(got.Frames) != len(rep.Frames) {
		t.Fatalf("Frames = %d, expected %d", len(got.Frames), len(rep.Frames))
	}
	if got.Record.Owned[progression.Revive] != 1 {
		t.Errorf("Record.Owned = %v, expected the starting revive", got.Record.Owned)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	if _, err := Read(bytes.NewReader([]byte("not a replay"))); err == nil {
		t.Error("Read() accepted an uncompressed body")
	}
}

func TestReadRejectsVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, &Replay{Version: 99, Hero: progression.HeroAlpha}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := Read(&buf); !errors.Is(err, ErrVersion) {
		t.Errorf("Read() error = %v, expected ErrVersion", err)
	}
}

func TestPlaybackReproducesRun(t *testing.T) {
	rep := record(t, 11, 1200)
	path := filepath.Join(t.TempDir(), "run.galaxia")
	if err := Save(path, rep); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	e := sim.NewEngine(loaded.Options(config.DefaultShooterConfig(), nil))
	frames := 0
	p := &Player{Replay: loaded, OnFrame: func(int, sim.Snapshot) { frames++ }}
	if err := p.Verify(e); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if frames != len(loaded.Frames) {
		t.Errorf("OnFrame calls = %d, expected %d", frames, len(loaded.Frames))
	}
}

func TestPlaybackDetectsDivergence(t *testing.T) {
	rep := record(t, 11, 600)
	rep.Seed = 12

	e := sim.NewEngine(rep.Options(config.DefaultShooterConfig(), nil))
	p := &Player{Replay: rep}
	if err := p.Verify(e); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify() error = %v, expected ErrMismatch", err)
	}
}
