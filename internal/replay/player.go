package replay

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-galaxia/internal/config"
	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
	"github.com/vovakirdan/tui-galaxia/internal/sim"
)

// ErrMismatch is returned when a played back run diverges from the
// recorded one.
var ErrMismatch = errors.New("replay: hash mismatch")

// Recorder captures every tick input fed to an engine.
type Recorder struct {
	rep Replay
	e   *sim.Engine
}

// Begin starts a run on e and records it. The progression record is
// captured before the run takes its loadout.
func Begin(e *sim.Engine, seed int64, hero progression.Hero, hard bool, configPath string) (*Recorder, error) {
	r := &Recorder{
		rep: Replay{
			Version: Version,
			Config:  configPath,
			Seed:    seed,
			Hero:    hero,
			Hard:    hard,
			Record:  e.Record(),
		},
		e: e,
	}
	if err := e.Start(hero, hard, nil); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	return r, nil
}

// Tick records in and advances the engine.
func (r *Recorder) Tick(in core.TickInput) sim.Snapshot {
	r.rep.Frames = append(r.rep.Frames, FrameOf(in))
	return r.e.Tick(in)
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.rep.Frames)
}

// Finish stamps the hash of the final snapshot and returns the replay.
func (r *Recorder) Finish() *Replay {
	rep := r.rep
	rep.Hash = r.e.Snapshot().Hash()
	return &rep
}

// Options returns engine options that reproduce the recorded run: the
// seeded RNG and an in-memory store holding the starting record.
func (r *Replay) Options(cfg config.ShooterConfig, logger *log.Logger) sim.Options {
	return sim.Options{
		Config: cfg,
		RNG:    core.NewSimpleRNG(r.Seed),
		Store:  progression.NewMemStore(r.Record),
		Logger: logger,
	}
}

// Player feeds a replay back into an engine.
type Player struct {
	Replay *Replay
	// OnFrame, if set, sees the snapshot after every frame.
	OnFrame func(i int, s sim.Snapshot)
}

// Run starts the recorded run on e, which must be built from
// Replay.Options, and returns the final snapshot hash.
func (p *Player) Run(e *sim.Engine) (uint64, error) {
	rep := p.Replay
	if err := e.Start(rep.Hero, rep.Hard, nil); err != nil {
		return 0, fmt.Errorf("replay: %w", err)
	}
	for i, f := range rep.Frames {
		in, err := f.Input()
		if err != nil {
			return 0, err
		}
		s := e.Tick(in)
		if p.OnFrame != nil {
			p.OnFrame(i, s)
		}
	}
	return e.Snapshot().Hash(), nil
}

// Verify runs the replay and checks the final hash.
func (p *Player) Verify(e *sim.Engine) error {
	got, err := p.Run(e)
	if err != nil {
		return err
	}
	if got != p.Replay.Hash {
		return fmt.Errorf("%w: got %x, recorded %x", ErrMismatch, got, p.Replay.Hash)
	}
	return nil
}
