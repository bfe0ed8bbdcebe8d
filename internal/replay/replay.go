// Package replay records the input stream of a seeded run and plays it
// back. The simulation is deterministic, so the seed, the starting
// progression record and the inputs reproduce a run exactly; the final
// snapshot hash is stored to verify that.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
)

// Version is the replay format version written by this package.
const Version = 1

var (
	// ErrVersion is returned for replays written by an unknown format.
	ErrVersion = errors.New("replay: unsupported version")
	// ErrAction is returned for frames naming an unknown action.
	ErrAction = errors.New("replay: unknown action")
)

// Frame is the input of one tick.
type Frame struct {
	At      float64  `yaml:"at"`
	Actions []string `yaml:"actions,omitempty,flow"`
	Pointer *float64 `yaml:"pointer,omitempty"`
}

// Replay is a recorded run.
type Replay struct {
	Version int              `yaml:"version"`
	Config  string           `yaml:"config,omitempty"`
	Seed    int64            `yaml:"seed"`
	Hero    progression.Hero `yaml:"hero"`
	Hard    bool             `yaml:"hard,omitempty"`

	// Record is the progression record the run started from.
	Record progression.Record `yaml:"record"`

	Frames []Frame `yaml:"frames"`
	// Hash is the snapshot hash after the last frame.
	Hash uint64 `yaml:"hash"`
}

// Input converts a frame back into a tick input.
func (f Frame) Input() (core.TickInput, error) {
	in := core.TickInput{Now: f.At, Frame: core.NewInputFrame(), PointerX: f.Pointer}
	for _, name := range f.Actions {
		a, ok := core.ParseAction(name)
		if !ok {
			return core.TickInput{}, fmt.Errorf("%w: %q at %v", ErrAction, name, f.At)
		}
		in.Frame.Set(a)
	}
	return in, nil
}

// FrameOf captures a tick input.
func FrameOf(in core.TickInput) Frame {
	f := Frame{At: in.Now}
	for _, a := range in.Frame.List() {
		f.Actions = append(f.Actions, a.String())
	}
	if in.PointerX != nil {
		x := *in.PointerX
		f.Pointer = &x
	}
	return f
}

// Write encodes r as zstd-compressed YAML.
func Write(w io.Writer, r *Replay) error {
	if r.Version == 0 {
		r.Version = Version
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("replay: cannot create encoder: %w", err)
	}
	ye := yaml.NewEncoder(enc)
	if err := ye.Encode(r); err != nil {
		_ = enc.Close()
		return fmt.Errorf("replay: cannot encode: %w", err)
	}
	if err := ye.Close(); err != nil {
		_ = enc.Close()
		return fmt.Errorf("replay: cannot encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("replay: cannot flush: %w", err)
	}
	return nil
}

// Read decodes a replay written by Write.
func Read(rd io.Reader) (*Replay, error) {
	dec, err := zstd.NewReader(rd)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot create decoder: %w", err)
	}
	defer dec.Close()

	var r Replay
	if err := yaml.NewDecoder(dec).Decode(&r); err != nil {
		return nil, fmt.Errorf("replay: cannot decode: %w", err)
	}
	if r.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, r.Version)
	}
	r.Record = progression.Merge(r.Record)
	return &r, nil
}

// Save writes r to path.
func Save(path string, r *Replay) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	if err := Write(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Load reads a replay from path.
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	defer f.Close()
	return Read(f)
}
