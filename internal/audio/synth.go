package audio

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
)

// SampleRate is the render rate of the synthesizer.
const SampleRate = beep.SampleRate(22050)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Tone describes the sound of one event: a frequency sweep with an
// attack/release envelope.
type Tone struct {
	From, To float64 // Hz
	Duration time.Duration
	Wave     WaveType
	Volume   float64
}

// Voices maps each event to its tone.
var Voices = map[Event]Tone{
	Explosion:      {From: 180, To: 40, Duration: 250 * time.Millisecond, Wave: WaveNoise, Volume: 0.5},
	BossHit:        {From: 220, To: 180, Duration: 60 * time.Millisecond, Wave: WaveSquare, Volume: 0.25},
	LevelUp:        {From: 440, To: 880, Duration: 300 * time.Millisecond, Wave: WaveSine, Volume: 0.5},
	PlayerShoot:    {From: 1200, To: 600, Duration: 40 * time.Millisecond, Wave: WaveSquare, Volume: 0.1},
	Reload:         {From: 300, To: 500, Duration: 120 * time.Millisecond, Wave: WaveSaw, Volume: 0.3},
	EmptyClip:      {From: 120, To: 120, Duration: 80 * time.Millisecond, Wave: WaveSquare, Volume: 0.3},
	PowerUp:        {From: 660, To: 1320, Duration: 200 * time.Millisecond, Wave: WaveSine, Volume: 0.4},
	ShieldBreak:    {From: 900, To: 200, Duration: 300 * time.Millisecond, Wave: WaveSaw, Volume: 0.4},
	ReviveUsed:     {From: 330, To: 990, Duration: 500 * time.Millisecond, Wave: WaveSine, Volume: 0.5},
	PlayerDeath:    {From: 400, To: 30, Duration: 900 * time.Millisecond, Wave: WaveNoise, Volume: 0.6},
	BossDefeated:   {From: 120, To: 20, Duration: 1500 * time.Millisecond, Wave: WaveNoise, Volume: 0.7},
	EncounterBad:   {From: 200, To: 150, Duration: 400 * time.Millisecond, Wave: WaveSaw, Volume: 0.4},
	EncounterGood:  {From: 520, To: 780, Duration: 300 * time.Millisecond, Wave: WaveSine, Volume: 0.4},
	FirstSighting:  {From: 700, To: 700, Duration: 150 * time.Millisecond, Wave: WaveSquare, Volume: 0.3},
	Crit:           {From: 1500, To: 900, Duration: 90 * time.Millisecond, Wave: WaveSine, Volume: 0.3},
	Emp:            {From: 2000, To: 300, Duration: 150 * time.Millisecond, Wave: WaveSaw, Volume: 0.3},
	Victory:        {From: 262, To: 1047, Duration: 1200 * time.Millisecond, Wave: WaveSine, Volume: 0.6},
	AsteroidImpact: {From: 90, To: 60, Duration: 100 * time.Millisecond, Wave: WaveNoise, Volume: 0.3},
}

// oscillator generates a swept wave. Noise uses a small LCG so renders
// are reproducible.
type oscillator struct {
	from, to float64
	phase    float64
	total    int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    uint32
}

func newOscillator(t Tone, rate beep.SampleRate) *oscillator {
	return &oscillator{
		from:  t.From,
		to:    t.To,
		total: rate.N(t.Duration),
		wave:  t.Wave,
		rate:  rate,
		noise: 0x2545F491,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}
		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			o.noise = o.noise*1664525 + 1013904223
			val = float64(o.noise)/float64(math.MaxUint32)*2 - 1
		}

		// Attack 5%, release the last 40%.
		p := float64(o.position) / float64(o.total)
		env := 1.0
		switch {
		case p < 0.05:
			env = p / 0.05
		case p > 0.6:
			env = (1 - p) / 0.4
		}
		val *= env

		samples[i][0] = val
		samples[i][1] = val

		freq := o.from + (o.to-o.from)*p
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// newVolume wraps s with a linear volume; 0 or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Synth is a Sink that keeps the cue list and renders it to a WAV file.
type Synth struct {
	Recorder
	Rate beep.SampleRate
	// Skip lists events left out of the render, such as per-shot sounds
	// in long simulations.
	Skip map[Event]bool
}

// NewSynth creates a synthesizer at the default sample rate.
func NewSynth() *Synth {
	return &Synth{Rate: SampleRate, Skip: map[Event]bool{}}
}

// Streamer builds the mixed timeline of every recorded cue.
// The result ends with the last cue.
func (s *Synth) Streamer() (beep.Streamer, int) {
	rate := s.Rate
	if rate == 0 {
		rate = SampleRate
	}
	mixer := &beep.Mixer{}
	end := 0
	for _, c := range s.Cues() {
		if s.Skip[c.Event] {
			continue
		}
		tone, ok := Voices[c.Event]
		if !ok {
			continue
		}
		offset := rate.N(time.Duration(c.At * float64(time.Millisecond)))
		length := rate.N(tone.Duration)
		mixer.Add(beep.Seq(
			beep.Silence(offset),
			newVolume(newOscillator(tone, rate), tone.Volume),
		))
		end = max(end, offset+length)
	}
	return beep.Take(end, mixer), end
}

// Render writes the timeline as a WAV stream.
func (s *Synth) Render(w io.WriteSeeker) error {
	rate := s.Rate
	if rate == 0 {
		rate = SampleRate
	}
	streamer, n := s.Streamer()
	if n == 0 {
		streamer = beep.Silence(rate.N(10 * time.Millisecond))
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, streamer, format); err != nil {
		return fmt.Errorf("audio: cannot encode wav: %w", err)
	}
	return nil
}

// WriteFile renders the timeline to path.
func (s *Synth) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: cannot create %s: %w", path, err)
	}
	if err := s.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
