package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Play(Explosion, 10)
	r.Play(LevelUp, 20)
	r.Play(Explosion, 30)

	if got := r.Count(Explosion); got != 2 {
		t.Errorf("Count(explosion) = %d, expected 2", got)
	}
	cues := r.Cues()
	if len(cues) != 3 || cues[1].Event != LevelUp || cues[1].At != 20 {
		t.Errorf("Cues() = %v", cues)
	}
	r.Reset()
	if len(r.Cues()) != 0 {
		t.Error("Reset() left cues behind")
	}
}

func TestTee(t *testing.T) {
	var a, b Recorder
	Tee{&a, &b, Discard}.Play(Crit, 5)
	if a.Count(Crit) != 1 || b.Count(Crit) != 1 {
		t.Error("Tee did not forward to every sink")
	}
}

func TestEveryEventHasVoice(t *testing.T) {
	for _, e := range Events {
		if _, ok := Voices[e]; !ok {
			t.Errorf("event %s has no voice", e)
		}
	}
}

func TestOscillatorRange(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := newOscillator(Tone{From: 440, To: 220, Duration: 50 * time.Millisecond, Wave: wave}, SampleRate)
		samples := make([][2]float64, 256)
		n, ok := osc.Stream(samples)
		if !ok || n != 256 {
			t.Fatalf("Stream() = %d, %v", n, ok)
		}
		for i := 0; i < n; i++ {
			if samples[i][0] < -1 || samples[i][0] > 1 {
				t.Errorf("wave %d sample %d out of range: %f", wave, i, samples[i][0])
			}
		}
	}
}

func TestOscillatorEnds(t *testing.T) {
	osc := newOscillator(Tone{From: 440, To: 440, Duration: 10 * time.Millisecond, Wave: WaveSine}, SampleRate)
	total := 0
	buf := make([][2]float64, 64)
	for {
		n, ok := osc.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if want := SampleRate.N(10 * time.Millisecond); total != want {
		t.Errorf("streamed %d samples, expected %d", total, want)
	}
}

func TestSynthTimelineLength(t *testing.T) {
	s := NewSynth()
	s.Play(LevelUp, 0)
	s.Play(PlayerShoot, 1000)
	s.Skip[PlayerShoot] = true
	s.Play(Explosion, 500)

	_, n := s.Streamer()
	want := SampleRate.N(500*time.Millisecond) + SampleRate.N(250*time.Millisecond)
	if n != want {
		t.Errorf("timeline = %d samples, expected %d", n, want)
	}
}

func TestSynthWriteFile(t *testing.T) {
	s := NewSynth()
	s.Rate = beep.SampleRate(8000)
	s.Play(Explosion, 0)
	s.Play(Victory, 100)

	path := filepath.Join(t.TempDir(), "run.wav")
	if err := s.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	// 44-byte header plus 16-bit stereo samples.
	if info.Size() <= 44 {
		t.Errorf("wav size = %d, expected audio data", info.Size())
	}
}
