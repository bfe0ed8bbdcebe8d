package pool

import (
	"errors"
	"testing"
)

type shot struct {
	X, Y float64
	ID   uint64
}

func TestAcquireReleaseReuse(t *testing.T) {
	p := New[shot](4)

	h1, s1 := p.Acquire()
	s1.ID = 1
	h2, _ := p.Acquire()

	if p.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", p.Len())
	}

	if err := p.Release(h1); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}

	h3, s3 := p.Acquire()
	if h3.Index != h1.Index {
		t.Errorf("Acquire() should reuse freed slot %d, got %d", h1.Index, h3.Index)
	}
	if h3.Gen == h1.Gen {
		t.Error("reused slot should have a new generation")
	}
	if s3.ID != 0 {
		t.Errorf("reacquired value should be zeroed, got ID %d", s3.ID)
	}
	if p.Cap() != 2 {
		t.Errorf("Cap() = %d, expected 2", p.Cap())
	}
	_ = h2
}

func TestStaleHandleDetected(t *testing.T) {
	p := New[shot](1)
	h, _ := p.Acquire()
	if err := p.Release(h); err != nil {
		t.Fatal(err)
	}

	if _, err := p.Get(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Get() after release error = %v, expected ErrStaleHandle", err)
	}

	// Slot re-acquired: the old handle is still stale
	p.Acquire()
	if _, err := p.Get(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Get() with old generation error = %v, expected ErrStaleHandle", err)
	}
	if err := p.Release(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Release() with old generation error = %v, expected ErrStaleHandle", err)
	}
}

func TestDoubleRelease(t *testing.T) {
	p := New[shot](1)
	h, _ := p.Acquire()

	if err := p.Release(h); err != nil {
		t.Fatal(err)
	}
	if err := p.Release(h); !errors.Is(err, ErrDoubleRelease) {
		t.Errorf("second Release() error = %v, expected ErrDoubleRelease", err)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d after double release, expected 0", p.Len())
	}
}

func TestZeroAndOutOfRangeHandles(t *testing.T) {
	p := New[shot](1)

	if _, err := p.Get(Handle{}); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Get(zero) error = %v, expected ErrStaleHandle", err)
	}
	if err := p.Release(Handle{Index: 9, Gen: 1}); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Release(out of range) error = %v, expected ErrStaleHandle", err)
	}
	if !(Handle{}).IsZero() {
		t.Error("zero Handle should report IsZero")
	}
}

func TestReleaseManyJoinsErrors(t *testing.T) {
	p := New[shot](3)
	a, _ := p.Acquire()
	b, _ := p.Acquire()

	err := p.ReleaseMany([]Handle{a, b, a})
	if !errors.Is(err, ErrDoubleRelease) {
		t.Errorf("ReleaseMany() error = %v, expected ErrDoubleRelease", err)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", p.Len())
	}
}

func TestAllIteratesLiveInSlotOrder(t *testing.T) {
	p := New[shot](4)
	var hs []Handle
	for i := 0; i < 4; i++ {
		h, s := p.Acquire()
		s.ID = uint64(i)
		hs = append(hs, h)
	}
	if err := p.Release(hs[1]); err != nil {
		t.Fatal(err)
	}

	var ids []uint64
	for h, s := range p.All() {
		ids = append(ids, s.ID)
		// Releasing during iteration is allowed
		if s.ID == 2 {
			if err := p.Release(h); err != nil {
				t.Fatal(err)
			}
		}
	}

	expected := []uint64{0, 2, 3}
	if len(ids) != len(expected) {
		t.Fatalf("All() visited %v, expected %v", ids, expected)
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("All()[%d] = %d, expected %d", i, ids[i], expected[i])
		}
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", p.Len())
	}
}

func TestResetInvalidatesHandles(t *testing.T) {
	p := New[shot](2)
	h, _ := p.Acquire()
	p.Acquire()

	p.Reset()
	if p.Len() != 0 {
		t.Errorf("Len() after Reset = %d, expected 0", p.Len())
	}
	if p.Alive(h) {
		t.Error("handle should be dead after Reset")
	}

	h2, _ := p.Acquire()
	if h2.Index != 0 {
		t.Errorf("first Acquire() after Reset used slot %d, expected 0", h2.Index)
	}
	if len(p.Handles(nil)) != 1 {
		t.Errorf("Handles() = %d entries, expected 1", len(p.Handles(nil)))
	}
}
