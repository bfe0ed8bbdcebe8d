// Package pool provides a generic slot-map object pool.
//
// Objects live in a dense arena of slots. A Handle names a slot together
// with the generation it was acquired in, so a handle kept past its release
// is detected instead of silently aliasing the slot's next occupant.
// The live set of a pool is itself the entity collection: iterating the pool
// visits exactly the acquired, not-yet-released objects in slot order.
package pool

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrStaleHandle is returned when a handle refers to a released slot,
	// a slot that was re-acquired since, or a slot that does not exist.
	ErrStaleHandle = errors.New("pool: stale handle")

	// ErrDoubleRelease is returned when releasing a slot that is already free.
	ErrDoubleRelease = errors.New("pool: double release")
)

// Handle identifies one acquisition of a pool slot.
// The zero Handle never refers to a live object.
type Handle struct {
	Index uint32
	Gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h.Gen == 0
}

// String formats the handle as index@generation.
func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.Index, h.Gen)
}

type slot[T any] struct {
	value T
	gen   uint32
	live  bool
}

// Pool is a slot-map arena of T values.
type Pool[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// New creates a pool with room for capacity objects before growing.
func New[T any](capacity int) *Pool[T] {
	return &Pool[T]{
		slots: make([]slot[T], 0, capacity),
		free:  make([]uint32, 0, capacity),
	}
}

// Acquire takes a free slot (or grows the arena) and returns its handle and
// a pointer to the zeroed value. The caller initializes every field it needs.
func (p *Pool[T]) Acquire() (Handle, *T) {
	var idx uint32
	if n := len(p.free); n > 0 {
		// LIFO reuse keeps recently touched slots hot.
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		idx = uint32(len(p.slots)) //#nosec G115 -- arena never exceeds uint32 slots
		p.slots = append(p.slots, slot[T]{})
	}

	s := &p.slots[idx]
	var zero T
	s.value = zero
	s.gen++
	if s.gen == 0 {
		s.gen = 1 // zero generation is reserved for the zero Handle
	}
	s.live = true
	p.live++
	return Handle{Index: idx, Gen: s.gen}, &s.value
}

// Get returns the live value behind h.
func (p *Pool[T]) Get(h Handle) (*T, error) {
	s, err := p.slotFor(h)
	if err != nil {
		return nil, err
	}
	if !s.live {
		return nil, ErrStaleHandle
	}
	return &s.value, nil
}

// Alive reports whether h still refers to a live object.
func (p *Pool[T]) Alive(h Handle) bool {
	_, err := p.Get(h)
	return err == nil
}

// Release returns the slot behind h to the free list.
// The pointer previously obtained for h must not be used afterwards.
func (p *Pool[T]) Release(h Handle) error {
	s, err := p.slotFor(h)
	if err != nil {
		return err
	}
	if !s.live {
		return fmt.Errorf("%w: %s", ErrDoubleRelease, h)
	}
	s.live = false
	p.live--
	p.free = append(p.free, h.Index)
	return nil
}

// ReleaseMany releases every handle, continuing past failures.
// The returned error joins every individual failure.
func (p *Pool[T]) ReleaseMany(hs []Handle) error {
	var errs []error
	for _, h := range hs {
		if err := p.Release(h); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of live objects.
func (p *Pool[T]) Len() int {
	return p.live
}

// Cap returns the number of slots allocated so far.
func (p *Pool[T]) Cap() int {
	return len(p.slots)
}

// All iterates the live objects in slot order.
// Releasing the current handle during iteration is allowed; acquiring may
// or may not visit the new object.
func (p *Pool[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := range p.slots {
			s := &p.slots[i]
			if !s.live {
				continue
			}
			h := Handle{Index: uint32(i), Gen: s.gen} //#nosec G115 -- slot index fits uint32
			if !yield(h, &s.value) {
				return
			}
		}
	}
}

// Handles appends the live handles to dst in slot order and returns it.
func (p *Pool[T]) Handles(dst []Handle) []Handle {
	for h := range p.All() {
		dst = append(dst, h)
	}
	return dst
}

// Reset releases every live object. Generations keep counting, so handles
// from before the reset stay stale.
func (p *Pool[T]) Reset() {
	p.free = p.free[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		p.slots[i].live = false
		p.free = append(p.free, uint32(i)) //#nosec G115 -- slot index fits uint32
	}
	p.live = 0
}

func (p *Pool[T]) slotFor(h Handle) (*slot[T], error) {
	if h.Gen == 0 || int(h.Index) >= len(p.slots) {
		return nil, fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	s := &p.slots[h.Index]
	if s.gen != h.Gen {
		return nil, fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	return s, nil
}
