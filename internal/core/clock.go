package core

// Clock converts host wall timestamps into virtual game time.
// Virtual time is wall time minus the origin and every paused span, so all
// timers stored in virtual milliseconds freeze during a pause without being
// shifted one by one.
type Clock struct {
	origin      float64
	pausedTotal float64
	pausedAt    float64
	paused      bool
	started     bool
}

// Start anchors virtual time zero at the given wall timestamp and clears
// any pause bookkeeping.
func (c *Clock) Start(wall float64) {
	*c = Clock{origin: wall, started: true}
}

// Started reports whether Start has been called.
func (c *Clock) Started() bool {
	return c.started
}

// Now returns the virtual time for the given wall timestamp.
// While paused the result is frozen at the pause point.
func (c *Clock) Now(wall float64) float64 {
	if c.paused {
		wall = c.pausedAt
	}
	return wall - c.origin - c.pausedTotal
}

// Pause freezes virtual time. Pausing twice is a no-op.
func (c *Clock) Pause(wall float64) {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = wall
}

// Resume unfreezes virtual time, folding the paused span into the total.
func (c *Clock) Resume(wall float64) {
	if !c.paused {
		return
	}
	if wall > c.pausedAt {
		c.pausedTotal += wall - c.pausedAt
	}
	c.paused = false
	c.pausedAt = 0
}

// Paused reports whether the clock is currently paused.
func (c *Clock) Paused() bool {
	return c.paused
}

// PausedTotal returns the accumulated paused span in milliseconds.
func (c *Clock) PausedTotal() float64 {
	return c.pausedTotal
}
