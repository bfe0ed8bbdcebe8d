package core

import "testing"

func TestClockFreezesWhilePaused(t *testing.T) {
	var c Clock
	c.Start(1000)

	if got := c.Now(1500); got != 500 {
		t.Errorf("Now(1500) = %v, expected 500", got)
	}

	c.Pause(2000)
	if got := c.Now(5000); got != 1000 {
		t.Errorf("Now() while paused = %v, expected 1000", got)
	}

	c.Resume(6000)
	if got := c.Now(6100); got != 1100 {
		t.Errorf("Now() after resume = %v, expected 1100", got)
	}
	if c.PausedTotal() != 4000 {
		t.Errorf("PausedTotal() = %v, expected 4000", c.PausedTotal())
	}
}

func TestClockDoublePauseResume(t *testing.T) {
	var c Clock
	c.Start(0)

	c.Pause(100)
	c.Pause(200) // no-op
	c.Resume(300)
	c.Resume(400) // no-op

	if got := c.Now(500); got != 300 {
		t.Errorf("Now(500) = %v, expected 300", got)
	}
	if c.Paused() {
		t.Error("clock should not be paused")
	}
}
