package spatial

import (
	"math"
	"slices"
	"testing"
)

type body struct {
	id      int
	x, y, r float64
}

func build(bodies []body) *Grid[int] {
	g := New[int](500, 800, 150)
	for _, b := range bodies {
		g.Insert(b.id, b.x, b.y, b.r)
	}
	return g
}

func TestGridDimensions(t *testing.T) {
	g := New[int](500, 800, 150)
	if g.Cols() != 4 || g.Rows() != 6 {
		t.Errorf("grid = %dx%d, expected 4x6", g.Cols(), g.Rows())
	}
}

func TestNearbyExcludesSelfAndDedups(t *testing.T) {
	// Body 2 straddles four cells; it must still appear once.
	g := build([]body{
		{1, 140, 140, 20},
		{2, 150, 150, 30},
	})

	got := g.Nearby(1, 140, 140, 20, nil)
	if !slices.Equal(got, []int{2}) {
		t.Errorf("Nearby(1) = %v, expected [2]", got)
	}

	got = g.Nearby(2, 150, 150, 30, nil)
	if !slices.Equal(got, []int{1}) {
		t.Errorf("Nearby(2) = %v, expected [1]", got)
	}
}

func TestNearbyFindsAllOverlapping(t *testing.T) {
	bodies := []body{
		{1, 10, 10, 25},
		{2, 490, 790, 25},
		{3, 250, 400, 80},
		{4, 300, 420, 30},
		{5, 149, 300, 5},
		{6, 151, 300, 5},
		{7, -30, 900, 40}, // outside the field, clamped onto border cells
		{8, 10, 790, 40},
	}
	g := build(bodies)

	for _, a := range bodies {
		near := g.Nearby(a.id, a.x, a.y, a.r, nil)
		for _, b := range bodies {
			if a.id == b.id {
				continue
			}
			overlap := math.Hypot(a.x-b.x, a.y-b.y) < a.r+b.r
			if overlap && !slices.Contains(near, b.id) {
				t.Errorf("Nearby(%d) = %v, missing overlapping %d", a.id, near, b.id)
			}
		}
	}
}

func TestNearbySkipsDistantCells(t *testing.T) {
	g := build([]body{
		{1, 20, 20, 10},
		{2, 480, 780, 10},
	})

	if got := g.Nearby(1, 20, 20, 10, nil); len(got) != 0 {
		t.Errorf("Nearby(1) = %v, expected nothing", got)
	}
}

func TestClearKeepsGridUsable(t *testing.T) {
	g := build([]body{{1, 100, 100, 10}, {2, 110, 100, 10}})
	g.Clear()

	if got := g.Nearby(1, 100, 100, 10, nil); len(got) != 0 {
		t.Errorf("Nearby() after Clear = %v, expected nothing", got)
	}

	g.Insert(3, 100, 100, 10)
	if got := g.Nearby(1, 100, 100, 10, nil); !slices.Equal(got, []int{3}) {
		t.Errorf("Nearby() after reinsert = %v, expected [3]", got)
	}
}

func TestNearbyAppendsToDst(t *testing.T) {
	g := build([]body{{1, 100, 100, 10}, {2, 105, 100, 10}})
	buf := []int{99}
	buf = g.Nearby(1, 100, 100, 10, buf)
	if !slices.Equal(buf, []int{99, 2}) {
		t.Errorf("Nearby() = %v, expected [99 2]", buf)
	}
}
