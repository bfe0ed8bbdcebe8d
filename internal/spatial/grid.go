// Package spatial provides a uniform-grid broad phase for collision queries.
// The grid is rebuilt from scratch every tick, so there is no incremental
// move/remove bookkeeping: Clear, Insert everything, then query.
package spatial

import "math"

// Grid maps world positions onto fixed-size cells over a bounded field.
// K is the key stored per entity; keys must be comparable for dedup.
type Grid[K comparable] struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]K
	seen     map[K]struct{}
}

// New creates a grid covering width x height with the given cell size.
func New[K comparable](width, height, cellSize float64) *Grid[K] {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	cols = max(cols, 1)
	rows = max(rows, 1)

	cells := make([][]K, cols*rows)
	for i := range cells {
		cells[i] = make([]K, 0, 8)
	}

	return &Grid[K]{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
		seen:     make(map[K]struct{}, 32),
	}
}

// Cols returns the number of grid columns.
func (g *Grid[K]) Cols() int { return g.cols }

// Rows returns the number of grid rows.
func (g *Grid[K]) Rows() int { return g.rows }

// Clear empties every bucket, keeping allocated capacity.
func (g *Grid[K]) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds key to every cell overlapped by the circle's bounding box.
// Positions outside the field are clamped onto the border cells.
func (g *Grid[K]) Insert(key K, x, y, r float64) {
	minC, maxC, minR, maxR := g.span(x, y, r)
	for row := minR; row <= maxR; row++ {
		for col := minC; col <= maxC; col++ {
			idx := row*g.cols + col
			g.cells[idx] = append(g.cells[idx], key)
		}
	}
}

// Nearby appends to dst every key stored in the cells overlapped by the
// query circle, each at most once, excluding self. Callers still run an
// exact distance test on the result.
func (g *Grid[K]) Nearby(self K, x, y, r float64, dst []K) []K {
	clear(g.seen)
	minC, maxC, minR, maxR := g.span(x, y, r)
	for row := minR; row <= maxR; row++ {
		for col := minC; col <= maxC; col++ {
			for _, k := range g.cells[row*g.cols+col] {
				if k == self {
					continue
				}
				if _, dup := g.seen[k]; dup {
					continue
				}
				g.seen[k] = struct{}{}
				dst = append(dst, k)
			}
		}
	}
	return dst
}

// span returns the clamped cell range covered by a circle's bounding box.
func (g *Grid[K]) span(x, y, r float64) (minC, maxC, minR, maxR int) {
	minC = g.col(x - r)
	maxC = g.col(x + r)
	minR = g.row(y - r)
	maxR = g.row(y + r)
	return minC, maxC, minR, maxR
}

func (g *Grid[K]) col(x float64) int {
	c := int(math.Floor(x / g.cellSize))
	return min(max(c, 0), g.cols-1)
}

func (g *Grid[K]) row(y float64) int {
	r := int(math.Floor(y / g.cellSize))
	return min(max(r, 0), g.rows-1)
}
