package puzzle

import "math/rand/v2"

// Edges holds the tab/blank assignment for every internal boundary of a grid.
//
// H[r][c] is the horizontal boundary between row r and row r+1 at column c:
// +1 means the tab bulges toward row r+1, -1 away from it. V[r][c] is the
// vertical boundary between column c and c+1 at row r, with the same
// convention toward column c+1. Values are strictly +1 or -1; 0 is reserved
// for the grid perimeter and never stored.
type Edges struct {
	H [][]int8 // (rows-1) x cols
	V [][]int8 // rows x (cols-1)
}

// GenerateEdges draws one sign per internal boundary of a rows x cols grid.
// Pure given a deterministic rnd; usable without a project (e.g. previews).
func GenerateEdges(rows, cols int, rnd *rand.Rand) Edges {
	e := Edges{
		H: make([][]int8, rows-1),
		V: make([][]int8, rows),
	}
	for r := range e.H {
		e.H[r] = make([]int8, cols)
		for c := range e.H[r] {
			e.H[r][c] = drawSign(rnd)
		}
	}
	for r := range e.V {
		e.V[r] = make([]int8, cols-1)
		for c := range e.V[r] {
			e.V[r][c] = drawSign(rnd)
		}
	}
	return e
}

func drawSign(rnd *rand.Rand) int8 {
	if rnd.Float64() > 0.5 {
		return 1
	}
	return -1
}

// Fits reports whether e has the shape expected for a rows x cols grid.
func (e Edges) Fits(rows, cols int) bool {
	if len(e.H) != rows-1 || len(e.V) != rows {
		return false
	}
	for _, row := range e.H {
		if len(row) != cols {
			return false
		}
	}
	for _, row := range e.V {
		if len(row) != cols-1 {
			return false
		}
	}
	return true
}

// Signs derives the four displayed edge signs of cell (r, c) from the shared
// boundary arrays. A boundary is stored once; the cell on its far side sees
// the negated sign, so adjacent outlines are always geometric complements.
// Perimeter edges are 0 (flat).
func (e Edges) Signs(r, c int) (top, right, bottom, left int8) {
	rows := len(e.V)
	cols := len(e.V[r]) + 1
	if r > 0 {
		top = -e.H[r-1][c]
	}
	if r < rows-1 {
		bottom = e.H[r][c]
	}
	if c > 0 {
		left = -e.V[r][c-1]
	}
	if c < cols-1 {
		right = e.V[r][c]
	}
	return top, right, bottom, left
}
