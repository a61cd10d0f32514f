package puzzle

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Normalized grid size. Every project is migrated to this shape before any
// reveal or layout operation touches it (see Normalize).
const (
	NormalRows = 10
	NormalCols = 10
)

// Project is the unit of puzzle state: an interlocking piece grid plus the
// set of cells already uncovered. Edges are generated once at creation and
// never change for the project's lifetime; Revealed only grows, except when
// Normalize rebuilds the whole grid.
type Project struct {
	ID        uuid.UUID
	Name      string
	Rows      int
	Cols      int
	Edges     Edges
	Revealed  []int // cell indices, row-major, set semantics
	Progress  int   // derived, round(100 * |Revealed| / total)
	ImageKey  string
	Aspect    float64
	CreatedAt time.Time
}

func NewProject(name string, rows, cols int, rnd *rand.Rand) *Project {
	if rows < 2 || cols < 2 {
		rows, cols = NormalRows, NormalCols
	}
	return &Project{
		ID:        uuid.New(),
		Name:      name,
		Rows:      rows,
		Cols:      cols,
		Edges:     GenerateEdges(rows, cols, rnd),
		Revealed:  []int{},
		CreatedAt: time.Now().UTC(),
	}
}

func DecodeProject(buf []byte) (*Project, error) {
	var p Project
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (p Project) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(p)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Total returns the number of cells in the grid.
func (p Project) Total() int {
	return p.Rows * p.Cols
}

func (p Project) IsRevealed(i int) bool {
	for _, r := range p.Revealed {
		if r == i {
			return true
		}
	}
	return false
}

func (p Project) CellIndex(row, col int) int {
	return row*p.Cols + col
}

// EnsureEdges regenerates missing or malformed edge arrays, reporting whether
// a repair happened. Projects that predate edge storage are fixed on first
// read instead of failing.
func (p *Project) EnsureEdges(rnd *rand.Rand) bool {
	if p.Edges.Fits(p.Rows, p.Cols) {
		return false
	}
	p.Edges = GenerateEdges(p.Rows, p.Cols, rnd)
	return true
}
