package puzzle

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLegacyGrid(t *testing.T) {
	rnd := rand.New(rand.NewPCG(5, 6))

	p := NewProject("legacy", 5, 5, rnd)
	p.Reveal(10, rnd) // 10/25 = 40%

	changed := p.Normalize(rnd)

	assert.True(t, changed)
	assert.Equal(t, NormalRows, p.Rows)
	assert.Equal(t, NormalCols, p.Cols)
	assert.Len(t, p.Revealed, 40)
	assert.Equal(t, 40, p.Progress)
	assert.True(t, p.Edges.Fits(NormalRows, NormalCols))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	rnd := rand.New(rand.NewPCG(5, 6))

	p := NewProject("legacy", 4, 6, rnd)
	p.Reveal(6, rnd) // 6/24 = 25%

	assert.True(t, p.Normalize(rnd))
	rows, cols, progress := p.Rows, p.Cols, p.Progress
	revealed := append([]int{}, p.Revealed...)
	edges := p.Edges

	assert.False(t, p.Normalize(rnd))
	assert.Equal(t, rows, p.Rows)
	assert.Equal(t, cols, p.Cols)
	assert.Equal(t, progress, p.Progress)
	assert.Equal(t, revealed, p.Revealed)
	assert.Equal(t, edges, p.Edges)
}

func TestNormalizeNoopOnNormalGrid(t *testing.T) {
	rnd := rand.New(rand.NewPCG(5, 6))
	p := NewProject("normal", 10, 10, rnd)
	p.Reveal(17, rnd)

	assert.False(t, p.Normalize(rnd))
	assert.Len(t, p.Revealed, 17)
}

func TestNormalizeDerivesPctFromRevealed(t *testing.T) {
	rnd := rand.New(rand.NewPCG(5, 6))
	p := NewProject("corrupt", 5, 5, rnd)
	p.Revealed = []int{0, 1, 2, 3, 4}
	p.Progress = -1 // corrupt cached projection

	p.Normalize(rnd)

	assert.Len(t, p.Revealed, 20) // 5/25 = 20%
	assert.Equal(t, 20, p.Progress)
}

func TestNormalizeRevealedIndicesValid(t *testing.T) {
	rnd := rand.New(rand.NewPCG(5, 6))
	p := NewProject("legacy", 3, 3, rnd)
	p.Reveal(9, rnd)

	p.Normalize(rnd)

	seen := make(map[int]bool)
	for _, i := range p.Revealed {
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, 100)
		assert.False(t, seen[i])
		seen[i] = true
	}
	assert.Equal(t, 100, p.Progress)
}

func TestEnsureEdgesRepairsMissing(t *testing.T) {
	rnd := rand.New(rand.NewPCG(5, 6))
	p := NewProject("bare", 10, 10, rnd)
	p.Edges = Edges{}

	assert.True(t, p.EnsureEdges(rnd))
	assert.True(t, p.Edges.Fits(10, 10))

	// a well-formed grid is left alone
	edges := p.Edges
	assert.False(t, p.EnsureEdges(rnd))
	assert.Equal(t, edges, p.Edges)
}
