package puzzle

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateEdgesShape(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"2x2", 2, 2},
		{"5x5", 5, 5},
		{"10x10", 10, 10},
		{"3x7", 3, 7},
		{"7x3", 7, 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rnd := rand.New(rand.NewPCG(1, 2))
			e := GenerateEdges(test.rows, test.cols, rnd)

			assert.Len(t, e.H, test.rows-1)
			for _, row := range e.H {
				assert.Len(t, row, test.cols)
				for _, s := range row {
					assert.Contains(t, []int8{1, -1}, s)
				}
			}

			assert.Len(t, e.V, test.rows)
			for _, row := range e.V {
				assert.Len(t, row, test.cols-1)
				for _, s := range row {
					assert.Contains(t, []int8{1, -1}, s)
				}
			}

			assert.True(t, e.Fits(test.rows, test.cols))
		})
	}
}

func TestGenerateEdgesDeterministic(t *testing.T) {
	a := GenerateEdges(10, 10, rand.New(rand.NewPCG(7, 7)))
	b := GenerateEdges(10, 10, rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a, b)
}

func TestSignsComplement(t *testing.T) {
	const rows, cols = 6, 8
	rnd := rand.New(rand.NewPCG(1, 2))
	e := GenerateEdges(rows, cols, rnd)

	for r := range rows {
		for c := range cols {
			_, right, bottom, _ := e.Signs(r, c)
			if c < cols-1 {
				_, _, _, neighborLeft := e.Signs(r, c+1)
				assert.Equal(t, -right, neighborLeft,
					"vertical boundary %d:%d must be complementary", r, c)
			}
			if r < rows-1 {
				neighborTop, _, _, _ := e.Signs(r+1, c)
				assert.Equal(t, -bottom, neighborTop,
					"horizontal boundary %d:%d must be complementary", r, c)
			}
		}
	}
}

func TestSignsPerimeterIsFlat(t *testing.T) {
	const rows, cols = 4, 4
	e := GenerateEdges(rows, cols, rand.New(rand.NewPCG(1, 2)))

	for c := range cols {
		top, _, _, _ := e.Signs(0, c)
		assert.Equal(t, int8(0), top)
		_, _, bottom, _ := e.Signs(rows-1, c)
		assert.Equal(t, int8(0), bottom)
	}
	for r := range rows {
		_, _, _, left := e.Signs(r, 0)
		assert.Equal(t, int8(0), left)
		_, right, _, _ := e.Signs(r, cols-1)
		assert.Equal(t, int8(0), right)
	}
}
