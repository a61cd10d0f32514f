package puzzle

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestProject(t *testing.T, rows, cols int) *Project {
	t.Helper()
	return NewProject("test", rows, cols, rand.New(rand.NewPCG(1, 2)))
}

func TestRevealZeroIsNoop(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 4))
	p := newTestProject(t, 10, 10)
	p.Reveal(5, rnd)

	before := append([]int{}, p.Revealed...)
	progress := p.Progress

	assert.Equal(t, 0, p.Reveal(0, rnd))
	assert.Equal(t, before, p.Revealed)
	assert.Equal(t, progress, p.Progress)
}

func TestRevealNegativeClampsToNoop(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 4))
	p := newTestProject(t, 10, 10)
	assert.Equal(t, 0, p.Reveal(-3, rnd))
	assert.Empty(t, p.Revealed)
}

func TestRevealBatch(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 4))
	p := newTestProject(t, 10, 10)

	got := p.Reveal(30, rnd)

	assert.Equal(t, 30, got)
	assert.Len(t, p.Revealed, 30)
	assert.Equal(t, 30, p.Progress)
}

func TestRevealNeverDuplicatesOrOverflows(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 4))
	p := newTestProject(t, 10, 10)

	for range 20 {
		p.Reveal(7, rnd)
	}

	seen := make(map[int]bool)
	for _, i := range p.Revealed {
		assert.False(t, seen[i], "cell %d revealed twice", i)
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, p.Total())
		seen[i] = true
	}
}

func TestRevealClampsToRemaining(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 4))
	p := newTestProject(t, 10, 10)
	p.Reveal(95, rnd)

	got := p.Reveal(1000, rnd)

	assert.Equal(t, 5, got)
	assert.Len(t, p.Revealed, p.Total())
	assert.Equal(t, 100, p.Progress)

	assert.Equal(t, 0, p.Reveal(10, rnd))
}

func TestCompleteSession(t *testing.T) {
	tests := []struct {
		name         string
		preRevealed  int
		sessionPct   float64
		wantRevealed int
		wantProgress int
	}{
		{"from zero", 0, 10, 10, 10},
		{"45 plus 10", 45, 10, 55, 55},
		{"clamps at 100", 95, 25, 100, 100},
		{"zero pct", 30, 0, 30, 30},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rnd := rand.New(rand.NewPCG(3, 4))
			p := newTestProject(t, 10, 10)
			p.Reveal(test.preRevealed, rnd)

			p.CompleteSession(test.sessionPct, rnd)

			assert.Len(t, p.Revealed, test.wantRevealed)
			assert.Equal(t, test.wantProgress, p.Progress)
		})
	}
}

func TestCompleteSessionRobustToManualDrift(t *testing.T) {
	// The target is computed from current revealed count, not accumulated
	// deltas, so a manual reveal between sessions does not overshoot.
	rnd := rand.New(rand.NewPCG(3, 4))
	p := newTestProject(t, 10, 10)

	p.CompleteSession(10, rnd)
	assert.Len(t, p.Revealed, 10)

	p.Reveal(5, rnd) // manual drift
	p.CompleteSession(10, rnd)
	assert.Len(t, p.Revealed, 25)
	assert.Equal(t, 25, p.Progress)
}

func TestProjectGobRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 4))
	p := newTestProject(t, 10, 10)
	p.Reveal(13, rnd)

	b, err := p.Bytes()
	assert.NoError(t, err)

	got, err := DecodeProject(b)
	assert.NoError(t, err)
	assert.Equal(t, p, got)
}
