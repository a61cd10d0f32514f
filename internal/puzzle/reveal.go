package puzzle

import (
	"math"
	"math/rand/v2"
)

// Reveal uncovers up to count previously hidden cells, chosen uniformly at
// random without replacement (full shuffle of the hidden indices, then a
// prefix). It returns the number of cells actually revealed, which is count
// clamped to the remaining hidden cells; a non-positive count is a no-op.
// Progress is recomputed after every change. Callers must serialize reveals
// against the same project.
func (p *Project) Reveal(count int, rnd *rand.Rand) int {
	if count <= 0 {
		return 0
	}

	hidden := p.hiddenIndices()
	n := min(count, len(hidden))
	if n == 0 {
		return 0
	}

	rnd.Shuffle(len(hidden), func(i, j int) {
		hidden[i], hidden[j] = hidden[j], hidden[i]
	})
	p.Revealed = append(p.Revealed, hidden[:n]...)
	p.recomputeProgress()
	return n
}

// CompleteSession applies the session-completion contract: bump progress by
// sessionPct percentage points, expressed as an absolute piece target so that
// repeated sessions converge monotonically regardless of manual reveal drift.
func (p *Project) CompleteSession(sessionPct float64, rnd *rand.Rand) int {
	pct := math.Min(math.Max(float64(p.Progress)+sessionPct, 0), 100)
	target := int(math.Round(pct * float64(p.Total()) / 100))
	need := target - len(p.Revealed)
	if need < 0 {
		need = 0
	}
	return p.Reveal(need, rnd)
}

func (p *Project) hiddenIndices() []int {
	revealed := make(map[int]bool, len(p.Revealed))
	for _, i := range p.Revealed {
		revealed[i] = true
	}
	hidden := make([]int, 0, p.Total()-len(p.Revealed))
	for i := range p.Total() {
		if !revealed[i] {
			hidden = append(hidden, i)
		}
	}
	return hidden
}

func (p *Project) recomputeProgress() {
	total := p.Total()
	if total == 0 {
		p.Progress = 0
		return
	}
	p.Progress = int(math.Round(100 * float64(len(p.Revealed)) / float64(total)))
}
