package puzzle

import (
	"math"
	"math/rand/v2"
)

// Normalize migrates a legacy project to the fixed 10x10 grid, preserving its
// completion percentage but not which specific cells were revealed: the new
// revealed set is a uniformly random re-seed of the same size. No spatial
// meaning attaches to any particular cell index, so the identity loss is
// deliberate. Returns true if the project changed; a second run is a no-op.
// Must run before any reveal or layout operation touches a legacy project.
func (p *Project) Normalize(rnd *rand.Rand) bool {
	if p.Rows == NormalRows && p.Cols == NormalCols {
		return false
	}

	pct := float64(p.Progress)
	if pct < 0 || pct > 100 {
		if total := p.Total(); total > 0 {
			pct = 100 * float64(len(p.Revealed)) / float64(total)
		} else {
			pct = 0
		}
		pct = math.Min(math.Max(pct, 0), 100)
	}

	p.Rows, p.Cols = NormalRows, NormalCols
	p.Edges = GenerateEdges(p.Rows, p.Cols, rnd)

	n := int(math.Round(pct * float64(p.Total()) / 100))
	p.Revealed = append([]int{}, rnd.Perm(p.Total())[:n]...)
	p.recomputeProgress()
	return true
}
