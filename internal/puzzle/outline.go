package puzzle

import "math"

// Tab proportions, relative to the smaller cell dimension. The neck is where
// the outline leaves the straight edge; the control offset shapes the bulb.
const (
	tabDepthRatio = 0.23
	neckRatio     = 0.4
	ctrlRatio     = 0.6
)

// BuildOutline constructs the closed outline of a single piece in cell-local
// coordinates, starting and ending at the top-left corner. Each sign is 0
// (flat), +1 (tab protrudes out of this cell) or -1 (tab recesses into it).
// Sides are emitted top, right, bottom, left, traversed clockwise with y
// pointing down.
func BuildOutline(width, height float64, top, right, bottom, left int8) Path {
	m := math.Min(width, height)
	if m <= 0 {
		// degenerate cell, no room for a tab
		top, right, bottom, left = 0, 0, 0, 0
	}
	depth := tabDepthRatio * m
	neck := neckRatio * depth
	ctrl := ctrlRatio * depth

	var (
		p  Path
		tl = Point{0, 0}
		tr = Point{width, 0}
		br = Point{width, height}
		bl = Point{0, height}
	)
	p.MoveTo(tl)
	outlineSide(&p, tl, tr, top, depth, neck, ctrl)
	outlineSide(&p, tr, br, right, depth, neck, ctrl)
	outlineSide(&p, br, bl, bottom, depth, neck, ctrl)
	outlineSide(&p, bl, tl, left, depth, neck, ctrl)
	p.Close()
	return p
}

// outlineSide appends one side of the outline, from the current point (at
// `from`) to `to`. A flat side is a straight segment. A signed side departs
// at the neck points around the edge midpoint and bulges through a rounded
// tab via two cubic Beziers, displaced toward the outward normal for +1 and
// the inward normal for -1. The peak sits a full tab depth off the edge
// line; ctrl only places the Bezier handles above the neck points.
func outlineSide(p *Path, from, to Point, sign int8, depth, neck, ctrl float64) {
	if sign == 0 {
		p.LineTo(to)
		return
	}

	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	ux, uy := dx/l, dy/l
	// outward normal of a clockwise traversal (screen coordinates)
	nx, ny := uy*float64(sign), -ux*float64(sign)

	mx, my := from.X+dx/2, from.Y+dy/2
	a := Point{mx - ux*neck, my - uy*neck}    // neck, near side
	b := Point{mx + ux*neck, my + uy*neck}    // neck, far side
	peak := Point{mx + nx*depth, my + ny*depth}

	p.LineTo(a)
	p.CubicTo(
		Point{a.X + nx*ctrl, a.Y + ny*ctrl},
		Point{peak.X - ux*depth, peak.Y - uy*depth},
		peak,
	)
	p.CubicTo(
		Point{peak.X + ux*depth, peak.Y + uy*depth},
		Point{b.X + nx*ctrl, b.Y + ny*ctrl},
		b,
	)
	p.LineTo(to)
}

// CellOutline builds the outline for cell (r, c) of a project, deriving the
// four displayed signs from the shared edge arrays.
func (p Project) CellOutline(r, c int, cellWidth, cellHeight float64) Path {
	top, right, bottom, left := p.Edges.Signs(r, c)
	return BuildOutline(cellWidth, cellHeight, top, right, bottom, left)
}
