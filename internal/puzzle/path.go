package puzzle

import (
	"fmt"
	"strings"
)

type PathOp uint8

const (
	OpMoveTo PathOp = iota
	OpLineTo
	OpCubicTo
	OpClose
)

type Point struct {
	X, Y float64
}

// PathCmd is one drawing command. LineTo and MoveTo use Pts[0]; CubicTo uses
// Pts[0] and Pts[1] as control points and Pts[2] as the end point.
type PathCmd struct {
	Op  PathOp
	Pts [3]Point
}

// Path is a vector outline as an ordered command stream.
type Path []PathCmd

func (p *Path) MoveTo(pt Point) {
	*p = append(*p, PathCmd{Op: OpMoveTo, Pts: [3]Point{pt}})
}

func (p *Path) LineTo(pt Point) {
	*p = append(*p, PathCmd{Op: OpLineTo, Pts: [3]Point{pt}})
}

func (p *Path) CubicTo(c1, c2, end Point) {
	*p = append(*p, PathCmd{Op: OpCubicTo, Pts: [3]Point{c1, c2, end}})
}

func (p *Path) Close() {
	*p = append(*p, PathCmd{Op: OpClose})
}

// Start returns the initial point of the path.
func (p Path) Start() (Point, bool) {
	if len(p) == 0 || p[0].Op != OpMoveTo {
		return Point{}, false
	}
	return p[0].Pts[0], true
}

// End returns the last explicit point before a trailing Close.
func (p Path) End() (Point, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		switch p[i].Op {
		case OpClose:
			continue
		case OpCubicTo:
			return p[i].Pts[2], true
		default:
			return p[i].Pts[0], true
		}
	}
	return Point{}, false
}

// Closed reports whether the path ends with a Close command and its last
// explicit point coincides with its start.
func (p Path) Closed() bool {
	if len(p) == 0 || p[len(p)-1].Op != OpClose {
		return false
	}
	start, ok := p.Start()
	if !ok {
		return false
	}
	end, ok := p.End()
	return ok && start == end
}

// SVG renders the path as an SVG path data string.
func (p Path) SVG() string {
	var b strings.Builder
	for i, cmd := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch cmd.Op {
		case OpMoveTo:
			fmt.Fprintf(&b, "M %s %s", ftoa(cmd.Pts[0].X), ftoa(cmd.Pts[0].Y))
		case OpLineTo:
			fmt.Fprintf(&b, "L %s %s", ftoa(cmd.Pts[0].X), ftoa(cmd.Pts[0].Y))
		case OpCubicTo:
			fmt.Fprintf(&b, "C %s %s %s %s %s %s",
				ftoa(cmd.Pts[0].X), ftoa(cmd.Pts[0].Y),
				ftoa(cmd.Pts[1].X), ftoa(cmd.Pts[1].Y),
				ftoa(cmd.Pts[2].X), ftoa(cmd.Pts[2].Y),
			)
		case OpClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func ftoa(f float64) string {
	s := fmt.Sprintf("%.3f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
