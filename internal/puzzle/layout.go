package puzzle

// LayoutMargin is subtracted from each container dimension before fitting.
const LayoutMargin = 24.0

// DefaultAspect is used when no image is associated or its ratio is unknown.
const DefaultAspect = 1.6

// Layout is the pixel geometry of a rendered grid: the largest stage that
// fits the container while preserving the image aspect ratio, and the
// per-cell offsets within it. Fractional cell sizes are expected.
type Layout struct {
	StageWidth  float64 `json:"stage_width"`
	StageHeight float64 `json:"stage_height"`
	CellWidth   float64 `json:"cell_width"`
	CellHeight  float64 `json:"cell_height"`
	Offsets     []Point `json:"offsets"` // row-major, top-left corner of each cell
}

// ComputeLayout fits a rows x cols grid into a container. Width is tried
// first; if the implied height overflows the usable area the layout becomes
// height-bound instead. Must be recomputed whenever the container resizes.
func ComputeLayout(containerWidth, containerHeight, aspect float64, rows, cols int) Layout {
	if aspect <= 0 {
		aspect = DefaultAspect
	}

	usableW := max(containerWidth-LayoutMargin, 0)
	usableH := max(containerHeight-LayoutMargin, 0)

	w := usableW
	h := w / aspect
	if h > usableH {
		h = usableH
		w = h * aspect
	}

	cellW := w / float64(cols)
	cellH := h / float64(rows)

	offsets := make([]Point, 0, rows*cols)
	for r := range rows {
		for c := range cols {
			offsets = append(offsets, Point{
				X: float64(c) * cellW,
				Y: float64(r) * cellH,
			})
		}
	}

	return Layout{
		StageWidth:  w,
		StageHeight: h,
		CellWidth:   cellW,
		CellHeight:  cellH,
		Offsets:     offsets,
	}
}
