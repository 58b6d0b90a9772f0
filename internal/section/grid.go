package section

import "math"

// DefaultGridResolution is the number of grid steps across the larger padded dimension.
const DefaultGridResolution = 100

// Grid is a uniform raster over the section's padded bounding box.
// Cell (r, c) sits at (Y[r], Z[c]). Mask is row-major and true for
// cells inside material.
type Grid struct {
	Y    []float64
	Z    []float64
	H    float64
	Mask []bool
}

// Rows returns the number of grid rows (y direction).
func (g *Grid) Rows() int { return len(g.Y) }

// Cols returns the number of grid columns (z direction).
func (g *Grid) Cols() int { return len(g.Z) }

// Index returns the offset of cell (r, c) in row-major storage.
func (g *Grid) Index(r, c int) int { return r*len(g.Z) + c }

// Inside reports whether (r, c) is within the grid and masked.
func (g *Grid) Inside(r, c int) bool {
	if r < 0 || c < 0 || r >= len(g.Y) || c >= len(g.Z) {
		return false
	}
	return g.Mask[g.Index(r, c)]
}

// Count returns the number of masked cells.
func (g *Grid) Count() int {
	n := 0
	for _, m := range g.Mask {
		if m {
			n++
		}
	}
	return n
}

// CellArea returns H².
func (g *Grid) CellArea() float64 { return g.H * g.H }

// NewGrid rasterizes polygons onto a uniform grid. The bounding box of
// all vertices is padded by 10% of its larger dimension (1.0 when the box
// is degenerate) and split so the larger padded side spans resolution
// steps. A cell is masked when it lies inside some solid polygon and
// inside no hollow one.
func NewGrid(polys []Polygon, resolution int) *Grid {
	if resolution <= 0 {
		resolution = DefaultGridResolution
	}

	minPt, maxPt, ok := polygonBounds(polys)
	if !ok {
		return &Grid{H: 0}
	}

	height := maxPt.Y - minPt.Y
	width := maxPt.Z - minPt.Z

	padding := math.Max(height, width) * 0.1
	if padding == 0 {
		padding = 1.0
	}

	y0 := minPt.Y - padding
	z0 := minPt.Z - padding
	h := (math.Max(height, width) + 2*padding) / float64(resolution)

	rows := gridSteps(height+2*padding, h)
	cols := gridSteps(width+2*padding, h)

	g := &Grid{
		Y:    make([]float64, rows),
		Z:    make([]float64, cols),
		H:    h,
		Mask: make([]bool, rows*cols),
	}
	for r := range g.Y {
		g.Y[r] = y0 + float64(r)*h
	}
	for c := range g.Z {
		g.Z[c] = z0 + float64(c)*h
	}

	for r, y := range g.Y {
		for c, z := range g.Z {
			p := Point{Y: y, Z: z}
			solid, hole := false, false
			for _, poly := range polys {
				if len(poly.Points) < 3 {
					continue
				}
				if poly.Hollow {
					if !hole && PointInPolygon(p, poly.Points) {
						hole = true
					}
				} else if !solid && PointInPolygon(p, poly.Points) {
					solid = true
				}
			}
			g.Mask[g.Index(r, c)] = solid && !hole
		}
	}

	return g
}

// gridSteps returns how many whole steps of h fit in span. The small
// epsilon keeps an exact multiple from losing a step to rounding.
func gridSteps(span, h float64) int {
	return max(int(math.Floor(span/h+1e-9)), 1)
}
