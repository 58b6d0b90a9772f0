package section

import "math"

const (
	// closedTolerance is the per-axis tolerance used by IsClosed.
	closedTolerance = 1e-4

	// duplicateTolerance is the per-axis tolerance used by Discretize to
	// drop a repeated closing point. It is deliberately tighter than
	// closedTolerance; end points that differ by an amount between the
	// two are reported as closed but are both kept when discretized.
	duplicateTolerance = 1e-9
)

// Contour is an ordered chain of segments. Consecutive segments are
// expected to share end points exactly. A hollow contour removes material.
type Contour struct {
	Segments []Segment
	Hollow   bool
}

// ContourFromPoints builds a closed polygon of lines through points,
// wrapping from the last point back to the first.
func ContourFromPoints(points []Point, hollow bool) Contour {
	c := Contour{Hollow: hollow}
	if len(points) < 2 {
		return c
	}
	c.Segments = make([]Segment, len(points))
	for i, p := range points {
		c.Segments[i] = Line{P0: p, P1: points[(i+1)%len(points)]}
	}
	return c
}

// Start returns the start point of the first segment.
func (c Contour) Start() Point {
	if len(c.Segments) == 0 {
		return Point{}
	}
	return c.Segments[0].Start()
}

// IsClosed reports whether the last segment ends where the first begins.
func (c Contour) IsClosed() bool {
	if len(c.Segments) == 0 {
		return false
	}
	first := c.Segments[0].Start()
	last := c.Segments[len(c.Segments)-1].End()
	return first.Near(last, closedTolerance)
}

// Length returns the sum of the segment lengths.
func (c Contour) Length() float64 {
	var total float64
	for _, s := range c.Segments {
		total += s.Length()
	}
	return total
}

// Discretize concatenates the discretized segments. The first point of
// every segment after the first is dropped since it repeats the previous
// segment's last point, and a trailing point equal to the first is removed.
func (c Contour) Discretize(resolution int) []Point {
	var pts []Point
	for i, s := range c.Segments {
		seg := s.Discretize(resolution)
		if i > 0 && len(seg) > 1 {
			seg = seg[1:]
		}
		pts = append(pts, seg...)
	}

	if len(pts) > 1 && pts[0].Near(pts[len(pts)-1], duplicateTolerance) {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// DiscretizeUniform resamples the contour to exactly count points spaced
// equally by arc length over the whole contour. The first point is the
// contour start. Open contours include the end point; closed contours do
// not repeat the start point.
func (c Contour) DiscretizeUniform(count int) []Point {
	if count <= 0 || len(c.Segments) == 0 {
		return nil
	}

	pts := make([]Point, 0, count)
	pts = append(pts, c.Segments[0].Start())
	if count == 1 {
		return pts
	}

	lengths := make([]float64, len(c.Segments))
	var total float64
	for i, s := range c.Segments {
		lengths[i] = s.Length()
		total += lengths[i]
	}

	if total <= 0 {
		for len(pts) < count {
			pts = append(pts, pts[0])
		}
		return pts
	}

	step := total / float64(count-1)
	if c.IsClosed() {
		step = total / float64(count)
	}

	// Targets increase monotonically, so the owning segment only moves forward.
	seg := 0
	var accumulated float64
	last := len(c.Segments) - 1
	for i := 1; i < count; i++ {
		target := float64(i) * step
		for seg < last && target > accumulated+lengths[seg] {
			accumulated += lengths[seg]
			seg++
		}

		var t float64
		if lengths[seg] > 0 {
			t = (target - accumulated) / lengths[seg]
		}
		t = math.Max(0, math.Min(1, t))
		pts = append(pts, c.Segments[seg].PointAt(t))
	}
	return pts
}
