package section

import "math"

// Segment is one piece of a contour boundary.
// The set of segment kinds is closed: Line, Arc and CubicBezier.
type Segment interface {
	Start() Point
	End() Point
	// Length returns the length of the segment. CubicBezier returns an approximation.
	Length() float64
	// PointAt evaluates the segment at parameter t in [0, 1].
	PointAt(t float64) Point
	// Discretize returns points along the segment including both end points.
	Discretize(resolution int) []Point

	segment()
}

const (
	// degenerateRadius is the radius below which an arc collapses to its center.
	degenerateRadius = 1e-9

	// bezierLengthSteps is the polyline subdivision used to approximate Bezier length.
	bezierLengthSteps = 32
)

// Line is a straight segment.
type Line struct {
	P0 Point
	P1 Point
}

func (Line) segment() {}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

// Length returns the Euclidean distance between the end points.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

func (l Line) PointAt(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Discretize returns resolution+1 equally spaced points.
func (l Line) Discretize(resolution int) []Point {
	if resolution < 1 {
		resolution = 1
	}
	pts := make([]Point, resolution+1)
	for i := range pts {
		pts[i] = l.PointAt(float64(i) / float64(resolution))
	}
	return pts
}

// Arc is a circular arc. A point at angle θ is
//
//	y = Center.Y + Radius·sin θ
//	z = Center.Z + Radius·cos θ
//
// so θ = 0 lies along +z and increasing θ sweeps toward +y.
// StartAngle may exceed EndAngle, which reverses the direction of travel.
type Arc struct {
	Center     Point
	Radius     float64
	StartAngle float64 // radians
	EndAngle   float64 // radians
}

func (Arc) segment() {}

// Sweep returns the signed angular span of the arc.
func (a Arc) Sweep() float64 {
	return a.EndAngle - a.StartAngle
}

func (a Arc) pointAtAngle(theta float64) Point {
	sin, cos := math.Sincos(theta)
	return Point{
		Y: a.Center.Y + a.Radius*sin,
		Z: a.Center.Z + a.Radius*cos,
	}
}

func (a Arc) Start() Point { return a.pointAtAngle(a.StartAngle) }
func (a Arc) End() Point   { return a.pointAtAngle(a.EndAngle) }

// Length returns Radius·|Δθ|.
func (a Arc) Length() float64 {
	return a.Radius * math.Abs(a.Sweep())
}

func (a Arc) PointAt(t float64) Point {
	return a.pointAtAngle(a.StartAngle + a.Sweep()*t)
}

// Discretize returns n+1 points at equal angular steps where
// n = max(2, floor(resolution·|Δθ|/2π)). An arc with a vanishing radius
// collapses to its center.
func (a Arc) Discretize(resolution int) []Point {
	if a.Radius <= degenerateRadius {
		return []Point{a.Center}
	}

	n := int(math.Floor(float64(resolution) * math.Abs(a.Sweep()) / (2 * math.Pi)))
	n = max(n, 2)

	pts := make([]Point, n+1)
	for i := range pts {
		pts[i] = a.PointAt(float64(i) / float64(n))
	}
	return pts
}

// ToBeziers approximates the arc with a chain of cubic Beziers, each
// spanning at most 90°. End points and end tangents match the arc exactly.
func (a Arc) ToBeziers() []CubicBezier {
	sweep := a.Sweep()
	if a.Radius <= degenerateRadius || sweep == 0 {
		return nil
	}

	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	n = max(n, 1)
	step := sweep / float64(n)
	// Signed, so reversed arcs get arms pointing the right way.
	k := (4.0 / 3.0) * math.Tan(step/4)

	out := make([]CubicBezier, 0, n)
	theta0 := a.StartAngle
	for i := 0; i < n; i++ {
		theta1 := theta0 + step
		p0 := a.pointAtAngle(theta0)
		p3 := a.pointAtAngle(theta1)
		// dP/dθ = r·(cos θ, -sin θ) in (y, z)
		t0 := Point{Y: math.Cos(theta0), Z: -math.Sin(theta0)}
		t1 := Point{Y: math.Cos(theta1), Z: -math.Sin(theta1)}
		out = append(out, CubicBezier{
			P0: p0,
			P1: Point{Y: p0.Y + k*a.Radius*t0.Y, Z: p0.Z + k*a.Radius*t0.Z},
			P2: Point{Y: p3.Y - k*a.Radius*t1.Y, Z: p3.Z - k*a.Radius*t1.Z},
			P3: p3,
		})
		theta0 = theta1
	}
	return out
}

// CubicBezier is a cubic Bezier curve with control points P0..P3.
type CubicBezier struct {
	P0, P1, P2, P3 Point
}

func (CubicBezier) segment() {}

func (c CubicBezier) Start() Point { return c.P0 }
func (c CubicBezier) End() Point   { return c.P3 }

// PointAt evaluates the curve with de Casteljau's algorithm.
func (c CubicBezier) PointAt(t float64) Point {
	a := c.P0.Lerp(c.P1, t)
	b := c.P1.Lerp(c.P2, t)
	d := c.P2.Lerp(c.P3, t)
	ab := a.Lerp(b, t)
	bd := b.Lerp(d, t)
	return ab.Lerp(bd, t)
}

// Length approximates the arc length by the length of a fixed
// 32-step polyline through the curve. It is not the exact arc length.
func (c CubicBezier) Length() float64 {
	var length float64
	prev := c.P0
	for i := 1; i <= bezierLengthSteps; i++ {
		p := c.PointAt(float64(i) / bezierLengthSteps)
		length += prev.Distance(p)
		prev = p
	}
	return length
}

// Discretize returns resolution+1 points at equally spaced parameter values.
func (c CubicBezier) Discretize(resolution int) []Point {
	if resolution < 1 {
		resolution = 1
	}
	pts := make([]Point, resolution+1)
	for i := range pts {
		pts[i] = c.PointAt(float64(i) / float64(resolution))
	}
	return pts
}
