// Package library builds common structural shapes as native curve
// geometry. Every shape is centred on the origin in the (y up, z right)
// frame, with b measured along z and d or h measured along y.
package library

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gosection/internal/section"
)

// radiusTolerance is the radius below which corners are drawn sharp.
const radiusTolerance = 1e-9

// DimensionError reports a dimension set that cannot form the shape.
type DimensionError struct {
	Shape string
	Msg   string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Shape, e.Msg)
}

// Shape is a generated section with the dimensions it was built from.
type Shape struct {
	Name       string
	Dimensions map[string]float64
	Geometry   *section.Geometry
}

func positive(shape string, dims map[string]float64, names ...string) error {
	for _, n := range names {
		if v := dims[n]; !(v > 0) || math.IsInf(v, 0) {
			return &DimensionError{Shape: shape, Msg: fmt.Sprintf("%s must be positive, got %g", n, v)}
		}
	}
	return nil
}

func nonNegative(shape, name string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return &DimensionError{Shape: shape, Msg: fmt.Sprintf("%s must not be negative, got %g", name, v)}
	}
	return nil
}

// Rectangle returns a solid b x h rectangle.
func Rectangle(b, h float64) (*Shape, error) {
	dims := map[string]float64{"b": b, "h": h}
	if err := positive("rectangle", dims, "b", "h"); err != nil {
		return nil, err
	}
	c := roundedRectangle(b, h, 0, false)
	return &Shape{
		Name:       fmt.Sprintf("Rectangle %gx%g", b, h),
		Dimensions: dims,
		Geometry:   section.NewGeometry(c),
	}, nil
}

// Circle returns a solid circle of diameter d drawn as one full arc.
func Circle(d float64) (*Shape, error) {
	dims := map[string]float64{"d": d}
	if err := positive("circle", dims, "d"); err != nil {
		return nil, err
	}
	return &Shape{
		Name:       fmt.Sprintf("Circle %g", d),
		Dimensions: dims,
		Geometry:   section.NewGeometry(circle(d/2, false)),
	}, nil
}

// CHS returns a circular hollow section of outer diameter d and wall t.
// A wall of d/2 gives a solid bar.
func CHS(d, t float64) (*Shape, error) {
	dims := map[string]float64{"d": d, "t": t}
	if err := positive("CHS", dims, "d", "t"); err != nil {
		return nil, err
	}
	if t > d/2 {
		return nil, &DimensionError{Shape: "CHS", Msg: fmt.Sprintf("wall thickness %g exceeds radius %g", t, d/2)}
	}

	geom := section.NewGeometry(circle(d/2, false))
	if inner := d/2 - t; inner > radiusTolerance {
		geom.Contours = append(geom.Contours, circle(inner, true))
	}
	return &Shape{
		Name:       fmt.Sprintf("CHS %gx%g", d, t),
		Dimensions: dims,
		Geometry:   geom,
	}, nil
}

// RHS returns a rectangular hollow section with outer corner radius r.
// The inner corner radius is r-t, or sharp when t >= r.
func RHS(b, h, t, r float64) (*Shape, error) {
	dims := map[string]float64{"b": b, "h": h, "t": t, "r": r}
	if err := positive("RHS", dims, "b", "h", "t"); err != nil {
		return nil, err
	}
	if err := nonNegative("RHS", "r", r); err != nil {
		return nil, err
	}
	if t >= b/2 || t >= h/2 {
		return nil, &DimensionError{Shape: "RHS", Msg: fmt.Sprintf("wall thickness %g too large for %gx%g", t, b, h)}
	}
	if r > math.Min(b, h)/2 {
		return nil, &DimensionError{Shape: "RHS", Msg: fmt.Sprintf("corner radius %g exceeds half the smaller side", r)}
	}

	ri := math.Max(0, r-t)
	geom := section.NewGeometry(
		roundedRectangle(b, h, r, false),
		roundedRectangle(b-2*t, h-2*t, ri, true),
	)
	return &Shape{
		Name:       fmt.Sprintf("RHS %gx%gx%g", b, h, t),
		Dimensions: dims,
		Geometry:   geom,
	}, nil
}

// I returns a doubly symmetric I section of depth d and flange width b,
// with root fillets of radius r between web and flanges.
func I(d, b, tf, tw, r float64) (*Shape, error) {
	dims := map[string]float64{"d": d, "b": b, "tf": tf, "tw": tw, "r": r}
	if err := positive("I", dims, "d", "b", "tf", "tw"); err != nil {
		return nil, err
	}
	if err := nonNegative("I", "r", r); err != nil {
		return nil, err
	}
	if 2*(tf+r) >= d {
		return nil, &DimensionError{Shape: "I", Msg: fmt.Sprintf("flanges and fillets do not fit in depth %g", d)}
	}
	if tw+2*r > b {
		return nil, &DimensionError{Shape: "I", Msg: fmt.Sprintf("web and fillets do not fit in width %g", b)}
	}

	hd, hb, htw := d/2, b/2, tw/2
	yf := hd - tf // inner face of the top flange

	var segs []section.Segment
	add := func(s ...section.Segment) { segs = append(segs, s...) }
	line := func(y0, z0, y1, z1 float64) section.Line {
		return section.Line{P0: section.Pt(y0, z0), P1: section.Pt(y1, z1)}
	}

	// Counter-clockwise from the top right corner.
	add(line(hd, hb, hd, -hb), line(hd, -hb, yf, -hb))
	if r > radiusTolerance {
		add(
			line(yf, -hb, yf, -htw-r),
			section.Arc{Center: section.Pt(yf-r, -htw-r), Radius: r, StartAngle: math.Pi / 2, EndAngle: 0},
			line(yf-r, -htw, -yf+r, -htw),
			section.Arc{Center: section.Pt(-yf+r, -htw-r), Radius: r, StartAngle: 0, EndAngle: -math.Pi / 2},
			line(-yf, -htw-r, -yf, -hb),
		)
	} else {
		add(line(yf, -hb, yf, -htw), line(yf, -htw, -yf, -htw), line(-yf, -htw, -yf, -hb))
	}
	add(line(-yf, -hb, -hd, -hb), line(-hd, -hb, -hd, hb), line(-hd, hb, -yf, hb))
	if r > radiusTolerance {
		add(
			line(-yf, hb, -yf, htw+r),
			section.Arc{Center: section.Pt(-yf+r, htw+r), Radius: r, StartAngle: 3 * math.Pi / 2, EndAngle: math.Pi},
			line(-yf+r, htw, yf-r, htw),
			section.Arc{Center: section.Pt(yf-r, htw+r), Radius: r, StartAngle: math.Pi, EndAngle: math.Pi / 2},
			line(yf, htw+r, yf, hb),
		)
	} else {
		add(line(-yf, hb, -yf, htw), line(-yf, htw, yf, htw), line(yf, htw, yf, hb))
	}
	add(line(yf, hb, hd, hb))

	return &Shape{
		Name:       fmt.Sprintf("I %gx%g", d, b),
		Dimensions: dims,
		Geometry:   section.NewGeometry(section.Contour{Segments: segs}),
	}, nil
}

// U returns a channel of width b and height h with the web on the left
// and the flanges pointing toward +z. r is the outside corner radius; the
// inside corners use r-tw, or sharp when tw >= r.
func U(b, h, tw, tf, r float64) (*Shape, error) {
	dims := map[string]float64{"b": b, "h": h, "tw": tw, "tf": tf, "r": r}
	if err := positive("U", dims, "b", "h", "tw", "tf"); err != nil {
		return nil, err
	}
	if err := nonNegative("U", "r", r); err != nil {
		return nil, err
	}
	if 2*tf >= h || tw >= b {
		return nil, &DimensionError{Shape: "U", Msg: fmt.Sprintf("flanges or web too thick for %gx%g", b, h)}
	}
	ri := math.Max(0, r-tw)
	if r > b || 2*r > h || tf+ri > h/2 || tw+ri > b {
		return nil, &DimensionError{Shape: "U", Msg: fmt.Sprintf("corner radius %g does not fit", r)}
	}

	hh, hb := h/2, b/2
	yf := hh - tf  // inner face of the top flange
	zw := -hb + tw // inner face of the web

	var segs []section.Segment
	add := func(s ...section.Segment) { segs = append(segs, s...) }
	line := func(y0, z0, y1, z1 float64) section.Line {
		return section.Line{P0: section.Pt(y0, z0), P1: section.Pt(y1, z1)}
	}

	// Counter-clockwise from the top right tip.
	if r > radiusTolerance {
		add(
			line(hh, hb, hh, -hb+r),
			section.Arc{Center: section.Pt(hh-r, -hb+r), Radius: r, StartAngle: math.Pi / 2, EndAngle: math.Pi},
			line(hh-r, -hb, -hh+r, -hb),
			section.Arc{Center: section.Pt(-hh+r, -hb+r), Radius: r, StartAngle: math.Pi, EndAngle: 3 * math.Pi / 2},
			line(-hh, -hb+r, -hh, hb),
		)
	} else {
		add(line(hh, hb, hh, -hb), line(hh, -hb, -hh, -hb), line(-hh, -hb, -hh, hb))
	}
	add(line(-hh, hb, -yf, hb))
	if ri > radiusTolerance {
		add(
			line(-yf, hb, -yf, zw+ri),
			section.Arc{Center: section.Pt(-yf+ri, zw+ri), Radius: ri, StartAngle: 3 * math.Pi / 2, EndAngle: math.Pi},
			line(-yf+ri, zw, yf-ri, zw),
			section.Arc{Center: section.Pt(yf-ri, zw+ri), Radius: ri, StartAngle: math.Pi, EndAngle: math.Pi / 2},
			line(yf, zw+ri, yf, hb),
		)
	} else {
		add(line(-yf, hb, -yf, zw), line(-yf, zw, yf, zw), line(yf, zw, yf, hb))
	}
	add(line(yf, hb, hh, hb))

	return &Shape{
		Name:       fmt.Sprintf("U %gx%gx%gx%g", b, h, tw, tf),
		Dimensions: dims,
		Geometry:   section.NewGeometry(section.Contour{Segments: segs}),
	}, nil
}

func circle(radius float64, hollow bool) section.Contour {
	arc := section.Arc{Radius: radius, StartAngle: 0, EndAngle: 2 * math.Pi}
	return section.Contour{Segments: []section.Segment{arc}, Hollow: hollow}
}

// roundedRectangle traces a b x h rectangle counter-clockwise from the
// bottom of its right edge, with corner arcs of radius r.
func roundedRectangle(b, h, r float64, hollow bool) section.Contour {
	hb, hh := b/2, h/2
	if r <= radiusTolerance {
		pts := []section.Point{
			section.Pt(-hh, hb), section.Pt(hh, hb), section.Pt(hh, -hb), section.Pt(-hh, -hb),
		}
		return section.ContourFromPoints(pts, hollow)
	}

	cy, cz := hh-r, hb-r
	segs := []section.Segment{
		section.Line{P0: section.Pt(-cy, hb), P1: section.Pt(cy, hb)},
		section.Arc{Center: section.Pt(cy, cz), Radius: r, StartAngle: 0, EndAngle: math.Pi / 2},
		section.Line{P0: section.Pt(hh, cz), P1: section.Pt(hh, -cz)},
		section.Arc{Center: section.Pt(cy, -cz), Radius: r, StartAngle: math.Pi / 2, EndAngle: math.Pi},
		section.Line{P0: section.Pt(cy, -hb), P1: section.Pt(-cy, -hb)},
		section.Arc{Center: section.Pt(-cy, -cz), Radius: r, StartAngle: math.Pi, EndAngle: 3 * math.Pi / 2},
		section.Line{P0: section.Pt(-hh, -cz), P1: section.Pt(-hh, cz)},
		section.Arc{Center: section.Pt(-cy, cz), Radius: r, StartAngle: 3 * math.Pi / 2, EndAngle: 2 * math.Pi},
	}
	return section.Contour{Segments: segs, Hollow: hollow}
}
