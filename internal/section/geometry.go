package section

import (
	"log/slog"
	"math"
)

// Geometry is a set of contours making up a cross-section.
// Solid contours add material and hollow contours remove it.
type Geometry struct {
	Contours []Contour
}

// NewGeometry creates a geometry from contours.
func NewGeometry(contours ...Contour) *Geometry {
	return &Geometry{Contours: contours}
}

// Polygons discretizes every contour without any hollow reduction.
func (g *Geometry) Polygons(resolution int) []Polygon {
	polys := make([]Polygon, 0, len(g.Contours))
	for _, c := range g.Contours {
		polys = append(polys, Polygon{Points: c.Discretize(resolution), Hollow: c.Hollow})
	}
	return polys
}

// ReduceHollows clips every hollow contour against every solid contour.
// The result holds all solids followed by the clipped hole fragments. A
// fragment is kept only if it has at least three vertices and a non-zero
// area, so holes that do not overlap any material disappear.
func (g *Geometry) ReduceHollows(resolution int) []Polygon {
	return reduceHollows(g.Polygons(resolution))
}

func reduceHollows(polys []Polygon) []Polygon {
	var solids, hollows []Polygon
	for _, p := range polys {
		if p.Hollow {
			hollows = append(hollows, p)
		} else {
			solids = append(solids, p)
		}
	}

	reduced := make([]Polygon, 0, len(solids)+len(hollows))
	reduced = append(reduced, solids...)

	for i, h := range hollows {
		kept := 0
		for _, s := range solids {
			clipped := ClipPolygon(h.Points, s.Points)
			if len(clipped) >= 3 && math.Abs(SignedArea(clipped)) > areaTolerance {
				reduced = append(reduced, Polygon{Points: clipped, Hollow: true})
				kept++
			}
		}
		if kept == 0 {
			slog.Debug("hollow contour does not overlap any solid", "contour", i)
		}
	}

	return reduced
}

// Bounds returns the bounding box of all contour vertices.
func (g *Geometry) Bounds(resolution int) (minPt, maxPt Point, ok bool) {
	return polygonBounds(g.Polygons(resolution))
}

func polygonBounds(polys []Polygon) (minPt, maxPt Point, ok bool) {
	minPt = Point{Y: math.Inf(1), Z: math.Inf(1)}
	maxPt = Point{Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range polys {
		for _, v := range p.Points {
			minPt.Y = math.Min(minPt.Y, v.Y)
			minPt.Z = math.Min(minPt.Z, v.Z)
			maxPt.Y = math.Max(maxPt.Y, v.Y)
			maxPt.Z = math.Max(maxPt.Z, v.Z)
			ok = true
		}
	}
	if !ok {
		return Point{}, Point{}, false
	}
	return minPt, maxPt, true
}
