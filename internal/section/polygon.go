package section

import "math"

// Polygon is a closed, discretized boundary. The last point connects back
// to the first implicitly.
type Polygon struct {
	Points []Point
	Hollow bool
}

// Sign returns -1 for hollow polygons and +1 for solid ones.
func (p Polygon) Sign() float64 {
	if p.Hollow {
		return -1
	}
	return 1
}

// SignedArea returns the shoelace area; positive for counter-clockwise
// vertex order with y as the first axis and z as the second.
func SignedArea(points []Point) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += points[i].Y*points[j].Z - points[j].Y*points[i].Z
	}
	return area / 2
}

// ClipPolygon clips subject against clip using the Sutherland-Hodgman
// algorithm. clip is reoriented to counter-clockwise first. Results are
// only exact when clip is convex.
func ClipPolygon(subject, clip []Point) []Point {
	if len(subject) == 0 || len(clip) < 3 {
		return nil
	}

	edges := clip
	if SignedArea(clip) < 0 {
		edges = make([]Point, len(clip))
		for i, p := range clip {
			edges[len(clip)-1-i] = p
		}
	}

	output := make([]Point, len(subject))
	copy(output, subject)

	for i := range edges {
		if len(output) == 0 {
			return nil
		}
		edgeStart := edges[i]
		edgeEnd := edges[(i+1)%len(edges)]
		output = clipPolygonByEdge(output, edgeStart, edgeEnd)
	}
	return output
}

// clipPolygonByEdge keeps the part of polygon on the left of the directed edge.
func clipPolygonByEdge(polygon []Point, edgeStart, edgeEnd Point) []Point {
	var clipped []Point

	for i := range polygon {
		current := polygon[i]
		next := polygon[(i+1)%len(polygon)]

		currentInside := isInsideEdge(current, edgeStart, edgeEnd)
		nextInside := isInsideEdge(next, edgeStart, edgeEnd)

		if currentInside {
			clipped = append(clipped, current)
			if !nextInside {
				// Exiting
				if p, ok := lineIntersection(current, next, edgeStart, edgeEnd); ok {
					clipped = append(clipped, p)
				}
			}
		} else if nextInside {
			// Entering
			if p, ok := lineIntersection(current, next, edgeStart, edgeEnd); ok {
				clipped = append(clipped, p)
			}
		}
	}

	return clipped
}

// isInsideEdge reports whether p lies on or to the left of the directed edge.
func isInsideEdge(p, edgeStart, edgeEnd Point) bool {
	return (edgeEnd.Y-edgeStart.Y)*(p.Z-edgeStart.Z)-
		(edgeEnd.Z-edgeStart.Z)*(p.Y-edgeStart.Y) >= 0
}

// lineIntersection intersects the line through p1-p2 with the line through e1-e2.
func lineIntersection(p1, p2, e1, e2 Point) (Point, bool) {
	denom := (p1.Y-p2.Y)*(e1.Z-e2.Z) - (p1.Z-p2.Z)*(e1.Y-e2.Y)
	if math.Abs(denom) < 1e-12 {
		// Parallel
		return Point{}, false
	}

	t := ((p1.Y-e1.Y)*(e1.Z-e2.Z) - (p1.Z-e1.Z)*(e1.Y-e2.Y)) / denom

	return Point{
		Y: p1.Y + t*(p2.Y-p1.Y),
		Z: p1.Z + t*(p2.Z-p1.Z),
	}, true
}

// PointInPolygon tests whether p lies inside polygon using ray casting along +z.
func PointInPolygon(p Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.Z < (pj.Z-pi.Z)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.Z {
			inside = !inside
		}
	}
	return inside
}
