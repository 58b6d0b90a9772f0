package section

import "math"

const (
	// areaTolerance is the area below which a section or fragment counts as empty.
	areaTolerance = 1e-9

	// fibreTolerance is the extreme fibre distance below which moduli are zeroed.
	fibreTolerance = 1e-9
)

// polygonIntegrals holds boundary integrals of one closed polygon about the origin.
type polygonIntegrals struct {
	a   float64 // ∫ dA
	qz  float64 // ∫ y dA
	qy  float64 // ∫ z dA
	izz float64 // ∫ y² dA
	iyy float64 // ∫ z² dA
	iyz float64 // ∫ yz dA
}

// integratePolygon evaluates the area integrals of a polygon through
// Green's theorem, one edge at a time. The result is normalized to a
// positive area regardless of vertex order.
func integratePolygon(points []Point) polygonIntegrals {
	var r polygonIntegrals
	n := len(points)
	for i := 0; i < n; i++ {
		p, q := points[i], points[(i+1)%n]
		cross := p.Y*q.Z - p.Z*q.Y

		r.a += cross
		r.qz += (p.Y + q.Y) * cross
		r.qy += (p.Z + q.Z) * cross
		r.izz += (p.Y*p.Y + p.Y*q.Y + q.Y*q.Y) * cross
		r.iyy += (p.Z*p.Z + p.Z*q.Z + q.Z*q.Z) * cross
		r.iyz += (p.Y*q.Z + 2*p.Y*p.Z + 2*q.Y*q.Z + q.Y*p.Z) * cross
	}

	r.a /= 2
	r.qz /= 6
	r.qy /= 6
	r.izz /= 12
	r.iyy /= 12
	r.iyz /= 24

	if r.a < 0 {
		r.a, r.qz, r.qy = -r.a, -r.qz, -r.qy
		r.izz, r.iyy, r.iyz = -r.izz, -r.iyy, -r.iyz
	}
	return r
}

// ExactProperties computes area, centroid, second moments, radii of
// gyration, extreme fibres and elastic moduli from the integration
// polygons. Hollow polygons subtract. Extreme fibres are measured over the
// vertices of raw, the unclipped contours, not the integration polygons.
// Grid based fields are left at zero.
func ExactProperties(polys []Polygon, raw []Polygon) Properties {
	var total polygonIntegrals
	for _, p := range polys {
		if len(p.Points) < 3 {
			continue
		}
		r := integratePolygon(p.Points)
		sign := p.Sign()
		total.a += sign * r.a
		total.qz += sign * r.qz
		total.qy += sign * r.qy
		total.izz += sign * r.izz
		total.iyy += sign * r.iyy
		total.iyz += sign * r.iyz
	}

	if math.Abs(total.a) < areaTolerance {
		return Properties{}
	}

	a := total.a
	props := Properties{
		A:  a,
		Cy: total.qz / a,
		Cz: total.qy / a,
	}

	// Parallel axis theorem to the centroid
	props.Iy = total.iyy - a*props.Cz*props.Cz
	props.Iz = total.izz - a*props.Cy*props.Cy
	props.Iyz = total.iyz - a*props.Cy*props.Cz

	props.Ry = radiusOfGyration(props.Iy, a)
	props.Rz = radiusOfGyration(props.Iz, a)

	for _, p := range raw {
		for _, v := range p.Points {
			props.YMax = math.Max(props.YMax, math.Abs(v.Y-props.Cy))
			props.ZMax = math.Max(props.ZMax, math.Abs(v.Z-props.Cz))
		}
	}

	if props.ZMax > fibreTolerance {
		props.Sy = props.Iy / props.ZMax
	}
	if props.YMax > fibreTolerance {
		props.Sz = props.Iz / props.YMax
	}

	return props
}

func radiusOfGyration(i, a float64) float64 {
	if a <= 0 || i <= 0 {
		return 0
	}
	return math.Sqrt(i / a)
}
