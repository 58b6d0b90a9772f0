package section

import "math"

// Point represents a coordinate in the section plane.
// The section is defined in a local coordinate system where:
// - Y-axis points upward
// - Z-axis points to the right
// Arc angles are measured from +Z toward +Y.
type Point struct {
	Y float64
	Z float64
}

// Pt is shorthand for Point{Y: y, Z: z}.
func Pt(y, z float64) Point {
	return Point{Y: y, Z: z}
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(other.Y-p.Y, other.Z-p.Z)
}

// Lerp interpolates linearly between p and other. The weighted form
// returns p exactly at t = 0 and other exactly at t = 1.
func (p Point) Lerp(other Point, t float64) Point {
	return Point{
		Y: p.Y*(1-t) + other.Y*t,
		Z: p.Z*(1-t) + other.Z*t,
	}
}

// Near reports whether both coordinates of p and other differ by less than tol.
func (p Point) Near(other Point, tol float64) bool {
	return math.Abs(p.Y-other.Y) < tol && math.Abs(p.Z-other.Z) < tol
}

// Properties holds calculated section properties.
// All second moments are about centroidal axes.
type Properties struct {
	// Area and centroid
	A  float64 // Area
	Cy float64 // Centroid y
	Cz float64 // Centroid z

	// Second moments of area
	Iy  float64 // About the y-axis (integral of z² dA)
	Iz  float64 // About the z-axis (integral of y² dA)
	Iyz float64 // Product of inertia

	// Torsion
	J float64 // St. Venant torsion constant

	// Elastic section moduli
	Sy float64 // Iy / ZMax
	Sz float64 // Iz / YMax

	// Radii of gyration
	Ry float64
	Rz float64

	// Extreme fibre distances from the centroid
	YMax float64
	ZMax float64

	// Plastic section moduli
	ZplY float64 // About the y-axis
	ZplZ float64 // About the z-axis

	// Warping
	Cw float64 // Warping constant

	// Shear center
	SCy float64
	SCz float64
}

// IsDegenerate reports whether the properties describe no material at all.
func (p Properties) IsDegenerate() bool {
	return math.Abs(p.A) < areaTolerance
}
