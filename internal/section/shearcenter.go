package section

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// symmetryTolerance scales A^1.5 into the third-moment symmetry threshold.
	symmetryTolerance = 1e-4

	// singularTolerance is the determinant below which the sectorial system is decoupled.
	singularTolerance = 1e-12
)

// ShearCenter estimates the shear center from the solid boundaries.
//
// Third moments ∫y³dA and ∫z³dA about the centroid detect symmetry: a
// vanishing moment pins the shear center to the centroid on that axis.
// Remaining axes use a sectorial coordinate ω accumulated along each solid
// boundary as the running cross product of centroid-relative radius
// vectors, normalized to zero mean over arc length.
func ShearCenter(props Properties, polys []Polygon) (scy, scz float64) {
	var solids []Polygon
	for _, p := range polys {
		if !p.Hollow && len(p.Points) >= 3 {
			solids = append(solids, p)
		}
	}
	if len(solids) == 0 {
		return props.Cy, props.Cz
	}

	var syyy, szzz float64
	for _, p := range solids {
		a, b := thirdMoments(p.Points, props.Cy, props.Cz)
		syyy += a
		szzz += b
	}

	charLength := 1.0
	if props.A > 0 {
		charLength = math.Sqrt(props.A)
	}
	tol := symmetryTolerance * charLength * charLength * charLength

	// Symmetric about the horizontal axis through the centroid
	zSymmetric := math.Abs(syyy) < tol
	// Symmetric about the vertical axis through the centroid
	ySymmetric := math.Abs(szzz) < tol

	if zSymmetric && ySymmetric {
		return props.Cy, props.Cz
	}

	ey, ez := sectorialOffsets(solids, props)
	slog.Debug("shear center offsets", "ey", ey, "ez", ez,
		"y_symmetric", ySymmetric, "z_symmetric", zSymmetric)

	scy, scz = props.Cy+ey, props.Cz+ez
	if zSymmetric {
		scy = props.Cy
	}
	if ySymmetric {
		scz = props.Cz
	}
	return scy, scz
}

// thirdMoments returns ∫y³dA and ∫z³dA about (cy, cz) for one polygon,
// normalized to counter-clockwise orientation.
func thirdMoments(points []Point, cy, cz float64) (syyy, szzz float64) {
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		yi, zi := points[i].Y-cy, points[i].Z-cz
		yj, zj := points[j].Y-cy, points[j].Z-cz

		cross := yi*zj - yj*zi
		syyy += (yi*yi*yi + yi*yi*yj + yi*yj*yj + yj*yj*yj) * cross
		szzz += (zi*zi*zi + zi*zi*zj + zi*zj*zj + zj*zj*zj) * cross
	}
	syyy /= 20
	szzz /= 20

	if SignedArea(points) < 0 {
		syyy, szzz = -syyy, -szzz
	}
	return syyy, szzz
}

// sectorialOffsets returns the centroid-relative shear center offsets
// (ey, ez) from the sectorial products of the solid boundaries.
func sectorialOffsets(solids []Polygon, props Properties) (ey, ez float64) {
	var iwy, iwz float64
	for _, p := range solids {
		a, b := sectorialProducts(p.Points, props.Cy, props.Cz)
		iwy += a
		iwz += b
	}

	det := props.Iy*props.Iz - props.Iyz*props.Iyz
	if math.Abs(det) > singularTolerance {
		// [Iz  Iyz] [-ey]   [Iωz]
		// [Iyz Iy ] [ ez] = [Iωy]
		m := mat.NewDense(2, 2, []float64{
			props.Iz, props.Iyz,
			props.Iyz, props.Iy,
		})
		rhs := mat.NewVecDense(2, []float64{iwz, iwy})

		var x mat.VecDense
		err := x.SolveVec(m, rhs)
		if err == nil {
			return -x.AtVec(0), x.AtVec(1)
		}
		slog.Debug("sectorial system solve failed, decoupling", "err", err)
	}

	if math.Abs(props.Iz) > singularTolerance {
		ey = -iwz / props.Iz
	}
	if math.Abs(props.Iy) > singularTolerance {
		ez = iwy / props.Iy
	}
	return ey, ez
}

// sectorialProducts walks one closed boundary and returns ∫ω·y ds and
// ∫ω·z ds with y, z relative to the centroid.
func sectorialProducts(points []Point, cy, cz float64) (iwy, iwz float64) {
	n := len(points)
	omega := make([]float64, n)
	ds := make([]float64, n)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		ds[i] = points[i].Distance(points[j])
		if j > 0 {
			ri := Point{Y: points[i].Y - cy, Z: points[i].Z - cz}
			rj := Point{Y: points[j].Y - cy, Z: points[j].Z - cz}
			omega[j] = omega[i] + ri.Y*rj.Z - ri.Z*rj.Y
		}
	}

	var perimeter, weighted float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		perimeter += ds[i]
		weighted += 0.5 * (omega[i] + omega[j]) * ds[i]
	}
	if perimeter > 1e-9 {
		mean := weighted / perimeter
		for i := range omega {
			omega[i] -= mean
		}
	}

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		w := 0.5 * (omega[i] + omega[j])
		y := 0.5*(points[i].Y+points[j].Y) - cy
		z := 0.5*(points[i].Z+points[j].Z) - cz
		iwy += w * y * ds[i]
		iwz += w * z * ds[i]
	}
	return iwy, iwz
}
