package section

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// PlasticModuli estimates the plastic section moduli from the grid mask.
// Each plastic neutral axis is taken at the median masked-cell coordinate,
// which splits the cell count (and so approximately the area) in half.
// Both values are zero for an empty mask.
func PlasticModuli(g *Grid) (zplY, zplZ float64) {
	cells := g.maskedCells()
	if len(cells) == 0 {
		return 0, 0
	}

	ys := make([]float64, len(cells))
	zs := make([]float64, len(cells))
	for i, cell := range cells {
		ys[i] = g.Y[cell.r]
		zs[i] = g.Z[cell.c]
	}

	dA := g.CellArea()
	zplZ = firstMomentAboutMedian(ys) * dA
	zplY = firstMomentAboutMedian(zs) * dA
	return zplY, zplZ
}

// firstMomentAboutMedian returns Σ|v - median|. values is reordered.
func firstMomentAboutMedian(values []float64) float64 {
	sort.Float64s(values)
	pna := values[len(values)/2]
	floats.AddConst(-pna, values)
	return floats.Norm(values, 1)
}
