package section

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Neighbour order used by cellIndex.nb.
const (
	north = iota // +y
	south        // -y
	east         // +z
	west         // -z
)

// cellIndex is a masked grid cell with the compact indices of its four
// neighbours; -1 marks a neighbour outside the mask.
type cellIndex struct {
	r, c int
	nb   [4]int
}

// maskedCells lists masked cells in row-major order.
func (g *Grid) maskedCells() []cellIndex {
	compact := make([]int, len(g.Mask))
	n := 0
	for i, m := range g.Mask {
		compact[i] = -1
		if m {
			compact[i] = n
			n++
		}
	}

	lookup := func(r, c int) int {
		if !g.Inside(r, c) {
			return -1
		}
		return compact[g.Index(r, c)]
	}

	cells := make([]cellIndex, 0, n)
	for r := range g.Y {
		for c := range g.Z {
			if !g.Mask[g.Index(r, c)] {
				continue
			}
			cells = append(cells, cellIndex{
				r: r,
				c: c,
				nb: [4]int{
					north: lookup(r+1, c),
					south: lookup(r-1, c),
					east:  lookup(r, c+1),
					west:  lookup(r, c-1),
				},
			})
		}
	}
	return cells
}

// SolveStats reports how an iterative solve ended.
type SolveStats struct {
	Iterations int
	Converged  bool
	Residual   float64 // relative change at the last convergence check
}

// relativeChange returns |cur-prev|/|cur|, treating two zeros as no change.
func relativeChange(prev, cur float64) float64 {
	if cur == 0 {
		if prev == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return math.Abs(cur-prev) / math.Abs(cur)
}

// SolveTorsion solves ∇²φ = -2 on the mask with φ = 0 outside it using
// Jacobi relaxation and returns J = 2·Σφ·h².
func SolveTorsion(g *Grid, opts Options) (float64, SolveStats) {
	opts = opts.withDefaults()
	cells := g.maskedCells()
	if len(cells) == 0 {
		return 0, SolveStats{Converged: true}
	}

	phi := make([]float64, len(cells))
	next := make([]float64, len(cells))
	source := g.H * g.H / 2

	var stats SolveStats
	prevSum := 0.0
	for iter := 1; iter <= opts.MaxIterations; iter++ {
		for i, cell := range cells {
			var sum float64
			for _, nb := range cell.nb {
				if nb >= 0 {
					sum += phi[nb]
				}
			}
			next[i] = sum/4 + source
		}
		phi, next = next, phi
		stats.Iterations = iter

		if iter%opts.CheckInterval == 0 {
			sum := floats.Sum(phi)
			stats.Residual = relativeChange(prevSum, sum)
			prevSum = sum
			if stats.Residual < opts.Tolerance {
				stats.Converged = true
				break
			}
		}
	}

	if !stats.Converged {
		slog.Warn("torsion solve did not converge",
			"iterations", stats.Iterations, "residual", stats.Residual)
	} else {
		slog.Debug("torsion solve converged", "iterations", stats.Iterations, "cells", len(cells))
	}

	return 2 * floats.Sum(phi) * g.CellArea(), stats
}

// SolveWarping solves ∇²ω = 0 on the mask with the Neumann condition
// dω/dn = y·n_z - z·n_y on its boundary, coordinates taken relative to the
// centroid. Outside neighbours are replaced by ghost values self + h·flux.
// The field is recentred to zero mean periodically. The returned values
// follow the order of the grid's masked cells and have zero mean.
func SolveWarping(g *Grid, cy, cz float64, opts Options) ([]float64, SolveStats) {
	opts = opts.withDefaults()
	cells := g.maskedCells()
	if len(cells) == 0 {
		return nil, SolveStats{Converged: true}
	}

	// Boundary flux per direction, fixed for each cell.
	flux := make([][4]float64, len(cells))
	for i, cell := range cells {
		y := g.Y[cell.r] - cy
		z := g.Z[cell.c] - cz
		flux[i] = [4]float64{
			north: -z,
			south: z,
			east:  y,
			west:  -y,
		}
	}

	omega := make([]float64, len(cells))
	next := make([]float64, len(cells))
	scratch := make([]float64, len(cells))
	h := g.H

	var stats SolveStats
	prevNorm := 0.0
	for iter := 1; iter <= opts.MaxIterations; iter++ {
		for i, cell := range cells {
			self := omega[i]
			var sum float64
			for d, nb := range cell.nb {
				if nb >= 0 {
					sum += omega[nb]
				} else {
					sum += self + h*flux[i][d]
				}
			}
			next[i] = sum / 4
		}
		omega, next = next, omega
		stats.Iterations = iter

		if iter%opts.RecenterInterval == 0 {
			recenter(omega)
		}

		if iter%opts.CheckInterval == 0 {
			// Measured on the mean-free field so recentring does not register as change.
			copy(scratch, omega)
			recenter(scratch)
			norm := floats.Norm(scratch, 1)
			stats.Residual = relativeChange(prevNorm, norm)
			prevNorm = norm
			if stats.Residual < opts.Tolerance {
				stats.Converged = true
				break
			}
		}
	}

	recenter(omega)

	if !stats.Converged {
		slog.Warn("warping solve did not converge",
			"iterations", stats.Iterations, "residual", stats.Residual)
	} else {
		slog.Debug("warping solve converged", "iterations", stats.Iterations, "cells", len(cells))
	}

	return omega, stats
}

// recenter shifts values to zero mean.
func recenter(values []float64) {
	if len(values) == 0 {
		return
	}
	floats.AddConst(-floats.Sum(values)/float64(len(values)), values)
}

// WarpingConstant returns Cw = Σ ωn²·h² where ωn is the zero-mean warping
// function re-referenced to the shear center:
// ωn = ω - (SCz-Cz)·(y-Cy) + (SCy-Cy)·(z-Cz).
//
// The shear center enters as an offset from the centroid, not as absolute
// SCy and SCz, so Cw does not change when the section is translated.
func WarpingConstant(g *Grid, omega []float64, props Properties) float64 {
	cells := g.maskedCells()
	if len(cells) == 0 || len(cells) != len(omega) {
		return 0
	}

	ey := props.SCy - props.Cy
	ez := props.SCz - props.Cz

	var sum float64
	for i, cell := range cells {
		y := g.Y[cell.r] - props.Cy
		z := g.Z[cell.c] - props.Cz
		wn := omega[i] - ez*y + ey*z
		sum += wn * wn
	}
	return sum * g.CellArea()
}
