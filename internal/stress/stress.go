// Package stress evaluates elementary stress distributions on a section
// from a set of internal forces.
package stress

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gosection/internal/section"
)

// Kind names a stress component.
type Kind string

// Supported stress kinds.
const (
	Sigma        Kind = "sigma"
	SigmaAxial   Kind = "sigma_axial"
	SigmaBending Kind = "sigma_bending"
	Tau          Kind = "tau"
	TauShear     Kind = "tau_shear"
	TauTorsion   Kind = "tau_torsion"
	VonMises     Kind = "von_mises"
)

// Kinds lists every supported kind.
var Kinds = []Kind{Sigma, SigmaAxial, SigmaBending, Tau, TauShear, TauTorsion, VonMises}

// Func evaluates a stress component at a point.
type Func func(y, z float64) float64

// Forces are the internal forces acting on the section.
// Positive N is tension; positive Mz compresses fibres at positive y.
type Forces struct {
	N  float64 `yaml:"n"`  // Axial force
	Vy float64 `yaml:"vy"` // Shear along y
	Vz float64 `yaml:"vz"` // Shear along z
	Mx float64 `yaml:"mx"` // Torsion
	My float64 `yaml:"my"` // Bending about y
	Mz float64 `yaml:"mz"` // Bending about z
}

// Scale returns f with every component multiplied by k.
func (f Forces) Scale(k float64) Forces {
	return Forces{N: f.N * k, Vy: f.Vy * k, Vz: f.Vz * k, Mx: f.Mx * k, My: f.My * k, Mz: f.Mz * k}
}

// Add returns the component-wise sum of f and o.
func (f Forces) Add(o Forces) Forces {
	return Forces{N: f.N + o.N, Vy: f.Vy + o.Vy, Vz: f.Vz + o.Vz, Mx: f.Mx + o.Mx, My: f.My + o.My, Mz: f.Mz + o.Mz}
}

// Stress combines section properties with internal forces. Coordinates
// passed to the evaluators are absolute; bending and torsion act about
// the centroid. A component whose governing property is zero evaluates
// to zero.
type Stress struct {
	Props  section.Properties
	Forces Forces
}

// New returns the stress state of props under forces.
func New(props section.Properties, forces Forces) *Stress {
	return &Stress{Props: props, Forces: forces}
}

// SigmaAxial is N/A.
func (s *Stress) SigmaAxial(y, z float64) float64 {
	if s.Props.A == 0 {
		return 0
	}
	return s.Forces.N / s.Props.A
}

// SigmaBending is My·z/Iy - Mz·y/Iz about the centroid.
func (s *Stress) SigmaBending(y, z float64) float64 {
	dy, dz := y-s.Props.Cy, z-s.Props.Cz
	var sigma float64
	if s.Props.Iy != 0 {
		sigma += s.Forces.My * dz / s.Props.Iy
	}
	if s.Props.Iz != 0 {
		sigma -= s.Forces.Mz * dy / s.Props.Iz
	}
	return sigma
}

// Sigma is the total normal stress.
func (s *Stress) Sigma(y, z float64) float64 {
	return s.SigmaAxial(y, z) + s.SigmaBending(y, z)
}

// TauShear is the average shear stress magnitude |V|/A.
func (s *Stress) TauShear(y, z float64) float64 {
	if s.Props.A == 0 {
		return 0
	}
	return math.Hypot(s.Forces.Vy, s.Forces.Vz) / s.Props.A
}

// TauTorsion approximates torsional shear as |Mx·r/J| with r measured
// from the centroid.
func (s *Stress) TauTorsion(y, z float64) float64 {
	if s.Props.J == 0 {
		return 0
	}
	r := math.Hypot(y-s.Props.Cy, z-s.Props.Cz)
	return math.Abs(s.Forces.Mx * r / s.Props.J)
}

// Tau is the conservative sum of shear and torsional stress.
func (s *Stress) Tau(y, z float64) float64 {
	return s.TauShear(y, z) + s.TauTorsion(y, z)
}

// VonMises is sqrt(σ² + 3τ²).
func (s *Stress) VonMises(y, z float64) float64 {
	sigma := s.Sigma(y, z)
	tau := s.Tau(y, z)
	return math.Sqrt(sigma*sigma + 3*tau*tau)
}

// Func returns the evaluator for kind.
func (s *Stress) Func(kind Kind) (Func, error) {
	switch kind {
	case Sigma:
		return s.Sigma, nil
	case SigmaAxial:
		return s.SigmaAxial, nil
	case SigmaBending:
		return s.SigmaBending, nil
	case Tau:
		return s.Tau, nil
	case TauShear:
		return s.TauShear, nil
	case TauTorsion:
		return s.TauTorsion, nil
	case VonMises:
		return s.VonMises, nil
	}

	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return nil, fmt.Errorf("unknown stress kind %q (valid: %s)", kind, strings.Join(names, ", "))
}

// At evaluates kind at a single point.
func (s *Stress) At(y, z float64, kind Kind) (float64, error) {
	f, err := s.Func(kind)
	if err != nil {
		return 0, err
	}
	return f(y, z), nil
}

// Field is a stress component sampled at the cell centres of a grid.
// Values outside the material are NaN.
type Field struct {
	Grid   *section.Grid
	Kind   Kind
	Values []float64

	inside []float64
}

// Evaluate samples kind over every material cell of g.
func (s *Stress) Evaluate(g *section.Grid, kind Kind) (*Field, error) {
	f, err := s.Func(kind)
	if err != nil {
		return nil, err
	}

	field := &Field{Grid: g, Kind: kind, Values: make([]float64, len(g.Mask))}
	for r, y := range g.Y {
		for c, z := range g.Z {
			i := g.Index(r, c)
			if !g.Mask[i] {
				field.Values[i] = math.NaN()
				continue
			}
			v := f(y, z)
			field.Values[i] = v
			field.inside = append(field.inside, v)
		}
	}
	return field, nil
}

// Min returns the smallest value over the material, or 0 for an empty field.
func (f *Field) Min() float64 {
	if len(f.inside) == 0 {
		return 0
	}
	return floats.Min(f.inside)
}

// Max returns the largest value over the material, or 0 for an empty field.
func (f *Field) Max() float64 {
	if len(f.inside) == 0 {
		return 0
	}
	return floats.Max(f.inside)
}

// AbsMax returns the largest magnitude over the material.
func (f *Field) AbsMax() float64 {
	return math.Max(math.Abs(f.Min()), math.Abs(f.Max()))
}

// VertexExtremes evaluates kind at every polygon vertex and returns the
// smallest and largest values. Vertices reach the outer fibres, which
// cell centres never do.
func (s *Stress) VertexExtremes(polys []section.Polygon, kind Kind) (lo, hi float64, err error) {
	f, err := s.Func(kind)
	if err != nil {
		return 0, 0, err
	}

	var values []float64
	for _, p := range polys {
		for _, v := range p.Points {
			values = append(values, f(v.Y, v.Z))
		}
	}
	if len(values) == 0 {
		return 0, 0, nil
	}
	return floats.Min(values), floats.Max(values), nil
}
