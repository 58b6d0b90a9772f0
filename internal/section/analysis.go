package section

import "log/slog"

// Defaults for Options.
const (
	DefaultSegmentResolution = 64
	DefaultMaxIterations     = 5000
	DefaultTolerance         = 1e-6
	DefaultCheckInterval     = 10
	DefaultRecenterInterval  = 20
)

// Options controls discretization and the iterative solves.
// Zero fields take their defaults.
type Options struct {
	SegmentResolution int     // points per segment (per full turn for arcs)
	GridResolution    int     // grid steps across the larger padded dimension
	MaxIterations     int     // hard cap for each relaxation solve
	Tolerance         float64 // relative change that counts as converged
	CheckInterval     int     // iterations between convergence checks
	RecenterInterval  int     // iterations between warping recentring
}

// DefaultOptions returns the default analysis options.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.SegmentResolution <= 0 {
		o.SegmentResolution = DefaultSegmentResolution
	}
	if o.GridResolution <= 0 {
		o.GridResolution = DefaultGridResolution
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.CheckInterval <= 0 {
		o.CheckInterval = DefaultCheckInterval
	}
	if o.RecenterInterval <= 0 {
		o.RecenterInterval = DefaultRecenterInterval
	}
	return o
}

// Analysis is the full result of Analyze.
type Analysis struct {
	Properties Properties

	// Integration polygons after hollow reduction
	Polygons []Polygon

	// Raster used by the grid based properties; nil for a degenerate section.
	Grid *Grid

	Torsion SolveStats
	Warping SolveStats
}

// CalculateProperties computes all section properties with default options.
func (g *Geometry) CalculateProperties() Properties {
	return g.Analyze(DefaultOptions()).Properties
}

// Analyze runs the property pipeline: hollow reduction, exact boundary
// integration, rasterization, torsion solve, plastic moduli, shear center
// and warping solve. A section without material yields zero Properties.
func (g *Geometry) Analyze(opts Options) *Analysis {
	opts = opts.withDefaults()

	raw := g.Polygons(opts.SegmentResolution)
	reduced := reduceHollows(raw)

	props := ExactProperties(reduced, raw)
	result := &Analysis{Polygons: reduced}
	if props.IsDegenerate() {
		slog.Debug("section has no material", "contours", len(g.Contours))
		result.Properties = Properties{}
		return result
	}

	grid := NewGrid(reduced, opts.GridResolution)
	result.Grid = grid

	props.J, result.Torsion = SolveTorsion(grid, opts)
	props.ZplY, props.ZplZ = PlasticModuli(grid)
	props.SCy, props.SCz = ShearCenter(props, reduced)

	var omega []float64
	omega, result.Warping = SolveWarping(grid, props.Cy, props.Cz, opts)
	props.Cw = WarpingConstant(grid, omega, props)

	result.Properties = props
	return result
}
