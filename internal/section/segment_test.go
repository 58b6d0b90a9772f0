package section

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	l := Line{P0: Pt(0, 0), P1: Pt(3, 4)}

	assert.Equal(t, Pt(0, 0), l.Start())
	assert.Equal(t, Pt(3, 4), l.End())
	assert.InDelta(t, 5.0, l.Length(), 1e-12)
	assert.Equal(t, Pt(1.5, 2), l.PointAt(0.5))

	pts := l.Discretize(4)
	require.Len(t, pts, 5)
	assert.Equal(t, l.P0, pts[0])
	assert.Equal(t, l.P1, pts[4])

	assert.Len(t, l.Discretize(0), 2, "resolution is clamped to 1")

	// End points are reproduced exactly so consecutive segments chain.
	short := Line{P0: Pt(1, 0.1), P1: Pt(5e-5, 0.3)}
	assert.Equal(t, short.P0, short.PointAt(0))
	assert.Equal(t, short.P1, short.PointAt(1))
	pts = short.Discretize(7)
	assert.Equal(t, short.P1, pts[len(pts)-1])

	c := CubicBezier{P0: Pt(0.1, 0.7), P1: Pt(1, 3), P2: Pt(2, -1), P3: Pt(5e-5, 0.3)}
	assert.Equal(t, c.P0, c.PointAt(0))
	assert.Equal(t, c.P3, c.PointAt(1))
}

func TestArcAngleConvention(t *testing.T) {
	// θ = 0 lies along +z, θ = π/2 along +y.
	a := Arc{Center: Pt(1, 2), Radius: 2, StartAngle: 0, EndAngle: math.Pi / 2}

	diff(t, Pt(1, 4), a.Start(), cmpopts.EquateApprox(0, 1e-12))
	diff(t, Pt(3, 2), a.End(), cmpopts.EquateApprox(0, 1e-12))
	assert.InDelta(t, math.Pi, a.Length(), 1e-12)

	mid := a.PointAt(0.5)
	assert.InDelta(t, 1+2*math.Sin(math.Pi/4), mid.Y, 1e-12)
	assert.InDelta(t, 2+2*math.Cos(math.Pi/4), mid.Z, 1e-12)
}

func TestArcReversed(t *testing.T) {
	fwd := Arc{Radius: 1, StartAngle: 0, EndAngle: math.Pi}
	rev := Arc{Radius: 1, StartAngle: math.Pi, EndAngle: 0}

	assert.InDelta(t, fwd.Length(), rev.Length(), 1e-12)
	assert.Equal(t, -fwd.Sweep(), rev.Sweep())
	diff(t, fwd.Start(), rev.End(), cmpopts.EquateApprox(0, 1e-12))
	diff(t, fwd.PointAt(0.25), rev.PointAt(0.75), cmpopts.EquateApprox(0, 1e-12))
}

func TestArcDiscretize(t *testing.T) {
	quarter := Arc{Radius: 1, StartAngle: 0, EndAngle: math.Pi / 2}
	assert.Len(t, quarter.Discretize(64), 17)

	small := Arc{Radius: 1, StartAngle: 0, EndAngle: 0.1}
	assert.Len(t, small.Discretize(64), 3, "at least two steps")

	full := Arc{Radius: 1, StartAngle: 0, EndAngle: 2 * math.Pi}
	pts := full.Discretize(64)
	require.Len(t, pts, 65)
	for _, p := range pts {
		assert.InDelta(t, 1.0, math.Hypot(p.Y, p.Z), 1e-12)
	}
}

func TestArcDegenerateRadius(t *testing.T) {
	a := Arc{Center: Pt(2, 3), Radius: 1e-12, StartAngle: 0, EndAngle: math.Pi}
	assert.Equal(t, []Point{Pt(2, 3)}, a.Discretize(64))
	assert.Nil(t, a.ToBeziers())
}

func TestArcToBeziers(t *testing.T) {
	tests := []struct {
		name  string
		arc   Arc
		count int
	}{
		{"quarter", Arc{Center: Pt(1, 1), Radius: 2, StartAngle: 0, EndAngle: math.Pi / 2}, 1},
		{"full circle", Arc{Radius: 3, StartAngle: 0, EndAngle: 2 * math.Pi}, 4},
		{"reversed", Arc{Radius: 1, StartAngle: math.Pi, EndAngle: -math.Pi / 4}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curves := tt.arc.ToBeziers()
			require.Len(t, curves, tt.count)

			diff(t, tt.arc.Start(), curves[0].Start(), cmpopts.EquateApprox(0, 1e-12))
			diff(t, tt.arc.End(), curves[len(curves)-1].End(), cmpopts.EquateApprox(0, 1e-12))

			for i, c := range curves {
				for _, u := range []float64{0.25, 0.5, 0.75} {
					p := c.PointAt(u)
					r := p.Distance(tt.arc.Center)
					assert.InDelta(t, tt.arc.Radius, r, 1e-3*tt.arc.Radius, "curve %d at %v", i, u)
				}
			}

			// The first curve bulges the same way as the arc.
			wantMid := tt.arc.PointAt(0.5 / float64(tt.count))
			diff(t, wantMid, curves[0].PointAt(0.5), cmpopts.EquateApprox(0, 1e-3*tt.arc.Radius))
		})
	}
}

func TestCubicBezier(t *testing.T) {
	// Control points evenly spaced on a line give a uniformly parameterized segment.
	c := CubicBezier{P0: Pt(0, 0), P1: Pt(1, 0), P2: Pt(2, 0), P3: Pt(3, 0)}

	assert.Equal(t, c.P0, c.Start())
	assert.Equal(t, c.P3, c.End())
	assert.InDelta(t, 3.0, c.Length(), 1e-12)
	diff(t, Pt(1.5, 0), c.PointAt(0.5), cmpopts.EquateApprox(0, 1e-12))

	pts := c.Discretize(6)
	require.Len(t, pts, 7)
	diff(t, Pt(0.5, 0), pts[1], cmpopts.EquateApprox(0, 1e-12))
}

func TestCubicBezierLengthIsPolylineApproximation(t *testing.T) {
	arc := Arc{Radius: 1, StartAngle: 0, EndAngle: math.Pi / 2}
	c := arc.ToBeziers()[0]

	assert.InDelta(t, math.Pi/2, c.Length(), 1e-3)
}
