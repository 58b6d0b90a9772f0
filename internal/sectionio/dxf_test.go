package sectionio

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gosection/internal/section"
)

func dxf(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestDXFRoundTripRectangle(t *testing.T) {
	rect := section.ContourFromPoints([]section.Point{
		section.Pt(-10, 4.5), section.Pt(10, 4.5), section.Pt(10, -4.5), section.Pt(-10, -4.5),
	}, false)

	var buf bytes.Buffer
	require.NoError(t, WriteDXF(&buf, []section.Contour{rect}))
	assert.Contains(t, buf.String(), "LWPOLYLINE\n8\n0\n90\n4\n70\n1\n")

	got, err := ReadDXF(&buf)
	require.NoError(t, err)
	if d := cmp.Diff([]section.Contour{rect}, got); d != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", d)
	}
}

func TestDXFRoundTripCircle(t *testing.T) {
	hole := section.Contour{
		Segments: []section.Segment{section.Arc{Center: section.Pt(5, 5), Radius: 2, StartAngle: 0, EndAngle: 2 * math.Pi}},
		Hollow:   true,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDXF(&buf, []section.Contour{hole}))
	assert.Contains(t, buf.String(), "8\nHOLLOW\n")

	got, err := ReadDXF(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Hollow)
	require.Len(t, got[0].Segments, 2, "a full turn is written as two half turns")
	assert.True(t, got[0].IsClosed())

	opt := cmpopts.EquateApprox(0, 1e-9)
	if d := cmp.Diff(hole.DiscretizeUniform(16), got[0].DiscretizeUniform(16), opt); d != "" {
		t.Errorf("circle mismatch (-want +got):\n%s", d)
	}
	assert.InDelta(t, hole.Length(), got[0].Length(), 1e-9)
}

func TestDXFWriteOpenContourAndBezier(t *testing.T) {
	curve := section.Contour{Segments: []section.Segment{
		section.CubicBezier{P0: section.Pt(0, 0), P1: section.Pt(1, 1), P2: section.Pt(2, 1), P3: section.Pt(3, 0)},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteDXF(&buf, []section.Contour{curve}))
	assert.Contains(t, buf.String(), "90\n11\n70\n0\n")

	got, err := ReadDXF(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Segments, bezierExportSteps)
	assert.False(t, got[0].IsClosed())
	assert.Equal(t, section.Pt(0, 0), got[0].Start())
	assert.Equal(t, section.Pt(3, 0), got[0].Segments[bezierExportSteps-1].End())
}

func TestDXFWriteSkipsEmptyContours(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDXF(&buf, []section.Contour{{}}))
	assert.NotContains(t, buf.String(), "LWPOLYLINE")
	assert.True(t, strings.HasSuffix(buf.String(), "0\nEOF\n"))

	got, err := ReadDXF(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBulgeSegment(t *testing.T) {
	tests := []struct {
		name  string
		bulge float64
		midY  float64
	}{
		{"counter-clockwise", 1, -1},
		{"clockwise", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := bulgeSegment(section.Pt(0, 0), section.Pt(0, 2), tt.bulge)
			arc, ok := seg.(section.Arc)
			require.True(t, ok, "got %T", seg)

			assert.InDelta(t, 1.0, arc.Radius, 1e-12)
			diff := cmpopts.EquateApprox(0, 1e-12)
			assert.True(t, cmp.Equal(section.Pt(0, 0), arc.Start(), diff), "start %v", arc.Start())
			assert.True(t, cmp.Equal(section.Pt(0, 2), arc.End(), diff), "end %v", arc.End())
			assert.InDelta(t, tt.midY, arc.PointAt(0.5).Y, 1e-12)
		})
	}

	t.Run("quarter", func(t *testing.T) {
		seg := bulgeSegment(section.Pt(0, 1), section.Pt(1, 0), math.Tan(math.Pi/8))
		arc := seg.(section.Arc)
		assert.InDelta(t, 0.0, arc.Center.Y, 1e-12)
		assert.InDelta(t, 0.0, arc.Center.Z, 1e-12)
		assert.InDelta(t, 1.0, arc.Radius, 1e-12)
		assert.InDelta(t, math.Pi/2, arc.Sweep(), 1e-12)
	})

	t.Run("straight", func(t *testing.T) {
		seg := bulgeSegment(section.Pt(0, 0), section.Pt(0, 2), 0)
		assert.Equal(t, section.Line{P0: section.Pt(0, 0), P1: section.Pt(0, 2)}, seg)
	})
}

// Triangle drawn as loose lines (one reversed), a circular hole, a text
// entity and a hollow D shape built from an arc and its chord.
var looseEntities = dxf(
	"0", "SECTION", "2", "HEADER", "0", "ENDSEC",
	"0", "SECTION", "2", "ENTITIES",
	"0", "LINE", "8", "0", "10", "0", "20", "0", "11", "4", "21", "0",
	"0", "LINE", "8", "0", "10", "0", "20", "3", "11", "4", "21", "0",
	"0", "LINE", "8", "0", "10", "0", "20", "3", "11", "0", "21", "0",
	"0", "CIRCLE", "8", "HOLLOW", "10", "1", "20", "1", "40", "0.5",
	"0", "TEXT", "8", "0", "10", "0", "20", "0", "1", "label",
	"0", "ARC", "8", "HOLLOW", "10", "10", "20", "10", "40", "2", "50", "270", "51", "90",
	"0", "LINE", "8", "HOLLOW", "10", "10", "20", "12", "11", "10", "21", "8",
	"0", "ENDSEC",
	"0", "EOF",
)

func TestReadDXFEntities(t *testing.T) {
	got, err := ReadDXF(strings.NewReader(looseEntities))
	require.NoError(t, err)
	require.Len(t, got, 6, "TEXT is skipped")

	circle := got[3].Segments[0].(section.Arc)
	assert.True(t, got[3].Hollow)
	assert.Equal(t, section.Pt(1, 1), circle.Center)
	assert.InDelta(t, 2*math.Pi, circle.Sweep(), 1e-12)

	arc := got[4].Segments[0].(section.Arc)
	assert.InDelta(t, 3*math.Pi/2, arc.StartAngle, 1e-12)
	assert.InDelta(t, 5*math.Pi/2, arc.EndAngle, 1e-12, "end before start wraps forward")
	assert.InDelta(t, 8.0, arc.Start().Y, 1e-12)
	assert.InDelta(t, 12.0, arc.End().Y, 1e-12)
}

func TestChain(t *testing.T) {
	loose, err := ReadDXF(strings.NewReader(looseEntities))
	require.NoError(t, err)

	chained := Chain(loose, 1e-6)
	require.Len(t, chained, 3)

	// Closed contours come first.
	assert.True(t, chained[0].Hollow)
	assert.Len(t, chained[0].Segments, 1)

	tri := chained[1]
	assert.False(t, tri.Hollow)
	require.Len(t, tri.Segments, 3)
	assert.True(t, tri.IsClosed())
	for i := 1; i < len(tri.Segments); i++ {
		assert.True(t, tri.Segments[i-1].End().Near(tri.Segments[i].Start(), 1e-12), "joint %d", i)
	}

	d := chained[2]
	assert.True(t, d.Hollow)
	require.Len(t, d.Segments, 2)
	assert.True(t, d.IsClosed())

	g := section.NewGeometry(chained...)
	raw := g.Polygons(64)
	props := section.ExactProperties(g.ReduceHollows(64), raw)
	assert.InDelta(t, 6-math.Pi*0.25, props.A, 0.01, "the D shape lies outside the triangle")
}

func TestChainKeepsUnmatchedPieces(t *testing.T) {
	a := section.Contour{Segments: []section.Segment{section.Line{P0: section.Pt(0, 0), P1: section.Pt(1, 0)}}}
	b := section.Contour{Segments: []section.Segment{section.Line{P0: section.Pt(5, 5), P1: section.Pt(6, 5)}}}
	hollow := section.Contour{Segments: []section.Segment{section.Line{P0: section.Pt(1, 0), P1: section.Pt(2, 0)}}, Hollow: true}

	got := Chain([]section.Contour{a, b, hollow, {}}, 1e-6)
	require.Len(t, got, 3)
	assert.Len(t, got[0].Segments, 1, "solid and hollow pieces never join")
}

func TestReverseSegment(t *testing.T) {
	arc := section.Arc{Radius: 1, StartAngle: 0, EndAngle: 1}
	rev := reverseSegment(arc).(section.Arc)
	assert.Equal(t, 1.0, rev.StartAngle)
	assert.Equal(t, 0.0, rev.EndAngle)

	bez := section.CubicBezier{P0: section.Pt(0, 0), P1: section.Pt(1, 0), P2: section.Pt(2, 0), P3: section.Pt(3, 0)}
	assert.Equal(t, section.CubicBezier{P0: bez.P3, P1: bez.P2, P2: bez.P1, P3: bez.P0}, reverseSegment(bez))
}

func TestReadDXFErrors(t *testing.T) {
	t.Run("no entities section", func(t *testing.T) {
		got, err := ReadDXF(strings.NewReader(dxf("0", "SECTION", "2", "HEADER", "0", "ENDSEC", "0", "EOF")))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("bad group code", func(t *testing.T) {
		_, err := ReadDXF(strings.NewReader(dxf("zero", "SECTION")))
		assert.ErrorContains(t, err, "invalid group code")
	})

	t.Run("bad number", func(t *testing.T) {
		input := dxf("0", "SECTION", "2", "ENTITIES", "0", "LINE", "10", "abc", "0", "ENDSEC")
		_, err := ReadDXF(strings.NewReader(input))
		require.Error(t, err)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "group 10", verr.Field)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadDXFFile(filepath.Join(t.TempDir(), "missing.dxf"))
		assert.Error(t, err)
	})
}

func TestDXFFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.dxf")
	square := section.ContourFromPoints([]section.Point{
		section.Pt(0, 0), section.Pt(0, 1), section.Pt(1, 1), section.Pt(1, 0),
	}, false)

	require.NoError(t, WriteDXFFile(path, []section.Contour{square}))
	got, err := ReadDXFFile(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Segments, 4)
}
