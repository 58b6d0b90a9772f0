package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gosection/internal/section"
	"github.com/alexiusacademia/gosection/internal/stress"
)

func rectangleAnalysis(t *testing.T) *section.Analysis {
	t.Helper()
	g := section.NewGeometry(
		section.ContourFromPoints([]section.Point{
			section.Pt(-10, 4.5), section.Pt(10, 4.5), section.Pt(10, -4.5), section.Pt(-10, -4.5),
		}, false),
		section.ContourFromPoints([]section.Point{
			section.Pt(-5, 2), section.Pt(5, 2), section.Pt(5, -2), section.Pt(-5, -2),
		}, true),
	)
	a := g.Analyze(section.Options{GridResolution: 20})
	require.NotNil(t, a.Grid)
	return a
}

func TestDrawASCIISection(t *testing.T) {
	a := rectangleAnalysis(t)
	out := DrawASCIISection(SectionDiagramData{Name: "Box", Grid: a.Grid, Props: a.Properties})

	assert.Contains(t, out, "  Box\n")
	assert.Contains(t, out, string(materialChar))
	assert.Contains(t, out, string(coincideChar), "centroid and shear center share a cell")
	assert.Contains(t, out, "Legend:")

	// Every canvas row has the same width.
	var widths []int
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "  │") {
			widths = append(widths, utf8.RuneCountInString(line))
		}
	}
	require.NotEmpty(t, widths)
	for _, w := range widths {
		assert.Equal(t, widths[0], w)
	}
}

func TestDrawASCIISectionSeparateMarkers(t *testing.T) {
	a := rectangleAnalysis(t)
	props := a.Properties
	props.SCz = props.Cz - 4

	out := DrawASCIISection(SectionDiagramData{Grid: a.Grid, Props: props})
	assert.Contains(t, out, string(centroidChar))
	assert.Contains(t, out, string(shearChar))
	assert.NotContains(t, out, string(coincideChar))
}

func TestDrawASCIISectionEmpty(t *testing.T) {
	assert.Equal(t, "  (no material)\n", DrawASCIISection(SectionDiagramData{}))
	assert.Equal(t, "  (no material)\n", DrawASCIISection(SectionDiagramData{Grid: &section.Grid{}}))
}

func TestDrawStressProfile(t *testing.T) {
	a := rectangleAnalysis(t)

	field, err := stress.New(a.Properties, stress.Forces{Mz: 1000}).Evaluate(a.Grid, stress.Sigma)
	require.NoError(t, err)
	out := DrawStressProfile(field)
	assert.Contains(t, out, "SIGMA PROFILE ALONG Y")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "min = ")

	zero, err := stress.New(a.Properties, stress.Forces{}).Evaluate(a.Grid, stress.Sigma)
	require.NoError(t, err)
	assert.Contains(t, DrawStressProfile(zero), "(zero field)")
}

func TestDrawStressGraph(t *testing.T) {
	a := rectangleAnalysis(t)

	field, err := stress.New(a.Properties, stress.Forces{Mz: 1000}).Evaluate(a.Grid, stress.Sigma)
	require.NoError(t, err)
	out := DrawStressGraph(field)
	assert.Contains(t, out, "sigma row peak, y = ")
	assert.Greater(t, strings.Count(out, "\n"), 10)

	zero, err := stress.New(a.Properties, stress.Forces{}).Evaluate(a.Grid, stress.Sigma)
	require.NoError(t, err)
	assert.Equal(t, "  (zero field)\n", DrawStressGraph(zero))
	assert.Equal(t, "  (zero field)\n", DrawStressGraph(&stress.Field{Kind: stress.Sigma}))
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("Governing", []string{"combination 2", "peak 12.5"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)

	want := utf8.RuneCountInString(lines[0])
	for _, line := range lines {
		assert.Equal(t, want, utf8.RuneCountInString(line), "line %q", line)
	}
	assert.Contains(t, lines[1], "Governing")
}

func TestExportSection(t *testing.T) {
	a := rectangleAnalysis(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "nested", "box.png")
	require.NoError(t, ExportSection("Box", a.Polygons, a.Properties, path))
	assert.FileExists(t, path)

	svg := filepath.Join(dir, "box.svg")
	require.NoError(t, ExportSection("", a.Polygons, a.Properties, svg))
	assert.FileExists(t, svg)

	bare := filepath.Join(dir, "box")
	require.NoError(t, ExportSection("Box", a.Polygons, a.Properties, bare))
	assert.FileExists(t, bare+".png")
}

func TestExportStressMap(t *testing.T) {
	a := rectangleAnalysis(t)
	dir := t.TempDir()

	field, err := stress.New(a.Properties, stress.Forces{Mz: 1000, Mx: 50}).Evaluate(a.Grid, stress.VonMises)
	require.NoError(t, err)
	path := filepath.Join(dir, "vm.png")
	require.NoError(t, ExportStressMap(field, a.Polygons, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// A constant field still renders.
	flat, err := stress.New(a.Properties, stress.Forces{N: 10}).Evaluate(a.Grid, stress.SigmaAxial)
	require.NoError(t, err)
	require.NoError(t, ExportStressMap(flat, a.Polygons, filepath.Join(dir, "flat.png")))

	empty := &stress.Field{Kind: stress.Sigma}
	assert.Error(t, ExportStressMap(empty, nil, filepath.Join(dir, "empty.png")))
}
