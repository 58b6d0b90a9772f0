package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gosection/internal/section"
	"github.com/alexiusacademia/gosection/internal/stress"
)

// heatColors is the number of palette steps in a stress map.
const heatColors = 64

var (
	solidColor    = color.Black
	hollowColor   = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	centroidColor = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	shearColor    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// ExportSection exports the section outline with its centroid and shear
// center to an image file. The horizontal axis is z and the vertical y.
func ExportSection(name string, polys []section.Polygon, props section.Properties, filename string) error {
	p := plot.New()
	p.Title.Text = "Section"
	if name != "" {
		p.Title.Text = name
	}
	p.X.Label.Text = "z"
	p.Y.Label.Text = "y"

	if err := addOutlines(p, polys); err != nil {
		return err
	}
	if err := addMarkers(p, props); err != nil {
		return err
	}

	return save(p, 8*vg.Inch, 8*vg.Inch, filename)
}

// ExportStressMap exports a heat map of field with the section outline
// drawn over it. Cells outside the material are transparent.
func ExportStressMap(field *stress.Field, polys []section.Polygon, filename string) error {
	if field.Grid == nil || field.Grid.Rows() == 0 {
		return fmt.Errorf("stress field has no grid")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s  [%.4g, %.4g]", field.Kind, field.Min(), field.Max())
	p.X.Label.Text = "z"
	p.Y.Label.Text = "y"

	heat := plotter.NewHeatMap(fieldGrid{field}, palette.Heat(heatColors, 1))
	heat.NaN = color.Transparent
	p.Add(heat)

	if err := addOutlines(p, polys); err != nil {
		return err
	}

	return save(p, 8*vg.Inch, 8*vg.Inch, filename)
}

// fieldGrid adapts a stress field to plotter.GridXYZ with X = z and Y = y.
type fieldGrid struct {
	f *stress.Field
}

func (g fieldGrid) Dims() (c, r int) { return g.f.Grid.Cols(), g.f.Grid.Rows() }
func (g fieldGrid) X(c int) float64  { return g.f.Grid.Z[c] }
func (g fieldGrid) Y(r int) float64  { return g.f.Grid.Y[r] }

func (g fieldGrid) Z(c, r int) float64 {
	return g.f.Values[g.f.Grid.Index(r, c)]
}

// Min and Max widen a flat field so the palette has a range to map onto.
func (g fieldGrid) Min() float64 {
	lo, hi := g.f.Min(), g.f.Max()
	if lo == hi {
		return lo - flatFieldMargin(lo)
	}
	return lo
}

func (g fieldGrid) Max() float64 {
	lo, hi := g.f.Min(), g.f.Max()
	if lo == hi {
		return hi + flatFieldMargin(hi)
	}
	return hi
}

func flatFieldMargin(v float64) float64 {
	return math.Max(math.Abs(v)*1e-6, 1e-12)
}

func addOutlines(p *plot.Plot, polys []section.Polygon) error {
	for _, poly := range polys {
		if len(poly.Points) < 2 {
			continue
		}
		outline := make(plotter.XYs, len(poly.Points)+1)
		for i, v := range poly.Points {
			outline[i] = plotter.XY{X: v.Z, Y: v.Y}
		}
		outline[len(poly.Points)] = outline[0]

		line, err := plotter.NewLine(outline)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = solidColor
		if poly.Hollow {
			line.LineStyle.Color = hollowColor
			line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		}
		p.Add(line)
	}
	return nil
}

func addMarkers(p *plot.Plot, props section.Properties) error {
	markers := []struct {
		y, z  float64
		shape draw.GlyphDrawer
		color color.Color
		label string
	}{
		{props.Cy, props.Cz, draw.CrossGlyph{}, centroidColor, "C"},
		{props.SCy, props.SCz, draw.CircleGlyph{}, shearColor, "SC"},
	}

	for _, m := range markers {
		pt := plotter.XYs{{X: m.z, Y: m.y}}
		s, err := plotter.NewScatter(pt)
		if err != nil {
			return err
		}
		s.GlyphStyle.Shape = m.shape
		s.GlyphStyle.Color = m.color
		s.GlyphStyle.Radius = vg.Points(5)
		p.Add(s)

		l, err := plotter.NewLabels(plotter.XYLabels{XYs: pt, Labels: []string{" " + m.label}})
		if err != nil {
			return err
		}
		p.Add(l)
	}
	return nil
}

// save writes p in the format named by the extension of filename,
// appending .png when the extension is not one gonum/plot writes.
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf", ".eps", ".jpg", ".jpeg", ".tif", ".tiff":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
