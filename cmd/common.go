package cmd

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gosection/internal/config"
	"github.com/alexiusacademia/gosection/internal/section"
	"github.com/alexiusacademia/gosection/internal/sectionio"
	"github.com/spf13/cobra"
)

const rule = "───────────────────────────────────────────────────────────────"

// chainTolerance joins DXF entities whose end points are this close.
const chainTolerance = 1e-6

// loadDocument reads a geometry document from JSON or DXF, chosen by extension.
func loadDocument(path string) (*sectionio.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dxf":
		contours, err := sectionio.ReadDXFFile(path)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return &sectionio.Document{
			Name:     name,
			Geometry: section.NewGeometry(sectionio.Chain(contours, chainTolerance)...),
		}, nil
	default:
		return sectionio.LoadFromFile(path)
	}
}

// saveDocument writes a geometry document as JSON or DXF, chosen by extension.
func saveDocument(path string, doc *sectionio.Document) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dxf":
		return sectionio.WriteDXFFile(path, doc.Geometry.Contours)
	default:
		return sectionio.SaveToFile(path, doc)
	}
}

// analysisSettings resolves the settings file and applies the per-command
// resolution flags when they were given.
func analysisSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Lookup("resolution") != nil && flags.Changed("resolution") {
		cfg.Analysis.SegmentResolution, _ = flags.GetInt("resolution")
	}
	if flags.Lookup("grid") != nil && flags.Changed("grid") {
		cfg.Analysis.GridResolution, _ = flags.GetInt("grid")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func addResolutionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("resolution", section.DefaultSegmentResolution, "Points per segment when discretizing curves")
	cmd.Flags().Int("grid", section.DefaultGridResolution, "Grid steps across the section for torsion and warping")
}

// formatValue prints v with prec decimals, switching to exponent form for
// magnitudes the fixed form would round away.
func formatValue(v float64, prec int) string {
	if v != 0 && math.Abs(v) < math.Pow(10, -float64(prec)) {
		return fmt.Sprintf("%.*e", prec, v)
	}
	return fmt.Sprintf("%.*f", prec, v)
}

func printHeader(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     %s\n", title)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
}

// printProperties writes the full property report of an analysis.
func printProperties(out io.Writer, doc *sectionio.Document, a *section.Analysis, prec int) {
	p := a.Properties
	f := func(v float64) string { return formatValue(v, prec) }

	printHeader(out, "CROSS-SECTION PROPERTIES")
	if doc.Name != "" {
		fmt.Fprintf(out, "  Section: %s\n", doc.Name)
	}
	if doc.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", doc.Description)
	}
	fmt.Fprintf(out, "  Contours: %d\n", len(doc.Geometry.Contours))
	fmt.Fprintln(out)

	if p.IsDegenerate() {
		fmt.Fprintln(out, "  Section has no material; all properties are zero.")
		fmt.Fprintln(out)
		return
	}

	sections := []struct {
		title string
		rows  [][2]string
	}{
		{"AREA AND CENTROID:", [][2]string{
			{"Area (A)", f(p.A)},
			{"Centroid y (Cy)", f(p.Cy)},
			{"Centroid z (Cz)", f(p.Cz)},
		}},
		{"SECOND MOMENTS OF AREA:", [][2]string{
			{"Iy", f(p.Iy)},
			{"Iz", f(p.Iz)},
			{"Iyz", f(p.Iyz)},
			{"Radius of gyration ry", f(p.Ry)},
			{"Radius of gyration rz", f(p.Rz)},
		}},
		{"SECTION MODULI:", [][2]string{
			{"Extreme fibre y (ymax)", f(p.YMax)},
			{"Extreme fibre z (zmax)", f(p.ZMax)},
			{"Elastic Sy", f(p.Sy)},
			{"Elastic Sz", f(p.Sz)},
			{"Plastic Zpl,y", f(p.ZplY)},
			{"Plastic Zpl,z", f(p.ZplZ)},
		}},
		{"TORSION AND WARPING:", [][2]string{
			{"Torsion constant (J)", f(p.J)},
			{"Warping constant (Cw)", f(p.Cw)},
			{"Shear center y (SCy)", f(p.SCy)},
			{"Shear center z (SCz)", f(p.SCz)},
		}},
	}

	for _, s := range sections {
		fmt.Fprintln(out, s.title)
		fmt.Fprintln(out, rule)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, row := range s.rows {
			fmt.Fprintf(w, "  %s:\t%s\n", row[0], row[1])
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "SOLVER:")
	fmt.Fprintln(out, rule)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if a.Grid != nil {
		fmt.Fprintf(w, "  Grid:\t%d x %d (h = %s, %d material cells)\n", a.Grid.Rows(), a.Grid.Cols(), f(a.Grid.H), a.Grid.Count())
	}
	fmt.Fprintf(w, "  Torsion:\t%s\n", solveStatus(a.Torsion))
	fmt.Fprintf(w, "  Warping:\t%s\n", solveStatus(a.Warping))
	w.Flush()
	fmt.Fprintln(out)
}

func solveStatus(s section.SolveStats) string {
	status := "✓ converged"
	if !s.Converged {
		status = "⚠ not converged"
	}
	return fmt.Sprintf("%s after %d iterations (change %.2e)", status, s.Iterations, s.Residual)
}
