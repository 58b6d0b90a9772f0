package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexiusacademia/gosection/internal/config"
	"github.com/alexiusacademia/gosection/internal/diagram"
	"github.com/alexiusacademia/gosection/internal/stress"
	"github.com/spf13/cobra"
)

var (
	stressFile    string
	stressForces  stress.Forces
	stressKind    string
	stressCases   string
	stressShowAll bool
	stressSimple  bool
	stressProfile bool
	stressExport  string
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Evaluate stresses on a section from internal forces",
	Long: `Evaluate a stress component over a section for a set of internal
forces, or for the governing NSCP 2015 load combination of a set of
unfactored load cases.

Stress kinds:
  sigma          - Total normal stress
  sigma_axial    - N/A
  sigma_bending  - My·z/Iy - Mz·y/Iz about the centroid
  tau            - tau_shear + tau_torsion
  tau_shear      - |V|/A
  tau_torsion    - |Mx·r/J| with r from the centroid
  von_mises      - sqrt(sigma² + 3·tau²)

Load case file (YAML), forces per load type:
  dead: {n: -120, mz: 45}
  live: {mz: 30, vy: 18}
  wind: {my: 12}

Examples:
  gosection stress -f beam.json --N 100 --Mz 2e6
  gosection stress -f beam.json --Mx 5e5 --kind tau_torsion -o tau.png
  gosection stress -f beam.json --cases loads.yaml --all`,
	RunE: runStress,
}

func init() {
	rootCmd.AddCommand(stressCmd)

	stressCmd.Flags().StringVarP(&stressFile, "file", "f", "", "Path to geometry JSON or DXF file [required]")
	stressCmd.MarkFlagRequired("file")
	addResolutionFlags(stressCmd)

	// Internal forces
	stressCmd.Flags().Float64Var(&stressForces.N, "N", 0, "Axial force (positive = tension)")
	stressCmd.Flags().Float64Var(&stressForces.Vy, "Vy", 0, "Shear force along y")
	stressCmd.Flags().Float64Var(&stressForces.Vz, "Vz", 0, "Shear force along z")
	stressCmd.Flags().Float64Var(&stressForces.Mx, "Mx", 0, "Torsional moment")
	stressCmd.Flags().Float64Var(&stressForces.My, "My", 0, "Bending moment about y")
	stressCmd.Flags().Float64Var(&stressForces.Mz, "Mz", 0, "Bending moment about z")
	stressCmd.Flags().StringVarP(&stressKind, "kind", "k", string(stress.VonMises), "Stress kind to evaluate")

	// Load combinations
	stressCmd.Flags().StringVar(&stressCases, "cases", "", "YAML file of unfactored load cases; replaces the force flags")
	stressCmd.Flags().BoolVarP(&stressShowAll, "all", "a", false, "Show all load combination results")
	stressCmd.Flags().BoolVarP(&stressSimple, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")

	// Output
	stressCmd.Flags().BoolVar(&stressProfile, "profile", false, "Show ASCII stress profile along y")
	stressCmd.Flags().StringVarP(&stressExport, "output", "o", "", "Export stress map to file (png, svg, pdf)")
}

func runStress(cmd *cobra.Command, args []string) error {
	kind := stress.Kind(stressKind)
	doc, err := loadDocument(stressFile)
	if err != nil {
		return fmt.Errorf("error loading section: %w", err)
	}
	cfg, err := analysisSettings(cmd)
	if err != nil {
		return err
	}

	a := doc.Geometry.Analyze(cfg.Options())
	if a.Properties.IsDegenerate() {
		return fmt.Errorf("section %q has no material", doc.Name)
	}

	out := cmd.OutOrStdout()
	prec := cfg.Report.Precision
	forces := stressForces

	if stressCases != "" {
		cases, err := config.LoadCases(stressCases)
		if err != nil {
			return err
		}
		combos := stress.LoadCombinations
		if stressSimple {
			combos = stress.SimplifiedCombinations
		}

		results, gov, err := stress.Envelope(a, *cases, combos, kind)
		if err != nil {
			return err
		}
		printEnvelope(out, kind, results, gov, prec)
		forces = results[gov].Forces
	}

	s := stress.New(a.Properties, forces)
	field, err := s.Evaluate(a.Grid, kind)
	if err != nil {
		return err
	}
	lo, hi, err := s.VertexExtremes(a.Polygons, kind)
	if err != nil {
		return err
	}

	printHeader(out, "STRESS EVALUATION")
	if doc.Name != "" {
		fmt.Fprintf(out, "  Section: %s\n", doc.Name)
	}
	fmt.Fprintf(out, "  Stress kind: %s\n", kind)
	fmt.Fprintln(out)
	printForces(out, forces, prec)

	fmt.Fprintln(out, "RESULT:")
	fmt.Fprintln(out, rule)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  \tMin\tMax\n")
	fmt.Fprintf(w, "  \t───\t───\n")
	fmt.Fprintf(w, "  Grid cells:\t%s\t%s\n", formatValue(field.Min(), prec), formatValue(field.Max(), prec))
	fmt.Fprintf(w, "  Boundary vertices:\t%s\t%s\n", formatValue(lo, prec), formatValue(hi, prec))
	w.Flush()
	fmt.Fprintln(out)

	if stressProfile {
		fmt.Fprintln(out, diagram.DrawStressProfile(field))
		fmt.Fprintln(out, diagram.DrawStressGraph(field))
	}

	if stressExport != "" {
		if err := diagram.ExportStressMap(field, a.Polygons, stressExport); err != nil {
			return fmt.Errorf("error exporting stress map: %w", err)
		}
		fmt.Fprintf(out, "Stress map exported to: %s\n", stressExport)
	}
	return nil
}

func printForces(out io.Writer, f stress.Forces, prec int) {
	fmt.Fprintln(out, "INTERNAL FORCES:")
	fmt.Fprintln(out, rule)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Axial (N):\t%s\n", formatValue(f.N, prec))
	fmt.Fprintf(w, "  Shear (Vy, Vz):\t%s, %s\n", formatValue(f.Vy, prec), formatValue(f.Vz, prec))
	fmt.Fprintf(w, "  Torsion (Mx):\t%s\n", formatValue(f.Mx, prec))
	fmt.Fprintf(w, "  Bending (My, Mz):\t%s, %s\n", formatValue(f.My, prec), formatValue(f.Mz, prec))
	w.Flush()
	fmt.Fprintln(out)
}

func printEnvelope(out io.Writer, kind stress.Kind, results []stress.CombinationResult, gov int, prec int) {
	printHeader(out, "NSCP 2015 LOAD COMBINATION ENVELOPE")

	if stressShowAll {
		fmt.Fprintln(out, "LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
		fmt.Fprintln(out, rule)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tCombination\tMin %s\tMax %s\n", kind, kind)
		fmt.Fprintf(w, "  ─\t───────────\t───\t───\n")
		for i, r := range results {
			marker := ""
			if i == gov {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s%s\n", r.Combination.ID, r.Combination.Description,
				formatValue(r.Min, prec), formatValue(r.Max, prec), marker)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	g := results[gov]
	fmt.Fprintln(out, "GOVERNING:")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "  Governing Combination: %s (%s)\n", g.Combination.ID, g.Combination.Description)
	fmt.Fprintln(out)
	fmt.Fprint(out, diagram.DrawSummaryBox("PEAK "+string(kind), []string{
		fmt.Sprintf("|%s| max = %s", kind, formatValue(g.Peak(), prec)),
	}))
	fmt.Fprintln(out)
}
