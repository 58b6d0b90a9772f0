package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gosection/internal/diagram"
	"github.com/alexiusacademia/gosection/internal/library"
	"github.com/alexiusacademia/gosection/internal/sectionio"
	"github.com/spf13/cobra"
)

var shapeCmd = &cobra.Command{
	Use:   "shape",
	Short: "Generate a standard shape and calculate its properties",
	Long: `Generate a parametric shape from the built-in library, print its
properties and optionally save its geometry.

All shapes are centred on the origin with y up and z to the right;
widths (b) run along z and depths (d, h) along y.

Subcommands:
  rect    - Solid rectangle
  circle  - Solid circle
  chs     - Circular hollow section
  rhs     - Rectangular hollow section
  i       - I section with root fillets
  u       - Channel with rounded corners

Examples:
  gosection shape rect --b 200 --h 400
  gosection shape i --d 300 --b 150 --tf 15 --tw 10 --r 12 --diagram
  gosection shape chs --d 168.3 --t 8 -o chs.json`,
}

type dimFlag struct {
	name  string
	usage string
	value float64
}

type shapeKind struct {
	use     string
	short   string
	example string
	dims    []dimFlag
	build   func(d map[string]float64) (*library.Shape, error)
}

var shapeKinds = []shapeKind{
	{
		use: "rect", short: "Solid rectangle", example: "gosection shape rect --b 200 --h 400",
		dims: []dimFlag{{"b", "Width along z", 0}, {"h", "Height along y", 0}},
		build: func(d map[string]float64) (*library.Shape, error) {
			return library.Rectangle(d["b"], d["h"])
		},
	},
	{
		use: "circle", short: "Solid circle", example: "gosection shape circle --d 50",
		dims: []dimFlag{{"d", "Diameter", 0}},
		build: func(d map[string]float64) (*library.Shape, error) {
			return library.Circle(d["d"])
		},
	},
	{
		use: "chs", short: "Circular hollow section", example: "gosection shape chs --d 168.3 --t 8",
		dims: []dimFlag{{"d", "Outer diameter", 0}, {"t", "Wall thickness", 0}},
		build: func(d map[string]float64) (*library.Shape, error) {
			return library.CHS(d["d"], d["t"])
		},
	},
	{
		use: "rhs", short: "Rectangular hollow section", example: "gosection shape rhs --b 100 --h 200 --t 6 --r 12",
		dims: []dimFlag{{"b", "Width along z", 0}, {"h", "Height along y", 0}, {"t", "Wall thickness", 0}, {"r", "Outer corner radius", 0}},
		build: func(d map[string]float64) (*library.Shape, error) {
			return library.RHS(d["b"], d["h"], d["t"], d["r"])
		},
	},
	{
		use: "i", short: "I section", example: "gosection shape i --d 300 --b 150 --tf 15 --tw 10 --r 12",
		dims: []dimFlag{{"d", "Depth along y", 0}, {"b", "Flange width along z", 0}, {"tf", "Flange thickness", 0}, {"tw", "Web thickness", 0}, {"r", "Root radius", 0}},
		build: func(d map[string]float64) (*library.Shape, error) {
			return library.I(d["d"], d["b"], d["tf"], d["tw"], d["r"])
		},
	},
	{
		use: "u", short: "Channel section", example: "gosection shape u --b 75 --h 200 --tw 6 --tf 10 --r 8",
		dims: []dimFlag{{"b", "Width along z", 0}, {"h", "Height along y", 0}, {"tw", "Web thickness", 0}, {"tf", "Flange thickness", 0}, {"r", "Outer corner radius", 0}},
		build: func(d map[string]float64) (*library.Shape, error) {
			return library.U(d["b"], d["h"], d["tw"], d["tf"], d["r"])
		},
	},
}

func init() {
	rootCmd.AddCommand(shapeCmd)
	for _, k := range shapeKinds {
		shapeCmd.AddCommand(newShapeCommand(k))
	}
}

func newShapeCommand(k shapeKind) *cobra.Command {
	var (
		saveFile    string
		showDiagram bool
	)

	c := &cobra.Command{
		Use:     k.use,
		Short:   k.short,
		Example: "  " + k.example,
		RunE: func(cmd *cobra.Command, args []string) error {
			dims := make(map[string]float64, len(k.dims))
			for _, d := range k.dims {
				v, err := cmd.Flags().GetFloat64(d.name)
				if err != nil {
					return err
				}
				dims[d.name] = v
			}

			shape, err := k.build(dims)
			if err != nil {
				return err
			}
			cfg, err := analysisSettings(cmd)
			if err != nil {
				return err
			}

			doc := &sectionio.Document{Name: shape.Name, Geometry: shape.Geometry}
			a := shape.Geometry.Analyze(cfg.Options())
			out := cmd.OutOrStdout()
			printProperties(out, doc, a, cfg.Report.Precision)

			if showDiagram {
				fmt.Fprintln(out, diagram.DrawASCIISection(diagram.SectionDiagramData{
					Name:  shape.Name,
					Grid:  a.Grid,
					Props: a.Properties,
				}))
			}

			if saveFile != "" {
				if err := saveDocument(saveFile, doc); err != nil {
					return fmt.Errorf("error saving geometry: %w", err)
				}
				fmt.Fprintf(out, "Geometry saved to: %s\n", saveFile)
			}
			return nil
		},
	}

	for _, d := range k.dims {
		c.Flags().Float64(d.name, d.value, d.usage)
		if d.name != "r" {
			c.MarkFlagRequired(d.name)
		}
	}
	addResolutionFlags(c)
	c.Flags().BoolVar(&showDiagram, "diagram", false, "Show ASCII section diagram")
	c.Flags().StringVarP(&saveFile, "output", "o", "", "Save geometry to a JSON or DXF file")
	return c
}
