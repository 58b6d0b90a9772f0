package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gosection/internal/diagram"
	"github.com/spf13/cobra"
)

var (
	propertiesFile        string
	propertiesShowDiagram bool
	propertiesExportFile  string
)

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Calculate the properties of a section file",
	Long: `Calculate the full set of section properties for a geometry
stored in a JSON or DXF file.

Area, centroid and second moments come from exact boundary integrals;
the torsion constant, warping constant and plastic moduli come from a
grid over the section, whose fineness is set with --grid.

Example JSON file structure:
{
  "version": 1,
  "name": "Box",
  "contours": [
    {"hollow": false, "segments": [
      {"type": "line", "start": [-10, 5], "end": [10, 5]},
      ...
    ]},
    {"hollow": true, "segments": [
      {"type": "arc", "center": [0, 0], "radius": 3, "start_angle": 0, "end_angle": 6.283185307179586}
    ]}
  ]
}

Examples:
  gosection properties --file box.json
  gosection properties -f channel.dxf --grid 200 --diagram
  gosection properties -f box.json -o box.png`,
	RunE: runProperties,
}

func init() {
	rootCmd.AddCommand(propertiesCmd)

	propertiesCmd.Flags().StringVarP(&propertiesFile, "file", "f", "", "Path to geometry JSON or DXF file [required]")
	propertiesCmd.MarkFlagRequired("file")
	addResolutionFlags(propertiesCmd)

	// Diagram options
	propertiesCmd.Flags().BoolVar(&propertiesShowDiagram, "diagram", false, "Show ASCII section diagram")
	propertiesCmd.Flags().StringVarP(&propertiesExportFile, "output", "o", "", "Export section drawing to file (png, svg, pdf)")
}

func runProperties(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(propertiesFile)
	if err != nil {
		return fmt.Errorf("error loading section: %w", err)
	}
	cfg, err := analysisSettings(cmd)
	if err != nil {
		return err
	}

	a := doc.Geometry.Analyze(cfg.Options())
	out := cmd.OutOrStdout()
	printProperties(out, doc, a, cfg.Report.Precision)

	if propertiesShowDiagram {
		fmt.Fprintln(out, diagram.DrawASCIISection(diagram.SectionDiagramData{
			Name:  doc.Name,
			Grid:  a.Grid,
			Props: a.Properties,
		}))
	}

	if propertiesExportFile != "" {
		if err := diagram.ExportSection(doc.Name, a.Polygons, a.Properties, propertiesExportFile); err != nil {
			return fmt.Errorf("error exporting diagram: %w", err)
		}
		fmt.Fprintf(out, "Diagram exported to: %s\n", propertiesExportFile)
	}
	return nil
}
