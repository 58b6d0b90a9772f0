package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	convertInput  string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert geometry between JSON and DXF",
	Long: `Convert a geometry file between the JSON document format and DXF.
The format of each file is taken from its extension.

DXF X maps to section z and DXF Y to section y. Hollow contours are
written to, and read from, the HOLLOW layer. Loose DXF entities that
meet end to end are joined into contours.

Examples:
  gosection convert -i section.dxf -o section.json
  gosection convert -i section.json -o section.dxf`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "Input geometry file (.json or .dxf) [required]")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output geometry file (.json or .dxf) [required]")
	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(convertInput)
	if err != nil {
		return fmt.Errorf("error loading geometry: %w", err)
	}
	if err := saveDocument(convertOutput, doc); err != nil {
		return fmt.Errorf("error saving geometry: %w", err)
	}

	hollow := 0
	for _, c := range doc.Geometry.Contours {
		if c.Hollow {
			hollow++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s (%d contours, %d hollow)\n",
		convertInput, convertOutput, len(doc.Geometry.Contours), hollow)
	return nil
}
