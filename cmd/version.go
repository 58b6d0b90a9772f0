package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gosection/internal/sectionio"
	"github.com/alexiusacademia/gosection/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gosection",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "gosection v%s\n", version.Version)
		fmt.Fprintln(out, "Cross-Section Property Calculator")
		fmt.Fprintf(out, "Build: %s (%s)\n", version.GitCommit, version.BuildTime)
		fmt.Fprintf(out, "Geometry schema version: %d\n", sectionio.SchemaVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
