package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/gosection/internal/version"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gosection",
	Short: "Cross-section property calculator",
	Long: `gosection - Go Cross-Section Property Calculator

A CLI tool for the geometric and torsional properties of arbitrary
structural cross-sections built from lines, arcs and Bezier curves.

This tool computes:
  - Area, centroid and second moments of area (exact boundary integrals)
  - Elastic and plastic section moduli, radii of gyration
  - St. Venant torsion constant and warping constant (grid solvers)
  - Shear center
  - Stress distributions from internal forces

Sections are read from JSON or DXF files, or generated from the
built-in shape library.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gosection v%-45s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Cross-Section Property Calculator                    ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Section properties of arbitrary curved geometry")
		fmt.Fprintln(out, "    • Torsion and warping constants, shear center")
		fmt.Fprintln(out, "    • Parametric shapes: rectangle, circle, CHS, RHS, I, U")
		fmt.Fprintln(out, "    • JSON and DXF import/export")
		fmt.Fprintln(out, "    • Stress maps and load combination envelopes")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gosection --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Settings file (default ./gosection.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log solver diagnostics to stderr")
}
