package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gosection/internal/library"
)

// resetFlags restores every flag in the tree so runs do not leak into each other.
func resetFlags(c *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestShapeConvertProperties(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "rect.json")
	dxfPath := filepath.Join(dir, "rect.dxf")

	out, err := run(t, "shape", "rect", "--b", "9", "--h", "20", "--grid", "20", "-o", jsonPath)
	require.NoError(t, err)
	assert.Contains(t, out, "CROSS-SECTION PROPERTIES")
	assert.Contains(t, out, "Section: Rectangle 9x20")
	assert.Contains(t, out, "180.0000")
	assert.Contains(t, out, "6000.0000")
	assert.Contains(t, out, "Geometry saved to: "+jsonPath)
	assert.FileExists(t, jsonPath)

	out, err = run(t, "convert", "-i", jsonPath, "-o", dxfPath)
	require.NoError(t, err)
	assert.Contains(t, out, "(1 contours, 0 hollow)")
	assert.FileExists(t, dxfPath)

	out, err = run(t, "properties", "-f", dxfPath, "--grid", "20", "--diagram")
	require.NoError(t, err)
	assert.Contains(t, out, "Section: rect")
	assert.Contains(t, out, "180.0000")
	assert.Contains(t, out, "Legend:")
	assert.Contains(t, out, "converged after")
}

func TestShapeInvalidDimensions(t *testing.T) {
	_, err := run(t, "shape", "chs", "--d", "100", "--t", "60")
	require.Error(t, err)

	var derr *library.DimensionError
	assert.ErrorAs(t, err, &derr)
}

func TestShapeRequiresDimensions(t *testing.T) {
	_, err := run(t, "shape", "rect", "--b", "9")
	assert.ErrorContains(t, err, "required flag")
}

func TestStressCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rect.json")
	_, err := run(t, "shape", "rect", "--b", "9", "--h", "20", "--grid", "20", "-o", path)
	require.NoError(t, err)

	t.Run("forces", func(t *testing.T) {
		out, err := run(t, "stress", "-f", path, "--grid", "20", "--Mz", "6000", "--kind", "sigma", "--profile")
		require.NoError(t, err)
		assert.Contains(t, out, "STRESS EVALUATION")
		assert.Contains(t, out, "Stress kind: sigma")
		assert.Contains(t, out, "-10.0000")
		assert.Contains(t, out, "SIGMA PROFILE ALONG Y")
	})

	t.Run("load cases", func(t *testing.T) {
		cases := filepath.Join(dir, "loads.yaml")
		require.NoError(t, os.WriteFile(cases, []byte("dead: {mz: 100}\nlive: {mz: 100}\n"), 0o644))

		out, err := run(t, "stress", "-f", path, "--grid", "20", "--cases", cases, "--all", "--kind", "sigma")
		require.NoError(t, err)
		assert.Contains(t, out, "LOAD COMBINATION ENVELOPE")
		assert.Contains(t, out, "GOVERNS")
		assert.Contains(t, out, "Governing Combination: 2 (1.2D + 1.6L + 0.5(Lr or R))")
	})

	t.Run("stress map", func(t *testing.T) {
		png := filepath.Join(dir, "vm.png")
		out, err := run(t, "stress", "-f", path, "--grid", "20", "--Mx", "100", "-o", png)
		require.NoError(t, err)
		assert.Contains(t, out, "Stress map exported to: "+png)
		assert.FileExists(t, png)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := run(t, "stress", "-f", path, "--grid", "20", "--kind", "bogus")
		assert.ErrorContains(t, err, "unknown stress kind")
	})
}

func TestPropertiesMissingFile(t *testing.T) {
	_, err := run(t, "properties", "-f", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "error loading section")
}

func TestConfigFlag(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("report:\n  precision: 1\n"), 0o644))

	out, err := run(t, "--config", cfg, "shape", "rect", "--b", "9", "--h", "20", "--grid", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "180.0\n")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gosection v")
	assert.Contains(t, out, "Geometry schema version: 1")
}
