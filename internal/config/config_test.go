package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gosection/internal/section"
	"github.com/alexiusacademia/gosection/internal/stress"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultMatchesSolverDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultPrecision, cfg.Report.Precision)
	if d := cmp.Diff(section.DefaultOptions(), cfg.Options()); d != "" {
		t.Errorf("options mismatch (-want +got):\n%s", d)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "settings.yaml", `
analysis:
  grid_resolution: 60
  tolerance: 1.0e-5
report:
  precision: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.Analysis.GridResolution = 60
	want.Analysis.Tolerance = 1e-5
	want.Report.Precision = 2
	if d := cmp.Diff(want, cfg); d != "" {
		t.Errorf("config mismatch (-want +got):\n%s", d)
	}

	opts := cfg.Options()
	assert.Equal(t, 60, opts.GridResolution)
	assert.Equal(t, 1e-5, opts.Tolerance)
	assert.Equal(t, section.DefaultMaxIterations, opts.MaxIterations)
}

func TestLoadOptional(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := LoadOptional(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("present file is read", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, DefaultFile, "analysis:\n  max_iterations: 200\n")

		cfg, err := LoadOptional(dir)
		require.NoError(t, err)
		assert.Equal(t, 200, cfg.Analysis.MaxIterations)
	})
}

func TestResolve(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.yaml", "report:\n  precision: 6\n")

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Report.Precision)

	_, err = Resolve(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"tolerance too large", "analysis:\n  tolerance: 2\n", "analysis.tolerance"},
		{"negative tolerance", "analysis:\n  tolerance: -1.0e-6\n", "analysis.tolerance"},
		{"negative grid", "analysis:\n  grid_resolution: -5\n", "analysis.grid_resolution"},
		{"negative segments", "analysis:\n  segment_resolution: -1\n", "analysis.segment_resolution"},
		{"negative check interval", "analysis:\n  check_interval: -1\n", "analysis.check_interval"},
		{"precision out of range", "report:\n  precision: 20\n", "report.precision"},
		{"not yaml", "analysis: [unterminated\n", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.yaml", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadCases(t *testing.T) {
	dir := t.TempDir()

	t.Run("forces per load type", func(t *testing.T) {
		path := writeFile(t, dir, "loads.yaml", `
dead: {n: -120, mz: 45}
live:
  mz: 30
  vy: 18
wind: {my: 12.5}
`)
		cases, err := LoadCases(path)
		require.NoError(t, err)

		want := &stress.LoadCases{
			Dead: stress.Forces{N: -120, Mz: 45},
			Live: stress.Forces{Mz: 30, Vy: 18},
			Wind: stress.Forces{My: 12.5},
		}
		if d := cmp.Diff(want, cases); d != "" {
			t.Errorf("cases mismatch (-want +got):\n%s", d)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		cases, err := LoadCases(writeFile(t, dir, "empty.yaml", ""))
		require.NoError(t, err)
		assert.Equal(t, &stress.LoadCases{}, cases)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := LoadCases(writeFile(t, dir, "typo.yaml", "dead: {moment: 5}\n"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCases(filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
	})
}
