// Package config loads optional analysis settings from gosection.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gosection/internal/section"
)

// DefaultFile is the settings file looked up in the working directory.
const DefaultFile = "gosection.yaml"

// DefaultPrecision is the number of decimals printed in reports.
const DefaultPrecision = 4

// Config represents the optional gosection.yaml configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Report   ReportConfig   `yaml:"report"`
}

// AnalysisConfig mirrors section.Options.
type AnalysisConfig struct {
	SegmentResolution int     `yaml:"segment_resolution,omitempty"`
	GridResolution    int     `yaml:"grid_resolution,omitempty"`
	MaxIterations     int     `yaml:"max_iterations,omitempty"`
	Tolerance         float64 `yaml:"tolerance,omitempty"`
	CheckInterval     int     `yaml:"check_interval,omitempty"`
	RecenterInterval  int     `yaml:"recenter_interval,omitempty"`
}

// ReportConfig contains output formatting settings.
type ReportConfig struct {
	Precision int `yaml:"precision,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	opts := section.DefaultOptions()
	return &Config{
		Analysis: AnalysisConfig{
			SegmentResolution: opts.SegmentResolution,
			GridResolution:    opts.GridResolution,
			MaxIterations:     opts.MaxIterations,
			Tolerance:         opts.Tolerance,
			CheckInterval:     opts.CheckInterval,
			RecenterInterval:  opts.RecenterInterval,
		},
		Report: ReportConfig{Precision: DefaultPrecision},
	}
}

// Load reads an explicit settings file. Unset values keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parse(data, path)
}

// LoadOptional reads gosection.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", DefaultFile, err)
	}
	return parse(data, path)
}

// Resolve loads path when given, otherwise the optional default file in
// the working directory.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	return LoadOptional(".")
}

func parse(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	a := c.Analysis
	switch {
	case a.SegmentResolution < 1:
		return fmt.Errorf("analysis.segment_resolution must be positive, got %d", a.SegmentResolution)
	case a.GridResolution < 1:
		return fmt.Errorf("analysis.grid_resolution must be positive, got %d", a.GridResolution)
	case a.MaxIterations < 1:
		return fmt.Errorf("analysis.max_iterations must be positive, got %d", a.MaxIterations)
	case !(a.Tolerance > 0 && a.Tolerance < 1):
		return fmt.Errorf("analysis.tolerance must be in (0, 1), got %g", a.Tolerance)
	case a.CheckInterval < 1:
		return fmt.Errorf("analysis.check_interval must be positive, got %d", a.CheckInterval)
	case a.RecenterInterval < 1:
		return fmt.Errorf("analysis.recenter_interval must be positive, got %d", a.RecenterInterval)
	case c.Report.Precision < 0 || c.Report.Precision > 15:
		return fmt.Errorf("report.precision must be between 0 and 15, got %d", c.Report.Precision)
	}
	return nil
}

// Options converts the analysis block to solver options.
func (c *Config) Options() section.Options {
	a := c.Analysis
	return section.Options{
		SegmentResolution: a.SegmentResolution,
		GridResolution:    a.GridResolution,
		MaxIterations:     a.MaxIterations,
		Tolerance:         a.Tolerance,
		CheckInterval:     a.CheckInterval,
		RecenterInterval:  a.RecenterInterval,
	}
}
