package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gosection/internal/stress"
)

// LoadCases reads unfactored internal forces per load type, e.g.
//
//	dead: {n: -120, mz: 45}
//	live: {mz: 30, vy: 18}
func LoadCases(path string) (*stress.LoadCases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cases stress.LoadCases
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cases); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cases, nil
}
