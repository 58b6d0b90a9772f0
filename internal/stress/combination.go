package stress

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gosection/internal/section"
)

// LoadCases holds the unfactored internal forces of each load type.
type LoadCases struct {
	Dead       Forces `yaml:"dead"`       // D
	Live       Forces `yaml:"live"`       // L
	Roof       Forces `yaml:"roof"`       // Lr
	Wind       Forces `yaml:"wind"`       // W
	Earthquake Forces `yaml:"earthquake"` // E
	Rain       Forces `yaml:"rain"`       // R
}

// LoadCombination is a set of load factors applied to LoadCases.
type LoadCombination struct {
	ID          string
	Description string

	Dead       float64
	Live       float64
	Roof       float64
	Wind       float64
	Earthquake float64
	Rain       float64
}

// LoadCombinations are the basic strength design combinations of
// NSCP 2015 Section 203.3.1. Combinations written with "Lr or R" apply
// the factor to both, which is conservative when only one is present.
var LoadCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L + 0.5(Lr or R)", Dead: 1.2, Live: 1.6, Roof: 0.5, Rain: 0.5},
	{ID: "3", Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)", Dead: 1.2, Live: 1.0, Roof: 1.6, Rain: 1.6, Wind: 0.5},
	{ID: "4", Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)", Dead: 1.2, Live: 1.0, Wind: 1.0, Roof: 0.5, Rain: 0.5},
	{ID: "5", Description: "1.2D + 1.0E + 1.0L", Dead: 1.2, Live: 1.0, Earthquake: 1.0},
	{ID: "6", Description: "0.9D + 1.0W", Dead: 0.9, Wind: 1.0},
	{ID: "7", Description: "0.9D + 1.0E", Dead: 0.9, Earthquake: 1.0},
}

// SimplifiedCombinations cover gravity loads only.
var SimplifiedCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L", Dead: 1.2, Live: 1.6},
}

// Factored returns the combined internal forces for cases.
func (lc LoadCombination) Factored(cases LoadCases) Forces {
	return cases.Dead.Scale(lc.Dead).
		Add(cases.Live.Scale(lc.Live)).
		Add(cases.Roof.Scale(lc.Roof)).
		Add(cases.Wind.Scale(lc.Wind)).
		Add(cases.Earthquake.Scale(lc.Earthquake)).
		Add(cases.Rain.Scale(lc.Rain))
}

// CombinationResult is the extreme stress produced by one combination.
type CombinationResult struct {
	Combination LoadCombination
	Forces      Forces
	Min         float64
	Max         float64
}

// Peak returns the larger magnitude of Min and Max.
func (r CombinationResult) Peak() float64 {
	return math.Max(math.Abs(r.Min), math.Abs(r.Max))
}

// Envelope evaluates kind for every combination and returns the results
// together with the index of the governing one, the largest peak
// magnitude. Extremes combine the grid field with the polygon vertices.
func Envelope(a *section.Analysis, cases LoadCases, combos []LoadCombination, kind Kind) ([]CombinationResult, int, error) {
	if len(combos) == 0 {
		return nil, -1, fmt.Errorf("no load combinations given")
	}

	results := make([]CombinationResult, 0, len(combos))
	governing := -1
	for i, lc := range combos {
		forces := lc.Factored(cases)
		s := New(a.Properties, forces)

		lo, hi, err := s.VertexExtremes(a.Polygons, kind)
		if err != nil {
			return nil, -1, err
		}
		if a.Grid != nil {
			field, err := s.Evaluate(a.Grid, kind)
			if err != nil {
				return nil, -1, err
			}
			if len(field.inside) > 0 {
				lo, hi = min(lo, field.Min()), max(hi, field.Max())
			}
		}

		results = append(results, CombinationResult{Combination: lc, Forces: forces, Min: lo, Max: hi})
		if governing < 0 || results[i].Peak() > results[governing].Peak() {
			governing = i
		}
	}
	return results, governing, nil
}
