package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gosection/internal/section"
	"github.com/alexiusacademia/gosection/internal/stress"
)

// SectionDiagramData holds what is needed to draw a rasterized section.
type SectionDiagramData struct {
	Name  string
	Grid  *section.Grid
	Props section.Properties
}

// Characters used by DrawASCIISection.
const (
	materialChar  = '█'
	centroidChar  = '+'
	shearChar     = 'S'
	coincideChar  = '*'
	maxASCIIWidth = 60
)

// DrawASCIISection renders the material mask with the centroid marked
// '+' and the shear center 'S' ('*' when both fall in one character).
// Rows are sampled twice as coarsely as columns to keep the aspect ratio
// of a terminal cell.
func DrawASCIISection(data SectionDiagramData) string {
	g := data.Grid
	if g == nil || g.Rows() == 0 || g.Cols() == 0 {
		return "  (no material)\n"
	}

	colStep := max(1, int(math.Ceil(float64(g.Cols())/maxASCIIWidth)))
	rowStep := 2 * colStep
	cols := (g.Cols() + colStep - 1) / colStep
	rows := (g.Rows() + rowStep - 1) / rowStep

	canvas := make([][]rune, rows)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", cols))
		r := min(g.Rows()-1, i*rowStep+rowStep/2)
		for j := range canvas[i] {
			c := min(g.Cols()-1, j*colStep+colStep/2)
			if g.Mask[g.Index(r, c)] {
				canvas[i][j] = materialChar
			}
		}
	}

	locate := func(y, z float64) (int, int, bool) {
		i := int(math.Floor((y - g.Y[0] + g.H/2) / g.H / float64(rowStep)))
		j := int(math.Floor((z - g.Z[0] + g.H/2) / g.H / float64(colStep)))
		return i, j, i >= 0 && j >= 0 && i < rows && j < cols
	}

	ci, cj, cok := locate(data.Props.Cy, data.Props.Cz)
	if cok {
		canvas[ci][cj] = centroidChar
	}
	if si, sj, ok := locate(data.Props.SCy, data.Props.SCz); ok {
		if cok && si == ci && sj == cj {
			canvas[si][sj] = coincideChar
		} else {
			canvas[si][sj] = shearChar
		}
	}

	var sb strings.Builder
	sb.WriteString("\n")
	if data.Name != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", data.Name))
	}
	border := strings.Repeat("─", cols)
	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", border))
	// Top row of the grid is printed first.
	for i := rows - 1; i >= 0; i-- {
		sb.WriteString(fmt.Sprintf("  │%s│\n", string(canvas[i])))
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", border))
	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString(fmt.Sprintf("  %c = Material\n", materialChar))
	sb.WriteString(fmt.Sprintf("  %c = Centroid (%.3f, %.3f)\n", centroidChar, data.Props.Cy, data.Props.Cz))
	sb.WriteString(fmt.Sprintf("  %c = Shear center (%.3f, %.3f)\n", shearChar, data.Props.SCy, data.Props.SCz))

	return sb.String()
}

// rowPeaks returns, bottom row first, the y coordinate and the signed
// value of largest magnitude of every grid row that holds material.
func rowPeaks(field *stress.Field) (ys, peaks []float64) {
	g := field.Grid
	if g == nil {
		return nil, nil
	}
	for r := range g.Y {
		peak, found := 0.0, false
		for c := range g.Z {
			v := field.Values[g.Index(r, c)]
			if math.IsNaN(v) {
				continue
			}
			found = true
			if math.Abs(v) > math.Abs(peak) {
				peak = v
			}
		}
		if found {
			ys = append(ys, g.Y[r])
			peaks = append(peaks, peak)
		}
	}
	return ys, peaks
}

// DrawStressProfile draws, for every sampled row of the field, a bar of
// the largest stress magnitude in that row.
func DrawStressProfile(field *stress.Field) string {
	var sb strings.Builder

	height := 15
	width := 40

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s PROFILE ALONG Y\n", strings.ToUpper(string(field.Kind))))
	sb.WriteString("  ───────────────────────────\n\n")

	ys, peaks := rowPeaks(field)
	peak := field.AbsMax()
	if len(peaks) == 0 || peak == 0 {
		sb.WriteString("  (zero field)\n")
		return sb.String()
	}
	scale := float64(width) / peak
	step := max(1, len(peaks)/height)

	// Top row first
	for i := len(peaks) - 1; i >= 0; i -= step {
		barLen := int(math.Abs(peaks[i]) * scale)
		sb.WriteString(fmt.Sprintf("  y=%9.3f │%s %.4g\n", ys[i], strings.Repeat("█", barLen), peaks[i]))
	}

	sb.WriteString(fmt.Sprintf("\n  min = %.4g   max = %.4g\n", field.Min(), field.Max()))
	return sb.String()
}

// DrawStressGraph plots the row peaks of the field against y as a line
// graph, bottom of the section on the left.
func DrawStressGraph(field *stress.Field) string {
	ys, peaks := rowPeaks(field)
	if len(peaks) < 2 || field.AbsMax() == 0 {
		return "  (zero field)\n"
	}

	caption := fmt.Sprintf("%s row peak, y = %.4g .. %.4g", field.Kind, ys[0], ys[len(ys)-1])
	graph := asciigraph.Plot(peaks,
		asciigraph.Height(12),
		asciigraph.Width(maxASCIIWidth),
		asciigraph.Offset(4),
		asciigraph.Caption(caption),
	)
	return "\n" + graph + "\n"
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
