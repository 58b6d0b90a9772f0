package sectionio

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gosection/internal/section"
)

// DXF coordinates map to section coordinates with an axis swap:
//
//	DXF X = section z
//	DXF Y = section y
//
// A DXF angle d (counter-clockwise from +X) is then the same number as the
// section arc angle θ (from +z toward +y), and a positive LWPOLYLINE bulge
// means increasing θ.

// HollowLayer is the DXF layer that carries hollow contours.
const HollowLayer = "HOLLOW"

const (
	solidLayer = "0"

	// bulgeTolerance is the bulge magnitude below which a polyline span is straight.
	bulgeTolerance = 1e-12

	// bezierExportSteps is the number of line spans written per Bezier.
	bezierExportSteps = 10
)

type dxfPair struct {
	code  int
	value string
}

// ReadDXFFile reads contours from a DXF file.
func ReadDXFFile(path string) ([]section.Contour, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDXF(f)
}

// ReadDXF reads LINE, ARC, CIRCLE and LWPOLYLINE entities from the ENTITIES
// section. Each entity becomes one contour; see Chain to join them.
// Entities on the HOLLOW layer become hollow contours.
func ReadDXF(r io.Reader) ([]section.Contour, error) {
	pairs, err := readPairs(r)
	if err != nil {
		return nil, err
	}

	start, end := -1, -1
	for i, p := range pairs {
		if p.code == 2 && p.value == "ENTITIES" {
			start = i
		}
		if start >= 0 && p.code == 0 && p.value == "ENDSEC" {
			end = i
			break
		}
	}
	if start < 0 || end < 0 {
		return nil, nil
	}

	var contours []section.Contour
	for i := start + 1; i < end; {
		if pairs[i].code != 0 {
			i++
			continue
		}
		kind := pairs[i].value
		i++
		var body []dxfPair
		for i < end && pairs[i].code != 0 {
			body = append(body, pairs[i])
			i++
		}

		c, ok, err := entityContour(kind, body)
		if err != nil {
			return nil, fmt.Errorf("%s entity: %w", kind, err)
		}
		if ok {
			contours = append(contours, c)
		} else {
			slog.Debug("skipping DXF entity", "type", kind)
		}
	}
	return contours, nil
}

func readPairs(r io.Reader) ([]dxfPair, error) {
	var pairs []dxfPair
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		codeText := strings.TrimSpace(sc.Text())
		if !sc.Scan() {
			break
		}
		line++
		code, err := strconv.Atoi(codeText)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group code %q", line-1, codeText)
		}
		pairs = append(pairs, dxfPair{code: code, value: strings.TrimSpace(sc.Text())})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read DXF: %w", err)
	}
	return pairs, nil
}

func parseFloat(p dxfPair) (float64, error) {
	v, err := strconv.ParseFloat(p.value, 64)
	if err != nil {
		return 0, &ValidationError{Field: fmt.Sprintf("group %d", p.code), Msg: fmt.Sprintf("invalid number %q", p.value)}
	}
	return v, nil
}

func entityContour(kind string, body []dxfPair) (section.Contour, bool, error) {
	hollow := false
	for _, p := range body {
		if p.code == 8 && strings.EqualFold(p.value, HollowLayer) {
			hollow = true
		}
	}

	switch kind {
	case "LINE":
		var x1, y1, x2, y2 float64
		for _, p := range body {
			var err error
			switch p.code {
			case 10:
				x1, err = parseFloat(p)
			case 20:
				y1, err = parseFloat(p)
			case 11:
				x2, err = parseFloat(p)
			case 21:
				y2, err = parseFloat(p)
			}
			if err != nil {
				return section.Contour{}, false, err
			}
		}
		line := section.Line{P0: section.Pt(y1, x1), P1: section.Pt(y2, x2)}
		return section.Contour{Segments: []section.Segment{line}, Hollow: hollow}, true, nil

	case "ARC", "CIRCLE":
		var cx, cy, r, startDeg float64
		endDeg := 360.0
		for _, p := range body {
			var err error
			switch p.code {
			case 10:
				cx, err = parseFloat(p)
			case 20:
				cy, err = parseFloat(p)
			case 40:
				r, err = parseFloat(p)
			case 50:
				startDeg, err = parseFloat(p)
			case 51:
				endDeg, err = parseFloat(p)
			}
			if err != nil {
				return section.Contour{}, false, err
			}
		}
		if kind == "CIRCLE" {
			startDeg, endDeg = 0, 360
		}
		start := startDeg * math.Pi / 180
		end := endDeg * math.Pi / 180
		// DXF arcs always run counter-clockwise
		if end <= start {
			end += 2 * math.Pi
		}
		arc := section.Arc{Center: section.Pt(cy, cx), Radius: r, StartAngle: start, EndAngle: end}
		return section.Contour{Segments: []section.Segment{arc}, Hollow: hollow}, true, nil

	case "LWPOLYLINE":
		c, ok, err := polylineContour(body)
		c.Hollow = hollow
		return c, ok, err
	}

	return section.Contour{}, false, nil
}

// polylineContour parses vertices in order; group 42 applies to the vertex before it.
func polylineContour(body []dxfPair) (section.Contour, bool, error) {
	var (
		points []section.Point
		bulges []float64
		closed bool
		haveX  bool
		x      float64
	)

	for _, p := range body {
		switch p.code {
		case 70:
			flags, err := strconv.Atoi(p.value)
			if err != nil {
				return section.Contour{}, false, &ValidationError{Field: "group 70", Msg: fmt.Sprintf("invalid flags %q", p.value)}
			}
			closed = flags&1 != 0
		case 10:
			v, err := parseFloat(p)
			if err != nil {
				return section.Contour{}, false, err
			}
			x, haveX = v, true
		case 20:
			v, err := parseFloat(p)
			if err != nil {
				return section.Contour{}, false, err
			}
			if haveX {
				points = append(points, section.Pt(v, x))
				bulges = append(bulges, 0)
				haveX = false
			}
		case 42:
			v, err := parseFloat(p)
			if err != nil {
				return section.Contour{}, false, err
			}
			if len(bulges) > 0 {
				bulges[len(bulges)-1] = v
			}
		}
	}

	if len(points) < 2 {
		return section.Contour{}, false, nil
	}

	var segs []section.Segment
	for i := 0; i+1 < len(points); i++ {
		segs = append(segs, bulgeSegment(points[i], points[i+1], bulges[i]))
	}
	if closed {
		last := len(points) - 1
		segs = append(segs, bulgeSegment(points[last], points[0], bulges[last]))
	}
	return section.Contour{Segments: segs}, true, nil
}

// bulgeSegment builds the span from p1 to p2. The bulge is tan(Δθ/4) for
// the signed sweep Δθ of the arc through both points.
func bulgeSegment(p1, p2 section.Point, bulge float64) section.Segment {
	chord := p1.Distance(p2)
	if math.Abs(bulge) < bulgeTolerance || chord == 0 {
		return section.Line{P0: p1, P1: p2}
	}

	sweep := 4 * math.Atan(bulge)
	radius := chord / (2 * math.Abs(math.Sin(sweep/2)))

	// Work in DXF axes (X = z, Y = y); a counter-clockwise arc keeps its
	// center on the left of the chord for sweeps under half a turn.
	mid := p1.Lerp(p2, 0.5)
	uX := (p2.Z - p1.Z) / chord
	uY := (p2.Y - p1.Y) / chord
	offset := (chord / 2) / math.Tan(sweep/2)
	center := section.Point{
		Y: mid.Y + uX*offset,
		Z: mid.Z - uY*offset,
	}

	start := math.Atan2(p1.Y-center.Y, p1.Z-center.Z)
	return section.Arc{Center: center, Radius: radius, StartAngle: start, EndAngle: start + sweep}
}

// WriteDXFFile writes contours to a DXF file.
func WriteDXFFile(path string, contours []section.Contour) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteDXF(f, contours); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// polyVertex is one LWPOLYLINE vertex and the bulge of the span leaving it.
type polyVertex struct {
	p     section.Point
	bulge float64
}

// WriteDXF writes each contour as one LWPOLYLINE. Arcs sweeping more than
// half a turn are split in equal halves, Beziers become line spans.
func WriteDXF(w io.Writer, contours []section.Contour) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "0\nSECTION\n2\nHEADER\n0\nENDSEC\n")
	fmt.Fprint(bw, "0\nSECTION\n2\nENTITIES\n")

	for _, c := range contours {
		verts := polylineVertices(c)
		closed := c.IsClosed()
		if !closed && len(c.Segments) > 0 {
			verts = append(verts, polyVertex{p: c.Segments[len(c.Segments)-1].End()})
		}
		if len(verts) < 2 {
			continue
		}

		layer := solidLayer
		if c.Hollow {
			layer = HollowLayer
		}
		flags := 0
		if closed {
			flags = 1
		}

		fmt.Fprintf(bw, "0\nLWPOLYLINE\n8\n%s\n90\n%d\n70\n%d\n", layer, len(verts), flags)
		for _, v := range verts {
			fmt.Fprintf(bw, "10\n%s\n20\n%s\n", formatFloat(v.p.Z), formatFloat(v.p.Y))
			if v.bulge != 0 {
				fmt.Fprintf(bw, "42\n%s\n", formatFloat(v.bulge))
			}
		}
	}

	fmt.Fprint(bw, "0\nENDSEC\n0\nEOF\n")
	return bw.Flush()
}

// polylineVertices returns the start vertex of every span in c.
func polylineVertices(c section.Contour) []polyVertex {
	var verts []polyVertex
	for _, s := range c.Segments {
		switch s := s.(type) {
		case section.Line:
			verts = append(verts, polyVertex{p: s.P0})
		case section.Arc:
			if s.Radius <= 1e-9 || s.Sweep() == 0 {
				continue
			}
			n := int(math.Ceil(math.Abs(s.Sweep()) / math.Pi))
			step := s.Sweep() / float64(n)
			for i := 0; i < n; i++ {
				verts = append(verts, polyVertex{
					p:     s.PointAt(float64(i) / float64(n)),
					bulge: math.Tan(step / 4),
				})
			}
		case section.CubicBezier:
			pts := s.Discretize(bezierExportSteps)
			for _, p := range pts[:len(pts)-1] {
				verts = append(verts, polyVertex{p: p})
			}
		}
	}
	return verts
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Chain joins open contours whose end points meet within tol into longer
// contours, reversing pieces where needed. Closed contours pass through.
func Chain(contours []section.Contour, tol float64) []section.Contour {
	var out []section.Contour
	var open []section.Contour
	for _, c := range contours {
		if len(c.Segments) == 0 {
			continue
		}
		if c.IsClosed() {
			out = append(out, c)
		} else {
			open = append(open, c)
		}
	}

	used := make([]bool, len(open))
	for i := range open {
		if used[i] {
			continue
		}
		used[i] = true
		chain := section.Contour{Hollow: open[i].Hollow}
		chain.Segments = append(chain.Segments, open[i].Segments...)

		for extended := true; extended && !chain.IsClosed(); {
			extended = false
			tail := chain.Segments[len(chain.Segments)-1].End()
			for j := range open {
				if used[j] || open[j].Hollow != chain.Hollow {
					continue
				}
				next := open[j]
				switch {
				case next.Segments[0].Start().Near(tail, tol):
				case next.Segments[len(next.Segments)-1].End().Near(tail, tol):
					next = reverseContour(next)
				default:
					continue
				}
				chain.Segments = append(chain.Segments, next.Segments...)
				used[j] = true
				extended = true
				break
			}
		}
		out = append(out, chain)
	}
	return out
}

func reverseContour(c section.Contour) section.Contour {
	segs := make([]section.Segment, len(c.Segments))
	for i, s := range c.Segments {
		segs[len(segs)-1-i] = reverseSegment(s)
	}
	return section.Contour{Segments: segs, Hollow: c.Hollow}
}

func reverseSegment(s section.Segment) section.Segment {
	switch s := s.(type) {
	case section.Line:
		return section.Line{P0: s.P1, P1: s.P0}
	case section.Arc:
		return section.Arc{Center: s.Center, Radius: s.Radius, StartAngle: s.EndAngle, EndAngle: s.StartAngle}
	case section.CubicBezier:
		return section.CubicBezier{P0: s.P3, P1: s.P2, P2: s.P1, P3: s.P0}
	}
	return s
}
