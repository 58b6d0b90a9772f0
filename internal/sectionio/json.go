// Package sectionio reads and writes section geometry: a versioned JSON
// document format and a minimal DXF adapter.
package sectionio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alexiusacademia/gosection/internal/section"
)

// SchemaVersion is the JSON document version written by Encode and the
// only version Decode accepts.
const SchemaVersion = 1

// Segment type tags.
const (
	TypeLine   = "line"
	TypeArc    = "arc"
	TypeBezier = "bezier"
)

// Document is a named geometry as stored on disk.
type Document struct {
	Name        string
	Description string
	Geometry    *section.Geometry
}

type documentRecord struct {
	Version     int             `json:"version"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Contours    []contourRecord `json:"contours"`
}

type contourRecord struct {
	Hollow   bool            `json:"hollow"`
	Segments []segmentRecord `json:"segments"`
}

// segmentRecord is the union of all segment fields. Pointers distinguish
// missing fields from zero values.
type segmentRecord struct {
	Type string `json:"type"`

	// line
	Start *[2]float64 `json:"start,omitempty"`
	End   *[2]float64 `json:"end,omitempty"`

	// arc
	Center     *[2]float64 `json:"center,omitempty"`
	Radius     *float64    `json:"radius,omitempty"`
	StartAngle *float64    `json:"start_angle,omitempty"`
	EndAngle   *float64    `json:"end_angle,omitempty"`

	// bezier
	P0 *[2]float64 `json:"p0,omitempty"`
	P1 *[2]float64 `json:"p1,omitempty"`
	P2 *[2]float64 `json:"p2,omitempty"`
	P3 *[2]float64 `json:"p3,omitempty"`
}

// LoadFromFile loads a geometry document from a JSON file
func LoadFromFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return doc, nil
}

// SaveToFile writes a geometry document to a JSON file
func SaveToFile(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc *Document) error {
	rec := documentRecord{
		Version:     SchemaVersion,
		Name:        doc.Name,
		Description: doc.Description,
		Contours:    []contourRecord{},
	}
	if doc.Geometry != nil {
		for _, c := range doc.Geometry.Contours {
			cr := contourRecord{Hollow: c.Hollow, Segments: make([]segmentRecord, 0, len(c.Segments))}
			for _, s := range c.Segments {
				cr.Segments = append(cr.Segments, encodeSegment(s))
			}
			rec.Contours = append(rec.Contours, cr)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

func encodeSegment(s section.Segment) segmentRecord {
	switch s := s.(type) {
	case section.Line:
		return segmentRecord{Type: TypeLine, Start: pair(s.P0), End: pair(s.P1)}
	case section.Arc:
		return segmentRecord{
			Type:       TypeArc,
			Center:     pair(s.Center),
			Radius:     &s.Radius,
			StartAngle: &s.StartAngle,
			EndAngle:   &s.EndAngle,
		}
	case section.CubicBezier:
		return segmentRecord{Type: TypeBezier, P0: pair(s.P0), P1: pair(s.P1), P2: pair(s.P2), P3: pair(s.P3)}
	default:
		panic(fmt.Sprintf("sectionio: unknown segment %T", s))
	}
}

func pair(p section.Point) *[2]float64 {
	return &[2]float64{p.Y, p.Z}
}

// Decode reads and validates a JSON geometry document.
func Decode(r io.Reader) (*Document, error) {
	var rec documentRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to parse geometry JSON: %w", err)
	}

	if rec.Version != SchemaVersion {
		return nil, &ValidationError{Field: "version", Msg: fmt.Sprintf("unsupported schema version %d (want %d)", rec.Version, SchemaVersion)}
	}

	geom := &section.Geometry{Contours: make([]section.Contour, 0, len(rec.Contours))}
	for i, cr := range rec.Contours {
		if len(cr.Segments) == 0 {
			return nil, &ValidationError{Field: fmt.Sprintf("contours[%d].segments", i), Msg: "contour must have at least one segment"}
		}
		c := section.Contour{Hollow: cr.Hollow, Segments: make([]section.Segment, 0, len(cr.Segments))}
		for j, sr := range cr.Segments {
			seg, err := decodeSegment(sr, fmt.Sprintf("contours[%d].segments[%d]", i, j))
			if err != nil {
				return nil, err
			}
			c.Segments = append(c.Segments, seg)
		}
		geom.Contours = append(geom.Contours, c)
	}

	return &Document{Name: rec.Name, Description: rec.Description, Geometry: geom}, nil
}

func decodeSegment(sr segmentRecord, path string) (section.Segment, error) {
	var missing []string
	point := func(name string, v *[2]float64) section.Point {
		if v == nil {
			missing = append(missing, name)
			return section.Point{}
		}
		return section.Point{Y: v[0], Z: v[1]}
	}
	scalar := func(name string, v *float64) float64 {
		if v == nil {
			missing = append(missing, name)
			return 0
		}
		return *v
	}

	var seg section.Segment
	switch sr.Type {
	case TypeLine:
		seg = section.Line{P0: point("start", sr.Start), P1: point("end", sr.End)}
	case TypeArc:
		seg = section.Arc{
			Center:     point("center", sr.Center),
			Radius:     scalar("radius", sr.Radius),
			StartAngle: scalar("start_angle", sr.StartAngle),
			EndAngle:   scalar("end_angle", sr.EndAngle),
		}
	case TypeBezier:
		seg = section.CubicBezier{
			P0: point("p0", sr.P0),
			P1: point("p1", sr.P1),
			P2: point("p2", sr.P2),
			P3: point("p3", sr.P3),
		}
	case "":
		return nil, &ValidationError{Field: path + ".type", Msg: "segment type is required"}
	default:
		return nil, &ValidationError{Field: path + ".type", Msg: fmt.Sprintf("unknown segment type %q", sr.Type)}
	}

	if len(missing) > 0 {
		return nil, &ValidationError{Field: path + "." + missing[0], Msg: fmt.Sprintf("%s segment is missing required field %q", sr.Type, missing[0])}
	}
	if arc, ok := seg.(section.Arc); ok && arc.Radius < 0 {
		return nil, &ValidationError{Field: path + ".radius", Msg: "arc radius must not be negative"}
	}
	return seg, nil
}
