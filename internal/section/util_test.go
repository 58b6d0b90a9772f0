package section

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// rectangle returns a b x h rectangle (b along z) centred on (cy, cz).
func rectangle(b, h, cy, cz float64, hollow bool) Contour {
	return ContourFromPoints([]Point{
		Pt(cy-h/2, cz+b/2),
		Pt(cy+h/2, cz+b/2),
		Pt(cy+h/2, cz-b/2),
		Pt(cy-h/2, cz-b/2),
	}, hollow)
}

func circle(r float64, hollow bool) Contour {
	return Contour{
		Segments: []Segment{Arc{Radius: r, StartAngle: 0, EndAngle: 2 * math.Pi}},
		Hollow:   hollow,
	}
}
