package grue

import (
	"fmt"
	"io"
	"math"

	"github.com/tdewolff/minify/v2"
	minifysvg "github.com/tdewolff/minify/v2/svg"
)

var svgColors = []string{"#000", "#d00", "#0a0", "#00d", "#c80", "#808"}

// DumpSVG writes an SVG snapshot of the given segment sets, one polyline color
// per set, minified through the SVG minifier. Diagnostic only.
func DumpSVG(w io.Writer, sets ...[]Segment) error {
	bounds := Rect{}
	first := true
	for _, set := range sets {
		for _, seg := range set {
			if first {
				bounds = seg.Bounds()
				first = false
			} else {
				bounds = bounds.Add(seg.Bounds())
			}
		}
	}
	margin := 0.05 * math.Max(bounds.W, bounds.H)
	if margin == 0.0 {
		margin = 1.0
	}

	m := minify.New()
	m.AddFunc("image/svg+xml", minifysvg.Minify)
	mw := m.Writer("image/svg+xml", w)

	fmt.Fprintf(mw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`+"\n",
		bounds.X-margin, -bounds.Y-bounds.H-margin, bounds.W+2.0*margin, bounds.H+2.0*margin)
	for i, set := range sets {
		color := svgColors[i%len(svgColors)]
		for _, seg := range set {
			// flip y so that counter clockwise loops render counter clockwise
			fmt.Fprintf(mw, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="%g"/>`+"\n",
				seg.A.X, -seg.A.Y, seg.B.X, -seg.B.Y, color, 0.01*math.Max(bounds.W, bounds.H))
		}
	}
	fmt.Fprintf(mw, "</svg>\n")
	return mw.Close()
}
