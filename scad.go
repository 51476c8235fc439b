package grue

import (
	"fmt"
	"io"
)

// SCADWriter dumps per-step segment sets as OpenSCAD modules, one group of
// modules per inset iteration, with selector modules to scrub through the
// iterations. Diagnostic only; the output is not part of any contract.
type SCADWriter struct {
	w     io.Writer
	count int
	z     float64
	dz    float64
	color int
	err   error
}

// NewSCADWriter returns a writer emitting to w, including the preamble that
// defines the segment drawing module.
func NewSCADWriter(w io.Writer) *SCADWriter {
	s := &SCADWriter{w: w, dz: 0.1}
	s.printf("module loop_segments3(segments, ball=true)\n{\n")
	s.printf("\tif(ball) corner(x=segments[0][0][0], y=segments[0][0][1], z=segments[0][0][2], diameter=0.25, faces=12, thickness_over_width=1);\n")
	s.printf("\tfor(seg = segments)\n\t{\n")
	s.printf("\t\ttube(x1=seg[0][0], y1=seg[0][1], z1=seg[0][2], x2=seg[1][0], y2=seg[1][1], z2=seg[1][2], diameter1=0.1, diameter2=0.05, faces=4, thickness_over_width=1);\n")
	s.printf("\t}\n}\n\n")
	return s
}

func (s *SCADWriter) printf(format string, args ...interface{}) {
	if s.err == nil {
		_, s.err = fmt.Fprintf(s.w, format, args...)
	}
}

// WriteStep dumps one inset iteration: the input outline, the vertex bisector
// rays, the surviving segments, the raw insets, and the final insets.
func (s *SCADWriter) WriteStep(outlines []Segment, bisectors []Point, relevant, raw, final []Segment) {
	s.color = 1 - s.color
	outlineStyle := fmt.Sprintf("color([%d,%d,%d,1])loop_segments3", s.color, s.color, 1-s.color)

	rays := make([]Segment, len(bisectors))
	for i, b := range bisectors {
		rays[i] = Segment{outlines[i].A, outlines[i].A.Add(b.Mul(2.0))}
	}

	z := s.z
	z = s.writeSegments("outlines_", outlineStyle, outlines, z)
	rayz := z
	z = s.writeSegments("relevants_", "color([0.5,0.5,0,1])loop_segments3", relevant, z)
	s.writeSegments("bisectors_", "color([0.75,0.5,0.2,1])loop_segments3", rays, rayz)
	z = s.writeSegments("raw_insets_", "color([1,0,0.4,1])loop_segments3", raw, z)
	z += 2.0 * s.dz
	z = s.writeSegments("final_insets_", "color([0,0.5,0,1])loop_segments3", final, z)
	s.z = z
	s.count++
}

func (s *SCADWriter) writeSegments(prefix, style string, segments []Segment, z float64) float64 {
	s.printf("module %s%d()\n{\n\tsegments = [", prefix, s.count)
	for i, seg := range segments {
		if 0 < i {
			s.printf(", ")
		}
		s.printf("[[%g, %g, %g], [%g, %g, %g]]", seg.A.X, seg.A.Y, z, seg.B.X, seg.B.Y, z)
	}
	s.printf("];\n\t%s(segments, false);\n}\n\n", style)
	return z + s.dz
}

func (s *SCADWriter) writeMinMax(name, prefix string) {
	s.printf("module %s(min, max)\n{\n", name)
	for i := 0; i < s.count; i++ {
		s.printf("\tif(min <= %d && %d <= max) %s%d();\n", i, i, prefix, i)
	}
	s.printf("}\n\n")
}

// Close writes the selector modules and the trailing invocation. The writer is
// unusable afterwards.
func (s *SCADWriter) Close() error {
	s.writeMinMax("draw_outlines", "outlines_")
	s.writeMinMax("draw_bisectors", "bisectors_")
	s.writeMinMax("draw_relevants", "relevants_")
	s.writeMinMax("draw_raw_insets", "raw_insets_")
	s.writeMinMax("draw_final_insets", "final_insets_")
	s.printf("min = 0;\nmax = %d;\n\n", s.count-1)
	s.printf("draw_outlines(min, max);\n")
	s.printf("draw_bisectors(min, max);\n")
	s.printf("draw_relevants(min, max);\n")
	s.printf("draw_raw_insets(min, max);\n")
	s.printf("draw_final_insets(min, max);\n")
	return s.err
}
