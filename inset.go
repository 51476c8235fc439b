package grue

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// Inset errors. Errors are contained to the failing loop; callers skip the loop
// and continue with the remainder of the layer.
var (
	ErrOpenPolygon    = errors.New("polygon is not closed")
	ErrTooFewSegments = errors.New("not enough segments to form a closed polygon")
	ErrCollapsed      = errors.New("polygon collapsed to nothing")
)

// Inset computes the polygon inset inward over distance dist. Segments of the
// result shorter than cutoff are merged into their successor. The input must be
// a closed cyclic segment list; counter clockwise input winds around a solid.
func Inset(segments []Segment, dist, cutoff float64) ([]Segment, error) {
	ins := Insetter{}
	return ins.Inset(segments, dist, cutoff)
}

// Insetter computes polygon insets. The zero value uses default tolerances;
// set Debug to dump every pipeline step as OpenSCAD modules.
type Insetter struct {
	// CollapseTolerance is the coincidence tolerance when probing polygon
	// connectivity; zero means the default of 1e-6.
	CollapseTolerance float64
	// ElongationFactor scales dist into the elongation used to intersect
	// nearly parallel segments and bisector rays; zero means the default 100.
	ElongationFactor float64
	// Debug receives per-step segment dumps when non-nil.
	Debug *SCADWriter
}

// Inset computes the polygon inset inward over distance dist, see Inset.
func (ins *Insetter) Inset(segments []Segment, dist, cutoff float64) ([]Segment, error) {
	if len(segments) < 2 {
		return nil, fmt.Errorf("%w: %d segments", ErrTooFewSegments, len(segments))
	}

	tol := ins.CollapseTolerance
	if tol == 0.0 {
		tol = 1e-6
	}
	elongation := dist * ins.ElongationFactor
	if ins.ElongationFactor == 0.0 {
		elongation = dist * 100.0
	}

	bisectors, err := createBisectors(segments, tol)
	if err != nil {
		return nil, err
	}
	relevant := removeCollapsedSegments(segments, bisectors, dist, elongation)
	if len(relevant) < 2 {
		return nil, fmt.Errorf("%w: inset distance %g", ErrCollapsed, dist)
	}
	raw := insetSegments(relevant, dist)
	final := elongateAndTrimSegments(raw, elongation)
	final = removeShortSegments(final, cutoff)

	if ins.Debug != nil {
		ins.Debug.WriteStep(segments, bisectors, relevant, raw, final)
	}
	return final, nil
}

// Insets computes up to n successive inset shells, each inset by dist from the
// previous. It returns the shells that fit; the error is non-nil only when the
// first shell already fails for a reason other than full collapse.
func (ins *Insetter) Insets(segments []Segment, dist, cutoff float64, n int) ([][]Segment, error) {
	var shells [][]Segment
	current := segments
	for i := 0; i < n; i++ {
		inset, err := ins.Inset(current, dist, cutoff)
		if err != nil {
			if errors.Is(err, ErrCollapsed) {
				return shells, nil
			} else if len(shells) == 0 {
				return nil, err
			}
			return shells, nil
		}
		shells = append(shells, inset)
		current = inset
	}
	return shells, nil
}

// createBisectors returns for each vertex the inward unit bisector between the
// adjacent segments' inset directions. The vertex of segment i is its start
// point, shared with the end of segment i-1 within tolerance tol.
func createBisectors(segments []Segment, tol float64) ([]Point, error) {
	bisectors := make([]Point, len(segments))
	for i, seg := range segments {
		prevSeg := segments[(i+len(segments)-1)%len(segments)]
		if !prevSeg.B.EqualsTol(seg.A, tol) {
			return nil, fmt.Errorf("%w: segment %d starts at %v but %d ends at %v",
				ErrOpenPolygon, i, seg.A, (i+len(segments)-1)%len(segments), prevSeg.B)
		}
		bisectors[i] = insetDirection(prevSeg).Add(insetDirection(seg)).Norm(1.0)
	}
	return bisectors, nil
}

// triangleAltitude returns the altitude from side a in the triangle with side
// lengths a, b, c, or infinity when the triangle is degenerate.
// Heron's formula suffers catastrophic cancellation for needle triangles; use
// the numerically stable form instead.
// see https://people.eecs.berkeley.edu/~wkahan/Triangle.pdf
func triangleAltitude(a, b, c float64) float64 {
	// sort so that x >= y >= z
	x, y, z := a, b, c
	if x < y {
		x, y = y, x
	}
	if y < z {
		y, z = z, y
	}
	if x < y {
		x, y = y, x
	}
	f := (x + (y + z)) * (z - (x - y)) * (z + (x - y)) * (x + (y - z))
	if f <= 0.0 {
		return math.Inf(1)
	}
	area := 0.25 * math.Sqrt(f)
	return 2.0 * area / a
}

// attachSegments elongates both segments towards each other and joins them at
// their intersection. It returns false and leaves both segments untouched when
// the elongated segments still do not intersect.
func attachSegments(first, next *Segment, elongation float64) bool {
	a := first.Elongate(elongation, false, true)
	b := next.Elongate(elongation, true, false)
	if p, ok := a.Intersect(b); ok {
		first.B = p
		next.A = p
		return true
	}
	return false
}

// edgeCollapse reports whether the segment disappears at the given inset
// distance: the two vertex bisectors meet at an altitude below dist.
func edgeCollapse(segment Segment, bisector0, bisector1 Point, dist, elongation float64) bool {
	ray0 := Segment{segment.A, segment.A.Add(bisector0)}
	ray1 := Segment{segment.B.Add(bisector1), segment.B}
	if !attachSegments(&ray0, &ray1, elongation) {
		return false
	}
	top := ray0.B
	a := segment.Length()
	b := segment.A.Sub(top).Length()
	c := segment.B.Sub(top).Length()
	return triangleAltitude(a, b, c) < dist
}

// removeCollapsedSegments drops the segments that collapse at the given inset
// distance. Segment i carries bisector i at its start and bisector i+1 at its
// end.
func removeCollapsedSegments(segments []Segment, bisectors []Point, dist, elongation float64) []Segment {
	relevant := make([]Segment, 0, len(segments))
	for i, seg := range segments {
		if !edgeCollapse(seg, bisectors[i], bisectors[(i+1)%len(segments)], dist, elongation) {
			relevant = append(relevant, seg)
		}
	}
	return relevant
}

// insetSegments translates every segment inward over dist.
func insetSegments(segments []Segment, dist float64) []Segment {
	insets := make([]Segment, len(segments))
	for i, seg := range segments {
		d := insetDirection(seg).Mul(dist)
		insets[i] = Segment{seg.A.Add(d), seg.B.Add(d)}
	}
	return insets
}

// elongateAndTrimSegments joins each consecutive pair of raw insets at the
// intersection of their elongations. Convex vertices miter; reflex vertices
// meet at the bisector side. A pair that fails to intersect is left untrimmed.
func elongateAndTrimSegments(raw []Segment, elongation float64) []Segment {
	segments := make([]Segment, len(raw))
	copy(segments, raw)
	for i := range segments {
		prev := (i + len(segments) - 1) % len(segments)
		attachSegments(&segments[prev], &segments[i], elongation)
	}
	return segments
}

// removeShortSegments merges segments shorter than cutoff into their successor.
// The merged segment is tested again, so a run of short segments folds into one.
func removeShortSegments(segments []Segment, cutoff float64) []Segment {
	if cutoff <= 0.0 {
		return segments
	}
	cutoff2 := cutoff * cutoff
	result := make([]Segment, 0, len(segments))
	for i := 0; i < len(segments); i++ {
		seg := segments[i]
		for seg.SquaredLength() < cutoff2 && i+1 < len(segments) {
			i++
			seg.B = segments[i].B
		}
		result = append(result, seg)
	}
	if 2 < len(result) && result[len(result)-1].SquaredLength() < cutoff2 {
		result[0].A = result[len(result)-1].A
		result = result[:len(result)-1]
	}
	return result
}

// diagnoseSegments prints a per-segment table of convexity, length, gap to the
// previous segment, and corner angle.
func diagnoseSegments(w io.Writer, title string, segments []Segment) {
	fmt.Fprintf(w, "%s\nid\tconvex\tlength\tgap\tangle\tsegment\n", title)
	for i, seg := range segments {
		prevSeg := segments[(i+len(segments)-1)%len(segments)]
		gap := prevSeg.B.Sub(seg.A).Length()
		angle := seg.B.Sub(seg.A).AngleBetween(prevSeg.A.Sub(seg.A))
		fmt.Fprintf(w, "%d\t%v\t%g\t%g\t%g\t%v\n",
			i, convexVertex(prevSeg.A, seg.A, seg.B), seg.Length(), gap, angle, seg)
	}
}
