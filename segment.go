package grue

import (
	"fmt"
	"math"
)

// Segment is a directed straight line segment from A to B.
type Segment struct {
	A, B Point
}

// Length returns the length of the segment.
func (s Segment) Length() float64 {
	return s.B.Sub(s.A).Length()
}

// SquaredLength returns the squared length of the segment.
func (s Segment) SquaredLength() float64 {
	return s.B.Sub(s.A).SquaredLength()
}

// Equals returns true if both segments have equal endpoints with tolerance Epsilon.
func (s Segment) Equals(t Segment) bool {
	return s.A.Equals(t.A) && s.B.Equals(t.B)
}

// Reverse swaps the segment's direction.
func (s Segment) Reverse() Segment {
	return Segment{s.B, s.A}
}

// Elongate extends the segment by dist along its own direction, at the start and/or the end.
func (s Segment) Elongate(dist float64, fromStart, fromEnd bool) Segment {
	l := s.B.Sub(s.A).Norm(dist)
	if fromEnd {
		s.B = s.B.Add(l)
	}
	if fromStart {
		s.A = s.A.Sub(l)
	}
	return s
}

// Bounds returns the bounding rectangle of the segment.
func (s Segment) Bounds() Rect {
	x0, x1 := math.Min(s.A.X, s.B.X), math.Max(s.A.X, s.B.X)
	y0, y1 := math.Min(s.A.Y, s.B.Y), math.Max(s.A.Y, s.B.Y)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Distance returns the distance from P to the segment.
func (s Segment) Distance(p Point) float64 {
	d := s.B.Sub(s.A)
	l2 := d.SquaredLength()
	if equal(l2, 0.0) {
		return p.Sub(s.A).Length()
	}
	t := p.Sub(s.A).Dot(d) / l2
	t = math.Max(0.0, math.Min(1.0, t))
	return p.Sub(s.A.Interpolate(s.B, t)).Length()
}

func (s Segment) String() string {
	return fmt.Sprintf("%v--%v", s.A, s.B)
}

// Intersect returns the intersection point of both segments, or false when the
// segments do not cross or are (anti)parallel. Intersections at the segment end
// points are reported.
// see https://www.geometrictools.com/GTE/Mathematics/IntrLine2Line2.h
func (s Segment) Intersect(t Segment) (Point, bool) {
	if s.A.Equals(s.B) || t.A.Equals(t.B) {
		return Point{}, false // zero-length segment
	}

	da := s.B.Sub(s.A)
	db := t.B.Sub(t.A)
	if angleEqual(da.Angle(), db.Angle()) || angleEqual(da.Angle(), db.Angle()+math.Pi) {
		return Point{}, false // parallel
	} else if s.B.Equals(t.A) {
		// handle common endpoint cases to avoid numerical issues
		return s.B, true
	} else if s.A.Equals(t.B) {
		return s.A, true
	}

	div := da.PerpDot(db)
	ta := db.PerpDot(s.A.Sub(t.A)) / div
	tb := da.PerpDot(s.A.Sub(t.A)) / div
	if inInterval(ta, 0.0, 1.0) && inInterval(tb, 0.0, 1.0) {
		return s.A.Interpolate(s.B, ta), true
	}
	return Point{}, false
}

// Crosses is true when both segments have a secant intersection, ie. they cut
// each other properly in their interiors. Touching end points do not count.
func (s Segment) Crosses(t Segment) bool {
	if s.A.Equals(s.B) || t.A.Equals(t.B) {
		return false
	}

	da := s.B.Sub(s.A)
	db := t.B.Sub(t.A)
	if angleEqual(da.Angle(), db.Angle()) || angleEqual(da.Angle(), db.Angle()+math.Pi) {
		return false
	}

	div := da.PerpDot(db)
	ta := db.PerpDot(s.A.Sub(t.A)) / div
	tb := da.PerpDot(s.A.Sub(t.A)) / div
	return Epsilon < ta && ta < 1.0-Epsilon && Epsilon < tb && tb < 1.0-Epsilon
}

// areaSign returns twice the signed area of triangle abc, positive when abc
// winds counter clockwise.
func areaSign(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// convexVertex is true when the corner i-j-k turns counter clockwise, ie. the
// vertex is convex on a counter clockwise wound (solid) polygon and the inset
// miters instead of bridging.
func convexVertex(i, j, k Point) bool {
	return 0.0 < areaSign(i, j, k)
}

// insetDirection returns the unit normal along which the segment moves when
// inset: left of the direction of travel, which is the material side both for
// counter clockwise solids and clockwise holes.
func insetDirection(s Segment) Point {
	return s.B.Sub(s.A).Rot90CCW().Norm(1.0)
}
