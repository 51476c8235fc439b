package grue

// OpenPath is a non-closed ordered sequence of points.
type OpenPath []Point

// Empty returns true if the path has fewer than two points.
func (p OpenPath) Empty() bool {
	return len(p) < 2
}

// First returns the first point of the path.
func (p OpenPath) First() Point {
	return p[0]
}

// Last returns the last point of the path.
func (p OpenPath) Last() Point {
	return p[len(p)-1]
}

// Reverse reverses the path in place and returns it.
func (p OpenPath) Reverse() OpenPath {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}

////////////////////////////////////////////////////////////////

// Loop is a closed oriented polygon given by its vertices. The closing edge
// from the last vertex back to the first is implied. Counter clockwise loops
// bound solid regions, clockwise loops bound holes.
type Loop []Point

// LoopFromSegments builds a loop from a cyclic segment list, taking the start
// point of each segment.
func LoopFromSegments(segs []Segment) Loop {
	loop := make(Loop, len(segs))
	for i, seg := range segs {
		loop[i] = seg.A
	}
	return loop
}

// Empty returns true if the loop has fewer than three vertices.
func (l Loop) Empty() bool {
	return len(l) < 3
}

// Segments returns the loop as a cyclic segment list.
func (l Loop) Segments() []Segment {
	if len(l) < 2 {
		return nil
	}
	segs := make([]Segment, len(l))
	for i := range l {
		segs[i] = Segment{l[i], l[(i+1)%len(l)]}
	}
	return segs
}

// Bounds returns the bounding rectangle of the loop.
func (l Loop) Bounds() Rect {
	if len(l) == 0 {
		return Rect{}
	}
	r := Rect{l[0].X, l[0].Y, 0.0, 0.0}
	for _, p := range l[1:] {
		r = r.AddPoint(p)
	}
	return r
}

// FillCount returns the number of times the test point is enclosed by the loop.
// Counter clockwise enclosures are counted positively and clockwise enclosures
// negatively.
func (l Loop) FillCount(x, y float64) int {
	test := Point{x, y}
	count := 0
	prevCoord := l[len(l)-1]
	for _, coord := range l {
		// see https://wrf.ecse.rpi.edu//Research/Short_Notes/pnpoly.html
		if (test.Y < coord.Y) != (test.Y < prevCoord.Y) &&
			test.X < (prevCoord.X-coord.X)*(test.Y-coord.Y)/(prevCoord.Y-coord.Y)+coord.X {
			if prevCoord.Y < coord.Y {
				count++
			} else {
				count--
			}
		}
		prevCoord = coord
	}
	return count
}

// Contains is true when P lies inside the loop under the non-zero winding rule.
func (l Loop) Contains(p Point) bool {
	if l.Empty() {
		return false
	}
	return l.FillCount(p.X, p.Y) != 0
}

// Area returns the loop's signed area, positive for counter clockwise winding.
func (l Loop) Area() float64 {
	a := 0.0
	for i := range l {
		a += l[i].PerpDot(l[(i+1)%len(l)])
	}
	return a / 2.0
}

// CCW is true when the loop winds counter clockwise, ie. bounds a solid region.
func (l Loop) CCW() bool {
	return 0.0 <= l.Area()
}

// RepresentativePoint returns a point of the loop usable for containment tests
// against other, disjoint loops.
func (l Loop) RepresentativePoint() Point {
	if len(l) == 0 {
		return Point{}
	}
	return l[0]
}

// Distance returns the distance from P to the nearest point on the loop.
func (l Loop) Distance(p Point) float64 {
	d := 0.0
	for i, seg := range l.Segments() {
		if di := seg.Distance(p); i == 0 || di < d {
			d = di
		}
	}
	return d
}

// ClosestVertex returns the index of the loop vertex nearest to P.
func (l Loop) ClosestVertex(p Point) int {
	best := 0
	bestD := 0.0
	for i, q := range l {
		if d := q.Sub(p).SquaredLength(); i == 0 || d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
