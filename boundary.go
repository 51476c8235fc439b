package grue

// Bounder is a predicate over candidate connection segments: it returns true
// iff the segment does not cross any outline constraint and may be extruded.
type Bounder func(Segment) bool

// passAll accepts every segment; used when no boundaries apply.
func passAll(Segment) bool {
	return true
}

// Boundaries is a collection of constraint segments that extrusion connections
// may not cross. Segments are kept in a boxlist: a flat list pruned by a
// bounding rectangle per query.
type Boundaries struct {
	segments []Segment
	bounds   Rect
}

// Add inserts constraint segments.
func (b *Boundaries) Add(segs ...Segment) {
	for _, seg := range segs {
		if len(b.segments) == 0 {
			b.bounds = seg.Bounds()
		} else {
			b.bounds = b.bounds.Add(seg.Bounds())
		}
		b.segments = append(b.segments, seg)
	}
}

// AddLoop inserts every segment of the loop as a constraint.
func (b *Boundaries) AddLoop(loop Loop) {
	b.Add(loop.Segments()...)
}

// AddPath inserts every segment of the open path as a constraint.
func (b *Boundaries) AddPath(path OpenPath) {
	for i := 1; i < len(path); i++ {
		b.Add(Segment{path[i-1], path[i]})
	}
}

// Empty returns true when no constraints were added.
func (b *Boundaries) Empty() bool {
	return len(b.segments) == 0
}

// Len returns the number of constraint segments.
func (b *Boundaries) Len() int {
	return len(b.segments)
}

// Crosses is true when seg properly crosses any constraint segment. Touching a
// constraint at an end point does not count as crossing.
func (b *Boundaries) Crosses(seg Segment) bool {
	if !b.bounds.Overlaps(seg.Bounds()) {
		return false
	}
	for _, bseg := range b.segments {
		if seg.Crosses(bseg) {
			return true
		}
	}
	return false
}

// Bounder returns the predicate accepting segments that cross no constraint.
func (b *Boundaries) Bounder() Bounder {
	if b == nil || b.Empty() {
		return passAll
	}
	return func(seg Segment) bool {
		return !b.Crosses(seg)
	}
}
