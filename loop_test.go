package grue

import (
	"testing"

	"github.com/tdewolff/test"
)

var square10 = Loop{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

func TestLoopContains(t *testing.T) {
	test.That(t, square10.Contains(Point{5, 5}))
	test.That(t, square10.Contains(Point{1, 9}))
	test.That(t, !square10.Contains(Point{-1, 5}))
	test.That(t, !square10.Contains(Point{5, 11}))

	// a clockwise hole also reports its interior under non-zero winding
	hole := Loop{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	test.That(t, hole.Contains(Point{5, 5}))
	test.That(t, !hole.Contains(Point{15, 5}))
}

func TestLoopArea(t *testing.T) {
	test.Float(t, square10.Area(), 100.0)
	test.That(t, square10.CCW())

	hole := Loop{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	test.Float(t, hole.Area(), -100.0)
	test.That(t, !hole.CCW())
}

func TestLoopSegments(t *testing.T) {
	segs := square10.Segments()
	test.T(t, len(segs), 4)
	test.T(t, segs[0], Segment{Point{0, 0}, Point{10, 0}})
	test.T(t, segs[3], Segment{Point{0, 10}, Point{0, 0}})

	test.T(t, LoopFromSegments(segs), square10)
}

func TestLoopBounds(t *testing.T) {
	test.T(t, square10.Bounds(), Rect{0, 0, 10, 10})
}

func TestLoopDistance(t *testing.T) {
	test.Float(t, square10.Distance(Point{5, -3}), 3.0)
	test.Float(t, square10.Distance(Point{5, 5}), 5.0)
	test.T(t, square10.ClosestVertex(Point{9, 8}), 2)
}

func TestOpenPath(t *testing.T) {
	p := OpenPath{{0, 0}, {1, 0}, {2, 1}}
	test.T(t, p.First(), Point{0, 0})
	test.T(t, p.Last(), Point{2, 1})
	test.T(t, p.Reverse(), OpenPath{{2, 1}, {1, 0}, {0, 0}})
	test.That(t, !p.Empty())
	test.That(t, OpenPath{{1, 1}}.Empty())
}
