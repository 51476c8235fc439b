package grue

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestInsetSquare(t *testing.T) {
	inset, err := Inset(square10.Segments(), 1.0, 0.01)
	test.Error(t, err)
	test.T(t, len(inset), 4)

	want := Loop{{1, 1}, {9, 1}, {9, 9}, {1, 9}}
	for i, seg := range inset {
		test.That(t, seg.A.EqualsTol(want[i], 1e-6), "segment", i, "start", seg.A)
		test.That(t, seg.B.EqualsTol(want[(i+1)%4], 1e-6), "segment", i, "end", seg.B)
	}
}

func TestInsetTriangleCollapse(t *testing.T) {
	triangle := Loop{{0, 0}, {2, 0}, {1, math.Sqrt(3.0)}}
	_, err := Inset(triangle.Segments(), 2.0, 0.01)
	test.That(t, errors.Is(err, ErrCollapsed), "expected collapse, got", err)
}

func TestInsetCollapseThreshold(t *testing.T) {
	// right triangle with legs 4 and 3: all edges collapse at the inradius
	// (4+3-5)/2 = 1, where the vertex bisectors meet
	triangle := Loop{{0, 0}, {4, 0}, {0, 3}}

	inset, err := Inset(triangle.Segments(), 0.9, 0.001)
	test.Error(t, err)
	test.T(t, len(inset), 3)

	_, err = Inset(triangle.Segments(), 1.1, 0.001)
	test.That(t, errors.Is(err, ErrCollapsed))
}

func TestInsetThinRectangleCollapse(t *testing.T) {
	thin := Loop{{0, 0}, {10, 0}, {10, 1}, {0, 1}}
	_, err := Inset(thin.Segments(), 0.6, 0.01)
	test.That(t, errors.Is(err, ErrCollapsed))
}

func TestInsetRegularPolygon(t *testing.T) {
	// the inset of a regular n-gon of circumradius R is a regular n-gon of
	// circumradius R - d/cos(PI/n)
	for _, n := range []int{5, 6, 8, 12} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			R, d := 10.0, 1.0
			loop := make(Loop, n)
			for i := range loop {
				phi := 2.0 * math.Pi * float64(i) / float64(n)
				loop[i] = Point{R * math.Cos(phi), R * math.Sin(phi)}
			}

			inset, err := Inset(loop.Segments(), d, 0.001)
			test.Error(t, err)
			test.T(t, len(inset), n)

			want := R - d/math.Cos(math.Pi/float64(n))
			for _, seg := range inset {
				test.That(t, equalTol(seg.A.Length(), want, 1e-6), "vertex radius", seg.A.Length(), "want", want)
			}
		})
	}
}

func TestInsetHoleExpands(t *testing.T) {
	// clockwise hole loops inset away from the hole interior, into the material
	hole := Loop{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	inset, err := Inset(hole.Segments(), 1.0, 0.01)
	test.Error(t, err)

	got := LoopFromSegments(inset)
	test.Float(t, got.Area(), -144.0)
	test.That(t, got.Contains(Point{-0.5, 5}))
}

func TestInsetReflexVertex(t *testing.T) {
	// an L-shape has one reflex vertex at (5,5); the inset must stay closed
	// and shrink in area
	l := Loop{{0, 0}, {10, 0}, {10, 5}, {5, 5}, {5, 10}, {0, 10}}
	inset, err := Inset(l.Segments(), 0.5, 0.01)
	test.Error(t, err)

	for i, seg := range inset {
		next := inset[(i+1)%len(inset)]
		test.That(t, seg.B.EqualsTol(next.A, 1e-9), "gap after segment", i)
	}
	got := LoopFromSegments(inset)
	test.That(t, got.Area() < l.Area())
	test.That(t, got.Contains(Point{1, 1}))
	test.That(t, !got.Contains(Point{5.2, 5.2}))
}

func TestInsetErrors(t *testing.T) {
	_, err := Inset([]Segment{{Point{0, 0}, Point{1, 0}}}, 0.1, 0.01)
	test.That(t, errors.Is(err, ErrTooFewSegments))

	open := []Segment{
		{Point{0, 0}, Point{10, 0}},
		{Point{10, 5}, Point{0, 5}}, // does not start where the previous ends
		{Point{0, 5}, Point{0, 0}},
	}
	_, err = Inset(open, 0.1, 0.01)
	test.That(t, errors.Is(err, ErrOpenPolygon))
}

func TestInsetShells(t *testing.T) {
	ins := Insetter{}
	shells, err := ins.Insets(square10.Segments(), 1.0, 0.01, 3)
	test.Error(t, err)
	test.T(t, len(shells), 3)
	for i, shell := range shells {
		got := LoopFromSegments(shell)
		side := 10.0 - 2.0*float64(i+1)
		test.That(t, equalTol(got.Area(), side*side, 1e-6), "shell", i, "area", got.Area())
	}

	// stop early once the shells collapse
	shells, err = ins.Insets(square10.Segments(), 2.0, 0.01, 5)
	test.Error(t, err)
	test.T(t, len(shells), 2)
}

func TestBisectors(t *testing.T) {
	loops := []Loop{
		square10,
		{{0, 0}, {10, 0}, {10, 5}, {5, 5}, {5, 10}, {0, 10}},
		{{0, 0}, {4, 0}, {0, 3}},
	}
	for _, loop := range loops {
		bisectors, err := createBisectors(loop.Segments(), 1e-6)
		test.Error(t, err)
		for i, b := range bisectors {
			test.That(t, math.Abs(b.Length()-1.0) < 1e-9, "bisector", i, "length", b.Length())
		}
	}

	// the bisector at the square's origin corner points along the diagonal
	bisectors, _ := createBisectors(square10.Segments(), 1e-6)
	test.That(t, bisectors[0].EqualsTol(Point{math.Sqrt2 / 2.0, math.Sqrt2 / 2.0}, 1e-9))
}

func TestTriangleAltitude(t *testing.T) {
	test.Float(t, triangleAltitude(4.0, 5.0, 3.0), 3.0)
	test.Float(t, triangleAltitude(10.0, math.Sqrt(50.0), math.Sqrt(50.0)), 5.0)
	test.That(t, math.IsInf(triangleAltitude(2.0, 1.0, 1.0), 1)) // degenerate
	test.That(t, math.IsInf(triangleAltitude(5.0, 1.0, 1.0), 1)) // impossible
}

func TestRemoveShortSegments(t *testing.T) {
	segs := []Segment{
		{Point{0, 0}, Point{10, 0}},
		{Point{10, 0}, Point{10.005, 0.005}}, // short
		{Point{10.005, 0.005}, Point{10, 10}},
		{Point{10, 10}, Point{0, 10}},
		{Point{0, 10}, Point{0, 0}},
	}
	merged := removeShortSegments(segs, 0.01)
	test.T(t, len(merged), 4)
	test.T(t, merged[1], Segment{Point{10, 0}, Point{10, 10}})

	// a run of short segments folds into one
	run := []Segment{
		{Point{0, 0}, Point{10, 0}},
		{Point{10, 0}, Point{10.002, 0}},
		{Point{10.002, 0}, Point{10.004, 0}},
		{Point{10.004, 0}, Point{10, 10}},
		{Point{10, 10}, Point{0, 0}},
	}
	merged = removeShortSegments(run, 0.01)
	test.T(t, len(merged), 3)
	test.T(t, merged[1], Segment{Point{10, 0}, Point{10, 10}})
}

func equalTol(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}
