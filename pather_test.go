package grue

import (
	"reflect"
	"testing"

	"github.com/tdewolff/test"
)

func TestPatherHierarchy(t *testing.T) {
	a := centeredSquare(Point{0, 0}, 20.0)
	b := centeredSquare(Point{0, 0}, 4.0)

	p := NewPather(nil)
	p.AddBoundary(a)
	p.AddBoundary(b)

	test.T(t, p.root.tree().Len(), 1)
	nodeA := p.root.tree().Children()[0]
	test.T(t, nodeA.Loop(), a)
	test.T(t, nodeA.Len(), 1)
	test.T(t, nodeA.Children()[0].Loop(), b)

	// insertion order independence
	q := NewPather(nil)
	q.AddBoundary(b)
	q.AddBoundary(a)
	test.T(t, q.root.tree().Len(), 1)
	test.T(t, q.root.tree().Children()[0].Loop(), a)
	test.T(t, q.root.tree().Children()[0].Children()[0].Loop(), b)
}

func TestPatherDispatch(t *testing.T) {
	outline := centeredSquare(Point{0, 0}, 20.0)
	inset := centeredSquare(Point{0, 0}, 18.0)

	p := NewPather(nil)
	p.AddBoundary(outline)
	p.AddLoop(inset, InsetLabel(0))

	node := (*OutlineTree)(p.root.tree().Children()[0])
	test.T(t, node.Insets().tree().Len(), 1)

	// a path inside the inset lands in the inset's graph
	p.AddPath(OpenPath{{-2, 0}, {2, 0}}, InfillLabel())
	inner := (*InsetTree)(node.Insets().tree().Children()[0])
	test.T(t, inner.tree().Value().graph.Len(), 1)

	// a path between outline and inset lands in the outline's graph
	p.AddPath(OpenPath{{-9.5, -9.5}, {-9.2, -9.5}}, InfillLabel())
	test.T(t, node.tree().Value().graph.Len(), 1)

	// a path outside every outline lands in the root's graph
	p.AddPath(OpenPath{{50, 50}, {51, 50}}, SupportLabel())
	test.T(t, p.root.tree().Value().graph.Len(), 1)
}

func TestPatherTravelMinimization(t *testing.T) {
	near := centeredSquare(Point{0, 0}, 10.0)
	far := centeredSquare(Point{100, 0}, 10.0)

	p := NewPather(nil)
	p.AddBoundary(near)
	p.AddBoundary(far)
	p.AddLoop(centeredSquare(Point{0, 0}, 8.0), InsetLabel(0))
	p.AddLoop(centeredSquare(Point{100, 0}, 8.0), InsetLabel(0))
	p.SetHistoryPoint(Point{-5, 0})

	var result LabeledOpenPaths
	p.Optimize(&result)

	test.T(t, len(result), 2)
	test.That(t, result[0].Path.First().X < 50.0, "nearest outline first")
	test.That(t, 50.0 < result[1].Path.First().X)
}

func TestPatherDrained(t *testing.T) {
	p := NewPather(nil)
	p.AddBoundary(centeredSquare(Point{0, 0}, 20.0))
	p.AddLoop(centeredSquare(Point{0, 0}, 18.0), InsetLabel(0))
	p.AddPath(OpenPath{{-2, 0}, {2, 0}}, InfillLabel())

	var result LabeledOpenPaths
	p.Optimize(&result)

	test.That(t, 0 < len(result))
	test.That(t, p.root.Empty())
	test.That(t, p.root.tree().IsRoot())
}

func TestPatherDeterminism(t *testing.T) {
	build := func() *Pather {
		p := NewPather(nil)
		p.AddBoundary(centeredSquare(Point{0, 0}, 20.0))
		p.AddBoundary(centeredSquare(Point{30, 0}, 10.0))
		p.AddLoop(centeredSquare(Point{0, 0}, 18.0), InsetLabel(0))
		p.AddLoop(centeredSquare(Point{0, 0}, 16.0), InsetLabel(1))
		p.AddLoop(centeredSquare(Point{30, 0}, 8.0), InsetLabel(0))
		p.AddPath(OpenPath{{-2, 0}, {2, 0}}, InfillLabel())
		p.AddPath(OpenPath{{28, 0}, {32, 0}}, InfillLabel())
		p.SetHistoryPoint(Point{0, -20})
		return p
	}

	var first, second LabeledOpenPaths
	build().Optimize(&first)
	build().Optimize(&second)
	test.That(t, reflect.DeepEqual(first, second), "optimization must be deterministic")
}

func TestPatherInsetOrder(t *testing.T) {
	// outer shells outrank inner shells and extrude first
	p := NewPather(nil)
	p.AddBoundary(centeredSquare(Point{0, 0}, 20.0))
	p.AddLoop(centeredSquare(Point{0, 0}, 14.0), InsetLabel(1))
	p.AddLoop(centeredSquare(Point{0, 0}, 17.0), InsetLabel(0))

	var result LabeledOpenPaths
	p.Optimize(&result)

	test.T(t, len(result), 2)
	test.T(t, result[0].Label, InsetLabel(0))
	test.T(t, result[1].Label, InsetLabel(1))
}

// uShape returns an outline with a thin slot from the top, splitting the upper
// region into two arms around x=5.
func uShape() Loop {
	return Loop{
		{0, 0}, {10, 0}, {10, 10}, {5.1, 10}, {5.1, 1}, {4.9, 1}, {4.9, 10}, {0, 10},
	}
}

func TestPatherBoundaryRespect(t *testing.T) {
	armA := Loop{{4.55, 8}, {4.85, 8}, {4.85, 8.3}, {4.55, 8.3}}
	armB := Loop{{5.15, 8}, {5.45, 8}, {5.45, 8.3}, {5.15, 8.3}}

	p := NewPather(nil)
	p.AddBoundary(uShape())
	p.AddLoop(armA, InsetLabel(0))
	p.AddLoop(armB, InsetLabel(0))
	p.SetHistoryPoint(Point{4.84, 8})

	var result LabeledOpenPaths
	p.Optimize(&result)

	// the gap between the arms is short, but the connection would cross the
	// slot walls: both loops must stay separate paths
	test.T(t, len(result), 2)

	// control: without the slot the same loops join into one extrusion
	q := NewPather(nil)
	q.AddBoundary(square10)
	q.AddLoop(armA, InsetLabel(0))
	q.AddLoop(armB, InsetLabel(0))
	q.SetHistoryPoint(Point{4.84, 8})

	var merged LabeledOpenPaths
	q.Optimize(&merged)
	test.T(t, len(merged), 1)
}

func TestPatherClear(t *testing.T) {
	p := NewPather(nil)
	p.AddBoundary(centeredSquare(Point{0, 0}, 20.0))
	p.AddLoop(centeredSquare(Point{0, 0}, 18.0), InsetLabel(0))

	p.ClearPaths()
	test.T(t, p.root.tree().Len(), 1) // outline kept

	var result LabeledOpenPaths
	p.Optimize(&result)
	test.T(t, len(result), 0)

	p.AddBoundary(centeredSquare(Point{0, 0}, 20.0))
	p.ClearBoundaries()
	test.T(t, p.root.tree().Len(), 0)
}

func TestPatherHistoryContinuation(t *testing.T) {
	p := NewPather(nil)
	p.AddBoundary(centeredSquare(Point{0, 0}, 10.0))
	p.AddLoop(centeredSquare(Point{0, 0}, 8.0), InsetLabel(0))
	p.SetHistoryPoint(Point{-20, 0})

	var result LabeledOpenPaths
	p.Optimize(&result)
	test.T(t, p.HistoryPoint(), result[len(result)-1].Path.Last())

	// a second layer continues from where the first ended
	p.AddBoundary(centeredSquare(Point{0, 0}, 10.0))
	p.AddLoop(centeredSquare(Point{0, 0}, 8.0), InsetLabel(0))

	var second LabeledOpenPaths
	p.Optimize(&second)
	test.T(t, second[0].Path.First(), result[len(result)-1].Path.Last())
}

func TestPatherOpenBoundary(t *testing.T) {
	// an open boundary path forces the whole-layer bounder and blocks merges
	p := NewPather(nil)
	p.AddBoundary(square10)
	p.AddLoop(Loop{{1, 1}, {4, 1}, {4, 2}, {1, 2}}, InsetLabel(0))
	p.AddLoop(Loop{{4.4, 1}, {7, 1}, {7, 2}, {4.4, 2}}, InsetLabel(0))
	p.AddBoundaryPath(OpenPath{{4.2, 0.5}, {4.2, 2.5}})
	p.SetHistoryPoint(Point{3.9, 1})

	var result LabeledOpenPaths
	p.Optimize(&result)
	test.T(t, len(result), 2)
}
