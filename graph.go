package grue

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
)

// SpatialGraph is a mutable store of labeled paths and loops with a spatial
// index over their entry points. It buffers a node's extrudable items until
// Optimize drains it into an ordered sequence of labeled open paths.
type SpatialGraph struct {
	entries []*graphEntry
}

// graphEntry is one labeled item in the graph. Open paths may be entered at
// either end, loops at any vertex.
type graphEntry struct {
	points OpenPath
	label  PathLabel
	closed bool
	taken  bool
}

// graphEndpoint is a candidate entry location of an item, indexed in the
// quadtree.
type graphEndpoint struct {
	entry *graphEntry
	index int
}

func (e *graphEndpoint) Point() orb.Point {
	p := e.entry.points[e.index]
	return orb.Point{p.X, p.Y}
}

// InsertPath adds a labeled open path. Paths shorter than two points are
// dropped.
func (g *SpatialGraph) InsertPath(path OpenPath, label PathLabel) {
	if path.Empty() {
		return
	}
	g.entries = append(g.entries, &graphEntry{points: path, label: label})
}

// InsertLoop adds a labeled loop. Do not use for inset loops that belong in an
// inset tree; those enter the hierarchy as tree nodes.
func (g *SpatialGraph) InsertLoop(loop Loop, label PathLabel) {
	if loop.Empty() {
		return
	}
	g.entries = append(g.entries, &graphEntry{points: OpenPath(loop), label: label, closed: true})
}

// Empty returns true when the graph holds no items.
func (g *SpatialGraph) Empty() bool {
	return len(g.entries) == 0
}

// Len returns the number of items in the graph.
func (g *SpatialGraph) Len() int {
	return len(g.entries)
}

// Swap exchanges the contents of both graphs in constant time.
func (g *SpatialGraph) Swap(other *SpatialGraph) {
	g.entries, other.entries = other.entries, g.entries
}

// Clear drops all items.
func (g *SpatialGraph) Clear() {
	g.entries = nil
}

// Optimize drains the graph into result. Items are emitted by decreasing label
// priority; within a label, greedily by distance from the running entry point.
// An item whose connection from the previous end point is short and does not
// cross a boundary is appended to the running path as a continuous extrusion;
// otherwise a new labeled path begins. entry is updated to the last emitted
// point.
func (g *SpatialGraph) Optimize(result *LabeledOpenPaths, entry *Point, cfg *Config, preferred LabelPreference, bounder Bounder) {
	if len(g.entries) == 0 {
		return
	}
	if bounder == nil {
		bounder = passAll
	}

	// order the labels present by decreasing priority
	var labels []PathLabel
	for _, e := range g.entries {
		found := false
		for _, label := range labels {
			if label == e.label {
				found = true
				break
			}
		}
		if !found {
			labels = append(labels, e.label)
		}
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return preferred(labels[i], labels[j])
	})

	index := g.buildIndex()
	for _, label := range labels {
		for {
			ep := g.nearest(index, *entry, label, bounder)
			if ep == nil {
				break
			}
			ep.entry.taken = true
			path := ep.entry.extract(ep.index)
			g.emit(result, entry, cfg, label, path, bounder)
		}
	}
	g.entries = nil
}

// buildIndex indexes every entry point of every item in a quadtree.
func (g *SpatialGraph) buildIndex() *quadtree.Quadtree {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{0, 0}}
	first := true
	for _, e := range g.entries {
		for _, p := range e.points {
			if first {
				bound = orb.Bound{Min: orb.Point{p.X, p.Y}, Max: orb.Point{p.X, p.Y}}
				first = false
			} else {
				bound = bound.Extend(orb.Point{p.X, p.Y})
			}
		}
	}
	index := quadtree.New(bound)
	for _, e := range g.entries {
		if e.closed {
			for i := range e.points {
				index.Add(&graphEndpoint{e, i})
			}
		} else {
			index.Add(&graphEndpoint{e, 0})
			index.Add(&graphEndpoint{e, len(e.points) - 1})
		}
	}
	return index
}

// nearest returns the closest untaken endpoint with the given label, preferring
// endpoints whose connection from entry does not cross a boundary.
func (g *SpatialGraph) nearest(index *quadtree.Quadtree, entry Point, label PathLabel, bounder Bounder) *graphEndpoint {
	matching := func(crossing bool) *graphEndpoint {
		ptr := index.Matching(orb.Point{entry.X, entry.Y}, func(p orb.Pointer) bool {
			ep := p.(*graphEndpoint)
			if ep.entry.taken || ep.entry.label != label {
				return false
			}
			if !crossing {
				q := ep.entry.points[ep.index]
				return bounder(Segment{entry, q})
			}
			return true
		})
		if ptr == nil {
			return nil
		}
		return ptr.(*graphEndpoint)
	}
	if ep := matching(false); ep != nil {
		return ep
	}
	return matching(true) // all connections cross; take the nearest anyway
}

// extract returns the item as an open path entered at the given vertex index.
// Open paths entered at their far end are reversed; loops are rotated to start
// at the entry vertex and closed back onto it.
func (e *graphEntry) extract(index int) OpenPath {
	if !e.closed {
		path := make(OpenPath, len(e.points))
		copy(path, e.points)
		if index != 0 {
			path.Reverse()
		}
		return path
	}
	path := make(OpenPath, 0, len(e.points)+1)
	path = append(path, e.points[index:]...)
	path = append(path, e.points[:index]...)
	path = append(path, e.points[index])
	return path
}

// emit appends the path to result, merging it into the running path when the
// connection is short enough and crosses no boundary.
func (g *SpatialGraph) emit(result *LabeledOpenPaths, entry *Point, cfg *Config, label PathLabel, path OpenPath, bounder Bounder) {
	if 0 < len(*result) {
		last := &(*result)[len(*result)-1]
		connection := Segment{*entry, path.First()}
		if last.Label == label && connection.Length() <= cfg.MaxConnection && bounder(connection) {
			last.Path = append(last.Path, path...)
			*entry = path.Last()
			return
		}
	}
	*result = append(*result, LabeledOpenPath{Path: path, Label: label})
	*entry = path.Last()
}
