package grue

// insetNode is the payload of an inset tree node: the label of the inset loop
// at that depth plus a graph of labeled non-inset items that lie inside this
// inset but inside none of its inset children.
type insetNode struct {
	label PathLabel
	graph SpatialGraph
}

// InsetTree is the lowest level of the hierarchy: a containment tree of inset
// loops. For external insets the innermost shells are geometrically inside the
// outermost ones; for insets of holes the nesting inverts, which the
// containment test handles transparently.
type InsetTree ContainmentTree[insetNode]

// NewInsetRoot returns an empty root inset tree.
func NewInsetRoot() *InsetTree {
	return (*InsetTree)(NewContainmentRoot[insetNode]())
}

// NewInsetNode returns an inset tree node for the given inset loop and label.
func NewInsetNode(loop Loop, label PathLabel) *InsetTree {
	return (*InsetTree)(NewContainmentNode(loop, insetNode{label: label}))
}

func (t *InsetTree) tree() *ContainmentTree[insetNode] {
	return (*ContainmentTree[insetNode])(t)
}

// Label returns the label of the inset loop at this node.
func (t *InsetTree) Label() PathLabel {
	return t.tree().Value().label
}

// Insert places an inset node into the tree and returns the node holding its
// contents.
func (t *InsetTree) Insert(other *InsetTree) *InsetTree {
	return (*InsetTree)(t.tree().Insert(other.tree()))
}

// Select returns the deepest node whose inset loop contains P, or the tree
// itself.
func (t *InsetTree) Select(p Point) *InsetTree {
	return (*InsetTree)(t.tree().Select(p))
}

// InsertPath stores a labeled open path into the graph at this node.
func (t *InsetTree) InsertPath(path OpenPath, label PathLabel) {
	t.tree().Value().graph.InsertPath(path, label)
}

// InsertLoop stores a labeled non-inset loop into the graph at this node. Inset
// loops enter the tree via Insert instead.
func (t *InsetTree) InsertLoop(loop Loop, label PathLabel) {
	t.tree().Value().graph.InsertLoop(loop, label)
}

// Swap exchanges the contents of both trees in constant time.
func (t *InsetTree) Swap(other *InsetTree) {
	t.tree().Swap(other.tree())
}

// Empty returns true when the tree holds no children and no graph items.
func (t *InsetTree) Empty() bool {
	return t.tree().Len() == 0 && t.tree().Value().graph.Empty()
}

// traverse drains this tree and its children into result. Children are taken
// in the order of selectBestChild; the node's own material interleaves at the
// label-preferred position: children whose label outranks this node's go
// first, the rest follow the node's own loop and graph. entry is updated to
// the last emitted point.
func (t *InsetTree) traverse(result *LabeledOpenPaths, entry *Point, cfg *Config, preferred LabelPreference, bounder Bounder) {
	selfDone := false
	tt := t.tree()
	for 0 < tt.Len() {
		i := t.selectBestChild(*entry, preferred, bounder)
		c := (*InsetTree)(tt.Children()[i])
		if !selfDone && !tt.IsRoot() && !preferred(c.Label(), t.Label()) {
			t.traverseInternal(result, entry, cfg, preferred, bounder)
			selfDone = true
		}
		tt.removeChild(i)
		c.traverse(result, entry, cfg, preferred, bounder)
	}
	if !selfDone {
		t.traverseInternal(result, entry, cfg, preferred, bounder)
	}
}

// traverseInternal drains the material at this node only: the inset loop
// itself, tagged with the node's label, and the local graph.
func (t *InsetTree) traverseInternal(result *LabeledOpenPaths, entry *Point, cfg *Config, preferred LabelPreference, bounder Bounder) {
	tt := t.tree()
	if !tt.IsRoot() {
		tt.Value().graph.InsertLoop(tt.Loop(), t.Label())
	}
	tt.Value().graph.Optimize(result, entry, cfg, preferred, bounder)
}

// selectBestChild returns the index of the child minimizing a cost combining
// label priority (primary) and distance from entry to the child loop
// (secondary). Children reachable without crossing a boundary win over those
// that are not.
func (t *InsetTree) selectBestChild(entry Point, preferred LabelPreference, bounder Bounder) int {
	if bounder == nil {
		bounder = passAll
	}
	best := -1
	bestCrosses := false
	bestDist := 0.0
	for i, child := range t.tree().Children() {
		c := (*InsetTree)(child)
		closest := child.Loop()[child.Loop().ClosestVertex(entry)]
		crosses := !bounder(Segment{entry, closest})
		dist := closest.Sub(entry).Length()
		if best < 0 {
			best, bestCrosses, bestDist = i, crosses, dist
			continue
		}
		bestLabel := (*InsetTree)(t.tree().Children()[best]).Label()
		switch {
		case preferred(c.Label(), bestLabel) != preferred(bestLabel, c.Label()):
			if preferred(c.Label(), bestLabel) {
				best, bestCrosses, bestDist = i, crosses, dist
			}
		case crosses != bestCrosses:
			if !crosses {
				best, bestCrosses, bestDist = i, crosses, dist
			}
		case dist < bestDist:
			best, bestCrosses, bestDist = i, crosses, dist
		}
	}
	return best
}

////////////////////////////////////////////////////////////////

// outlineNode is the payload of an outline tree node: the inset hierarchy
// belonging to that outline plus loose paths inside the outline but not inside
// any inset.
type outlineNode struct {
	insets *InsetTree
	graph  SpatialGraph
}

// OutlineTree is the highest level of the hierarchy: a containment tree of
// outline loops. Grouping sibling outlines keeps the set of boundaries
// consulted during optimization small: only a node's own outline and its
// direct children's outlines can be crossed by a segment that stays inside
// this node.
type OutlineTree ContainmentTree[outlineNode]

// NewOutlineRoot returns an empty root outline tree.
func NewOutlineRoot() *OutlineTree {
	return (*OutlineTree)(NewContainmentNode(nil, outlineNode{insets: NewInsetRoot()}))
}

// NewOutlineNode returns an outline tree node for the given outline loop.
func NewOutlineNode(loop Loop) *OutlineTree {
	return (*OutlineTree)(NewContainmentNode(loop, outlineNode{insets: NewInsetRoot()}))
}

func (t *OutlineTree) tree() *ContainmentTree[outlineNode] {
	return (*ContainmentTree[outlineNode])(t)
}

// Insert places an outline node into the tree and returns the node holding its
// contents.
func (t *OutlineTree) Insert(other *OutlineTree) *OutlineTree {
	return (*OutlineTree)(t.tree().Insert(other.tree()))
}

// Select returns the deepest node whose outline contains P, or the tree itself.
func (t *OutlineTree) Select(p Point) *OutlineTree {
	return (*OutlineTree)(t.tree().Select(p))
}

// Insets returns the inset hierarchy at this node.
func (t *OutlineTree) Insets() *InsetTree {
	return t.tree().Value().insets
}

// InsertPath stores a labeled open path at this node: into the deepest inset
// that contains it, or the node's own graph when no inset does.
func (t *OutlineTree) InsertPath(path OpenPath, label PathLabel) {
	if path.Empty() {
		return
	}
	inset := t.Insets().Select(path.First())
	if !inset.tree().IsRoot() {
		inset.InsertPath(path, label)
		return
	}
	t.tree().Value().graph.InsertPath(path, label)
}

// InsertLoop stores a labeled loop at this node. Inset labels become nodes in
// the inset hierarchy; other loops go to the deepest containing inset's graph
// or the node's own graph. Outline loops enter the tree via Insert instead.
func (t *OutlineTree) InsertLoop(loop Loop, label PathLabel) {
	if loop.Empty() {
		return
	}
	if label.IsInset() {
		t.Insets().Insert(NewInsetNode(loop, label))
		return
	}
	inset := t.Insets().Select(loop.RepresentativePoint())
	if !inset.tree().IsRoot() {
		inset.InsertLoop(loop, label)
		return
	}
	t.tree().Value().graph.InsertLoop(loop, label)
}

// Swap exchanges the contents of both trees in constant time.
func (t *OutlineTree) Swap(other *OutlineTree) {
	t.tree().Swap(other.tree())
}

// Empty returns true when the node holds no children, insets, or graph items.
func (t *OutlineTree) Empty() bool {
	return t.tree().Len() == 0 && t.Insets().Empty() && t.tree().Value().graph.Empty()
}

// constructBoundaries collects this node's outline and its direct children's
// outlines. A segment that stays inside this outline and outside the child
// outlines cannot cross any other boundary of the layer.
func (t *OutlineTree) constructBoundaries(b *Boundaries) {
	if !t.tree().IsRoot() {
		b.AddLoop(t.tree().Loop())
	}
	for _, c := range t.tree().Children() {
		b.AddLoop(c.Loop())
	}
}

// constructBoundariesRecursive collects the outlines of this node and all of
// its descendants.
func (t *OutlineTree) constructBoundariesRecursive(b *Boundaries) {
	if !t.tree().IsRoot() {
		b.AddLoop(t.tree().Loop())
	}
	for _, c := range t.tree().Children() {
		(*OutlineTree)(c).constructBoundariesRecursive(b)
	}
}

// traverse drains this node and its children into result: children first, by
// distance from entry, then the inset hierarchy, then the loose paths. The
// bounder is built from this node's outline and its direct children.
func (t *OutlineTree) traverse(result *LabeledOpenPaths, entry *Point, cfg *Config, preferred LabelPreference) {
	var b Boundaries
	t.constructBoundaries(&b)
	t.traverseInner(result, entry, cfg, preferred, b.Bounder(), false)
}

// traverseBounded is the caller-supplied bounder form of traverse, used when a
// comprehensive boundary set was precomputed for the whole layer.
func (t *OutlineTree) traverseBounded(result *LabeledOpenPaths, entry *Point, cfg *Config, preferred LabelPreference, bounder Bounder) {
	t.traverseInner(result, entry, cfg, preferred, bounder, true)
}

func (t *OutlineTree) traverseInner(result *LabeledOpenPaths, entry *Point, cfg *Config, preferred LabelPreference, bounder Bounder, propagate bool) {
	tt := t.tree()
	for 0 < tt.Len() {
		i := t.selectBestChild(*entry)
		c := (*OutlineTree)(tt.Children()[i])
		tt.removeChild(i)
		if propagate {
			c.traverseBounded(result, entry, cfg, preferred, bounder)
		} else {
			c.traverse(result, entry, cfg, preferred)
		}
	}
	t.Insets().traverse(result, entry, cfg, preferred, bounder)
	tt.Value().graph.Optimize(result, entry, cfg, preferred, bounder)
}

// selectBestChild returns the index of the child whose outline is nearest to
// entry.
func (t *OutlineTree) selectBestChild(entry Point) int {
	best := -1
	bestDist := 0.0
	for i, child := range t.tree().Children() {
		closest := child.Loop()[child.Loop().ClosestVertex(entry)]
		if dist := closest.Sub(entry).Length(); best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

////////////////////////////////////////////////////////////////

// Pather is the hierarchical path optimizer: it buffers a layer's outlines,
// insets, and loose paths, builds the containment hierarchy, and emits an
// ordered sequence of labeled open paths.
type Pather struct {
	root    *OutlineTree
	extra   Boundaries
	history Point
	cfg     *Config
}

// NewPather returns a pather using the given configuration, or DefaultConfig
// when cfg is nil.
func NewPather(cfg *Config) *Pather {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Pather{root: NewOutlineRoot(), cfg: cfg}
}

// AddBoundary adds an outline loop: a constraint boundary that also structures
// the hierarchy.
func (p *Pather) AddBoundary(loop Loop) {
	p.root.Insert(NewOutlineNode(loop))
}

// AddBoundaryPath adds an open constraint path. Open boundaries cannot
// structure the hierarchy; they join the boundary set of every node, which
// forces Optimize onto the precomputed whole-layer bounder.
func (p *Pather) AddBoundaryPath(path OpenPath) {
	p.extra.AddPath(path)
}

// AddLoop buffers a labeled loop. Outline labels create a new node in the
// hierarchy; other labels dispatch to the deepest containing node.
func (p *Pather) AddLoop(loop Loop, label PathLabel) {
	if loop.Empty() {
		return
	}
	if label.IsOutline() {
		p.root.Insert(NewOutlineNode(loop))
		return
	}
	p.root.Select(loop.RepresentativePoint()).InsertLoop(loop, label)
}

// AddPath buffers a labeled open path, dispatched to the deepest containing
// node. Paths outside every outline land in the root's own graph.
func (p *Pather) AddPath(path OpenPath, label PathLabel) {
	if path.Empty() {
		return
	}
	p.root.Select(path.First()).InsertPath(path, label)
}

// ClearPaths drops all buffered paths and insets but keeps the outline
// hierarchy.
func (p *Pather) ClearPaths() {
	clearPaths(p.root.tree())
}

func clearPaths(t *ContainmentTree[outlineNode]) {
	t.Value().insets = NewInsetRoot()
	t.Value().graph.Clear()
	for _, c := range t.Children() {
		clearPaths(c)
	}
}

// ClearBoundaries resets the hierarchy entirely, dropping boundaries and any
// paths filed under them.
func (p *Pather) ClearBoundaries() {
	p.root = NewOutlineRoot()
	p.extra = Boundaries{}
}

// SetHistoryPoint sets the entry point the next Optimize starts from.
func (p *Pather) SetHistoryPoint(point Point) {
	p.history = point
}

// HistoryPoint returns the last emitted end point.
func (p *Pather) HistoryPoint() Point {
	return p.history
}

// Optimize drains the hierarchy into result, continuing from the last emitted
// end point of the previous call. The traversal is destructive: afterwards the
// hierarchy is empty but still a well-formed root.
func (p *Pather) Optimize(result *LabeledOpenPaths) {
	if !p.extra.Empty() {
		// open boundaries apply everywhere; use the whole-layer bounder
		b := Boundaries{}
		b.Add(p.extra.segments...)
		p.root.constructBoundariesRecursive(&b)
		p.root.traverseBounded(result, &p.history, p.cfg, p.cfg.preferred(), b.Bounder())
	} else {
		p.root.traverse(result, &p.history, p.cfg, p.cfg.preferred())
	}
}
