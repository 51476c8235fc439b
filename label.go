package grue

import "fmt"

// PathType classifies the role a path plays on a layer.
type PathType int

const (
	TypeInvalid PathType = iota
	TypeOutline
	TypeInset
	TypeInfill
	TypeBridge
	TypeSupport
)

func (t PathType) String() string {
	switch t {
	case TypeOutline:
		return "outline"
	case TypeInset:
		return "inset"
	case TypeInfill:
		return "infill"
	case TypeBridge:
		return "bridge"
	case TypeSupport:
		return "support"
	}
	return "invalid"
}

// PathLabel tags a path with its role and extrusion priority. Higher priority
// paths are emitted first; ties are broken by distance from the current entry
// point.
type PathLabel struct {
	Type     PathType
	Depth    int // inset shell depth, 0 for the outermost shell
	Priority int
}

// IsOutline is true for outline labels.
func (l PathLabel) IsOutline() bool {
	return l.Type == TypeOutline
}

// IsInset is true for inset labels.
func (l PathLabel) IsInset() bool {
	return l.Type == TypeInset
}

// Valid is true for labels with a known type.
func (l PathLabel) Valid() bool {
	return l.Type != TypeInvalid
}

func (l PathLabel) String() string {
	if l.Type == TypeInset {
		return fmt.Sprintf("%v:%d", l.Type, l.Depth)
	}
	return l.Type.String()
}

// OutlineLabel returns the label of an outline loop.
func OutlineLabel() PathLabel {
	return PathLabel{Type: TypeOutline, Priority: 100}
}

// InsetLabel returns the label of an inset shell at the given depth. Outer
// shells get higher priority so they extrude before inner ones.
func InsetLabel(depth int) PathLabel {
	return PathLabel{Type: TypeInset, Depth: depth, Priority: 90 - depth}
}

// InfillLabel returns the label of an infill path.
func InfillLabel() PathLabel {
	return PathLabel{Type: TypeInfill, Priority: 50}
}

// BridgeLabel returns the label of a bridge path.
func BridgeLabel() PathLabel {
	return PathLabel{Type: TypeBridge, Priority: 60}
}

// SupportLabel returns the label of a support path.
func SupportLabel() PathLabel {
	return PathLabel{Type: TypeSupport, Priority: 40}
}

// LabelPreference orders labels: it returns true when paths labeled a must be
// extruded before paths labeled b.
type LabelPreference func(a, b PathLabel) bool

// DefaultLabelPreference orders by descending priority, with the type and
// inset depth as stable tie breakers.
func DefaultLabelPreference(a, b PathLabel) bool {
	if a.Priority != b.Priority {
		return b.Priority < a.Priority
	} else if a.Type != b.Type {
		return a.Type < b.Type
	}
	return a.Depth < b.Depth
}

////////////////////////////////////////////////////////////////

// LabeledOpenPath is an open path tagged with its label.
type LabeledOpenPath struct {
	Path  OpenPath
	Label PathLabel
}

// LabeledOpenPaths is an ordered sequence of labeled open paths, the outcome of
// path optimization.
type LabeledOpenPaths []LabeledOpenPath
