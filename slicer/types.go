// Package slicer parses a GEXF 1.3 dynamic graph document and produces an
// ordered sequence of temporal snapshots under a sliding-window policy. It
// owns the parsed graph structure and the snapshots it emits; downstream
// consumers (tlayout, raster) only borrow them.
package slicer

import "github.com/richinsley/gexfviz/graphmodel"

// TimeFormat is the scalar encoding declared by the document's timeformat
// attribute.
type TimeFormat int

const (
	TimeFormatInteger TimeFormat = iota
	TimeFormatDouble
	TimeFormatDate
	TimeFormatDateTime
)

func (f TimeFormat) isDateLike() bool { return f == TimeFormatDate || f == TimeFormatDateTime }

// TimeRepresentation is the element-level time encoding declared by the
// document's timerepresentation attribute.
type TimeRepresentation int

const (
	TimeRepresentationInterval TimeRepresentation = iota
	TimeRepresentationTimestamp
)

// AttrClass partitions a TemporalAttribute descriptor by the element kind it
// applies to.
type AttrClass int

const (
	AttrClassNode AttrClass = iota
	AttrClassEdge
)

// AttrMode says whether an attribute's value is fixed for the graph's
// lifetime or varies by spell.
type AttrMode int

const (
	AttrModeStatic AttrMode = iota
	AttrModeDynamic
)

// AttrDescriptor mirrors a GEXF <attribute> declaration.
type AttrDescriptor struct {
	ID      string
	Title   string
	Type    string // "string", "integer", "double", "boolean", ...
	Mode    AttrMode
	Class   AttrClass
	Default string
	HasDefault bool
}

// Options configures window generation. Range and Step are nil when the
// caller wants the format-dependent default (spec.md §4.2).
type Options struct {
	Range *float64
	Step  *float64

	// CompatStepBug reproduces the documented source bug where the step
	// option is silently mirrored to Range instead of being honored. Off by
	// default; this implementation reads Step correctly per spec.md's
	// SHOULD.
	CompatStepBug bool
}

// NodeView is a node as it is active within one snapshot: static attributes
// pass through unchanged, dynamic attributes are projected to the value
// whose spell covers the snapshot (see selectDynamicAttrValue).
type NodeView struct {
	ID    string
	Label string
	Attrs map[string]graphmodel.AttrValue

	Color    graphmodel.Color
	HasColor bool
}

// EdgeView is an edge as it is active within one snapshot.
type EdgeView struct {
	Source   string
	Target   string
	Directed bool
	Attrs    map[string]graphmodel.AttrValue
}

// Snapshot is one [Start, End) window projection of the dynamic graph.
type Snapshot struct {
	Index int
	Start float64
	End   float64
	Nodes []NodeView
	Edges []EdgeView
}

// Result is the output of Parse: the attribute schema plus the generated
// snapshot sequence.
type Result struct {
	TimeFormat         TimeFormat
	TimeRepresentation TimeRepresentation
	Attrs              []AttrDescriptor
	Snapshots          []Snapshot
	DateMin, DateMax   float64
}
