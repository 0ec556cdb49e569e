package slicer

import (
	"strings"
	"testing"
)

func floatPtr(f float64) *float64 { return &f }

// Scenario 1 from spec.md §8: single-node interval graph.
func TestSingleNodeIntervalGraph(t *testing.T) {
	doc := `<?xml version="1.0"?>
<gexf version="1.3">
  <graph mode="dynamic" timeformat="integer" timerepresentation="interval">
    <nodes>
      <node id="0" label="only" start="0" end="10"/>
    </nodes>
  </graph>
</gexf>`

	res, err := parseReader(strings.NewReader(doc), Options{Range: floatPtr(10), Step: floatPtr(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(res.Snapshots))
	}
	if res.Snapshots[0].Start != 0 || res.Snapshots[0].End != 10 {
		t.Errorf("snapshot 0: expected [0,10], got [%v,%v]", res.Snapshots[0].Start, res.Snapshots[0].End)
	}
	if res.Snapshots[1].Start != 5 || res.Snapshots[1].End != 15 {
		t.Errorf("snapshot 1: expected [5,15], got [%v,%v]", res.Snapshots[1].Start, res.Snapshots[1].End)
	}
	for i, s := range res.Snapshots {
		if len(s.Nodes) != 1 {
			t.Errorf("snapshot %d: expected 1 node, got %d", i, len(s.Nodes))
		}
	}
}

// Scenario 2 from spec.md §8: two-node timestamp graph.
func TestTwoNodeTimestampGraph(t *testing.T) {
	doc := `<?xml version="1.0"?>
<gexf version="1.3">
  <graph mode="dynamic" timeformat="integer" timerepresentation="timestamp">
    <nodes>
      <node id="a" label="A" timestamp="3"/>
      <node id="b" label="B" timestamp="7"/>
    </nodes>
  </graph>
</gexf>`

	res, err := parseReader(strings.NewReader(doc), Options{Range: floatPtr(4), Step: floatPtr(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Snapshots) == 0 {
		t.Fatal("expected at least one snapshot")
	}
	first := res.Snapshots[0]
	if first.Start != 3 {
		t.Errorf("expected first snapshot to start at dateMin=3, got %v", first.Start)
	}
	containsNode := func(s Snapshot, id string) bool {
		for _, n := range s.Nodes {
			if n.ID == id {
				return true
			}
		}
		return false
	}
	if !containsNode(first, "a") {
		t.Error("expected node a (timestamp 3) active in first snapshot [3,7)")
	}
}

func TestEdgeRequiresBothEndpointsActive(t *testing.T) {
	doc := `<?xml version="1.0"?>
<gexf version="1.3">
  <graph mode="dynamic" timeformat="integer" timerepresentation="interval">
    <nodes>
      <node id="a" label="A" start="0" end="5"/>
      <node id="b" label="B" start="10" end="15"/>
    </nodes>
    <edges>
      <edge id="0" source="a" target="b" start="0" end="15"/>
    </edges>
  </graph>
</gexf>`
	res, err := parseReader(strings.NewReader(doc), Options{Range: floatPtr(5), Step: floatPtr(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The edge spans every window, but it may only appear where both
	// endpoints are active. Overlap is closed at both ends, so a [0,5] and
	// b [10,15] are both active in [5,10) and in no other window.
	wantEdges := []int{0, 1, 0}
	if len(res.Snapshots) != len(wantEdges) {
		t.Fatalf("expected %d snapshots, got %d", len(wantEdges), len(res.Snapshots))
	}
	for i, s := range res.Snapshots {
		if len(s.Edges) != wantEdges[i] {
			t.Errorf("snapshot [%v,%v): expected %d edges, got %d", s.Start, s.End, wantEdges[i], len(s.Edges))
		}
	}
}

func TestNodeVizColorIsParsed(t *testing.T) {
	doc := `<?xml version="1.0"?>
<gexf version="1.3">
  <graph mode="dynamic" timeformat="integer" timerepresentation="interval">
    <nodes>
      <node id="a" label="A" start="0" end="10">
        <viz:color r="200" g="40" b="10"/>
      </node>
      <node id="b" label="B" start="0" end="10"/>
    </nodes>
  </graph>
</gexf>`

	res, err := parseReader(strings.NewReader(doc), Options{Range: floatPtr(10), Step: floatPtr(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Snapshots) == 0 {
		t.Fatal("expected at least one snapshot")
	}
	var a, b *NodeView
	for i, n := range res.Snapshots[0].Nodes {
		switch n.ID {
		case "a":
			a = &res.Snapshots[0].Nodes[i]
		case "b":
			b = &res.Snapshots[0].Nodes[i]
		}
	}
	if a == nil || b == nil {
		t.Fatalf("expected nodes a and b in first snapshot, got %+v", res.Snapshots[0].Nodes)
	}
	if !a.HasColor || a.Color.R != 200 || a.Color.G != 40 || a.Color.B != 10 {
		t.Errorf("node a: expected color {200,40,10}, got HasColor=%v Color=%+v", a.HasColor, a.Color)
	}
	if b.HasColor {
		t.Errorf("node b: expected no color since it declares no <viz:color>, got %+v", b.Color)
	}
}

func TestUnsupportedModeFails(t *testing.T) {
	doc := `<gexf version="1.3"><graph mode="static"></graph></gexf>`
	_, err := parseReader(strings.NewReader(doc), Options{})
	if err == nil {
		t.Fatal("expected UnsupportedMode error")
	}
	var se SchemaError
	if !asSchemaError(err, &se) {
		t.Errorf("expected a SchemaError, got %T: %v", err, err)
	}
}

func asSchemaError(err error, target *SchemaError) bool {
	if se, ok := err.(SchemaError); ok {
		*target = se
		return true
	}
	return false
}

func TestUnsupportedTimeFormatFails(t *testing.T) {
	doc := `<gexf version="1.3"><graph mode="dynamic" timeformat="bogus"></graph></gexf>`
	_, err := parseReader(strings.NewReader(doc), Options{})
	if err == nil {
		t.Fatal("expected UnsupportedTimeFormat error")
	}
}

func TestWindowDefaultsForIntegerFormat(t *testing.T) {
	rng, step := windowDefaults(TimeFormatInteger, Options{})
	if rng != 1 || step != 0.1 {
		t.Errorf("expected default range=1 step=0.1, got range=%v step=%v", rng, step)
	}
}

func TestWindowDefaultsForDateFormat(t *testing.T) {
	rng, step := windowDefaults(TimeFormatDate, Options{})
	wantRange := float64(7 * 24 * 60 * 60 * 1000)
	wantStep := float64(24 * 60 * 60 * 1000)
	if rng != wantRange || step != wantStep {
		t.Errorf("expected range=%v step=%v, got range=%v step=%v", wantRange, wantStep, rng, step)
	}
}

func TestCompatStepBugMirrorsRange(t *testing.T) {
	rng, step := windowDefaults(TimeFormatInteger, Options{Range: floatPtr(10), CompatStepBug: true})
	if step != rng {
		t.Errorf("expected compat-mode step to mirror range (%v), got %v", rng, step)
	}
}

// Boundary behavior from spec.md §8: range=0 yields zero snapshots.
func TestZeroRangeYieldsNoSnapshots(t *testing.T) {
	doc := `<gexf version="1.3"><graph mode="dynamic" timeformat="integer" timerepresentation="interval">
    <nodes><node id="0" label="x" start="0" end="10"/></nodes>
  </graph></gexf>`
	res, err := parseReader(strings.NewReader(doc), Options{Range: floatPtr(0), Step: floatPtr(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Snapshots) != 0 {
		t.Errorf("expected zero snapshots for range=0, got %d", len(res.Snapshots))
	}
}
