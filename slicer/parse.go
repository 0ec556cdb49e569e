package slicer

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
)

// Parse reads a GEXF 1.3 dynamic graph document at path and produces the
// full snapshot sequence per spec.md §4.2. It fails fast (returns a
// SchemaError) on a document that isn't the expected format, isn't
// "dynamic", or declares an unsupported time format/representation.
func Parse(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("slicer: reading %s: %w", path, err)
	}
	defer f.Close()
	return parseReader(f, opts)
}

func parseReader(r io.Reader, opts Options) (*Result, error) {
	var doc rawGexf
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, ErrUnsupportedFormat(err.Error())
	}
	if doc.XMLName.Local != "gexf" {
		return nil, ErrUnsupportedFormat("root element is not <gexf>")
	}
	if doc.Version != "" && doc.Version != "1.3" {
		slog.Warn("gexf version is not 1.3, proceeding anyway", "version", doc.Version)
	}
	if doc.Graph.Mode != "dynamic" {
		return nil, ErrUnsupportedMode(doc.Graph.Mode)
	}

	format, err := parseTimeFormat(doc.Graph.TimeFormat)
	if err != nil {
		return nil, err
	}
	repr, err := parseTimeRepresentation(doc.Graph.TimeRepresentation)
	if err != nil {
		return nil, err
	}

	descs := collectAttrDescriptors(doc.Graph.Attributes)
	nodeDescs, edgeDescs := splitByClass(descs)

	dateMin, dateMax, err := discoverEnvelope(format, doc.Graph.Nodes)
	if err != nil {
		return nil, err
	}

	rng, step := windowDefaults(format, opts)

	snaps, err := generateSnapshots(format, repr, dateMin, dateMax, rng, step, doc.Graph.Nodes, doc.Graph.Edges, nodeDescs, edgeDescs)
	if err != nil {
		return nil, err
	}

	return &Result{
		TimeFormat:         format,
		TimeRepresentation: repr,
		Attrs:              descs,
		Snapshots:          snaps,
		DateMin:            dateMin,
		DateMax:            dateMax,
	}, nil
}

func collectAttrDescriptors(classes []rawAttrClass) []AttrDescriptor {
	var out []AttrDescriptor
	for _, c := range classes {
		class := AttrClassNode
		if c.Class == "edge" {
			class = AttrClassEdge
		}
		mode := AttrModeStatic
		if c.Mode == "dynamic" {
			mode = AttrModeDynamic
		}
		for _, a := range c.Attributes {
			d := AttrDescriptor{
				ID:    a.ID,
				Title: a.Title,
				Type:  a.Type,
				Mode:  mode,
				Class: class,
			}
			if a.Default != nil {
				d.Default = a.Default.Value
				d.HasDefault = true
			}
			out = append(out, d)
		}
	}
	return out
}

func splitByClass(descs []AttrDescriptor) (nodeDescs, edgeDescs []AttrDescriptor) {
	for _, d := range descs {
		if d.Class == AttrClassEdge {
			edgeDescs = append(edgeDescs, d)
		} else {
			nodeDescs = append(nodeDescs, d)
		}
	}
	return
}

// discoverEnvelope scans every node element (and its spells) for start/end
// or timestamp attributes to find the global [dateMin, dateMax] envelope.
// Edges are deliberately NOT scanned, matching the source's behavior
// (spec.md §4.2, §9 Open Questions).
func discoverEnvelope(format TimeFormat, nodes []rawNode) (min, max float64, err error) {
	min, max = math.Inf(1), math.Inf(-1)
	consider := func(s *string) error {
		if s == nil {
			return nil
		}
		v, err := parseTimeValue(format, *s)
		if err != nil {
			return err
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		return nil
	}
	for _, n := range nodes {
		if err := consider(n.Start); err != nil {
			return 0, 0, err
		}
		if err := consider(n.End); err != nil {
			return 0, 0, err
		}
		if err := consider(n.Timestamp); err != nil {
			return 0, 0, err
		}
		for _, sp := range n.Spells {
			if err := consider(sp.Start); err != nil {
				return 0, 0, err
			}
			if err := consider(sp.End); err != nil {
				return 0, 0, err
			}
			if err := consider(sp.Timestamp); err != nil {
				return 0, 0, err
			}
		}
	}
	if math.IsInf(min, 1) {
		// No dated elements at all; collapse to a degenerate envelope so
		// downstream window generation yields zero snapshots rather than
		// looping on infinities.
		return 0, 0, nil
	}
	return min, max, nil
}

// windowDefaults applies spec.md §4.2's defaults and the documented step
// bug (compat mode only).
func windowDefaults(format TimeFormat, opts Options) (rng, step float64) {
	if format.isDateLike() {
		rng, step = 7*24*60*60*1000, 24*60*60*1000
	} else {
		rng, step = 1, 0.1
	}
	if opts.Range != nil {
		rng = *opts.Range
	}
	if opts.Step != nil {
		step = *opts.Step
	}
	if opts.CompatStepBug {
		step = rng
	}
	return rng, step
}
