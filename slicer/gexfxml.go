package slicer

import "encoding/xml"

// The structs below mirror the subset of the GEXF 1.3 schema this pipeline
// reads: <gexf><graph><attributes>, <nodes>, <edges>, with optional
// interval/timestamp time attributes and <spells> sub-intervals. Fields the
// format allows but this pipeline never consumes are intentionally absent.

type rawGexf struct {
	XMLName xml.Name `xml:"gexf"`
	Version string   `xml:"version,attr"`
	Graph   rawGraph `xml:"graph"`
}

type rawGraph struct {
	Mode               string          `xml:"mode,attr"`
	TimeFormat         string          `xml:"timeformat,attr"`
	TimeRepresentation string          `xml:"timerepresentation,attr"`
	Attributes         []rawAttrClass  `xml:"attributes"`
	Nodes              []rawNode       `xml:"nodes>node"`
	Edges              []rawEdge       `xml:"edges>edge"`
}

type rawAttrClass struct {
	Class      string         `xml:"class,attr"`
	Mode       string         `xml:"mode,attr"`
	Attributes []rawAttribute `xml:"attribute"`
}

type rawAttribute struct {
	ID      string      `xml:"id,attr"`
	Title   string      `xml:"title,attr"`
	Type    string      `xml:"type,attr"`
	Default *rawDefault `xml:"default"`
}

type rawDefault struct {
	Value string `xml:",chardata"`
}

type rawAttvalue struct {
	For   string  `xml:"for,attr"`
	Value string  `xml:"value,attr"`
	Start *string `xml:"start,attr"`
	End   *string `xml:"end,attr"`
}

type rawSpell struct {
	Start     *string `xml:"start,attr"`
	End       *string `xml:"end,attr"`
	Timestamp *string `xml:"timestamp,attr"`
}

type rawNode struct {
	ID        string        `xml:"id,attr"`
	Label     string        `xml:"label,attr"`
	Start     *string       `xml:"start,attr"`
	End       *string       `xml:"end,attr"`
	Timestamp *string       `xml:"timestamp,attr"`
	AttValues []rawAttvalue `xml:"attvalues>attvalue"`
	Spells    []rawSpell    `xml:"spells>spell"`
	// Color is the viz extension's <viz:color r="" g="" b=""/>. The xml
	// package matches by local name regardless of the "viz" prefix/
	// namespace, so this also picks up an unprefixed <color> element.
	Color *rawColor `xml:"color"`
}

// rawColor mirrors the GEXF viz extension's node color element.
type rawColor struct {
	R *string `xml:"r,attr"`
	G *string `xml:"g,attr"`
	B *string `xml:"b,attr"`
}

type rawEdge struct {
	ID        string        `xml:"id,attr"`
	Source    string        `xml:"source,attr"`
	Target    string        `xml:"target,attr"`
	Type      string        `xml:"type,attr"` // "directed" | "undirected"
	Start     *string       `xml:"start,attr"`
	End       *string       `xml:"end,attr"`
	Timestamp *string       `xml:"timestamp,attr"`
	AttValues []rawAttvalue `xml:"attvalues>attvalue"`
	Spells    []rawSpell    `xml:"spells>spell"`
}
