package slicer

import (
	"strconv"

	"github.com/richinsley/gexfviz/graphmodel"
)

// convertAttrValue interprets a raw GEXF attribute string per its declared
// type. Unknown types and unparseable values fall back to a string value
// rather than failing the whole parse — a single bad attribute should not
// abort rendering.
func convertAttrValue(typ, raw string) graphmodel.AttrValue {
	switch typ {
	case "integer", "long":
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return graphmodel.IntValue(i)
		}
	case "double", "float":
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return graphmodel.FloatValue(f)
		}
	case "boolean":
		if b, err := strconv.ParseBool(raw); err == nil {
			return graphmodel.BoolValue(b)
		}
	}
	return graphmodel.StringValue(raw)
}

// parseVizColor converts a <viz:color> element into a graphmodel.Color. A nil
// element, or one missing any channel, yields ok=false so the caller falls
// back to the spec's default neutral gray.
func parseVizColor(c *rawColor) (graphmodel.Color, bool) {
	if c == nil || c.R == nil || c.G == nil || c.B == nil {
		return graphmodel.Color{}, false
	}
	r, errR := strconv.ParseUint(*c.R, 10, 8)
	g, errG := strconv.ParseUint(*c.G, 10, 8)
	b, errB := strconv.ParseUint(*c.B, 10, 8)
	if errR != nil || errG != nil || errB != nil {
		return graphmodel.Color{}, false
	}
	return graphmodel.Color{R: uint8(r), G: uint8(g), B: uint8(b)}, true
}

// projectAttrs resolves every declared attribute for one element (node or
// edge) within one snapshot: static attributes pass through their single
// value; dynamic attributes select the sub-spell covering the snapshot per
// selectDynamicAttrValue. descs is filtered to the element's class by the
// caller.
func projectAttrs(descs []AttrDescriptor, format TimeFormat, values []rawAttvalue, slice intervalT) map[string]graphmodel.AttrValue {
	out := make(map[string]graphmodel.AttrValue, len(descs))
	byID := make(map[string][]rawAttvalue)
	for _, v := range values {
		byID[v.For] = append(byID[v.For], v)
	}
	for _, d := range descs {
		candidates := byID[d.ID]
		switch d.Mode {
		case AttrModeStatic:
			if len(candidates) > 0 {
				out[d.Title] = convertAttrValue(d.Type, candidates[0].Value)
			} else if d.HasDefault {
				out[d.Title] = convertAttrValue(d.Type, d.Default)
			}
		case AttrModeDynamic:
			if v, ok := selectDynamicAttrValue(d, candidates, format, slice); ok {
				out[d.Title] = v
			}
		}
	}
	return out
}

// selectDynamicAttrValue implements the Open Question decision recorded in
// SPEC_FULL.md §4.2: prefer the sub-spell containing the snapshot's
// midpoint, then the sub-spell containing the snapshot's start, then the
// descriptor's declared default.
func selectDynamicAttrValue(d AttrDescriptor, candidates []rawAttvalue, format TimeFormat, slice intervalT) (graphmodel.AttrValue, bool) {
	if len(candidates) == 0 {
		if d.HasDefault {
			return convertAttrValue(d.Type, d.Default), true
		}
		return graphmodel.AttrValue{}, false
	}

	mid := (slice.Start + slice.End) / 2
	if v, ok := pickCandidateContaining(candidates, format, mid); ok {
		return convertAttrValue(d.Type, v), true
	}
	if v, ok := pickCandidateContaining(candidates, format, slice.Start); ok {
		return convertAttrValue(d.Type, v), true
	}
	if d.HasDefault {
		return convertAttrValue(d.Type, d.Default), true
	}
	return graphmodel.AttrValue{}, false
}

func pickCandidateContaining(candidates []rawAttvalue, format TimeFormat, t float64) (string, bool) {
	unbound, hasUnbound := "", false
	for _, c := range candidates {
		iv, has, err := parseOwnInterval(format, c.Start, c.End)
		if err != nil {
			continue
		}
		if !has {
			if !hasUnbound {
				unbound, hasUnbound = c.Value, true
			}
			continue
		}
		if iv.contains(t) {
			return c.Value, true
		}
	}
	if hasUnbound {
		return unbound, true
	}
	return "", false
}
