package graphmodel

import "fmt"

// Kind tags the dynamic type carried by an AttrValue.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

// AttrValue is a tagged union over the attribute types a GEXF document can
// declare (string, integer, double, boolean). Using a checked union instead
// of bare `any` means a caller that expects a float but finds a string gets
// an explicit, typed mismatch rather than a panic on a failed assertion.
type AttrValue struct {
	Kind  Kind
	str   string
	i     int64
	f     float64
	b     bool
}

func StringValue(s string) AttrValue { return AttrValue{Kind: KindString, str: s} }
func IntValue(i int64) AttrValue     { return AttrValue{Kind: KindInt, i: i} }
func FloatValue(f float64) AttrValue { return AttrValue{Kind: KindFloat, f: f} }
func BoolValue(b bool) AttrValue     { return AttrValue{Kind: KindBool, b: b} }

// String renders the value for passthrough display regardless of its kind.
func (v AttrValue) String() string {
	switch v.Kind {
	case KindString:
		return v.str
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	default:
		return ""
	}
}

func (v AttrValue) AsFloat() (float64, bool) {
	switch v.Kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

func (v AttrValue) AsInt() (int64, bool) {
	if v.Kind == KindInt {
		return v.i, true
	}
	return 0, false
}

func (v AttrValue) AsBool() (bool, bool) {
	if v.Kind == KindBool {
		return v.b, true
	}
	return false, false
}

// Color is an RGB triple in the 0-255 range. The zero value is not a valid
// color; Node.HasColor distinguishes "absent" from "explicitly black".
type Color struct {
	R, G, B uint8
}
