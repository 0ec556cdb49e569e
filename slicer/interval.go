package slicer

import "math"

// intervalT is a half-open-ish time interval with -Inf/+Inf standing in for
// a missing start/end, per spec.md §4.2's membership policy.
type intervalT struct {
	Start, End float64
}

// overlaps implements spec.md's NOT(end < slice.start OR slice.end < start).
func (a intervalT) overlaps(slice intervalT) bool {
	return !(a.End < slice.Start || slice.End < a.Start)
}

func (a intervalT) contains(t float64) bool {
	return a.Start <= t && t < a.End
}

// parseOwnInterval parses an element's own start/end attrs. ok is false when
// neither is present, meaning the element carries no interval of its own
// (it may still be active via a spell).
func parseOwnInterval(format TimeFormat, start, end *string) (intervalT, bool, error) {
	if start == nil && end == nil {
		return intervalT{}, false, nil
	}
	iv := intervalT{Start: math.Inf(-1), End: math.Inf(1)}
	if start != nil {
		v, err := parseTimeValue(format, *start)
		if err != nil {
			return intervalT{}, false, err
		}
		iv.Start = v
	}
	if end != nil {
		v, err := parseTimeValue(format, *end)
		if err != nil {
			return intervalT{}, false, err
		}
		iv.End = v
	}
	return iv, true, nil
}

// elementActivity captures what's needed to test an element's activity
// within an arbitrary slice, for either time representation.
type elementActivity struct {
	repr TimeRepresentation

	hasOwnInterval bool
	ownInterval    intervalT
	spellIntervals []intervalT

	hasOwnTimestamp bool
	ownTimestamp    float64
	spellTimestamps []float64
}

func newElementActivity(format TimeFormat, repr TimeRepresentation, start, end, timestamp *string, spells []rawSpell) (elementActivity, error) {
	act := elementActivity{repr: repr}
	switch repr {
	case TimeRepresentationInterval:
		iv, has, err := parseOwnInterval(format, start, end)
		if err != nil {
			return act, err
		}
		act.hasOwnInterval = has
		act.ownInterval = iv
		for _, sp := range spells {
			siv, shas, err := parseOwnInterval(format, sp.Start, sp.End)
			if err != nil {
				return act, err
			}
			if shas {
				act.spellIntervals = append(act.spellIntervals, siv)
			}
		}
	case TimeRepresentationTimestamp:
		if timestamp != nil {
			v, err := parseTimeValue(format, *timestamp)
			if err != nil {
				return act, err
			}
			act.hasOwnTimestamp = true
			act.ownTimestamp = v
		}
		for _, sp := range spells {
			if sp.Timestamp != nil {
				v, err := parseTimeValue(format, *sp.Timestamp)
				if err != nil {
					return act, err
				}
				act.spellTimestamps = append(act.spellTimestamps, v)
			}
		}
	}
	return act, nil
}

// activeIn reports whether the element is active within the [start, end)
// slice, per spec.md §4.2's membership policy.
func (a elementActivity) activeIn(slice intervalT) bool {
	switch a.repr {
	case TimeRepresentationInterval:
		if a.hasOwnInterval && a.ownInterval.overlaps(slice) {
			return true
		}
		for _, iv := range a.spellIntervals {
			if iv.overlaps(slice) {
				return true
			}
		}
		return false
	case TimeRepresentationTimestamp:
		if a.hasOwnTimestamp && slice.contains(a.ownTimestamp) {
			return true
		}
		for _, ts := range a.spellTimestamps {
			if slice.contains(ts) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
