package slicer

import (
	"fmt"
	"strconv"
	"time"
)

// parseTimeValue normalizes a raw GEXF time string to the internal scalar:
// milliseconds since epoch for the date-like formats, the raw number
// otherwise.
func parseTimeValue(format TimeFormat, s string) (float64, error) {
	switch format {
	case TimeFormatDate:
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return 0, fmt.Errorf("slicer: invalid date %q: %w", s, err)
		}
		return float64(t.UnixMilli()), nil
	case TimeFormatDateTime:
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			// GEXF dateTime is frequently written without a timezone offset.
			t, err = time.Parse("2006-01-02T15:04:05", s)
			if err != nil {
				return 0, fmt.Errorf("slicer: invalid dateTime %q: %w", s, err)
			}
		}
		return float64(t.UnixMilli()), nil
	case TimeFormatInteger:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("slicer: invalid integer time %q: %w", s, err)
		}
		return float64(i), nil
	case TimeFormatDouble:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("slicer: invalid double time %q: %w", s, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("slicer: unknown time format %v", format)
	}
}

// formatTimeValue is the inverse of parseTimeValue: it renders a scalar in
// the format the document declared. Nothing in this module calls it.
func formatTimeValue(format TimeFormat, v float64) string {
	switch format {
	case TimeFormatDate:
		return time.UnixMilli(int64(v)).UTC().Format("2006-01-02")
	case TimeFormatDateTime:
		return time.UnixMilli(int64(v)).UTC().Format(time.RFC3339)
	case TimeFormatInteger:
		return strconv.FormatInt(int64(v), 10)
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

func parseTimeFormat(s string) (TimeFormat, error) {
	switch s {
	case "", "integer":
		return TimeFormatInteger, nil
	case "double":
		return TimeFormatDouble, nil
	case "date":
		return TimeFormatDate, nil
	case "dateTime":
		return TimeFormatDateTime, nil
	default:
		return 0, ErrUnsupportedTimeFormat(s)
	}
}

func parseTimeRepresentation(s string) (TimeRepresentation, error) {
	switch s {
	case "", "interval":
		return TimeRepresentationInterval, nil
	case "timestamp":
		return TimeRepresentationTimestamp, nil
	default:
		return 0, ErrUnsupportedTimeRepresentation(s)
	}
}
