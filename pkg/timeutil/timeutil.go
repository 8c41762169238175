// Package timeutil parses event time inputs into canonical UTC instants.
//
// All comparisons in the scheduler happen between UTC instants. Inputs
// without an offset ("2025-12-10T10:00") are interpreted as UTC; inputs
// carrying an offset are converted to UTC rather than having the offset
// silently discarded.
package timeutil

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/gautham-8087/Event-IQ/pkg/errors"
)

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Parse converts a time string into a UTC instant. It accepts RFC 3339 and
// the naive ISO forms above. Malformed input yields an invalid-input error,
// never a panic.
func Parse(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, apperrors.InvalidInput("time value must not be empty")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}

	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, apperrors.InvalidInput(fmt.Sprintf("unrecognized time format: %q", value))
}

// ParseWindow parses a start/end pair and enforces start < end.
func ParseWindow(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := Parse(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := Parse(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, apperrors.Validation("end time must be after start time", map[string]any{
			"start": startStr,
			"end":   endStr,
		})
	}
	return start, end, nil
}

// Overlaps reports whether two half-open windows [start1, end1) and
// [start2, end2) intersect. Back-to-back windows do not overlap.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}
