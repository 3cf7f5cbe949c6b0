// Package timeutil provides time-related utilities for testability and convenience.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are the ISO 8601 shapes providers actually send, tried in
// order. A trailing "Z" is normalized before parsing.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp parses a provider timestamp in any of the ISO 8601 variants
// seen upstream (with offset, with trailing Z, or naive local time).
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	normalized := strings.Replace(value, "Z", "+00:00", 1)

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp %q", value)
}

// ValidDate reports whether value is a strict YYYY-MM-DD calendar date.
// Providers that require this format silently omit anything else.
func ValidDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil && len(value) == 10
}
