package models

import (
	"fmt"
	"time"
)

// Accepted textual layouts for rental dates, tried in priority order. A value
// is accepted only when re-formatting the parsed time reproduces the input
// byte-for-byte (Go's time.Parse tolerates unpadded components; the strict
// round-trip closes that hole). All values are interpreted as UTC.
const (
	LayoutMinute   = "2006-01-02T15:04"
	LayoutSecond   = "2006-01-02 15:04:05"
	LayoutDateOnly = "2006-01-02"
)

var dateLayouts = []string{LayoutMinute, LayoutSecond, LayoutDateOnly}

// Time is a UTC timestamp that renders in API payloads as "2006-01-02T15:04".
type Time struct {
	time.Time
}

// NewTime wraps t, normalized to UTC.
func NewTime(t time.Time) Time {
	return Time{t.UTC()}
}

// MarshalJSON renders the timestamp in the minute-precision wire layout.
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(LayoutMinute) + `"`), nil
}

// UnmarshalJSON accepts any of the three supported layouts (plus RFC 3339 for
// snapshots written by external tooling).
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string")
	}

	s = s[1 : len(s)-1]

	for _, layout := range append(dateLayouts, time.RFC3339) {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed.UTC()

			return nil
		}
	}

	return fmt.Errorf("unrecognized timestamp %q", s)
}

// ParseDate parses value against the supported layouts in priority order,
// accepting the first layout that round-trips exactly. It returns a
// ValidationError naming field otherwise.
func ParseDate(value, field string) (Time, error) {
	for _, layout := range dateLayouts {
		parsed, err := time.ParseInLocation(layout, value, time.UTC)
		if err != nil {
			continue
		}

		if parsed.Format(layout) != value {
			continue
		}

		return Time{parsed.UTC()}, nil
	}

	return Time{}, validationErrorf(field, "must be in YYYY-MM-DDTHH:MM, YYYY-MM-DD HH:MM:SS, or YYYY-MM-DD format")
}

// assertStartBeforeOrEqualEnd rejects ranges where the start falls after the end.
func assertStartBeforeOrEqualEnd(start, end Time) error {
	if start.After(end.Time) {
		return validationErrorf("start_date", "must be before or equal to end_date")
	}

	return nil
}
