package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const wireLayout = "2006-01-02T15:04:05.000Z07:00"

// Layouts without a zone are read in the local zone, the way the browser
// client read them.
var zonedLayouts = []string{time.RFC3339Nano, time.RFC3339}
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp is a wire timestamp. It encodes as an ISO-8601 UTC instant with
// milliseconds and decodes ISO instants, zone-less date-times and plain dates.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

func ParseTimestamp(s string) (*Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &Timestamp{Time: t}, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &Timestamp{Time: t}, nil
		}
	}
	return nil, fmt.Errorf("unrecognized timestamp %q", s)
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("failed to decode timestamp: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		ts.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	ts.Time = parsed.Time
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + ts.UTC().Format(wireLayout) + `"`), nil
}
