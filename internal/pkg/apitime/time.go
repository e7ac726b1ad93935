// Package apitime handles timestamps on the TechStaffHub wire format.
// The upstream API serializes timestamps as local date-times without a
// zone designator ("2006-01-02T15:04:05"), which encoding/json's
// time.Time refuses to parse.
package apitime

import (
	"fmt"
	"strings"
	"time"
)

const wireLayout = "2006-01-02T15:04:05"

// Time is a time.Time that marshals to and from the upstream wire format.
// RFC3339 input is accepted as well so local tooling can pass zoned
// timestamps.
type Time struct {
	time.Time
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(wireLayout) + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{wireLayout, time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05.999999999"} {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("apitime: cannot parse %q", s)
}

// Parse parses a wire-format or RFC3339 timestamp.
func Parse(s string) (Time, error) {
	var t Time
	err := t.UnmarshalJSON([]byte(`"` + s + `"`))
	return t, err
}
