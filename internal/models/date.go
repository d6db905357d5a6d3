// internal/models/date.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date is a posting timestamp. It decodes RFC3339 timestamps as well as
// date-only values such as "2026-10-01" (midnight UTC) and encodes as RFC3339.
type Date struct {
	time.Time
}

// NewDate wraps t.
func NewDate(t time.Time) *Date {
	return &Date{Time: t}
}

// Known reports whether d carries a date.
func (d *Date) Known() bool {
	return d != nil && !d.IsZero()
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognised date %q", raw)
}
