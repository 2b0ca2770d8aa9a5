package validation

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date accepts RFC 3339 timestamps and plain YYYY-MM-DD dates. Values are
// kept in UTC.
type Date struct {
	time.Time
}

// DateError reports a string that is not a date.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return "invalid date: " + e.Value
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &DateError{Value: string(data)}
	}

	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return &DateError{Value: raw}
}

// Ptr returns the date as *time.Time, nil for a nil receiver.
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
