package domain

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Layouts accepted at the boundary, tried in order.
var flexDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FlexDate is a date crossing the API boundary. Clients send either an
// ISO-8601-ish string or an epoch-milliseconds number; anything that does
// not parse becomes an invalid FlexDate instead of a decoding error, and
// invalid dates are simply excluded from date-windowed aggregates.
type FlexDate struct {
	t     time.Time
	valid bool
}

func NewFlexDate(t time.Time) FlexDate {
	return FlexDate{t: t, valid: !t.IsZero()}
}

// ParseFlexDate parses s against the accepted layouts.
// An empty or unrecognized string yields an invalid FlexDate.
func ParseFlexDate(s string) FlexDate {
	s = strings.TrimSpace(s)
	if s == "" {
		return FlexDate{}
	}
	for _, layout := range flexDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FlexDate{t: t, valid: true}
		}
	}
	return FlexDate{}
}

func (d FlexDate) Valid() bool {
	return d.valid
}

func (d FlexDate) Time() time.Time {
	return d.t
}

func (d FlexDate) MarshalJSON() ([]byte, error) {
	if !d.valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.t.Format(time.RFC3339Nano))
}

func (d *FlexDate) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*d = FlexDate{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = ParseFlexDate(s)
		return nil
	}

	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = NewFlexDate(time.UnixMilli(ms).UTC())
		return nil
	}

	// Malformed dates degrade to invalid, they never fail the decode.
	*d = FlexDate{}
	return nil
}

// Value implements driver.Valuer so FlexDate columns map to nullable timestamps.
func (d FlexDate) Value() (driver.Value, error) {
	if !d.valid {
		return nil, nil
	}
	return d.t, nil
}

func (d *FlexDate) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = FlexDate{}
	case time.Time:
		*d = NewFlexDate(v)
	case string:
		*d = ParseFlexDate(v)
	case []byte:
		*d = ParseFlexDate(string(v))
	default:
		*d = FlexDate{}
	}
	return nil
}
