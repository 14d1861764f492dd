package event

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layouts accepted when parsing. Values without a zone, such as what an HTML
// datetime-local input submits, are read in the local time zone.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// DateTime is a point in time that remembers the text it was read from.
// Until Time is changed it is written back exactly as it was read, so a record
// passes through unchanged. Text that is not a recognised date is kept with a
// zero Time.
type DateTime struct {
	time.Time

	text     string
	textTime time.Time
	null     bool
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

// ParseDateTime reads value and fails when it is not a recognised date.
func ParseDateTime(value string) (DateTime, error) {
	d := DateTimeFromText(value)
	if value != "" && d.IsZero() {
		return DateTime{}, fmt.Errorf("invalid date-time %q", value)
	}
	return d, nil
}

// DateTimeFromText reads value, keeping it as plain text when it is not a
// recognised date.
func DateTimeFromText(value string) DateTime {
	d := DateTime{text: value}
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err == nil {
			d.Time = t
			d.textTime = t
			break
		}
	}
	return d
}

func (d DateTime) String() string {
	if d.text != "" && d.Time.Equal(d.textTime) {
		return d.text
	}
	if d.IsZero() {
		return ""
	}
	return d.Format(time.RFC3339Nano)
}

// Equal compares instants. Values that are not dates compare by their text.
func (d DateTime) Equal(other DateTime) bool {
	if d.IsZero() || other.IsZero() {
		return d.IsZero() == other.IsZero() && d.String() == other.String()
	}
	return d.Time.Equal(other.Time)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.null && d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = DateTime{null: true}
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	*d = DateTimeFromText(value)
	return nil
}
