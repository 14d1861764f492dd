package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

type Event struct {
	Id          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartTime   DateTime `json:"startTime"`
	EndTime     DateTime `json:"endTime"`
	Category    string   `json:"category"`
	Image       string   `json:"image,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Creator     *Creator `json:"creator,omitempty"`

	// received holds the known fields of a decoded record as they arrived,
	// keyed by JSON name; nil when the event was not decoded.
	received map[string]json.RawMessage
	// extra holds the fields Event has no field for.
	extra map[string]json.RawMessage
}

type Creator struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// CategoryLabels returns the detail-view category list when the record has one,
// otherwise the single category.
func (e Event) CategoryLabels() []string {
	if len(e.Categories) > 0 {
		labels := make([]string, len(e.Categories))
		copy(labels, e.Categories)
		return labels
	}
	if e.Category == "" {
		return nil
	}
	return []string{e.Category}
}

// Clone returns a deep copy, so drafts never share slices or the creator with the display copy.
func (e Event) Clone() Event {
	clone := e
	if e.Categories != nil {
		clone.Categories = make([]string, len(e.Categories))
		copy(clone.Categories, e.Categories)
	}
	if e.Creator != nil {
		creator := *e.Creator
		clone.Creator = &creator
	}
	clone.received = maps.Clone(e.received)
	clone.extra = maps.Clone(e.extra)
	return clone
}

// Equal compares every field, including the optional ones.
func (e Event) Equal(other Event) bool {
	if e.Id != other.Id || e.Title != other.Title || e.Description != other.Description ||
		e.Category != other.Category || e.Image != other.Image {
		return false
	}
	if !e.StartTime.Equal(other.StartTime) || !e.EndTime.Equal(other.EndTime) {
		return false
	}
	if len(e.Categories) != len(other.Categories) {
		return false
	}
	for i := range e.Categories {
		if e.Categories[i] != other.Categories[i] {
			return false
		}
	}
	if (e.Creator == nil) != (other.Creator == nil) {
		return false
	}
	if e.Creator != nil && *e.Creator != *other.Creator {
		return false
	}
	return maps.EqualFunc(e.extra, other.extra, func(a, b json.RawMessage) bool {
		return bytes.Equal(a, b)
	})
}

func CloneAll(events []Event) []Event {
	if events == nil {
		return nil
	}
	cloned := make([]Event, 0, len(events))
	for _, e := range events {
		cloned = append(cloned, e.Clone())
	}
	return cloned
}

// Extra returns the fields of the record that Event has no field for.
func (e Event) Extra() map[string]json.RawMessage {
	return maps.Clone(e.extra)
}

// SetExtra replaces the fields Event has no field for. Keys Event does know are ignored.
func (e *Event) SetExtra(extra map[string]json.RawMessage) {
	e.extra = nil
	for k, v := range extra {
		if knownFields[k] {
			continue
		}
		if e.extra == nil {
			e.extra = make(map[string]json.RawMessage, len(extra))
		}
		e.extra[k] = v
	}
}

var knownFields = map[string]bool{
	"id":          true,
	"title":       true,
	"description": true,
	"startTime":   true,
	"endTime":     true,
	"category":    true,
	"image":       true,
	"categories":  true,
	"creator":     true,
}

// UnmarshalJSON accepts both string and numeric ids; json-server style
// backends hand out numbers. Every field is remembered so that MarshalJSON
// can write the record back as it came.
func (e *Event) UnmarshalJSON(data []byte) error {
	var received map[string]json.RawMessage
	if err := json.Unmarshal(data, &received); err != nil {
		return err
	}

	type plain Event
	aux := struct {
		*plain
		Id json.RawMessage `json:"id,omitempty"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := decodeId(aux.Id)
	if err != nil {
		return err
	}
	e.Id = id
	e.received = make(map[string]json.RawMessage, len(knownFields))
	e.extra = nil
	for key, value := range received {
		if knownFields[key] {
			e.received[key] = value
			continue
		}
		if e.extra == nil {
			e.extra = make(map[string]json.RawMessage)
		}
		e.extra[key] = value
	}
	return nil
}

// MarshalJSON writes a decoded record back with the keys it arrived with.
// A known field the record did not carry stays absent while it is empty,
// an unchanged id keeps its JSON type, and unknown fields pass through.
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event
	encoded, err := json.Marshal(plain(e))
	if err != nil || (e.received == nil && len(e.extra) == 0) {
		return encoded, err
	}

	fields := make(map[string]json.RawMessage, len(knownFields)+len(e.extra))
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, err
	}
	for key, value := range e.extra {
		fields[key] = value
	}
	if e.received == nil {
		return json.Marshal(fields)
	}

	values := map[string]any{
		"id":          e.Id,
		"title":       e.Title,
		"description": e.Description,
		"startTime":   e.StartTime,
		"endTime":     e.EndTime,
		"category":    e.Category,
		"image":       e.Image,
		"categories":  e.Categories,
		"creator":     e.Creator,
	}
	for key, value := range values {
		original, had := e.received[key]
		if key == "id" && had && e.Id != "" {
			if id, err := decodeId(original); err == nil && id == e.Id {
				fields[key] = original
				continue
			}
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		switch {
		case had && !(key == "id" && e.Id == ""):
			fields[key] = data
		case !had && isEmptyJSON(data):
			delete(fields, key)
		}
	}
	return json.Marshal(fields)
}

func decodeId(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || string(raw) == "null":
		return "", nil
	case raw[0] == '"':
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", fmt.Errorf("invalid event id: %w", err)
		}
		return id, nil
	default:
		var number json.Number
		if err := json.Unmarshal(raw, &number); err != nil {
			return "", fmt.Errorf("invalid event id: %w", err)
		}
		return number.String(), nil
	}
}

func isEmptyJSON(data []byte) bool {
	switch string(data) {
	case `""`, "null", "[]", "{}":
		return true
	}
	return false
}
