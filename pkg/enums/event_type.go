package enums

import "fmt"

// EventType tags an affiliate event row. The ledger is free-form in storage
// (type is text) but writes only accept the known tags.
type EventType string

const (
	EventTypeSale EventType = "sale"
	EventTypeSeed EventType = "seed"
	EventTypePost EventType = "post"
)

var validEventTypes = []EventType{
	EventTypeSale,
	EventTypeSeed,
	EventTypePost,
}

// String implements fmt.Stringer.
func (t EventType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known EventType.
func (t EventType) IsValid() bool {
	for _, candidate := range validEventTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseEventType converts raw input into an EventType.
func ParseEventType(value string) (EventType, error) {
	for _, candidate := range validEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
