package eventlog

import (
	"encoding/json"
	"strconv"
)

const (
	// EventRunnerOK is emitted when a task completes on a host.
	EventRunnerOK = "runner_on_ok"
	// EventRunnerFailed is emitted when a task fails on a host.
	EventRunnerFailed = "runner_on_failed"
	// EventRunnerSkipped is emitted when a task is skipped on a host.
	EventRunnerSkipped = "runner_on_skipped"
)

// Kind classifies a record by its event name.
type Kind int

const (
	KindOther Kind = iota
	KindOK
	KindFailed
	KindSkipped
)

// ParseKind maps an event name to its Kind. Matching is exact.
func ParseKind(event string) Kind {
	switch event {
	case EventRunnerOK:
		return KindOK
	case EventRunnerFailed:
		return KindFailed
	case EventRunnerSkipped:
		return KindSkipped
	default:
		return KindOther
	}
}

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindFailed:
		return "failed"
	case KindSkipped:
		return "skipped"
	default:
		return "other"
	}
}

// Record is a single decoded log line.
type Record struct {
	Event string
	// Data holds event_data. It is nil when the field is absent or not an object.
	Data map[string]any
}

// Kind returns the classification of the record's event.
func (r Record) Kind() Kind {
	return ParseKind(r.Event)
}

// HasData reports whether the record carried an event_data object.
func (r Record) HasData() bool {
	return r.Data != nil
}

// Value returns the raw event_data[key] and whether the key is present.
// A JSON null is present with a nil value.
func (r Record) Value(key string) (any, bool) {
	v, ok := r.Data[key]
	return v, ok
}

// String returns event_data[key] as text. Null and missing values report false.
// Non-string values are rendered as JSON.
func (r Record) String(key string) (string, bool) {
	v, ok := r.Data[key]
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return "", false
		}
		return string(raw), true
	}
}

// Bool returns the truthiness of event_data[key]. Missing keys are false.
func (r Record) Bool(key string) bool {
	return truthy(r.Data[key])
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

func recordFrom(v any) Record {
	obj, ok := v.(map[string]any)
	if !ok {
		return Record{}
	}
	var rec Record
	if event, ok := obj["event"].(string); ok {
		rec.Event = event
	}
	if data, ok := obj["event_data"].(map[string]any); ok {
		rec.Data = data
	}
	return rec
}
