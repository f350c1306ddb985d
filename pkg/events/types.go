package events

import "encoding/json"

// Event name constants
const (
	ConfigChanged = "config.changed"
)

// Event is a generic event from the daemon, also used as the SSE frame.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// ConfigChangedEvent is the typed payload for config.changed. Field names
// the mutated accessor ("tileHeight", "depthiness", "calibration", ...).
type ConfigChangedEvent struct {
	Field string `json:"field"`
	Ts    int64  `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified type T. It
// ignores the event name and simply unmarshals Data into T. If Data is
// empty, it returns the zero value of T with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.ConfigChangedEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.Field)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
