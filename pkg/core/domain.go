// Package core holds the domain model of the knowledge portal: records, their
// kind-specific payloads, media attachments and the ports the record store
// persists through.
package core

// EventType represents the type of change observed on the durable store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a persisted key made outside this process
// (another session writing the same blob).
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Key
}
