// Package queue defines the message payloads exchanged over the message
// broker plus the publisher and the background consumer for them.
package queue

// Lifecycle actions carried by TableLifecycleEvent.
const (
	ActionReserved         = "reserved"
	ActionSerialsSubmitted = "serials_submitted"
	ActionCanceled         = "canceled"
	ActionReleased         = "released"
	ActionExpired          = "expired"
)

// TableLifecycleEvent is published whenever a table changes state. It
// carries enough information for downstream consumers to log or notify
// without querying the document store.
type TableLifecycleEvent struct {
	Action     string `json:"action"`
	EventID    string `json:"event_id"`
	EventTitle string `json:"event_title"`
	TableID    string `json:"table_id"`
	TableName  string `json:"table_name"`
	GuestName  string `json:"guest_name,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
