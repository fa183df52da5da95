package webhook

import (
	"time"

	"github.com/rune-metrics/player-tracker/internal/domain"
)

// Event type constants
const (
	// EventTypeNameChangeSubmitted is fired when a new request enters the queue
	EventTypeNameChangeSubmitted = "name_change.submitted"

	// EventTypeNameChangeApproved is fired when a request is approved and the
	// data merge has committed
	EventTypeNameChangeApproved = "name_change.approved"

	// EventTypeNameChangeDenied is fired when a request is denied
	EventTypeNameChangeDenied = "name_change.denied"
)

// Event represents a webhook event to be delivered to clients
type Event struct {
	// EventID is a unique identifier for this event
	EventID string `json:"event_id"`
	// EventType is the type of event (e.g., "name_change.approved")
	EventType string `json:"event_type"`
	// Timestamp is when the event was generated
	Timestamp time.Time `json:"timestamp"`
	// Data contains the event-specific payload
	Data EventData `json:"data"`
}

// EventData contains the webhook event payload
type EventData struct {
	// NameChangeID is the request's identifier
	NameChangeID uint64 `json:"name_change_id"`
	// OldName is the standardized name being given up
	OldName string `json:"old_name"`
	// NewName is the standardized name being adopted
	NewName string `json:"new_name"`
	// Status is the request's lifecycle state after the transition
	Status string `json:"status"`
}

// EventTypeForStatus maps a request's lifecycle state to the delivered
// event type
func EventTypeForStatus(status domain.NameChangeStatus) string {
	switch status {
	case domain.NameChangeStatusApproved:
		return EventTypeNameChangeApproved
	case domain.NameChangeStatusDenied:
		return EventTypeNameChangeDenied
	default:
		return EventTypeNameChangeSubmitted
	}
}
