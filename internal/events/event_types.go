package events

import (
	"encoding/json"
	"time"
)

// EventType enumerates event identifiers the console reacts to. Server
// push events keep their wire names; payloads stay opaque triggers.
type EventType string

const (
	EventPublicationPending EventType = "new_publication_pending"
	EventClientNotification EventType = "client_new_notification"
	EventChannelOpened      EventType = "channel_opened"
	EventChannelClosed      EventType = "channel_closed"
)

// Event represents a notification or channel lifecycle event.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}
