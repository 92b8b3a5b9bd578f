// Package events defines the domain event payload published to RabbitMQ after
// note and tenant mutations.
package events

import "time"

// Type names a domain event.
type Type string

const (
	NoteCreated    Type = "note.created"
	NoteUpdated    Type = "note.updated"
	NoteDeleted    Type = "note.deleted"
	TenantUpgraded Type = "tenant.upgraded"
)

// Event is the JSON payload put on the RabbitMQ events queue.
type Event struct {
	ID         string         `json:"id"`
	Type       Type           `json:"type"`
	TenantSlug string         `json:"tenant"`
	ActorID    string         `json:"actor_id"`
	ActorEmail string         `json:"actor_email,omitempty"`
	NoteID     string         `json:"note_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}
