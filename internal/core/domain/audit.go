package domain

import "time"

// AuditEntry records one operator mutation performed through the console.
type AuditEntry struct {
	ID         string    `json:"id,omitempty"`
	ActorID    string    `json:"actorId"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resourceId,omitempty"`
	At         time.Time `json:"at"`
}
