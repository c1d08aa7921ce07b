package domain

import "time"

// WorkflowLogEntry is one append-only audit record. Entries are never updated
// or deleted; ordering by CreatedAt reconstructs the full history.
type WorkflowLogEntry struct {
	ID             string    `json:"id"`
	EntityID       string    `json:"entity_id"` // offer or contract id
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ActorID        string    `json:"actor_id"`
	ActorName      string    `json:"actor_name"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
