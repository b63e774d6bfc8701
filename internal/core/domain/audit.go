package domain

import "time"

// AuditEntry records a single mutating action for the admin audit trail.
type AuditEntry struct {
	ActorID  string    `json:"actor_id" bson:"actor_id"`
	Action   string    `json:"action" bson:"action"`
	Resource string    `json:"resource,omitempty" bson:"resource,omitempty"`
	At       time.Time `json:"at" bson:"at"`
}
