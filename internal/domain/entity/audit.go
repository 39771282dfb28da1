package entity

import "time"

// AuditEntry records the narration of a successful mutating operation.
type AuditEntry struct {
	ID          uint
	Operation   string
	DocumentKey string
	Narration   string
	CreatedAt   time.Time
}
