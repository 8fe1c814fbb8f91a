package domain

import "time"

// Comment is an append-only note on an item.
type Comment struct {
	ID        string
	ItemID    string
	UserID    string
	Content   string
	CreatedAt time.Time
}

// AuditLogEntry records one change to an item. OldValue and NewValue hold
// JSON snapshots and may be nil.
type AuditLogEntry struct {
	ID        string
	ItemID    string
	UserID    string
	Action    AuditAction
	OldValue  []byte
	NewValue  []byte
	CreatedAt time.Time
}
