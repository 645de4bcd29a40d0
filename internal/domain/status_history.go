package domain

import "time"

// StatusHistory is an append-only audit entry recording the status a
// complaint transitioned to. Rows are never edited or deleted; exactly one
// row exists per successful transition, including the initial Pending.
type StatusHistory struct {
	ID          string
	ComplaintID string
	Status      ComplaintStatus
	ChangedBy   string
	Notes       string
	CreatedAt   time.Time
}
