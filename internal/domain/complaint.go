package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	StatusPending      ComplaintStatus = "Pending"
	StatusInProgress   ComplaintStatus = "In Progress"
	StatusResolved     ComplaintStatus = "Resolved"
	StatusUserResolved ComplaintStatus = "User Resolved"
	StatusReopened     ComplaintStatus = "Reopened"
)

// ParseStatus validates an incoming status value.
func ParseStatus(s string) (ComplaintStatus, bool) {
	switch ComplaintStatus(s) {
	case StatusPending, StatusInProgress, StatusResolved, StatusUserResolved, StatusReopened:
		return ComplaintStatus(s), true
	}
	return "", false
}

// ActiveStatuses are the states a complaint still needs staff attention in.
func ActiveStatuses() []ComplaintStatus {
	return []ComplaintStatus{StatusPending, StatusInProgress}
}

// staffTransitions is the full staff-side transition table. A pair absent
// here is illegal; user-initiated closure to User Resolved bypasses this
// table and is gated on ownership instead.
var staffTransitions = map[ComplaintStatus][]ComplaintStatus{
	StatusPending:      {StatusInProgress},
	StatusInProgress:   {StatusResolved},
	StatusResolved:     {StatusReopened},
	StatusUserResolved: {StatusReopened},
	StatusReopened:     {StatusInProgress},
}

// CanTransition reports whether staff may move a complaint from current to next.
func CanTransition(current, next ComplaintStatus) bool {
	for _, candidate := range staffTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Complaint is the aggregate for a single citizen grievance. TicketNo,
// UserID, Category and Department are immutable after creation; only Status
// (and with it UpdatedAt) changes over the complaint's lifetime.
type Complaint struct {
	ID          string
	TicketNo    string
	UserID      string
	Category    string
	Department  Department
	Location    string
	Description string
	Status      ComplaintStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
