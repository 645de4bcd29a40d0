package dto

import (
	"time"

	"github.com/civic-kit/complaint-service/internal/domain"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	Description string `json:"description"`
	Location    string `json:"location"`
}

// CreateComplaintResponse echoes the routing outcome of a new complaint.
type CreateComplaintResponse struct {
	TicketNo   string                 `json:"ticket_no"`
	Category   string                 `json:"category"`
	Department domain.Department      `json:"department"`
	Status     domain.ComplaintStatus `json:"status"`
}

// ComplaintResponse is the full complaint view.
type ComplaintResponse struct {
	ID          string                 `json:"id"`
	TicketNo    string                 `json:"ticket_no"`
	Category    string                 `json:"category"`
	Department  domain.Department      `json:"department"`
	Location    string                 `json:"location"`
	Description string                 `json:"description"`
	Status      domain.ComplaintStatus `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// NewComplaintResponse maps a domain complaint.
func NewComplaintResponse(complaint *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          complaint.ID,
		TicketNo:    complaint.TicketNo,
		Category:    complaint.Category,
		Department:  complaint.Department,
		Location:    complaint.Location,
		Description: complaint.Description,
		Status:      complaint.Status,
		CreatedAt:   complaint.CreatedAt,
		UpdatedAt:   complaint.UpdatedAt,
	}
}

// NewComplaintResponses maps a slice of complaints.
func NewComplaintResponses(complaints []domain.Complaint) []ComplaintResponse {
	items := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, NewComplaintResponse(&complaints[i]))
	}
	return items
}

// StatusHistoryResponse is one audit trail entry.
type StatusHistoryResponse struct {
	ID        string                 `json:"id"`
	Status    domain.ComplaintStatus `json:"status"`
	ChangedBy string                 `json:"changed_by"`
	Notes     string                 `json:"notes"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewStatusHistoryResponses maps a transition trail.
func NewStatusHistoryResponses(entries []domain.StatusHistory) []StatusHistoryResponse {
	items := make([]StatusHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, StatusHistoryResponse{
			ID:        entry.ID,
			Status:    entry.Status,
			ChangedBy: entry.ChangedBy,
			Notes:     entry.Notes,
			CreatedAt: entry.CreatedAt,
		})
	}
	return items
}
